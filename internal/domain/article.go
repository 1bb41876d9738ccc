package domain

import "time"

// Article is the transient result of extracting one page. It has no identity
// beyond its URL and is consumed once per scoring run.
type Article struct {
	URL         string
	Title       string
	CleanedText string
	PublishedAt *time.Time
}

// Candidate is one related-article hit returned by the discovery service.
type Candidate struct {
	URL   string
	Title string
}

// CandidateComparison records how one discovered candidate compared against
// the source article.
type CandidateComparison struct {
	URL          string
	Title        string
	OverlapRatio float64
}

// EvaluationResult is the terminal output of one related-set evaluation.
type EvaluationResult struct {
	ContentScore    float64
	TotalCandidates int
	Interesting     []CandidateComparison
}
