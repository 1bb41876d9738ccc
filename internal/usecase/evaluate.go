package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"NewsTrust/internal/domain"
	"NewsTrust/internal/lexical"
	"NewsTrust/internal/metrics"
	"NewsTrust/internal/outcome"
	"NewsTrust/internal/ports"
	"NewsTrust/internal/scoring"
	"NewsTrust/internal/similarity"
)

// User-facing messages for the terminal outcomes of one evaluation.
const (
	msgInvalidAddress  = "The address is not a valid article URL."
	msgUnreachable     = "The site could not be reached."
	msgNoText          = "We could not extract the text of this article."
	msgIsolated        = "This article seems isolated: we found no other article covering it. Be careful!"
	msgTooThin         = "Our scoring method could not produce a result for this article."
	msgOnlyDuplicates  = "We only found articles too similar to yours. They may all come from the same source."
	msgMostlyBlocked   = "Most of the related pages refused to serve their content for extraction."
	msgStillProcessing = "This article is being processed. Please retry in a few minutes."
	msgInternalFailure = "An error occurred while computing the score."
)

// EvaluatorDeps wires the collaborators into the evaluation workflow.
type EvaluatorDeps struct {
	Extractor  ports.Extractor
	Searcher   ports.Searcher
	Domains    ports.DomainResolver
	Repository ports.Repository
	Normalizer *lexical.Normalizer
	Policy     scoring.Policy
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
}

// Evaluator runs the related-set evaluation for one page: discovery,
// per-candidate comparison, aggregation, and persistence. Every terminal
// failure deletes the page row so retries start clean.
type Evaluator struct {
	extractor  ports.Extractor
	searcher   ports.Searcher
	domains    ports.DomainResolver
	repository ports.Repository
	normalizer *lexical.Normalizer
	policy     scoring.Policy
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewEvaluator constructs the evaluation component.
func NewEvaluator(deps EvaluatorDeps) *Evaluator {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	normalizer := deps.Normalizer
	if normalizer == nil {
		normalizer = lexical.NewNormalizer(nil, nil)
	}
	return &Evaluator{
		extractor:  deps.Extractor,
		searcher:   deps.Searcher,
		domains:    deps.Domains,
		repository: deps.Repository,
		normalizer: normalizer,
		policy:     deps.Policy,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// Evaluate scores the page in place and persists the result. The returned
// error is always an *outcome.Outcome for classified terminal states; any
// other error means an unexpected internal failure the caller must classify.
func (e *Evaluator) Evaluate(ctx context.Context, page *domain.WebPage) error {
	started := time.Now()
	defer func() { e.metrics.RecordEvaluationTime(time.Since(started)) }()

	article, err := e.extractor.Extract(ctx, page.URL)
	if err != nil {
		e.deletePage(ctx, page)
		if isInvalidURL(err) {
			return outcome.Warning(msgInvalidAddress)
		}
		return outcome.Warning(msgUnreachable)
	}

	if article.CleanedText == "" {
		e.deletePage(ctx, page)
		return outcome.Warning(msgNoText)
	}

	freq := e.normalizer.KeywordFrequencies(article.CleanedText)
	e.logger.Debug("source keywords extracted", "url", page.URL, "keywords", len(freq))

	candidates, err := e.discover(ctx, page, article)
	if err != nil {
		return err
	}

	significant := lexical.SignificantCount(freq)
	e.logger.Debug("significant keywords", "url", page.URL, "count", significant)
	if significant <= e.policy.MinRepeatedKeywords {
		e.deletePage(ctx, page)
		return outcome.Warning(msgTooThin)
	}

	result, err := e.compareCandidates(ctx, page, article, freq, significant, candidates)
	if err != nil {
		return err
	}

	return e.persist(ctx, page, result)
}

// discover queries the search service within the narrow window, widening it
// once when the result set is empty or entirely same-publisher. Exhausting
// the widened window marks the article isolated.
func (e *Evaluator) discover(ctx context.Context, page *domain.WebPage, article *domain.Article) ([]domain.Candidate, error) {
	candidates := e.search(ctx, article, e.policy.NarrowWindow)

	if len(candidates) == 0 || similarity.SamePublisher(candidateURLs(candidates), page.URL) {
		e.logger.Debug("no independent coverage in narrow window, widening", "url", page.URL)
		candidates = e.search(ctx, article, e.policy.WideWindow)

		if len(candidates) == 0 || similarity.SamePublisher(candidateURLs(candidates), page.URL) {
			if err := e.repository.RecordIsolatedArticle(ctx, page.URL, page.BaseDomain); err != nil {
				e.logger.Error("record isolated article", "url", page.URL, "error", err)
			}
			e.deletePage(ctx, page)
			e.metrics.IncrementIsolatedArticles()
			return nil, outcome.Info(msgIsolated)
		}
	}

	return candidates, nil
}

func (e *Evaluator) search(ctx context.Context, article *domain.Article, window time.Duration) []domain.Candidate {
	var since *time.Time
	if article.PublishedAt != nil {
		s := article.PublishedAt.Add(-window)
		since = &s
	}

	candidates, err := e.searcher.Search(ctx, article.Title, since)
	if err != nil {
		// Discovery failures degrade to an empty result set; the widening
		// retry and the isolated path handle the rest.
		e.logger.Error("discovery search failed", "title", article.Title, "error", err)
		return nil
	}
	return candidates
}

// comparison tallies one pass over the candidate set.
type comparison struct {
	processed   int
	blocked     int
	tooSimilar  int
	ratios      []float64
	interesting []domain.CandidateComparison
}

func (e *Evaluator) compareCandidates(ctx context.Context, page *domain.WebPage, article *domain.Article,
	sourceFreq map[string]int, significant int, candidates []domain.Candidate) (*domain.EvaluationResult, error) {

	sourceHost := hostOf(page.URL)
	var tally comparison

	for _, candidate := range candidates {
		if sourceHost != "" && strings.Contains(candidate.URL, sourceHost) {
			continue
		}

		linked, err := e.extractor.Extract(ctx, candidate.URL)
		if err != nil {
			// One bad candidate never sinks the evaluation.
			e.logger.Error("candidate extraction failed", "url", candidate.URL, "error", err)
			continue
		}

		switch {
		case similarity.IsBlockedPage(linked.Title):
			e.logger.Debug("candidate is a block page", "url", candidate.URL)
			tally.blocked++
		case similarity.CharRatio(article.CleanedText, linked.CleanedText) > e.policy.DuplicateThreshold:
			e.logger.Debug("candidate too similar to source", "url", candidate.URL)
			tally.tooSimilar++
		default:
			candidateFreq := e.normalizer.KeywordFrequencies(linked.CleanedText)
			ratio := similarity.OverlapRatio(sourceFreq, candidateFreq, significant)
			if ratio > e.policy.OverlapThreshold {
				tally.ratios = append(tally.ratios, ratio)
				tally.interesting = append(tally.interesting, domain.CandidateComparison{
					URL:          candidate.URL,
					Title:        linked.Title,
					OverlapRatio: ratio,
				})
			} else {
				e.logger.Debug("candidate below overlap threshold", "url", candidate.URL, "ratio", ratio)
			}
			tally.processed++
		}
	}

	e.metrics.AddCandidatesProcessed(tally.processed)

	if tally.processed == 0 {
		e.deletePage(ctx, page)
		e.metrics.IncrementFailedEvaluations()
		message := msgOnlyDuplicates
		if tally.blocked > tally.tooSimilar {
			message = msgMostlyBlocked
		}
		return nil, outcome.Info(message)
	}

	score := e.policy.ContentScore(len(tally.interesting), tally.processed, tally.ratios)
	e.logger.Debug("content score computed", "url", page.URL, "score", score,
		"interesting", len(tally.interesting), "processed", tally.processed)

	return &domain.EvaluationResult{
		ContentScore:    score,
		TotalCandidates: tally.processed,
		Interesting:     tally.interesting,
	}, nil
}

func (e *Evaluator) persist(ctx context.Context, page *domain.WebPage, result *domain.EvaluationResult) error {
	related := make([]domain.RelatedArticle, 0, len(result.Interesting))
	for _, item := range result.Interesting {
		base, err := e.domains.BaseDomain(item.URL)
		if err != nil {
			base = hostOf(item.URL)
		}
		related = append(related, domain.RelatedArticle{
			Title:      item.Title,
			URL:        item.URL,
			Score:      int(item.OverlapRatio * 100),
			BaseDomain: base,
		})
	}

	contentScore := int(result.ContentScore)
	page.ContentScore = &contentScore
	page.TotalArticles = result.TotalCandidates
	page.ScoresVersion = e.policy.Version

	if err := e.repository.SaveEvaluation(ctx, page, related); err != nil {
		return err
	}

	e.metrics.IncrementPagesScored()
	e.logger.Info("finished computing scores", "url", page.URL, "content_score", contentScore)
	return nil
}

func (e *Evaluator) deletePage(ctx context.Context, page *domain.WebPage) {
	if err := e.repository.DeleteWebPage(ctx, page.ID); err != nil {
		e.logger.Error("delete web page", "url", page.URL, "error", err)
	}
}

func isInvalidURL(err error) bool {
	return errors.Is(err, ports.ErrInvalidURL)
}

func candidateURLs(candidates []domain.Candidate) []string {
	urls := make([]string, len(candidates))
	for i, c := range candidates {
		urls[i] = c.URL
	}
	return urls
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}
