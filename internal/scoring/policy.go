// Package scoring holds the versioned score policy and its arithmetic. The
// thresholds are empirical, not derived; they are named here and overridable
// through configuration.
package scoring

import (
	"math"
	"time"
)

// CurrentVersion tags rows written by the present policy. Rows on older
// versions are recomputed on access and purged by the admin CLI.
const CurrentVersion = 14

const (
	// defaultOverlapThreshold is the keyword-overlap ratio above which a
	// candidate counts as corroborating coverage.
	defaultOverlapThreshold = 0.4
	// defaultDuplicateThreshold is the char-level similarity above which a
	// candidate is treated as a republication of the source.
	defaultDuplicateThreshold = 0.3
	// defaultMinRepeatedKeywords is the repeated-keyword count the source
	// must exceed to be scoreable at all.
	defaultMinRepeatedKeywords = 2
	// defaultInterestingBoost scales the mean interesting ratio before
	// capping at 100.
	defaultInterestingBoost = 1.5

	defaultNarrowWindow = 7 * 24 * time.Hour
	defaultWideWindow   = 30 * 24 * time.Hour
	defaultFreshness    = 7 * 24 * time.Hour
)

// Policy bundles every tunable of one scoring revision.
type Policy struct {
	Version             int
	OverlapThreshold    float64
	DuplicateThreshold  float64
	MinRepeatedKeywords int
	InterestingBoost    float64
	NarrowWindow        time.Duration
	WideWindow          time.Duration
	Freshness           time.Duration
}

// Default returns the reference policy.
func Default() Policy {
	return Policy{
		Version:             CurrentVersion,
		OverlapThreshold:    defaultOverlapThreshold,
		DuplicateThreshold:  defaultDuplicateThreshold,
		MinRepeatedKeywords: defaultMinRepeatedKeywords,
		InterestingBoost:    defaultInterestingBoost,
		NarrowWindow:        defaultNarrowWindow,
		WideWindow:          defaultWideWindow,
		Freshness:           defaultFreshness,
	}
}

// ContentScore blends breadth (fraction of processed candidates that were
// interesting) with depth (mean interesting overlap, boosted and capped at
// 100). Both terms are truncated to one decimal before averaging. Zero
// interesting candidates score zero; processed must be positive.
func (p Policy) ContentScore(interesting, processed int, ratios []float64) float64 {
	if interesting == 0 {
		return 0
	}

	breadth := Truncate1(float64(interesting) / float64(processed) * 100)
	depth := math.Min(100, Truncate1(mean(ratios)*p.InterestingBoost*100))
	return (breadth + depth) / 2
}

// GlobalScore blends the article's own signal with the publisher's track
// record: strong sites lean on site reputation, weak sites on the article.
func GlobalScore(contentScore, siteScore float64) float64 {
	final := (100-siteScore)/100*siteScore + siteScore*contentScore/100
	return Truncate1(final)
}

// IsolatedScore maps a domain's isolated-article ratio onto 0–100. The caller
// guarantees the domain has at least one article.
func IsolatedScore(isolated, scored int) float64 {
	ratio := float64(isolated) / float64(isolated+scored)
	return Truncate1((1 - ratio) * 100)
}

// Truncate1 truncates to one decimal place, matching how every published
// score is rounded.
func Truncate1(v float64) float64 {
	return math.Trunc(v*10) / 10
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
