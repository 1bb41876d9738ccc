// Package similarity compares articles: keyword overlap against the source,
// publisher identity, and near-duplicate detection.
package similarity

import (
	"net/url"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// blockedTitleSignature is the anti-bot interstitial title some hosts serve
// instead of the article.
const blockedTitleSignature = "You have been blocked"

// SamePublisher reports whether every candidate URL contains the source's
// network location, meaning the whole candidate set comes from the source's
// own publisher. An empty candidate list is not "same publisher": there is no
// evidence either way.
func SamePublisher(candidateURLs []string, sourceURL string) bool {
	if len(candidateURLs) == 0 {
		return false
	}

	parsed, err := url.Parse(sourceURL)
	if err != nil || parsed.Host == "" {
		return false
	}

	for _, candidate := range candidateURLs {
		if !strings.Contains(candidate, parsed.Host) {
			return false
		}
	}
	return true
}

// OverlapRatio counts keywords present in both maps with a source frequency
// above one and divides by significant. The caller guarantees significant > 0.
func OverlapRatio(source, candidate map[string]int, significant int) float64 {
	shared := 0
	for key, n := range source {
		if n <= 1 {
			continue
		}
		if _, ok := candidate[key]; ok {
			shared++
		}
	}
	return float64(shared) / float64(significant)
}

// CharRatio is a character-level sequence similarity in [0,1] between two raw
// texts. Candidates scoring high against the source are wire-service copies,
// not independent corroboration.
func CharRatio(a, b string) float64 {
	return difflib.NewMatcher(chars(a), chars(b)).Ratio()
}

// IsBlockedPage reports whether an extracted title is an anti-bot block page.
func IsBlockedPage(title string) bool {
	return strings.Contains(title, blockedTitleSignature)
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
