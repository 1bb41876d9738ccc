// Package metrics keeps in-process counters for the scoring service,
// exposed through the /api/metrics endpoint.
package metrics

import (
	"sync"
	"time"
)

// Metrics aggregates counters across requests. All methods are safe for
// concurrent use.
type Metrics struct {
	mu sync.RWMutex

	pagesScored         int64
	cacheHits           int64
	isolatedArticles    int64
	failedEvaluations   int64
	candidatesProcessed int64

	lastEvaluationTime time.Duration
	lastRunTime        time.Time
}

// New returns an empty metrics set.
func New() *Metrics {
	return &Metrics{}
}

// IncrementPagesScored records one completed scoring run.
func (m *Metrics) IncrementPagesScored() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pagesScored++
	m.lastRunTime = time.Now()
}

// IncrementCacheHits records one request served from the stored row.
func (m *Metrics) IncrementCacheHits() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

// IncrementIsolatedArticles records one article with no independent coverage.
func (m *Metrics) IncrementIsolatedArticles() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isolatedArticles++
}

// IncrementFailedEvaluations records one terminal failure outcome.
func (m *Metrics) IncrementFailedEvaluations() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failedEvaluations++
}

// AddCandidatesProcessed records how many candidates one run compared.
func (m *Metrics) AddCandidatesProcessed(n int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.candidatesProcessed += int64(n)
}

// RecordEvaluationTime stores the duration of the latest evaluation.
func (m *Metrics) RecordEvaluationTime(d time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastEvaluationTime = d
}

// Stats snapshots the counters for serialization.
func (m *Metrics) Stats() map[string]any {
	if m == nil {
		return map[string]any{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]any{
		"pages_scored":            m.pagesScored,
		"cache_hits":              m.cacheHits,
		"isolated_articles":       m.isolatedArticles,
		"failed_evaluations":      m.failedEvaluations,
		"candidates_processed":    m.candidatesProcessed,
		"last_evaluation_time_ms": m.lastEvaluationTime.Milliseconds(),
		"last_run_time":           m.lastRunTime.Format(time.RFC3339),
	}
}
