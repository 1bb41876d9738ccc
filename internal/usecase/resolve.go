package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"NewsTrust/internal/domain"
	"NewsTrust/internal/metrics"
	"NewsTrust/internal/outcome"
	"NewsTrust/internal/ports"
	"NewsTrust/internal/scoring"
)

// relatedSelectionSize caps the related-articles selection in reports.
const relatedSelectionSize = 3

// PageEvaluator abstracts the evaluation step so the resolver can be tested
// against a stub.
type PageEvaluator interface {
	Evaluate(ctx context.Context, page *domain.WebPage) error
}

// ResolverDeps wires the cache layer's collaborators.
type ResolverDeps struct {
	Repository ports.Repository
	Domains    ports.DomainResolver
	Evaluator  PageEvaluator
	Policy     scoring.Policy
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
}

// Resolver decides per URL whether a stored result can be reused or a full
// evaluation must run. A row with a null content score marks an in-flight
// computation and is never re-triggered.
type Resolver struct {
	repository ports.Repository
	domains    ports.DomainResolver
	evaluator  PageEvaluator
	policy     scoring.Policy
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewResolver constructs the cache/invalidation component.
func NewResolver(deps ResolverDeps) *Resolver {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		repository: deps.Repository,
		domains:    deps.Domains,
		evaluator:  deps.Evaluator,
		policy:     deps.Policy,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// Resolve returns the public report for a URL, recomputing it when the stored
// row is missing, stale, or on an old scores version.
func (r *Resolver) Resolve(ctx context.Context, url string) (*domain.Report, error) {
	page, err := r.repository.WebPageByURL(ctx, url)
	if err != nil {
		return nil, outcome.Error(msgInternalFailure, err)
	}

	if page != nil && page.ContentScore == nil {
		return nil, outcome.Info(msgStillProcessing)
	}

	if page != nil && page.ScoresVersion == r.policy.Version &&
		time.Since(page.UpdatedAt) < r.policy.Freshness {
		r.logger.Info("returning stored scores", "url", url)
		r.metrics.IncrementCacheHits()
		return r.buildReport(ctx, page)
	}

	if page == nil {
		base, err := r.domains.BaseDomain(url)
		if err != nil {
			return nil, outcome.Warning(msgInvalidAddress)
		}
		r.logger.Debug("base domain resolved", "url", url, "base_domain", base)

		page, err = r.repository.CreateWebPage(ctx, url, base, r.policy.Version)
		if err != nil {
			return nil, outcome.Error(msgInternalFailure, err)
		}
	}

	if err := r.evaluator.Evaluate(ctx, page); err != nil {
		var classified *outcome.Outcome
		if errors.As(err, &classified) {
			return nil, classified
		}
		// Unclassified failure: clear the row so a retry starts clean and
		// keep the cause internal.
		if delErr := r.repository.DeleteWebPage(ctx, page.ID); delErr != nil {
			r.logger.Error("delete web page after failure", "url", url, "error", delErr)
		}
		return nil, outcome.Error(msgInternalFailure, err)
	}

	return r.buildReport(ctx, page)
}

func (r *Resolver) buildReport(ctx context.Context, page *domain.WebPage) (*domain.Report, error) {
	siteScore, siteCount, err := r.repository.SiteScore(ctx, page.BaseDomainID, r.policy.Version)
	if err != nil {
		return nil, outcome.Error(msgInternalFailure, err)
	}
	siteScore = scoring.Truncate1(siteScore)

	isolated, scored, err := r.repository.DomainArticleCounts(ctx, page.BaseDomainID)
	if err != nil {
		return nil, outcome.Error(msgInternalFailure, err)
	}

	interestingCount, err := r.repository.InterestingCount(ctx, page.ID)
	if err != nil {
		return nil, outcome.Error(msgInternalFailure, err)
	}

	selection, err := r.repository.RelatedSelection(ctx, page.ID, relatedSelectionSize)
	if err != nil {
		return nil, outcome.Error(msgInternalFailure, err)
	}

	contentScore := 0
	if page.ContentScore != nil {
		contentScore = *page.ContentScore
	}

	related := make([]domain.RelatedSummary, 0, len(selection))
	for _, item := range selection {
		related = append(related, domain.RelatedSummary{
			Title:     item.Title,
			URL:       item.URL,
			Publisher: item.BaseDomain,
		})
	}

	return &domain.Report{
		URL:                             page.URL,
		GlobalScore:                     scoring.GlobalScore(float64(contentScore), siteScore),
		TotalArticles:                   page.TotalArticles,
		SiteScoreArticlesCount:          siteCount,
		InterestingRelatedArticlesCount: interestingCount,
		Scores: domain.Scores{
			ContentScore:          contentScore,
			SiteScore:             siteScore,
			IsolatedArticlesScore: scoring.IsolatedScore(isolated, scored),
		},
		RelatedArticlesSelection: related,
	}, nil
}
