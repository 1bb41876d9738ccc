package ports

import (
	"context"
	"errors"
	"time"

	"NewsTrust/internal/domain"
)

// ErrInvalidURL reports a URL the extractor cannot even request.
var ErrInvalidURL = errors.New("invalid url")

// ErrUnreachable reports a URL whose host did not answer usefully.
var ErrUnreachable = errors.New("site unreachable")

// Extractor turns a URL into a cleaned full-text article.
type Extractor interface {
	Extract(ctx context.Context, url string) (*domain.Article, error)
}

// Searcher discovers articles related to a title. Implementations return an
// empty candidate list on upstream failure rather than an error.
type Searcher interface {
	Search(ctx context.Context, title string, since *time.Time) ([]domain.Candidate, error)
}

// DomainResolver maps a URL to its registrable base domain.
type DomainResolver interface {
	BaseDomain(url string) (string, error)
}

// Repository persists web pages, their related-article sets, and the
// isolated-articles ledger.
type Repository interface {
	// WebPageByURL returns (nil, nil) when no row exists.
	WebPageByURL(ctx context.Context, url string) (*domain.WebPage, error)
	// CreateWebPage inserts a row with a null content score, creating the
	// base domain lazily.
	CreateWebPage(ctx context.Context, url, baseDomain string, scoresVersion int) (*domain.WebPage, error)
	// SaveEvaluation updates the page's scoring fields and replaces its
	// interesting related articles wholesale.
	SaveEvaluation(ctx context.Context, page *domain.WebPage, related []domain.RelatedArticle) error
	DeleteWebPage(ctx context.Context, id int64) error

	// RecordIsolatedArticle is an idempotent get-or-create on the ledger.
	RecordIsolatedArticle(ctx context.Context, url, baseDomain string) error

	// SiteScore averages content scores over the domain's pages on the given
	// version and reports how many pages contributed.
	SiteScore(ctx context.Context, baseDomainID int64, scoresVersion int) (float64, int, error)
	// DomainArticleCounts returns the isolated and scored article counts.
	DomainArticleCounts(ctx context.Context, baseDomainID int64) (isolated int, scored int, err error)
	InterestingCount(ctx context.Context, webPageID int64) (int, error)
	RelatedSelection(ctx context.Context, webPageID int64, limit int) ([]domain.RelatedArticle, error)

	// DeleteUnscored removes pages whose content score is still null.
	DeleteUnscored(ctx context.Context) (int64, error)
	// DeleteStaleVersions removes pages scored with a version below the given one.
	DeleteStaleVersions(ctx context.Context, belowVersion int) (int64, error)

	Ping(ctx context.Context) error
}
