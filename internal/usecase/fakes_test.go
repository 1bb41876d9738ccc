package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"NewsTrust/internal/domain"
	"NewsTrust/internal/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeExtractor serves canned articles and errors by URL.
type fakeExtractor struct {
	articles map[string]*domain.Article
	errs     map[string]error
}

func (f *fakeExtractor) Extract(ctx context.Context, rawURL string) (*domain.Article, error) {
	if err, ok := f.errs[rawURL]; ok {
		return nil, err
	}
	if a, ok := f.articles[rawURL]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("%w: no fixture for %s", ports.ErrUnreachable, rawURL)
}

// fakeSearcher replays one candidate batch per call.
type fakeSearcher struct {
	batches [][]domain.Candidate
	calls   int
}

func (f *fakeSearcher) Search(ctx context.Context, title string, since *time.Time) ([]domain.Candidate, error) {
	f.calls++
	if f.calls > len(f.batches) {
		return nil, nil
	}
	return f.batches[f.calls-1], nil
}

// fakeDomains derives a base domain by stripping the www prefix.
type fakeDomains struct {
	err error
}

func (f fakeDomains) BaseDomain(rawURL string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("no host in %q", rawURL)
	}
	return strings.TrimPrefix(parsed.Host, "www."), nil
}

// fakeRepo is an in-memory stand-in for the Postgres repository.
type fakeRepo struct {
	nextPageID   int64
	nextDomainID int64
	domainIDs    map[string]int64
	pages        map[string]*domain.WebPage
	related      map[int64][]domain.RelatedArticle
	isolated     map[string]string

	pingErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		domainIDs: map[string]int64{},
		pages:     map[string]*domain.WebPage{},
		related:   map[int64][]domain.RelatedArticle{},
		isolated:  map[string]string{},
	}
}

func (f *fakeRepo) domainID(base string) int64 {
	if id, ok := f.domainIDs[base]; ok {
		return id
	}
	f.nextDomainID++
	f.domainIDs[base] = f.nextDomainID
	return f.nextDomainID
}

func (f *fakeRepo) WebPageByURL(ctx context.Context, pageURL string) (*domain.WebPage, error) {
	if p, ok := f.pages[pageURL]; ok {
		return p, nil
	}
	return nil, nil
}

func (f *fakeRepo) CreateWebPage(ctx context.Context, pageURL, baseDomain string, scoresVersion int) (*domain.WebPage, error) {
	f.nextPageID++
	now := time.Now()
	page := &domain.WebPage{
		ID:            f.nextPageID,
		URL:           pageURL,
		BaseDomainID:  f.domainID(baseDomain),
		BaseDomain:    baseDomain,
		ScoresVersion: scoresVersion,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.pages[pageURL] = page
	return page, nil
}

func (f *fakeRepo) SaveEvaluation(ctx context.Context, page *domain.WebPage, related []domain.RelatedArticle) error {
	page.UpdatedAt = time.Now()
	f.pages[page.URL] = page
	f.related[page.ID] = related
	return nil
}

func (f *fakeRepo) DeleteWebPage(ctx context.Context, id int64) error {
	for pageURL, p := range f.pages {
		if p.ID == id {
			delete(f.pages, pageURL)
		}
	}
	delete(f.related, id)
	return nil
}

func (f *fakeRepo) RecordIsolatedArticle(ctx context.Context, articleURL, baseDomain string) error {
	f.isolated[articleURL] = baseDomain
	f.domainID(baseDomain)
	return nil
}

func (f *fakeRepo) SiteScore(ctx context.Context, baseDomainID int64, scoresVersion int) (float64, int, error) {
	sum, count := 0, 0
	for _, p := range f.pages {
		if p.BaseDomainID == baseDomainID && p.ScoresVersion == scoresVersion && p.ContentScore != nil {
			sum += *p.ContentScore
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

func (f *fakeRepo) DomainArticleCounts(ctx context.Context, baseDomainID int64) (int, int, error) {
	isolated := 0
	for _, base := range f.isolated {
		if f.domainIDs[base] == baseDomainID {
			isolated++
		}
	}
	scored := 0
	for _, p := range f.pages {
		if p.BaseDomainID == baseDomainID && p.ContentScore != nil {
			scored++
		}
	}
	return isolated, scored, nil
}

func (f *fakeRepo) InterestingCount(ctx context.Context, webPageID int64) (int, error) {
	return len(f.related[webPageID]), nil
}

func (f *fakeRepo) RelatedSelection(ctx context.Context, webPageID int64, limit int) ([]domain.RelatedArticle, error) {
	selection := f.related[webPageID]
	if len(selection) > limit {
		selection = selection[:limit]
	}
	return selection, nil
}

func (f *fakeRepo) DeleteUnscored(ctx context.Context) (int64, error) {
	var deleted int64
	for pageURL, p := range f.pages {
		if p.ContentScore == nil {
			delete(f.pages, pageURL)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeRepo) DeleteStaleVersions(ctx context.Context, belowVersion int) (int64, error) {
	var deleted int64
	for pageURL, p := range f.pages {
		if p.ContentScore != nil && p.ScoresVersion < belowVersion {
			delete(f.pages, pageURL)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeRepo) Ping(ctx context.Context) error {
	return f.pingErr
}

var _ ports.Repository = (*fakeRepo)(nil)
