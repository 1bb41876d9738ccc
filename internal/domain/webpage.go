package domain

import "time"

// WebPage is the persisted scoring record for one URL. ContentScore is nil
// while a computation is in flight; the row is deleted outright when the
// article turns out to be unscoreable.
type WebPage struct {
	ID            int64
	URL           string
	ContentScore  *int
	BaseDomainID  int64
	BaseDomain    string
	ScoresVersion int
	TotalArticles int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RelatedArticle is one persisted interesting related article. The set
// attached to a WebPage is replaced wholesale on every successful run.
type RelatedArticle struct {
	Title      string
	URL        string
	Score      int
	BaseDomain string
}
