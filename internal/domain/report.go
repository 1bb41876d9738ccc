package domain

// Report is the public serialization of a scored page.
type Report struct {
	URL                             string           `json:"url"`
	GlobalScore                     float64          `json:"global_score"`
	TotalArticles                   int              `json:"total_articles"`
	SiteScoreArticlesCount          int              `json:"site_score_articles_count"`
	InterestingRelatedArticlesCount int              `json:"interesting_related_articles_count"`
	Scores                          Scores           `json:"scores"`
	RelatedArticlesSelection        []RelatedSummary `json:"related_articles_selection"`
}

// Scores groups the individual score axes shown to clients.
type Scores struct {
	ContentScore          int     `json:"content_score"`
	SiteScore             float64 `json:"site_score"`
	IsolatedArticlesScore float64 `json:"isolated_articles_score"`
}

// RelatedSummary is one entry of the related-articles selection.
type RelatedSummary struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Publisher string `json:"publisher"`
}
