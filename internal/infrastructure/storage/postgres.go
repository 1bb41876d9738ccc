// Package storage persists web pages, base domains, interesting related
// articles, and the isolated-articles ledger in Postgres.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"NewsTrust/internal/domain"
	"NewsTrust/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS base_domains (
	id SERIAL PRIMARY KEY,
	base_domain VARCHAR(250) UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS web_pages (
	id SERIAL PRIMARY KEY,
	url VARCHAR(500) UNIQUE NOT NULL,
	content_score INTEGER,
	base_domain_id INTEGER NOT NULL REFERENCES base_domains(id),
	scores_version INTEGER NOT NULL,
	total_articles INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_web_pages_base_domain ON web_pages(base_domain_id);
CREATE INDEX IF NOT EXISTS idx_web_pages_scores_version ON web_pages(scores_version);

CREATE TABLE IF NOT EXISTS interesting_related_articles (
	id SERIAL PRIMARY KEY,
	title VARCHAR(500) NOT NULL,
	url VARCHAR(500) NOT NULL,
	score INTEGER NOT NULL,
	web_page_id INTEGER NOT NULL REFERENCES web_pages(id) ON DELETE CASCADE,
	base_domain_id INTEGER NOT NULL REFERENCES base_domains(id)
);

CREATE INDEX IF NOT EXISTS idx_related_web_page ON interesting_related_articles(web_page_id);

CREATE TABLE IF NOT EXISTS isolated_articles (
	id SERIAL PRIMARY KEY,
	url VARCHAR(500) UNIQUE NOT NULL,
	base_domain_id INTEGER NOT NULL REFERENCES base_domains(id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_isolated_base_domain ON isolated_articles(base_domain_id);
`

// Repository implements ports.Repository on Postgres.
type Repository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ ports.Repository = (*Repository)(nil)

// Open connects to Postgres and verifies the connection.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// NewRepository wires a sql.DB and ensures the schema exists.
func NewRepository(db *sql.DB) (*Repository, error) {
	r := &Repository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return r, nil
}

// WebPageByURL loads one page row with its base domain; (nil, nil) if absent.
func (r *Repository) WebPageByURL(ctx context.Context, url string) (*domain.WebPage, error) {
	query, args, err := r.sb.
		Select("w.id", "w.url", "w.content_score", "w.base_domain_id", "d.base_domain",
			"w.scores_version", "w.total_articles", "w.created_at", "w.updated_at").
		From("web_pages w").
		Join("base_domains d ON d.id = w.base_domain_id").
		Where(sq.Eq{"w.url": url}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var page domain.WebPage
	var score sql.NullInt64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&page.ID, &page.URL, &score, &page.BaseDomainID, &page.BaseDomain,
		&page.ScoresVersion, &page.TotalArticles, &page.CreatedAt, &page.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query web page: %w", err)
	}

	if score.Valid {
		value := int(score.Int64)
		page.ContentScore = &value
	}
	return &page, nil
}

// CreateWebPage inserts a row with a null content score, creating the base
// domain lazily.
func (r *Repository) CreateWebPage(ctx context.Context, url, baseDomain string, scoresVersion int) (*domain.WebPage, error) {
	domainID, err := r.upsertBaseDomain(ctx, r.db, baseDomain)
	if err != nil {
		return nil, err
	}

	query, args, err := r.sb.
		Insert("web_pages").
		Columns("url", "base_domain_id", "scores_version", "total_articles").
		Values(url, domainID, scoresVersion, 0).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	page := &domain.WebPage{
		URL:           url,
		BaseDomainID:  domainID,
		BaseDomain:    baseDomain,
		ScoresVersion: scoresVersion,
	}
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&page.ID, &page.CreatedAt, &page.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert web page: %w", err)
	}
	return page, nil
}

// SaveEvaluation writes the page's scoring fields and replaces its
// interesting related set in one transaction.
func (r *Repository) SaveEvaluation(ctx context.Context, page *domain.WebPage, related []domain.RelatedArticle) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	update, args, err := r.sb.
		Update("web_pages").
		Set("content_score", page.ContentScore).
		Set("scores_version", page.ScoresVersion).
		Set("total_articles", page.TotalArticles).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": page.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	if _, err := tx.ExecContext(ctx, update, args...); err != nil {
		return fmt.Errorf("update web page: %w", err)
	}

	del, args, err := r.sb.
		Delete("interesting_related_articles").
		Where(sq.Eq{"web_page_id": page.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := tx.ExecContext(ctx, del, args...); err != nil {
		return fmt.Errorf("clear related articles: %w", err)
	}

	for _, item := range related {
		domainID, err := r.upsertBaseDomain(ctx, tx, item.BaseDomain)
		if err != nil {
			return err
		}

		insert, args, err := r.sb.
			Insert("interesting_related_articles").
			Columns("title", "url", "score", "web_page_id", "base_domain_id").
			Values(item.Title, item.URL, item.Score, page.ID, domainID).
			ToSql()
		if err != nil {
			return fmt.Errorf("build related insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
			return fmt.Errorf("insert related article: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit evaluation: %w", err)
	}
	return nil
}

// DeleteWebPage removes the row; related articles cascade.
func (r *Repository) DeleteWebPage(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("web_pages").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete web page: %w", err)
	}
	return nil
}

// RecordIsolatedArticle upserts the ledger entry for the URL.
func (r *Repository) RecordIsolatedArticle(ctx context.Context, url, baseDomain string) error {
	domainID, err := r.upsertBaseDomain(ctx, r.db, baseDomain)
	if err != nil {
		return err
	}

	query, args, err := r.sb.
		Insert("isolated_articles").
		Columns("url", "base_domain_id").
		Values(url, domainID).
		Suffix("ON CONFLICT (url) DO UPDATE SET updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build isolated insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record isolated article: %w", err)
	}
	return nil
}

// SiteScore averages the domain's content scores on the given version.
func (r *Repository) SiteScore(ctx context.Context, baseDomainID int64, scoresVersion int) (float64, int, error) {
	query, args, err := r.sb.
		Select("COALESCE(AVG(content_score), 0)", "COUNT(*)").
		From("web_pages").
		Where(sq.Eq{"base_domain_id": baseDomainID, "scores_version": scoresVersion}).
		Where("content_score IS NOT NULL").
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("build query: %w", err)
	}

	var avg float64
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("query site score: %w", err)
	}
	return avg, count, nil
}

// DomainArticleCounts returns how many isolated and scored articles the
// domain has accumulated.
func (r *Repository) DomainArticleCounts(ctx context.Context, baseDomainID int64) (int, int, error) {
	isolated, err := r.count(ctx, "isolated_articles", sq.Eq{"base_domain_id": baseDomainID})
	if err != nil {
		return 0, 0, err
	}
	scored, err := r.count(ctx, "web_pages",
		sq.And{sq.Eq{"base_domain_id": baseDomainID}, sq.Expr("content_score IS NOT NULL")})
	if err != nil {
		return 0, 0, err
	}
	return isolated, scored, nil
}

// InterestingCount counts the page's stored related articles.
func (r *Repository) InterestingCount(ctx context.Context, webPageID int64) (int, error) {
	return r.count(ctx, "interesting_related_articles", sq.Eq{"web_page_id": webPageID})
}

// RelatedSelection returns the page's best related articles, highest score
// first.
func (r *Repository) RelatedSelection(ctx context.Context, webPageID int64, limit int) ([]domain.RelatedArticle, error) {
	query, args, err := r.sb.
		Select("i.title", "i.url", "i.score", "d.base_domain").
		From("interesting_related_articles i").
		Join("base_domains d ON d.id = i.base_domain_id").
		Where(sq.Eq{"i.web_page_id": webPageID}).
		OrderBy("i.score DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query related selection: %w", err)
	}
	defer rows.Close()

	var selection []domain.RelatedArticle
	for rows.Next() {
		var item domain.RelatedArticle
		if err := rows.Scan(&item.Title, &item.URL, &item.Score, &item.BaseDomain); err != nil {
			return nil, fmt.Errorf("scan related article: %w", err)
		}
		selection = append(selection, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return selection, nil
}

// DeleteUnscored removes pages whose content score is still null.
func (r *Repository) DeleteUnscored(ctx context.Context) (int64, error) {
	query, args, err := r.sb.Delete("web_pages").Where("content_score IS NULL").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete unscored pages: %w", err)
	}
	return result.RowsAffected()
}

// DeleteStaleVersions removes pages scored below the given policy version.
func (r *Repository) DeleteStaleVersions(ctx context.Context, belowVersion int) (int64, error) {
	query, args, err := r.sb.Delete("web_pages").Where(sq.Lt{"scores_version": belowVersion}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete stale pages: %w", err)
	}
	return result.RowsAffected()
}

// Ping verifies the database connection for the liveness probe.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// runner covers both *sql.DB and *sql.Tx.
type runner interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *Repository) upsertBaseDomain(ctx context.Context, run runner, baseDomain string) (int64, error) {
	query, args, err := r.sb.
		Insert("base_domains").
		Columns("base_domain").
		Values(baseDomain).
		Suffix("ON CONFLICT (base_domain) DO UPDATE SET base_domain = EXCLUDED.base_domain RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build domain upsert: %w", err)
	}

	var id int64
	if err := run.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("upsert base domain %q: %w", baseDomain, err)
	}
	return id, nil
}

func (r *Repository) count(ctx context.Context, table string, where any) (int, error) {
	query, args, err := r.sb.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
