// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists article records in SQLite and exposes the
// lookups the bot and the batch jobs need. It is the single source of
// truth; rows are only ever inserted or enriched with a summary, never
// deleted.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/arxiv-monitor/pkg/types"
)

// dateFmt is how published_date is stored. RFC3339 UTC strings compare
// lexicographically in chronological order, so period filters are plain
// string comparisons.
const dateFmt = time.RFC3339

// Store manages the articles SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			published_date TEXT NOT NULL,
			pdf_url TEXT,
			file_path TEXT,
			summary TEXT,
			summary_path TEXT
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_articles_pdf_url
			ON articles(pdf_url) WHERE pdf_url IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_articles_published
			ON articles(published_date)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// BatchSummary holds counts from one SaveBatch call.
type BatchSummary struct {
	Inserted int
	Skipped  int
}

// SaveBatch inserts articles inside a single transaction, skipping any
// whose non-empty pdf_url is already stored. A failure rolls back the
// whole batch; batches committed earlier in the same run stand.
func (s *Store) SaveBatch(ctx context.Context, articles []types.RawArticle) (BatchSummary, error) {
	var summary BatchSummary
	if len(articles) == 0 {
		return summary, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, a := range articles {
		if a.PDFURL != "" {
			var exists int
			err := tx.QueryRowContext(ctx,
				`SELECT 1 FROM articles WHERE pdf_url = ?`, a.PDFURL,
			).Scan(&exists)
			if err == nil {
				summary.Skipped++
				continue
			}
			if err != sql.ErrNoRows {
				return BatchSummary{}, fmt.Errorf("checking pdf_url %s: %w", a.PDFURL, err)
			}
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO articles (title, published_date, pdf_url) VALUES (?, ?, ?)`,
			a.Title, a.Published.UTC().Format(dateFmt), nullable(a.PDFURL),
		)
		if err != nil {
			return BatchSummary{}, fmt.Errorf("inserting article %q: %w", a.Title, err)
		}
		summary.Inserted++
	}

	if err := tx.Commit(); err != nil {
		return BatchSummary{}, fmt.Errorf("committing batch: %w", err)
	}
	return summary, nil
}

// CountSince returns the number of articles published within the last
// days. Non-positive days counts every row.
func (s *Store) CountSince(ctx context.Context, days int) (int, error) {
	query := `SELECT COUNT(*) FROM articles`
	var args []any
	if days > 0 {
		query += ` WHERE published_date >= ?`
		args = append(args, sinceDate(days))
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting articles: %w", err)
	}
	return count, nil
}

// ListSince returns articles published within the last days, newest
// first, optionally filtered by a case-insensitive title substring.
// Non-positive days lists every row; limit bounds the result set.
func (s *Store) ListSince(ctx context.Context, days int, keyword string, limit int) ([]types.Article, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(selectColumns + ` WHERE 1=1`)

	if days > 0 {
		qb.WriteString(` AND published_date >= ?`)
		args = append(args, sinceDate(days))
	}
	if keyword != "" {
		qb.WriteString(` AND LOWER(title) LIKE '%' || LOWER(?) || '%'`)
		args = append(args, keyword)
	}

	qb.WriteString(` ORDER BY published_date DESC`)
	if limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

// FindByTitle returns the first article whose title contains text
// (case-insensitive), or nil when nothing matches.
func (s *Store) FindByTitle(ctx context.Context, text string) (*types.Article, error) {
	row := s.db.QueryRowContext(ctx,
		selectColumns+` WHERE LOWER(title) LIKE '%' || LOWER(?) || '%' LIMIT 1`, text)
	return scanOne(row)
}

// FindByID returns the article with the given identifier, or nil.
func (s *Store) FindByID(ctx context.Context, id int64) (*types.Article, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	return scanOne(row)
}

// SetSummary records the generated summary and its file path in one
// statement so the two columns cannot diverge.
func (s *Store) SetSummary(ctx context.Context, id int64, summary, path string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE articles SET summary = ?, summary_path = ? WHERE id = ?`,
		summary, path, id)
	if err != nil {
		return fmt.Errorf("setting summary for article %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("article %d not found", id)
	}
	return nil
}

// ListMissingSummaries returns every article the summarizer has not
// processed yet, oldest first so backlog drains in publication order.
func (s *Store) ListMissingSummaries(ctx context.Context) ([]types.Article, error) {
	rows, err := s.db.QueryContext(ctx,
		selectColumns+` WHERE summary IS NULL ORDER BY published_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing unsummarized articles: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

const selectColumns = `SELECT id, title, published_date, pdf_url, file_path, summary, summary_path FROM articles`

func sinceDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, -days).Format(dateFmt)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (types.Article, error) {
	var (
		a         types.Article
		published string
		pdfURL    sql.NullString
		filePath  sql.NullString
		summary   sql.NullString
		sumPath   sql.NullString
	)

	if err := row.Scan(&a.ID, &a.Title, &published, &pdfURL, &filePath, &summary, &sumPath); err != nil {
		return types.Article{}, err
	}

	t, err := time.Parse(dateFmt, published)
	if err != nil {
		return types.Article{}, fmt.Errorf("parsing published_date %q: %w", published, err)
	}
	a.PublishedDate = t
	a.PDFURL = pdfURL.String
	a.FilePath = filePath.String
	a.Summary = summary.String
	a.SummaryPath = sumPath.String
	return a, nil
}

func scanArticles(rows *sql.Rows) ([]types.Article, error) {
	var articles []types.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func scanOne(row *sql.Row) (*types.Article, error) {
	a, err := scanArticle(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning row: %w", err)
	}
	return &a, nil
}
