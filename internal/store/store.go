// Package store persists analysis reports and narrative clusters.
//
// SQLite is the source of truth: reports flow in after analysis and the
// clusterer reads its article window back out. Store is safe for
// concurrent use; individual operations are atomic and SaveReport runs
// in a transaction.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ppiankov/biaslab/internal/model"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// Store handles persistence of analyzed articles, their highlights and
// narrative clusters.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at the given path and
// applies migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS articles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		outlet TEXT,
		url TEXT,
		summary TEXT,
		scores TEXT,
		claims TEXT,
		overall TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_articles_created ON articles(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_articles_url ON articles(url);

	CREATE TABLE IF NOT EXISTS highlights (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		article_id INTEGER NOT NULL REFERENCES articles(id),
		dimension TEXT NOT NULL,
		data TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_highlights_article ON highlights(article_id);
	CREATE INDEX IF NOT EXISTS idx_highlights_dimension ON highlights(dimension);

	CREATE TABLE IF NOT EXISTS narratives (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		label TEXT NOT NULL,
		data TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveReport stores a completed report and its highlight rows atomically,
// returning the assigned article id.
func (s *Store) SaveReport(ctx context.Context, report *model.AnalysisReport) (int64, error) {
	scores, err := json.Marshal(report.Scores)
	if err != nil {
		return 0, fmt.Errorf("marshal scores: %w", err)
	}
	claims, err := json.Marshal(report.Claims)
	if err != nil {
		return 0, fmt.Errorf("marshal claims: %w", err)
	}
	overall, err := json.Marshal(report.Overall)
	if err != nil {
		return 0, fmt.Errorf("marshal overall: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO articles (title, outlet, url, summary, scores, claims, overall)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		report.Title, report.Outlet, report.URL, report.Summary,
		string(scores), string(claims), string(overall))
	if err != nil {
		return 0, fmt.Errorf("insert article: %w", err)
	}

	articleID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("article id: %w", err)
	}

	for _, h := range report.Highlights {
		data, err := json.Marshal(h)
		if err != nil {
			return 0, fmt.Errorf("marshal highlight: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO highlights (article_id, dimension, data)
			VALUES (?, ?, ?)`, articleID, h.Dimension, string(data)); err != nil {
			return 0, fmt.Errorf("insert highlight: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return articleID, nil
}

// RecentArticles returns the most recent articles, newest first, for the
// clustering window.
func (s *Store) RecentArticles(ctx context.Context, window int) ([]model.ClusterArticle, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, COALESCE(url, '')
		FROM articles ORDER BY id DESC LIMIT ?`, window)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var articles []model.ClusterArticle
	for rows.Next() {
		var a model.ClusterArticle
		if err := rows.Scan(&a.ID, &a.Title, &a.URL); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// narrativeData is the JSON payload stored per narrative row.
type narrativeData struct {
	ArticleIDs []int64  `json:"article_ids"`
	Summary    string   `json:"summary"`
	Signature  []string `json:"token_signature,omitempty"`
	CreatedAt  string   `json:"created_at"`
}

// SaveNarratives persists one clustering run's output.
func (s *Store) SaveNarratives(ctx context.Context, clusters []model.NarrativeCluster) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, c := range clusters {
		data, err := json.Marshal(narrativeData{
			ArticleIDs: c.ArticleIDs,
			Summary:    fmt.Sprintf("Cluster of %d related stories.", len(c.ArticleIDs)),
			Signature:  c.Signature,
			CreatedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("marshal narrative: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO narratives (label, data) VALUES (?, ?)`,
			c.Label, string(data)); err != nil {
			return fmt.Errorf("insert narrative: %w", err)
		}
	}
	return tx.Commit()
}

// Narrative is one stored narrative row.
type Narrative struct {
	ID        int64
	Label     string
	Data      string
	CreatedAt time.Time
}

// ListNarratives returns stored narratives, newest first.
func (s *Store) ListNarratives(ctx context.Context, limit int) ([]Narrative, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, COALESCE(data, ''), created_at
		FROM narratives ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query narratives: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Narrative
	for rows.Next() {
		var n Narrative
		var created sql.NullTime
		if err := rows.Scan(&n.ID, &n.Label, &n.Data, &created); err != nil {
			return nil, fmt.Errorf("scan narrative: %w", err)
		}
		n.CreatedAt = created.Time
		out = append(out, n)
	}
	return out, rows.Err()
}
