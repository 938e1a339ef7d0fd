// Package store handles SQLite persistence of the applied display theme.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/readease/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Fixed-width so applied_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for applied themes.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS themes (
			id INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL,
			name TEXT NOT NULL,
			background TEXT NOT NULL,
			text TEXT NOT NULL,
			contrast_ratio REAL NOT NULL,
			comfort_rating INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_themes_applied_at ON themes(applied_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveTheme records theme as the active display theme.
func (s *Store) SaveTheme(ctx context.Context, theme model.AppliedTheme) (int64, error) {
	if theme.AppliedAt.IsZero() {
		theme.AppliedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO themes (applied_at, name, background, text, contrast_ratio, comfort_rating)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		theme.AppliedAt.UTC().Format(timeLayout),
		theme.Name,
		theme.Background.Hex(),
		theme.Text.Hex(),
		theme.ContrastRatio,
		theme.ComfortRating,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// CurrentTheme returns the most recently applied theme. The bool is false when
// no theme was ever applied.
func (s *Store) CurrentTheme(ctx context.Context) (model.AppliedTheme, bool, error) {
	themes, err := s.ListThemes(ctx, 1)
	if err != nil {
		return model.AppliedTheme{}, false, err
	}
	if len(themes) == 0 {
		return model.AppliedTheme{}, false, nil
	}
	return themes[0], true, nil
}

// ListThemes returns applied themes, newest first. A non-positive limit returns all.
func (s *Store) ListThemes(ctx context.Context, limit int) ([]model.AppliedTheme, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, applied_at, name, background, text, contrast_ratio, comfort_rating
		 FROM themes
		 ORDER BY applied_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var themes []model.AppliedTheme
	for rows.Next() {
		theme, err := scanTheme(rows)
		if err != nil {
			return nil, err
		}
		themes = append(themes, theme)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return themes, nil
}

func scanTheme(rows *sql.Rows) (model.AppliedTheme, error) {
	var (
		theme     model.AppliedTheme
		appliedAt string
		bg, text  string
	)
	if err := rows.Scan(&theme.ID, &appliedAt, &theme.Name, &bg, &text, &theme.ContrastRatio, &theme.ComfortRating); err != nil {
		return model.AppliedTheme{}, err
	}
	parsed, err := time.Parse(timeLayout, appliedAt)
	if err != nil {
		return model.AppliedTheme{}, err
	}
	theme.AppliedAt = parsed
	if theme.Background, err = model.ParseHex(bg); err != nil {
		return model.AppliedTheme{}, fmt.Errorf("corrupt theme background: %w", err)
	}
	if theme.Text, err = model.ParseHex(text); err != nil {
		return model.AppliedTheme{}, fmt.Errorf("corrupt theme text: %w", err)
	}
	return theme, nil
}
