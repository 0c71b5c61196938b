package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"lifeline-cli/internal/model"

	_ "modernc.org/sqlite"
)

const sqliteFileName = "lifeline.sqlite"

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids "database is
	// locked" flakiness when the CLI and TUI touch the same workspace.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL,
			display_order INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_categories_order ON categories(display_order);`,
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			category_id TEXT NOT NULL,
			title TEXT NOT NULL,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_category ON events(category_id);`,
		`CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_date);`,
		`CREATE TABLE IF NOT EXISTS photos (
			id TEXT PRIMARY KEY,
			event_id TEXT NOT NULL,
			path TEXT NOT NULL,
			photo_order INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_photos_event ON photos(event_id);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// LoadSQLite loads the workspace state, returning an initialized empty state
// for a fresh workspace.
func (s Store) LoadSQLite(ctx context.Context) (*DB, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return loadStateFromSQLite(ctx, db)
}

// SaveSQLite writes the full state in one transaction (replace-all: the state
// is small and single-user, so simplicity wins over incremental writes).
func (s Store) SaveSQLite(ctx context.Context, st *DB) error {
	if st == nil {
		return errors.New("nil db")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	profileJSON, _ := json.Marshal(st.Profile)
	meta := map[string]string{
		"version": strconv.Itoa(st.Version),
		"plan":    string(st.Plan),
		"profile": string(profileJSON),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, k, v); err != nil {
			return err
		}
	}

	for _, t := range []string{"categories", "events", "photos"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()

	for _, c := range st.Categories {
		raw, _ := json.Marshal(c)
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories(id, name, slug, display_order, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.Slug, c.DisplayOrder, string(raw), nowMs); err != nil {
			return err
		}
	}
	for _, e := range st.Events {
		raw, _ := json.Marshal(e)
		end := ""
		if e.EndDate != nil {
			end = *e.EndDate
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO events(id, category_id, title, start_date, end_date, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.CategoryID, e.Title, e.StartDate, end, string(raw), nowMs); err != nil {
			return err
		}
	}
	for _, p := range st.Photos {
		raw, _ := json.Marshal(p)
		if _, err := tx.ExecContext(ctx, `INSERT INTO photos(id, event_id, path, photo_order, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
			p.ID, p.EventID, p.Path, p.Order, string(raw), nowMs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func loadStateFromSQLite(ctx context.Context, db *sql.DB) (*DB, error) {
	out := emptyDB()

	readMeta := func(k string) string {
		var v string
		_ = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, k).Scan(&v)
		return strings.TrimSpace(v)
	}
	if v := readMeta("version"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			out.Version = n
		}
	}
	if v := readMeta("plan"); v != "" {
		out.Plan = model.Plan(v)
	}
	if v := readMeta("profile"); v != "" {
		_ = json.Unmarshal([]byte(v), &out.Profile)
	}

	if xs, err := readJSONRows[model.Category](ctx, db, `SELECT json FROM categories ORDER BY display_order, id`); err == nil {
		out.Categories = xs
	} else {
		return nil, err
	}
	if xs, err := readJSONRows[model.Event](ctx, db, `SELECT json FROM events ORDER BY start_date, id`); err == nil {
		out.Events = xs
	} else {
		return nil, err
	}
	if xs, err := readJSONRows[model.Photo](ctx, db, `SELECT json FROM photos ORDER BY event_id, photo_order`); err == nil {
		out.Photos = xs
	} else {
		return nil, err
	}

	if out.Categories == nil {
		out.Categories = []model.Category{}
	}
	if out.Events == nil {
		out.Events = []model.Event{}
	}
	if out.Photos == nil {
		out.Photos = []model.Photo{}
	}
	return out, nil
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
