package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"lifeline-cli/internal/model"
)

// DB is the in-memory workspace state. Mutations edit it in place; Save writes
// the whole state back to sqlite in one transaction.
type DB struct {
	Version    int              `json:"version"`
	Profile    model.Profile    `json:"profile"`
	Plan       model.Plan       `json:"plan"`
	Categories []model.Category `json:"categories"`
	Events     []model.Event    `json:"events"`
	Photos     []model.Photo    `json:"photos"`
}

// Store locates a workspace directory on disk.
type Store struct {
	Dir string
}

func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".lifeline")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func WorkspaceDir(name string) (string, error) {
	name, err := NormalizeWorkspaceName(name)
	if err != nil {
		return "", err
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "workspaces", name), nil
}

func NormalizeWorkspaceName(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", errors.New("empty workspace name")
	}
	for _, r := range name {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '_' {
			continue
		}
		return "", fmt.Errorf("invalid workspace name %q (use a-z, 0-9, '-', '_')", name)
	}
	return name, nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

// Load reads the workspace state, initializing an empty one on first use.
func (s Store) Load() (*DB, error) {
	return s.LoadSQLite(context.Background())
}

// Save persists the full state.
func (s Store) Save(db *DB) error {
	return s.SaveSQLite(context.Background(), db)
}

func emptyDB() *DB {
	return &DB{
		Version:    1,
		Plan:       model.PlanFree,
		Categories: []model.Category{},
		Events:     []model.Event{},
		Photos:     []model.Photo{},
	}
}

// SortCategories orders categories by display order (id as a stable tiebreak
// for legacy rows with duplicate orders).
func SortCategories(cats []model.Category) {
	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].DisplayOrder != cats[j].DisplayOrder {
			return cats[i].DisplayOrder < cats[j].DisplayOrder
		}
		return cats[i].ID < cats[j].ID
	})
}

// SortEvents orders events by start date, then creation time.
func SortEvents(events []model.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].StartDate != events[j].StartDate {
			return events[i].StartDate < events[j].StartDate
		}
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
}

func (db *DB) CategoryByID(id string) (model.Category, bool) {
	for _, c := range db.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

func (db *DB) EventByID(id string) (model.Event, bool) {
	for _, e := range db.Events {
		if e.ID == id {
			return e, true
		}
	}
	return model.Event{}, false
}

func (db *DB) EventsInCategory(categoryID string) []model.Event {
	var out []model.Event
	for _, e := range db.Events {
		if e.CategoryID == categoryID {
			out = append(out, e)
		}
	}
	return out
}

func (db *DB) PhotosForEvent(eventID string) []model.Photo {
	var out []model.Photo
	for _, p := range db.Photos {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func now() time.Time { return time.Now().UTC() }
