package store

import (
	"fmt"
	"strings"

	"lifeline-cli/internal/model"
)

// CreateCategory appends a category at the end of the display order.
func CreateCategory(db *DB, name, slug, color, icon, description string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, fmt.Errorf("category name is required")
	}
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		slug = slugify(name)
	}
	for _, c := range db.Categories {
		if c.Slug == slug {
			return model.Category{}, fmt.Errorf("category slug %q already exists", slug)
		}
	}
	id, err := NewCategoryID(db)
	if err != nil {
		return model.Category{}, err
	}

	maxOrder := -1
	for _, c := range db.Categories {
		if c.DisplayOrder > maxOrder {
			maxOrder = c.DisplayOrder
		}
	}
	ts := now()
	cat := model.Category{
		ID:           id,
		Name:         name,
		Slug:         slug,
		Icon:         strings.TrimSpace(icon),
		Color:        strings.TrimSpace(color),
		Description:  strings.TrimSpace(description),
		DisplayOrder: maxOrder + 1,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	db.Categories = append(db.Categories, cat)
	return cat, nil
}

// UpdateCategory applies non-empty fields to an existing category.
func UpdateCategory(db *DB, id string, name, color, icon, description *string) (model.Category, error) {
	for i := range db.Categories {
		if db.Categories[i].ID != id {
			continue
		}
		c := &db.Categories[i]
		if name != nil && strings.TrimSpace(*name) != "" {
			c.Name = strings.TrimSpace(*name)
		}
		if color != nil {
			c.Color = strings.TrimSpace(*color)
		}
		if icon != nil {
			c.Icon = strings.TrimSpace(*icon)
		}
		if description != nil {
			c.Description = strings.TrimSpace(*description)
		}
		c.UpdatedAt = now()
		return *c, nil
	}
	return model.Category{}, fmt.Errorf("category not found: %s", id)
}

// DeleteCategory removes an empty category. Categories still referenced by
// events cannot be deleted; reassign or delete the events first.
func DeleteCategory(db *DB, id string) error {
	if n := len(db.EventsInCategory(id)); n > 0 {
		return fmt.Errorf("category has %d event(s); delete or reassign them first", n)
	}
	for i := range db.Categories {
		if db.Categories[i].ID == id {
			db.Categories = append(db.Categories[:i], db.Categories[i+1:]...)
			renumberCategories(db)
			return nil
		}
	}
	return fmt.Errorf("category not found: %s", id)
}

// ApplyCategoryOrder rewrites display orders to match the given id sequence.
// The sequence must mention every category exactly once: a partial write would
// leave orders non-contiguous, so it is rejected as a whole.
func ApplyCategoryOrder(db *DB, orderedIDs []string) error {
	if len(orderedIDs) != len(db.Categories) {
		return fmt.Errorf("order lists %d categories, want %d", len(orderedIDs), len(db.Categories))
	}
	index := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		if _, dup := index[id]; dup {
			return fmt.Errorf("duplicate category id in order: %s", id)
		}
		index[id] = i
	}
	for i := range db.Categories {
		ord, ok := index[db.Categories[i].ID]
		if !ok {
			return fmt.Errorf("order is missing category %s", db.Categories[i].ID)
		}
		db.Categories[i].DisplayOrder = ord
		db.Categories[i].UpdatedAt = now()
	}
	SortCategories(db.Categories)
	return nil
}

func renumberCategories(db *DB) {
	SortCategories(db.Categories)
	for i := range db.Categories {
		db.Categories[i].DisplayOrder = i
	}
}

func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// DefaultCategories are seeded into a fresh workspace so the timeline has
// recognizable lanes from the start.
func DefaultCategories() []model.Category {
	defs := []struct{ name, slug, icon, color string }{
		{"Work", "work", "briefcase", "blue"},
		{"Housing", "housing", "home", "green"},
		{"Vehicle", "vehicle", "car", "orange"},
		{"Travel", "travel", "plane", "cyan"},
		{"Relationship", "relationship", "heart", "pink"},
	}
	ts := now()
	out := make([]model.Category, 0, len(defs))
	for i, d := range defs {
		out = append(out, model.Category{
			Name:         d.name,
			Slug:         d.slug,
			Icon:         d.icon,
			Color:        d.color,
			DisplayOrder: i,
			CreatedAt:    ts,
			UpdatedAt:    ts,
		})
	}
	return out
}

// SeedDefaultCategories adds the default set to a workspace with no
// categories, assigning fresh ids.
func SeedDefaultCategories(db *DB) error {
	if len(db.Categories) > 0 {
		return nil
	}
	for _, c := range DefaultCategories() {
		id, err := NewCategoryID(db)
		if err != nil {
			return err
		}
		c.ID = id
		db.Categories = append(db.Categories, c)
	}
	return nil
}
