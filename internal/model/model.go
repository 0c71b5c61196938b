package model

import "time"

// Plan identifies the local subscription tier. The gate is enforced
// client-side; there is no billing backend.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// Profile is the single local user of a workspace.
type Profile struct {
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Birthdate string    `json:"birthdate,omitempty"` // YYYY-MM-DD
	CreatedAt time.Time `json:"createdAt"`
}

// BirthdateTime parses Birthdate. ok is false when unset or malformed.
func (p Profile) BirthdateTime() (time.Time, bool) {
	if p.Birthdate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", p.Birthdate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Category is a horizontal lane on the timeline. DisplayOrder is dense and
// zero-based; reordering rewrites it for every category.
type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug,omitempty"`
	Icon         string    `json:"icon,omitempty"`
	Color        string    `json:"color"`
	Description  string    `json:"description,omitempty"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Event is a dated life event. EndDate nil means the event is ongoing.
type Event struct {
	ID          string  `json:"id"`
	CategoryID  string  `json:"categoryId"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"` // markdown
	StartDate   string  `json:"startDate"`             // YYYY-MM-DD
	EndDate     *string `json:"endDate,omitempty"`     // YYYY-MM-DD
	Location    string  `json:"location,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Start parses StartDate. Events with malformed start dates are rejected at
// creation, so callers may treat an error here as corrupt state.
func (e Event) Start() (time.Time, error) {
	return time.Parse("2006-01-02", e.StartDate)
}

// End parses EndDate. ok is false for ongoing events (or malformed ends).
func (e Event) End() (time.Time, bool) {
	if e.EndDate == nil || *e.EndDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", *e.EndDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Photo is a local photo attached to an event. Path is relative to the
// workspace photos directory.
type Photo struct {
	ID      string `json:"id"`
	EventID string `json:"eventId"`
	Path    string `json:"path"`
	Caption string `json:"caption,omitempty"`
	Order   int    `json:"order"`

	CreatedAt time.Time `json:"createdAt"`
}
