package store

import (
	"fmt"
	"strings"
	"time"

	"lifeline-cli/internal/model"
)

// EventInput carries the user-editable fields of an event.
type EventInput struct {
	CategoryID  string
	Title       string
	Description string
	StartDate   string  // YYYY-MM-DD, required
	EndDate     *string // YYYY-MM-DD, nil for ongoing
	Location    string
}

func validateEventInput(db *DB, in EventInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("event title is required")
	}
	if _, ok := db.CategoryByID(in.CategoryID); !ok {
		return fmt.Errorf("category not found: %s", in.CategoryID)
	}
	start, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start date %q (want YYYY-MM-DD)", in.StartDate)
	}
	if in.EndDate != nil && *in.EndDate != "" {
		end, err := time.Parse("2006-01-02", *in.EndDate)
		if err != nil {
			return fmt.Errorf("invalid end date %q (want YYYY-MM-DD)", *in.EndDate)
		}
		if end.Before(start) {
			return fmt.Errorf("end date %s is before start date %s", *in.EndDate, in.StartDate)
		}
	}
	return nil
}

// CreateEvent validates and appends a new event.
func CreateEvent(db *DB, in EventInput) (model.Event, error) {
	if err := validateEventInput(db, in); err != nil {
		return model.Event{}, err
	}
	id, err := NewEventID(db)
	if err != nil {
		return model.Event{}, err
	}
	ts := now()
	ev := model.Event{
		ID:          id,
		CategoryID:  in.CategoryID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     normalizeEnd(in.EndDate),
		Location:    strings.TrimSpace(in.Location),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	db.Events = append(db.Events, ev)
	SortEvents(db.Events)
	return ev, nil
}

// UpdateEvent replaces the editable fields of an existing event.
func UpdateEvent(db *DB, id string, in EventInput) (model.Event, error) {
	if err := validateEventInput(db, in); err != nil {
		return model.Event{}, err
	}
	for i := range db.Events {
		if db.Events[i].ID != id {
			continue
		}
		e := &db.Events[i]
		e.CategoryID = in.CategoryID
		e.Title = strings.TrimSpace(in.Title)
		e.Description = in.Description
		e.StartDate = in.StartDate
		e.EndDate = normalizeEnd(in.EndDate)
		e.Location = strings.TrimSpace(in.Location)
		e.UpdatedAt = now()
		ev := *e
		SortEvents(db.Events)
		return ev, nil
	}
	return model.Event{}, fmt.Errorf("event not found: %s", id)
}

// DeleteEvent removes an event and its photo rows.
func DeleteEvent(db *DB, id string) error {
	for i := range db.Events {
		if db.Events[i].ID != id {
			continue
		}
		db.Events = append(db.Events[:i], db.Events[i+1:]...)
		kept := db.Photos[:0]
		for _, p := range db.Photos {
			if p.EventID != id {
				kept = append(kept, p)
			}
		}
		db.Photos = kept
		return nil
	}
	return fmt.Errorf("event not found: %s", id)
}

func normalizeEnd(end *string) *string {
	if end == nil || strings.TrimSpace(*end) == "" {
		return nil
	}
	v := strings.TrimSpace(*end)
	return &v
}
