// Package timeline implements the layout engine behind the timeline views:
// date↔pixel coordinate mapping with zoom, level-of-detail filtering,
// master/follower scroll synchronization, and lane reordering with optimistic
// persistence. It is UI-free; the TUI and CLI feed it immutable snapshots of
// lanes and events and render from the positions it computes.
package timeline

import "time"

// avgDaysPerMonth keeps month width constant across the axis. Using calendar
// month lengths would make the same zoom level render February narrower than
// July and introduce jitter when panning.
const avgDaysPerMonth = 30.44

// ongoingNominalMonths is the duration assumed for ongoing events when the
// visibility filter needs a duration. It does not affect rendered width.
const ongoingNominalMonths = 3

// Config carries the tuning values of the layout engine. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// BasePixelsPerMonth is the width of one month at zoom 1.0.
	BasePixelsPerMonth float64
	MinZoom            float64
	MaxZoom            float64
	// ZoomStep multiplies (or divides) the zoom factor per step.
	ZoomStep float64
	// MinEventWidth keeps zero/near-zero duration events selectable.
	MinEventWidth float64
	// VisibilityThreshold is the projected width at which a short event still
	// qualifies for display at coarse zoom levels.
	VisibilityThreshold float64
}

func DefaultConfig() Config {
	return Config{
		BasePixelsPerMonth:  120,
		MinZoom:             0.25,
		MaxZoom:             4,
		ZoomStep:            1.5,
		MinEventWidth:       40,
		VisibilityThreshold: 80,
	}
}

// Lane is one horizontal track of the timeline. Order is dense and zero-based.
type Lane struct {
	ID    string
	Label string
	Color string
	Order int
}

// Event is a dated item placed on a lane. A nil End means the event is
// ongoing and extends to "now" for layout purposes.
type Event struct {
	ID     string
	LaneID string
	Title  string
	Start  time.Time
	End    *time.Time
}

// Scale maps calendar dates to horizontal pixel offsets.
//
// The domain (addressable date range) depends only on the data: it always
// contains every event plus one month of padding on each side. Zoom is a pure
// magnification of the same domain and never re-windows it.
type Scale struct {
	cfg  Config
	zoom float64

	domainStart time.Time
	domainEnd   time.Time
	now         time.Time
}

// NewScale builds a scale at zoom 1.0 over the given events. fallbackStart
// anchors the domain when there are no events (typically the profile birthdate,
// or the start of the current year). now substitutes for missing end dates.
func NewScale(cfg Config, events []Event, fallbackStart time.Time, now time.Time) *Scale {
	s := &Scale{cfg: cfg, zoom: 1, now: now}
	s.SetEvents(events, fallbackStart)
	return s
}

// SetEvents recomputes the domain for a new event snapshot. Zoom is preserved.
func (s *Scale) SetEvents(events []Event, fallbackStart time.Time) {
	if fallbackStart.IsZero() {
		fallbackStart = time.Date(s.now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	start := fallbackStart
	end := s.now
	for _, ev := range events {
		if ev.Start.Before(start) {
			start = ev.Start
		}
		if ee := s.EffectiveEnd(ev); ee.After(end) {
			end = ee
		}
	}
	s.domainStart = start.AddDate(0, -1, 0)
	s.domainEnd = end.AddDate(0, 1, 0)
}

func (s *Scale) Config() Config          { return s.cfg }
func (s *Scale) Zoom() float64           { return s.zoom }
func (s *Scale) Now() time.Time          { return s.now }
func (s *Scale) DomainStart() time.Time  { return s.domainStart }
func (s *Scale) DomainEnd() time.Time    { return s.domainEnd }
func (s *Scale) PixelsPerMonth() float64 { return s.cfg.BasePixelsPerMonth * s.zoom }

// PixelsPerDay derives the day width from the fixed average month length, so
// positions are exact to sub-pixel precision rather than snapped to months.
func (s *Scale) PixelsPerDay() float64 {
	return s.cfg.BasePixelsPerMonth / avgDaysPerMonth * s.zoom
}

// PositionOf returns the pixel offset of a date from the domain start.
// Monotonic: later dates always map to larger offsets.
func (s *Scale) PositionOf(t time.Time) float64 {
	days := t.Sub(s.domainStart).Hours() / 24
	return days * s.PixelsPerDay()
}

// EffectiveEnd is the end used for layout: the event end, "now" for ongoing
// events, or the start itself when the recorded end precedes it (invalid input
// degrades to a zero-duration event instead of a negative width).
func (s *Scale) EffectiveEnd(ev Event) time.Time {
	if ev.End == nil {
		return s.now
	}
	if ev.End.Before(ev.Start) {
		return ev.Start
	}
	return *ev.End
}

// WidthOf returns the rendered width of an event, floored at MinEventWidth.
func (s *Scale) WidthOf(ev Event) float64 {
	w := s.PositionOf(s.EffectiveEnd(ev)) - s.PositionOf(ev.Start)
	if w < s.cfg.MinEventWidth {
		return s.cfg.MinEventWidth
	}
	return w
}

// TotalWidth is the pixel width of the full domain.
func (s *Scale) TotalWidth() float64 {
	return s.PositionOf(s.domainEnd)
}

// ZoomIn multiplies the zoom by one step. Returns false when already clamped
// at MaxZoom (the request is a no-op, not an error).
func (s *Scale) ZoomIn() bool { return s.setZoom(s.zoom * s.cfg.ZoomStep) }

// ZoomOut divides the zoom by one step, clamped at MinZoom.
func (s *Scale) ZoomOut() bool { return s.setZoom(s.zoom / s.cfg.ZoomStep) }

// ResetZoom returns to 1.0.
func (s *Scale) ResetZoom() { s.zoom = 1 }

func (s *Scale) setZoom(z float64) bool {
	if z < s.cfg.MinZoom {
		z = s.cfg.MinZoom
	}
	if z > s.cfg.MaxZoom {
		z = s.cfg.MaxZoom
	}
	if z == s.zoom {
		return false
	}
	s.zoom = z
	return true
}
