package tui

import (
	"math"
	"time"

	"lifeline-cli/internal/model"
	"lifeline-cli/internal/store"
	"lifeline-cli/internal/timeline"
)

// The layout engine works in pixels; the terminal works in cells. One cell
// column represents pxPerCell horizontal pixels, so at the default scale a
// month is 12 cells wide.
const pxPerCell = 10.0

// Each lane occupies two terminal rows: the event bars and a separator row.
const laneRowHeight = 2

// surface bundles the scale, lane order, and scroll state behind one pointer
// so bubbletea's value-copied model always sees the same instance. The ruler
// and lane-label offsets are follower fields fed by the master viewport.
type surface struct {
	scale  *timeline.Scale
	lanes  *timeline.LaneSequence
	master *timeline.Viewport

	rulerX int
	labelY int

	events []timeline.Event
}

func newSurface(db *store.DB, now time.Time) *surface {
	events := timelineEvents(db)
	lanes := timeline.WithOrphanLane(categoryLanes(db.Categories), events)

	s := &surface{
		scale:  timeline.NewScale(timeline.DefaultConfig(), events, fallbackStart(db), now),
		lanes:  timeline.NewLaneSequence(lanes),
		master: timeline.NewViewport(),
		events: events,
	}
	s.attachFollowers()
	s.syncContent()
	return s
}

func (s *surface) attachFollowers() {
	s.master.DetachFollowers()
	s.master.AttachHorizontalFollower(func(x int) { s.rulerX = x })
	s.master.AttachVerticalFollower(func(y int) { s.labelY = y })
}

// reload replaces lanes and events after a store change, keeping zoom and the
// current scroll offsets as far as the new content allows.
func (s *surface) reload(db *store.DB, now time.Time) {
	s.events = timelineEvents(db)
	s.scale.SetEvents(s.events, fallbackStart(db))
	s.lanes = timeline.NewLaneSequence(timeline.WithOrphanLane(categoryLanes(db.Categories), s.events))
	s.syncContent()
}

func (s *surface) resize(gridW, gridH int) {
	s.master.SetSize(gridW, gridH)
	s.syncContent()
}

func (s *surface) syncContent() {
	w := int(math.Ceil(s.scale.TotalWidth() / pxPerCell))
	h := s.lanes.Len() * laneRowHeight
	s.master.SetContentSize(w, h)
}

func cellOf(px float64) int { return int(math.Floor(px / pxPerCell)) }

// zoom applies one zoom step (or a reset) while keeping the date at the
// viewport's horizontal center fixed on screen. The domain never changes with
// zoom, only the pixel density does.
func (s *surface) zoom(step func() bool) {
	centerPx := (float64(s.master.X()) + float64(s.master.Width())/2) * pxPerCell
	days := 0.0
	if ppd := s.scale.PixelsPerDay(); ppd > 0 {
		days = centerPx / ppd
	}
	if !step() {
		return
	}
	s.syncContent()
	s.master.CenterOn(days * s.scale.PixelsPerDay() / pxPerCell)
}

func (s *surface) zoomIn()  { s.zoom(s.scale.ZoomIn) }
func (s *surface) zoomOut() { s.zoom(s.scale.ZoomOut) }

func (s *surface) resetZoom() {
	s.zoom(func() bool {
		s.scale.ResetZoom()
		return true
	})
}

func (s *surface) centerOnEarliest() {
	first, ok := timeline.EarliestEvent(s.events)
	if !ok {
		return
	}
	s.master.CenterOn(s.scale.PositionOf(first.Start) / pxPerCell)
}

// visibleByLane groups the events that pass the detail filter at the current
// zoom, keyed by lane id in the sequence's current order.
func (s *surface) visibleByLane() map[string][]timeline.Event {
	var filtered []timeline.Event
	for _, ev := range s.events {
		if s.scale.Visible(ev) {
			filtered = append(filtered, ev)
		}
	}
	return timeline.EventsByLane(s.lanes.Lanes(), filtered)
}

func (s *surface) hiddenCount() int {
	n := 0
	for _, ev := range s.events {
		if !s.scale.Visible(ev) {
			n++
		}
	}
	return n
}

func categoryLanes(cats []model.Category) []timeline.Lane {
	lanes := make([]timeline.Lane, 0, len(cats))
	for _, c := range cats {
		lanes = append(lanes, timeline.Lane{
			ID:    c.ID,
			Label: c.Name,
			Color: c.Color,
			Order: c.DisplayOrder,
		})
	}
	return lanes
}

func timelineEvents(db *store.DB) []timeline.Event {
	var out []timeline.Event
	for _, e := range db.Events {
		start, err := e.Start()
		if err != nil {
			continue
		}
		tev := timeline.Event{
			ID:     e.ID,
			LaneID: e.CategoryID,
			Title:  e.Title,
			Start:  start,
		}
		if end, ok := e.End(); ok {
			tev.End = &end
		}
		out = append(out, tev)
	}
	return out
}

func fallbackStart(db *store.DB) time.Time {
	if t, ok := db.Profile.BirthdateTime(); ok {
		return t
	}
	return time.Time{}
}
