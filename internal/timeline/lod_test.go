package timeline

import (
	"testing"
	"time"
)

func scaleAtZoom(t *testing.T, zoom float64) *Scale {
	t.Helper()
	s := NewScale(DefaultConfig(), nil, date(2015, time.January, 1), date(2024, time.June, 15))
	for s.Zoom() < zoom && s.ZoomIn() {
	}
	for s.Zoom() > zoom && s.ZoomOut() {
	}
	return s
}

func TestDurationMonths(t *testing.T) {
	cases := []struct {
		name string
		ev   Event
		want int
	}{
		{"single day", Event{Start: date(2020, time.March, 1), End: datePtr(2020, time.March, 1)}, 1},
		{"two months", Event{Start: date(2020, time.March, 1), End: datePtr(2020, time.May, 1)}, 2},
		{"one year", Event{Start: date(2020, time.March, 1), End: datePtr(2021, time.March, 1)}, 12},
		{"ongoing gets nominal duration", Event{Start: date(2020, time.March, 1)}, 3},
		{"end before start floors at one", Event{Start: date(2020, time.June, 1), End: datePtr(2020, time.January, 1)}, 1},
	}
	for _, tc := range cases {
		if got := DurationMonths(tc.ev); got != tc.want {
			t.Fatalf("%s: DurationMonths = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestVisible_AllEventsAtHighZoom(t *testing.T) {
	s := scaleAtZoom(t, 2.25) // 1.5^2
	short := Event{Start: date(2020, time.March, 1), End: datePtr(2020, time.March, 2)}
	if !s.Visible(short) {
		t.Fatalf("short event should be visible at zoom %v", s.Zoom())
	}
}

func TestVisible_MonotoneInZoom(t *testing.T) {
	// Once an event is hidden at some zoom, zooming out must never reveal it.
	events := []Event{
		{ID: "day", Start: date(2020, time.March, 1), End: datePtr(2020, time.March, 2)},
		{ID: "2mo", Start: date(2020, time.March, 1), End: datePtr(2020, time.May, 1)},
		{ID: "6mo", Start: date(2020, time.January, 1), End: datePtr(2020, time.July, 1)},
		{ID: "3yr", Start: date(2018, time.January, 1), End: datePtr(2021, time.January, 1)},
	}
	s := NewScale(DefaultConfig(), events, time.Time{}, date(2024, time.June, 15))
	for s.ZoomIn() {
	}
	visible := map[string]bool{}
	for _, ev := range events {
		visible[ev.ID] = s.Visible(ev)
	}
	for {
		for _, ev := range events {
			now := s.Visible(ev)
			if now && !visible[ev.ID] {
				t.Fatalf("event %s reappeared while zooming out (zoom=%v)", ev.ID, s.Zoom())
			}
			visible[ev.ID] = now
		}
		if !s.ZoomOut() {
			break
		}
	}
}

func TestVisible_WideProjectionBeatsDurationThreshold(t *testing.T) {
	// The duration/width criteria are OR-combined: at a coarse zoom tier a
	// short event whose projected width clears the threshold stays visible.
	cfg := DefaultConfig()
	cfg.VisibilityThreshold = 50
	s := NewScale(cfg, nil, date(2015, time.January, 1), date(2024, time.June, 15))
	for s.Zoom() >= 0.5 {
		s.ZoomOut()
	}
	// zoom < 0.5 tier requires >= 6 months; 3 months projects 3*120*zoom px.
	ev := Event{Start: date(2020, time.January, 1), End: datePtr(2020, time.April, 1)}
	if months := DurationMonths(ev); months >= 6 {
		t.Fatalf("test setup: event too long (%d months)", months)
	}
	projected := 3 * s.PixelsPerMonth()
	if projected < cfg.VisibilityThreshold {
		t.Fatalf("test setup: projected width %v below threshold", projected)
	}
	if !s.Visible(ev) {
		t.Fatalf("event with projected width %v >= %v should be visible", projected, cfg.VisibilityThreshold)
	}
}

func TestTicks_DensityFollowsZoom(t *testing.T) {
	countLabeled := func(s *Scale) (labeled, total int) {
		for _, tick := range s.Ticks() {
			total++
			if tick.ShowLabel {
				labeled++
			}
		}
		return
	}

	high := scaleAtZoom(t, 1)
	labeled, total := countLabeled(high)
	if labeled != total {
		t.Fatalf("at zoom >= 1 every month should be labeled: %d/%d", labeled, total)
	}

	medium := scaleAtZoom(t, 0.6667)
	labeled, total = countLabeled(medium)
	if labeled >= total || labeled == 0 {
		t.Fatalf("at medium zoom expected partial labeling, got %d/%d", labeled, total)
	}
	for _, tick := range medium.Ticks() {
		if tick.ShowLabel != ((int(tick.Date.Month())-1)%2 == 0) {
			t.Fatalf("medium zoom should label every other month, got %v at %v", tick.ShowLabel, tick.Date)
		}
	}

	low := scaleAtZoom(t, 0.2963)
	for _, tick := range low.Ticks() {
		wantQuarter := (int(tick.Date.Month())-1)%3 == 0
		if tick.ShowLabel != wantQuarter {
			t.Fatalf("low zoom should label quarter boundaries only, got %v at %v", tick.ShowLabel, tick.Date)
		}
	}
}

func TestTicks_YearBoundariesAlwaysMarked(t *testing.T) {
	s := scaleAtZoom(t, 0.2963)
	sawYear := false
	for _, tick := range s.Ticks() {
		if tick.Date.Month() == time.January {
			sawYear = true
			if !tick.YearStart {
				t.Fatalf("january tick at %v not marked as year start", tick.Date)
			}
		} else if tick.YearStart {
			t.Fatalf("non-january tick at %v marked as year start", tick.Date)
		}
	}
	if !sawYear {
		t.Fatalf("expected at least one year boundary in the domain")
	}
}
