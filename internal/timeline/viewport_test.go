package timeline

import (
	"testing"
	"time"
)

func TestViewport_FollowersTrackMasterSameCall(t *testing.T) {
	v := NewViewport()
	v.SetSize(100, 20)
	v.SetContentSize(1000, 200)

	var rulerX, labelsY int
	v.AttachHorizontalFollower(func(x int) { rulerX = x })
	v.AttachVerticalFollower(func(y int) { labelsY = y })

	v.ScrollTo(250, 40)
	if rulerX != 250 || labelsY != 40 {
		t.Fatalf("followers out of sync: rulerX=%d labelsY=%d", rulerX, labelsY)
	}

	v.ScrollBy(-50, -10)
	if rulerX != 200 || labelsY != 30 {
		t.Fatalf("followers out of sync after relative scroll: rulerX=%d labelsY=%d", rulerX, labelsY)
	}
}

func TestViewport_OffsetsClampToContent(t *testing.T) {
	v := NewViewport()
	v.SetSize(100, 20)
	v.SetContentSize(1000, 200)

	v.ScrollTo(-10, -10)
	if v.X() != 0 || v.Y() != 0 {
		t.Fatalf("negative offsets not clamped: x=%d y=%d", v.X(), v.Y())
	}

	v.ScrollTo(5000, 5000)
	if v.X() != 900 || v.Y() != 180 {
		t.Fatalf("overshoot not clamped to content edge: x=%d y=%d", v.X(), v.Y())
	}

	// Content smaller than the viewport pins the offset at zero.
	v.SetContentSize(50, 10)
	if v.X() != 0 || v.Y() != 0 {
		t.Fatalf("offsets not re-clamped after content shrink: x=%d y=%d", v.X(), v.Y())
	}
}

func TestViewport_PagingMovesByViewportWidth(t *testing.T) {
	v := NewViewport()
	v.SetSize(100, 20)
	v.SetContentSize(1000, 20)

	v.PageRight()
	v.PageRight()
	if v.X() != 200 {
		t.Fatalf("x after two pages = %d, want 200", v.X())
	}
	v.PageLeft()
	if v.X() != 100 {
		t.Fatalf("x after page back = %d, want 100", v.X())
	}
}

func TestViewport_CenterOnEarliestEventClampsAtZero(t *testing.T) {
	events := []Event{
		{ID: "late", Start: date(2022, time.May, 1)},
		{ID: "first", Start: date(2020, time.February, 10)},
	}
	s := NewScale(DefaultConfig(), events, time.Time{}, date(2024, time.June, 15))

	v := NewViewport()
	v.SetSize(120, 20)
	v.SetContentSize(int(s.TotalWidth()), 20)

	first, ok := EarliestEvent(events)
	if !ok || first.ID != "first" {
		t.Fatalf("EarliestEvent = %+v, ok=%v", first, ok)
	}
	v.CenterOn(s.PositionOf(first.Start))

	want := int(s.PositionOf(first.Start)) - 60
	if want < 0 {
		want = 0
	}
	if v.X() != want {
		t.Fatalf("x = %d, want centered %d", v.X(), want)
	}

	// An event right at the domain edge centers to a clamped zero offset.
	v.CenterOn(10)
	if v.X() != 0 {
		t.Fatalf("x = %d, want clamp at 0", v.X())
	}
}

func TestViewport_ReattachAfterSurfaceRebuild(t *testing.T) {
	v := NewViewport()
	v.SetSize(100, 20)
	v.SetContentSize(1000, 200)
	v.ScrollTo(300, 50)

	stale := -1
	v.AttachHorizontalFollower(func(x int) { stale = x })

	// Simulate a data reload rebuilding the panes: followers are detached and
	// fresh ones attached; attachment synchronizes immediately.
	v.DetachFollowers()
	fresh := -1
	v.AttachHorizontalFollower(func(x int) { fresh = x })
	if fresh != 300 {
		t.Fatalf("fresh follower not synchronized on attach: %d", fresh)
	}

	v.ScrollTo(100, 50)
	if fresh != 100 {
		t.Fatalf("fresh follower not tracking: %d", fresh)
	}
	if stale != 300 {
		t.Fatalf("detached follower should no longer receive updates, got %d", stale)
	}
}
