package timeline

import "time"

// Level-of-detail filtering: at coarse zoom levels, short events and dense
// ruler labels would render illegibly small, so they are hidden. This is
// purely a rendering decision; the underlying collections are never touched.

// DurationMonths returns the event duration in whole calendar months, floored
// at 1. Ongoing events get a fixed nominal duration so the visibility policy
// has something to compare; their rendered width is unrelated (it runs to now).
func DurationMonths(ev Event) int {
	if ev.End == nil {
		return ongoingNominalMonths
	}
	end := *ev.End
	if end.Before(ev.Start) {
		return 1
	}
	months := (end.Year()-ev.Start.Year())*12 + int(end.Month()) - int(ev.Start.Month())
	if months < 1 {
		return 1
	}
	return months
}

// Visible reports whether an event should render at the current zoom.
//
// The policy is a monotone step function of zoom: each coarser tier requires a
// longer duration OR a sufficient projected pixel width. The OR matters: a
// short event that is still wide on screen at the current zoom stays visible.
func (s *Scale) Visible(ev Event) bool {
	months := DurationMonths(ev)
	projected := float64(months) * s.PixelsPerMonth()

	switch {
	case s.zoom >= 2:
		return true
	case s.zoom >= 1:
		return months >= 1
	case s.zoom >= 0.5:
		return months >= 2 || projected >= s.cfg.VisibilityThreshold
	default:
		return months >= 6 || projected >= s.cfg.VisibilityThreshold
	}
}

// Tick is one month boundary on the date ruler.
type Tick struct {
	Date time.Time
	// ShowLabel is the month-label thinning decision for the current zoom.
	ShowLabel bool
	// YearStart marks January; year labels render regardless of thinning.
	YearStart bool
}

// Ticks enumerates the month boundaries of the domain with the label density
// for the current zoom: every month when zoomed in, every other month at
// medium zoom, quarter boundaries only when zoomed far out.
func (s *Scale) Ticks() []Tick {
	start := time.Date(s.domainStart.Year(), s.domainStart.Month(), 1, 0, 0, 0, 0, time.UTC)
	var out []Tick
	for t := start; !t.After(s.domainEnd); t = t.AddDate(0, 1, 0) {
		show := true
		switch {
		case s.zoom < 0.5:
			show = (int(t.Month())-1)%3 == 0
		case s.zoom < 1:
			show = (int(t.Month())-1)%2 == 0
		}
		out = append(out, Tick{
			Date:      t,
			ShowLabel: show,
			YearStart: t.Month() == time.January,
		})
	}
	return out
}
