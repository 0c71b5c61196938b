package timeline

import "sort"

// UncategorizedLaneID hosts events whose lane was deleted out from under them
// (e.g. by another session). Rendering them in an implicit lane beats silently
// dropping data.
const UncategorizedLaneID = "uncategorized"

// WithOrphanLane appends an implicit "Uncategorized" lane when any event
// references a lane id that is not in the given set. The input slice is not
// modified.
func WithOrphanLane(lanes []Lane, events []Event) []Lane {
	known := make(map[string]bool, len(lanes))
	for _, ln := range lanes {
		known[ln.ID] = true
	}
	orphaned := false
	for _, ev := range events {
		if !known[ev.LaneID] {
			orphaned = true
			break
		}
	}
	if !orphaned {
		return lanes
	}
	out := append([]Lane(nil), lanes...)
	return append(out, Lane{
		ID:    UncategorizedLaneID,
		Label: "Uncategorized",
		Color: "gray",
		Order: len(out),
	})
}

// EventsByLane groups events by lane, sorted by start date. Events with an
// unknown lane id land in the UncategorizedLaneID bucket.
func EventsByLane(lanes []Lane, events []Event) map[string][]Event {
	known := make(map[string]bool, len(lanes))
	for _, ln := range lanes {
		known[ln.ID] = true
	}
	out := make(map[string][]Event, len(lanes))
	for _, ev := range events {
		id := ev.LaneID
		if !known[id] {
			id = UncategorizedLaneID
		}
		out[id] = append(out[id], ev)
	}
	for id := range out {
		evs := out[id]
		sort.SliceStable(evs, func(i, j int) bool { return evs[i].Start.Before(evs[j].Start) })
		out[id] = evs
	}
	return out
}

// EarliestEvent returns the event with the earliest start, for "scroll to
// first event". ok is false on an empty set.
func EarliestEvent(events []Event) (Event, bool) {
	if len(events) == 0 {
		return Event{}, false
	}
	first := events[0]
	for _, ev := range events[1:] {
		if ev.Start.Before(first.Start) {
			first = ev
		}
	}
	return first, true
}
