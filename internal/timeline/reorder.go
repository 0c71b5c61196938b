package timeline

import (
	"errors"
	"sort"
)

// Lane reordering with optimistic persistence.
//
// The engine owns the visible lane sequence. A reorder (pointer drag or a
// discrete keyboard move) applies immediately to the sequence, then the caller
// persists the new order asynchronously and reports the outcome back via
// Complete. Any failure — including partial success on the persistence side —
// rolls the sequence back to the exact pre-move snapshot so order values stay
// dense and contiguous.
//
// Each persistence attempt carries a monotonic sequence number. A completion
// whose number is not the latest belongs to a superseded attempt and is
// discarded, so a slow failure can never clobber a newer optimistic state.

// ReorderPhase is the lifecycle of a reorder.
type ReorderPhase int

const (
	ReorderIdle ReorderPhase = iota
	ReorderDragging
	// ReorderPending: the optimistic order is visible and persistence is in flight.
	ReorderPending
	ReorderCommitted
	ReorderRolledBack
)

// Attempt identifies one persistence request: the full lane id sequence to
// store and the sequence number to pass back to Complete.
type Attempt struct {
	Seq        uint64
	OrderedIDs []string
}

var errUnknownLane = errors.New("unknown lane")

// LaneSequence is the engine-owned ordered lane list plus the reorder state
// machine. It is not safe for concurrent use; all engine logic runs on the UI
// event loop.
type LaneSequence struct {
	lanes []Lane
	phase ReorderPhase

	dragLaneID string
	snapshot   []Lane // pre-move order, kept until the pending attempt resolves
	seq        uint64 // latest persistence attempt
}

// NewLaneSequence sorts the lanes by Order and renumbers them densely.
func NewLaneSequence(lanes []Lane) *LaneSequence {
	ls := &LaneSequence{lanes: append([]Lane(nil), lanes...)}
	sort.SliceStable(ls.lanes, func(i, j int) bool { return ls.lanes[i].Order < ls.lanes[j].Order })
	renumber(ls.lanes)
	return ls
}

// Lanes returns a copy of the current visible sequence.
func (ls *LaneSequence) Lanes() []Lane { return append([]Lane(nil), ls.lanes...) }

func (ls *LaneSequence) Phase() ReorderPhase { return ls.phase }

// Len reports the number of lanes.
func (ls *LaneSequence) Len() int { return len(ls.lanes) }

func (ls *LaneSequence) indexOf(id string) int {
	for i := range ls.lanes {
		if ls.lanes[i].ID == id {
			return i
		}
	}
	return -1
}

// StartDrag begins a drag gesture on the given lane.
func (ls *LaneSequence) StartDrag(laneID string) error {
	if ls.indexOf(laneID) < 0 {
		return errUnknownLane
	}
	ls.dragLaneID = laneID
	ls.phase = ReorderDragging
	return nil
}

// CancelDrag ends a drag that was released outside any lane. No-op state change.
func (ls *LaneSequence) CancelDrag() {
	ls.dragLaneID = ""
	ls.phase = ReorderIdle
}

// Drop releases the drag onto a target lane. Dropping a lane onto itself is a
// no-op. Otherwise the move is applied optimistically and the returned Attempt
// must be persisted.
func (ls *LaneSequence) Drop(targetLaneID string) (Attempt, bool) {
	src := ls.dragLaneID
	ls.dragLaneID = ""
	if src == "" || src == targetLaneID {
		ls.phase = ReorderIdle
		return Attempt{}, false
	}
	return ls.Move(src, targetLaneID)
}

// Move removes the source lane from its index and reinserts it at the target
// lane's index (a list move, not a swap), renumbers orders densely, and opens
// a persistence attempt. Returns false when the move is a no-op.
func (ls *LaneSequence) Move(srcID, dstID string) (Attempt, bool) {
	from := ls.indexOf(srcID)
	to := ls.indexOf(dstID)
	if from < 0 || to < 0 || from == to {
		ls.phase = ReorderIdle
		return Attempt{}, false
	}
	return ls.moveIndex(from, to), true
}

// MoveUp is the keyboard equivalent of dragging a lane one slot up.
func (ls *LaneSequence) MoveUp(laneID string) (Attempt, bool) {
	i := ls.indexOf(laneID)
	if i <= 0 {
		return Attempt{}, false
	}
	return ls.moveIndex(i, i-1), true
}

// MoveDown moves a lane one slot down.
func (ls *LaneSequence) MoveDown(laneID string) (Attempt, bool) {
	i := ls.indexOf(laneID)
	if i < 0 || i >= len(ls.lanes)-1 {
		return Attempt{}, false
	}
	return ls.moveIndex(i, i+1), true
}

func (ls *LaneSequence) moveIndex(from, to int) Attempt {
	// Snapshot only for the outermost optimistic change: when a newer move
	// supersedes a pending one, a later rollback must restore the state before
	// the *first* unconfirmed move, not an intermediate optimistic order.
	if ls.phase != ReorderPending {
		ls.snapshot = append([]Lane(nil), ls.lanes...)
	}

	moved := ls.lanes[from]
	rest := append(append([]Lane(nil), ls.lanes[:from]...), ls.lanes[from+1:]...)
	ls.lanes = append(rest[:to:to], append([]Lane{moved}, rest[to:]...)...)
	renumber(ls.lanes)

	ls.seq++
	ls.phase = ReorderPending
	return Attempt{Seq: ls.seq, OrderedIDs: ls.orderedIDs()}
}

// Complete resolves a persistence attempt. Stale completions (a newer attempt
// has been issued since) are discarded silently. On failure the visible
// sequence reverts to the pre-move snapshot, orders included.
func (ls *LaneSequence) Complete(seq uint64, err error) (rolledBack, stale bool) {
	if seq != ls.seq || ls.phase != ReorderPending {
		return false, true
	}
	if err != nil {
		ls.lanes = ls.snapshot
		ls.snapshot = nil
		ls.phase = ReorderRolledBack
		return true, false
	}
	ls.snapshot = nil
	ls.phase = ReorderCommitted
	return false, false
}

// Settle returns the state machine to Idle after the caller has surfaced the
// committed/rolled-back outcome.
func (ls *LaneSequence) Settle() {
	if ls.phase == ReorderCommitted || ls.phase == ReorderRolledBack {
		ls.phase = ReorderIdle
	}
}

func (ls *LaneSequence) orderedIDs() []string {
	ids := make([]string, len(ls.lanes))
	for i := range ls.lanes {
		ids[i] = ls.lanes[i].ID
	}
	return ids
}

func renumber(lanes []Lane) {
	for i := range lanes {
		lanes[i].Order = i
	}
}
