package timeline

import (
	"errors"
	"testing"
)

func fourLanes() []Lane {
	return []Lane{
		{ID: "a", Label: "A", Order: 0},
		{ID: "b", Label: "B", Order: 1},
		{ID: "c", Label: "C", Order: 2},
		{ID: "d", Label: "D", Order: 3},
	}
}

func laneIDs(lanes []Lane) []string {
	ids := make([]string, len(lanes))
	for i, ln := range lanes {
		ids[i] = ln.ID
	}
	return ids
}

func assertSequence(t *testing.T, ls *LaneSequence, want ...string) {
	t.Helper()
	lanes := ls.Lanes()
	if len(lanes) != len(want) {
		t.Fatalf("sequence = %v, want %v", laneIDs(lanes), want)
	}
	for i, ln := range lanes {
		if ln.ID != want[i] {
			t.Fatalf("sequence = %v, want %v", laneIDs(lanes), want)
		}
		if ln.Order != i {
			t.Fatalf("lane %s order = %d, want dense %d", ln.ID, ln.Order, i)
		}
	}
}

func TestLaneSequence_SortsAndRenumbersOnConstruction(t *testing.T) {
	ls := NewLaneSequence([]Lane{
		{ID: "c", Order: 7},
		{ID: "a", Order: 2},
		{ID: "b", Order: 5},
	})
	assertSequence(t, ls, "a", "b", "c")
}

func TestLaneSequence_DropOnSelfIsNoOp(t *testing.T) {
	ls := NewLaneSequence(fourLanes())
	if err := ls.StartDrag("b"); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	if _, changed := ls.Drop("b"); changed {
		t.Fatalf("dropping a lane onto itself must not change the sequence")
	}
	assertSequence(t, ls, "a", "b", "c", "d")
	if ls.Phase() != ReorderIdle {
		t.Fatalf("phase = %v, want idle", ls.Phase())
	}
}

func TestLaneSequence_DropOutsideCancels(t *testing.T) {
	ls := NewLaneSequence(fourLanes())
	_ = ls.StartDrag("b")
	ls.CancelDrag()
	assertSequence(t, ls, "a", "b", "c", "d")
	if ls.Phase() != ReorderIdle {
		t.Fatalf("phase = %v, want idle", ls.Phase())
	}
}

func TestLaneSequence_MoveIsListMoveNotSwap(t *testing.T) {
	// [A,B,C,D], drag B onto D: remove B, insert at D's index -> [A,C,D,B].
	ls := NewLaneSequence(fourLanes())
	_ = ls.StartDrag("b")
	attempt, changed := ls.Drop("d")
	if !changed {
		t.Fatalf("expected a sequence change")
	}
	assertSequence(t, ls, "a", "c", "d", "b")
	if ls.Phase() != ReorderPending {
		t.Fatalf("phase = %v, want pending", ls.Phase())
	}

	want := []string{"a", "c", "d", "b"}
	for i, id := range attempt.OrderedIDs {
		if id != want[i] {
			t.Fatalf("attempt order = %v, want %v", attempt.OrderedIDs, want)
		}
	}
}

func TestLaneSequence_CommitKeepsOptimisticOrder(t *testing.T) {
	ls := NewLaneSequence(fourLanes())
	attempt, _ := ls.Move("b", "d")
	rolledBack, stale := ls.Complete(attempt.Seq, nil)
	if rolledBack || stale {
		t.Fatalf("unexpected rollback/stale: %v %v", rolledBack, stale)
	}
	if ls.Phase() != ReorderCommitted {
		t.Fatalf("phase = %v, want committed", ls.Phase())
	}
	ls.Settle()
	assertSequence(t, ls, "a", "c", "d", "b")
}

func TestLaneSequence_FailureRollsBackToExactSnapshot(t *testing.T) {
	ls := NewLaneSequence(fourLanes())
	attempt, _ := ls.Move("b", "d")
	assertSequence(t, ls, "a", "c", "d", "b") // optimistic

	rolledBack, stale := ls.Complete(attempt.Seq, errors.New("persist failed"))
	if !rolledBack || stale {
		t.Fatalf("expected rollback, got rolledBack=%v stale=%v", rolledBack, stale)
	}
	assertSequence(t, ls, "a", "b", "c", "d") // pre-drag order, dense orders restored
	ls.Settle()
	if ls.Phase() != ReorderIdle {
		t.Fatalf("phase = %v, want idle after settle", ls.Phase())
	}
}

func TestLaneSequence_StaleCompletionIgnored(t *testing.T) {
	ls := NewLaneSequence(fourLanes())
	first, _ := ls.Move("b", "d")  // -> a c d b
	second, _ := ls.Move("a", "d") // -> c d a b

	// The first attempt resolves late, and with an error. It must not disturb
	// the newer optimistic state.
	rolledBack, stale := ls.Complete(first.Seq, errors.New("late failure"))
	if rolledBack || !stale {
		t.Fatalf("late completion should be discarded: rolledBack=%v stale=%v", rolledBack, stale)
	}
	assertSequence(t, ls, "c", "d", "a", "b")

	if rolledBack, stale := ls.Complete(second.Seq, nil); rolledBack || stale {
		t.Fatalf("latest completion rejected: rolledBack=%v stale=%v", rolledBack, stale)
	}
	assertSequence(t, ls, "c", "d", "a", "b")
}

func TestLaneSequence_SupersededThenFailureRestoresOriginal(t *testing.T) {
	// Two unconfirmed moves, then the latest fails: the rollback target is the
	// state before the first unconfirmed move, keeping orders consistent.
	ls := NewLaneSequence(fourLanes())
	ls.Move("b", "d")
	second, _ := ls.Move("a", "d")
	if rolledBack, _ := ls.Complete(second.Seq, errors.New("boom")); !rolledBack {
		t.Fatalf("expected rollback")
	}
	assertSequence(t, ls, "a", "b", "c", "d")
}

func TestLaneSequence_KeyboardMoves(t *testing.T) {
	ls := NewLaneSequence(fourLanes())

	attempt, changed := ls.MoveDown("a")
	if !changed {
		t.Fatalf("expected move-down to change the sequence")
	}
	assertSequence(t, ls, "b", "a", "c", "d")
	ls.Complete(attempt.Seq, nil)
	ls.Settle()

	if _, changed := ls.MoveUp("b"); changed {
		t.Fatalf("move-up on the first lane should be a no-op")
	}
	if _, changed := ls.MoveDown("d"); changed {
		t.Fatalf("move-down on the last lane should be a no-op")
	}
}

func TestWithOrphanLane(t *testing.T) {
	lanes := []Lane{{ID: "work", Label: "Work", Order: 0}}
	events := []Event{
		{ID: "e1", LaneID: "work", Start: date(2020, 1, 1)},
		{ID: "e2", LaneID: "deleted-cat", Start: date(2021, 1, 1)},
	}

	got := WithOrphanLane(lanes, events)
	if len(got) != 2 || got[1].ID != UncategorizedLaneID {
		t.Fatalf("expected an implicit uncategorized lane, got %v", laneIDs(got))
	}
	if got[1].Order != 1 {
		t.Fatalf("orphan lane order = %d, want 1", got[1].Order)
	}

	byLane := EventsByLane(got, events)
	if len(byLane[UncategorizedLaneID]) != 1 || byLane[UncategorizedLaneID][0].ID != "e2" {
		t.Fatalf("orphaned event not grouped into the implicit lane: %v", byLane)
	}

	// No orphans: input returned as-is, no phantom lane.
	got = WithOrphanLane(lanes, events[:1])
	if len(got) != 1 {
		t.Fatalf("unexpected orphan lane for fully categorized events: %v", laneIDs(got))
	}
}
