package subscription

import (
	"strings"
	"testing"

	"lifeline-cli/internal/model"
)

func TestFreePlanLimits(t *testing.T) {
	l := LimitsFor(model.PlanFree)
	if l.MaxCategories != 4 || l.MaxEvents != 10 {
		t.Fatalf("free limits = %+v", l)
	}

	if !CanCreateCategory(model.PlanFree, 3) {
		t.Fatal("category 4 of 4 refused")
	}
	if CanCreateCategory(model.PlanFree, 4) {
		t.Fatal("category 5 of 4 allowed")
	}
	if !CanCreateEvent(model.PlanFree, 9) {
		t.Fatal("event 10 of 10 refused")
	}
	if CanCreateEvent(model.PlanFree, 10) {
		t.Fatal("event 11 of 10 allowed")
	}
}

func TestUnknownPlanFallsBackToFree(t *testing.T) {
	if l := LimitsFor(model.Plan("enterprise")); l != LimitsFor(model.PlanFree) {
		t.Fatalf("limits = %+v", l)
	}
}

func TestRemainingNeverNegative(t *testing.T) {
	cats, evs := Remaining(model.PlanFree, 9, 40)
	if cats != 0 || evs != 0 {
		t.Fatalf("remaining = %d, %d", cats, evs)
	}
	cats, evs = Remaining(model.PlanFree, 1, 4)
	if cats != 3 || evs != 6 {
		t.Fatalf("remaining = %d, %d", cats, evs)
	}
}

func TestRedeem(t *testing.T) {
	plan, err := Redeem("PREMIUM2024")
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if plan != model.PlanPremium {
		t.Fatalf("plan = %q", plan)
	}

	// Codes are matched after trimming and upper-casing.
	if plan, err := Redeem("  premium2024 "); err != nil || plan != model.PlanPremium {
		t.Fatalf("Redeem lowercase: plan=%q err=%v", plan, err)
	}

	if _, err := Redeem("PREMIUM2023"); err == nil {
		t.Fatal("wrong code accepted")
	}
	if _, err := Redeem(""); err == nil {
		t.Fatal("empty code accepted")
	}
}

func TestLimitErrorMentionsUpgrade(t *testing.T) {
	err := ErrLimitReached(model.PlanFree, "events")
	if err == nil {
		t.Fatal("no error")
	}
	if !strings.Contains(err.Error(), "subscription upgrade") {
		t.Fatalf("error %q has no upgrade hint", err)
	}
}
