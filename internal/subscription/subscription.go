// Package subscription implements the local free/premium gate. The limits are
// enforced client-side at creation time; nothing here talks to a billing
// backend.
package subscription

import (
	"fmt"
	"strings"

	"lifeline-cli/internal/model"
)

// Limits caps what a plan may create.
type Limits struct {
	MaxCategories int `json:"maxCategories"`
	MaxEvents     int `json:"maxEvents"`
}

var planLimits = map[model.Plan]Limits{
	model.PlanFree:    {MaxCategories: 4, MaxEvents: 10},
	model.PlanPremium: {MaxCategories: 999, MaxEvents: 999},
}

// upgradeCodes unlock premium locally.
var upgradeCodes = map[string]bool{
	"PREMIUM2024": true,
}

// LimitsFor returns the limits of a plan; unknown plans get the free limits.
func LimitsFor(plan model.Plan) Limits {
	if l, ok := planLimits[plan]; ok {
		return l
	}
	return planLimits[model.PlanFree]
}

func CanCreateCategory(plan model.Plan, currentCount int) bool {
	return currentCount < LimitsFor(plan).MaxCategories
}

func CanCreateEvent(plan model.Plan, currentCount int) bool {
	return currentCount < LimitsFor(plan).MaxEvents
}

// Remaining reports how many more items of each kind the plan allows.
func Remaining(plan model.Plan, categories, events int) (cats, evs int) {
	l := LimitsFor(plan)
	cats = l.MaxCategories - categories
	if cats < 0 {
		cats = 0
	}
	evs = l.MaxEvents - events
	if evs < 0 {
		evs = 0
	}
	return cats, evs
}

// Redeem validates an upgrade code and returns the unlocked plan.
func Redeem(code string) (model.Plan, error) {
	if upgradeCodes[strings.ToUpper(strings.TrimSpace(code))] {
		return model.PlanPremium, nil
	}
	return "", fmt.Errorf("invalid upgrade code")
}

// ErrLimitReached formats the user-facing limit message for a kind
// ("events" or "categories").
func ErrLimitReached(plan model.Plan, kind string) error {
	l := LimitsFor(plan)
	n := l.MaxEvents
	if kind == "categories" {
		n = l.MaxCategories
	}
	return fmt.Errorf("%s limit reached (%d on the %s plan); upgrade with `lifeline subscription upgrade --code <code>`", kind, n, plan)
}
