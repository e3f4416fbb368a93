package taskgen

import (
	"testing"

	"github.com/google/uuid"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

func member(name string, load, capacity float64) entities.Member {
	return entities.Member{ID: uuid.New(), Name: name, Role: "parent", CurrentLoad: load, Capacity: capacity}
}

func TestSuggestAssignee_Fairness(t *testing.T) {
	a := member("a", 5, 40)
	b := member("b", 20, 40)
	weight := CalculateChargeWeight(entities.CategoryHousehold, entities.PriorityMedium)

	got := SuggestAssignee([]entities.Member{b, a}, entities.CategoryHousehold, weight)
	if got == nil || *got != a.ID {
		t.Fatalf("member with strictly lower load and equal capacity must win")
	}
}

func TestSuggestAssignee_UsesRatioNotAbsoluteLoad(t *testing.T) {
	// Higher absolute load but far more headroom relative to capacity.
	big := member("big", 30, 100)
	small := member("small", 15, 20)
	weight := CalculateChargeWeight(entities.CategoryOther, entities.PriorityLow)

	got := SuggestAssignee([]entities.Member{small, big}, entities.CategoryOther, weight)
	if got == nil || *got != big.ID {
		t.Fatalf("suggestion must rank by load-to-capacity ratio")
	}
}

func TestSuggestAssignee_NilWhenEveryoneOverCapacity(t *testing.T) {
	a := member("a", 39, 40)
	b := member("b", 38, 40)
	weight := CalculateChargeWeight(entities.CategoryHealth, entities.PriorityCritical)

	if got := SuggestAssignee([]entities.Member{a, b}, entities.CategoryHealth, weight); got != nil {
		t.Fatalf("no suggestion when every candidate would exceed capacity")
	}
}

func TestSuggestAssignee_TieBreaks(t *testing.T) {
	weight := CalculateChargeWeight(entities.CategoryOther, entities.PriorityMedium)

	// Identical ratio and load: roster order decides.
	x := member("x", 10, 40)
	y := member("y", 10, 40)
	got := SuggestAssignee([]entities.Member{x, y}, entities.CategoryOther, weight)
	if got == nil || *got != x.ID {
		t.Fatalf("full tie must break by roster order")
	}
}

func TestSuggestAssignee_ZeroCapacityNeverEligible(t *testing.T) {
	zero := member("zero", 0, 0)
	ok := member("ok", 10, 40)
	weight := CalculateChargeWeight(entities.CategoryFood, entities.PriorityMedium)

	got := SuggestAssignee([]entities.Member{zero, ok}, entities.CategoryFood, weight)
	if got == nil || *got != ok.ID {
		t.Fatalf("zero-capacity member must never be suggested")
	}
}

func TestRankAssignees_OrdersAllEligible(t *testing.T) {
	a := member("a", 5, 40)
	b := member("b", 15, 40)
	c := member("c", 39, 40)
	weight := CalculateChargeWeight(entities.CategoryHousehold, entities.PriorityMedium)

	ranked := RankAssignees([]entities.Member{c, b, a}, entities.CategoryHousehold, weight)
	if len(ranked) != 2 {
		t.Fatalf("over-capacity member must be excluded, got %d candidates", len(ranked))
	}
	if ranked[0] != a.ID || ranked[1] != b.ID {
		t.Fatalf("candidates must order by projected ratio")
	}
}
