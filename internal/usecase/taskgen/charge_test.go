package taskgen

import (
	"testing"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

func TestCalculateChargeWeight_MonotonicInPriority(t *testing.T) {
	for _, category := range entities.AllCategories {
		low := CalculateChargeWeight(category, entities.PriorityLow)
		medium := CalculateChargeWeight(category, entities.PriorityMedium)
		high := CalculateChargeWeight(category, entities.PriorityHigh)
		critical := CalculateChargeWeight(category, entities.PriorityCritical)

		if !(critical.Total > high.Total && high.Total > medium.Total && medium.Total > low.Total) {
			t.Errorf("%s: totals must strictly increase with priority: %f %f %f %f",
				category, low.Total, medium.Total, high.Total, critical.Total)
		}
	}
}

func TestCalculateChargeWeight_CategoryOrdering(t *testing.T) {
	health := CalculateChargeWeight(entities.CategoryHealth, entities.PriorityMedium)
	household := CalculateChargeWeight(entities.CategoryHousehold, entities.PriorityMedium)
	other := CalculateChargeWeight(entities.CategoryOther, entities.PriorityMedium)

	if health.Total <= household.Total {
		t.Fatalf("health (%f) must weigh more than household (%f)", health.Total, household.Total)
	}
	if household.Total <= other.Total {
		t.Fatalf("household (%f) must weigh more than other (%f)", household.Total, other.Total)
	}
}

func TestCalculateChargeWeight_ComponentsArePositive(t *testing.T) {
	for _, category := range entities.AllCategories {
		w := CalculateChargeWeight(category, entities.PriorityMedium)
		if w.Mental <= 0 || w.Time <= 0 || w.Emotional <= 0 || w.Physical <= 0 || w.Total <= 0 {
			t.Errorf("%s: all components must be positive: %+v", category, w)
		}
	}
}

func TestCalculateChargeWeight_UnknownInputsFallBack(t *testing.T) {
	w := CalculateChargeWeight("gardening", "someday")
	want := CalculateChargeWeight(entities.CategoryOther, entities.PriorityMedium)
	if w != want {
		t.Fatalf("unknown category/priority must use defaults: %+v vs %+v", w, want)
	}
}

func TestCalculateChargeWeight_Deterministic(t *testing.T) {
	first := CalculateChargeWeight(entities.CategoryHealth, entities.PriorityHigh)
	for i := 0; i < 20; i++ {
		if got := CalculateChargeWeight(entities.CategoryHealth, entities.PriorityHigh); got != first {
			t.Fatalf("charge weight must be deterministic")
		}
	}
}
