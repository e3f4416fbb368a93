package taskgen

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

func testGenRoster() entities.Roster {
	return entities.Roster{
		HouseholdID: uuid.New(),
		Children: []entities.Child{
			{ID: uuid.New(), Name: "Marie", Age: 6},
		},
		Members: []entities.Member{
			{ID: uuid.New(), Name: "Claire", Role: "parent", CurrentLoad: 30, Capacity: 40},
			{ID: uuid.New(), Name: "Julien", Role: "parent", CurrentLoad: 10, Capacity: 40},
		},
	}
}

func TestGeneratePreview_FieldMapping(t *testing.T) {
	roster := testGenRoster()
	due := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	ex := &entities.Extraction{
		ID:       uuid.New(),
		Language: "fr",
		Action:   entities.BareAction{Verb: "emmener", Object: strPtr("chez le médecin")},
		Category: entities.CategoryResult{Primary: entities.CategoryHealth, Confidence: 0.9},
		Urgency:  entities.UrgencyResult{Level: entities.UrgencyHigh, Confidence: 0.8},
		Date:     entities.DateResult{Type: entities.DateTypeRelative, Raw: "demain", Parsed: &due, Confidence: 0.9},
		Child:    &entities.ChildMatch{ChildID: roster.Children[0].ID, Name: "Marie", Confidence: 0.95},
	}

	gen := NewGenerator(15*time.Minute, nil).WithClock(func() time.Time { return storeNow })
	preview := gen.GeneratePreview(ex, roster)

	if preview.ExtractionID != ex.ID {
		t.Fatalf("preview must reference the extraction")
	}
	if preview.HouseholdID != roster.HouseholdID {
		t.Fatalf("preview must carry the household")
	}
	if preview.Priority != entities.PriorityHigh {
		t.Fatalf("high urgency must map to high priority, got %s", preview.Priority)
	}
	if preview.Category != entities.CategoryHealth {
		t.Fatalf("unexpected category %s", preview.Category)
	}
	if preview.DueDate == nil || !preview.DueDate.Equal(due) {
		t.Fatalf("due date must come from the date signal, got %v", preview.DueDate)
	}
	if preview.ChildID == nil || *preview.ChildID != roster.Children[0].ID {
		t.Fatalf("child id must come from the child match")
	}
	if preview.Status != entities.PreviewStatusPending {
		t.Fatalf("new preview must be pending, got %s", preview.Status)
	}
	if !preview.ExpiresAt.Equal(storeNow.Add(15 * time.Minute)) {
		t.Fatalf("unexpected expiry %v", preview.ExpiresAt)
	}
	if preview.Charge.Total <= 0 {
		t.Fatalf("charge total must be positive")
	}
	if len(preview.SuggestedAssignees) == 0 {
		t.Fatalf("expected assignee suggestions")
	}
	// Julien carries less load at equal capacity, so he ranks first.
	if preview.SuggestedAssignees[0] != roster.Members[1].ID {
		t.Fatalf("least-loaded member must rank first")
	}
}

func TestGeneratePreview_UrgencyToPriority(t *testing.T) {
	cases := []struct {
		urgency  entities.UrgencyLevel
		priority entities.TaskPriority
	}{
		{entities.UrgencyCritical, entities.PriorityCritical},
		{entities.UrgencyHigh, entities.PriorityHigh},
		{entities.UrgencyLow, entities.PriorityLow},
		{entities.UrgencyNone, entities.PriorityMedium},
	}
	gen := NewGenerator(0, nil)
	for _, tc := range cases {
		ex := &entities.Extraction{
			ID:       uuid.New(),
			Language: "fr",
			Category: entities.CategoryResult{Primary: entities.CategoryOther},
			Urgency:  entities.UrgencyResult{Level: tc.urgency},
		}
		if got := gen.GeneratePreview(ex, testGenRoster()); got.Priority != tc.priority {
			t.Errorf("urgency %s: expected priority %s, got %s", tc.urgency, tc.priority, got.Priority)
		}
	}
}

func TestGeneratePreview_NoDateNoChild(t *testing.T) {
	ex := &entities.Extraction{
		ID:       uuid.New(),
		Language: "fr",
		Category: entities.CategoryResult{Primary: entities.CategoryOther},
		Urgency:  entities.UrgencyResult{Level: entities.UrgencyNone},
		Date:     entities.DateResult{Type: entities.DateTypeNone},
	}
	preview := NewGenerator(0, nil).GeneratePreview(ex, testGenRoster())
	if preview.DueDate != nil || preview.ChildID != nil {
		t.Fatalf("absent signals must stay nil, got due=%v child=%v", preview.DueDate, preview.ChildID)
	}
	if preview.Title == "" {
		t.Fatalf("title must never be empty")
	}
}
