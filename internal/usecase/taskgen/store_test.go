package taskgen

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

var storeNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func pendingPreview(householdID uuid.UUID) *entities.TaskPreview {
	return &entities.TaskPreview{
		ID:           uuid.New(),
		ExtractionID: uuid.New(),
		HouseholdID:  householdID,
		Title:        "Emmener Marie chez le médecin",
		Category:     entities.CategoryHealth,
		Priority:     entities.PriorityHigh,
		Charge:       CalculateChargeWeight(entities.CategoryHealth, entities.PriorityHigh),
		Status:       entities.PreviewStatusPending,
		CreatedAt:    storeNow,
		ExpiresAt:    storeNow.Add(15 * time.Minute),
	}
}

func TestConfirmTask_AtMostOnce(t *testing.T) {
	household := uuid.New()
	preview := pendingPreview(household)
	state := AddPreview(NewState(), preview)

	state, task, err := ConfirmTask(state, preview.ID, uuid.New(), storeNow)
	if err != nil {
		t.Fatalf("first confirm must succeed: %v", err)
	}
	if task.PreviewID != preview.ID || task.Title != preview.Title {
		t.Fatalf("confirmed task must freeze the preview content, got %+v", task)
	}

	_, _, err = ConfirmTask(state, preview.ID, uuid.New(), storeNow)
	if !errors.Is(err, entities.ErrPreviewNotConfirmable) {
		t.Fatalf("second confirm must be rejected, got %v", err)
	}
	if got := len(state.GetConfirmedTasks(household, TaskFilters{})); got != 1 {
		t.Fatalf("exactly one confirmed task must exist, got %d", got)
	}
}

func TestConfirmTask_RejectionNamesCurrentStatus(t *testing.T) {
	preview := pendingPreview(uuid.New())
	state := AddPreview(NewState(), preview)
	state = CancelPreview(state, preview.ID, storeNow)

	_, _, err := ConfirmTask(state, preview.ID, uuid.New(), storeNow)
	if err == nil || !errors.Is(err, entities.ErrPreviewNotConfirmable) {
		t.Fatalf("expected not-confirmable, got %v", err)
	}
	if want := string(entities.PreviewStatusCancelled); !strings.Contains(err.Error(), want) {
		t.Fatalf("rejection must name the current status %q: %v", want, err)
	}
}

func TestConfirmTask_UnknownPreview(t *testing.T) {
	_, _, err := ConfirmTask(NewState(), uuid.New(), uuid.New(), storeNow)
	if !errors.Is(err, entities.ErrPreviewNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestLazyExpiry(t *testing.T) {
	household := uuid.New()
	preview := pendingPreview(household)
	state := AddPreview(NewState(), preview)

	later := preview.ExpiresAt.Add(time.Minute)

	// Reads treat the preview as expired even with no explicit transition.
	if got := state.GetPreview(preview.ID, later); got.Status != entities.PreviewStatusExpired {
		t.Fatalf("read past expiry must report expired, got %s", got.Status)
	}
	if got := state.GetPendingPreviews(household, later); len(got) != 0 {
		t.Fatalf("expired preview must not list as pending")
	}
	if _, _, err := ConfirmTask(state, preview.ID, uuid.New(), later); !errors.Is(err, entities.ErrPreviewNotConfirmable) {
		t.Fatalf("expired preview must not be confirmable, got %v", err)
	}

	// Before expiry it is still live.
	if got := state.GetPreview(preview.ID, storeNow); got.Status != entities.PreviewStatusPending {
		t.Fatalf("preview must stay pending before expiry, got %s", got.Status)
	}
}

func TestSweepExpired(t *testing.T) {
	household := uuid.New()
	fresh := pendingPreview(household)
	stale := pendingPreview(household)
	stale.ExpiresAt = storeNow.Add(-time.Minute)

	state := AddPreview(AddPreview(NewState(), fresh), stale)
	state = SweepExpired(state, storeNow)

	if state.GetPreview(stale.ID, storeNow) != nil {
		t.Fatalf("sweep must evict expired previews")
	}
	if state.GetPreview(fresh.ID, storeNow) == nil {
		t.Fatalf("sweep must keep live previews")
	}
}

func TestUpdatePreview_OnlyWhilePending(t *testing.T) {
	preview := pendingPreview(uuid.New())
	state := AddPreview(NewState(), preview)

	title := "Emmener Marie chez le dentiste"
	priority := entities.PriorityCritical
	state, updated, err := UpdatePreview(state, preview.ID, PreviewPatch{Title: &title, Priority: &priority}, storeNow)
	if err != nil {
		t.Fatalf("update of pending preview must succeed: %v", err)
	}
	if updated.Title != title || updated.Priority != priority {
		t.Fatalf("patch must apply, got %+v", updated)
	}
	if updated.Charge.Total <= preview.Charge.Total {
		t.Fatalf("raising priority must raise the charge total")
	}

	state = CancelPreview(state, preview.ID, storeNow)
	if _, _, err := UpdatePreview(state, preview.ID, PreviewPatch{Title: &title}, storeNow); !errors.Is(err, entities.ErrPreviewNotPending) {
		t.Fatalf("update after cancel must be rejected, got %v", err)
	}
}

func TestCancelPreview_NoOpWhenTerminal(t *testing.T) {
	preview := pendingPreview(uuid.New())
	state := AddPreview(NewState(), preview)
	state, _, err := ConfirmTask(state, preview.ID, uuid.New(), storeNow)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	state = CancelPreview(state, preview.ID, storeNow)
	if got := state.GetPreview(preview.ID, storeNow); got.Status != entities.PreviewStatusConfirmed {
		t.Fatalf("cancel of a confirmed preview must be a no-op, got %s", got.Status)
	}
	// Unknown id is a no-op too.
	state = CancelPreview(state, uuid.New(), storeNow)
	_ = state
}

func TestGetConfirmedTasks_Filters(t *testing.T) {
	household := uuid.New()
	child := uuid.New()

	health := pendingPreview(household)
	house := pendingPreview(household)
	house.Category = entities.CategoryHousehold
	house.Priority = entities.PriorityLow
	house.ChildID = &child

	state := AddPreview(AddPreview(NewState(), health), house)
	state, _, err := ConfirmTask(state, health.ID, uuid.New(), storeNow)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	state, _, err = ConfirmTask(state, house.ID, uuid.New(), storeNow)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	if got := state.GetConfirmedTasks(household, TaskFilters{}); len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}
	if got := state.GetConfirmedTasks(household, TaskFilters{Category: entities.CategoryHealth}); len(got) != 1 {
		t.Fatalf("category filter must narrow to 1, got %d", len(got))
	}
	if got := state.GetConfirmedTasks(household, TaskFilters{ChildID: &child}); len(got) != 1 {
		t.Fatalf("child filter must narrow to 1, got %d", len(got))
	}
	if got := state.GetConfirmedTasks(uuid.New(), TaskFilters{}); len(got) != 0 {
		t.Fatalf("unknown household must return empty, got %d", len(got))
	}
}

func TestStore_ConcurrentConfirms(t *testing.T) {
	store := NewStore().WithClock(func() time.Time { return storeNow })
	preview := pendingPreview(uuid.New())
	store.AddPreview(preview)

	const attempts = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	var succeeded int
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.ConfirmTask(preview.ID, uuid.New()); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 {
		t.Fatalf("exactly one concurrent confirm must succeed, got %d", succeeded)
	}
}
