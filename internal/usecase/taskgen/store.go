package taskgen

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

// PreviewPatch is the explicit "update preview" operation allowed before
// confirmation. Nil fields are left untouched.
type PreviewPatch struct {
	Title    *string
	Priority *entities.TaskPriority
	DueDate  *time.Time
	ChildID  *uuid.UUID
}

// TaskFilters narrows a confirmed-task query. Zero values match everything.
type TaskFilters struct {
	Category entities.TaskCategory
	Priority entities.TaskPriority
	ChildID  *uuid.UUID
}

// State is an immutable snapshot of previews and confirmed tasks
type State struct {
	previews  map[uuid.UUID]*entities.TaskPreview
	confirmed map[uuid.UUID]*entities.ConfirmedTask
}

// NewState creates an empty state
func NewState() State {
	return State{
		previews:  make(map[uuid.UUID]*entities.TaskPreview),
		confirmed: make(map[uuid.UUID]*entities.ConfirmedTask),
	}
}

func (s State) clone() State {
	next := State{
		previews:  make(map[uuid.UUID]*entities.TaskPreview, len(s.previews)),
		confirmed: make(map[uuid.UUID]*entities.ConfirmedTask, len(s.confirmed)),
	}
	for id, preview := range s.previews {
		next.previews[id] = preview
	}
	for id, task := range s.confirmed {
		next.confirmed[id] = task
	}
	return next
}

// AddPreview inserts a pending preview
func AddPreview(s State, preview *entities.TaskPreview) State {
	next := s.clone()
	next.previews[preview.ID] = preview.Clone()
	return next
}

// UpdatePreview patches fields of a preview while it is still pending. A
// missing preview or one past pending is rejected naming its current status.
func UpdatePreview(s State, id uuid.UUID, patch PreviewPatch, now time.Time) (State, *entities.TaskPreview, error) {
	preview, ok := s.previews[id]
	if !ok {
		return s, nil, fmt.Errorf("%w: %s", entities.ErrPreviewNotFound, id)
	}
	if status := preview.EffectiveStatus(now); status != entities.PreviewStatusPending {
		return s, nil, fmt.Errorf("%w: preview %s is %s", entities.ErrPreviewNotPending, id, status)
	}

	updated := preview.Clone()
	if patch.Title != nil && *patch.Title != "" {
		updated.Title = *patch.Title
	}
	if patch.Priority != nil {
		updated.Priority = *patch.Priority
		updated.Charge = CalculateChargeWeight(updated.Category, updated.Priority)
	}
	if patch.DueDate != nil {
		due := *patch.DueDate
		updated.DueDate = &due
	}
	if patch.ChildID != nil {
		child := *patch.ChildID
		updated.ChildID = &child
	}

	next := s.clone()
	next.previews[id] = updated
	return next, updated.Clone(), nil
}

// ConfirmTask freezes a pending preview into a confirmed task. Confirmation
// is one-way and at-most-once: a missing or non-pending preview (including a
// lazily expired one) is rejected naming its current status.
func ConfirmTask(s State, previewID, confirmedBy uuid.UUID, now time.Time) (State, *entities.ConfirmedTask, error) {
	preview, ok := s.previews[previewID]
	if !ok {
		return s, nil, fmt.Errorf("%w: %s", entities.ErrPreviewNotFound, previewID)
	}
	if status := preview.EffectiveStatus(now); status != entities.PreviewStatusPending {
		return s, nil, fmt.Errorf("%w: preview %s is %s", entities.ErrPreviewNotConfirmable, previewID, status)
	}

	confirmed := preview.Clone()
	confirmed.Status = entities.PreviewStatusConfirmed
	task := entities.NewConfirmedTask(confirmed, confirmedBy, now)

	next := s.clone()
	next.previews[previewID] = confirmed
	next.confirmed[task.ID] = task
	return next, task, nil
}

// CancelPreview marks a pending preview cancelled. Terminal previews and
// unknown ids are a no-op.
func CancelPreview(s State, previewID uuid.UUID, now time.Time) State {
	preview, ok := s.previews[previewID]
	if !ok || preview.EffectiveStatus(now) != entities.PreviewStatusPending {
		return s
	}
	updated := preview.Clone()
	updated.Status = entities.PreviewStatusCancelled
	next := s.clone()
	next.previews[previewID] = updated
	return next
}

// SweepExpired physically evicts previews past their expiry. This is an
// optimization; reads already treat them as expired lazily.
func SweepExpired(s State, now time.Time) State {
	var expired []uuid.UUID
	for id, preview := range s.previews {
		if preview.EffectiveStatus(now) == entities.PreviewStatusExpired {
			expired = append(expired, id)
		}
	}
	if len(expired) == 0 {
		return s
	}
	next := s.clone()
	for _, id := range expired {
		delete(next.previews, id)
	}
	return next
}

// GetPreview returns the preview with expiry applied, or nil when unknown
func (s State) GetPreview(id uuid.UUID, now time.Time) *entities.TaskPreview {
	preview, ok := s.previews[id]
	if !ok {
		return nil
	}
	result := preview.Clone()
	result.Status = preview.EffectiveStatus(now)
	return result
}

// GetPendingPreviews returns the household's still-pending previews. Unknown
// households return an empty result.
func (s State) GetPendingPreviews(householdID uuid.UUID, now time.Time) []*entities.TaskPreview {
	var pending []*entities.TaskPreview
	for _, preview := range s.previews {
		if preview.HouseholdID != householdID {
			continue
		}
		if preview.EffectiveStatus(now) != entities.PreviewStatusPending {
			continue
		}
		pending = append(pending, preview.Clone())
	}
	return pending
}

// GetConfirmedTasks returns the household's confirmed tasks matching filters
func (s State) GetConfirmedTasks(householdID uuid.UUID, filters TaskFilters) []*entities.ConfirmedTask {
	var tasks []*entities.ConfirmedTask
	for _, task := range s.confirmed {
		if task.HouseholdID != householdID {
			continue
		}
		if filters.Category != "" && task.Category != filters.Category {
			continue
		}
		if filters.Priority != "" && task.Priority != filters.Priority {
			continue
		}
		if filters.ChildID != nil && (task.ChildID == nil || *task.ChildID != *filters.ChildID) {
			continue
		}
		copied := *task
		tasks = append(tasks, &copied)
	}
	return tasks
}

// Store owns the current state reference. Because it serializes snapshot
// swaps, concurrent confirm attempts on the same preview observe at-most-once
// semantics without caller-side locking.
type Store struct {
	mu    sync.RWMutex
	state State
	now   func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{state: NewState(), now: time.Now}
}

// WithClock overrides the store's clock, for deterministic tests
func (st *Store) WithClock(now func() time.Time) *Store {
	st.now = now
	return st
}

// AddPreview inserts a pending preview
func (st *Store) AddPreview(preview *entities.TaskPreview) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = AddPreview(st.state, preview)
}

// UpdatePreview patches a pending preview
func (st *Store) UpdatePreview(id uuid.UUID, patch PreviewPatch) (*entities.TaskPreview, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	next, updated, err := UpdatePreview(st.state, id, patch, st.now())
	if err != nil {
		return nil, err
	}
	st.state = next
	return updated, nil
}

// ConfirmTask confirms a pending preview at most once
func (st *Store) ConfirmTask(previewID, confirmedBy uuid.UUID) (*entities.ConfirmedTask, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	next, task, err := ConfirmTask(st.state, previewID, confirmedBy, st.now())
	if err != nil {
		return nil, err
	}
	st.state = next
	return task, nil
}

// CancelPreview cancels a pending preview; terminal previews are a no-op
func (st *Store) CancelPreview(previewID uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = CancelPreview(st.state, previewID, st.now())
}

// SweepExpired evicts expired previews
func (st *Store) SweepExpired() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = SweepExpired(st.state, st.now())
}

// GetPreview returns the preview with lazy expiry applied
func (st *Store) GetPreview(id uuid.UUID) *entities.TaskPreview {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state.GetPreview(id, st.now())
}

// GetPendingPreviews lists a household's pending previews
func (st *Store) GetPendingPreviews(householdID uuid.UUID) []*entities.TaskPreview {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state.GetPendingPreviews(householdID, st.now())
}

// GetConfirmedTasks lists a household's confirmed tasks matching filters
func (st *Store) GetConfirmedTasks(householdID uuid.UUID, filters TaskFilters) []*entities.ConfirmedTask {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state.GetConfirmedTasks(householdID, filters)
}
