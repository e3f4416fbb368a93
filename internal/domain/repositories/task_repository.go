package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

// TaskFilters narrows confirmed task listings. Zero values match everything.
type TaskFilters struct {
	Category entities.TaskCategory
	Priority entities.TaskPriority
	ChildID  *uuid.UUID
}

// TaskRepository defines persistence operations for confirmed tasks. Previews
// live in memory and cache only; a task reaches the database exactly once, at
// confirmation.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.ConfirmedTask) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ConfirmedTask, error)
	GetByPreviewID(ctx context.Context, previewID uuid.UUID) (*entities.ConfirmedTask, error)
	ListByHousehold(ctx context.Context, householdID uuid.UUID, filters TaskFilters) ([]*entities.ConfirmedTask, error)
}
