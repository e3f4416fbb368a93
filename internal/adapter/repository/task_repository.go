package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
	"github.com/foyer-app/foyer-voice/internal/domain/repositories"
)

// TaskRepository persists confirmed tasks with GORM
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a confirmed task. The unique index on preview_id backs up
// the in-memory at-most-once guarantee.
func (r *TaskRepository) Create(ctx context.Context, task *entities.ConfirmedTask) error {
	if task == nil {
		return errors.New("task cannot be nil")
	}
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a confirmed task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ConfirmedTask, error) {
	var task entities.ConfirmedTask
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

// GetByPreviewID retrieves the task produced by a given preview
func (r *TaskRepository) GetByPreviewID(ctx context.Context, previewID uuid.UUID) (*entities.ConfirmedTask, error) {
	var task entities.ConfirmedTask
	if err := r.db.WithContext(ctx).Where("preview_id = ?", previewID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

// ListByHousehold lists a household's confirmed tasks, newest first
func (r *TaskRepository) ListByHousehold(ctx context.Context, householdID uuid.UUID, filters repositories.TaskFilters) ([]*entities.ConfirmedTask, error) {
	query := r.db.WithContext(ctx).Where("household_id = ?", householdID)
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Priority != "" {
		query = query.Where("priority = ?", filters.Priority)
	}
	if filters.ChildID != nil {
		query = query.Where("child_id = ?", *filters.ChildID)
	}

	var tasks []*entities.ConfirmedTask
	if err := query.Order("confirmed_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
