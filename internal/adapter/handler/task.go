package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/foyer-app/foyer-voice/errors"
	dto "github.com/foyer-app/foyer-voice/internal/adapter/dto/task"
	"github.com/foyer-app/foyer-voice/internal/domain/entities"
	"github.com/foyer-app/foyer-voice/internal/domain/repositories"
	"github.com/foyer-app/foyer-voice/internal/usecase/pipeline"
	"github.com/foyer-app/foyer-voice/internal/usecase/taskgen"
)

// Task handles preview lifecycle and confirmed task endpoints
type Task struct {
	pipeline pipeline.Service
	logger   *zap.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(p pipeline.Service, logger *zap.Logger) *Task {
	return &Task{pipeline: p, logger: logger}
}

// GetPreview returns one preview, with lazy expiry applied
// GET /v1/previews/:id
func (h *Task) GetPreview(c echo.Context) error {
	previewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid preview id"))
	}

	preview := h.pipeline.GetPreview(previewID)
	if preview == nil {
		return HandleError(h.logger, c, entities.ErrPreviewNotFound)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, dto.NewPreviewResponse(preview))
}

// ListPendingPreviews lists a household's live previews
// GET /v1/previews?household_id=
func (h *Task) ListPendingPreviews(c echo.Context) error {
	householdID, err := uuid.Parse(c.QueryParam("household_id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid household_id"))
	}

	previews := h.pipeline.ListPendingPreviews(householdID)
	return HandleSuccess(h.logger, c, http.StatusOK, dto.NewPreviewListResponse(previews))
}

// UpdatePreview edits a pending preview
// PATCH /v1/previews/:id
func (h *Task) UpdatePreview(c echo.Context) error {
	previewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid preview id"))
	}

	var req dto.UpdatePreviewRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	patch := taskgen.PreviewPatch{Title: req.Title}
	if req.Priority != nil {
		priority := entities.TaskPriority(*req.Priority)
		patch.Priority = &priority
	}
	if req.DueDate != nil {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid due_date"))
		}
		patch.DueDate = &due
	}
	if req.ChildID != nil {
		childID, err := uuid.Parse(*req.ChildID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid child_id"))
		}
		patch.ChildID = &childID
	}

	updated, err := h.pipeline.UpdatePreview(previewID, patch)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, dto.NewPreviewResponse(updated))
}

// ConfirmPreview turns a pending preview into a confirmed task
// POST /v1/previews/:id/confirm
func (h *Task) ConfirmPreview(c echo.Context) error {
	previewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid preview id"))
	}

	var req dto.ConfirmPreviewRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	confirmedBy, err := uuid.Parse(req.ConfirmedBy)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid confirmed_by"))
	}

	taskEntity, err := h.pipeline.ConfirmPreview(c.Request().Context(), previewID, confirmedBy)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusCreated, dto.NewTaskResponse(taskEntity))
}

// CancelPreview cancels a pending preview
// POST /v1/previews/:id/cancel
func (h *Task) CancelPreview(c echo.Context) error {
	previewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid preview id"))
	}

	h.pipeline.CancelPreview(previewID)
	return HandleSuccess(h.logger, c, http.StatusOK, map[string]string{
		"preview_id": previewID.String(),
		"status":     "cancelled",
	})
}

// ListTasks lists a household's confirmed tasks
// GET /v1/tasks?household_id=&category=&priority=&child_id=
func (h *Task) ListTasks(c echo.Context) error {
	var req dto.ListTasksRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid query"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	householdID, err := uuid.Parse(req.HouseholdID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid household_id"))
	}

	filters := repositories.TaskFilters{
		Category: entities.TaskCategory(req.Category),
		Priority: entities.TaskPriority(req.Priority),
	}
	if req.ChildID != "" {
		childID, err := uuid.Parse(req.ChildID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid child_id"))
		}
		filters.ChildID = &childID
	}

	tasks, err := h.pipeline.ListTasks(c.Request().Context(), householdID, filters)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, dto.NewTaskListResponse(tasks))
}
