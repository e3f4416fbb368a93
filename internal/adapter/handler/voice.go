package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/foyer-app/foyer-voice/errors"
	dto "github.com/foyer-app/foyer-voice/internal/adapter/dto/voice"
	"github.com/foyer-app/foyer-voice/internal/domain/entities"
	"github.com/foyer-app/foyer-voice/internal/usecase/pipeline"
	"github.com/foyer-app/foyer-voice/internal/usecase/transcription"
)

// maxChunkBytes bounds one chunk body read
const maxChunkBytes = 4 << 20

// Voice handles audio upload and transcription endpoints
type Voice struct {
	pipeline pipeline.Service
	logger   *zap.Logger
}

// NewVoiceHandler creates a new voice handler
func NewVoiceHandler(p pipeline.Service, logger *zap.Logger) *Voice {
	return &Voice{pipeline: p, logger: logger}
}

// InitUpload opens a chunked upload
// POST /v1/voice/uploads
func (h *Voice) InitUpload(c echo.Context) error {
	var req dto.InitUploadRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	householdID, err := uuid.Parse(req.HouseholdID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid household_id"))
	}

	upload, err := h.pipeline.InitUpload(c.Request().Context(), householdID, req.FileName, req.MimeType, req.DeclaredSize)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, dto.NewUploadResponse(upload))
}

// AddChunk receives one binary chunk
// PUT /v1/voice/uploads/:id/chunks/:index
func (h *Voice) AddChunk(c echo.Context) error {
	uploadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid upload id"))
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid chunk index"))
	}

	data, err := io.ReadAll(io.LimitReader(c.Request().Body, maxChunkBytes))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("failed to read chunk body"))
	}

	if err := h.pipeline.AddChunk(c.Request().Context(), uploadID, index, data); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusAccepted, map[string]interface{}{
		"upload_id": uploadID.String(),
		"index":     index,
		"bytes":     len(data),
	})
}

// CompleteUpload assembles the chunks and starts transcription
// POST /v1/voice/uploads/:id/complete
func (h *Voice) CompleteUpload(c echo.Context) error {
	uploadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid upload id"))
	}

	var req dto.CompleteUploadRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	if err := h.pipeline.CompleteUpload(c.Request().Context(), uploadID, req.Language); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusAccepted, map[string]string{
		"upload_id": uploadID.String(),
		"status":    "transcription_started",
	})
}

// GetTranscription returns a finished transcription with its quality grade
// GET /v1/voice/transcriptions/:audioID
func (h *Voice) GetTranscription(c echo.Context) error {
	audioID, err := uuid.Parse(c.Param("audioID"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid audio id"))
	}

	result := h.pipeline.GetTranscription(audioID)
	if result == nil {
		return HandleError(h.logger, c, entities.ErrTranscriptionNotFound)
	}

	quality := transcription.AssessTranscriptionQuality(result)
	return HandleSuccess(h.logger, c, http.StatusOK, dto.NewTranscriptionResponse(result, quality))
}

// SetRoster replaces a household's roster
// PUT /v1/households/:id/roster
func (h *Voice) SetRoster(c echo.Context) error {
	householdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid household id"))
	}

	var req dto.SetRosterRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	roster := entities.Roster{HouseholdID: householdID}
	for _, child := range req.Children {
		id, err := uuid.Parse(child.ID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid child id"))
		}
		roster.Children = append(roster.Children, entities.Child{
			ID:        id,
			Name:      child.Name,
			Nicknames: child.Nicknames,
			Age:       child.Age,
		})
	}
	for _, member := range req.Members {
		id, err := uuid.Parse(member.ID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid member id"))
		}
		roster.Members = append(roster.Members, entities.Member{
			ID:          id,
			Name:        member.Name,
			Role:        member.Role,
			CurrentLoad: member.CurrentLoad,
			Capacity:    member.Capacity,
		})
	}

	h.pipeline.SetRoster(roster)
	return HandleSuccess(h.logger, c, http.StatusOK, map[string]interface{}{
		"household_id": householdID.String(),
		"children":     len(roster.Children),
		"members":      len(roster.Members),
	})
}
