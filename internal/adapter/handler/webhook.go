package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/foyer-app/foyer-voice/internal/usecase/pipeline"
)

// maxWebhookBytes bounds the webhook body read
const maxWebhookBytes = 1 << 20

// WebhookHandler receives transcription provider callbacks
type WebhookHandler struct {
	pipeline pipeline.Service
	logger   *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(p pipeline.Service, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{pipeline: p, logger: logger}
}

// HandleTranscription processes the provider's status callback
// POST /v1/webhooks/transcription
func (h *WebhookHandler) HandleTranscription(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBytes))
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to read webhook body", zap.Error(err))
		}
		return c.NoContent(http.StatusBadRequest)
	}

	authHeader := c.Request().Header.Get("X-Webhook-Secret")
	if err := h.pipeline.HandleTranscriptWebhook(c.Request().Context(), payload, authHeader); err != nil {
		if h.logger != nil {
			h.logger.Error("webhook processing failed", zap.Error(err))
		}
		// Acknowledge anyway so the provider does not hammer retries for
		// payloads we can never process.
		return c.NoContent(http.StatusOK)
	}
	return c.NoContent(http.StatusOK)
}
