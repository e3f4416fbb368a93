package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foyer-app/foyer-voice/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	voiceHandler   *Voice
	taskHandler    *Task
	webhookHandler *WebhookHandler
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, voiceHandler *Voice, taskHandler *Task, webhookHandler *WebhookHandler) *Router {
	return &Router{
		cfg:            cfg,
		voiceHandler:   voiceHandler,
		taskHandler:    taskHandler,
		webhookHandler: webhookHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupVoiceRoutes(v1)
	rt.setupTaskRoutes(v1)
	rt.setupWebhookRoutes(v1)
}

// setupVoiceRoutes configures upload and transcription routes
func (rt *Router) setupVoiceRoutes(g *echo.Group) {
	voiceGroup := g.Group("/voice")

	if rt.voiceHandler != nil {
		voiceGroup.POST("/uploads", rt.voiceHandler.InitUpload)
		voiceGroup.PUT("/uploads/:id/chunks/:index", rt.voiceHandler.AddChunk)
		voiceGroup.POST("/uploads/:id/complete", rt.voiceHandler.CompleteUpload)
		voiceGroup.GET("/transcriptions/:audioID", rt.voiceHandler.GetTranscription)
		g.PUT("/households/:id/roster", rt.voiceHandler.SetRoster)
	} else {
		voiceGroup.POST("/uploads", rt.notImplemented)
		voiceGroup.PUT("/uploads/:id/chunks/:index", rt.notImplemented)
		voiceGroup.POST("/uploads/:id/complete", rt.notImplemented)
		voiceGroup.GET("/transcriptions/:audioID", rt.notImplemented)
	}
}

// setupTaskRoutes configures preview lifecycle and task routes
func (rt *Router) setupTaskRoutes(g *echo.Group) {
	previewGroup := g.Group("/previews")

	if rt.taskHandler != nil {
		previewGroup.GET("", rt.taskHandler.ListPendingPreviews)
		previewGroup.GET("/:id", rt.taskHandler.GetPreview)
		previewGroup.PATCH("/:id", rt.taskHandler.UpdatePreview)
		previewGroup.POST("/:id/confirm", rt.taskHandler.ConfirmPreview)
		previewGroup.POST("/:id/cancel", rt.taskHandler.CancelPreview)
		g.GET("/tasks", rt.taskHandler.ListTasks)
	} else {
		previewGroup.GET("", rt.notImplemented)
		previewGroup.GET("/:id", rt.notImplemented)
		g.GET("/tasks", rt.notImplemented)
	}
}

// setupWebhookRoutes configures provider callback routes
func (rt *Router) setupWebhookRoutes(g *echo.Group) {
	webhookGroup := g.Group("/webhooks")

	if rt.webhookHandler != nil {
		webhookGroup.POST("/transcription", rt.webhookHandler.HandleTranscription)
	} else {
		webhookGroup.POST("/transcription", rt.notImplemented)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":  "This endpoint is not yet implemented",
		"path":   c.Request().URL.Path,
		"method": c.Request().Method,
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := "development"
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": env,
	})
}
