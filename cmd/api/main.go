package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/foyer-app/foyer-voice/pkg/validator"

	"github.com/foyer-app/foyer-voice/internal/adapter/handler"
	"github.com/foyer-app/foyer-voice/internal/adapter/repository"
	"github.com/foyer-app/foyer-voice/internal/infrastructure/cache"
	"github.com/foyer-app/foyer-voice/internal/infrastructure/database"
	"github.com/foyer-app/foyer-voice/internal/infrastructure/storage"
	"github.com/foyer-app/foyer-voice/internal/usecase/extraction"
	"github.com/foyer-app/foyer-voice/internal/usecase/pipeline"
	"github.com/foyer-app/foyer-voice/internal/usecase/taskgen"
	pkgai "github.com/foyer-app/foyer-voice/pkg/ai"
	"github.com/foyer-app/foyer-voice/pkg/config"
	"github.com/foyer-app/foyer-voice/pkg/stt"
)

// @title           Foyer Voice API
// @version         1.0
// @description     Voice note ingestion and task extraction API for household coordination.

// @host      localhost:8080
// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("🔄 Applying schema migrations...")
	if err := database.Migrate(db, "migrations"); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Initialize preview cache. Redis is preferred; fall back to the
	// in-process store when Redis is unreachable so a dev box still works.
	log.Println("📦 Connecting to Redis...")
	var previewCache cache.Store
	redisStore, err := cache.NewRedisStore(cfg)
	if err != nil {
		log.Printf("⚠️  Redis unavailable (%v), using in-memory cache", err)
		previewCache = cache.NewMemoryStore()
	} else {
		defer redisStore.Close()
		previewCache = redisStore
	}

	// Initialize object storage for assembled audio
	log.Println("🗄️  Initializing audio object store...")
	audioStore, err := storage.NewAudioStore(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize audio store: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	taskRepo := repository.NewTaskRepository(db)

	// Initialize speech-to-text and extraction components
	log.Println("🎙️  Initializing speech components...")
	speechClient := stt.NewAssemblyAIClient(&cfg.Assembly)
	groqClient := pkgai.NewGroqClient(&cfg.Groq)
	extractor := extraction.NewExtractor(
		extraction.DefaultKeywordConfig(),
		extraction.NewLLMProvider(groqClient),
		cfg.Groq.Timeout,
		logger,
	)
	generator := taskgen.NewGenerator(cfg.Pipeline.PreviewTTL, logger)

	// Assemble the pipeline
	log.Println("🚀 Initializing voice pipeline...")
	pipe := pipeline.New(speechClient, audioStore, previewCache, taskRepo, extractor, generator, cfg, logger)
	if err := pipe.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	log.Println("✅ Pipeline started successfully")

	// Initialize handlers
	voiceHandler := handler.NewVoiceHandler(pipe, logger)
	taskHandler := handler.NewTaskHandler(pipe, logger)
	webhookHandler := handler.NewWebhookHandler(pipe, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, voiceHandler, taskHandler, webhookHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	if err := pipe.Stop(); err != nil {
		log.Printf("⚠️  Pipeline stop: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
