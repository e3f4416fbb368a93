package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
	"github.com/foyer-app/foyer-voice/internal/domain/repositories"
	"github.com/foyer-app/foyer-voice/internal/infrastructure/cache"
	"github.com/foyer-app/foyer-voice/internal/infrastructure/storage"
	"github.com/foyer-app/foyer-voice/internal/usecase/audio"
	"github.com/foyer-app/foyer-voice/internal/usecase/extraction"
	"github.com/foyer-app/foyer-voice/internal/usecase/taskgen"
	"github.com/foyer-app/foyer-voice/internal/usecase/transcription"
	pkgai "github.com/foyer-app/foyer-voice/pkg/ai"
	"github.com/foyer-app/foyer-voice/pkg/config"
	"github.com/foyer-app/foyer-voice/pkg/jobcontext"
)

// SpeechClient is the transcription provider surface the pipeline needs
type SpeechClient interface {
	Upload(ctx context.Context, audio io.Reader) (string, error)
	Submit(ctx context.Context, audioURL, language string) (string, error)
	Fetch(ctx context.Context, transcriptID string, audioID uuid.UUID) (*entities.TranscriptionResult, error)
}

// BlobStore is the audio object storage surface the pipeline needs
type BlobStore interface {
	Put(ctx context.Context, objectName string, audio []byte, contentType string) error
	Get(ctx context.Context, objectName string) (io.ReadCloser, error)
	Delete(ctx context.Context, objectName string) error
}

// Service drives a voice note from first chunk to confirmed task
type Service interface {
	InitUpload(ctx context.Context, householdID uuid.UUID, fileName, mimeType string, declaredSize int64) (*entities.Upload, error)
	AddChunk(ctx context.Context, uploadID uuid.UUID, index int, data []byte) error
	CompleteUpload(ctx context.Context, uploadID uuid.UUID, language string) error
	HandleTranscriptWebhook(ctx context.Context, payload []byte, authHeader string) error
	GetTranscription(audioID uuid.UUID) *entities.TranscriptionResult

	GetPreview(previewID uuid.UUID) *entities.TaskPreview
	ListPendingPreviews(householdID uuid.UUID) []*entities.TaskPreview
	UpdatePreview(previewID uuid.UUID, patch taskgen.PreviewPatch) (*entities.TaskPreview, error)
	ConfirmPreview(ctx context.Context, previewID, confirmedBy uuid.UUID) (*entities.ConfirmedTask, error)
	CancelPreview(previewID uuid.UUID)
	ListTasks(ctx context.Context, householdID uuid.UUID, filters repositories.TaskFilters) ([]*entities.ConfirmedTask, error)

	SetRoster(roster entities.Roster)
	Start(ctx context.Context) error
	Stop() error
}

// jobRef ties a provider transcript id back to the originating upload
type jobRef struct {
	AudioID     uuid.UUID
	HouseholdID uuid.UUID
	Language    string
	ObjectName  string
}

type service struct {
	uploads     *audio.Store
	transcripts *transcription.Store
	previews    *taskgen.Store
	extractor   *extraction.Extractor
	generator   *taskgen.Generator

	speech   SpeechClient
	blobs    BlobStore
	cache    cache.Store
	taskRepo repositories.TaskRepository

	cfg    *config.Config
	logger *zap.Logger

	uploadSemaphore chan struct{}

	mu          sync.RWMutex
	jobs        map[string]jobRef                  // transcript id -> origin
	origins     map[uuid.UUID]uuid.UUID            // upload id -> household id
	extractions map[uuid.UUID]*entities.Extraction // preview id -> extraction
	rosters     map[uuid.UUID]entities.Roster

	stopChan  chan struct{}
	workerWg  sync.WaitGroup
	running   bool
	runningMu sync.Mutex
}

// New constructs the pipeline service
func New(
	speech SpeechClient,
	blobs BlobStore,
	cacheStore cache.Store,
	taskRepo repositories.TaskRepository,
	extractor *extraction.Extractor,
	generator *taskgen.Generator,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	workers := 2
	if cfg != nil && cfg.Pipeline.TranscribeWorkers > 0 {
		workers = cfg.Pipeline.TranscribeWorkers
	}
	return &service{
		uploads:         audio.NewStore(),
		transcripts:     transcription.NewStore(),
		previews:        taskgen.NewStore(),
		extractor:       extractor,
		generator:       generator,
		speech:          speech,
		blobs:           blobs,
		cache:           cacheStore,
		taskRepo:        taskRepo,
		cfg:             cfg,
		logger:          logger,
		uploadSemaphore: make(chan struct{}, workers),
		jobs:            make(map[string]jobRef),
		origins:         make(map[uuid.UUID]uuid.UUID),
		extractions:     make(map[uuid.UUID]*entities.Extraction),
		rosters:         make(map[uuid.UUID]entities.Roster),
		stopChan:        make(chan struct{}),
	}
}

// SetRoster registers or replaces a household's roster
func (s *service) SetRoster(roster entities.Roster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rosters[roster.HouseholdID] = roster
}

func (s *service) roster(householdID uuid.UUID) entities.Roster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if roster, ok := s.rosters[householdID]; ok {
		return roster
	}
	return entities.Roster{HouseholdID: householdID}
}

// InitUpload validates the declared metadata and opens a chunked upload
func (s *service) InitUpload(ctx context.Context, householdID uuid.UUID, fileName, mimeType string, declaredSize int64) (*entities.Upload, error) {
	format := audio.DetectAudioFormat(mimeType)
	if result := audio.ValidateAudioFormat(format, mimeType); !result.Valid {
		return nil, fmt.Errorf("%w: %s", entities.ErrInvalidRequest, result.Reason)
	}

	upload, err := s.uploads.InitializeUpload(householdID, fileName, mimeType, declaredSize, s.cfg.Pipeline.MaxUploadBytes)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.origins[upload.ID] = householdID
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("upload initialized",
			zap.String("upload_id", upload.ID.String()),
			zap.String("mime_type", mimeType),
			zap.Int64("declared_size", declaredSize),
		)
	}
	return upload, nil
}

// AddChunk records one chunk. Late or unknown chunks are dropped by the
// upload store, so delivery order never matters here.
func (s *service) AddChunk(_ context.Context, uploadID uuid.UUID, index int, data []byte) error {
	s.uploads.AddChunk(uploadID, data, index)
	return nil
}

// CompleteUpload assembles the chunks, persists the blob and hands the audio
// to the transcription provider in the background.
func (s *service) CompleteUpload(ctx context.Context, uploadID uuid.UUID, language string) error {
	data, err := s.uploads.AssembleChunks(uploadID)
	if err != nil {
		return err
	}
	assembled := s.uploads.Get(uploadID)
	if assembled == nil {
		return entities.ErrUploadNotFound
	}

	limits := audio.Limits{
		MaxBytes:           s.cfg.Pipeline.MaxUploadBytes,
		MaxDurationSeconds: s.cfg.Pipeline.MaxDurationSeconds,
	}
	if result := audio.ValidateAudioSize(int64(len(data)), limits); !result.Valid {
		s.uploads.FailUpload(uploadID, result.Reason)
		return entities.ErrUploadTooLarge
	}

	format := audio.DetectAudioFormat(assembled.MimeType)
	objectName := storage.ObjectName(assembled.ID, string(format))

	if err := s.blobs.Put(ctx, objectName, data, assembled.MimeType); err != nil {
		s.uploads.FailUpload(uploadID, "storage write failed")
		return fmt.Errorf("failed to store audio: %w", err)
	}

	lang := transcription.NormalizeLanguage(language, s.cfg.Pipeline.DefaultLanguage)
	s.transcripts.StartTranscription(entities.TranscriptionRequest{
		AudioID:        assembled.ID,
		Language:       lang,
		WordTimestamps: true,
		RequestedAt:    time.Now(),
	})

	s.mu.RLock()
	householdID := s.origins[uploadID]
	s.mu.RUnlock()

	jobID := uuid.New()
	s.workerWg.Add(1)
	go func() {
		defer s.workerWg.Done()
		jobCtx, cancel := jobcontext.JobBegin(context.Background(), jobID, jobcontext.StageTranscription, 0, s.cfg.Pipeline.JobTimeout)
		defer cancel()
		if err := s.submitToProvider(jobCtx, jobRef{
			AudioID:     assembled.ID,
			HouseholdID: householdID,
			Language:    lang,
			ObjectName:  objectName,
		}); err != nil {
			s.transcripts.FailTranscription(assembled.ID)
			if s.logger != nil {
				s.logger.Error("❌ Failed to submit audio for transcription",
					zap.String("audio_id", assembled.ID.String()),
					zap.Error(err),
				)
			}
		}
	}()

	if s.logger != nil {
		s.logger.Info("upload assembled",
			zap.String("upload_id", uploadID.String()),
			zap.Int("bytes", len(data)),
			zap.String("language", lang),
		)
	}
	return nil
}

// submitToProvider streams the stored blob to the provider and submits the
// transcription request, retrying transient failures with backoff.
func (s *service) submitToProvider(ctx context.Context, ref jobRef) error {
	// Semaphore limits concurrent provider uploads
	s.uploadSemaphore <- struct{}{}
	defer func() { <-s.uploadSemaphore }()

	submitFn := func() error {
		blob, err := s.blobs.Get(ctx, ref.ObjectName)
		if err != nil {
			return fmt.Errorf("failed to open stored audio: %w", err)
		}
		defer blob.Close()

		uploadURL, err := s.speech.Upload(ctx, blob)
		if err != nil {
			return fmt.Errorf("failed to upload to provider: %w", err)
		}

		transcriptID, err := s.speech.Submit(ctx, uploadURL, ref.Language)
		if err != nil {
			return err
		}

		// Register before returning so the webhook can resolve the job even
		// when it arrives within seconds
		s.mu.Lock()
		s.jobs[transcriptID] = ref
		s.mu.Unlock()

		if s.logger != nil {
			s.logger.Info("✅ Transcription job submitted",
				zap.String("audio_id", ref.AudioID.String()),
				zap.String("transcript_id", transcriptID),
			)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	return backoff.Retry(func() error {
		err := submitFn()
		if err != nil && !jobcontext.IsRetryableError(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(bo, ctx))
}

// webhookPayload is the provider's completion callback body
type webhookPayload struct {
	TranscriptID string `json:"transcript_id"`
	ID           string `json:"id"`
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
}

// HandleTranscriptWebhook processes the provider's status callback. Completed
// transcripts flow straight through extraction into a pending task preview.
func (s *service) HandleTranscriptWebhook(ctx context.Context, payload []byte, authHeader string) error {
	if !pkgai.VerifyWebhookAuth(s.cfg.Assembly.WebhookSecret, authHeader) {
		if s.logger != nil {
			s.logger.Warn("webhook rejected, bad auth header")
		}
		return fmt.Errorf("invalid webhook auth")
	}

	var body webhookPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return fmt.Errorf("failed to parse webhook payload: %w", err)
	}

	transcriptID := body.TranscriptID
	if transcriptID == "" {
		transcriptID = body.ID
	}
	if transcriptID == "" {
		return fmt.Errorf("transcript ID missing in webhook")
	}

	s.mu.RLock()
	ref, ok := s.jobs[transcriptID]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no job found for transcript %s", transcriptID)
	}

	if s.logger != nil {
		s.logger.Info("received transcription webhook",
			zap.String("transcript_id", transcriptID),
			zap.String("status", body.Status),
		)
	}

	switch body.Status {
	case "completed":
		return s.handleCompletedTranscript(ctx, transcriptID, ref)
	case "error":
		s.transcripts.FailTranscription(ref.AudioID)
		if s.logger != nil {
			s.logger.Error("provider reported transcription error",
				zap.String("audio_id", ref.AudioID.String()),
				zap.String("error", body.Error),
			)
		}
		return nil
	default:
		// processing and queued are informational
		return nil
	}
}

// handleCompletedTranscript fetches the final transcript and runs the rest of
// the pipeline synchronously: quality gate, extraction, preview generation.
func (s *service) handleCompletedTranscript(ctx context.Context, transcriptID string, ref jobRef) error {
	result, err := s.speech.Fetch(ctx, transcriptID, ref.AudioID)
	if err != nil {
		s.transcripts.FailTranscription(ref.AudioID)
		return fmt.Errorf("failed to fetch transcript: %w", err)
	}
	if result.Language == "" {
		result.Language = ref.Language
	}

	s.transcripts.CompleteTranscription(result)

	thresholds := transcription.DefaultThresholds()
	if !transcription.IsTranscriptionReliable(result, thresholds) {
		quality := transcription.AssessTranscriptionQuality(result)
		if s.logger != nil {
			s.logger.Warn("transcription below reliability gate, skipping extraction",
				zap.String("audio_id", ref.AudioID.String()),
				zap.String("quality", string(quality)),
				zap.Float64("confidence", result.Confidence),
			)
		}
		return nil
	}

	roster := s.roster(ref.HouseholdID)

	extracted := s.extractor.Extract(ctx, result.ID, result.Text, result.Language, roster)

	preview := s.generator.GeneratePreview(extracted, roster)
	s.previews.AddPreview(preview)

	s.mu.Lock()
	s.extractions[preview.ID] = extracted
	s.mu.Unlock()

	s.cachePreview(ctx, preview)

	if s.logger != nil {
		s.logger.Info("✅ Pipeline produced task preview",
			zap.String("audio_id", ref.AudioID.String()),
			zap.String("preview_id", preview.ID.String()),
			zap.String("title", preview.Title),
		)
	}
	return nil
}

func (s *service) cachePreview(ctx context.Context, preview *entities.TaskPreview) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(preview)
	if err != nil {
		return
	}
	ttl := time.Until(preview.ExpiresAt)
	if ttl <= 0 {
		return
	}
	if err := s.cache.Set(ctx, previewCacheKey(preview.ID), string(raw), ttl); err != nil && s.logger != nil {
		s.logger.Warn("failed to cache preview", zap.Error(err))
	}
}

func previewCacheKey(id uuid.UUID) string {
	return "preview:" + id.String()
}

// GetTranscription returns the stored result for an audio reference, nil
// when that audio was never transcribed. Clients only ever hold the audio id.
func (s *service) GetTranscription(audioID uuid.UUID) *entities.TranscriptionResult {
	return s.transcripts.GetByAudioID(audioID)
}

// GetPreview returns a preview with lazy expiry applied, nil when unknown
func (s *service) GetPreview(previewID uuid.UUID) *entities.TaskPreview {
	return s.previews.GetPreview(previewID)
}

// ListPendingPreviews lists a household's live previews
func (s *service) ListPendingPreviews(householdID uuid.UUID) []*entities.TaskPreview {
	return s.previews.GetPendingPreviews(householdID)
}

// UpdatePreview edits a pending preview
func (s *service) UpdatePreview(previewID uuid.UUID, patch taskgen.PreviewPatch) (*entities.TaskPreview, error) {
	updated, err := s.previews.UpdatePreview(previewID, patch)
	if err != nil {
		return nil, err
	}
	s.cachePreview(context.Background(), updated)
	return updated, nil
}

// ConfirmPreview confirms a preview and persists the resulting task. The
// in-memory transition is the at-most-once gate; the database unique index on
// preview_id backs it up.
func (s *service) ConfirmPreview(ctx context.Context, previewID, confirmedBy uuid.UUID) (*entities.ConfirmedTask, error) {
	task, err := s.previews.ConfirmTask(previewID, confirmedBy)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	extracted := s.extractions[previewID]
	delete(s.extractions, previewID)
	s.mu.Unlock()

	if extracted != nil {
		if raw, err := json.Marshal(extracted); err == nil {
			task.SetSignals(raw)
		}
	}

	if s.taskRepo != nil {
		if err := s.taskRepo.Create(ctx, task); err != nil {
			if s.logger != nil {
				s.logger.Error("❌ Failed to persist confirmed task",
					zap.String("task_id", task.ID.String()),
					zap.Error(err),
				)
			}
			return nil, fmt.Errorf("failed to persist task: %w", err)
		}
	}

	if s.cache != nil {
		s.cache.Delete(ctx, previewCacheKey(previewID))
	}

	if s.logger != nil {
		s.logger.Info("task confirmed",
			zap.String("task_id", task.ID.String()),
			zap.String("preview_id", previewID.String()),
		)
	}
	return task, nil
}

// CancelPreview cancels a pending preview, no-op otherwise
func (s *service) CancelPreview(previewID uuid.UUID) {
	s.previews.CancelPreview(previewID)
	s.mu.Lock()
	delete(s.extractions, previewID)
	s.mu.Unlock()
	if s.cache != nil {
		s.cache.Delete(context.Background(), previewCacheKey(previewID))
	}
}

// ListTasks lists confirmed tasks from the sink
func (s *service) ListTasks(ctx context.Context, householdID uuid.UUID, filters repositories.TaskFilters) ([]*entities.ConfirmedTask, error) {
	if s.taskRepo == nil {
		return nil, nil
	}
	return s.taskRepo.ListByHousehold(ctx, householdID, filters)
}

// Start launches the background sweeper
func (s *service) Start(ctx context.Context) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if s.running {
		return fmt.Errorf("pipeline already running")
	}
	s.running = true
	s.stopChan = make(chan struct{})

	s.workerWg.Add(1)
	go s.sweeper(ctx)

	if s.logger != nil {
		s.logger.Info("🚀 Pipeline started",
			zap.Int("transcribe_workers", cap(s.uploadSemaphore)),
		)
	}
	return nil
}

// Stop waits for in-flight jobs and stops the sweeper
func (s *service) Stop() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return fmt.Errorf("pipeline not running")
	}
	close(s.stopChan)
	s.workerWg.Wait()
	s.running = false

	if s.logger != nil {
		s.logger.Info("✅ Pipeline stopped")
	}
	return nil
}

// sweeper periodically expires stale previews and drops their extractions
func (s *service) sweeper(ctx context.Context) {
	defer s.workerWg.Done()

	interval := s.cfg.Pipeline.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.previews.SweepExpired()
		}
	}
}
