package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
	"github.com/foyer-app/foyer-voice/internal/domain/repositories"
	"github.com/foyer-app/foyer-voice/internal/infrastructure/cache"
	"github.com/foyer-app/foyer-voice/internal/usecase/extraction"
	"github.com/foyer-app/foyer-voice/internal/usecase/taskgen"
	"github.com/foyer-app/foyer-voice/pkg/config"
)

type fakeSpeech struct {
	mu        sync.Mutex
	submitted chan string
	text      string
}

func (f *fakeSpeech) Upload(_ context.Context, audio io.Reader) (string, error) {
	io.Copy(io.Discard, audio)
	return "https://provider.test/audio", nil
}

func (f *fakeSpeech) Submit(_ context.Context, _, _ string) (string, error) {
	id := "tr-" + uuid.NewString()
	f.submitted <- id
	return id, nil
}

func (f *fakeSpeech) Fetch(_ context.Context, transcriptID string, audioID uuid.UUID) (*entities.TranscriptionResult, error) {
	return &entities.TranscriptionResult{
		ID:         uuid.New(),
		AudioID:    audioID,
		Text:       f.text,
		Language:   "fr",
		Confidence: 0.92,
		Duration:   4.2,
		Provider:   "fake",
		CreatedAt:  time.Now(),
	}, nil
}

type fakeBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: make(map[string][]byte)}
}

func (f *fakeBlobs) Put(_ context.Context, objectName string, audio []byte, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[objectName] = append([]byte(nil), audio...)
	return nil
}

func (f *fakeBlobs) Get(_ context.Context, objectName string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[objectName]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeBlobs) Delete(_ context.Context, objectName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, objectName)
	return nil
}

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks []*entities.ConfirmedTask
}

func (f *fakeTaskRepo) Create(_ context.Context, task *entities.ConfirmedTask) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.tasks {
		if existing.PreviewID == task.PreviewID {
			return errors.New("duplicate preview_id")
		}
	}
	f.tasks = append(f.tasks, task)
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.ConfirmedTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, task := range f.tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return nil, nil
}

func (f *fakeTaskRepo) GetByPreviewID(_ context.Context, previewID uuid.UUID) (*entities.ConfirmedTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, task := range f.tasks {
		if task.PreviewID == previewID {
			return task, nil
		}
	}
	return nil, nil
}

func (f *fakeTaskRepo) ListByHousehold(_ context.Context, householdID uuid.UUID, _ repositories.TaskFilters) ([]*entities.ConfirmedTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.ConfirmedTask
	for _, task := range f.tasks {
		if task.HouseholdID == householdID {
			out = append(out, task)
		}
	}
	return out, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Pipeline: config.PipelineConfig{
			MaxUploadBytes:     1 << 20,
			MaxDurationSeconds: 300,
			TranscribeWorkers:  2,
			JobTimeout:         time.Minute,
			PreviewTTL:         15 * time.Minute,
			SweepInterval:      time.Minute,
			DefaultLanguage:    "fr",
		},
	}
}

func testPipeline(t *testing.T, speech *fakeSpeech) (Service, *fakeTaskRepo, uuid.UUID) {
	t.Helper()

	cfg := testConfig()
	repo := &fakeTaskRepo{}
	extractor := extraction.NewExtractor(extraction.DefaultKeywordConfig(), nil, 0, nil)
	generator := taskgen.NewGenerator(cfg.Pipeline.PreviewTTL, nil)

	svc := New(speech, newFakeBlobs(), cache.NewMemoryStore(), repo, extractor, generator, cfg, nil)

	household := uuid.New()
	svc.SetRoster(entities.Roster{
		HouseholdID: household,
		Children: []entities.Child{
			{ID: uuid.New(), Name: "Marie", Age: 6},
		},
		Members: []entities.Member{
			{ID: uuid.New(), Name: "Claire", Role: "parent", CurrentLoad: 20, Capacity: 40},
			{ID: uuid.New(), Name: "Julien", Role: "parent", CurrentLoad: 10, Capacity: 40},
		},
	})
	return svc, repo, household
}

func runUpload(t *testing.T, svc Service, speech *fakeSpeech, household uuid.UUID) string {
	t.Helper()
	ctx := context.Background()

	upload, err := svc.InitUpload(ctx, household, "note.webm", "audio/webm", 10)
	if err != nil {
		t.Fatalf("InitUpload failed: %v", err)
	}
	// Chunks delivered out of order.
	svc.AddChunk(ctx, upload.ID, 1, []byte("jour"))
	svc.AddChunk(ctx, upload.ID, 0, []byte("bon"))

	if err := svc.CompleteUpload(ctx, upload.ID, "fr"); err != nil {
		t.Fatalf("CompleteUpload failed: %v", err)
	}

	select {
	case transcriptID := <-speech.submitted:
		return transcriptID
	case <-time.After(5 * time.Second):
		t.Fatalf("provider submission never happened")
		return ""
	}
}

func TestPipeline_EndToEnd(t *testing.T) {
	speech := &fakeSpeech{
		submitted: make(chan string, 1),
		text:      "Urgent: emmener Marie chez le médecin demain matin",
	}
	svc, repo, household := testPipeline(t, speech)
	ctx := context.Background()

	transcriptID := runUpload(t, svc, speech, household)

	payload, _ := json.Marshal(map[string]string{"transcript_id": transcriptID, "status": "completed"})
	if err := svc.HandleTranscriptWebhook(ctx, payload, ""); err != nil {
		t.Fatalf("webhook handling failed: %v", err)
	}

	previews := svc.ListPendingPreviews(household)
	if len(previews) != 1 {
		t.Fatalf("expected 1 pending preview, got %d", len(previews))
	}
	preview := previews[0]
	if preview.Category != entities.CategoryHealth {
		t.Fatalf("expected health category, got %s", preview.Category)
	}
	if preview.Priority != entities.PriorityHigh && preview.Priority != entities.PriorityCritical {
		t.Fatalf("urgent note must raise priority, got %s", preview.Priority)
	}
	if preview.ChildID == nil {
		t.Fatalf("child must be matched from roster")
	}
	if preview.DueDate == nil {
		t.Fatalf("relative date must produce a due date")
	}

	confirmer := uuid.New()
	task, err := svc.ConfirmPreview(ctx, preview.ID, confirmer)
	if err != nil {
		t.Fatalf("ConfirmPreview failed: %v", err)
	}
	if len(task.Signals) == 0 {
		t.Fatalf("confirmed task must carry the extraction snapshot")
	}

	stored, err := repo.ListByHousehold(ctx, household, repositories.TaskFilters{})
	if err != nil || len(stored) != 1 {
		t.Fatalf("expected 1 persisted task, got %d (%v)", len(stored), err)
	}

	// Second confirmation of the same preview is rejected.
	if _, err := svc.ConfirmPreview(ctx, preview.ID, confirmer); !errors.Is(err, entities.ErrPreviewNotConfirmable) {
		t.Fatalf("second confirmation must be rejected, got %v", err)
	}
}

func TestPipeline_TranscriptionLookupByUploadID(t *testing.T) {
	speech := &fakeSpeech{
		submitted: make(chan string, 1),
		text:      "acheter du pain pour ce soir",
	}
	svc, _, household := testPipeline(t, speech)
	ctx := context.Background()

	// The upload id is the only reference clients ever hold.
	upload, err := svc.InitUpload(ctx, household, "note.webm", "audio/webm", 10)
	if err != nil {
		t.Fatalf("InitUpload failed: %v", err)
	}
	svc.AddChunk(ctx, upload.ID, 0, []byte("bonjour"))
	if err := svc.CompleteUpload(ctx, upload.ID, "fr"); err != nil {
		t.Fatalf("CompleteUpload failed: %v", err)
	}

	var transcriptID string
	select {
	case transcriptID = <-speech.submitted:
	case <-time.After(5 * time.Second):
		t.Fatalf("provider submission never happened")
	}

	if got := svc.GetTranscription(upload.ID); got != nil {
		t.Fatalf("transcription must be absent before completion, got %+v", got)
	}

	payload, _ := json.Marshal(map[string]string{"transcript_id": transcriptID, "status": "completed"})
	if err := svc.HandleTranscriptWebhook(ctx, payload, ""); err != nil {
		t.Fatalf("webhook handling failed: %v", err)
	}

	result := svc.GetTranscription(upload.ID)
	if result == nil {
		t.Fatalf("completed transcription must be retrievable by the upload id")
	}
	if result.AudioID != upload.ID {
		t.Fatalf("result audio reference mismatch: got %s want %s", result.AudioID, upload.ID)
	}
	if result.Text != speech.text {
		t.Fatalf("unexpected transcript text %q", result.Text)
	}
}

func TestPipeline_WebhookErrorStatus(t *testing.T) {
	speech := &fakeSpeech{submitted: make(chan string, 1), text: "..."}
	svc, _, household := testPipeline(t, speech)
	ctx := context.Background()

	transcriptID := runUpload(t, svc, speech, household)

	payload, _ := json.Marshal(map[string]string{"transcript_id": transcriptID, "status": "error", "error": "audio too noisy"})
	if err := svc.HandleTranscriptWebhook(ctx, payload, ""); err != nil {
		t.Fatalf("error webhook must be absorbed: %v", err)
	}
	if got := svc.ListPendingPreviews(household); len(got) != 0 {
		t.Fatalf("failed transcription must not produce previews")
	}
}

func TestPipeline_WebhookUnknownJob(t *testing.T) {
	speech := &fakeSpeech{submitted: make(chan string, 1), text: "..."}
	svc, _, _ := testPipeline(t, speech)

	payload, _ := json.Marshal(map[string]string{"transcript_id": "tr-unknown", "status": "completed"})
	if err := svc.HandleTranscriptWebhook(context.Background(), payload, ""); err == nil {
		t.Fatalf("unknown transcript must be an error")
	}
}

func TestPipeline_UnreliableTranscriptSkipsExtraction(t *testing.T) {
	speech := &fakeSpeech{submitted: make(chan string, 1), text: "euh"}
	svc, _, household := testPipeline(t, speech)
	ctx := context.Background()

	transcriptID := runUpload(t, svc, speech, household)

	payload, _ := json.Marshal(map[string]string{"transcript_id": transcriptID, "status": "completed"})
	if err := svc.HandleTranscriptWebhook(ctx, payload, ""); err != nil {
		t.Fatalf("webhook handling failed: %v", err)
	}
	// Single word transcript fails the minimum word threshold.
	if got := svc.ListPendingPreviews(household); len(got) != 0 {
		t.Fatalf("unreliable transcript must not produce a preview, got %d", len(got))
	}
}

func TestPipeline_RejectsUnsupportedFormat(t *testing.T) {
	speech := &fakeSpeech{submitted: make(chan string, 1)}
	svc, _, household := testPipeline(t, speech)

	_, err := svc.InitUpload(context.Background(), household, "doc.pdf", "application/pdf", 10)
	if !errors.Is(err, entities.ErrInvalidRequest) {
		t.Fatalf("unsupported mime type must be rejected, got %v", err)
	}
	// The validator's reason must reach the caller.
	if !strings.Contains(err.Error(), "application/pdf") {
		t.Fatalf("rejection must name the offending mime type, got %q", err.Error())
	}
}

func TestPipeline_StartStop(t *testing.T) {
	speech := &fakeSpeech{submitted: make(chan string, 1)}
	svc, _, _ := testPipeline(t, speech)

	ctx := context.Background()
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := svc.Start(ctx); err == nil {
		t.Fatalf("double Start must fail")
	}
	if err := svc.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := svc.Stop(); err == nil {
		t.Fatalf("double Stop must fail")
	}
}
