package extraction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

func newTestExtractor(provider Provider) *Extractor {
	e := NewExtractor(DefaultKeywordConfig(), provider, time.Second, nil)
	return e.WithClock(func() time.Time { return testNow })
}

func TestExtract_CombinedFrenchScenario(t *testing.T) {
	roster := testRoster()
	e := newTestExtractor(nil)

	got := e.Extract(context.Background(), uuid.New(),
		"Urgent: emmener Marie chez le médecin demain matin", "fr", roster)

	if got.Category.Primary != entities.CategoryHealth {
		t.Errorf("expected health category, got %s (%s)", got.Category.Primary, got.Category.Reason)
	}
	if got.Urgency.Level != entities.UrgencyHigh && got.Urgency.Level != entities.UrgencyCritical {
		t.Errorf("expected high or critical urgency, got %s", got.Urgency.Level)
	}
	if got.Date.Parsed == nil || !got.Date.Parsed.Equal(time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected demain parsed to 2025-06-11, got %+v", got.Date.Parsed)
	}
	if got.Child == nil || got.Child.ChildID != roster.Children[0].ID {
		t.Errorf("expected Marie matched, got %+v", got.Child)
	}
	if got.Source != entities.ExtractionSourceHeuristic {
		t.Errorf("expected heuristic source, got %s", got.Source)
	}
}

func TestExtract_EmptyInputDegradesGracefully(t *testing.T) {
	e := newTestExtractor(nil)
	got := e.Extract(context.Background(), uuid.New(), "", "fr", entities.Roster{})

	if got.Category.Primary != entities.CategoryOther {
		t.Errorf("empty input must classify as other, got %s", got.Category.Primary)
	}
	if got.Date.Type != entities.DateTypeNone {
		t.Errorf("empty input must have no date, got %s", got.Date.Type)
	}
	if got.Child != nil {
		t.Errorf("empty input must match no child")
	}
	if got.Urgency.Level != entities.UrgencyNone {
		t.Errorf("empty input must have baseline urgency, got %s", got.Urgency.Level)
	}
}

func TestExtract_ConfidenceBounds(t *testing.T) {
	e := newTestExtractor(nil)
	inputs := []string{
		"",
		"Urgent: emmener Marie chez le médecin demain matin",
		"ranger",
		"blablabla",
		"faire les courses samedi avec Mimi vite",
	}
	for _, text := range inputs {
		got := e.Extract(context.Background(), uuid.New(), text, "fr", testRoster())
		checks := map[string]float64{
			"overall":  got.Confidence,
			"category": got.Category.Confidence,
			"urgency":  got.Urgency.Confidence,
			"date":     got.Date.Confidence,
		}
		if got.Child != nil {
			checks["child"] = got.Child.Confidence
		}
		for name, confidence := range checks {
			if confidence < 0 || confidence > 1 {
				t.Errorf("input %q: %s confidence %f out of [0,1]", text, name, confidence)
			}
		}
	}
}

type failingProvider struct{}

func (failingProvider) Extract(context.Context, string, string, entities.Roster) (*entities.Extraction, error) {
	return nil, errors.New("provider unavailable")
}

func TestExtract_ProviderFailureFallsBack(t *testing.T) {
	e := newTestExtractor(failingProvider{})
	got := e.Extract(context.Background(), uuid.New(), "faire les courses demain", "fr", entities.Roster{})
	if got == nil {
		t.Fatalf("provider failure must not abort extraction")
	}
	if got.Source != entities.ExtractionSourceHeuristic {
		t.Fatalf("expected heuristic fallback, got %s", got.Source)
	}
	if got.Category.Primary != entities.CategoryFood {
		t.Fatalf("fallback path must still classify, got %s", got.Category.Primary)
	}
}

type cannedProvider struct {
	result *entities.Extraction
}

func (p cannedProvider) Extract(context.Context, string, string, entities.Roster) (*entities.Extraction, error) {
	return p.result, nil
}

func TestExtract_ProviderResultIsNormalized(t *testing.T) {
	canned := &entities.Extraction{
		Category: entities.CategoryResult{Primary: entities.CategoryHealth, Confidence: 1.7, Reason: "model says so"},
		Urgency:  entities.UrgencyResult{Level: entities.UrgencyHigh, Confidence: -0.2, Reason: "model says so"},
		Date:     entities.DateResult{Type: entities.DateTypeNone, Confidence: 0.5, Reason: "none found"},
		Action:   entities.BareAction{Verb: "emmener"},
	}
	e := newTestExtractor(cannedProvider{result: canned})
	transcriptionID := uuid.New()
	got := e.Extract(context.Background(), transcriptionID, "emmener marie", "fr", entities.Roster{})

	if got.Source != entities.ExtractionSourceProvider {
		t.Fatalf("expected provider source, got %s", got.Source)
	}
	if got.TranscriptionID != transcriptionID {
		t.Fatalf("provider result must be bound to the transcription")
	}
	if got.Category.Confidence != 1 || got.Urgency.Confidence != 0 {
		t.Fatalf("provider confidences must be clamped to [0,1], got %f / %f",
			got.Category.Confidence, got.Urgency.Confidence)
	}
	if got.Confidence < 0 || got.Confidence > 1 {
		t.Fatalf("overall confidence out of bounds: %f", got.Confidence)
	}
}
