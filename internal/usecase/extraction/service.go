package extraction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

// Provider is the optional higher-accuracy extraction path (an LLM). Its
// output shape is identical to the keyword fallback so the task generator
// cannot tell the two apart.
type Provider interface {
	Extract(ctx context.Context, text, lang string, roster entities.Roster) (*entities.Extraction, error)
}

// Overall-confidence weights. Category and action carry the most signal.
const (
	weightCategory = 0.30
	weightAction   = 0.30
	weightUrgency  = 0.15
	weightDate     = 0.15
	weightChild    = 0.10
)

// Extractor turns transcript text into structured task signals. The keyword
// heuristics are always available; the provider, when configured, is tried
// first with a bounded timeout and degrades silently to the heuristics.
type Extractor struct {
	cfg      *KeywordConfig
	provider Provider
	timeout  time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewExtractor creates an extractor. provider may be nil; logger may be nil.
func NewExtractor(cfg *KeywordConfig, provider Provider, timeout time.Duration, logger *zap.Logger) *Extractor {
	if cfg == nil {
		cfg = DefaultKeywordConfig()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Extractor{
		cfg:      cfg,
		provider: provider,
		timeout:  timeout,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the current-date source, for deterministic tests
func (e *Extractor) WithClock(now func() time.Time) *Extractor {
	e.now = now
	return e
}

// Extract produces the structured signals for one transcription. It never
// fails: ambiguous input yields low-confidence structured results and the
// caller decides whether to proceed.
func (e *Extractor) Extract(ctx context.Context, transcriptionID uuid.UUID, text, lang string, roster entities.Roster) *entities.Extraction {
	if e.provider != nil {
		providerCtx, cancel := context.WithTimeout(ctx, e.timeout)
		result, err := e.provider.Extract(providerCtx, text, lang, roster)
		cancel()
		if err == nil && result != nil {
			result.ID = uuid.New()
			result.TranscriptionID = transcriptionID
			result.Language = lang
			result.Source = entities.ExtractionSourceProvider
			result.CreatedAt = e.now()
			clampConfidences(result)
			result.Confidence = overallConfidence(result)
			return result
		}
		if e.logger != nil {
			e.logger.Warn("extraction provider failed, falling back to keyword heuristics",
				zap.String("transcription_id", transcriptionID.String()),
				zap.Error(err),
			)
		}
	}
	return e.ExtractHeuristic(transcriptionID, text, lang, roster)
}

// ExtractHeuristic is the keyword-based path. It works with zero external
// calls and is used in tests, during provider outage, and as a pre-filter.
func (e *Extractor) ExtractHeuristic(transcriptionID uuid.UUID, text, lang string, roster entities.Roster) *entities.Extraction {
	result := &entities.Extraction{
		ID:              uuid.New(),
		TranscriptionID: transcriptionID,
		Language:        lang,
		Action:          ExtractAction(text),
		Category:        DetectCategory(text, lang, e.cfg),
		Urgency:         DetectUrgency(text, lang, e.cfg),
		Date:            ParseDate(text, lang, e.now()),
		Child:           MatchChild(text, roster),
		Source:          entities.ExtractionSourceHeuristic,
		CreatedAt:       e.now(),
	}
	result.Confidence = overallConfidence(result)
	return result
}

// overallConfidence is the weighted mean of the per-signal confidences. The
// child weight is redistributed when no child was referenced, so an utterance
// without a name is not penalized.
func overallConfidence(x *entities.Extraction) float64 {
	total := weightCategory*x.Category.Confidence +
		weightAction*actionConfidence(x.Action) +
		weightUrgency*x.Urgency.Confidence +
		weightDate*x.Date.Confidence
	weight := weightCategory + weightAction + weightUrgency + weightDate
	if x.Child != nil {
		total += weightChild * x.Child.Confidence
		weight += weightChild
	}
	return clamp01(total / weight)
}

func clampConfidences(x *entities.Extraction) {
	x.Category.Confidence = clamp01(x.Category.Confidence)
	x.Urgency.Confidence = clamp01(x.Urgency.Confidence)
	x.Date.Confidence = clamp01(x.Date.Confidence)
	if x.Child != nil {
		x.Child.Confidence = clamp01(x.Child.Confidence)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
