package taskgen

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

// urgencyPriorities maps extraction urgency onto task priority. The baseline
// "none" lands on medium: an unsignaled task is a normal one.
var urgencyPriorities = map[entities.UrgencyLevel]entities.TaskPriority{
	entities.UrgencyCritical: entities.PriorityCritical,
	entities.UrgencyHigh:     entities.PriorityHigh,
	entities.UrgencyLow:      entities.PriorityLow,
	entities.UrgencyNone:     entities.PriorityMedium,
}

// Generator turns one semantic extraction into a task preview
type Generator struct {
	previewTTL time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewGenerator creates a generator. logger may be nil.
func NewGenerator(previewTTL time.Duration, logger *zap.Logger) *Generator {
	if previewTTL <= 0 {
		previewTTL = 15 * time.Minute
	}
	return &Generator{
		previewTTL: previewTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the generator's clock, for deterministic tests
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// GeneratePreview fuses the extraction with the roster into a pending task
// preview: generated title and alternatives, priority from urgency, due date
// from the date signal, charge weight, and ranked assignee suggestions.
func (g *Generator) GeneratePreview(extraction *entities.Extraction, roster entities.Roster) *entities.TaskPreview {
	now := g.now()

	priority, ok := urgencyPriorities[extraction.Urgency.Level]
	if !ok {
		priority = entities.PriorityMedium
	}
	charge := CalculateChargeWeight(extraction.Category.Primary, priority)
	title, alts := GenerateTitle(extraction, extraction.Language)

	preview := &entities.TaskPreview{
		ID:                 uuid.New(),
		ExtractionID:       extraction.ID,
		HouseholdID:        roster.HouseholdID,
		Title:              title,
		AltTitles:          alts,
		Category:           extraction.Category.Primary,
		Priority:           priority,
		Charge:             charge,
		SuggestedAssignees: RankAssignees(roster.Members, extraction.Category.Primary, charge),
		Status:             entities.PreviewStatusPending,
		CreatedAt:          now,
		ExpiresAt:          now.Add(g.previewTTL),
	}
	if extraction.Date.Parsed != nil {
		due := *extraction.Date.Parsed
		preview.DueDate = &due
	}
	if extraction.Child != nil {
		child := extraction.Child.ChildID
		preview.ChildID = &child
	}

	if g.logger != nil {
		g.logger.Info("generated task preview",
			zap.String("preview_id", preview.ID.String()),
			zap.String("category", string(preview.Category)),
			zap.String("priority", string(preview.Priority)),
			zap.Float64("charge_total", preview.Charge.Total),
			zap.Float64("extraction_confidence", extraction.Confidence),
		)
	}
	return preview
}
