package entities

import (
	"time"

	"github.com/google/uuid"
)

// TaskCategory is the closed set of household task categories
type TaskCategory string

const (
	CategoryTransport  TaskCategory = "transport"
	CategoryHealth     TaskCategory = "health"
	CategoryEducation  TaskCategory = "education"
	CategoryFood       TaskCategory = "food"
	CategoryHousehold  TaskCategory = "household"
	CategoryActivities TaskCategory = "activities"
	CategorySocial     TaskCategory = "social"
	CategoryOther      TaskCategory = "other"
)

// AllCategories lists categories in declaration order; scoring ties break
// toward the earlier entry.
var AllCategories = []TaskCategory{
	CategoryTransport,
	CategoryHealth,
	CategoryEducation,
	CategoryFood,
	CategoryHousehold,
	CategoryActivities,
	CategorySocial,
	CategoryOther,
}

// UrgencyLevel is the ordered urgency scale. None is the baseline when no
// urgency keyword matches.
type UrgencyLevel string

const (
	UrgencyCritical UrgencyLevel = "critical"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyLow      UrgencyLevel = "low"
	UrgencyNone     UrgencyLevel = "none"
)

// DateType classifies how a date expression was recognized
type DateType string

const (
	DateTypeNone     DateType = "none"
	DateTypeRelative DateType = "relative"
	DateTypeAbsolute DateType = "absolute"
)

// BareAction is the verb/object split of an utterance. Object is nil for
// single-word input. Raw preserves the original text untouched for audit.
type BareAction struct {
	Raw        string  `json:"raw"`
	Normalized string  `json:"normalized"`
	Verb       string  `json:"verb"`
	Object     *string `json:"object,omitempty"`
}

// CategoryResult is a category classification with its justification
type CategoryResult struct {
	Primary    TaskCategory  `json:"primary"`
	Secondary  *TaskCategory `json:"secondary,omitempty"`
	Confidence float64       `json:"confidence"`
	Reason     string        `json:"reason"`
}

// UrgencyResult is an urgency classification with its justification
type UrgencyResult struct {
	Level      UrgencyLevel `json:"level"`
	Confidence float64      `json:"confidence"`
	Reason     string       `json:"reason"`
}

// DateResult is a date classification. Parsed is nil when Type is none.
type DateResult struct {
	Type       DateType   `json:"type"`
	Raw        string     `json:"raw,omitempty"`
	Parsed     *time.Time `json:"parsed,omitempty"`
	Confidence float64    `json:"confidence"`
	Reason     string     `json:"reason"`
}

// ChildMatch references a roster child recognized in the utterance
type ChildMatch struct {
	ChildID    uuid.UUID `json:"child_id"`
	Name       string    `json:"name"`
	Confidence float64   `json:"confidence"`
	Reason     string    `json:"reason"`
}

// Extraction is the immutable structured output produced once per
// transcription. Every sub-result carries a confidence and a reason so the
// UI and logs can explain classification decisions.
type Extraction struct {
	ID              uuid.UUID      `json:"id"`
	TranscriptionID uuid.UUID      `json:"transcription_id"`
	Language        string         `json:"language"`
	Action          BareAction     `json:"action"`
	Category        CategoryResult `json:"category"`
	Urgency         UrgencyResult  `json:"urgency"`
	Date            DateResult     `json:"date"`
	Child           *ChildMatch    `json:"child,omitempty"`
	Confidence      float64        `json:"confidence"`
	Source          string         `json:"source"`
	CreatedAt       time.Time      `json:"created_at"`
}

// Extraction sources
const (
	ExtractionSourceHeuristic = "heuristic"
	ExtractionSourceProvider  = "provider"
)
