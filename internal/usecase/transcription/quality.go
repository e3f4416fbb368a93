package transcription

import (
	"strings"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

// Thresholds tune the quality grading and the reliability gate
type Thresholds struct {
	MinConfidence      float64
	MinDurationSeconds float64
	MinWords           int
}

// DefaultThresholds are the production defaults
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinConfidence:      0.5,
		MinDurationSeconds: 0.5,
		MinWords:           2,
	}
}

// AssessTranscriptionQuality derives a qualitative grade from confidence and
// duration. Very short audio downgrades the grade one notch even when the raw
// confidence looks acceptable, because sub-second clips rarely carry a usable
// utterance.
func AssessTranscriptionQuality(result *entities.TranscriptionResult) entities.TranscriptionQuality {
	if result == nil {
		return entities.TranscriptionQualityPoor
	}

	var grade entities.TranscriptionQuality
	switch {
	case result.Confidence >= 0.9:
		grade = entities.TranscriptionQualityExcellent
	case result.Confidence >= 0.75:
		grade = entities.TranscriptionQualityGood
	case result.Confidence >= 0.5:
		grade = entities.TranscriptionQualityFair
	default:
		grade = entities.TranscriptionQualityPoor
	}

	if result.Duration < 1.0 {
		grade = downgrade(grade)
	}
	return grade
}

func downgrade(q entities.TranscriptionQuality) entities.TranscriptionQuality {
	switch q {
	case entities.TranscriptionQualityExcellent:
		return entities.TranscriptionQualityGood
	case entities.TranscriptionQualityGood:
		return entities.TranscriptionQualityFair
	default:
		return entities.TranscriptionQualityPoor
	}
}

// IsTranscriptionReliable is the boolean gate before extraction: a minimum
// confidence plus a minimum meaningful-content check. Extraction should not
// proceed on an unreliable transcript; the surrounding system prompts the
// user to retry instead.
func IsTranscriptionReliable(result *entities.TranscriptionResult, th Thresholds) bool {
	if result == nil {
		return false
	}
	if result.Confidence < th.MinConfidence {
		return false
	}
	if result.Duration < th.MinDurationSeconds {
		return false
	}
	words := strings.Fields(strings.TrimSpace(result.Text))
	return len(words) >= th.MinWords
}
