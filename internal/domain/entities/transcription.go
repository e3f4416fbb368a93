package entities

import (
	"time"

	"github.com/google/uuid"
)

// WordTimestamp represents a single recognized word with timing info
type WordTimestamp struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// TranscriptSegment represents a contiguous speech segment. Speaker is the
// provider's diarization label when speaker labels were requested.
type TranscriptSegment struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	Speaker    string  `json:"speaker,omitempty"`
	Confidence float64 `json:"confidence"`
}

// TranscriptionRequest is an in-flight call to the speech-to-text provider,
// keyed by the audio upload it references. Language "auto" lets the provider
// detect the spoken language.
type TranscriptionRequest struct {
	AudioID        uuid.UUID `json:"audio_id"`
	Language       string    `json:"language"`
	WordTimestamps bool      `json:"word_timestamps"`
	RequestedAt    time.Time `json:"requested_at"`
}

// TranscriptionResult is the immutable outcome of a provider call.
// Confidence is in [0,1]; Duration is seconds of audio.
type TranscriptionResult struct {
	ID           uuid.UUID           `json:"id"`
	AudioID      uuid.UUID           `json:"audio_id"`
	Text         string              `json:"text"`
	Language     string              `json:"language"`
	Confidence   float64             `json:"confidence"`
	Duration     float64             `json:"duration"`
	Words        []WordTimestamp     `json:"words,omitempty"`
	Segments     []TranscriptSegment `json:"segments,omitempty"`
	Provider     string              `json:"provider"`
	ProcessingMS int64               `json:"processing_ms"`
	CreatedAt    time.Time           `json:"created_at"`
}

// TranscriptionQuality is the qualitative grade derived from a result
type TranscriptionQuality string

const (
	TranscriptionQualityExcellent TranscriptionQuality = "excellent"
	TranscriptionQualityGood      TranscriptionQuality = "good"
	TranscriptionQualityFair      TranscriptionQuality = "fair"
	TranscriptionQualityPoor      TranscriptionQuality = "poor"
)
