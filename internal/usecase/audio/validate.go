package audio

import (
	"fmt"
	"strings"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

// ValidationResult is a pass/fail outcome with a specific reason. Validation
// failures are normal control flow for callers, never errors.
type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// Limits are the configured ingestion bounds. They gate ingestion before any
// provider call is made, so invalid input never costs a transcription.
type Limits struct {
	MaxBytes           int64
	MaxDurationSeconds float64
}

// mimeFormats maps the supported audio MIME types to internal format tags
var mimeFormats = map[string]entities.AudioFormat{
	"audio/webm": entities.AudioFormatWebM,
	"audio/mpeg": entities.AudioFormatMP3,
	"audio/mp3":  entities.AudioFormatMP3,
	"audio/wav":  entities.AudioFormatWAV,
	"audio/wave": entities.AudioFormatWAV,
	"audio/ogg":  entities.AudioFormatOGG,
}

// DetectAudioFormat maps a MIME type onto an internal format tag.
// Unrecognized types yield FormatUnsupported, not an error. Codec parameters
// ("audio/webm;codecs=opus") are ignored.
func DetectAudioFormat(mimeType string) entities.AudioFormat {
	base := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(base, ";"); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	if format, ok := mimeFormats[base]; ok {
		return format
	}
	return entities.AudioFormatUnsupported
}

// ValidateAudioFormat checks that the detected format is supported
func ValidateAudioFormat(format entities.AudioFormat, mimeType string) ValidationResult {
	if format == entities.AudioFormatUnsupported || format == "" {
		return ValidationResult{Reason: fmt.Sprintf("unsupported audio format: %q", mimeType)}
	}
	return ValidationResult{Valid: true}
}

// ValidateAudioSize checks the byte size against the configured limit
func ValidateAudioSize(sizeBytes int64, limits Limits) ValidationResult {
	if sizeBytes <= 0 {
		return ValidationResult{Reason: "audio is empty"}
	}
	if sizeBytes > limits.MaxBytes {
		return ValidationResult{Reason: fmt.Sprintf("audio exceeds size limit: %d > %d bytes", sizeBytes, limits.MaxBytes)}
	}
	return ValidationResult{Valid: true}
}

// ValidateAudioDuration checks the duration against the configured limit
func ValidateAudioDuration(seconds float64, limits Limits) ValidationResult {
	if seconds <= 0 {
		return ValidationResult{Reason: "audio duration must be positive"}
	}
	if seconds > limits.MaxDurationSeconds {
		return ValidationResult{Reason: fmt.Sprintf("audio exceeds duration limit: %.1fs > %.1fs", seconds, limits.MaxDurationSeconds)}
	}
	return ValidationResult{Valid: true}
}
