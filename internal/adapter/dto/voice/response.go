package voice

import (
	"time"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

// UploadResponse describes the state of a chunked upload
type UploadResponse struct {
	ID            string    `json:"id"`
	FileName      string    `json:"file_name"`
	MimeType      string    `json:"mime_type"`
	DeclaredSize  int64     `json:"declared_size"`
	ReceivedBytes int64     `json:"received_bytes"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewUploadResponse maps an upload entity to its response
func NewUploadResponse(upload *entities.Upload) *UploadResponse {
	return &UploadResponse{
		ID:            upload.ID.String(),
		FileName:      upload.FileName,
		MimeType:      upload.MimeType,
		DeclaredSize:  upload.DeclaredSize,
		ReceivedBytes: upload.ReceivedBytes(),
		Status:        string(upload.Status),
		CreatedAt:     upload.CreatedAt,
	}
}

// TranscriptionResponse is the API view of a transcription result
type TranscriptionResponse struct {
	ID         string  `json:"id"`
	AudioID    string  `json:"audio_id"`
	Text       string  `json:"text"`
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
	Duration   float64 `json:"duration"`
	Quality    string  `json:"quality"`
	Provider   string  `json:"provider"`
}

// NewTranscriptionResponse maps a result and its quality grade
func NewTranscriptionResponse(result *entities.TranscriptionResult, quality entities.TranscriptionQuality) *TranscriptionResponse {
	return &TranscriptionResponse{
		ID:         result.ID.String(),
		AudioID:    result.AudioID.String(),
		Text:       result.Text,
		Language:   result.Language,
		Confidence: result.Confidence,
		Duration:   result.Duration,
		Quality:    string(quality),
		Provider:   result.Provider,
	}
}
