package entities

import (
	"time"

	"github.com/google/uuid"
)

// UploadStatus represents the status of a chunked audio upload
type UploadStatus string

const (
	UploadStatusPending   UploadStatus = "pending"
	UploadStatusAssembled UploadStatus = "assembled"
	UploadStatusFailed    UploadStatus = "failed"
)

// AudioFormat is the internal tag for a recognized audio container
type AudioFormat string

const (
	AudioFormatWebM        AudioFormat = "webm"
	AudioFormatMP3         AudioFormat = "mp3"
	AudioFormatWAV         AudioFormat = "wav"
	AudioFormatOGG         AudioFormat = "ogg"
	AudioFormatUnsupported AudioFormat = "unsupported"
)

// Upload represents one chunked audio submission
type Upload struct {
	ID           uuid.UUID      `json:"id"`
	OwnerID      uuid.UUID      `json:"owner_id"`
	FileName     string         `json:"file_name"`
	MimeType     string         `json:"mime_type"`
	DeclaredSize int64          `json:"declared_size"`
	Chunks       map[int][]byte `json:"-"`
	Status       UploadStatus   `json:"status"`
	FailReason   string         `json:"fail_reason,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NewUpload creates a pending upload
func NewUpload(ownerID uuid.UUID, fileName, mimeType string, declaredSize int64) *Upload {
	now := time.Now()
	return &Upload{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		FileName:     fileName,
		MimeType:     mimeType,
		DeclaredSize: declaredSize,
		Chunks:       make(map[int][]byte),
		Status:       UploadStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsTerminal reports whether the upload can no longer transition
func (u *Upload) IsTerminal() bool {
	return u.Status == UploadStatusAssembled || u.Status == UploadStatusFailed
}

// ReceivedBytes returns the total size of all received chunks
func (u *Upload) ReceivedBytes() int64 {
	var total int64
	for _, chunk := range u.Chunks {
		total += int64(len(chunk))
	}
	return total
}

// Clone returns a deep copy so stored uploads are never shared with callers
func (u *Upload) Clone() *Upload {
	clone := *u
	clone.Chunks = make(map[int][]byte, len(u.Chunks))
	for i, chunk := range u.Chunks {
		clone.Chunks[i] = chunk
	}
	return &clone
}
