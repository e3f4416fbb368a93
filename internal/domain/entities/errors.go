package entities

import "errors"

// Domain errors
var (
	// Upload errors
	ErrUploadNotFound   = errors.New("upload not found")
	ErrUploadTooLarge   = errors.New("declared size exceeds maximum upload size")
	ErrUploadIncomplete = errors.New("upload has missing chunks")
	ErrUploadTerminal   = errors.New("upload is in a terminal state")

	// Transcription errors
	ErrTranscriptionNotFound   = errors.New("transcription not found")
	ErrTranscriptionUnreliable = errors.New("transcription is not reliable enough for extraction")

	// Preview errors
	ErrPreviewNotFound       = errors.New("preview not found")
	ErrPreviewNotPending     = errors.New("preview is not pending")
	ErrPreviewNotConfirmable = errors.New("preview is not confirmable")

	// Generic errors
	ErrInvalidRequest = errors.New("invalid request")
)
