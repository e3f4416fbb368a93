package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the application error type carried across layers. Handlers map
// it onto HTTP responses, everything below just wraps and annotates.
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrAlreadyExists(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_ALREADY_EXISTS,
		Message:  fmt.Sprintf("%s already exists", resource),
	}
}

// Upload Errors
func ErrUploadNotFound(uploadID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_UPLOAD_NOT_FOUND,
		Message:  "Upload not found",
	}.WithDetail("upload_id", uploadID)
}

func ErrUploadTooLarge(declaredSize, maxSize int64) AppError {
	return AppError{
		HTTPCode: http.StatusRequestEntityTooLarge,
		Code:     ErrorCode_UPLOAD_TOO_LARGE,
		Message:  "Declared upload size exceeds the limit",
	}.WithDetail("declared_size", fmt.Sprintf("%d", declaredSize)).
		WithDetail("max_size", fmt.Sprintf("%d", maxSize))
}

func ErrUploadIncomplete(uploadID string, received, expected int64) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_UPLOAD_INCOMPLETE,
		Message:  "Upload is missing chunks and cannot be assembled",
	}.WithDetail("upload_id", uploadID).
		WithDetail("received_bytes", fmt.Sprintf("%d", received)).
		WithDetail("expected_bytes", fmt.Sprintf("%d", expected))
}

func ErrUploadTerminal(uploadID, status string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_UPLOAD_TERMINAL,
		Message:  "Upload already reached a terminal state",
	}.WithDetail("upload_id", uploadID).
		WithDetail("status", status)
}

func ErrAudioUnsupportedFormat(mimeType string) AppError {
	return AppError{
		HTTPCode: http.StatusUnsupportedMediaType,
		Code:     ErrorCode_AUDIO_UNSUPPORTED_FORMAT,
		Message:  "Audio format is not supported",
	}.WithDetail("mime_type", mimeType)
}

func ErrAudioStorageFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_AUDIO_STORAGE_FAILED,
		Message:  "Failed to store audio object",
	}
}

// Transcription Errors
func ErrTranscriptionNotFound(audioID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_TRANSCRIPTION_NOT_FOUND,
		Message:  "Transcription not found",
	}.WithDetail("audio_id", audioID)
}

func ErrTranscriptionFailed(audioID string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_TRANSCRIPTION_FAILED,
		Message:  "Speech-to-text provider failed",
	}.WithDetail("audio_id", audioID)
}

func ErrTranscriptionUnreliable(audioID, quality string) AppError {
	return AppError{
		HTTPCode: http.StatusUnprocessableEntity,
		Code:     ErrorCode_TRANSCRIPTION_UNRELIABLE,
		Message:  "Transcription quality is too low for extraction",
	}.WithDetail("audio_id", audioID).
		WithDetail("quality", quality)
}

// Extraction Errors
func ErrExtractionFailed(transcriptionID string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_EXTRACTION_FAILED,
		Message:  "Semantic extraction failed",
	}.WithDetail("transcription_id", transcriptionID)
}

// Task Errors
func ErrPreviewNotFound(previewID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_PREVIEW_NOT_FOUND,
		Message:  "Task preview not found",
	}.WithDetail("preview_id", previewID)
}

func ErrPreviewNotConfirmable(previewID, status string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_PREVIEW_NOT_CONFIRMABLE,
		Message:  "Task preview is not confirmable",
	}.WithDetail("preview_id", previewID).
		WithDetail("status", status)
}

func ErrPreviewNotPending(previewID, status string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_PREVIEW_NOT_PENDING,
		Message:  "Task preview can only be edited while pending",
	}.WithDetail("preview_id", previewID).
		WithDetail("status", status)
}

func ErrTaskPersistFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_TASK_PERSIST_FAILED,
		Message:  "Failed to persist confirmed task",
	}
}

// Infrastructure Errors
func ErrDatabaseError(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DATABASE_ERROR,
		Message:  "Database operation failed",
	}
}

func ErrCacheError(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_CACHE_ERROR,
		Message:  "Cache operation failed",
	}
}

func ErrExternalService(service string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_EXTERNAL_SERVICE_ERROR,
		Message:  fmt.Sprintf("External service error: %s", service),
	}.WithDetail("service", service)
}

func ErrWebhookUnauthorized() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_WEBHOOK_UNAUTHORIZED,
		Message:  "Webhook signature verification failed",
	}
}
