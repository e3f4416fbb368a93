package errors

// ErrorCode identifies an error class in API responses and logs
type ErrorCode int32

const (
	ErrorCode_UNSPECIFIED ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1
	ErrorCode_INVALID_ARGUMENT ErrorCode = 2
	ErrorCode_NOT_FOUND        ErrorCode = 3
	ErrorCode_ALREADY_EXISTS   ErrorCode = 4

	// Upload / audio
	ErrorCode_UPLOAD_NOT_FOUND         ErrorCode = 100
	ErrorCode_UPLOAD_TOO_LARGE         ErrorCode = 101
	ErrorCode_UPLOAD_INCOMPLETE        ErrorCode = 102
	ErrorCode_UPLOAD_TERMINAL          ErrorCode = 103
	ErrorCode_AUDIO_UNSUPPORTED_FORMAT ErrorCode = 104
	ErrorCode_AUDIO_STORAGE_FAILED     ErrorCode = 105

	// Transcription
	ErrorCode_TRANSCRIPTION_NOT_FOUND  ErrorCode = 200
	ErrorCode_TRANSCRIPTION_FAILED     ErrorCode = 201
	ErrorCode_TRANSCRIPTION_UNRELIABLE ErrorCode = 202

	// Extraction
	ErrorCode_EXTRACTION_FAILED ErrorCode = 300

	// Tasks
	ErrorCode_PREVIEW_NOT_FOUND       ErrorCode = 400
	ErrorCode_PREVIEW_NOT_CONFIRMABLE ErrorCode = 401
	ErrorCode_PREVIEW_NOT_PENDING     ErrorCode = 402
	ErrorCode_TASK_PERSIST_FAILED     ErrorCode = 403

	// Infrastructure
	ErrorCode_DATABASE_ERROR         ErrorCode = 500
	ErrorCode_CACHE_ERROR            ErrorCode = 501
	ErrorCode_EXTERNAL_SERVICE_ERROR ErrorCode = 502
	ErrorCode_WEBHOOK_UNAUTHORIZED   ErrorCode = 503
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNSPECIFIED:              "UNSPECIFIED",
	ErrorCode_INTERNAL:                 "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:         "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:           "ALREADY_EXISTS",
	ErrorCode_UPLOAD_NOT_FOUND:         "UPLOAD_NOT_FOUND",
	ErrorCode_UPLOAD_TOO_LARGE:         "UPLOAD_TOO_LARGE",
	ErrorCode_UPLOAD_INCOMPLETE:        "UPLOAD_INCOMPLETE",
	ErrorCode_UPLOAD_TERMINAL:          "UPLOAD_TERMINAL",
	ErrorCode_AUDIO_UNSUPPORTED_FORMAT: "AUDIO_UNSUPPORTED_FORMAT",
	ErrorCode_AUDIO_STORAGE_FAILED:     "AUDIO_STORAGE_FAILED",
	ErrorCode_TRANSCRIPTION_NOT_FOUND:  "TRANSCRIPTION_NOT_FOUND",
	ErrorCode_TRANSCRIPTION_FAILED:     "TRANSCRIPTION_FAILED",
	ErrorCode_TRANSCRIPTION_UNRELIABLE: "TRANSCRIPTION_UNRELIABLE",
	ErrorCode_EXTRACTION_FAILED:        "EXTRACTION_FAILED",
	ErrorCode_PREVIEW_NOT_FOUND:        "PREVIEW_NOT_FOUND",
	ErrorCode_PREVIEW_NOT_CONFIRMABLE:  "PREVIEW_NOT_CONFIRMABLE",
	ErrorCode_PREVIEW_NOT_PENDING:      "PREVIEW_NOT_PENDING",
	ErrorCode_TASK_PERSIST_FAILED:      "TASK_PERSIST_FAILED",
	ErrorCode_DATABASE_ERROR:           "DATABASE_ERROR",
	ErrorCode_CACHE_ERROR:              "CACHE_ERROR",
	ErrorCode_EXTERNAL_SERVICE_ERROR:   "EXTERNAL_SERVICE_ERROR",
	ErrorCode_WEBHOOK_UNAUTHORIZED:     "WEBHOOK_UNAUTHORIZED",
}

// String returns the stable wire name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNSPECIFIED"
}
