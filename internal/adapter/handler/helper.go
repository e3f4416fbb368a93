package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/foyer-app/foyer-voice/errors"
	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

// Response shapes
type success struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Info    string      `json:"info,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// HandleSuccess writes a standardized success response
func HandleSuccess(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging. Domain sentinels are
// translated to AppError first so every failure leaves with a stable code.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)
	err = translateDomainError(err)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	// Non-AppError => internal server error
	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// translateDomainError maps entity sentinels to transport errors
func translateDomainError(err error) error {
	switch {
	case stdErrors.Is(err, entities.ErrUploadNotFound):
		return errors.ErrNotFound("upload")
	case stdErrors.Is(err, entities.ErrUploadTooLarge):
		return errors.AppError{
			Raw:      err,
			HTTPCode: http.StatusRequestEntityTooLarge,
			Code:     errors.ErrorCode_UPLOAD_TOO_LARGE,
			Message:  "Upload exceeds the size limit",
		}
	case stdErrors.Is(err, entities.ErrUploadIncomplete):
		return errors.AppError{
			Raw:      err,
			HTTPCode: http.StatusBadRequest,
			Code:     errors.ErrorCode_UPLOAD_INCOMPLETE,
			Message:  "Upload is missing chunks and cannot be assembled",
		}
	case stdErrors.Is(err, entities.ErrUploadTerminal):
		return errors.AppError{
			Raw:      err,
			HTTPCode: http.StatusConflict,
			Code:     errors.ErrorCode_UPLOAD_TERMINAL,
			Message:  "Upload already reached a terminal state",
		}
	case stdErrors.Is(err, entities.ErrTranscriptionNotFound):
		return errors.ErrNotFound("transcription")
	case stdErrors.Is(err, entities.ErrPreviewNotFound):
		return errors.ErrNotFound("task preview")
	case stdErrors.Is(err, entities.ErrPreviewNotConfirmable):
		return errors.AppError{
			Raw:      err,
			HTTPCode: http.StatusConflict,
			Code:     errors.ErrorCode_PREVIEW_NOT_CONFIRMABLE,
			Message:  "Task preview is not confirmable",
		}
	case stdErrors.Is(err, entities.ErrPreviewNotPending):
		return errors.AppError{
			Raw:      err,
			HTTPCode: http.StatusConflict,
			Code:     errors.ErrorCode_PREVIEW_NOT_PENDING,
			Message:  "Task preview can only be edited while pending",
		}
	case stdErrors.Is(err, entities.ErrInvalidRequest):
		// The wrapped message carries the validator's reason.
		appErr := errors.ErrInvalidArgument(err.Error())
		appErr.Raw = err
		return appErr
	}
	return err
}
