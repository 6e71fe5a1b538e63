package platformerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeNotFound          ErrorType = "NOT_FOUND"
	ErrorTypeValidation        ErrorType = "VALIDATION"
	ErrorTypeUnsupportedFormat ErrorType = "UNSUPPORTED_FORMAT"
	ErrorTypeConflict          ErrorType = "CONFLICT"
	ErrorTypeUnauthorized      ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden         ErrorType = "FORBIDDEN"
	ErrorTypeInternal          ErrorType = "INTERNAL"
	ErrorTypeExternal          ErrorType = "EXTERNAL"
	ErrorTypeDatabaseError     ErrorType = "DATABASE_ERROR"
)

// Layer represents the application layer where the error occurred
type Layer string

const (
	LayerRepository     Layer = "repository"
	LayerDomain         Layer = "domain"
	LayerHandler        Layer = "handler"
	LayerInfrastructure Layer = "infrastructure"
)

// PlatformError represents an error with context and metadata
type PlatformError struct {
	UUID      string
	Type      ErrorType
	Message   string
	Err       error
	RequestID string
	Layer     Layer
	Timestamp time.Time
}

// Error implements the error interface
func (e *PlatformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s][%s] %s: %v", e.Layer, e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s][%s] %s", e.Layer, e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *PlatformError) Unwrap() error {
	return e.Err
}

// getRequestIDFromContext extracts request ID from context
func getRequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value("requestID").(string); ok {
		return requestID
	}
	return ""
}

// NewError creates a new PlatformError with the specified parameters
func NewError(ctx context.Context, layer Layer, errorType ErrorType, message string, err error) *PlatformError {
	return &PlatformError{
		UUID:      uuid.NewString(),
		Type:      errorType,
		Message:   message,
		Err:       err,
		RequestID: getRequestIDFromContext(ctx),
		Layer:     layer,
		Timestamp: time.Now().UTC(),
	}
}

// AsError wraps an error with layer context, preserving an existing
// PlatformError's type.
func AsError(ctx context.Context, layer Layer, err error, message string) *PlatformError {
	if err == nil {
		return nil
	}

	var platformErr *PlatformError
	if errors.As(err, &platformErr) {
		return &PlatformError{
			UUID:      platformErr.UUID,
			Type:      platformErr.Type,
			Message:   fmt.Sprintf("%s: %s", message, platformErr.Message),
			Err:       platformErr,
			RequestID: getRequestIDFromContext(ctx),
			Layer:     layer,
			Timestamp: time.Now().UTC(),
		}
	}

	return NewError(ctx, layer, ErrorTypeInternal, message, err)
}

// GetPlatformError extracts a PlatformError from an error chain, or nil.
func GetPlatformError(err error) *PlatformError {
	var platformErr *PlatformError
	if errors.As(err, &platformErr) {
		return platformErr
	}
	return nil
}

// IsErrorType checks if an error is a PlatformError with the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if err == nil {
		return false
	}
	var platformErr *PlatformError
	if errors.As(err, &platformErr) {
		return platformErr.Type == errorType
	}
	return false
}

// ErrorTypeToHTTPStatus maps error types to HTTP status codes
func ErrorTypeToHTTPStatus(errorType ErrorType) int {
	switch errorType {
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeValidation, ErrorTypeUnsupportedFormat:
		return http.StatusBadRequest
	case ErrorTypeConflict:
		return http.StatusConflict
	case ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case ErrorTypeForbidden:
		return http.StatusForbidden
	case ErrorTypeExternal:
		return http.StatusBadGateway
	case ErrorTypeDatabaseError:
		return http.StatusInternalServerError
	case ErrorTypeInternal:
		fallthrough
	default:
		return http.StatusInternalServerError
	}
}

// LogError logs a platform error with proper structure
func LogError(logger zerolog.Logger, err *PlatformError) {
	if err == nil {
		return
	}

	event := logger.Error().
		Str("error_uuid", err.UUID).
		Str("error_type", string(err.Type)).
		Str("layer", string(err.Layer)).
		Time("timestamp_utc", err.Timestamp)

	if err.RequestID != "" {
		event = event.Str("request_id", err.RequestID)
	}
	if err.Err != nil {
		event = event.Err(err.Err)
	}

	event.Msg(err.Message)
}
