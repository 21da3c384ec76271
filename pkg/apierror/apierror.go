package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind enumerates the closed set of failure kinds.
type Kind int

const (
	KindServer Kind = iota // zero value: unexpected internal failure
	KindValidation
	KindSecurity
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindBusinessLogic
	KindConflict
	KindRateLimit
	KindFileUpload
	KindUnavailable
)

// kindInfo fixes the code and HTTP status per kind.
var kindInfo = map[Kind]struct {
	code   string
	status int
}{
	KindServer:         {"SERVER_ERROR", http.StatusInternalServerError},
	KindValidation:     {"VALIDATION_ERROR", http.StatusUnprocessableEntity},
	KindSecurity:       {"SECURITY_ERROR", http.StatusBadRequest},
	KindAuthentication: {"AUTHENTICATION_FAILED", http.StatusUnauthorized},
	KindAuthorization:  {"AUTHORIZATION_FAILED", http.StatusForbidden},
	KindNotFound:       {"RESOURCE_NOT_FOUND", http.StatusNotFound},
	KindBusinessLogic:  {"BUSINESS_LOGIC_ERROR", http.StatusBadRequest},
	KindConflict:       {"RESOURCE_CONFLICT", http.StatusConflict},
	KindRateLimit:      {"RATE_LIMIT_EXCEEDED", http.StatusTooManyRequests},
	KindFileUpload:     {"FILE_UPLOAD_ERROR", http.StatusBadRequest},
	KindUnavailable:    {"SERVICE_UNAVAILABLE", http.StatusServiceUnavailable},
}

func (k Kind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.code
	}
	return "SERVER_ERROR"
}

// CodeFor returns the stable machine-readable code for a kind.
func CodeFor(k Kind) string { return k.String() }

// StatusFor returns the fixed HTTP status for a kind.
func StatusFor(k Kind) int {
	if info, ok := kindInfo[k]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// Error is a classified failure ready to be rendered as the external
// error envelope.
type Error struct {
	Kind      Kind
	Code      string
	Status    int
	Message   string
	Timestamp time.Time
	RequestID string
	Path      string
	Details   map[string]any

	// Cause preserves the underlying error for logging; it is never
	// serialized.
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// WithRequest attaches correlation context. It mutates and returns e so
// constructors chain naturally.
func (e *Error) WithRequest(requestID, path string) *Error {
	e.RequestID = requestID
	e.Path = path
	return e
}

// WithDetail adds one structured detail entry.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New builds an Error of the given kind with its fixed code and status.
func New(kind Kind, message string) *Error {
	return &Error{
		Kind:      kind,
		Code:      CodeFor(kind),
		Status:    StatusFor(kind),
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// Validation wraps accumulated field failures. The details payload
// carries every failure plus the error count, so a request with three
// bad fields yields one response reporting all three.
func Validation(validationErrors any, count int) *Error {
	e := New(KindValidation, "Request validation failed")
	e.Details = map[string]any{
		"validation_errors": validationErrors,
		"error_count":       count,
	}
	return e
}

// Security builds a terminal security failure with the detected pattern
// categories attached.
func Security(message string, categories []string) *Error {
	e := New(KindSecurity, message)
	if len(categories) > 0 {
		e.Details = map[string]any{"categories": categories}
	}
	return e
}

func Authentication(message string) *Error {
	if message == "" {
		message = "Authentication failed"
	}
	return New(KindAuthentication, message)
}

func Authorization(message string) *Error {
	if message == "" {
		message = "Insufficient permissions"
	}
	return New(KindAuthorization, message)
}

// NotFound reports an absent entity, e.g. NotFound("report", "123").
func NotFound(resourceType, resourceID string) *Error {
	message := resourceType + " not found"
	if resourceID != "" {
		message = fmt.Sprintf("%s with ID '%s' not found", resourceType, resourceID)
	}
	e := New(KindNotFound, message)
	e.Details = map[string]any{"resource_type": resourceType}
	if resourceID != "" {
		e.Details["resource_id"] = resourceID
	}
	return e
}

func BusinessLogic(message string) *Error {
	return New(KindBusinessLogic, message)
}

func Conflict(message string) *Error {
	if message == "" {
		message = "Resource already exists"
	}
	return New(KindConflict, message)
}

// RateLimit reports a limiter rejection with the retry hint for the
// violated window.
func RateLimit(message string, limit, remaining int, retryAfter time.Duration) *Error {
	if message == "" {
		message = "Rate limit exceeded"
	}
	e := New(KindRateLimit, message)
	e.Details = map[string]any{
		"limit":       limit,
		"remaining":   remaining,
		"retry_after": int(retryAfter.Seconds()),
	}
	return e
}

// FileUpload reports an invalid upload. Size violations use 413 instead
// of the kind's default 400.
func FileUpload(message string, sizeExceeded bool) *Error {
	e := New(KindFileUpload, message)
	if sizeExceeded {
		e.Status = http.StatusRequestEntityTooLarge
		e.Code = "FILE_SIZE_EXCEEDED"
	}
	return e
}

// Server wraps an unexpected internal failure. The cause is preserved
// for logging but the external message stays generic.
func Server(cause error) *Error {
	e := New(KindServer, "An unexpected error occurred")
	e.Cause = cause
	return e
}

func Unavailable(dependency string) *Error {
	message := "Service temporarily unavailable"
	e := New(KindUnavailable, message)
	if dependency != "" {
		e.Details = map[string]any{"dependency": dependency}
	}
	return e
}

// FromError classifies err: taxonomy errors pass through, anything else
// becomes a ServerError.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Server(err)
}
