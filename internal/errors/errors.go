package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Kind classifies an application error and decides its HTTP status.
type Kind string

// Error kinds
const (
	KindNotFound              Kind = "NOT_FOUND"
	KindAlreadyExists         Kind = "ALREADY_EXISTS"
	KindPermissionDenied      Kind = "PERMISSION_DENIED"
	KindInvalidValueSelection Kind = "INVALID_VALUE_SELECTION"
	KindValidationFailed      Kind = "VALIDATION_FAILED"

	// Authentication errors
	KindAuthHeaderMissing  Kind = "AUTH_HEADER_MISSING"
	KindTokenExpired       Kind = "TOKEN_EXPIRED"
	KindTokenMalformed     Kind = "TOKEN_MALFORMED"
	KindTokenRevoked       Kind = "TOKEN_REVOKED"
	KindBadCredentials     Kind = "BAD_CREDENTIALS"
	KindLocked             Kind = "ACCOUNT_LOCKED"
	KindDisabled           Kind = "ACCOUNT_DISABLED"
	KindAccountExpired     Kind = "ACCOUNT_EXPIRED"
	KindCredentialsExpired Kind = "CREDENTIALS_EXPIRED"

	KindInternal Kind = "INTERNAL_ERROR"
)

var statusByKind = map[Kind]int{
	KindNotFound:              http.StatusNotFound,
	KindAlreadyExists:         http.StatusConflict,
	KindPermissionDenied:      http.StatusForbidden,
	KindInvalidValueSelection: http.StatusBadRequest,
	KindValidationFailed:      http.StatusBadRequest,
	KindAuthHeaderMissing:     http.StatusUnauthorized,
	KindTokenExpired:          http.StatusForbidden,
	KindTokenMalformed:        http.StatusForbidden,
	KindTokenRevoked:          http.StatusForbidden,
	KindBadCredentials:        http.StatusForbidden,
	KindLocked:                http.StatusForbidden,
	KindDisabled:              http.StatusForbidden,
	KindAccountExpired:        http.StatusForbidden,
	KindCredentialsExpired:    http.StatusForbidden,
	KindInternal:              http.StatusInternalServerError,
}

// AppError is the error type every layer raises for failures the client should see.
type AppError struct {
	Kind    Kind
	Message string
	Details interface{}
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error kind.
func (e *AppError) Status() int {
	if status, ok := statusByKind[e.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// New creates a new AppError
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// NewWithDetails creates a new AppError with details
func NewWithDetails(kind Kind, message string, details interface{}) *AppError {
	return &AppError{Kind: kind, Message: message, Details: details}
}

// Attr names one identifying attribute of an entity in a message.
type Attr struct {
	Name  string
	Value interface{}
}

func NotFound(object, attribute string, value interface{}) *AppError {
	return New(KindNotFound, fmt.Sprintf("%s with %s %v not found", object, attribute, value))
}

func AlreadyExists(object string, attrs ...Attr) *AppError {
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		parts = append(parts, fmt.Sprintf("%s %v", a.Name, a.Value))
	}
	return New(KindAlreadyExists, fmt.Sprintf("%s with %s already exists", object, strings.Join(parts, " and ")))
}

func PermissionDenied(message string) *AppError {
	if message == "" {
		message = "Access denied"
	}
	return New(KindPermissionDenied, message)
}

// InvalidValueSelection reports a value outside a fixed set. Allowed values are
// listed lower-case.
func InvalidValueSelection(value string, allowed []string) *AppError {
	lowered := make([]string, len(allowed))
	for i, a := range allowed {
		lowered[i] = strings.ToLower(a)
	}
	return New(KindInvalidValueSelection,
		fmt.Sprintf("%q is not in the list of valid values: [%s]", value, strings.Join(lowered, ", ")))
}

func ValidationFailed(message string, details interface{}) *AppError {
	if message == "" {
		message = "Invalid request"
	}
	return NewWithDetails(KindValidationFailed, message, details)
}

func AuthHeaderMissing() *AppError {
	return New(KindAuthHeaderMissing, "Authorization header not present")
}

func TokenExpired() *AppError {
	return New(KindTokenExpired, "Token expired")
}

func TokenMalformed(err error) *AppError {
	return &AppError{Kind: KindTokenMalformed, Message: "Invalid token", Err: err}
}

func TokenRevoked() *AppError {
	return New(KindTokenRevoked, "Token has been revoked")
}

func BadCredentials(message string) *AppError {
	if message == "" {
		message = "Bad credentials"
	}
	return New(KindBadCredentials, message)
}

func Locked() *AppError {
	return New(KindLocked, "User account is locked")
}

func Disabled() *AppError {
	return New(KindDisabled, "User is disabled")
}

func AccountExpired() *AppError {
	return New(KindAccountExpired, "User account has expired")
}

func CredentialsExpired() *AppError {
	return New(KindCredentialsExpired, "User credentials have expired")
}

// Internal wraps an unexpected failure. Its message never reaches the client.
func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// As extracts the AppError from err, treating anything else as internal.
func As(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// IsKind reports whether err carries an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Kind == kind
}

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Status    int         `json:"status"`
	Error     string      `json:"error"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Path      string      `json:"path"`
	Timestamp time.Time   `json:"timestamp"`
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, err *AppError) {
	status := err.Status()
	c.AbortWithStatusJSON(status, ErrorBody{
		Status:    status,
		Error:     http.StatusText(status),
		Message:   err.Message,
		Details:   err.Details,
		Path:      c.Request.URL.Path,
		Timestamp: time.Now().UTC(),
	})
}
