package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Kind classifies a failure so the HTTP boundary can report it uniformly.
type Kind string

const (
	KindInvalidArgument Kind = "InvalidArgument"
	KindNotFound        Kind = "NotFound"
	KindProvider        Kind = "ProviderError"
	KindPersistence     Kind = "PersistenceError"
	KindConfiguration   Kind = "ConfigurationError"
	KindUnknown         Kind = "Unknown"
)

// Error carries a kind, a caller-facing message and the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, cause error) error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

func InvalidArgument(msg string) error { return newError(KindInvalidArgument, msg, nil) }

func NotFound(msg string, cause error) error { return newError(KindNotFound, msg, cause) }

func ProviderError(msg string, cause error) error { return newError(KindProvider, msg, cause) }

func PersistenceError(msg string, cause error) error { return newError(KindPersistence, msg, cause) }

func ConfigurationError(msg string) error { return newError(KindConfiguration, msg, nil) }

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the caller-facing message of err. Errors without a kind
// fall back to err.Error().
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// StatusFor maps an error kind onto an HTTP status.
func StatusFor(err error) int {
	switch KindOf(err) {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the uniform failure body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler recovers panics and answers with a JSON 500.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response.
func JSONError(c *gin.Context, status int, err error) {
	c.JSON(status, ErrorResponse{Error: Message(err)})
}
