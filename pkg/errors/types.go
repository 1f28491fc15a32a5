package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a structured error code
type ErrorCode string

const (
	// Display connection errors
	ErrCodeConnectFailed ErrorCode = "CONNECT_FAILED"
	ErrCodeProtocol      ErrorCode = "PROTOCOL"
	ErrCodeSurfaceCreate ErrorCode = "SURFACE_CREATE"
	ErrCodeKeymap        ErrorCode = "KEYMAP"

	// Rendering errors
	ErrCodeRender   ErrorCode = "RENDER"
	ErrCodeFontLoad ErrorCode = "FONT_LOAD"

	// Content errors
	ErrCodeContentLoad ErrorCode = "CONTENT_LOAD"

	// Configuration errors
	ErrCodeConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrCodeConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Generic errors
	ErrCodeUsage    ErrorCode = "USAGE"
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Error represents a structured placard error
type Error struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Context    map[string]any
}

// New creates a new structured error
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// Newf creates a new structured error with a formatted message
func Newf(code ErrorCode, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with placard error context
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}

	return &Error{
		Code:       code,
		Message:    message,
		Underlying: err,
		Context:    make(map[string]any),
	}
}

// WithContext adds context key-value pairs to the error
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Error implements the error interface
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if len(e.Context) > 0 {
		sb.WriteString(" {")
		first := true
		for k, v := range e.Context {
			if !first {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%s: %v", k, v))
			first = false
		}
		sb.WriteString("}")
	}

	if e.Underlying != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Underlying))
	}

	return sb.String()
}

// Unwrap returns the underlying error for errors.Is/As
func (e *Error) Unwrap() error {
	return e.Underlying
}

// IsCode checks if an error has a specific error code
func IsCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	placardErr, ok := err.(*Error)
	if !ok {
		return false
	}

	return placardErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	placardErr, ok := err.(*Error)
	if !ok {
		return ErrCodeInternal
	}

	return placardErr.Code
}

// Fatal reports whether the error should abort the dialog session.
// Every code except the config ones is fatal once a session has started.
func Fatal(err error) bool {
	if err == nil {
		return false
	}
	switch GetCode(err) {
	case ErrCodeConfigLoad, ErrCodeConfigParse, ErrCodeConfigInvalid:
		return false
	}
	return true
}
