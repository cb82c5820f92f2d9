package domain

import "fmt"

// Error codes shared by every operation and mirrored verbatim in the HTTP
// error envelope.
const (
	CodeInvalidParams  = "INVALID_PARAMS"
	CodeConfigError    = "CONFIG_ERROR"
	CodeRequestFailed  = "REQUEST_FAILED"
	CodeNotFound       = "NOT_FOUND"
	CodeNoAvailability = "NO_AVAILABILITY"
	CodePrebookFailed  = "PREBOOK_FAILED"
	CodeServerError    = "SERVER_ERROR"
)

// Error is the structured failure result returned by orchestration
// operations. Callers branch on Code; Message is safe to show to users.
type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Errorf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the error code, defaulting to SERVER_ERROR for plain errors
// that escaped the orchestration layer.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	if de, ok := err.(*Error); ok {
		return de.Code
	}
	return CodeServerError
}

// AsError coerces any error into a *Error, wrapping unknowns as SERVER_ERROR.
func AsError(err error) *Error {
	if de, ok := err.(*Error); ok {
		return de
	}
	return &Error{Code: CodeServerError, Message: err.Error()}
}
