package llm

import "fmt"

// Error represents an error from the generation backend client.
type Error struct {
	// Type categorizes the error
	Type string

	// Message is a human-readable error message
	Message string

	// Code is the HTTP status code (if applicable)
	Code int

	// Err is the underlying error
	Err error
}

// Error types.
const (
	ErrorTypeNetwork = "network"
	ErrorTypeAPI     = "api"
	ErrorTypeEmpty   = "empty"
	ErrorTypeParse   = "parse"
	ErrorTypeShape   = "shape"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("generation %s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("generation %s error: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a network error.
func NewNetworkError(err error) *Error {
	return &Error{
		Type:    ErrorTypeNetwork,
		Message: "failed to reach the generation backend",
		Err:     err,
	}
}

// NewAPIError creates an API error with status code.
func NewAPIError(code int, message string) *Error {
	return &Error{
		Type:    ErrorTypeAPI,
		Code:    code,
		Message: message,
	}
}

// NewEmptyError reports an empty completion.
func NewEmptyError() *Error {
	return &Error{
		Type:    ErrorTypeEmpty,
		Message: "generation backend returned an empty response",
	}
}

// NewParseError reports unparseable model output.
func NewParseError(content string, err error) *Error {
	if len(content) > 300 {
		content = content[:300]
	}
	return &Error{
		Type:    ErrorTypeParse,
		Message: fmt.Sprintf("generation backend returned invalid JSON: %s", content),
		Err:     err,
	}
}

// NewShapeError reports structurally unusable model output.
func NewShapeError(message string, err error) *Error {
	return &Error{
		Type:    ErrorTypeShape,
		Message: message,
		Err:     err,
	}
}
