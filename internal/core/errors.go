package core

import "fmt"

// ClientError marks a failure caused by the request itself rather than a
// collaborator. Handlers map it to a 400-class response.
type ClientError struct {
	Message string
	Err     error
}

func (e *ClientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewClientError creates a client error with an optional cause.
func NewClientError(message string, err error) *ClientError {
	return &ClientError{Message: message, Err: err}
}
