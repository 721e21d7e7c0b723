package agent

import "fmt"

// InvalidInputError rejects a request before any backend call is made.
// Session state is unchanged.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// BackendUnavailableError wraps an inference transport failure or timeout.
// History is unchanged; the caller may retry.
type BackendUnavailableError struct {
	Err error
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("inference backend unavailable: %v", e.Err)
}

func (e *BackendUnavailableError) Unwrap() error {
	return e.Err
}
