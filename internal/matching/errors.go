package matching

import "fmt"

// ServiceError represents a failure to reach the text-completion service or
// an error status returned by it. It is always recovered locally by the
// heuristic fallback and never surfaced to the end user.
type ServiceError struct {
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("completion service error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("completion service error: %s", e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// ResponseParseError represents a service response that could not be
// interpreted as the expected JSON structure. Recovered identically to
// ServiceError.
type ResponseParseError struct {
	Message string
	Cause   error
}

func (e *ResponseParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("response parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("response parse error: %s", e.Message)
}

func (e *ResponseParseError) Unwrap() error {
	return e.Cause
}

// ValidationError represents malformed caller input, such as a requirement
// with no name or an out-of-range importance. Terminal, no fallback.
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}
