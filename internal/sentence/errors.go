package sentence

import "fmt"

// ValidationError reports bad request input. It is returned before any
// vendor call is made and is never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CapabilityError wraps a language-model vendor failure so callers can tell
// it apart from local errors. The vendor's message is preserved.
type CapabilityError struct {
	Provider string
	Err      error
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s provider error: %v", e.Provider, e.Err)
}

func (e *CapabilityError) Unwrap() error {
	return e.Err
}
