package folder

import "fmt"

// ValidationError reports a bad folder request, e.g. an empty name.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
