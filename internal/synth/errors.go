package synth

import "fmt"

// ValidationError reports out-of-range synthesis parameters. It is returned
// before any vendor call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
