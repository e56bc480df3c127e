package schema

import "fmt"

// ValidationError represents a single parameter validation failure.
type ValidationError struct {
	Key    string // Parameter name
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("parameter %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("parameter %q: %s (value: %v)", e.Key, e.Reason, e.Value)
}
