package chart

import "fmt"

// UnknownActivityError is returned when an activity name is not in the
// catalog.
type UnknownActivityError struct {
	Name string
}

func (e *UnknownActivityError) Error() string {
	return fmt.Sprintf("unknown activity %q", e.Name)
}

// InvalidDurationError is returned for non-positive activity durations.
type InvalidDurationError struct {
	Minutes float64
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("activity duration must be positive, got %g minutes", e.Minutes)
}
