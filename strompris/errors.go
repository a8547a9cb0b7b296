package strompris

import (
	"fmt"

	"github.com/angas/strompris-go/dates"
	"github.com/angas/strompris-go/types"
)

// InvalidDateError is returned when prices are requested for a date
// before the upstream dataset begins.
type InvalidDateError struct {
	Date  dates.Date
	Floor dates.Date
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("no price data before %s, requested %s", e.Floor, e.Date)
}

// UnknownRegionError is returned for region codes outside the NO1..NO5 table.
type UnknownRegionError struct {
	Region types.Region
}

func (e *UnknownRegionError) Error() string {
	return fmt.Sprintf("unknown region code %q", e.Region)
}

// UpstreamUnavailableError is returned when the upstream call fails on
// the network or answers with a non-success status. Safe to retry.
type UpstreamUnavailableError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream unavailable for %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("upstream unavailable for %s: status %d", e.URL, e.StatusCode)
}

func (e *UpstreamUnavailableError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is returned when the upstream body cannot be
// decoded into the expected hourly record shape. Not retryable.
type MalformedResponseError struct {
	URL string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.URL, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
