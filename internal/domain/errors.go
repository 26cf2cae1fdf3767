package domain

import (
	"fmt"

	"github.com/hyp3rd/ewrap"
)

var (
	// ErrNoDataPoints is returned when statistics are requested for a record
	// without data points.
	ErrNoDataPoints = ewrap.New("no data points")

	// ErrInvalidDataPoint is returned when a data point token is not a number.
	ErrInvalidDataPoint = ewrap.New("invalid data point")

	// ErrMalformedLine is returned when a persisted line cannot be decoded.
	ErrMalformedLine = ewrap.New("malformed line")

	// ErrUnencodable is returned when a record cannot be written in the
	// selected format.
	ErrUnencodable = ewrap.New("record cannot be encoded")

	// ErrUnknownFormat is returned for an unsupported file format name.
	ErrUnknownFormat = ewrap.New("unknown format")

	// ErrUnknownPolicy is returned for an unsupported standard deviation policy.
	ErrUnknownPolicy = ewrap.New("unknown stddev policy")

	// ErrUnknownBackend is returned for an unsupported storage backend.
	ErrUnknownBackend = ewrap.New("unknown backend")
)

// LineError reports a persisted line that failed to decode.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s %d: %v", ErrMalformedLine.Error(), e.Line, e.Err)
}

// Unwrap exposes both ErrMalformedLine and the underlying cause to errors.Is.
func (e *LineError) Unwrap() []error {
	return []error{ErrMalformedLine, e.Err}
}
