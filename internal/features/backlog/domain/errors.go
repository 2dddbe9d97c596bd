package domain

import "errors"

var (
	// ErrMissingColumn is returned when a required column is absent from an
	// uploaded table. The whole transform aborts.
	ErrMissingColumn = errors.New("missing required column")
	// ErrMalformedTimestamp is returned when a timestamp cell is present but
	// cannot be parsed. Absent cells are valid and stay absent.
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	// ErrTypeConversion is returned when a warehouse id cell is present but
	// not numeric.
	ErrTypeConversion = errors.New("type conversion failed")
)
