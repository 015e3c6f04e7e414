package dataset

import "errors"

var (
	// ErrMissingColumn indicates a required header is absent.
	ErrMissingColumn = errors.New("missing required column")
	// ErrInvalidValue indicates a numeric cell could not be parsed.
	ErrInvalidValue = errors.New("invalid numeric value")
	// ErrUnknownMeasure indicates an unrecognized measure name.
	ErrUnknownMeasure = errors.New("unknown measure")
	// ErrEmpty indicates the file has no header row.
	ErrEmpty = errors.New("empty dataset")
)
