package comparison

import "errors"

var (
	// ErrComparisonNotFound indicates the comparison doesn't exist.
	ErrComparisonNotFound = errors.New("comparison not found")
	// ErrEmptyGroup indicates a selector matched no rows.
	ErrEmptyGroup = errors.New("group matched no rows")
	// ErrHistoryDisabled indicates no history store is configured.
	ErrHistoryDisabled = errors.New("comparison history disabled")
	// ErrInvalidInput indicates an invalid comparison definition.
	ErrInvalidInput = errors.New("invalid comparison input")
)
