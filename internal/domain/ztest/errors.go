package ztest

import "errors"

var (
	// ErrInvalidInput indicates negative or non-finite counts, an event count
	// above its total, or an alpha outside (0, 1).
	ErrInvalidInput = errors.New("invalid z-test input")
	// ErrZeroTotal indicates a group with a total count of zero.
	ErrZeroTotal = errors.New("group total is zero")
	// ErrUndefinedTest indicates the pooled proportion has no variance.
	ErrUndefinedTest = errors.New("z-test undefined: zero standard error")
)
