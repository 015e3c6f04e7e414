package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/mortality/internal/dataset"
	"github.com/rpggio/mortality/internal/domain/comparison"
	"github.com/rpggio/mortality/internal/domain/ztest"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to
// INTERNAL with the original message.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ztest.ErrZeroTotal):
		return &APIError{Code: "ZERO_TOTAL", Message: err.Error(), RecoveryHint: "Both groups need a positive total count"}
	case errors.Is(err, ztest.ErrUndefinedTest):
		return &APIError{Code: "UNDEFINED_TEST", Message: err.Error(), RecoveryHint: "Pooled proportion is 0 or 1; choose groups with some variance"}
	case errors.Is(err, ztest.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Counts must satisfy 0 <= event <= total and alpha must be in (0, 1)"}
	case errors.Is(err, comparison.ErrEmptyGroup):
		return &APIError{Code: "EMPTY_GROUP", Message: err.Error(), RecoveryHint: "Check selector values against dataset_report"}
	case errors.Is(err, comparison.ErrInvalidInput), errors.Is(err, dataset.ErrUnknownMeasure):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Use measure names as they appear in the CSV header"}
	case errors.Is(err, comparison.ErrComparisonNotFound):
		return &APIError{Code: "COMPARISON_NOT_FOUND", Message: "comparison not found", RecoveryHint: "Call list_comparisons for valid IDs"}
	case errors.Is(err, comparison.ErrHistoryDisabled):
		return &APIError{Code: "HISTORY_DISABLED", Message: "comparison history is not configured", RecoveryHint: "Set MORTALITY_DB_PATH"}
	default:
		return &APIError{Code: "INTERNAL", Message: err.Error()}
	}
}
