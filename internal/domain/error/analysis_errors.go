// Package error defines domain-specific errors for the expense tracker.
package error

import "errors"

// Analysis domain errors.
var (
	// ErrInvalidPeriod is returned when the analysis period is not between 1 and 3660 days.
	ErrInvalidPeriod = errors.New("period_days must be between 1 and 3660")

	// ErrInvalidMonth is returned when a summary month is outside 1..12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
)

// AnalysisErrorCode defines error codes for analysis errors.
// Format: ANL-XXYYYY where XX is category and YYYY is specific error.
type AnalysisErrorCode string

const (
	// Precondition errors (03XXXX)
	ErrCodeInvalidPeriod AnalysisErrorCode = "ANL-030001"
	ErrCodeInvalidMonth  AnalysisErrorCode = "ANL-030002"
)

// AnalysisError represents an analysis precondition error with code and message.
type AnalysisError struct {
	Code    AnalysisErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError creates a new AnalysisError with the given code and message.
func NewAnalysisError(code AnalysisErrorCode, message string, err error) *AnalysisError {
	return &AnalysisError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
