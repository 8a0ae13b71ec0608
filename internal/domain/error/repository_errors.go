// Package error defines domain-specific errors for the expense tracker.
package error

import "errors"

// ErrRepository marks a failure of the storage collaborator.
var ErrRepository = errors.New("repository error")

// ErrCodeRepository is the stable code for storage failures.
const ErrCodeRepository = "REP-040001"

// RepositoryError wraps a storage failure. The message of the underlying
// error is reused verbatim.
type RepositoryError struct {
	Operation string
	Err       error
}

// Error implements the error interface.
func (e *RepositoryError) Error() string {
	if e.Err == nil {
		return ErrRepository.Error()
	}
	return e.Err.Error()
}

// Unwrap returns the underlying storage error.
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// Is reports RepositoryError as ErrRepository for errors.Is.
func (e *RepositoryError) Is(target error) bool {
	return target == ErrRepository
}

// NewRepositoryError wraps err as a RepositoryError for the given operation.
// Domain errors raised by the repository itself pass through unchanged.
func NewRepositoryError(operation string, err error) error {
	if err == nil {
		return nil
	}
	var budgetErr *BudgetError
	if errors.As(err, &budgetErr) {
		return err
	}
	var categoryErr *CategoryError
	if errors.As(err, &categoryErr) {
		return err
	}
	var repoErr *RepositoryError
	if errors.As(err, &repoErr) {
		return err
	}
	return &RepositoryError{Operation: operation, Err: err}
}
