package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                 = errors.New("not found")
	ErrInsufficientAvailability = errors.New("insufficient availability")
	ErrPermissionDenied         = errors.New("permission denied")
	ErrNoApproverAssigned       = errors.New("no approver assigned")
	ErrConflict                 = errors.New("conflict")
	ErrInvalidState             = errors.New("invalid state")
	ErrValidation               = errors.New("validation error")
	ErrStorage                  = errors.New("storage error")

	ErrAlreadyReturned = fmt.Errorf("%w: loan already returned", ErrInvalidState)
)

// StorageError wraps a driver failure that callers cannot act on.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorage, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// Depleted is returned when a decision lost the race for the last units.
// It matches both ErrConflict and ErrInsufficientAvailability.
func Depleted(itemID string) error {
	return fmt.Errorf("item %s: %w: %w", itemID, ErrConflict, ErrInsufficientAvailability)
}
