package schedule

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map on these with errors.Is, never on message text.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("authentication required")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrStorageFailure  = errors.New("storage failure")
)

var (
	ErrLectureNotFound  = fmt.Errorf("lecture %w", ErrNotFound)
	ErrTimeSlotNotFound = fmt.Errorf("time slot %w", ErrNotFound)
	ErrNotEnrolled      = fmt.Errorf("enrollment %w", ErrNotFound)

	ErrAlreadyEnrolled = fmt.Errorf("%w: lecture already in schedule", ErrConflict)
	ErrTimeConflict    = fmt.Errorf("%w: another lecture already occupies this time slot", ErrConflict)
)

// ErrDuplicateEnrollment is returned by repositories when the (user, lecture)
// unique constraint rejects an insert.
var ErrDuplicateEnrollment = errors.New("duplicate enrollment for user and lecture")

// TimeConflictError names the lecture already holding the requested slot.
type TimeConflictError struct {
	ConflictLectureID string
}

func (e *TimeConflictError) Error() string {
	return fmt.Sprintf("%s (lecture %s)", ErrTimeConflict.Error(), e.ConflictLectureID)
}

func (e *TimeConflictError) Unwrap() error {
	return ErrTimeConflict
}

// InvalidInputf builds an ErrInvalidInput with a field-level reason.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// StorageError wraps an unexpected backend error.
func StorageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageFailure, op, err)
}

// ErrDuplicateTimeSlot is returned when a lecture time identifier is reused.
var ErrDuplicateTimeSlot = fmt.Errorf("%w: lecture time id already exists", ErrConflict)
