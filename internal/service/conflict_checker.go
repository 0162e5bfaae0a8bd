package service

import (
	"context"

	"class-timetable/internal/domain/schedule"
)

// ConflictChecker decides whether a prospective enrollment is admissible
// against the user's current enrollments. It never writes.
type ConflictChecker struct {
	enrollments schedule.EnrollmentRepository
}

func NewConflictChecker(enrollments schedule.EnrollmentRepository) *ConflictChecker {
	return &ConflictChecker{enrollments: enrollments}
}

// Check returns ErrAlreadyEnrolled when the user already holds the lecture,
// or a *TimeConflictError when another enrollment occupies the same day and
// time slot. The lecture rule is evaluated first.
func (c *ConflictChecker) Check(ctx context.Context, userID, lectureID, timeSlotID string, dayOfWeek int) error {
	existing, err := c.enrollments.FindByUserAndLecture(ctx, userID, lectureID)
	if err != nil {
		return schedule.StorageError("find enrollment by lecture", err)
	}
	if existing != nil {
		return schedule.ErrAlreadyEnrolled
	}

	occupant, err := c.enrollments.FindByUserDaySlot(ctx, userID, dayOfWeek, timeSlotID)
	if err != nil {
		return schedule.StorageError("find enrollment by day and slot", err)
	}
	if occupant != nil {
		return &schedule.TimeConflictError{ConflictLectureID: occupant.LectureID}
	}

	return nil
}
