package interfaces

import (
	"context"

	"class-timetable/internal/domain/schedule"
	"class-timetable/internal/domain/user"
)

type EnrollmentRepository = schedule.EnrollmentRepository

type UserRepository = user.UserRepository

type FriendRepository = user.FriendRepository

type LectureRepository interface {
	schedule.LectureDirectory
	Create(ctx context.Context, lecture *schedule.Lecture) error
	List(ctx context.Context, limit, offset int) ([]*schedule.Lecture, error)
}

type TimeSlotRepository interface {
	schedule.TimeSlotDirectory
	// Create fails with ErrDuplicateTimeSlot when the id is taken.
	Create(ctx context.Context, slot *schedule.TimeSlot) error
	ListByLecture(ctx context.Context, lectureID string) ([]*schedule.TimeSlot, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *schedule.LectureComment) error
	// ListByLecture returns comments oldest first.
	ListByLecture(ctx context.Context, lectureID string, limit, offset int) ([]*schedule.LectureComment, error)
}

// Stores bundles one backend's repositories. Ping reports whether the
// underlying database is reachable.
type Stores struct {
	Enrollments EnrollmentRepository
	Lectures    LectureRepository
	TimeSlots   TimeSlotRepository
	Users       UserRepository
	Friends     FriendRepository
	Comments    CommentRepository
	Ping        func(ctx context.Context) error
	Close       func() error
}
