package schedule

import "context"

// EnrollmentRepository is the durable store of enrollments. Lookups return
// (nil, nil) when nothing matches.
type EnrollmentRepository interface {
	// Insert fails with ErrDuplicateEnrollment when (user, lecture) exists.
	Insert(ctx context.Context, enrollment *Enrollment) error
	// Remove deletes the (user, lecture) enrollment and reports how many rows went away.
	Remove(ctx context.Context, userID, lectureID string) (int64, error)
	FindAllByUser(ctx context.Context, userID string) ([]*Enrollment, error)
	FindByUserAndLecture(ctx context.Context, userID, lectureID string) (*Enrollment, error)
	FindByUserDaySlot(ctx context.Context, userID string, dayOfWeek int, timeSlotID string) (*Enrollment, error)
}

// LectureDirectory resolves lecture ids. A miss is (nil, nil).
type LectureDirectory interface {
	GetByID(ctx context.Context, id string) (*Lecture, error)
}

// TimeSlotDirectory resolves lecture time identifiers. A miss is (nil, nil).
type TimeSlotDirectory interface {
	GetByID(ctx context.Context, id string) (*TimeSlot, error)
}
