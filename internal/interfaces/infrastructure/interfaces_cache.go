package interfaces

import (
	"context"

	"class-timetable/internal/domain/schedule"
)

// CacheService holds derived read models. Misses are (nil, nil); callers
// treat every error as a miss.
//
// Weekly views are versioned per user. GetWeeklySchedule reports the
// version current at read time, and SetWeeklySchedule stores under the
// version it is given. Invalidation bumps the version, so a view built
// from a read that raced an invalidation is never served.
type CacheService interface {
	// Weekly schedule views
	GetWeeklySchedule(ctx context.Context, userID string) (*schedule.WeeklySchedule, int64, error)
	SetWeeklySchedule(ctx context.Context, userID string, version int64, week schedule.WeeklySchedule) error
	InvalidateWeeklySchedule(ctx context.Context, userID string) error

	// Lecture details
	GetLectureDetails(ctx context.Context, lectureID string) (*schedule.Lecture, error)
	SetLectureDetails(ctx context.Context, lecture *schedule.Lecture) error

	// Health and connection management
	Health(ctx context.Context) error
	Close() error
}
