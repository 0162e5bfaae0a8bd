package cache

import (
	"context"

	"class-timetable/internal/domain/schedule"
	interfaces "class-timetable/internal/interfaces/infrastructure"
)

// NoopCache is used when cache.type is none. Every read misses.
type NoopCache struct{}

var _ interfaces.CacheService = NoopCache{}

func (NoopCache) GetWeeklySchedule(context.Context, string) (*schedule.WeeklySchedule, int64, error) {
	return nil, 0, nil
}

func (NoopCache) SetWeeklySchedule(context.Context, string, int64, schedule.WeeklySchedule) error {
	return nil
}

func (NoopCache) InvalidateWeeklySchedule(context.Context, string) error { return nil }

func (NoopCache) GetLectureDetails(context.Context, string) (*schedule.Lecture, error) {
	return nil, nil
}

func (NoopCache) SetLectureDetails(context.Context, *schedule.Lecture) error { return nil }

func (NoopCache) Health(context.Context) error { return nil }

func (NoopCache) Close() error { return nil }
