package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"class-timetable/internal/domain/schedule"
	infrastructure "class-timetable/internal/interfaces/infrastructure"
	interfaces "class-timetable/internal/interfaces/service"
	"class-timetable/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type scheduleService struct {
	enrollments schedule.EnrollmentRepository
	lectures    schedule.LectureDirectory
	timeSlots   schedule.TimeSlotDirectory
	checker     *ConflictChecker
	aggregator  *WeeklyAggregator
	cache       infrastructure.CacheService
	now         func() time.Time
}

var _ interfaces.ScheduleService = (*scheduleService)(nil)

// NewScheduleService wires the enrollment workflow. cache may be nil.
func NewScheduleService(
	enrollments schedule.EnrollmentRepository,
	lectures schedule.LectureDirectory,
	timeSlots schedule.TimeSlotDirectory,
	cache infrastructure.CacheService,
) interfaces.ScheduleService {
	return &scheduleService{
		enrollments: enrollments,
		lectures:    lectures,
		timeSlots:   timeSlots,
		checker:     NewConflictChecker(enrollments),
		aggregator:  NewWeeklyAggregator(lectures, timeSlots),
		cache:       cache,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *scheduleService) AddLecture(ctx context.Context, userID string, input schedule.AddLectureInput) (*schedule.Enrollment, error) {
	if userID == "" {
		return nil, schedule.ErrUnauthenticated
	}
	input.Normalize()
	if input.LectureID == "" {
		return nil, schedule.InvalidInputf("lectureId is required")
	}
	if input.TimeSlotID == "" {
		return nil, schedule.InvalidInputf("timeSlotId is required")
	}
	if input.DayOfWeek == nil {
		return nil, schedule.InvalidInputf("dayOfWeek is required")
	}
	day := *input.DayOfWeek
	if !schedule.ValidDayOfWeek(day) {
		return nil, schedule.InvalidInputf("dayOfWeek must be between 0 and 6, got %d", day)
	}

	lecture, err := s.lectures.GetByID(ctx, input.LectureID)
	if err != nil {
		return nil, schedule.StorageError("get lecture", err)
	}
	if lecture == nil {
		return nil, schedule.ErrLectureNotFound
	}

	slot, err := s.timeSlots.GetByID(ctx, input.TimeSlotID)
	if err != nil {
		return nil, schedule.StorageError("get time slot", err)
	}
	if slot == nil {
		return nil, schedule.ErrTimeSlotNotFound
	}

	if err := s.checker.Check(ctx, userID, input.LectureID, input.TimeSlotID, day); err != nil {
		return nil, err
	}

	now := s.now()
	enrollment := &schedule.Enrollment{
		ID:         uuid.NewString(),
		UserID:     userID,
		LectureID:  input.LectureID,
		TimeSlotID: input.TimeSlotID,
		DayOfWeek:  day,
		Classroom:  input.Classroom,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.enrollments.Insert(ctx, enrollment); err != nil {
		if errors.Is(err, schedule.ErrDuplicateEnrollment) {
			// a concurrent add won between the check and the insert
			return nil, schedule.ErrAlreadyEnrolled
		}
		return nil, schedule.StorageError("insert enrollment", err)
	}

	s.invalidateSchedule(ctx, userID)

	logger.WithFields(logrus.Fields{
		"user_id":      userID,
		"lecture_id":   enrollment.LectureID,
		"time_slot_id": enrollment.TimeSlotID,
		"day_of_week":  enrollment.DayOfWeek,
	}).Info("Lecture added to schedule")

	return enrollment, nil
}

func (s *scheduleService) RemoveLecture(ctx context.Context, userID, lectureID string) error {
	if userID == "" {
		return schedule.ErrUnauthenticated
	}
	lectureID = strings.TrimSpace(lectureID)
	if lectureID == "" {
		return schedule.InvalidInputf("lectureId is required")
	}

	removed, err := s.enrollments.Remove(ctx, userID, lectureID)
	if err != nil {
		return schedule.StorageError("remove enrollment", err)
	}
	if removed == 0 {
		return schedule.ErrNotEnrolled
	}

	s.invalidateSchedule(ctx, userID)

	logger.Info("Lecture %s removed from schedule of user %s", lectureID, userID)
	return nil
}

func (s *scheduleService) ListLectures(ctx context.Context, userID string) (schedule.WeeklySchedule, error) {
	if userID == "" {
		return schedule.WeeklySchedule{}, schedule.ErrUnauthenticated
	}

	// The version is taken before the store read. A remove that lands in
	// between bumps it, and the view stored below is never read back.
	var version int64
	cacheable := false
	if s.cache != nil {
		cached, v, err := s.cache.GetWeeklySchedule(ctx, userID)
		if err != nil {
			logger.Warn("Failed to read cached schedule for user %s: %v", userID, err)
		} else if cached != nil {
			return *cached, nil
		} else {
			version, cacheable = v, true
		}
	}

	enrollments, err := s.enrollments.FindAllByUser(ctx, userID)
	if err != nil {
		return schedule.WeeklySchedule{}, schedule.StorageError("list enrollments", err)
	}

	week, err := s.aggregator.Aggregate(ctx, enrollments)
	if err != nil {
		return schedule.WeeklySchedule{}, err
	}

	if cacheable {
		if err := s.cache.SetWeeklySchedule(ctx, userID, version, week); err != nil {
			logger.Warn("Failed to cache schedule for user %s: %v", userID, err)
		}
	}

	return week, nil
}

func (s *scheduleService) GetLecture(ctx context.Context, lectureID string) (*schedule.Lecture, error) {
	lectureID = strings.TrimSpace(lectureID)
	if lectureID == "" {
		return nil, schedule.InvalidInputf("lectureId is required")
	}

	if s.cache != nil {
		cached, err := s.cache.GetLectureDetails(ctx, lectureID)
		if err != nil {
			logger.Warn("Failed to read cached lecture %s: %v", lectureID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	lecture, err := s.lectures.GetByID(ctx, lectureID)
	if err != nil {
		return nil, schedule.StorageError("get lecture", err)
	}
	if lecture == nil {
		return nil, schedule.ErrLectureNotFound
	}

	if s.cache != nil {
		if err := s.cache.SetLectureDetails(ctx, lecture); err != nil {
			logger.Warn("Failed to cache lecture %s: %v", lectureID, err)
		}
	}

	return lecture, nil
}

func (s *scheduleService) invalidateSchedule(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateWeeklySchedule(ctx, userID); err != nil {
		logger.Warn("Failed to invalidate cached schedule for user %s: %v", userID, err)
	}
}
