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
	"class-timetable/pkg/validator"

	"github.com/google/uuid"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200

	slotTimeLayout = "15:04"
)

type catalogService struct {
	lectures  infrastructure.LectureRepository
	timeSlots infrastructure.TimeSlotRepository
	now       func() time.Time
}

var _ interfaces.CatalogService = (*catalogService)(nil)

func NewCatalogService(lectures infrastructure.LectureRepository, timeSlots infrastructure.TimeSlotRepository) interfaces.CatalogService {
	return &catalogService{
		lectures:  lectures,
		timeSlots: timeSlots,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *catalogService) CreateLecture(ctx context.Context, createdBy string, req *interfaces.CreateLectureRequest) (*schedule.Lecture, error) {
	if req == nil {
		return nil, schedule.InvalidInputf("lecture is required")
	}
	req.LectureName = strings.TrimSpace(req.LectureName)
	req.Professor = strings.TrimSpace(req.Professor)
	req.Department = strings.TrimSpace(req.Department)
	if err := validator.ValidateStruct(req); err != nil {
		return nil, schedule.InvalidInputf("%s", validator.Summary(err))
	}

	now := s.now()
	lecture := &schedule.Lecture{
		ID:          uuid.NewString(),
		LectureName: req.LectureName,
		Professor:   req.Professor,
		Credit:      req.Credit,
		Department:  req.Department,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.lectures.Create(ctx, lecture); err != nil {
		return nil, schedule.StorageError("create lecture", err)
	}

	logger.Info("Lecture %s (%s) created", lecture.ID, lecture.LectureName)
	return lecture, nil
}

func (s *catalogService) ListLectures(ctx context.Context, limit, offset int) ([]*schedule.Lecture, error) {
	limit, offset = normalizePage(limit, offset)

	lectures, err := s.lectures.List(ctx, limit, offset)
	if err != nil {
		return nil, schedule.StorageError("list lectures", err)
	}
	return lectures, nil
}

func (s *catalogService) AddTimeSlot(ctx context.Context, lectureID string, req *interfaces.CreateTimeSlotRequest) (*schedule.TimeSlot, error) {
	lectureID = strings.TrimSpace(lectureID)
	if lectureID == "" {
		return nil, schedule.InvalidInputf("lectureId is required")
	}
	if req == nil {
		return nil, schedule.InvalidInputf("time slot is required")
	}
	req.LectureTimeID = strings.TrimSpace(req.LectureTimeID)
	if err := validator.ValidateStruct(req); err != nil {
		return nil, schedule.InvalidInputf("%s", validator.Summary(err))
	}
	start, end, err := parseSlotTimes(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	if err := s.requireLecture(ctx, lectureID); err != nil {
		return nil, err
	}

	now := s.now()
	slot := &schedule.TimeSlot{
		ID:            req.LectureTimeID,
		LectureID:     lectureID,
		StartTime:     start,
		EndTime:       end,
		LectureNumber: req.LectureNumber,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.timeSlots.Create(ctx, slot); err != nil {
		if errors.Is(err, schedule.ErrDuplicateTimeSlot) {
			return nil, schedule.ErrDuplicateTimeSlot
		}
		return nil, schedule.StorageError("create time slot", err)
	}

	logger.Info("Time slot %s added to lecture %s", slot.ID, lectureID)
	return slot, nil
}

func (s *catalogService) ListTimeSlots(ctx context.Context, lectureID string) ([]*schedule.TimeSlot, error) {
	lectureID = strings.TrimSpace(lectureID)
	if lectureID == "" {
		return nil, schedule.InvalidInputf("lectureId is required")
	}
	if err := s.requireLecture(ctx, lectureID); err != nil {
		return nil, err
	}

	slots, err := s.timeSlots.ListByLecture(ctx, lectureID)
	if err != nil {
		return nil, schedule.StorageError("list time slots", err)
	}
	return slots, nil
}

func (s *catalogService) requireLecture(ctx context.Context, lectureID string) error {
	lecture, err := s.lectures.GetByID(ctx, lectureID)
	if err != nil {
		return schedule.StorageError("get lecture", err)
	}
	if lecture == nil {
		return schedule.ErrLectureNotFound
	}
	return nil
}

// parseSlotTimes returns both clock times zero-padded as HH:MM, so stored
// values order correctly as strings.
func parseSlotTimes(startTime, endTime string) (string, string, error) {
	start, err := time.Parse(slotTimeLayout, startTime)
	if err != nil {
		return "", "", schedule.InvalidInputf("startTime must be HH:MM")
	}
	end, err := time.Parse(slotTimeLayout, endTime)
	if err != nil {
		return "", "", schedule.InvalidInputf("endTime must be HH:MM")
	}
	if !end.After(start) {
		return "", "", schedule.InvalidInputf("endTime must be after startTime")
	}
	return start.Format(slotTimeLayout), end.Format(slotTimeLayout), nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
