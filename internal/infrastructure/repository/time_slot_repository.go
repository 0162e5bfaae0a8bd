package repository

import (
	"context"
	"errors"

	"class-timetable/internal/domain/schedule"
	"class-timetable/internal/infrastructure/database"
	interfaces "class-timetable/internal/interfaces/infrastructure"

	"gorm.io/gorm"
)

type TimeSlotRepository struct {
	db *gorm.DB
}

func NewTimeSlotRepository(db *gorm.DB) interfaces.TimeSlotRepository {
	return &TimeSlotRepository{
		db: db,
	}
}

func (r *TimeSlotRepository) Create(ctx context.Context, slot *schedule.TimeSlot) error {
	err := r.db.WithContext(ctx).Create(slot).Error
	if database.IsUniqueViolation(err) {
		return schedule.ErrDuplicateTimeSlot
	}
	return err
}

func (r *TimeSlotRepository) GetByID(ctx context.Context, id string) (*schedule.TimeSlot, error) {
	var slot schedule.TimeSlot
	err := r.db.WithContext(ctx).First(&slot, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *TimeSlotRepository) ListByLecture(ctx context.Context, lectureID string) ([]*schedule.TimeSlot, error) {
	var slots []*schedule.TimeSlot
	err := r.db.WithContext(ctx).
		Where("lecture_id = ?", lectureID).
		Order("start_time, id").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}
