package repository

import (
	"context"
	"errors"

	"class-timetable/internal/domain/schedule"
	"class-timetable/internal/infrastructure/database"
	interfaces "class-timetable/internal/interfaces/infrastructure"

	"gorm.io/gorm"
)

// EnrollmentRepository implements EnrollmentRepository using GORM
type EnrollmentRepository struct {
	db *gorm.DB
}

var _ interfaces.EnrollmentRepository = (*EnrollmentRepository)(nil)

// NewEnrollmentRepository creates a new GORM enrollment repository
func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// Insert stores a new enrollment; the (user, lecture) constraint maps to ErrDuplicateEnrollment
func (r *EnrollmentRepository) Insert(ctx context.Context, enrollment *schedule.Enrollment) error {
	err := r.db.WithContext(ctx).Create(enrollment).Error
	if database.IsUniqueViolation(err) {
		return schedule.ErrDuplicateEnrollment
	}
	return err
}

// Remove deletes the enrollment of a user in a lecture
func (r *EnrollmentRepository) Remove(ctx context.Context, userID, lectureID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND lecture_id = ?", userID, lectureID).
		Delete(&schedule.Enrollment{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// FindAllByUser retrieves all enrollments of a user
func (r *EnrollmentRepository) FindAllByUser(ctx context.Context, userID string) ([]*schedule.Enrollment, error) {
	var enrollments []*schedule.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *EnrollmentRepository) FindByUserAndLecture(ctx context.Context, userID, lectureID string) (*schedule.Enrollment, error) {
	return r.first(ctx, "user_id = ? AND lecture_id = ?", userID, lectureID)
}

func (r *EnrollmentRepository) FindByUserDaySlot(ctx context.Context, userID string, dayOfWeek int, timeSlotID string) (*schedule.Enrollment, error) {
	return r.first(ctx, "user_id = ? AND day_of_week = ? AND time_slot_id = ?", userID, dayOfWeek, timeSlotID)
}

func (r *EnrollmentRepository) first(ctx context.Context, query string, args ...any) (*schedule.Enrollment, error) {
	var enrollment schedule.Enrollment
	err := r.db.WithContext(ctx).Where(query, args...).Order("created_at").First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &enrollment, nil
}
