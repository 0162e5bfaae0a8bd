package sqlstore

import (
	"context"
	"fmt"

	"class-timetable/internal/domain/schedule"
	"class-timetable/internal/infrastructure/database"

	"github.com/jmoiron/sqlx"
)

const enrollmentColumns = `id, user_id, lecture_id, time_slot_id, day_of_week, classroom, created_at, updated_at`

type EnrollmentRepository struct {
	db *sqlx.DB
}

var _ schedule.EnrollmentRepository = (*EnrollmentRepository)(nil)

func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) Insert(ctx context.Context, e *schedule.Enrollment) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO enrollments (`+enrollmentColumns+`)
		 VALUES (:id, :user_id, :lecture_id, :time_slot_id, :day_of_week, :classroom, :created_at, :updated_at)`, e)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return schedule.ErrDuplicateEnrollment
		}
		return fmt.Errorf("insert enrollment: %w", err)
	}
	return nil
}

func (r *EnrollmentRepository) Remove(ctx context.Context, userID, lectureID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind(`DELETE FROM enrollments WHERE user_id = ? AND lecture_id = ?`), userID, lectureID)
	if err != nil {
		return 0, fmt.Errorf("delete enrollment: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func (r *EnrollmentRepository) FindAllByUser(ctx context.Context, userID string) ([]*schedule.Enrollment, error) {
	var enrollments []*schedule.Enrollment
	err := r.db.SelectContext(ctx, &enrollments,
		r.db.Rebind(`SELECT `+enrollmentColumns+` FROM enrollments WHERE user_id = ?`), userID)
	if err != nil {
		return nil, fmt.Errorf("query enrollments by user: %w", err)
	}
	return enrollments, nil
}

func (r *EnrollmentRepository) FindByUserAndLecture(ctx context.Context, userID, lectureID string) (*schedule.Enrollment, error) {
	var e schedule.Enrollment
	found, err := getOne(ctx, r.db, &e,
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE user_id = ? AND lecture_id = ?`, userID, lectureID)
	if err != nil {
		return nil, fmt.Errorf("query enrollment by lecture: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &e, nil
}

func (r *EnrollmentRepository) FindByUserDaySlot(ctx context.Context, userID string, dayOfWeek int, timeSlotID string) (*schedule.Enrollment, error) {
	var e schedule.Enrollment
	found, err := getOne(ctx, r.db, &e,
		`SELECT `+enrollmentColumns+` FROM enrollments
		 WHERE user_id = ? AND day_of_week = ? AND time_slot_id = ?
		 ORDER BY created_at LIMIT 1`, userID, dayOfWeek, timeSlotID)
	if err != nil {
		return nil, fmt.Errorf("query enrollment by day and slot: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &e, nil
}
