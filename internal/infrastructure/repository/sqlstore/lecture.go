package sqlstore

import (
	"context"
	"fmt"

	"class-timetable/internal/domain/schedule"
	"class-timetable/internal/infrastructure/database"
	interfaces "class-timetable/internal/interfaces/infrastructure"

	"github.com/jmoiron/sqlx"
)

const (
	lectureColumns  = `id, lecture_name, professor, credit, department, created_by, created_at, updated_at`
	timeSlotColumns = `id, lecture_id, start_time, end_time, lecture_number, created_at, updated_at`
)

type LectureRepository struct {
	db *sqlx.DB
}

func NewLectureRepository(db *sqlx.DB) interfaces.LectureRepository {
	return &LectureRepository{db: db}
}

func (r *LectureRepository) Create(ctx context.Context, l *schedule.Lecture) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO lectures (`+lectureColumns+`)
		 VALUES (:id, :lecture_name, :professor, :credit, :department, :created_by, :created_at, :updated_at)`, l)
	if err != nil {
		return fmt.Errorf("insert lecture: %w", err)
	}
	return nil
}

func (r *LectureRepository) GetByID(ctx context.Context, id string) (*schedule.Lecture, error) {
	var l schedule.Lecture
	found, err := getOne(ctx, r.db, &l, `SELECT `+lectureColumns+` FROM lectures WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("query lecture by id: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &l, nil
}

func (r *LectureRepository) List(ctx context.Context, limit, offset int) ([]*schedule.Lecture, error) {
	var lectures []*schedule.Lecture
	err := r.db.SelectContext(ctx, &lectures,
		r.db.Rebind(`SELECT `+lectureColumns+` FROM lectures ORDER BY created_at, id LIMIT ? OFFSET ?`), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list lectures: %w", err)
	}
	return lectures, nil
}

type TimeSlotRepository struct {
	db *sqlx.DB
}

func NewTimeSlotRepository(db *sqlx.DB) interfaces.TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

func (r *TimeSlotRepository) Create(ctx context.Context, s *schedule.TimeSlot) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO time_slots (`+timeSlotColumns+`)
		 VALUES (:id, :lecture_id, :start_time, :end_time, :lecture_number, :created_at, :updated_at)`, s)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return schedule.ErrDuplicateTimeSlot
		}
		return fmt.Errorf("insert time slot: %w", err)
	}
	return nil
}

func (r *TimeSlotRepository) GetByID(ctx context.Context, id string) (*schedule.TimeSlot, error) {
	var s schedule.TimeSlot
	found, err := getOne(ctx, r.db, &s, `SELECT `+timeSlotColumns+` FROM time_slots WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("query time slot by id: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &s, nil
}

func (r *TimeSlotRepository) ListByLecture(ctx context.Context, lectureID string) ([]*schedule.TimeSlot, error) {
	var slots []*schedule.TimeSlot
	err := r.db.SelectContext(ctx, &slots,
		r.db.Rebind(`SELECT `+timeSlotColumns+` FROM time_slots WHERE lecture_id = ? ORDER BY start_time, id`), lectureID)
	if err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	return slots, nil
}
