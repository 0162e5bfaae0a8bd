package repository

import (
	"context"
	"errors"

	"class-timetable/internal/domain/schedule"
	interfaces "class-timetable/internal/interfaces/infrastructure"

	"gorm.io/gorm"
)

type LectureRepository struct {
	db *gorm.DB
}

func NewLectureRepository(db *gorm.DB) interfaces.LectureRepository {
	return &LectureRepository{
		db: db,
	}
}

func (r *LectureRepository) Create(ctx context.Context, lecture *schedule.Lecture) error {
	return r.db.WithContext(ctx).Create(lecture).Error
}

func (r *LectureRepository) GetByID(ctx context.Context, id string) (*schedule.Lecture, error) {
	var lecture schedule.Lecture
	err := r.db.WithContext(ctx).First(&lecture, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lecture, nil
}

func (r *LectureRepository) List(ctx context.Context, limit, offset int) ([]*schedule.Lecture, error) {
	var lectures []*schedule.Lecture
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Limit(limit).
		Offset(offset).
		Find(&lectures).Error
	if err != nil {
		return nil, err
	}
	return lectures, nil
}
