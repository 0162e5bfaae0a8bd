package repository

import (
	"context"

	"class-timetable/internal/domain/schedule"
	interfaces "class-timetable/internal/interfaces/infrastructure"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) interfaces.CommentRepository {
	return &CommentRepository{
		db: db,
	}
}

func (r *CommentRepository) Create(ctx context.Context, comment *schedule.LectureComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *CommentRepository) ListByLecture(ctx context.Context, lectureID string, limit, offset int) ([]*schedule.LectureComment, error) {
	var comments []*schedule.LectureComment
	err := r.db.WithContext(ctx).
		Where("lecture_id = ?", lectureID).
		Order("created_at, id").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
