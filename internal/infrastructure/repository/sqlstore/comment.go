package sqlstore

import (
	"context"
	"fmt"

	"class-timetable/internal/domain/schedule"
	interfaces "class-timetable/internal/interfaces/infrastructure"

	"github.com/jmoiron/sqlx"
)

const commentColumns = `id, lecture_id, author_id, content, rating, semester, created_at, updated_at`

type CommentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) interfaces.CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *schedule.LectureComment) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO lecture_comments (`+commentColumns+`)
		 VALUES (:id, :lecture_id, :author_id, :content, :rating, :semester, :created_at, :updated_at)`, c)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) ListByLecture(ctx context.Context, lectureID string, limit, offset int) ([]*schedule.LectureComment, error) {
	var comments []*schedule.LectureComment
	err := r.db.SelectContext(ctx, &comments, r.db.Rebind(
		`SELECT `+commentColumns+` FROM lecture_comments
		 WHERE lecture_id = ?
		 ORDER BY created_at, id LIMIT ? OFFSET ?`), lectureID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
