package service

import (
	"context"
	"strings"
	"time"

	"class-timetable/internal/domain/schedule"
	infrastructure "class-timetable/internal/interfaces/infrastructure"
	interfaces "class-timetable/internal/interfaces/service"
	"class-timetable/pkg/logger"
	"class-timetable/pkg/validator"

	"github.com/google/uuid"
)

type commentService struct {
	lectures infrastructure.LectureRepository
	comments infrastructure.CommentRepository
	now      func() time.Time
}

var _ interfaces.CommentService = (*commentService)(nil)

func NewCommentService(lectures infrastructure.LectureRepository, comments infrastructure.CommentRepository) interfaces.CommentService {
	return &commentService{
		lectures: lectures,
		comments: comments,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *commentService) AddComment(ctx context.Context, authorID, lectureID string, req *interfaces.CreateCommentRequest) (*schedule.LectureComment, error) {
	if authorID == "" {
		return nil, schedule.ErrUnauthenticated
	}
	lectureID = strings.TrimSpace(lectureID)
	if lectureID == "" {
		return nil, schedule.InvalidInputf("lectureId is required")
	}
	if req == nil {
		return nil, schedule.InvalidInputf("comment is required")
	}
	req.EvaluationContent = strings.TrimSpace(req.EvaluationContent)
	req.Semester = strings.TrimSpace(req.Semester)
	if err := validator.ValidateStruct(req); err != nil {
		return nil, schedule.InvalidInputf("%s", validator.Summary(err))
	}

	if err := s.requireLecture(ctx, lectureID); err != nil {
		return nil, err
	}

	now := s.now()
	comment := &schedule.LectureComment{
		ID:        uuid.NewString(),
		LectureID: lectureID,
		AuthorID:  authorID,
		Content:   req.EvaluationContent,
		Rating:    req.Rating,
		Semester:  req.Semester,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, schedule.StorageError("create comment", err)
	}

	logger.Info("Comment %s added to lecture %s by %s", comment.ID, lectureID, authorID)
	return comment, nil
}

func (s *commentService) ListComments(ctx context.Context, lectureID string, limit, offset int) ([]*schedule.LectureComment, error) {
	lectureID = strings.TrimSpace(lectureID)
	if lectureID == "" {
		return nil, schedule.InvalidInputf("lectureId is required")
	}
	if err := s.requireLecture(ctx, lectureID); err != nil {
		return nil, err
	}

	limit, offset = normalizePage(limit, offset)
	comments, err := s.comments.ListByLecture(ctx, lectureID, limit, offset)
	if err != nil {
		return nil, schedule.StorageError("list comments", err)
	}
	return comments, nil
}

func (s *commentService) requireLecture(ctx context.Context, lectureID string) error {
	lecture, err := s.lectures.GetByID(ctx, lectureID)
	if err != nil {
		return schedule.StorageError("get lecture", err)
	}
	if lecture == nil {
		return schedule.ErrLectureNotFound
	}
	return nil
}
