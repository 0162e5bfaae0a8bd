package service

import (
	"context"

	"class-timetable/internal/domain/schedule"
	"class-timetable/internal/domain/user"
)

// ScheduleService manages a user's weekly timetable. userID is the
// authenticated caller; an empty value is ErrUnauthenticated.
type ScheduleService interface {
	AddLecture(ctx context.Context, userID string, input schedule.AddLectureInput) (*schedule.Enrollment, error)
	RemoveLecture(ctx context.Context, userID, lectureID string) error
	ListLectures(ctx context.Context, userID string) (schedule.WeeklySchedule, error)
	GetLecture(ctx context.Context, lectureID string) (*schedule.Lecture, error)
}

type CreateLectureRequest struct {
	LectureName string  `json:"lectureName" validate:"required,max=100"`
	Professor   string  `json:"professor" validate:"required,max=50"`
	Credit      float64 `json:"credit" validate:"required,gte=0.5,lte=6"`
	Department  string  `json:"department" validate:"required,max=50"`
}

type CreateTimeSlotRequest struct {
	LectureTimeID string `json:"lectureTimeId" validate:"required,max=64"`
	StartTime     string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime       string `json:"endTime" validate:"required,datetime=15:04"`
	LectureNumber string `json:"lectureNumber" validate:"omitempty,max=20"`
}

// CatalogService maintains the lecture and time slot directories.
type CatalogService interface {
	CreateLecture(ctx context.Context, createdBy string, req *CreateLectureRequest) (*schedule.Lecture, error)
	ListLectures(ctx context.Context, limit, offset int) ([]*schedule.Lecture, error)
	AddTimeSlot(ctx context.Context, lectureID string, req *CreateTimeSlotRequest) (*schedule.TimeSlot, error)
	ListTimeSlots(ctx context.Context, lectureID string) ([]*schedule.TimeSlot, error)
}

type CreateCommentRequest struct {
	EvaluationContent string `json:"evaluationContent" validate:"required,max=2000"`
	Rating            int    `json:"rating" validate:"required,min=1,max=5"`
	Semester          string `json:"semester" validate:"required,max=20"`
}

// CommentService records lecture evaluations. The author is always the
// authenticated caller.
type CommentService interface {
	AddComment(ctx context.Context, authorID, lectureID string, req *CreateCommentRequest) (*schedule.LectureComment, error)
	ListComments(ctx context.Context, lectureID string, limit, offset int) ([]*schedule.LectureComment, error)
}

type TokenResponse struct {
	AccessToken string     `json:"accessToken"`
	TokenType   string     `json:"tokenType"`
	ExpiresIn   int64      `json:"expiresIn"`
	User        *user.User `json:"user"`
}

// AuthService registers users and exchanges credentials for access tokens.
type AuthService interface {
	Register(ctx context.Context, req *user.CreateUserRequest) (*user.User, error)
	Login(ctx context.Context, req *user.LoginRequest) (*TokenResponse, error)
	// Identify resolves a bearer token to an existing user id.
	Identify(ctx context.Context, token string) (string, error)
}
