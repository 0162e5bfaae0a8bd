package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserNameTaken      = errors.New("user name already taken")
	ErrInvalidCredentials = errors.New("invalid user name or password")
	ErrForbidden          = errors.New("not allowed to modify another user")
)

// User represents a student owning a timetable
type User struct {
	ID           string    `json:"id" gorm:"column:id;primaryKey" db:"id"`
	UserName     string    `json:"userName" gorm:"column:user_name;uniqueIndex;not null" db:"user_name"`
	Nickname     string    `json:"nickname" gorm:"column:nickname" db:"nickname"`
	SchoolName   string    `json:"schoolName" gorm:"column:school_name" db:"school_name"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime" db:"updated_at"`
}

func (User) TableName() string { return "users" }

// CreateUserRequest represents the request to register a user
type CreateUserRequest struct {
	UserName   string `json:"userName" validate:"required,min=3,max=50,alphanum"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
	Nickname   string `json:"nickname" validate:"omitempty,max=50"`
	SchoolName string `json:"schoolName" validate:"omitempty,max=100"`
}

// LoginRequest represents the credentials exchanged for an access token
type LoginRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest carries the profile fields a user may change. Nil fields
// are left as they are.
type UpdateUserRequest struct {
	Nickname   *string `json:"nickname" validate:"omitempty,min=1,max=50"`
	SchoolName *string `json:"schoolName" validate:"omitempty,max=100"`
	Password   *string `json:"password" validate:"omitempty,min=8,max=72"`
}

// NewUser creates a new user with generated ID and timestamps
func NewUser(userName, nickname, schoolName, passwordHash string) *User {
	now := time.Now().UTC()
	if nickname == "" {
		nickname = userName
	}
	return &User{
		ID:           uuid.NewString(),
		UserName:     strings.ToLower(strings.TrimSpace(userName)),
		Nickname:     nickname,
		SchoolName:   schoolName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsValid validates the user data
func (u *User) IsValid() bool {
	return u.ID != "" && u.UserName != "" && u.PasswordHash != ""
}
