package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"class-timetable/internal/domain/schedule"
	"class-timetable/internal/domain/user"
	"class-timetable/pkg/logger"
	"class-timetable/pkg/validator"

	"golang.org/x/crypto/bcrypt"
)

// userService implements the UserService interface
type userService struct {
	userRepo   user.UserRepository
	bcryptCost int
}

// NewUserService creates a new user service
func NewUserService(userRepo user.UserRepository, bcryptCost int) user.UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// CreateUser creates a new user
func (s *userService) CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	userName := strings.ToLower(strings.TrimSpace(req.UserName))
	logger.Info("Creating user with user name: %s", userName)

	// Check if user already exists by user name
	existingUser, err := s.userRepo.GetByUserName(ctx, userName)
	if err != nil {
		logger.Error("Failed to look up user name: %v", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if existingUser != nil {
		return nil, user.ErrUserNameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := user.NewUser(userName, strings.TrimSpace(req.Nickname), strings.TrimSpace(req.SchoolName), string(hash))

	// Save user
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, user.ErrUserNameTaken) {
			return nil, err
		}
		logger.Error("Failed to create user: %v", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User created successfully with ID: %s", newUser.ID)
	return newUser, nil
}

// GetUser retrieves a user by ID
func (s *userService) GetUser(ctx context.Context, id string) (*user.User, error) {
	logger.Debug("Getting user with ID: %s", id)

	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user: %v", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if u == nil {
		return nil, user.ErrUserNotFound
	}

	return u, nil
}

// ListUsers retrieves a list of users
func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]*user.User, error) {
	limit, offset = normalizePage(limit, offset)
	logger.Debug("Listing users with limit: %d, offset: %d", limit, offset)

	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list users: %v", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// Authenticate checks a user name and password pair
func (s *userService) Authenticate(ctx context.Context, userName, password string) (*user.User, error) {
	u, err := s.userRepo.GetByUserName(ctx, strings.ToLower(strings.TrimSpace(userName)))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}
	return u, nil
}

// UpdateUser changes the caller's own profile
func (s *userService) UpdateUser(ctx context.Context, callerID, id string, req *user.UpdateUserRequest) (*user.User, error) {
	if err := authorizeSelf(callerID, id); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, schedule.InvalidInputf("update is required")
	}
	if err := validator.ValidateStruct(req); err != nil {
		return nil, schedule.InvalidInputf("%s", validator.Summary(err))
	}

	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nickname != nil {
		if nickname := strings.TrimSpace(*req.Nickname); nickname != "" {
			u.Nickname = nickname
		}
	}
	if req.SchoolName != nil {
		u.SchoolName = strings.TrimSpace(*req.SchoolName)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, u); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}
		logger.Error("Failed to update user: %v", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	logger.Info("User %s updated", u.ID)
	return u, nil
}

// DeleteUser removes the caller's own account with its timetable, friends and comments
func (s *userService) DeleteUser(ctx context.Context, callerID, id string) error {
	if err := authorizeSelf(callerID, id); err != nil {
		return err
	}

	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		logger.Error("Failed to delete user: %v", err)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !deleted {
		return user.ErrUserNotFound
	}

	logger.Info("User %s deleted", id)
	return nil
}

func authorizeSelf(callerID, id string) error {
	if callerID == "" {
		return schedule.ErrUnauthenticated
	}
	if strings.TrimSpace(id) == "" {
		return schedule.InvalidInputf("user id is required")
	}
	if callerID != id {
		return user.ErrForbidden
	}
	return nil
}
