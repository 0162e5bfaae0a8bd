package service

import (
	"context"
	"errors"
	"fmt"

	"class-timetable/internal/domain/schedule"
	"class-timetable/internal/domain/user"
	interfaces "class-timetable/internal/interfaces/service"
	"class-timetable/pkg/jwt"
	"class-timetable/pkg/logger"
)

type authService struct {
	users  user.UserService
	tokens *jwt.Manager
}

var _ interfaces.AuthService = (*authService)(nil)

func NewAuthService(users user.UserService, tokens *jwt.Manager) interfaces.AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	return s.users.CreateUser(ctx, req)
}

func (s *authService) Login(ctx context.Context, req *user.LoginRequest) (*interfaces.TokenResponse, error) {
	u, err := s.users.Authenticate(ctx, req.UserName, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateAccessToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	logger.Info("User %s logged in", u.ID)
	return &interfaces.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.AccessTokenTTL().Seconds()),
		User:        u,
	}, nil
}

// Identify returns ErrUnauthenticated for bad tokens and for tokens whose
// user no longer exists.
func (s *authService) Identify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", schedule.ErrUnauthenticated
	}

	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		logger.Debug("Rejected access token: %v", err)
		return "", schedule.ErrUnauthenticated
	}

	u, err := s.users.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", schedule.ErrUnauthenticated
		}
		return "", schedule.StorageError("resolve user", err)
	}
	return u.ID, nil
}
