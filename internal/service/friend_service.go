package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"class-timetable/internal/domain/schedule"
	"class-timetable/internal/domain/user"
	"class-timetable/pkg/logger"
)

// friendService implements the FriendService interface
type friendService struct {
	users   user.UserRepository
	friends user.FriendRepository
}

// NewFriendService creates a new friend service
func NewFriendService(users user.UserRepository, friends user.FriendRepository) user.FriendService {
	return &friendService{
		users:   users,
		friends: friends,
	}
}

func (s *friendService) ListFriends(ctx context.Context, userID string) ([]*user.User, error) {
	if userID == "" {
		return nil, schedule.ErrUnauthenticated
	}

	friends, err := s.friends.ListFriends(ctx, userID)
	if err != nil {
		logger.Error("Failed to list friends of %s: %v", userID, err)
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return friends, nil
}

// SearchUser looks a user up by exact user name
func (s *friendService) SearchUser(ctx context.Context, userName string) (*user.User, error) {
	return s.resolve(ctx, userName)
}

func (s *friendService) AddFriend(ctx context.Context, userID, friendName string) (*user.User, error) {
	if userID == "" {
		return nil, schedule.ErrUnauthenticated
	}

	friend, err := s.resolve(ctx, friendName)
	if err != nil {
		return nil, err
	}
	if friend.ID == userID {
		return nil, user.ErrCannotFriendSelf
	}

	if err := s.friends.Add(ctx, user.NewFriend(userID, friend.ID)); err != nil {
		if errors.Is(err, user.ErrAlreadyFriends) {
			return nil, err
		}
		logger.Error("Failed to add friend: %v", err)
		return nil, fmt.Errorf("failed to add friend: %w", err)
	}

	logger.Info("User %s added friend %s", userID, friend.ID)
	return friend, nil
}

func (s *friendService) RemoveFriend(ctx context.Context, userID, friendName string) error {
	if userID == "" {
		return schedule.ErrUnauthenticated
	}

	friend, err := s.resolve(ctx, friendName)
	if err != nil {
		return err
	}

	removed, err := s.friends.Remove(ctx, userID, friend.ID)
	if err != nil {
		logger.Error("Failed to remove friend: %v", err)
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	if removed == 0 {
		return user.ErrNotFriends
	}

	logger.Info("User %s removed friend %s", userID, friend.ID)
	return nil
}

func (s *friendService) resolve(ctx context.Context, userName string) (*user.User, error) {
	userName = strings.ToLower(strings.TrimSpace(userName))
	if userName == "" {
		return nil, schedule.InvalidInputf("userName is required")
	}

	u, err := s.users.GetByUserName(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}
