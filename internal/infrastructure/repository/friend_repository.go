package repository

import (
	"context"

	"class-timetable/internal/domain/user"
	"class-timetable/internal/infrastructure/database"

	"gorm.io/gorm"
)

// FriendRepository implements user.FriendRepository using GORM
type FriendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new GORM friend repository
func NewFriendRepository(db *gorm.DB) user.FriendRepository {
	return &FriendRepository{
		db: db,
	}
}

func (r *FriendRepository) Add(ctx context.Context, friend *user.Friend) error {
	err := r.db.WithContext(ctx).Create(friend).Error
	if database.IsUniqueViolation(err) {
		return user.ErrAlreadyFriends
	}
	return err
}

func (r *FriendRepository) Remove(ctx context.Context, userID, friendID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&user.Friend{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *FriendRepository) ListFriends(ctx context.Context, userID string) ([]*user.User, error) {
	var users []*user.User
	err := r.db.WithContext(ctx).
		Joins("JOIN friends ON friends.friend_id = users.id").
		Where("friends.user_id = ?", userID).
		Order("friends.created_at, users.id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
