package repository

import (
	"context"
	"errors"

	"class-timetable/internal/domain/schedule"
	"class-timetable/internal/domain/user"
	"class-timetable/internal/infrastructure/database"

	"gorm.io/gorm"
)

// UserRepository implements user.UserRepository using GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new GORM user repository
func NewUserRepository(db *gorm.DB) user.UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if database.IsUniqueViolation(err) {
		return user.ErrUserNameTaken
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) GetByUserName(ctx context.Context, userName string) (*user.User, error) {
	return r.first(ctx, "user_name = ?", userName)
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, error) {
	var users []*user.User
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Update writes the profile fields and password hash of an existing user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	result := r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"nickname":      u.Nickname,
			"school_name":   u.SchoolName,
			"password_hash": u.PasswordHash,
			"updated_at":    u.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Delete removes a user and everything keyed by the user in one transaction
func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&schedule.Enrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR friend_id = ?", id, id).Delete(&user.Friend{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&schedule.LectureComment{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&user.User{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func (r *UserRepository) first(ctx context.Context, query string, args ...any) (*user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
