package sqlstore

import (
	"context"
	"fmt"

	"class-timetable/internal/domain/user"
	"class-timetable/internal/infrastructure/database"

	"github.com/jmoiron/sqlx"
)

type FriendRepository struct {
	db *sqlx.DB
}

func NewFriendRepository(db *sqlx.DB) user.FriendRepository {
	return &FriendRepository{db: db}
}

func (r *FriendRepository) Add(ctx context.Context, f *user.Friend) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO friends (user_id, friend_id, created_at) VALUES (:user_id, :friend_id, :created_at)`, f)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return user.ErrAlreadyFriends
		}
		return fmt.Errorf("insert friend: %w", err)
	}
	return nil
}

func (r *FriendRepository) Remove(ctx context.Context, userID, friendID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind(`DELETE FROM friends WHERE user_id = ? AND friend_id = ?`), userID, friendID)
	if err != nil {
		return 0, fmt.Errorf("delete friend: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func (r *FriendRepository) ListFriends(ctx context.Context, userID string) ([]*user.User, error) {
	var users []*user.User
	err := r.db.SelectContext(ctx, &users, r.db.Rebind(
		`SELECT u.id, u.user_name, u.nickname, u.school_name, u.password_hash, u.created_at, u.updated_at
		 FROM friends f JOIN users u ON u.id = f.friend_id
		 WHERE f.user_id = ?
		 ORDER BY f.created_at, u.id`), userID)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	return users, nil
}
