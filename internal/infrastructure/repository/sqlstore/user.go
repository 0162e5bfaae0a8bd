package sqlstore

import (
	"context"
	"fmt"

	"class-timetable/internal/domain/user"
	"class-timetable/internal/infrastructure/database"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id, user_name, nickname, school_name, password_hash, created_at, updated_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) user.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES (:id, :user_name, :nickname, :school_name, :password_hash, :created_at, :updated_at)`, u)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return user.ErrUserNameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UserRepository) GetByUserName(ctx context.Context, userName string) (*user.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE user_name = ?`, userName)
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, error) {
	var users []*user.User
	err := r.db.SelectContext(ctx, &users,
		r.db.Rebind(`SELECT `+userColumns+` FROM users ORDER BY created_at, id LIMIT ? OFFSET ?`), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	result, err := r.db.NamedExecContext(ctx,
		`UPDATE users SET nickname = :nickname, school_name = :school_name,
		 password_hash = :password_hash, updated_at = :updated_at
		 WHERE id = :id`, u)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Delete removes the user row and its dependents in one transaction.
func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin delete user: %w", err)
	}
	defer tx.Rollback()

	dependents := []struct {
		query string
		args  []any
	}{
		{`DELETE FROM enrollments WHERE user_id = ?`, []any{id}},
		{`DELETE FROM friends WHERE user_id = ? OR friend_id = ?`, []any{id, id}},
		{`DELETE FROM lecture_comments WHERE author_id = ?`, []any{id}},
	}
	for _, d := range dependents {
		if _, err := tx.ExecContext(ctx, tx.Rebind(d.query), d.args...); err != nil {
			return false, fmt.Errorf("delete user dependents: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete user: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) get(ctx context.Context, query string, args ...any) (*user.User, error) {
	var u user.User
	found, err := getOne(ctx, r.db, &u, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &u, nil
}
