// Package sqlstore implements the repositories with hand-written SQL over
// sqlx. The same queries serve SQLite and PostgreSQL; placeholders are
// rebound per driver.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	interfaces "class-timetable/internal/interfaces/infrastructure"

	"github.com/jmoiron/sqlx"
)

// NewStores builds the sqlx-backed repositories over one connection.
func NewStores(db *sqlx.DB) interfaces.Stores {
	return interfaces.Stores{
		Enrollments: NewEnrollmentRepository(db),
		Lectures:    NewLectureRepository(db),
		TimeSlots:   NewTimeSlotRepository(db),
		Users:       NewUserRepository(db),
		Friends:     NewFriendRepository(db),
		Comments:    NewCommentRepository(db),
		Ping:        db.PingContext,
		Close:       db.Close,
	}
}

// getOne runs a single-row query; no row is (false, nil).
func getOne(ctx context.Context, db *sqlx.DB, dest any, query string, args ...any) (bool, error) {
	err := db.GetContext(ctx, dest, db.Rebind(query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
