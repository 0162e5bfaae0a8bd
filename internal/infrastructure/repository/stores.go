package repository

import (
	"context"

	"class-timetable/internal/infrastructure/database"
	interfaces "class-timetable/internal/interfaces/infrastructure"

	"gorm.io/gorm"
)

// NewStores builds the GORM-backed repositories over one connection.
func NewStores(db *gorm.DB) interfaces.Stores {
	return interfaces.Stores{
		Enrollments: NewEnrollmentRepository(db),
		Lectures:    NewLectureRepository(db),
		TimeSlots:   NewTimeSlotRepository(db),
		Users:       NewUserRepository(db),
		Friends:     NewFriendRepository(db),
		Comments:    NewCommentRepository(db),
		Ping: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
		Close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}
