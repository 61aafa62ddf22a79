package database

import (
	"easypark/internal/facilities"
	"easypark/internal/sessions"
	"easypark/internal/slots"
	"easypark/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&facilities.Facility{},
		&slots.Slot{},
		&sessions.ParkingSession{},
	)
}
