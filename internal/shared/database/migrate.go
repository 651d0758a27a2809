package database

import (
	"waitly/internal/notifications"
	"waitly/internal/users"
	"waitly/internal/venues"
	"waitly/internal/waitlist"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&venues.Venue{},
		&waitlist.Entry{},
		&notifications.Notification{},
	)
}
