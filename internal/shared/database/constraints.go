package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// One live entry per user per venue. The partial index backs the
	// duplicate-join check under concurrent requests.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_active_entry_per_venue
		ON waitlist_entries (user_id, venue_id)
		WHERE status IN ('PENDING', 'WAITING');
	`).Error
	if err != nil {
		return err
	}

	// Speeds up position renumbering, which walks a venue's WAITING entries
	// in order
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_entries_venue_status_position
		ON waitlist_entries (venue_id, status, position);
	`).Error
	if err != nil {
		return err
	}

	// Notification feed is always read newest-first per user
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_notifications_user_created
		ON notifications (user_id, created_at DESC);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
