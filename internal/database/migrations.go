package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds covering indexes that AutoMigrate does not express.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Calendar view queries filter events by calendar then sort by start time.
		{"events", "idx_events_calendar_start", "calendar_id, start_at"},

		// Dispatcher scan: pending rows ordered by send_at.
		{"event_notifications", "idx_notifications_pending_send_at", "status, send_at"},

		// Attendee/notification replacement deletes by event id.
		{"event_attendees", "idx_event_attendees_event_id", "event_id"},
		{"event_notifications", "idx_event_notifications_event_id", "event_id"},

		// Household membership lookups.
		{"users", "idx_users_household_id", "household_id"},
		{"calendars", "idx_calendars_household_id", "household_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		fmt.Printf("Created index %s on %s(%s)\n", idx.name, idx.table, idx.columns)
	}

	return nil
}

// MigrateDatabase runs AutoMigrate plus the manual index pass.
func MigrateDatabase(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
