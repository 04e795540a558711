package database

import "gorm.io/gorm"

// EventsInHousehold scopes an event query to calendars owned by one
// household. Every event read goes through this guard rather than
// ad hoc filters.
func EventsInHousehold(householdID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN calendars ON calendars.id = events.calendar_id").
			Where("calendars.household_id = ?", householdID)
	}
}
