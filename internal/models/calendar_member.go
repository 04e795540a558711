package models

import "time"

// CalendarMember links users to calendars with a narrower visibility
// scope. Event authorization runs on the household boundary; this join
// only feeds calendar sharing in the UI.
type CalendarMember struct {
	CalendarID uint64    `gorm:"primarykey" json:"calendar_id"`
	UserID     uint64    `gorm:"primarykey" json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Calendar Calendar `gorm:"foreignKey:CalendarID" json:"calendar,omitempty"`
	User     User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
