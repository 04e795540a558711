package models

import "time"

type EventVisibility string

const (
	VisibilityHousehold EventVisibility = "household"
	VisibilityAttendees EventVisibility = "attendees"
	VisibilityPrivate   EventVisibility = "private"
)

type Event struct {
	ID          uint64          `gorm:"primarykey" json:"id"`
	CalendarID  uint64          `gorm:"not null;index" json:"calendar_id"`
	CreatorID   uint64          `gorm:"not null;index" json:"creator_id"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Location    string          `gorm:"type:varchar(255)" json:"location"`
	StartAt     time.Time       `gorm:"not null;index" json:"start_at"`
	EndAt       time.Time       `gorm:"not null" json:"end_at"`
	IsAllDay    bool            `gorm:"not null;default:false" json:"is_all_day"`
	// RecurrenceRule holds a raw RRULE string. It is validated on input
	// but not expanded anywhere yet.
	RecurrenceRule string          `gorm:"type:text" json:"recurrence_rule,omitempty"`
	RecurrenceEnd  *time.Time      `json:"recurrence_end,omitempty"`
	Visibility     EventVisibility `gorm:"type:varchar(20);not null;default:'household'" json:"visibility"`
	Category       string          `gorm:"type:varchar(100)" json:"category"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Relations
	Calendar      Calendar            `gorm:"foreignKey:CalendarID" json:"calendar,omitempty"`
	Creator       User                `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Attendees     []EventAttendee     `gorm:"foreignKey:EventID" json:"attendees,omitempty"`
	Notifications []EventNotification `gorm:"foreignKey:EventID" json:"notifications,omitempty"`
}
