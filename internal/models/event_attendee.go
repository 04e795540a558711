package models

import "time"

type AttendeeStatus string

const (
	AttendeeInvited   AttendeeStatus = "invited"
	AttendeeAccepted  AttendeeStatus = "accepted"
	AttendeeTentative AttendeeStatus = "tentative"
)

// EventAttendee rows are never patched in place: the whole set for an
// event is deleted and recreated on every create/update.
type EventAttendee struct {
	ID      uint64         `gorm:"primarykey" json:"id"`
	EventID uint64         `gorm:"not null;index" json:"event_id"`
	UserID  uint64         `gorm:"not null;index" json:"user_id"`
	Status  AttendeeStatus `gorm:"type:varchar(20);not null;default:'invited'" json:"status"`
	// ReminderOffsetMinutes overrides the event-level reminder lead
	// time for this attendee. Nil means no per-attendee override.
	ReminderOffsetMinutes *int      `json:"reminder_offset_minutes"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`

	// Relations
	Event Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
