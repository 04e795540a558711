package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationReminder NotificationType = "reminder"
	NotificationChange   NotificationType = "change"
	NotificationCancel   NotificationType = "cancel"
	NotificationDigest   NotificationType = "digest"
)

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
)

// ReminderPayload is the denormalized snapshot stored on each
// notification at creation time, so delivery never re-joins the event.
type ReminderPayload struct {
	Title         string    `json:"title"`
	StartAt       time.Time `json:"start_at"`
	OffsetMinutes int       `json:"offset_minutes"`
}

// EventNotification rows are regenerated wholesale together with the
// attendee set; send_at is always derived, never user input.
type EventNotification struct {
	ID     uint64 `gorm:"primarykey" json:"id"`
	UserID uint64 `gorm:"not null;index:idx_notifications_due,priority:1" json:"user_id"`
	// EventID is nullable to match the null-on-delete schema, although
	// event deletion purges notifications outright.
	EventID   *uint64            `gorm:"index" json:"event_id"`
	Type      NotificationType   `gorm:"type:varchar(20);not null" json:"type"`
	SendAt    time.Time          `gorm:"not null;index:idx_notifications_due,priority:3" json:"send_at"`
	Status    NotificationStatus `gorm:"type:varchar(20);not null;default:'pending';index:idx_notifications_due,priority:2" json:"status"`
	Payload   datatypes.JSON     `json:"payload"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`

	// Relations
	User  User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// DecodePayload unmarshals the stored payload snapshot.
func (n *EventNotification) DecodePayload() (ReminderPayload, error) {
	var p ReminderPayload
	err := json.Unmarshal(n.Payload, &p)
	return p, err
}
