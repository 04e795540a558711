package models

import "time"

type Household struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	InviteCode string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"invite_code,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Users     []User     `gorm:"foreignKey:HouseholdID" json:"users,omitempty"`
	Calendars []Calendar `gorm:"foreignKey:HouseholdID" json:"calendars,omitempty"`
}
