package models

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	HouseholdID  *uint64   `gorm:"index" json:"household_id"`
	Role         UserRole  `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	AvatarColor  string    `gorm:"type:varchar(16)" json:"avatar_color"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Household     *Household         `gorm:"foreignKey:HouseholdID" json:"household,omitempty"`
	CreatedEvents []Event            `gorm:"foreignKey:CreatorID" json:"-"`
	Attendances   []EventAttendee    `gorm:"foreignKey:UserID" json:"-"`
	Subscriptions []PushSubscription `gorm:"foreignKey:UserID" json:"-"`
}
