package models

import "time"

type Calendar struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	HouseholdID     uint64    `gorm:"not null;index" json:"household_id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Color           string    `gorm:"type:varchar(16)" json:"color"`
	VisibilityScope string    `gorm:"type:varchar(20);not null;default:'household'" json:"visibility_scope"`
	OwnerID         *uint64   `json:"owner_id"`
	IsDefault       bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	Household Household        `gorm:"foreignKey:HouseholdID" json:"household,omitempty"`
	Owner     *User            `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members   []CalendarMember `gorm:"foreignKey:CalendarID" json:"members,omitempty"`
	Events    []Event          `gorm:"foreignKey:CalendarID" json:"events,omitempty"`
}
