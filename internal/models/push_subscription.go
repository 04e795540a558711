package models

import "time"

// PushSubscription stores one browser push registration. The endpoint
// is the upsert key: re-registering an endpoint overwrites the owner
// and keys, last writer wins.
type PushSubscription struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	Endpoint  string    `gorm:"type:varchar(512);uniqueIndex;not null" json:"endpoint"`
	PublicKey string    `gorm:"type:varchar(255);not null" json:"public_key"`
	AuthToken string    `gorm:"type:varchar(255);not null" json:"auth_token"`
	UserAgent string    `gorm:"type:varchar(255)" json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
