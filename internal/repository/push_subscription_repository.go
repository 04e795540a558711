package repository

import (
	"github.com/hearthplan/household-calendar-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPushSubscriptionRepository is a GORM implementation of PushSubscriptionRepository
type GormPushSubscriptionRepository struct {
	db *gorm.DB
}

// NewPushSubscriptionRepository creates a new PushSubscriptionRepository
func NewPushSubscriptionRepository(db *gorm.DB) PushSubscriptionRepository {
	return &GormPushSubscriptionRepository{db: db}
}

// Upsert inserts a subscription keyed by endpoint. On conflict the
// owner, keys, and user agent are overwritten: last writer wins, even
// across users.
func (r *GormPushSubscriptionRepository) Upsert(sub *models.PushSubscription) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "public_key", "auth_token", "user_agent", "updated_at"}),
		}).
		Create(sub).Error
}

// DeleteByUserEndpoint removes the (user, endpoint) subscription. A
// missing row deletes zero rows and is not an error.
func (r *GormPushSubscriptionRepository) DeleteByUserEndpoint(userID uint64, endpoint string) error {
	return r.db.Where("user_id = ? AND endpoint = ?", userID, endpoint).
		Delete(&models.PushSubscription{}).Error
}

// ListByUserID lists a user's subscriptions
func (r *GormPushSubscriptionRepository) ListByUserID(userID uint64) ([]models.PushSubscription, error) {
	var subs []models.PushSubscription
	if err := r.db.Where("user_id = ?", userID).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}
