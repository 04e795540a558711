package repository

import (
	"time"

	"github.com/hearthplan/household-calendar-api/internal/models"
	"gorm.io/gorm"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

// DuePending selects pending notifications that are due, oldest first,
// with the user and event context the delivery worker needs.
func (r *GormNotificationRepository) DuePending(now time.Time, limit int) ([]models.EventNotification, error) {
	var notifications []models.EventNotification
	if err := r.db.
		Preload("User").
		Preload("Event").
		Where("status = ? AND send_at <= ?", models.NotificationPending, now).
		Order("send_at ASC").
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// FindByID finds a notification by ID with optional preloading
func (r *GormNotificationRepository) FindByID(id uint64, preload ...string) (*models.EventNotification, error) {
	var notification models.EventNotification
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&notification, id).Error; err != nil {
		return nil, err
	}

	return &notification, nil
}

// MarkSent flips a notification's status to sent
func (r *GormNotificationRepository) MarkSent(id uint64) error {
	return r.db.Model(&models.EventNotification{}).
		Where("id = ?", id).
		Update("status", models.NotificationSent).Error
}
