package repository

import (
	"github.com/hearthplan/household-calendar-api/internal/database"
	"github.com/hearthplan/household-calendar-api/internal/models"
	"gorm.io/gorm"
)

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

// Create persists a new event
func (r *GormEventRepository) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

// FindByID finds an event by ID with optional preloading
func (r *GormEventRepository) FindByID(id uint64, preload ...string) (*models.Event, error) {
	var event models.Event
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&event, id).Error; err != nil {
		return nil, err
	}

	return &event, nil
}

// Update saves the event's own columns
func (r *GormEventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

// Delete removes notifications, then attendees, then the event,
// parent last for referential safety.
func (r *GormEventRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.EventNotification{}).Error; err != nil {
			return err
		}

		if err := tx.Where("event_id = ?", id).Delete(&models.EventAttendee{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Event{}, id).Error
	})
}

// List retrieves household-scoped events ordered by start time
func (r *GormEventRepository) List(filter EventFilter) ([]models.Event, error) {
	var events []models.Event

	query := r.db.Model(&models.Event{}).
		Scopes(database.EventsInHousehold(filter.HouseholdID))

	if len(filter.CalendarIDs) > 0 {
		query = query.Where("events.calendar_id IN ?", filter.CalendarIDs)
	}
	if filter.Category != "" {
		query = query.Where("events.category = ?", filter.Category)
	}

	query = query.Order("events.start_at ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.
		Preload("Calendar").
		Preload("Creator").
		Preload("Attendees").
		Preload("Attendees.User").
		Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

// ReplaceDependents deletes and reinserts the attendee and
// notification sets for an event inside one transaction, so no reader
// observes the event with the sets half-replaced.
func (r *GormEventRepository) ReplaceDependents(eventID uint64, attendees []models.EventAttendee, notifications []models.EventNotification) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&models.EventNotification{}).Error; err != nil {
			return err
		}

		if err := tx.Where("event_id = ?", eventID).Delete(&models.EventAttendee{}).Error; err != nil {
			return err
		}

		if len(attendees) > 0 {
			if err := tx.Create(&attendees).Error; err != nil {
				return err
			}
		}

		if len(notifications) > 0 {
			if err := tx.Create(&notifications).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// AttendeesByEventID returns the current attendee rows for an event
func (r *GormEventRepository) AttendeesByEventID(eventID uint64) ([]models.EventAttendee, error) {
	var attendees []models.EventAttendee
	if err := r.db.Where("event_id = ?", eventID).Find(&attendees).Error; err != nil {
		return nil, err
	}
	return attendees, nil
}

// NotificationsByEventID returns the current notification rows for an event
func (r *GormEventRepository) NotificationsByEventID(eventID uint64) ([]models.EventNotification, error) {
	var notifications []models.EventNotification
	if err := r.db.Where("event_id = ?", eventID).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}
