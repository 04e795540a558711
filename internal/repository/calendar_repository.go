package repository

import (
	"github.com/hearthplan/household-calendar-api/internal/models"
	"gorm.io/gorm"
)

// GormCalendarRepository is a GORM implementation of CalendarRepository
type GormCalendarRepository struct {
	db *gorm.DB
}

// NewCalendarRepository creates a new CalendarRepository
func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &GormCalendarRepository{db: db}
}

// Create persists a new calendar
func (r *GormCalendarRepository) Create(calendar *models.Calendar) error {
	return r.db.Create(calendar).Error
}

// FindByID finds a calendar by ID
func (r *GormCalendarRepository) FindByID(id uint64) (*models.Calendar, error) {
	var calendar models.Calendar
	if err := r.db.First(&calendar, id).Error; err != nil {
		return nil, err
	}
	return &calendar, nil
}

// FindInHousehold finds a calendar only if it belongs to the household
func (r *GormCalendarRepository) FindInHousehold(id, householdID uint64) (*models.Calendar, error) {
	var calendar models.Calendar
	if err := r.db.Where("id = ? AND household_id = ?", id, householdID).
		First(&calendar).Error; err != nil {
		return nil, err
	}
	return &calendar, nil
}

// ListByHousehold lists a household's calendars, default first then by name
func (r *GormCalendarRepository) ListByHousehold(householdID uint64) ([]models.Calendar, error) {
	var calendars []models.Calendar
	if err := r.db.Where("household_id = ?", householdID).
		Order("is_default DESC, name ASC").
		Find(&calendars).Error; err != nil {
		return nil, err
	}
	return calendars, nil
}
