package repository

import (
	"github.com/hearthplan/household-calendar-api/internal/models"
	"gorm.io/gorm"
)

// GormHouseholdRepository is a GORM implementation of HouseholdRepository
type GormHouseholdRepository struct {
	db *gorm.DB
}

// NewHouseholdRepository creates a new HouseholdRepository
func NewHouseholdRepository(db *gorm.DB) HouseholdRepository {
	return &GormHouseholdRepository{db: db}
}

// FindByID finds a household by ID
func (r *GormHouseholdRepository) FindByID(id uint64) (*models.Household, error) {
	var household models.Household
	if err := r.db.First(&household, id).Error; err != nil {
		return nil, err
	}
	return &household, nil
}

// FindByInviteCode finds a household by its invite code
func (r *GormHouseholdRepository) FindByInviteCode(code string) (*models.Household, error) {
	var household models.Household
	if err := r.db.Where("invite_code = ?", code).First(&household).Error; err != nil {
		return nil, err
	}
	return &household, nil
}

// Update saves household columns
func (r *GormHouseholdRepository) Update(household *models.Household) error {
	return r.db.Save(household).Error
}
