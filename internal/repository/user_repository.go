package repository

import (
	"errors"
	"fmt"

	"github.com/hearthplan/household-calendar-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating a user fails inside the signup transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateHousehold is returned when creating a household fails inside the signup transaction.
	ErrCreateHousehold = errors.New("user repository: create household failed")
	// ErrCreateCalendar is returned when creating the default calendar fails inside the signup transaction.
	ErrCreateCalendar = errors.New("user repository: create default calendar failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateWithPersonalHousehold creates a household, the user inside it,
// and the household's default calendar atomically.
func (r *GormUserRepository) CreateWithPersonalHousehold(user *models.User, household *models.Household, calendar *models.Calendar) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(household).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateHousehold, err)
		}

		user.HouseholdID = &household.ID
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		calendar.HouseholdID = household.ID
		calendar.OwnerID = &user.ID
		if err := tx.Create(calendar).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateCalendar, err)
		}

		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update saves user columns
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// ListByHousehold lists a household's members ordered by name
func (r *GormUserRepository) ListByHousehold(householdID uint64) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("household_id = ?", householdID).
		Order("name ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FilterHouseholdMembers returns the subset of userIDs belonging to
// the household. IDs outside the household are simply absent from the
// result, not an error.
func (r *GormUserRepository) FilterHouseholdMembers(userIDs []uint64, householdID uint64) ([]uint64, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var ids []uint64
	if err := r.db.Model(&models.User{}).
		Where("household_id = ? AND id IN ?", householdID, userIDs).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
