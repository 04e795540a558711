package services

import (
	"errors"
	"fmt"

	"github.com/hearthplan/household-calendar-api/internal/models"
	"github.com/hearthplan/household-calendar-api/internal/repository"
	"github.com/hearthplan/household-calendar-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrHouseholdNotFound = errors.New("household not found")
	ErrInvalidInviteCode = errors.New("invalid invite code")
	ErrNotHouseholdAdmin = errors.New("only household admins can perform this action")
)

// HouseholdService provides household membership operations.
type HouseholdService struct {
	householdRepo repository.HouseholdRepository
	userRepo      repository.UserRepository
}

// NewHouseholdService creates a new HouseholdService.
func NewHouseholdService(householdRepo repository.HouseholdRepository, userRepo repository.UserRepository) *HouseholdService {
	return &HouseholdService{
		householdRepo: householdRepo,
		userRepo:      userRepo,
	}
}

// Current returns the user's household and its members.
func (s *HouseholdService) Current(userID uint64) (*models.Household, []models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.HouseholdID == nil {
		return nil, nil, ErrHouseholdNotFound
	}

	household, err := s.householdRepo.FindByID(*user.HouseholdID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrHouseholdNotFound
		}
		return nil, nil, fmt.Errorf("failed to find household: %w", err)
	}

	members, err := s.userRepo.ListByHousehold(household.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list members: %w", err)
	}

	return household, members, nil
}

// JoinByCode moves the user into the household matching the invite
// code, as a regular member.
func (s *HouseholdService) JoinByCode(userID uint64, code string) (*models.Household, error) {
	household, err := s.householdRepo.FindByInviteCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("failed to look up invite code: %w", err)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.HouseholdID = &household.ID
	user.Role = models.RoleMember

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to join household: %w", err)
	}

	return household, nil
}

// RegenerateInviteCode rotates the household's invite code. Only
// admins of the household may rotate it.
func (s *HouseholdService) RegenerateInviteCode(householdID, actorID uint64) (*models.Household, error) {
	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if actor.HouseholdID == nil || *actor.HouseholdID != householdID {
		return nil, ErrHouseholdNotFound
	}
	if actor.Role != models.RoleAdmin {
		return nil, ErrNotHouseholdAdmin
	}

	household, err := s.householdRepo.FindByID(householdID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHouseholdNotFound
		}
		return nil, fmt.Errorf("failed to find household: %w", err)
	}

	code, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}

	household.InviteCode = code
	if err := s.householdRepo.Update(household); err != nil {
		return nil, fmt.Errorf("failed to save household: %w", err)
	}

	return household, nil
}
