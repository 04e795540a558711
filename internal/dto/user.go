package dto

import "github.com/hearthplan/household-calendar-api/internal/models"

// UserDTO represents the authenticated user in API responses
type UserDTO struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Role        models.UserRole `json:"role"`
	HouseholdID *uint64         `json:"household_id"`
	AvatarColor string          `json:"avatar_color"`
}

// MemberDTO is the trimmed-down member shape the calendar view embeds
type MemberDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	AvatarColor string `json:"avatar_color"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		HouseholdID: user.HouseholdID,
		AvatarColor: user.AvatarColor,
	}
}

// ToMemberDTO converts a User model to MemberDTO
func ToMemberDTO(user models.User) MemberDTO {
	return MemberDTO{
		ID:          user.ID,
		Name:        user.Name,
		AvatarColor: user.AvatarColor,
	}
}
