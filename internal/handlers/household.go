package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hearthplan/household-calendar-api/internal/dto"
	apierrors "github.com/hearthplan/household-calendar-api/internal/errors"
	"github.com/hearthplan/household-calendar-api/internal/middleware"
	"github.com/hearthplan/household-calendar-api/internal/models"
	"github.com/hearthplan/household-calendar-api/internal/services"
)

// HouseholdHandler exposes household membership endpoints.
type HouseholdHandler struct {
	householdService *services.HouseholdService
}

// NewHouseholdHandler creates a new HouseholdHandler.
func NewHouseholdHandler(householdService *services.HouseholdService) *HouseholdHandler {
	return &HouseholdHandler{
		householdService: householdService,
	}
}

// Current returns the user's household and member list. The invite
// code is only included for admins.
func (h *HouseholdHandler) Current(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	household, members, err := h.householdService.Current(userID)
	if err != nil {
		respondHouseholdError(c, err)
		return
	}

	isAdmin := false
	memberDTOs := make([]dto.MemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = dto.ToMemberDTO(member)
		if member.ID == userID && member.Role == models.RoleAdmin {
			isAdmin = true
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"household": dto.ToHouseholdDTO(*household, isAdmin),
		"members":   memberDTOs,
	})
}

// Join moves the user into the household matching an invite code.
func (h *HouseholdHandler) Join(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type JoinRequest struct {
		InviteCode string `json:"invite_code" binding:"required"`
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	household, err := h.householdService.JoinByCode(userID, req.InviteCode)
	if err != nil {
		respondHouseholdError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHouseholdDTO(*household, false))
}

// RegenerateInviteCode rotates the household invite code (admin only).
func (h *HouseholdHandler) RegenerateInviteCode(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	householdID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid household ID")
		return
	}

	household, err := h.householdService.RegenerateInviteCode(householdID, userID)
	if err != nil {
		respondHouseholdError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHouseholdDTO(*household, true))
}

func respondHouseholdError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrHouseholdNotFound):
		apierrors.NotFound(c, "Household not found")
	case errors.Is(err, services.ErrInvalidInviteCode):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotHouseholdAdmin):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
