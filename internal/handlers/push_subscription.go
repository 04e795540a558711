package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/hearthplan/household-calendar-api/internal/errors"
	"github.com/hearthplan/household-calendar-api/internal/middleware"
	"github.com/hearthplan/household-calendar-api/internal/services"
)

// PushSubscriptionHandler manages browser push registrations.
type PushSubscriptionHandler struct {
	subscriptionService *services.PushSubscriptionService
}

// NewPushSubscriptionHandler creates a new PushSubscriptionHandler.
func NewPushSubscriptionHandler(subscriptionService *services.PushSubscriptionService) *PushSubscriptionHandler {
	return &PushSubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

// Register upserts a push subscription for the current user. The body
// mirrors the browser PushSubscription JSON shape.
func (h *PushSubscriptionHandler) Register(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type RegisterRequest struct {
		Endpoint string `json:"endpoint" binding:"required"`
		Keys     struct {
			P256dh string `json:"p256dh" binding:"required"`
			Auth   string `json:"auth" binding:"required"`
		} `json:"keys" binding:"required"`
		UserAgent string `json:"user_agent"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userAgent := req.UserAgent
	if userAgent == "" {
		userAgent = c.GetHeader("User-Agent")
	}

	err := h.subscriptionService.Register(services.RegisterInput{
		Endpoint:  req.Endpoint,
		PublicKey: req.Keys.P256dh,
		AuthToken: req.Keys.Auth,
		UserAgent: userAgent,
	}, userID)
	if err != nil {
		respondSubscriptionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Unregister deletes the current user's subscription for an endpoint.
func (h *PushSubscriptionHandler) Unregister(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UnregisterRequest struct {
		Endpoint string `json:"endpoint" binding:"required"`
	}

	var req UnregisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.subscriptionService.Unregister(req.Endpoint, userID); err != nil {
		respondSubscriptionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func respondSubscriptionError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrSubscriptionInvalid) {
		apierrors.BadRequest(c, err.Error())
		return
	}
	apierrors.InternalError(c, "")
}
