package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hearthplan/household-calendar-api/internal/dto"
	apierrors "github.com/hearthplan/household-calendar-api/internal/errors"
	"github.com/hearthplan/household-calendar-api/internal/middleware"
	"github.com/hearthplan/household-calendar-api/internal/models"
	"github.com/hearthplan/household-calendar-api/internal/services"
)

// EventHandler exposes event CRUD and the calendar view.
type EventHandler struct {
	eventService *services.EventService
	authService  *services.AuthService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventService *services.EventService, authService *services.AuthService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		authService:  authService,
	}
}

type attendeeRequest struct {
	UserID                uint64 `json:"user_id"`
	ReminderOffsetMinutes *int   `json:"reminder_offset_minutes"`
}

// eventRequest carries the event body for create and update. Field
// semantics are validated in the service so errors come back per
// field instead of as one binding failure.
type eventRequest struct {
	CalendarID            uint64            `json:"calendar_id"`
	Title                 string            `json:"title"`
	Description           string            `json:"description"`
	Location              string            `json:"location"`
	StartAt               time.Time         `json:"start_at"`
	EndAt                 time.Time         `json:"end_at"`
	IsAllDay              bool              `json:"is_all_day"`
	RecurrenceRule        string            `json:"recurrence_rule"`
	RecurrenceEnd         *time.Time        `json:"recurrence_end"`
	Visibility            string            `json:"visibility"`
	Category              string            `json:"category"`
	Attendees             []attendeeRequest `json:"attendees"`
	ReminderOffsetMinutes *int              `json:"reminder_offset_minutes"`
}

func (r eventRequest) toInput() services.EventInput {
	attendees := make([]services.AttendeeInput, len(r.Attendees))
	for i, a := range r.Attendees {
		attendees[i] = services.AttendeeInput{
			UserID:                a.UserID,
			ReminderOffsetMinutes: a.ReminderOffsetMinutes,
		}
	}

	return services.EventInput{
		CalendarID:            r.CalendarID,
		Title:                 r.Title,
		Description:           r.Description,
		Location:              r.Location,
		StartAt:               r.StartAt,
		EndAt:                 r.EndAt,
		IsAllDay:              r.IsAllDay,
		RecurrenceRule:        r.RecurrenceRule,
		RecurrenceEnd:         r.RecurrenceEnd,
		Visibility:            models.EventVisibility(r.Visibility),
		Category:              r.Category,
		Attendees:             attendees,
		ReminderOffsetMinutes: r.ReminderOffsetMinutes,
	}
}

// CalendarView returns the household's calendars, events, and members.
// Events can be narrowed with repeated `calendars` query params and a
// `category` param.
func (h *EventHandler) CalendarView(c *gin.Context) {
	actor, ok := h.currentUser(c)
	if !ok {
		return
	}

	var calendarIDs []uint64
	for _, raw := range c.QueryArray("calendars") {
		if raw == "" {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid calendar filter")
			return
		}
		calendarIDs = append(calendarIDs, id)
	}
	category := c.Query("category")

	view, err := h.eventService.CalendarView(actor, calendarIDs, category)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCalendarViewResponse(view.Calendars, view.Events, view.Members, dto.CalendarViewFilter{
		Calendars: calendarIDs,
		Category:  category,
	}))
}

// CreateEvent creates an event and regenerates its attendee and
// notification sets.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	actor, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.eventService.Create(req.toInput(), actor)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventDTO(*event))
}

// UpdateEvent replaces the event's fields and dependent sets.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	actor, ok := h.currentUser(c)
	if !ok {
		return
	}

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.eventService.Update(eventID, req.toInput(), actor)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDTO(*event))
}

// DeleteEvent deletes the event with its attendees and notifications.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	actor, ok := h.currentUser(c)
	if !ok {
		return
	}

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	if err := h.eventService.Delete(eventID, actor); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully",
	})
}

// currentUser loads the full user row for the session's user ID.
func (h *EventHandler) currentUser(c *gin.Context) (*models.User, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}

	return user, true
}

func respondEventError(c *gin.Context, err error) {
	var ve *apierrors.ValidationError
	switch {
	case errors.As(err, &ve):
		apierrors.UnprocessableEntity(c, ve)
	case errors.Is(err, services.ErrCalendarNotInHousehold),
		errors.Is(err, services.ErrNoHousehold):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrEventNotFound):
		apierrors.NotFound(c, "Event not found")
	default:
		apierrors.InternalError(c, "")
	}
}
