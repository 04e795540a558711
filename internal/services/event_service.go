package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hearthplan/household-calendar-api/internal/constants"
	apierrors "github.com/hearthplan/household-calendar-api/internal/errors"
	"github.com/hearthplan/household-calendar-api/internal/models"
	"github.com/hearthplan/household-calendar-api/internal/repository"
	"github.com/teambition/rrule-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound          = errors.New("event not found")
	ErrCalendarNotInHousehold = errors.New("calendar does not belong to your household")
	ErrNoHousehold            = errors.New("user does not belong to a household")
)

// EventService owns event CRUD together with the full regeneration of
// attendee and notification rows on every create/update.
type EventService struct {
	eventRepo    repository.EventRepository
	calendarRepo repository.CalendarRepository
	userRepo     repository.UserRepository
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.EventRepository, calendarRepo repository.CalendarRepository, userRepo repository.UserRepository) *EventService {
	return &EventService{
		eventRepo:    eventRepo,
		calendarRepo: calendarRepo,
		userRepo:     userRepo,
	}
}

// AttendeeInput is one requested attendee with an optional reminder override.
type AttendeeInput struct {
	UserID                uint64
	ReminderOffsetMinutes *int
}

// EventInput carries the full event payload for create and update.
// Updates are not partial: the input replaces the event's fields and
// both dependent sets.
type EventInput struct {
	CalendarID            uint64
	Title                 string
	Description           string
	Location              string
	StartAt               time.Time
	EndAt                 time.Time
	IsAllDay              bool
	RecurrenceRule        string
	RecurrenceEnd         *time.Time
	Visibility            models.EventVisibility
	Category              string
	Attendees             []AttendeeInput
	ReminderOffsetMinutes *int
}

// CalendarView bundles what the calendar page needs in one response.
type CalendarView struct {
	Calendars []models.Calendar
	Events    []models.Event
	Members   []models.User
}

// eventPreloads are the relations reloaded after a mutation.
var eventPreloads = []string{"Calendar", "Creator", "Attendees", "Attendees.User"}

// Create validates the input, checks the calendar against the actor's
// household, persists the event, and regenerates both dependent sets.
func (s *EventService) Create(input EventInput, actor *models.User) (*models.Event, error) {
	if ve := validateEventInput(input); ve.HasErrors() {
		return nil, ve
	}

	householdID, err := s.requireHousehold(actor)
	if err != nil {
		return nil, err
	}

	if err := s.ensureHouseholdOwnsCalendar(input.CalendarID, householdID); err != nil {
		return nil, err
	}

	attendeeIDs, err := s.allowedAttendeeIDs(input.Attendees, householdID)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		CalendarID:     input.CalendarID,
		CreatorID:      actor.ID,
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Location:       input.Location,
		StartAt:        input.StartAt,
		EndAt:          input.EndAt,
		IsAllDay:       input.IsAllDay,
		RecurrenceRule: input.RecurrenceRule,
		RecurrenceEnd:  input.RecurrenceEnd,
		Visibility:     input.Visibility,
		Category:       input.Category,
	}

	if err := s.eventRepo.Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if err := s.regenerateDependents(event, attendeeIDs, input); err != nil {
		return nil, err
	}

	return s.eventRepo.FindByID(event.ID, eventPreloads...)
}

// Update applies the same authorization and validation as Create, then
// overwrites the event's fields and fully replaces attendees and
// notifications from the new input. Any attendee who had accepted or
// gone tentative is reset to invited, creator excepted; that reset is
// part of the contract, not an accident.
func (s *EventService) Update(eventID uint64, input EventInput, actor *models.User) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	householdID, err := s.requireHousehold(actor)
	if err != nil {
		return nil, err
	}

	if err := s.ensureHouseholdOwnsCalendar(event.CalendarID, householdID); err != nil {
		return nil, err
	}

	if ve := validateEventInput(input); ve.HasErrors() {
		return nil, ve
	}

	if err := s.ensureHouseholdOwnsCalendar(input.CalendarID, householdID); err != nil {
		return nil, err
	}

	attendeeIDs, err := s.allowedAttendeeIDs(input.Attendees, householdID)
	if err != nil {
		return nil, err
	}

	event.CalendarID = input.CalendarID
	event.Title = strings.TrimSpace(input.Title)
	event.Description = input.Description
	event.Location = input.Location
	event.StartAt = input.StartAt
	event.EndAt = input.EndAt
	event.IsAllDay = input.IsAllDay
	event.RecurrenceRule = input.RecurrenceRule
	event.RecurrenceEnd = input.RecurrenceEnd
	event.Visibility = input.Visibility
	event.Category = input.Category

	if err := s.eventRepo.Update(event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	if err := s.regenerateDependents(event, attendeeIDs, input); err != nil {
		return nil, err
	}

	return s.eventRepo.FindByID(event.ID, eventPreloads...)
}

// Delete removes the event and both dependent sets after the same
// household check. Notifications are purged with the event rather than
// orphaned with a null event id.
func (s *EventService) Delete(eventID uint64, actor *models.User) error {
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to find event: %w", err)
	}

	householdID, err := s.requireHousehold(actor)
	if err != nil {
		return err
	}

	if err := s.ensureHouseholdOwnsCalendar(event.CalendarID, householdID); err != nil {
		return err
	}

	if err := s.eventRepo.Delete(event.ID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}

// CalendarView returns the household's calendars, filtered events, and
// members for the calendar page.
func (s *EventService) CalendarView(actor *models.User, calendarIDs []uint64, category string) (*CalendarView, error) {
	householdID, err := s.requireHousehold(actor)
	if err != nil {
		return nil, err
	}

	calendars, err := s.calendarRepo.ListByHousehold(householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	events, err := s.eventRepo.List(repository.EventFilter{
		HouseholdID: householdID,
		CalendarIDs: calendarIDs,
		Category:    category,
		Limit:       constants.EventListLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	members, err := s.userRepo.ListByHousehold(householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list household members: %w", err)
	}

	return &CalendarView{
		Calendars: calendars,
		Events:    events,
		Members:   members,
	}, nil
}

// requireHousehold resolves the actor's household; actors without one
// cannot touch any calendar.
func (s *EventService) requireHousehold(actor *models.User) (uint64, error) {
	if actor == nil || actor.HouseholdID == nil {
		return 0, ErrNoHousehold
	}
	return *actor.HouseholdID, nil
}

// ensureHouseholdOwnsCalendar is the single authorization guard in
// front of every event read and write.
func (s *EventService) ensureHouseholdOwnsCalendar(calendarID, householdID uint64) error {
	_, err := s.calendarRepo.FindInHousehold(calendarID, householdID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCalendarNotInHousehold
		}
		return fmt.Errorf("failed to verify calendar ownership: %w", err)
	}
	return nil
}

// allowedAttendeeIDs narrows the requested attendees to household
// members. IDs outside the household are dropped silently; the
// contract is filter, not fail.
func (s *EventService) allowedAttendeeIDs(attendees []AttendeeInput, householdID uint64) ([]uint64, error) {
	if len(attendees) == 0 {
		return nil, nil
	}

	requested := make([]uint64, 0, len(attendees))
	for _, a := range attendees {
		requested = append(requested, a.UserID)
	}

	allowed, err := s.userRepo.FilterHouseholdMembers(uniqueUint64(requested), householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify attendees: %w", err)
	}
	return allowed, nil
}

// regenerateDependents builds the replacement attendee and
// notification sets and swaps them in atomically.
func (s *EventService) regenerateDependents(event *models.Event, allowedAttendeeIDs []uint64, input EventInput) error {
	attendees, notifications, err := buildDependents(event, allowedAttendeeIDs, input)
	if err != nil {
		return err
	}

	if err := s.eventRepo.ReplaceDependents(event.ID, attendees, notifications); err != nil {
		return fmt.Errorf("failed to replace event dependents: %w", err)
	}
	return nil
}

// buildDependents computes one attendee row and one reminder
// notification per member of (allowed attendees ∪ creator). The
// attendee row stores the override-else-event-default offset (possibly
// nil); the notification resolves the effective offset with the final
// 60-minute fallback and snapshots the payload.
func buildDependents(event *models.Event, allowedAttendeeIDs []uint64, input EventInput) ([]models.EventAttendee, []models.EventNotification, error) {
	ids := uniqueUint64(append(append([]uint64{}, allowedAttendeeIDs...), event.CreatorID))

	overrides := make(map[uint64]*int, len(input.Attendees))
	for _, a := range input.Attendees {
		overrides[a.UserID] = a.ReminderOffsetMinutes
	}

	attendees := make([]models.EventAttendee, 0, len(ids))
	notifications := make([]models.EventNotification, 0, len(ids))

	for _, id := range ids {
		status := models.AttendeeInvited
		if id == event.CreatorID {
			status = models.AttendeeAccepted
		}

		rowOffset := input.ReminderOffsetMinutes
		if ov, ok := overrides[id]; ok && ov != nil {
			rowOffset = ov
		}

		attendees = append(attendees, models.EventAttendee{
			EventID:               event.ID,
			UserID:                id,
			Status:                status,
			ReminderOffsetMinutes: rowOffset,
		})

		effective := constants.DefaultReminderOffsetMinutes
		if rowOffset != nil {
			effective = *rowOffset
		}

		payload, err := json.Marshal(models.ReminderPayload{
			Title:         event.Title,
			StartAt:       event.StartAt,
			OffsetMinutes: effective,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode reminder payload: %w", err)
		}

		eventID := event.ID
		notifications = append(notifications, models.EventNotification{
			UserID:  id,
			EventID: &eventID,
			Type:    models.NotificationReminder,
			SendAt:  event.StartAt.Add(-time.Duration(effective) * time.Minute),
			Status:  models.NotificationPending,
			Payload: datatypes.JSON(payload),
		})
	}

	return attendees, notifications, nil
}

// validateEventInput collects per-field messages for the whole payload
// instead of failing on the first problem.
func validateEventInput(input EventInput) *apierrors.ValidationError {
	ve := apierrors.NewValidationError()

	if input.CalendarID == 0 {
		ve.Add("calendar_id", "Calendar is required")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		ve.Add("title", "Title is required")
	} else if len(title) > constants.MaxTitleLength {
		ve.Add("title", fmt.Sprintf("Title must be at most %d characters", constants.MaxTitleLength))
	}

	if len(input.Location) > constants.MaxLocationLength {
		ve.Add("location", fmt.Sprintf("Location must be at most %d characters", constants.MaxLocationLength))
	}
	if len(input.Category) > constants.MaxCategoryLength {
		ve.Add("category", fmt.Sprintf("Category must be at most %d characters", constants.MaxCategoryLength))
	}

	if input.StartAt.IsZero() {
		ve.Add("start_at", "Start time is required")
	}
	if input.EndAt.IsZero() {
		ve.Add("end_at", "End time is required")
	} else if !input.StartAt.IsZero() && input.EndAt.Before(input.StartAt) {
		ve.Add("end_at", "End time must not be before the start time")
	}

	switch input.Visibility {
	case models.VisibilityHousehold, models.VisibilityAttendees, models.VisibilityPrivate:
	default:
		ve.Add("visibility", "Visibility must be one of household, attendees, private")
	}

	if input.RecurrenceRule != "" {
		if _, err := rrule.StrToRRule(input.RecurrenceRule); err != nil {
			ve.Add("recurrence_rule", "Recurrence rule is not a valid RRULE")
		}
	}

	return ve
}

// uniqueUint64 removes duplicate values while preserving order.
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
