package repository

import (
	"time"

	"github.com/hearthplan/household-calendar-api/internal/models"
)

// EventRepository defines the interface for event data access
type EventRepository interface {
	// Create persists a new event
	Create(event *models.Event) error

	// FindByID finds an event by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Event, error)

	// Update saves the event's own columns
	Update(event *models.Event) error

	// Delete removes the event's notifications, attendees, and the
	// event itself, dependents first, in one transaction
	Delete(id uint64) error

	// List retrieves household-scoped events ordered by start time
	List(filter EventFilter) ([]models.Event, error)

	// ReplaceDependents swaps the full attendee and notification sets
	// for an event atomically
	ReplaceDependents(eventID uint64, attendees []models.EventAttendee, notifications []models.EventNotification) error

	// AttendeesByEventID returns the current attendee rows for an event
	AttendeesByEventID(eventID uint64) ([]models.EventAttendee, error)

	// NotificationsByEventID returns the current notification rows for an event
	NotificationsByEventID(eventID uint64) ([]models.EventNotification, error)
}

// EventFilter holds filtering options for the calendar view query
type EventFilter struct {
	HouseholdID uint64
	CalendarIDs []uint64
	Category    string
	Limit       int
}

// CalendarRepository defines the interface for calendar data access
type CalendarRepository interface {
	// Create persists a new calendar
	Create(calendar *models.Calendar) error

	// FindByID finds a calendar by ID
	FindByID(id uint64) (*models.Calendar, error)

	// FindInHousehold finds a calendar only if it belongs to the household
	FindInHousehold(id, householdID uint64) (*models.Calendar, error)

	// ListByHousehold lists a household's calendars, default first then by name
	ListByHousehold(householdID uint64) ([]models.Calendar, error)
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// DuePending selects pending notifications with send_at <= now,
	// ordered ascending by send_at, capped at limit, with user and
	// event context preloaded
	DuePending(now time.Time, limit int) ([]models.EventNotification, error)

	// FindByID finds a notification by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.EventNotification, error)

	// MarkSent flips a notification's status to sent
	MarkSent(id uint64) error
}

// PushSubscriptionRepository defines the interface for push subscription data access
type PushSubscriptionRepository interface {
	// Upsert inserts a subscription or, when the endpoint already
	// exists, overwrites owner, keys, and user agent
	Upsert(sub *models.PushSubscription) error

	// DeleteByUserEndpoint removes the (user, endpoint) subscription;
	// deleting a missing row is not an error
	DeleteByUserEndpoint(userID uint64, endpoint string) error

	// ListByUserID lists a user's subscriptions
	ListByUserID(userID uint64) ([]models.PushSubscription, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithPersonalHousehold creates a user together with their
	// personal household and default calendar in a single transaction
	CreateWithPersonalHousehold(user *models.User, household *models.Household, calendar *models.Calendar) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update saves user columns
	Update(user *models.User) error

	// ListByHousehold lists a household's members ordered by name
	ListByHousehold(householdID uint64) ([]models.User, error)

	// FilterHouseholdMembers returns the subset of userIDs that belong
	// to the household, preserving no particular order
	FilterHouseholdMembers(userIDs []uint64, householdID uint64) ([]uint64, error)
}

// HouseholdRepository defines the interface for household data access
type HouseholdRepository interface {
	// FindByID finds a household by ID
	FindByID(id uint64) (*models.Household, error)

	// FindByInviteCode finds a household by its invite code
	FindByInviteCode(code string) (*models.Household, error)

	// Update saves household columns
	Update(household *models.Household) error
}
