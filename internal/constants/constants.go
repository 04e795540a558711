package constants

// Session / context keys
const (
	ContextKeyUserID  = "user_id"
	SessionCookieName = "calendar_session"
)

// Validation limits
const (
	MinPasswordLength = 8
	MaxTitleLength    = 255
	MaxLocationLength = 255
	MaxCategoryLength = 100
)

// Reminder scheduling
const (
	// DefaultReminderOffsetMinutes is applied when neither the attendee
	// nor the event carries an explicit reminder offset.
	DefaultReminderOffsetMinutes = 60

	// DispatchBatchSize caps how many due notifications one dispatcher
	// run picks up.
	DispatchBatchSize = 50
)

// EventListLimit caps the calendar view query.
const EventListLimit = 200

// CalendarURL is the click-through target embedded in push messages.
const CalendarURL = "/calendar"
