package dto

import (
	"time"

	"github.com/hearthplan/household-calendar-api/internal/models"
)

// CalendarDTO represents a calendar in API responses
type CalendarDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	IsDefault bool   `json:"is_default"`
}

// AttendeeDTO represents an event attendee in API responses
type AttendeeDTO struct {
	UserID                uint64                `json:"user_id"`
	Status                models.AttendeeStatus `json:"status"`
	ReminderOffsetMinutes *int                  `json:"reminder_offset_minutes"`
	User                  *MemberDTO            `json:"user,omitempty"`
}

// EventDTO represents an event in API responses
type EventDTO struct {
	ID          uint64                 `json:"id"`
	CalendarID  uint64                 `json:"calendar_id"`
	CreatorID   uint64                 `json:"creator_id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Location    string                 `json:"location,omitempty"`
	StartAt     time.Time              `json:"start_at"`
	EndAt       time.Time              `json:"end_at"`
	IsAllDay    bool                   `json:"is_all_day"`
	Visibility  models.EventVisibility `json:"visibility"`
	Category    string                 `json:"category,omitempty"`
	Calendar    *CalendarDTO           `json:"calendar,omitempty"`
	Creator     *MemberDTO             `json:"creator,omitempty"`
	Attendees   []AttendeeDTO          `json:"attendees,omitempty"`
}

// CalendarViewResponse is the payload of GET /api/calendar
type CalendarViewResponse struct {
	Calendars []CalendarDTO      `json:"calendars"`
	Events    []EventDTO         `json:"events"`
	Members   []MemberDTO        `json:"members"`
	Filters   CalendarViewFilter `json:"filters"`
}

// CalendarViewFilter echoes the applied query filters
type CalendarViewFilter struct {
	Calendars []uint64 `json:"calendars"`
	Category  string   `json:"category"`
}

// HouseholdDTO represents a household in API responses
type HouseholdDTO struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	InviteCode string `json:"invite_code,omitempty"`
}

// ToCalendarDTO converts a Calendar model to CalendarDTO
func ToCalendarDTO(calendar models.Calendar) CalendarDTO {
	return CalendarDTO{
		ID:        calendar.ID,
		Name:      calendar.Name,
		Color:     calendar.Color,
		IsDefault: calendar.IsDefault,
	}
}

// ToEventDTO converts an Event model to EventDTO
func ToEventDTO(event models.Event) EventDTO {
	dto := EventDTO{
		ID:          event.ID,
		CalendarID:  event.CalendarID,
		CreatorID:   event.CreatorID,
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		StartAt:     event.StartAt,
		EndAt:       event.EndAt,
		IsAllDay:    event.IsAllDay,
		Visibility:  event.Visibility,
		Category:    event.Category,
	}

	// Include calendar if preloaded
	if event.Calendar.ID != 0 {
		calendar := ToCalendarDTO(event.Calendar)
		dto.Calendar = &calendar
	}

	// Include creator if preloaded
	if event.Creator.ID != 0 {
		creator := ToMemberDTO(event.Creator)
		dto.Creator = &creator
	}

	// Include attendees if preloaded
	if len(event.Attendees) > 0 {
		dto.Attendees = make([]AttendeeDTO, len(event.Attendees))
		for i, attendee := range event.Attendees {
			a := AttendeeDTO{
				UserID:                attendee.UserID,
				Status:                attendee.Status,
				ReminderOffsetMinutes: attendee.ReminderOffsetMinutes,
			}
			if attendee.User.ID != 0 {
				user := ToMemberDTO(attendee.User)
				a.User = &user
			}
			dto.Attendees[i] = a
		}
	}

	return dto
}

// ToHouseholdDTO converts a Household model to HouseholdDTO
func ToHouseholdDTO(household models.Household, includeInviteCode bool) HouseholdDTO {
	dto := HouseholdDTO{
		ID:   household.ID,
		Name: household.Name,
	}
	if includeInviteCode {
		dto.InviteCode = household.InviteCode
	}
	return dto
}

// ToCalendarViewResponse assembles the calendar page payload
func ToCalendarViewResponse(calendars []models.Calendar, events []models.Event, members []models.User, filter CalendarViewFilter) CalendarViewResponse {
	resp := CalendarViewResponse{
		Calendars: make([]CalendarDTO, len(calendars)),
		Events:    make([]EventDTO, len(events)),
		Members:   make([]MemberDTO, len(members)),
		Filters:   filter,
	}
	for i, calendar := range calendars {
		resp.Calendars[i] = ToCalendarDTO(calendar)
	}
	for i, event := range events {
		resp.Events[i] = ToEventDTO(event)
	}
	for i, member := range members {
		resp.Members[i] = ToMemberDTO(member)
	}
	return resp
}
