package services

import (
	"testing"
	"time"

	"github.com/hearthplan/household-calendar-api/internal/models"
	"github.com/hearthplan/household-calendar-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apierrors "github.com/hearthplan/household-calendar-api/internal/errors"
)

// EventServiceTestSuite defines the test suite for EventService
type EventServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *EventService

	eventRepo repository.EventRepository

	household      *models.Household
	otherHousehold *models.Household
	creator        *models.User
	member         *models.User
	outsider       *models.User
	calendar       *models.Calendar
	otherCalendar  *models.Calendar
}

// SetupTest runs before each test
func (suite *EventServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.Household{},
		&models.User{},
		&models.Calendar{},
		&models.CalendarMember{},
		&models.Event{},
		&models.EventAttendee{},
		&models.EventNotification{},
	)
	suite.Require().NoError(err)

	suite.eventRepo = repository.NewEventRepository(suite.db)
	suite.service = NewEventService(
		suite.eventRepo,
		repository.NewCalendarRepository(suite.db),
		repository.NewUserRepository(suite.db),
	)

	suite.household = suite.createHousehold("Family")
	suite.otherHousehold = suite.createHousehold("Neighbors")
	suite.creator = suite.createUser("alice@example.com", &suite.household.ID)
	suite.member = suite.createUser("bob@example.com", &suite.household.ID)
	suite.outsider = suite.createUser("mallory@example.com", &suite.otherHousehold.ID)
	suite.calendar = suite.createCalendar("Home", suite.household.ID)
	suite.otherCalendar = suite.createCalendar("Theirs", suite.otherHousehold.ID)
}

// TearDownTest runs after each test
func (suite *EventServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *EventServiceTestSuite) createHousehold(name string) *models.Household {
	household := &models.Household{
		Name:       name,
		InviteCode: name + "_CODE",
	}
	suite.db.Create(household)
	return household
}

func (suite *EventServiceTestSuite) createUser(email string, householdID *uint64) *models.User {
	user := &models.User{
		Name:         email,
		Email:        email,
		PasswordHash: "hashedpassword",
		HouseholdID:  householdID,
	}
	suite.db.Create(user)
	return user
}

func (suite *EventServiceTestSuite) createCalendar(name string, householdID uint64) *models.Calendar {
	calendar := &models.Calendar{
		Name:        name,
		HouseholdID: householdID,
		IsDefault:   true,
	}
	suite.db.Create(calendar)
	return calendar
}

func (suite *EventServiceTestSuite) validInput() EventInput {
	start := time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)
	return EventInput{
		CalendarID: suite.calendar.ID,
		Title:      "Dentist",
		StartAt:    start,
		EndAt:      start.Add(time.Hour),
		Visibility: models.VisibilityHousehold,
	}
}

func (suite *EventServiceTestSuite) attendeeUserIDs(eventID uint64) []uint64 {
	attendees, err := suite.eventRepo.AttendeesByEventID(eventID)
	suite.Require().NoError(err)

	ids := make([]uint64, len(attendees))
	for i, a := range attendees {
		ids[i] = a.UserID
	}
	return ids
}

func (suite *EventServiceTestSuite) TestCreate_AttendeeSetIsFilteredUnionWithCreator() {
	input := suite.validInput()
	input.Attendees = []AttendeeInput{
		{UserID: suite.member.ID},
		{UserID: suite.outsider.ID}, // outside the household, silently dropped
		{UserID: suite.member.ID},   // duplicate
	}

	event, err := suite.service.Create(input, suite.creator)
	suite.Require().NoError(err)

	ids := suite.attendeeUserIDs(event.ID)
	assert.ElementsMatch(suite.T(), []uint64{suite.member.ID, suite.creator.ID}, ids)

	attendees, err := suite.eventRepo.AttendeesByEventID(event.ID)
	suite.Require().NoError(err)
	for _, a := range attendees {
		if a.UserID == suite.creator.ID {
			assert.Equal(suite.T(), models.AttendeeAccepted, a.Status)
		} else {
			assert.Equal(suite.T(), models.AttendeeInvited, a.Status)
		}
	}
}

func (suite *EventServiceTestSuite) TestCreate_DefaultOffsetProducesOneNotificationPerAttendee() {
	input := suite.validInput()
	input.Attendees = []AttendeeInput{{UserID: suite.member.ID}}

	event, err := suite.service.Create(input, suite.creator)
	suite.Require().NoError(err)

	notifications, err := suite.eventRepo.NotificationsByEventID(event.ID)
	suite.Require().NoError(err)
	suite.Require().Len(notifications, 2)

	expected := input.StartAt.Add(-60 * time.Minute)
	for _, n := range notifications {
		assert.Equal(suite.T(), models.NotificationReminder, n.Type)
		assert.Equal(suite.T(), models.NotificationPending, n.Status)
		assert.True(suite.T(), n.SendAt.Equal(expected), "send_at should be start minus 60 minutes")

		payload, err := n.DecodePayload()
		suite.Require().NoError(err)
		assert.Equal(suite.T(), "Dentist", payload.Title)
		assert.Equal(suite.T(), 60, payload.OffsetMinutes)
	}
}

func (suite *EventServiceTestSuite) TestCreate_OffsetPrecedence() {
	override := 15
	eventDefault := 120

	input := suite.validInput()
	input.ReminderOffsetMinutes = &eventDefault
	input.Attendees = []AttendeeInput{
		{UserID: suite.member.ID, ReminderOffsetMinutes: &override},
	}

	event, err := suite.service.Create(input, suite.creator)
	suite.Require().NoError(err)

	notifications, err := suite.eventRepo.NotificationsByEventID(event.ID)
	suite.Require().NoError(err)
	suite.Require().Len(notifications, 2)

	for _, n := range notifications {
		switch n.UserID {
		case suite.member.ID:
			assert.True(suite.T(), n.SendAt.Equal(input.StartAt.Add(-15*time.Minute)))
		case suite.creator.ID:
			// No per-attendee override: the event default wins.
			assert.True(suite.T(), n.SendAt.Equal(input.StartAt.Add(-120*time.Minute)))
		default:
			suite.T().Fatalf("unexpected notification for user %d", n.UserID)
		}
	}
}

func (suite *EventServiceTestSuite) TestCreate_ValidationErrors() {
	input := suite.validInput()
	input.Title = "   "
	input.EndAt = input.StartAt.Add(-time.Minute)
	input.Visibility = "public"

	_, err := suite.service.Create(input, suite.creator)
	suite.Require().Error(err)

	ve, ok := err.(*apierrors.ValidationError)
	suite.Require().True(ok, "expected a ValidationError")
	assert.Contains(suite.T(), ve.Fields, "title")
	assert.Contains(suite.T(), ve.Fields, "end_at")
	assert.Contains(suite.T(), ve.Fields, "visibility")
}

func (suite *EventServiceTestSuite) TestCreate_InvalidRecurrenceRule() {
	input := suite.validInput()
	input.RecurrenceRule = "FREQ=SOMETIMES"

	_, err := suite.service.Create(input, suite.creator)
	suite.Require().Error(err)

	ve, ok := err.(*apierrors.ValidationError)
	suite.Require().True(ok)
	assert.Contains(suite.T(), ve.Fields, "recurrence_rule")

	input.RecurrenceRule = "FREQ=WEEKLY;BYDAY=MO"
	_, err = suite.service.Create(input, suite.creator)
	assert.NoError(suite.T(), err)
}

func (suite *EventServiceTestSuite) TestCreate_CalendarOutsideHousehold() {
	input := suite.validInput()
	input.CalendarID = suite.otherCalendar.ID

	_, err := suite.service.Create(input, suite.creator)
	assert.ErrorIs(suite.T(), err, ErrCalendarNotInHousehold)
}

func (suite *EventServiceTestSuite) TestUpdate_FullReplaceResetsStatusesAndIsIdempotent() {
	input := suite.validInput()
	input.Attendees = []AttendeeInput{{UserID: suite.member.ID}}

	event, err := suite.service.Create(input, suite.creator)
	suite.Require().NoError(err)

	// The member accepts the invitation out of band.
	err = suite.db.Model(&models.EventAttendee{}).
		Where("event_id = ? AND user_id = ?", event.ID, suite.member.ID).
		Update("status", models.AttendeeAccepted).Error
	suite.Require().NoError(err)

	newStart := input.StartAt.Add(24 * time.Hour)
	input.StartAt = newStart
	input.EndAt = newStart.Add(time.Hour)

	for i := 0; i < 2; i++ {
		_, err = suite.service.Update(event.ID, input, suite.creator)
		suite.Require().NoError(err)
	}

	attendees, err := suite.eventRepo.AttendeesByEventID(event.ID)
	suite.Require().NoError(err)
	suite.Require().Len(attendees, 2)
	for _, a := range attendees {
		if a.UserID == suite.member.ID {
			// Replace, not patch: the accepted status is reset.
			assert.Equal(suite.T(), models.AttendeeInvited, a.Status)
		}
	}

	notifications, err := suite.eventRepo.NotificationsByEventID(event.ID)
	suite.Require().NoError(err)
	suite.Require().Len(notifications, 2)
	for _, n := range notifications {
		assert.True(suite.T(), n.SendAt.Equal(newStart.Add(-60*time.Minute)))
		assert.Equal(suite.T(), models.NotificationPending, n.Status)
	}
}

func (suite *EventServiceTestSuite) TestUpdate_CrossHouseholdForbiddenAndUnchanged() {
	input := suite.validInput()
	input.Attendees = []AttendeeInput{{UserID: suite.member.ID}}

	event, err := suite.service.Create(input, suite.creator)
	suite.Require().NoError(err)

	tampered := input
	tampered.Title = "Hijacked"

	_, err = suite.service.Update(event.ID, tampered, suite.outsider)
	assert.ErrorIs(suite.T(), err, ErrCalendarNotInHousehold)

	var reloaded models.Event
	suite.Require().NoError(suite.db.First(&reloaded, event.ID).Error)
	assert.Equal(suite.T(), "Dentist", reloaded.Title)

	attendees, err := suite.eventRepo.AttendeesByEventID(event.ID)
	suite.Require().NoError(err)
	assert.Len(suite.T(), attendees, 2)
}

func (suite *EventServiceTestSuite) TestUpdate_EventNotFound() {
	_, err := suite.service.Update(9999, suite.validInput(), suite.creator)
	assert.ErrorIs(suite.T(), err, ErrEventNotFound)
}

func (suite *EventServiceTestSuite) TestDelete_RemovesAttendeesAndNotifications() {
	input := suite.validInput()
	input.Attendees = []AttendeeInput{{UserID: suite.member.ID}}

	event, err := suite.service.Create(input, suite.creator)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.Delete(event.ID, suite.creator))

	attendees, err := suite.eventRepo.AttendeesByEventID(event.ID)
	suite.Require().NoError(err)
	assert.Empty(suite.T(), attendees)

	notifications, err := suite.eventRepo.NotificationsByEventID(event.ID)
	suite.Require().NoError(err)
	assert.Empty(suite.T(), notifications)

	var count int64
	suite.db.Model(&models.Event{}).Where("id = ?", event.ID).Count(&count)
	assert.Zero(suite.T(), count)
}

func (suite *EventServiceTestSuite) TestDelete_CrossHouseholdForbidden() {
	event, err := suite.service.Create(suite.validInput(), suite.creator)
	suite.Require().NoError(err)

	err = suite.service.Delete(event.ID, suite.outsider)
	assert.ErrorIs(suite.T(), err, ErrCalendarNotInHousehold)
}

func (suite *EventServiceTestSuite) TestCalendarView_FiltersByCalendarAndCategory() {
	second := suite.createCalendar("Work", suite.household.ID)

	input := suite.validInput()
	input.Category = "health"
	_, err := suite.service.Create(input, suite.creator)
	suite.Require().NoError(err)

	workInput := suite.validInput()
	workInput.CalendarID = second.ID
	workInput.Title = "Standup"
	_, err = suite.service.Create(workInput, suite.creator)
	suite.Require().NoError(err)

	view, err := suite.service.CalendarView(suite.creator, []uint64{second.ID}, "")
	suite.Require().NoError(err)
	suite.Require().Len(view.Events, 1)
	assert.Equal(suite.T(), "Standup", view.Events[0].Title)
	assert.Len(suite.T(), view.Calendars, 2)
	assert.Len(suite.T(), view.Members, 2)

	view, err = suite.service.CalendarView(suite.creator, nil, "health")
	suite.Require().NoError(err)
	suite.Require().Len(view.Events, 1)
	assert.Equal(suite.T(), "Dentist", view.Events[0].Title)
}

func TestEventServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EventServiceTestSuite))
}
