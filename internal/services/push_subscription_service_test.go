package services

import (
	"testing"

	"github.com/hearthplan/household-calendar-api/internal/models"
	"github.com/hearthplan/household-calendar-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// PushSubscriptionServiceTestSuite defines the test suite for PushSubscriptionService
type PushSubscriptionServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *PushSubscriptionService

	alice *models.User
	bob   *models.User
}

// SetupTest runs before each test
func (suite *PushSubscriptionServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.PushSubscription{})
	suite.Require().NoError(err)

	suite.service = NewPushSubscriptionService(repository.NewPushSubscriptionRepository(suite.db))

	suite.alice = &models.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hashedpassword"}
	suite.bob = &models.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "hashedpassword"}
	suite.Require().NoError(suite.db.Create(suite.alice).Error)
	suite.Require().NoError(suite.db.Create(suite.bob).Error)
}

// TearDownTest runs after each test
func (suite *PushSubscriptionServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *PushSubscriptionServiceTestSuite) TestRegister_CreatesSubscription() {
	err := suite.service.Register(RegisterInput{
		Endpoint:  "https://push.example.com/a",
		PublicKey: "p256dh-key",
		AuthToken: "auth-token",
		UserAgent: "Firefox",
	}, suite.alice.ID)
	suite.Require().NoError(err)

	var sub models.PushSubscription
	suite.Require().NoError(suite.db.Where("endpoint = ?", "https://push.example.com/a").First(&sub).Error)
	assert.Equal(suite.T(), suite.alice.ID, sub.UserID)
	assert.Equal(suite.T(), "Firefox", sub.UserAgent)
}

func (suite *PushSubscriptionServiceTestSuite) TestRegister_LastWriterWinsAcrossUsers() {
	endpoint := "https://push.example.com/shared-browser"

	err := suite.service.Register(RegisterInput{
		Endpoint:  endpoint,
		PublicKey: "alice-key",
		AuthToken: "alice-auth",
	}, suite.alice.ID)
	suite.Require().NoError(err)

	err = suite.service.Register(RegisterInput{
		Endpoint:  endpoint,
		PublicKey: "bob-key",
		AuthToken: "bob-auth",
	}, suite.bob.ID)
	suite.Require().NoError(err)

	var count int64
	suite.db.Model(&models.PushSubscription{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)

	var sub models.PushSubscription
	suite.Require().NoError(suite.db.Where("endpoint = ?", endpoint).First(&sub).Error)
	assert.Equal(suite.T(), suite.bob.ID, sub.UserID)
	assert.Equal(suite.T(), "bob-key", sub.PublicKey)
	assert.Equal(suite.T(), "bob-auth", sub.AuthToken)
}

func (suite *PushSubscriptionServiceTestSuite) TestRegister_RejectsIncompletePayload() {
	err := suite.service.Register(RegisterInput{Endpoint: "https://push.example.com/a"}, suite.alice.ID)
	assert.ErrorIs(suite.T(), err, ErrSubscriptionInvalid)
}

func (suite *PushSubscriptionServiceTestSuite) TestUnregister_RemovesOwnSubscriptionOnly() {
	endpoint := "https://push.example.com/a"
	err := suite.service.Register(RegisterInput{
		Endpoint:  endpoint,
		PublicKey: "alice-key",
		AuthToken: "alice-auth",
	}, suite.alice.ID)
	suite.Require().NoError(err)

	// Bob unregistering Alice's endpoint must not touch her row.
	suite.Require().NoError(suite.service.Unregister(endpoint, suite.bob.ID))

	var count int64
	suite.db.Model(&models.PushSubscription{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)

	suite.Require().NoError(suite.service.Unregister(endpoint, suite.alice.ID))
	suite.db.Model(&models.PushSubscription{}).Count(&count)
	assert.Zero(suite.T(), count)
}

func (suite *PushSubscriptionServiceTestSuite) TestUnregister_MissingRowIsNoOp() {
	err := suite.service.Unregister("https://push.example.com/never-registered", suite.alice.ID)
	assert.NoError(suite.T(), err)
}

func TestPushSubscriptionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PushSubscriptionServiceTestSuite))
}
