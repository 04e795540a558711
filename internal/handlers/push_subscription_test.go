package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hearthplan/household-calendar-api/internal/models"
	"github.com/hearthplan/household-calendar-api/internal/repository"
	"github.com/hearthplan/household-calendar-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// PushSubscriptionHandlerTestSuite defines the test suite for PushSubscriptionHandler
type PushSubscriptionHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *PushSubscriptionHandler

	user *models.User
}

// SetupTest runs before each test
func (suite *PushSubscriptionHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.PushSubscription{})
	suite.Require().NoError(err)

	suite.handler = NewPushSubscriptionHandler(
		services.NewPushSubscriptionService(repository.NewPushSubscriptionRepository(suite.db)),
	)

	gin.SetMode(gin.TestMode)

	suite.user = &models.User{
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: "hashedpassword",
	}
	suite.Require().NoError(suite.db.Create(suite.user).Error)
}

// TearDownTest runs after each test
func (suite *PushSubscriptionHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *PushSubscriptionHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("user_id", userID)

	return c, w
}

// TestRegister_Success tests registering a browser subscription
func (suite *PushSubscriptionHandlerTestSuite) TestRegister_Success() {
	body, _ := json.Marshal(map[string]interface{}{
		"endpoint": "https://push.example.com/a",
		"keys": map[string]string{
			"p256dh": "p256dh-key",
			"auth":   "auth-token",
		},
	})

	c, w := suite.createAuthContext("POST", "/api/push-subscriptions", body, suite.user.ID)
	c.Request.Header.Set("User-Agent", "Firefox")

	suite.handler.Register(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), true, response["ok"])

	var sub models.PushSubscription
	suite.Require().NoError(suite.db.Where("endpoint = ?", "https://push.example.com/a").First(&sub).Error)
	assert.Equal(suite.T(), suite.user.ID, sub.UserID)
	// The User-Agent header fills in when the body omits user_agent
	assert.Equal(suite.T(), "Firefox", sub.UserAgent)
}

// TestRegister_ReplacesExistingEndpoint tests that re-registering updates in place
func (suite *PushSubscriptionHandlerTestSuite) TestRegister_ReplacesExistingEndpoint() {
	for _, key := range []string{"old-key", "new-key"} {
		body, _ := json.Marshal(map[string]interface{}{
			"endpoint": "https://push.example.com/a",
			"keys": map[string]string{
				"p256dh": key,
				"auth":   "auth-token",
			},
		})
		c, w := suite.createAuthContext("POST", "/api/push-subscriptions", body, suite.user.ID)
		suite.handler.Register(c)
		suite.Require().Equal(http.StatusOK, w.Code)
	}

	var count int64
	suite.db.Model(&models.PushSubscription{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)

	var sub models.PushSubscription
	suite.Require().NoError(suite.db.First(&sub).Error)
	assert.Equal(suite.T(), "new-key", sub.PublicKey)
}

// TestRegister_MissingKeys tests registration without the key material
func (suite *PushSubscriptionHandlerTestSuite) TestRegister_MissingKeys() {
	body, _ := json.Marshal(map[string]interface{}{
		"endpoint": "https://push.example.com/a",
	})

	c, w := suite.createAuthContext("POST", "/api/push-subscriptions", body, suite.user.ID)

	suite.handler.Register(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestRegister_Unauthorized tests registration without authentication
func (suite *PushSubscriptionHandlerTestSuite) TestRegister_Unauthorized() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/push-subscriptions", bytes.NewReader([]byte(`{}`)))
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	suite.handler.Register(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestUnregister_Success tests removing a subscription
func (suite *PushSubscriptionHandlerTestSuite) TestUnregister_Success() {
	sub := &models.PushSubscription{
		UserID:    suite.user.ID,
		Endpoint:  "https://push.example.com/a",
		PublicKey: "p256dh-key",
		AuthToken: "auth-token",
	}
	suite.Require().NoError(suite.db.Create(sub).Error)

	body, _ := json.Marshal(map[string]interface{}{
		"endpoint": "https://push.example.com/a",
	})

	c, w := suite.createAuthContext("DELETE", "/api/push-subscriptions", body, suite.user.ID)

	suite.handler.Unregister(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.PushSubscription{}).Count(&count)
	assert.Zero(suite.T(), count)
}

// TestUnregister_MissingRow tests unregistering an endpoint that was never registered
func (suite *PushSubscriptionHandlerTestSuite) TestUnregister_MissingRow() {
	body, _ := json.Marshal(map[string]interface{}{
		"endpoint": "https://push.example.com/never-registered",
	})

	c, w := suite.createAuthContext("DELETE", "/api/push-subscriptions", body, suite.user.ID)

	suite.handler.Unregister(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

// TestSuite runs the test suite
func TestPushSubscriptionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PushSubscriptionHandlerTestSuite))
}
