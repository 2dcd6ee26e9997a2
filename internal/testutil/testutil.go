package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/farellandr/travel-maker/config"
	"github.com/farellandr/travel-maker/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const TestPassword = "password123"

// SetupTestDB opens a private in-memory SQLite database with the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// The in-memory database lives as long as one connection holds it.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := config.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() *config.Config {
	return &config.Config{
		DBDriver:      config.DriverSQLite,
		Port:          "8080",
		JWTSecret:     "test-jwt-secret",
		JWTTTLHours:   1,
		PublicBaseURL: "http://travel.test",
	}
}

func Date(s string) datatypes.Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return datatypes.Date(t)
}

func Clock(hour, minute int) datatypes.Time {
	return datatypes.NewTime(hour, minute, 0, 0)
}

func Ptr[T any](v T) *T {
	return &v
}

func CreateTestUser(t *testing.T, db *gorm.DB, nickname string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := &models.User{Nickname: nickname, Password: string(hash), Thumbnail: "https://img.test/" + nickname}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestPlan creates a plan owned by owner, including the owner membership.
func CreateTestPlan(t *testing.T, db *gorm.DB, owner *models.User, name string) *models.Plan {
	t.Helper()

	plan := &models.Plan{
		Name:          name,
		InitLatitude:  35.6812,
		InitLongitude: 139.7671,
		StartDate:     Date("2025-05-01"),
		EndDate:       Date("2025-05-05"),
		CreatedUserID: owner.ID,
	}
	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("Failed to create test plan: %v", err)
	}
	if err := db.Create(&models.UserInPlan{UserID: owner.ID, PlanID: plan.ID, Owner: true}).Error; err != nil {
		t.Fatalf("Failed to create owner membership: %v", err)
	}
	return plan
}

func AddTestMember(t *testing.T, db *gorm.DB, plan *models.Plan, user *models.User) *models.UserInPlan {
	t.Helper()

	membership := &models.UserInPlan{UserID: user.ID, PlanID: plan.ID}
	if err := db.Create(membership).Error; err != nil {
		t.Fatalf("Failed to add test member: %v", err)
	}
	return membership
}

func CreateTestMarker(t *testing.T, db *gorm.DB, plan *models.Plan, creator *models.User, name string) *models.Marker {
	t.Helper()

	marker := &models.Marker{PlanID: plan.ID, Name: &name, CreatedUserID: creator.ID}
	if err := db.Create(marker).Error; err != nil {
		t.Fatalf("Failed to create test marker: %v", err)
	}
	return marker
}

// CreateTestDaySchedule creates a 09:00-18:00 schedule on date (YYYY-MM-DD).
func CreateTestDaySchedule(t *testing.T, db *gorm.DB, plan *models.Plan, date string) *models.DaySchedule {
	t.Helper()

	schedule := &models.DaySchedule{
		PlanID:    plan.ID,
		Date:      Date(date),
		StartTime: Clock(9, 0),
		EndTime:   Clock(18, 0),
	}
	if err := db.Create(schedule).Error; err != nil {
		t.Fatalf("Failed to create test day schedule: %v", err)
	}
	return schedule
}

func CreateTestSlot(t *testing.T, db *gorm.DB, schedule *models.DaySchedule, orderNum int) *models.ScheduleSlot {
	t.Helper()

	name := fmt.Sprintf("slot %d", orderNum)
	slot := &models.ScheduleSlot{
		DayScheduleID: schedule.ID,
		Name:          &name,
		SpendingTime:  Clock(1, 0),
		OrderNum:      orderNum,
	}
	if err := db.Create(slot).Error; err != nil {
		t.Fatalf("Failed to create test slot: %v", err)
	}
	return slot
}

func CastTestVote(t *testing.T, db *gorm.DB, slot *models.ScheduleSlot, marker *models.Marker, user *models.User) *models.SlotVote {
	t.Helper()

	vote := &models.SlotVote{ScheduleSlotID: slot.ID, MarkerID: marker.ID, VotedUserID: user.ID}
	if err := db.Create(vote).Error; err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
	return vote
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
