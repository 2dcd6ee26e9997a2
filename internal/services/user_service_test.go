package services

import (
	"strings"
	"testing"

	"github.com/farellandr/travel-maker/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	db := testutil.SetupTestDB(t)

	user, err := CreateUser(db, UserSignup{Nickname: "traveler", Password: "secret1", Thumbnail: "https://img.test/t.png"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID == 0 || user.Password == "secret1" {
		t.Errorf("Expected stored user with hashed password, got %+v", user)
	}

	tests := []struct {
		name  string
		input UserSignup
		kind  error
	}{
		{"duplicate nickname", UserSignup{Nickname: "traveler", Password: "secret1"}, ErrConflict},
		{"empty nickname", UserSignup{Nickname: "", Password: "secret1"}, ErrValidation},
		{"long nickname", UserSignup{Nickname: strings.Repeat("n", 41), Password: "secret1"}, ErrValidation},
		{"short password", UserSignup{Nickname: "other", Password: "12345"}, ErrValidation},
		{"long password", UserSignup{Nickname: "other", Password: strings.Repeat("p", 101)}, ErrValidation},
		{"long thumbnail", UserSignup{Nickname: "other", Password: "secret1", Thumbnail: strings.Repeat("t", 1025)}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateUser(db, tt.input)
			assertKind(t, err, tt.kind)
		})
	}
}

func TestLoginUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db, "traveler")

	tests := []struct {
		name     string
		nickname string
		password string
		success  bool
	}{
		{"valid credentials", "traveler", testutil.TestPassword, true},
		{"wrong password", "traveler", "wrong-password", false},
		{"unknown nickname", "nobody", testutil.TestPassword, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := LoginUser(db, tt.nickname, tt.password)
			if err != nil {
				t.Fatalf("LoginUser returned error: %v", err)
			}
			if result.Success != tt.success {
				t.Errorf("Expected success=%v, got %v (%s)", tt.success, result.Success, result.Message)
			}
			if tt.success && (result.User == nil || result.User.ID != user.ID) {
				t.Errorf("Expected logged in user %d, got %+v", user.ID, result.User)
			}
			if !tt.success && result.User != nil {
				t.Errorf("Expected no user on failed login")
			}
		})
	}
}
