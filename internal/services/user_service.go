package services

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/farellandr/travel-maker/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserSignup struct {
	Nickname  string
	Password  string
	Thumbnail string
}

// LoginResult is the outcome of a login attempt. A wrong nickname or
// password is reported here with Success false, never as an error.
type LoginResult struct {
	Success bool
	Message string
	User    *models.User
}

func (s UserSignup) validate() error {
	if n := utf8.RuneCountInString(s.Nickname); n < 1 || n > 40 {
		return invalid("Nickname must be 1-40 characters.")
	}
	if n := utf8.RuneCountInString(s.Password); n < 6 || n > 100 {
		return invalid("Password must be 6-100 characters.")
	}
	if utf8.RuneCountInString(s.Thumbnail) > 1024 {
		return invalid("Thumbnail must be at most 1024 characters.")
	}
	return nil
}

func CreateUser(db *gorm.DB, input UserSignup) (*models.User, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var user models.User
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("nickname = ?", input.Nickname).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflict("Nickname is already in use.")
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		user = models.User{
			Nickname:  input.Nickname,
			Password:  string(hashedPassword),
			Thumbnail: input.Thumbnail,
		}
		if err := tx.Create(&user).Error; err != nil {
			if isUniqueViolation(err) {
				return conflict("Nickname is already in use.")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func LoginUser(db *gorm.DB, nickname, password string) (*LoginResult, error) {
	var user models.User
	if err := db.Where("nickname = ?", nickname).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &LoginResult{Success: false, Message: "Invalid nickname or password."}, nil
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return &LoginResult{Success: false, Message: "Invalid nickname or password."}, nil
	}

	return &LoginResult{Success: true, Message: "Login successful.", User: &user}, nil
}

func GetUser(db *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User not found.")
		}
		return nil, err
	}
	return &user, nil
}
