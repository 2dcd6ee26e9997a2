package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/farellandr/travel-maker/internal/helpers"
	"github.com/farellandr/travel-maker/internal/models"
	"github.com/farellandr/travel-maker/internal/services"
	"github.com/gin-gonic/gin"
)

type SignupRequest struct {
	Nickname  string `json:"nickname" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Thumbnail string `json:"thumbnail"`
}

type LoginRequest struct {
	Nickname string `json:"nickname" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *models.User `json:"user,omitempty"`
	Token   string       `json:"token,omitempty"`
}

func Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	user, err := services.CreateUser(gormDB, services.UserSignup{
		Nickname:  req.Nickname,
		Password:  req.Password,
		Thumbnail: req.Thumbnail,
	})
	if err != nil {
		// A taken nickname is reported as a bad request on this route.
		if errors.Is(err, services.ErrConflict) {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		helpers.RespondWithServiceError(c, err, "Failed to create user.")
		return
	}

	c.JSON(http.StatusCreated, user)
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	result, err := services.LoginUser(gormDB, req.Nickname, req.Password)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to log in.")
		return
	}

	resp := LoginResponse{
		Success: result.Success,
		Message: result.Message,
		User:    result.User,
	}

	cfg := settings(c)
	if result.Success && cfg.JWTSecret != "" {
		token, err := helpers.GenerateToken(result.User.ID, cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
		if err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
			return
		}
		resp.Token = token
	}

	c.JSON(http.StatusOK, resp)
}
