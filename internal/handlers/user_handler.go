package handlers

import (
	"net/http"

	"github.com/farellandr/travel-maker/internal/helpers"
	"github.com/farellandr/travel-maker/internal/middleware"
	"github.com/farellandr/travel-maker/internal/services"
	"github.com/gin-gonic/gin"
)

func GetUser(c *gin.Context) {
	userID, ok := pathID(c, "user")
	if !ok {
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	user, err := services.GetUser(gormDB, userID)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Error retrieving user.")
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetCurrentUser returns the user the bearer token was issued for.
func GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	user, err := services.GetUser(gormDB, userID)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Error retrieving user.")
		return
	}

	c.JSON(http.StatusOK, user)
}
