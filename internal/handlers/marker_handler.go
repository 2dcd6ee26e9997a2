package handlers

import (
	"net/http"

	"github.com/farellandr/travel-maker/internal/helpers"
	"github.com/farellandr/travel-maker/internal/services"
	"github.com/gin-gonic/gin"
)

type CreateMarkerRequest struct {
	PlanID      uint    `json:"plan_id" binding:"required"`
	UserID      uint    `json:"user_id" binding:"required"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Thumbnail   *string `json:"thumbnail"`
	URL         *string `json:"url"`
}

func CreateMarker(c *gin.Context) {
	var req CreateMarkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	marker, err := services.CreateMarker(gormDB, services.MarkerCreate{
		PlanID:      req.PlanID,
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		URL:         req.URL,
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to create marker.")
		return
	}

	c.JSON(http.StatusCreated, marker)
}

func ListMarkers(c *gin.Context) {
	planID, ok := queryID(c, "plan_id")
	if !ok {
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	markers, err := services.ListMarkers(gormDB, planID)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Error retrieving markers.")
		return
	}

	c.JSON(http.StatusOK, markers)
}

func GetMarker(c *gin.Context) {
	markerID, ok := pathID(c, "marker")
	if !ok {
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	marker, err := services.GetMarker(gormDB, markerID)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Error retrieving marker.")
		return
	}

	c.JSON(http.StatusOK, marker)
}
