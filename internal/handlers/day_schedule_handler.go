package handlers

import (
	"net/http"

	"github.com/farellandr/travel-maker/internal/helpers"
	"github.com/farellandr/travel-maker/internal/services"
	"github.com/gin-gonic/gin"
)

type CreateDayScheduleRequest struct {
	PlanID    uint   `json:"plan_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type UpdateDayScheduleRequest struct {
	Date      *string `json:"date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

func CreateDaySchedule(c *gin.Context) {
	var req CreateDayScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD.")
		return
	}
	startTime, err := helpers.ParseClock(req.StartTime)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid start_time format. Use HH:MM or HH:MM:SS.")
		return
	}
	endTime, err := helpers.ParseClock(req.EndTime)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid end_time format. Use HH:MM or HH:MM:SS.")
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	schedule, err := services.CreateDaySchedule(gormDB, services.DayScheduleCreate{
		PlanID:    req.PlanID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to create day schedule.")
		return
	}

	c.JSON(http.StatusCreated, newDayScheduleResponse(schedule))
}

func ListDaySchedules(c *gin.Context) {
	planID, ok := queryID(c, "plan_id")
	if !ok {
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	schedules, err := services.ListDaySchedules(gormDB, planID)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Error retrieving day schedules.")
		return
	}

	c.JSON(http.StatusOK, newDayScheduleResponses(schedules))
}

func UpdateDaySchedule(c *gin.Context) {
	dayScheduleID, ok := pathID(c, "day schedule")
	if !ok {
		return
	}

	var req UpdateDayScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	var patch services.DaySchedulePatch
	if req.Date != nil {
		date, err := helpers.ParseDate(*req.Date)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD.")
			return
		}
		patch.Date = &date
	}
	if req.StartTime != nil {
		startTime, err := helpers.ParseClock(*req.StartTime)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid start_time format. Use HH:MM or HH:MM:SS.")
			return
		}
		patch.StartTime = &startTime
	}
	if req.EndTime != nil {
		endTime, err := helpers.ParseClock(*req.EndTime)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid end_time format. Use HH:MM or HH:MM:SS.")
			return
		}
		patch.EndTime = &endTime
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	schedule, err := services.UpdateDaySchedule(gormDB, dayScheduleID, patch)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to update day schedule.")
		return
	}

	c.JSON(http.StatusOK, newDayScheduleResponse(schedule))
}

func DeleteDaySchedule(c *gin.Context) {
	dayScheduleID, ok := pathID(c, "day schedule")
	if !ok {
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	if err := services.DeleteDaySchedule(gormDB, dayScheduleID); err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to delete day schedule.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Day schedule deleted successfully."})
}
