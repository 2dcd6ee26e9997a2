package handlers

import (
	"net/http"

	"github.com/farellandr/travel-maker/internal/helpers"
	"github.com/farellandr/travel-maker/internal/services"
	"github.com/gin-gonic/gin"
)

type CreateSlotRequest struct {
	DayScheduleID     uint    `json:"day_schedule_id" binding:"required"`
	Name              *string `json:"name"`
	SpendingTime      string  `json:"spending_time" binding:"required"`
	NeedToReservation bool    `json:"need_to_reservation"`
}

type UpdateSlotRequest struct {
	Name              *string `json:"name"`
	SpendingTime      *string `json:"spending_time"`
	NeedToReservation *bool   `json:"need_to_reservation"`
	IsReserved        *bool   `json:"is_reserved"`
}

type ReorderSlotsRequest struct {
	DayScheduleID uint   `json:"day_schedule_id" binding:"required"`
	SlotIDs       []uint `json:"slot_ids" binding:"required"`
}

type VoteRequest struct {
	ScheduleSlotID uint `json:"schedule_slot_id" binding:"required"`
	MarkerID       uint `json:"marker_id" binding:"required"`
	UserID         uint `json:"user_id" binding:"required"`
}

func CreateScheduleSlot(c *gin.Context) {
	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	spendingTime, err := helpers.ParseClock(req.SpendingTime)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid spending_time format. Use HH:MM or HH:MM:SS.")
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	slot, err := services.CreateSlot(gormDB, services.SlotCreate{
		DayScheduleID:     req.DayScheduleID,
		Name:              req.Name,
		SpendingTime:      spendingTime,
		NeedToReservation: req.NeedToReservation,
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to create schedule slot.")
		return
	}

	c.JSON(http.StatusCreated, slot)
}

func ListScheduleSlots(c *gin.Context) {
	dayScheduleID, ok := queryID(c, "day_schedule_id")
	if !ok {
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	slots, err := services.ListSlots(gormDB, dayScheduleID)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Error retrieving schedule slots.")
		return
	}

	c.JSON(http.StatusOK, slots)
}

func GetScheduleSlot(c *gin.Context) {
	slotID, ok := pathID(c, "schedule slot")
	if !ok {
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	slot, err := services.GetSlot(gormDB, slotID)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Error retrieving schedule slot.")
		return
	}

	c.JSON(http.StatusOK, slot)
}

func UpdateScheduleSlot(c *gin.Context) {
	slotID, ok := pathID(c, "schedule slot")
	if !ok {
		return
	}

	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	patch := services.SlotPatch{
		Name:              req.Name,
		NeedToReservation: req.NeedToReservation,
		IsReserved:        req.IsReserved,
	}
	if req.SpendingTime != nil {
		spendingTime, err := helpers.ParseClock(*req.SpendingTime)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid spending_time format. Use HH:MM or HH:MM:SS.")
			return
		}
		patch.SpendingTime = &spendingTime
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	slot, err := services.UpdateSlot(gormDB, slotID, patch)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to update schedule slot.")
		return
	}

	c.JSON(http.StatusOK, slot)
}

func DeleteScheduleSlot(c *gin.Context) {
	slotID, ok := pathID(c, "schedule slot")
	if !ok {
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	if err := services.DeleteSlot(gormDB, slotID); err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to delete schedule slot.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule slot deleted successfully."})
}

func ReorderScheduleSlots(c *gin.Context) {
	var req ReorderSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	slots, err := services.ReorderSlots(gormDB, req.DayScheduleID, req.SlotIDs)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to reorder schedule slots.")
		return
	}

	c.JSON(http.StatusOK, slots)
}

func VoteScheduleSlot(c *gin.Context) {
	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	vote, err := services.CastVote(gormDB, req.ScheduleSlotID, req.MarkerID, req.UserID)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to cast vote.")
		return
	}

	c.JSON(http.StatusCreated, vote)
}

func ListScheduleSlotVotes(c *gin.Context) {
	slotID, ok := pathID(c, "schedule slot")
	if !ok {
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	votes, err := services.ListVotes(gormDB, slotID)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Error retrieving votes.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"votes": votes,
		"tally": services.TallyVotes(votes),
	})
}

func ConfirmScheduleSlot(c *gin.Context) {
	slotID, ok := pathID(c, "schedule slot")
	if !ok {
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	slot, err := services.ConfirmSlot(gormDB, slotID)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to confirm schedule slot.")
		return
	}

	c.JSON(http.StatusOK, slot)
}
