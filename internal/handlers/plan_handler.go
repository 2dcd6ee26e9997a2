package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/farellandr/travel-maker/internal/helpers"
	"github.com/farellandr/travel-maker/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"
	"github.com/skip2/go-qrcode"
)

type CreatePlanRequest struct {
	UserID        uint     `json:"user_id" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	Description   *string  `json:"description"`
	CityToStay    *string  `json:"city_to_stay"`
	InitLatitude  *float64 `json:"init_latitude" binding:"required"`
	InitLongitude *float64 `json:"init_longitude" binding:"required"`
	StartDate     string   `json:"start_date" binding:"required"`
	EndDate       string   `json:"end_date" binding:"required"`
}

type UpdatePlanRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	CityToStay    *string  `json:"city_to_stay"`
	InitLatitude  *float64 `json:"init_latitude"`
	InitLongitude *float64 `json:"init_longitude"`
	StartDate     *string  `json:"start_date"`
	EndDate       *string  `json:"end_date"`
}

func CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	startDate, err := helpers.ParseDate(req.StartDate)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid start_date format. Use YYYY-MM-DD.")
		return
	}
	endDate, err := helpers.ParseDate(req.EndDate)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid end_date format. Use YYYY-MM-DD.")
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	plan, err := services.CreatePlan(gormDB, services.PlanCreate{
		UserID:        req.UserID,
		Name:          req.Name,
		Description:   req.Description,
		CityToStay:    req.CityToStay,
		InitLatitude:  *req.InitLatitude,
		InitLongitude: *req.InitLongitude,
		StartDate:     startDate,
		EndDate:       endDate,
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to create plan.")
		return
	}

	c.JSON(http.StatusCreated, newPlanResponse(plan))
}

func ListPlans(c *gin.Context) {
	userID, ok := queryID(c, "user_id")
	if !ok {
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	plans, err := services.ListPlansForUser(gormDB, userID)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Error retrieving plans.")
		return
	}

	c.JSON(http.StatusOK, newPlanResponses(plans))
}

func SearchPlans(c *gin.Context) {
	gormDB := database(c)
	if gormDB == nil {
		return
	}

	plans, err := services.SearchPlans(gormDB, c.Query("keyword"))
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Error searching plans.")
		return
	}

	c.JSON(http.StatusOK, newPlanResponses(plans))
}

func GetPlan(c *gin.Context) {
	planID, ok := pathID(c, "plan")
	if !ok {
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	plan, err := services.GetPlan(gormDB, planID)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Error retrieving plan.")
		return
	}

	c.JSON(http.StatusOK, newPlanResponse(plan))
}

func UpdatePlan(c *gin.Context) {
	planID, ok := pathID(c, "plan")
	if !ok {
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	patch := services.PlanPatch{
		Name:          req.Name,
		Description:   req.Description,
		CityToStay:    req.CityToStay,
		InitLatitude:  req.InitLatitude,
		InitLongitude: req.InitLongitude,
	}
	if req.StartDate != nil {
		startDate, err := helpers.ParseDate(*req.StartDate)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid start_date format. Use YYYY-MM-DD.")
			return
		}
		patch.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := helpers.ParseDate(*req.EndDate)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid end_date format. Use YYYY-MM-DD.")
			return
		}
		patch.EndDate = &endDate
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	plan, err := services.UpdatePlan(gormDB, planID, patch)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to update plan.")
		return
	}

	c.JSON(http.StatusOK, newPlanResponse(plan))
}

func JoinPlan(c *gin.Context) {
	planID, ok := pathID(c, "plan")
	if !ok {
		return
	}
	userID, ok := queryID(c, "user_id")
	if !ok {
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	membership, err := services.JoinPlan(gormDB, planID, userID)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to join plan.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Joined plan successfully.",
		"membership": membership,
	})
}

func TransferOwnership(c *gin.Context) {
	planID, ok := pathID(c, "plan")
	if !ok {
		return
	}
	oldOwnerID, ok := queryID(c, "old_owner")
	if !ok {
		return
	}
	newOwnerID, ok := queryID(c, "new_owner")
	if !ok {
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	if err := services.TransferOwnership(gormDB, planID, oldOwnerID, newOwnerID); err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to transfer ownership.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ownership transferred successfully."})
}

func DeletePlan(c *gin.Context) {
	planID, ok := pathID(c, "plan")
	if !ok {
		return
	}
	userID, ok := queryID(c, "user_id")
	if !ok {
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	if err := services.SoftDeletePlan(gormDB, planID, userID); err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to delete plan.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted successfully."})
}

func ListPlanMembers(c *gin.Context) {
	planID, ok := pathID(c, "plan")
	if !ok {
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	members, err := services.ListMembers(gormDB, planID)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Error retrieving plan members.")
		return
	}

	c.JSON(http.StatusOK, members)
}

// GetPlanInvite renders the plan's join URL as a QR code PNG.
func GetPlanInvite(c *gin.Context) {
	planID, ok := pathID(c, "plan")
	if !ok {
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	plan, err := services.GetPlan(gormDB, planID)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Error retrieving plan.")
		return
	}
	if plan.IsDeleted {
		helpers.RespondWithError(c, http.StatusConflict, "Cannot invite to a deleted plan.")
		return
	}

	qrData := fmt.Sprintf("%s/plans/%d/join", baseURL(c), plan.ID)
	qrImage, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

// GetPlanFeed publishes the plan's confirmed slots as RSS.
func GetPlanFeed(c *gin.Context) {
	planID, ok := pathID(c, "plan")
	if !ok {
		return
	}

	gormDB := database(c)
	if gormDB == nil {
		return
	}

	plan, err := services.GetPlan(gormDB, planID)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Error retrieving plan.")
		return
	}

	confirmed, err := services.ListConfirmedSlots(gormDB, planID)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Error retrieving confirmed slots.")
		return
	}

	planURL := fmt.Sprintf("%s/plans/%d", baseURL(c), plan.ID)
	feed := &feeds.Feed{
		Title:       plan.Name,
		Link:        &feeds.Link{Href: planURL},
		Description: "Confirmed schedule of " + plan.Name,
		Created:     plan.CreatedAt,
	}
	if plan.Description != nil {
		feed.Description = *plan.Description
	}

	for _, item := range confirmed {
		title := markerTitle(item)
		feed.Items = append(feed.Items, &feeds.Item{
			Id:    fmt.Sprintf("%s/schedule-slots/%d", planURL, item.Slot.ID),
			Title: title,
			Link:  &feeds.Link{Href: planURL},
			Description: fmt.Sprintf("%s, %s slot, spending %s",
				helpers.FormatDate(item.DaySchedule.Date), humanize.Ordinal(item.Slot.OrderNum), item.Slot.SpendingTime.String()),
			Created: item.Slot.UpdatedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate RSS feed.")
		return
	}

	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

func markerTitle(item services.ConfirmedSlot) string {
	if item.Marker.Name != nil && *item.Marker.Name != "" {
		return *item.Marker.Name
	}
	if item.Slot.Name != nil && *item.Slot.Name != "" {
		return *item.Slot.Name
	}
	return fmt.Sprintf("Marker %d", item.Marker.ID)
}

func baseURL(c *gin.Context) string {
	if base := settings(c).PublicBaseURL; base != "" {
		return strings.TrimRight(base, "/")
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
