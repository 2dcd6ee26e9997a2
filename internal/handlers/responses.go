package handlers

import (
	"time"

	"github.com/farellandr/travel-maker/internal/helpers"
	"github.com/farellandr/travel-maker/internal/models"
	"gorm.io/datatypes"
)

type PlanResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	CityToStay    *string   `json:"city_to_stay"`
	InitLatitude  float64   `json:"init_latitude"`
	InitLongitude float64   `json:"init_longitude"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	CreatedUserID uint      `json:"created_user_id"`
	IsDeleted     bool      `json:"is_deleted"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newPlanResponse(plan *models.Plan) PlanResponse {
	return PlanResponse{
		ID:            plan.ID,
		Name:          plan.Name,
		Description:   plan.Description,
		CityToStay:    plan.CityToStay,
		InitLatitude:  plan.InitLatitude,
		InitLongitude: plan.InitLongitude,
		StartDate:     helpers.FormatDate(plan.StartDate),
		EndDate:       helpers.FormatDate(plan.EndDate),
		CreatedUserID: plan.CreatedUserID,
		IsDeleted:     plan.IsDeleted,
		CreatedAt:     plan.CreatedAt,
		UpdatedAt:     plan.UpdatedAt,
	}
}

func newPlanResponses(plans []models.Plan) []PlanResponse {
	resp := make([]PlanResponse, 0, len(plans))
	for i := range plans {
		resp = append(resp, newPlanResponse(&plans[i]))
	}
	return resp
}

type DayScheduleResponse struct {
	ID            uint                  `json:"id"`
	PlanID        uint                  `json:"plan_id"`
	Date          string                `json:"date"`
	StartTime     datatypes.Time        `json:"start_time"`
	EndTime       datatypes.Time        `json:"end_time"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	ScheduleSlots []models.ScheduleSlot `json:"schedule_slots"`
}

func newDayScheduleResponse(schedule *models.DaySchedule) DayScheduleResponse {
	slots := schedule.ScheduleSlots
	if slots == nil {
		slots = []models.ScheduleSlot{}
	}
	return DayScheduleResponse{
		ID:            schedule.ID,
		PlanID:        schedule.PlanID,
		Date:          helpers.FormatDate(schedule.Date),
		StartTime:     schedule.StartTime,
		EndTime:       schedule.EndTime,
		CreatedAt:     schedule.CreatedAt,
		UpdatedAt:     schedule.UpdatedAt,
		ScheduleSlots: slots,
	}
}

func newDayScheduleResponses(schedules []models.DaySchedule) []DayScheduleResponse {
	resp := make([]DayScheduleResponse, 0, len(schedules))
	for i := range schedules {
		resp = append(resp, newDayScheduleResponse(&schedules[i]))
	}
	return resp
}
