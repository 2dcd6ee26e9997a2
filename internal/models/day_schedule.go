package models

import (
	"time"

	"gorm.io/datatypes"
)

type DaySchedule struct {
	ID            uint           `gorm:"primaryKey"`
	PlanID        uint           `gorm:"not null;uniqueIndex:idx_day_schedules_plan_date"`
	Date          datatypes.Date `gorm:"not null;uniqueIndex:idx_day_schedules_plan_date"`
	StartTime     datatypes.Time `gorm:"not null"`
	EndTime       datatypes.Time `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ScheduleSlots []ScheduleSlot `gorm:"foreignKey:DayScheduleID;constraint:OnDelete:CASCADE"`
}
