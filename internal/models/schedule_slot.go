package models

import (
	"time"

	"gorm.io/datatypes"
)

// ScheduleSlot is an ordered placeholder within a day schedule. OrderNum is
// dense (1..N) per day schedule; HoldingMarkerID stays nil until the slot is
// confirmed.
type ScheduleSlot struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	DayScheduleID     uint           `gorm:"not null;uniqueIndex:idx_schedule_slots_day_order" json:"day_schedule_id"`
	HoldingMarkerID   *uint          `json:"holding_marker_id"`
	HoldingMarker     *Marker        `gorm:"foreignKey:HoldingMarkerID;constraint:OnDelete:SET NULL" json:"-"`
	Name              *string        `gorm:"type:varchar(100)" json:"name"`
	SpendingTime      datatypes.Time `gorm:"not null" json:"spending_time"`
	NeedToReservation bool           `gorm:"not null;default:false" json:"need_to_reservation"`
	IsReserved        bool           `gorm:"not null;default:false" json:"is_reserved"`
	OrderNum          int            `gorm:"not null;uniqueIndex:idx_schedule_slots_day_order" json:"order_num"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	Votes             []SlotVote     `gorm:"foreignKey:ScheduleSlotID;constraint:OnDelete:CASCADE" json:"-"`
}

func (s *ScheduleSlot) Confirmed() bool {
	return s.HoldingMarkerID != nil
}
