package models

import (
	"time"
)

// Marker is a candidate point of interest proposed for a plan.
type Marker struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PlanID        uint      `gorm:"not null;index" json:"plan_id"`
	Name          *string   `gorm:"type:varchar(20)" json:"name"`
	Description   *string   `gorm:"type:varchar(512)" json:"description"`
	Thumbnail     *string   `gorm:"type:varchar(512)" json:"thumbnail"`
	URL           *string   `gorm:"type:varchar(512)" json:"url"`
	IsScheduled   bool      `gorm:"not null;default:false" json:"is_scheduled"`
	CreatedUserID uint      `gorm:"not null" json:"created_user_id"`
	Plan          *Plan     `gorm:"foreignKey:PlanID" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
