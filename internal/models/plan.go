package models

import (
	"time"

	"gorm.io/datatypes"
)

// Plan is a trip. It is never hard-deleted; IsDeleted hides it from listings
// and blocks new schedules and joins.
type Plan struct {
	ID            uint           `gorm:"primaryKey"`
	Name          string         `gorm:"type:varchar(100);not null"`
	Description   *string        `gorm:"type:varchar(512)"`
	CityToStay    *string        `gorm:"type:varchar(20)"`
	InitLatitude  float64        `gorm:"not null"`
	InitLongitude float64        `gorm:"not null"`
	StartDate     datatypes.Date `gorm:"not null"`
	EndDate       datatypes.Date `gorm:"not null"`
	CreatedUserID uint           `gorm:"not null;index"`
	IsDeleted     bool           `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Members      []UserInPlan  `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
	DaySchedules []DaySchedule `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
}

// UserInPlan is the membership of a user in a plan. A plan has exactly one
// member with Owner set.
type UserInPlan struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_users_in_plan_user_plan" json:"user_id"`
	PlanID    uint      `gorm:"not null;uniqueIndex:idx_users_in_plan_user_plan;uniqueIndex:idx_users_in_plan_single_owner,where:owner = true" json:"plan_id"`
	Owner     bool      `gorm:"not null;default:false" json:"owner"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserInPlan) TableName() string {
	return "users_in_plan"
}
