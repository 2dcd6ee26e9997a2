package models

import (
	"time"
)

// SlotVote is one user's immutable vote for a marker on a slot. The unique
// index on (schedule_slot_id, voted_user_id) is what rejects a second vote
// under concurrent requests.
type SlotVote struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ScheduleSlotID uint      `gorm:"not null;uniqueIndex:idx_slot_voting_slot_user" json:"schedule_slot_id"`
	MarkerID       uint      `gorm:"not null;index" json:"marker_id"`
	VotedUserID    uint      `gorm:"not null;uniqueIndex:idx_slot_voting_slot_user" json:"voted_user_id"`
	Marker         *Marker   `gorm:"foreignKey:MarkerID" json:"-"`
	VotedUser      *User     `gorm:"foreignKey:VotedUserID" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (SlotVote) TableName() string {
	return "slot_voting"
}
