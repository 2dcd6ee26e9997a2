package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nickname  string    `gorm:"type:varchar(40);uniqueIndex;not null" json:"nickname"`
	Password  string    `gorm:"type:varchar(200);not null" json:"-"`
	Thumbnail string    `gorm:"type:varchar(1024);not null" json:"thumbnail"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
