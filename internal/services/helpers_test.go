package services

import (
	"errors"
	"testing"

	"github.com/farellandr/travel-maker/internal/models"
	"gorm.io/gorm"
)

func assertKind(t *testing.T, err, kind error) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected %v error, got nil", kind)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("Expected %v error, got %v", kind, err)
	}
}

func orderOf(t *testing.T, db *gorm.DB, dayScheduleID uint) map[uint]int {
	t.Helper()
	var slots []models.ScheduleSlot
	if err := db.Where("day_schedule_id = ?", dayScheduleID).Find(&slots).Error; err != nil {
		t.Fatalf("Failed to load slots: %v", err)
	}
	order := make(map[uint]int, len(slots))
	for _, s := range slots {
		order[s.ID] = s.OrderNum
	}
	return order
}
