package services

import (
	"errors"
	"unicode/utf8"

	"github.com/farellandr/travel-maker/internal/models"
	"gorm.io/gorm"
)

type MarkerCreate struct {
	PlanID      uint
	UserID      uint
	Name        *string
	Description *string
	Thumbnail   *string
	URL         *string
}

func (m MarkerCreate) validate() error {
	if m.Name != nil && utf8.RuneCountInString(*m.Name) > 20 {
		return invalid("Marker name must be at most 20 characters.")
	}
	for _, field := range []*string{m.Description, m.Thumbnail, m.URL} {
		if field != nil && utf8.RuneCountInString(*field) > 512 {
			return invalid("Marker description, thumbnail and url must be at most 512 characters.")
		}
	}
	return nil
}

func findMarker(tx *gorm.DB, markerID uint) (*models.Marker, error) {
	var marker models.Marker
	if err := tx.First(&marker, markerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Marker not found.")
		}
		return nil, err
	}
	return &marker, nil
}

// CreateMarker proposes a candidate place for a plan. Only plan members may
// propose markers.
func CreateMarker(db *gorm.DB, input MarkerCreate) (*models.Marker, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var marker models.Marker
	err := db.Transaction(func(tx *gorm.DB) error {
		plan, err := findPlan(tx, input.PlanID)
		if err != nil {
			return err
		}
		if plan.IsDeleted {
			return conflict("Cannot add a marker to a deleted plan.")
		}
		if _, err := GetUser(tx, input.UserID); err != nil {
			return err
		}

		member, err := IsMember(tx, input.PlanID, input.UserID)
		if err != nil {
			return err
		}
		if !member {
			return forbidden("Only plan members can add markers.")
		}

		marker = models.Marker{
			PlanID:        input.PlanID,
			Name:          input.Name,
			Description:   input.Description,
			Thumbnail:     input.Thumbnail,
			URL:           input.URL,
			CreatedUserID: input.UserID,
		}
		return tx.Create(&marker).Error
	})
	if err != nil {
		return nil, err
	}
	return &marker, nil
}

func GetMarker(db *gorm.DB, markerID uint) (*models.Marker, error) {
	return findMarker(db, markerID)
}

func ListMarkers(db *gorm.DB, planID uint) ([]models.Marker, error) {
	if _, err := findPlan(db, planID); err != nil {
		return nil, err
	}

	markers := []models.Marker{}
	if err := db.Where("plan_id = ?", planID).Order("id").Find(&markers).Error; err != nil {
		return nil, err
	}
	return markers, nil
}

// ConfirmedSlot is a confirmed slot with the date it is scheduled on and
// the marker holding it.
type ConfirmedSlot struct {
	Slot        models.ScheduleSlot
	DaySchedule models.DaySchedule
	Marker      models.Marker
}

// ListConfirmedSlots returns the plan's confirmed slots by date and order.
func ListConfirmedSlots(db *gorm.DB, planID uint) ([]ConfirmedSlot, error) {
	schedules, err := ListDaySchedules(db, planID)
	if err != nil {
		return nil, err
	}

	var markerIDs []uint
	for _, schedule := range schedules {
		for _, slot := range schedule.ScheduleSlots {
			if slot.Confirmed() {
				markerIDs = append(markerIDs, *slot.HoldingMarkerID)
			}
		}
	}
	if len(markerIDs) == 0 {
		return []ConfirmedSlot{}, nil
	}

	var markers []models.Marker
	if err := db.Where("id IN ?", markerIDs).Find(&markers).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Marker, len(markers))
	for _, m := range markers {
		byID[m.ID] = m
	}

	confirmed := []ConfirmedSlot{}
	for _, schedule := range schedules {
		for _, slot := range schedule.ScheduleSlots {
			if !slot.Confirmed() {
				continue
			}
			marker, ok := byID[*slot.HoldingMarkerID]
			if !ok {
				continue
			}
			confirmed = append(confirmed, ConfirmedSlot{Slot: slot, DaySchedule: schedule, Marker: marker})
		}
	}
	return confirmed, nil
}
