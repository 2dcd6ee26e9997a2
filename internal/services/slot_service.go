package services

import (
	"errors"
	"unicode/utf8"

	"github.com/farellandr/travel-maker/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SlotCreate struct {
	DayScheduleID     uint
	Name              *string
	SpendingTime      datatypes.Time
	NeedToReservation bool
}

// SlotPatch holds the slot fields a PUT may change. Nil means unchanged.
// Order and the holding marker are changed only by reorder and confirm.
type SlotPatch struct {
	Name              *string
	SpendingTime      *datatypes.Time
	NeedToReservation *bool
	IsReserved        *bool
}

func validateSlotName(name *string) error {
	if name != nil && utf8.RuneCountInString(*name) > 100 {
		return invalid("Slot name must be at most 100 characters.")
	}
	return nil
}

func findSlot(tx *gorm.DB, slotID uint) (*models.ScheduleSlot, error) {
	var slot models.ScheduleSlot
	if err := tx.First(&slot, slotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Slot not found.")
		}
		return nil, err
	}
	return &slot, nil
}

func orderedSlots(tx *gorm.DB, dayScheduleID uint) ([]models.ScheduleSlot, error) {
	slots := []models.ScheduleSlot{}
	err := tx.Where("day_schedule_id = ?", dayScheduleID).Order("order_num").Find(&slots).Error
	return slots, err
}

// applyOrder sets each slot's order_num to its 1-based position in slotIDs.
// Positions are first written negated and then flipped in one statement, so
// the unique (day_schedule_id, order_num) index is never violated between
// statements.
func applyOrder(tx *gorm.DB, dayScheduleID uint, slotIDs []uint) error {
	for i, id := range slotIDs {
		err := tx.Model(&models.ScheduleSlot{}).
			Where("id = ? AND day_schedule_id = ?", id, dayScheduleID).
			Update("order_num", -(i + 1)).Error
		if err != nil {
			return err
		}
	}
	return tx.Model(&models.ScheduleSlot{}).
		Where("day_schedule_id = ? AND order_num < 0", dayScheduleID).
		Update("order_num", gorm.Expr("-order_num")).Error
}

// CreateSlot appends a slot at the end of the day schedule.
func CreateSlot(db *gorm.DB, input SlotCreate) (*models.ScheduleSlot, error) {
	if err := validateSlotName(input.Name); err != nil {
		return nil, err
	}

	var slot models.ScheduleSlot
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := lockDaySchedule(tx, input.DayScheduleID); err != nil {
			return err
		}

		var maxOrder int
		err := tx.Model(&models.ScheduleSlot{}).
			Where("day_schedule_id = ?", input.DayScheduleID).
			Select("COALESCE(MAX(order_num), 0)").
			Scan(&maxOrder).Error
		if err != nil {
			return err
		}

		slot = models.ScheduleSlot{
			DayScheduleID:     input.DayScheduleID,
			Name:              input.Name,
			SpendingTime:      input.SpendingTime,
			NeedToReservation: input.NeedToReservation,
			OrderNum:          maxOrder + 1,
		}
		return tx.Create(&slot).Error
	})
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func GetSlot(db *gorm.DB, slotID uint) (*models.ScheduleSlot, error) {
	return findSlot(db, slotID)
}

func ListSlots(db *gorm.DB, dayScheduleID uint) ([]models.ScheduleSlot, error) {
	if _, err := findDaySchedule(db, dayScheduleID); err != nil {
		return nil, err
	}
	return orderedSlots(db, dayScheduleID)
}

func UpdateSlot(db *gorm.DB, slotID uint, patch SlotPatch) (*models.ScheduleSlot, error) {
	if err := validateSlotName(patch.Name); err != nil {
		return nil, err
	}

	var slot *models.ScheduleSlot
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		slot, err = findSlot(tx, slotID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if patch.Name != nil {
			updates["name"] = *patch.Name
		}
		if patch.SpendingTime != nil {
			updates["spending_time"] = *patch.SpendingTime
		}
		if patch.NeedToReservation != nil {
			updates["need_to_reservation"] = *patch.NeedToReservation
		}
		if patch.IsReserved != nil {
			updates["is_reserved"] = *patch.IsReserved
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(slot).Updates(updates).Error; err != nil {
			return err
		}
		slot, err = findSlot(tx, slotID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return slot, nil
}

// DeleteSlot removes the slot and its votes, then closes the gap it leaves so
// the remaining slots stay numbered 1..N.
func DeleteSlot(db *gorm.DB, slotID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		slot, err := findSlot(tx, slotID)
		if err != nil {
			return err
		}
		if _, err := lockDaySchedule(tx, slot.DayScheduleID); err != nil {
			return err
		}

		if err := tx.Where("schedule_slot_id = ?", slotID).Delete(&models.SlotVote{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ScheduleSlot{}, slotID).Error; err != nil {
			return err
		}
		if slot.HoldingMarkerID != nil {
			if err := refreshMarkerScheduled(tx, *slot.HoldingMarkerID); err != nil {
				return err
			}
		}

		remaining, err := orderedSlots(tx, slot.DayScheduleID)
		if err != nil {
			return err
		}
		ids := make([]uint, len(remaining))
		for i, s := range remaining {
			ids[i] = s.ID
		}
		return applyOrder(tx, slot.DayScheduleID, ids)
	})
}

// ReorderSlots renumbers the day schedule's slots to follow slotIDs. The list
// must name every slot of the day schedule exactly once; otherwise nothing is
// changed.
func ReorderSlots(db *gorm.DB, dayScheduleID uint, slotIDs []uint) ([]models.ScheduleSlot, error) {
	var slots []models.ScheduleSlot
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := lockDaySchedule(tx, dayScheduleID); err != nil {
			return err
		}

		existing, err := orderedSlots(tx.Clauses(clause.Locking{Strength: "UPDATE"}), dayScheduleID)
		if err != nil {
			return err
		}

		if len(existing) != len(slotIDs) {
			return &CountMismatchError{Expected: len(existing), Actual: len(slotIDs)}
		}

		existingIDs := make(map[uint]struct{}, len(existing))
		for _, s := range existing {
			existingIDs[s.ID] = struct{}{}
		}
		requestedIDs := make(map[uint]struct{}, len(slotIDs))
		for _, id := range slotIDs {
			if _, ok := existingIDs[id]; !ok {
				return &Error{Kind: ErrInvalidMember, Message: "Request contains a slot id that does not belong to this day schedule."}
			}
			requestedIDs[id] = struct{}{}
		}
		if len(requestedIDs) != len(existingIDs) {
			return &Error{Kind: ErrInvalidMember, Message: "Request contains a duplicated slot id."}
		}

		if err := applyOrder(tx, dayScheduleID, slotIDs); err != nil {
			return err
		}
		slots, err = orderedSlots(tx, dayScheduleID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return slots, nil
}
