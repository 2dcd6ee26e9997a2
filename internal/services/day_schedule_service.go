package services

import (
	"errors"
	"time"

	"github.com/farellandr/travel-maker/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DayScheduleCreate struct {
	PlanID    uint
	Date      time.Time
	StartTime datatypes.Time
	EndTime   datatypes.Time
}

// DaySchedulePatch holds the day schedule fields a PUT may change. Nil means
// unchanged.
type DaySchedulePatch struct {
	Date      *time.Time
	StartTime *datatypes.Time
	EndTime   *datatypes.Time
}

func validateTimeWindow(start, end datatypes.Time) error {
	if start >= end {
		return invalid("Start time must be before end time.")
	}
	return nil
}

func findDaySchedule(tx *gorm.DB, dayScheduleID uint) (*models.DaySchedule, error) {
	var schedule models.DaySchedule
	if err := tx.First(&schedule, dayScheduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Day schedule not found.")
		}
		return nil, err
	}
	return &schedule, nil
}

// lockDaySchedule loads the day schedule with a row lock. Every operation
// that changes slot order in the schedule goes through it, which serialises
// them per day schedule.
func lockDaySchedule(tx *gorm.DB, dayScheduleID uint) (*models.DaySchedule, error) {
	return findDaySchedule(tx.Clauses(clause.Locking{Strength: "UPDATE"}), dayScheduleID)
}

func dateTaken(tx *gorm.DB, planID uint, date time.Time, exceptID uint) (bool, error) {
	var count int64
	query := tx.Model(&models.DaySchedule{}).Where("plan_id = ? AND date = ?", planID, datatypes.Date(date))
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func CreateDaySchedule(db *gorm.DB, input DayScheduleCreate) (*models.DaySchedule, error) {
	var schedule models.DaySchedule
	err := db.Transaction(func(tx *gorm.DB) error {
		plan, err := findPlan(tx, input.PlanID)
		if err != nil {
			return err
		}
		if plan.IsDeleted {
			return conflict("Cannot add a schedule to a deleted plan.")
		}

		taken, err := dateTaken(tx, input.PlanID, input.Date, 0)
		if err != nil {
			return err
		}
		if taken {
			return conflict("A schedule already exists for this date.")
		}

		if err := validateTimeWindow(input.StartTime, input.EndTime); err != nil {
			return err
		}

		schedule = models.DaySchedule{
			PlanID:    input.PlanID,
			Date:      datatypes.Date(input.Date),
			StartTime: input.StartTime,
			EndTime:   input.EndTime,
		}
		if err := tx.Create(&schedule).Error; err != nil {
			if isUniqueViolation(err) {
				return conflict("A schedule already exists for this date.")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	schedule.ScheduleSlots = []models.ScheduleSlot{}
	return &schedule, nil
}

// ListDaySchedules returns the plan's day schedules by date, each with its
// slots in order.
func ListDaySchedules(db *gorm.DB, planID uint) ([]models.DaySchedule, error) {
	if _, err := findPlan(db, planID); err != nil {
		return nil, err
	}

	schedules := []models.DaySchedule{}
	err := db.Preload("ScheduleSlots", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_num")
	}).Where("plan_id = ?", planID).Order("date").Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// UpdateDaySchedule applies patch. When either time changes, start < end is
// checked on the merged values.
func UpdateDaySchedule(db *gorm.DB, dayScheduleID uint, patch DaySchedulePatch) (*models.DaySchedule, error) {
	var schedule *models.DaySchedule
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		schedule, err = lockDaySchedule(tx, dayScheduleID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}

		if patch.StartTime != nil || patch.EndTime != nil {
			start, end := schedule.StartTime, schedule.EndTime
			if patch.StartTime != nil {
				start = *patch.StartTime
				updates["start_time"] = start
			}
			if patch.EndTime != nil {
				end = *patch.EndTime
				updates["end_time"] = end
			}
			if err := validateTimeWindow(start, end); err != nil {
				return err
			}
		}

		if patch.Date != nil {
			taken, err := dateTaken(tx, schedule.PlanID, *patch.Date, schedule.ID)
			if err != nil {
				return err
			}
			if taken {
				return conflict("A schedule already exists for this date.")
			}
			updates["date"] = datatypes.Date(*patch.Date)
		}

		if len(updates) > 0 {
			if err := tx.Model(schedule).Updates(updates).Error; err != nil {
				if isUniqueViolation(err) {
					return conflict("A schedule already exists for this date.")
				}
				return err
			}
		}

		return tx.Preload("ScheduleSlots", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num")
		}).First(schedule, dayScheduleID).Error
	})
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

// DeleteDaySchedule removes the schedule together with its slots and their
// votes.
func DeleteDaySchedule(db *gorm.DB, dayScheduleID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := lockDaySchedule(tx, dayScheduleID); err != nil {
			return err
		}

		var heldMarkers []uint
		err := tx.Model(&models.ScheduleSlot{}).
			Where("day_schedule_id = ? AND holding_marker_id IS NOT NULL", dayScheduleID).
			Distinct().Pluck("holding_marker_id", &heldMarkers).Error
		if err != nil {
			return err
		}

		slotIDs := tx.Model(&models.ScheduleSlot{}).Select("id").Where("day_schedule_id = ?", dayScheduleID)
		if err := tx.Where("schedule_slot_id IN (?)", slotIDs).Delete(&models.SlotVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("day_schedule_id = ?", dayScheduleID).Delete(&models.ScheduleSlot{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.DaySchedule{}, dayScheduleID).Error; err != nil {
			return err
		}

		for _, markerID := range heldMarkers {
			if err := refreshMarkerScheduled(tx, markerID); err != nil {
				return err
			}
		}
		return nil
	})
}
