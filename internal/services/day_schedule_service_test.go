package services

import (
	"testing"
	"time"

	"github.com/farellandr/travel-maker/internal/models"
	"github.com/farellandr/travel-maker/internal/testutil"
)

func TestCreateDaySchedule(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateTestUser(t, db, "owner")
	plan := testutil.CreateTestPlan(t, db, owner, "Kyoto")
	deleted := testutil.CreateTestPlan(t, db, owner, "Gone")
	if err := SoftDeletePlan(db, deleted.ID, owner.ID); err != nil {
		t.Fatalf("SoftDeletePlan: %v", err)
	}

	schedule, err := CreateDaySchedule(db, DayScheduleCreate{
		PlanID:    plan.ID,
		Date:      date("2025-05-01"),
		StartTime: testutil.Clock(9, 0),
		EndTime:   testutil.Clock(18, 0),
	})
	if err != nil {
		t.Fatalf("CreateDaySchedule: %v", err)
	}
	if schedule.ScheduleSlots == nil || len(schedule.ScheduleSlots) != 0 {
		t.Errorf("Expected an empty slot list on a new schedule")
	}

	tests := []struct {
		name  string
		input DayScheduleCreate
		kind  error
	}{
		{"missing plan", DayScheduleCreate{PlanID: 9999, Date: date("2025-05-02"), StartTime: testutil.Clock(9, 0), EndTime: testutil.Clock(10, 0)}, ErrNotFound},
		{"deleted plan", DayScheduleCreate{PlanID: deleted.ID, Date: date("2025-05-02"), StartTime: testutil.Clock(9, 0), EndTime: testutil.Clock(10, 0)}, ErrConflict},
		{"same date", DayScheduleCreate{PlanID: plan.ID, Date: date("2025-05-01"), StartTime: testutil.Clock(9, 0), EndTime: testutil.Clock(10, 0)}, ErrConflict},
		{"start equals end", DayScheduleCreate{PlanID: plan.ID, Date: date("2025-05-02"), StartTime: testutil.Clock(9, 0), EndTime: testutil.Clock(9, 0)}, ErrValidation},
		{"start after end", DayScheduleCreate{PlanID: plan.ID, Date: date("2025-05-02"), StartTime: testutil.Clock(19, 0), EndTime: testutil.Clock(9, 0)}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateDaySchedule(db, tt.input)
			assertKind(t, err, tt.kind)
		})
	}
}

func TestUpdateDaySchedule(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateTestUser(t, db, "owner")
	plan := testutil.CreateTestPlan(t, db, owner, "Kyoto")
	first := testutil.CreateTestDaySchedule(t, db, plan, "2025-05-01")
	testutil.CreateTestDaySchedule(t, db, plan, "2025-05-02")
	testutil.CreateTestSlot(t, db, first, 1)

	// 20:00 alone is after the stored 18:00 end.
	late := testutil.Clock(20, 0)
	_, err := UpdateDaySchedule(db, first.ID, DaySchedulePatch{StartTime: &late})
	assertKind(t, err, ErrValidation)

	lateEnd := testutil.Clock(22, 0)
	updated, err := UpdateDaySchedule(db, first.ID, DaySchedulePatch{StartTime: &late, EndTime: &lateEnd})
	if err != nil {
		t.Fatalf("UpdateDaySchedule: %v", err)
	}
	if updated.StartTime != late || updated.EndTime != lateEnd {
		t.Errorf("Expected 20:00-22:00, got %s-%s", updated.StartTime, updated.EndTime)
	}
	if len(updated.ScheduleSlots) != 1 {
		t.Errorf("Expected nested slots on update result, got %d", len(updated.ScheduleSlots))
	}

	taken := date("2025-05-02")
	_, err = UpdateDaySchedule(db, first.ID, DaySchedulePatch{Date: &taken})
	assertKind(t, err, ErrConflict)

	free := date("2025-05-03")
	moved, err := UpdateDaySchedule(db, first.ID, DaySchedulePatch{Date: &free})
	if err != nil {
		t.Fatalf("UpdateDaySchedule: %v", err)
	}
	if !time.Time(moved.Date).Equal(free) {
		t.Errorf("Expected date %s, got %s", free.Format("2006-01-02"), time.Time(moved.Date).Format("2006-01-02"))
	}

	_, err = UpdateDaySchedule(db, 9999, DaySchedulePatch{Date: &free})
	assertKind(t, err, ErrNotFound)
}

func TestListAndDeleteDaySchedules(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateTestUser(t, db, "owner")
	plan := testutil.CreateTestPlan(t, db, owner, "Kyoto")
	marker := testutil.CreateTestMarker(t, db, plan, owner, "Gion")
	later := testutil.CreateTestDaySchedule(t, db, plan, "2025-05-03")
	earlier := testutil.CreateTestDaySchedule(t, db, plan, "2025-05-01")
	s1 := testutil.CreateTestSlot(t, db, later, 1)
	s2 := testutil.CreateTestSlot(t, db, later, 2)
	testutil.CastTestVote(t, db, s1, marker, owner)
	if _, err := ConfirmSlot(db, s1.ID); err != nil {
		t.Fatalf("ConfirmSlot: %v", err)
	}
	if _, err := ReorderSlots(db, later.ID, []uint{s2.ID, s1.ID}); err != nil {
		t.Fatalf("ReorderSlots: %v", err)
	}

	schedules, err := ListDaySchedules(db, plan.ID)
	if err != nil {
		t.Fatalf("ListDaySchedules: %v", err)
	}
	if len(schedules) != 2 || schedules[0].ID != earlier.ID || schedules[1].ID != later.ID {
		t.Fatalf("Expected schedules ordered by date, got %+v", schedules)
	}
	nested := schedules[1].ScheduleSlots
	if len(nested) != 2 || nested[0].ID != s2.ID || nested[1].ID != s1.ID {
		t.Errorf("Expected nested slots in order [s2 s1], got %+v", nested)
	}

	_, err = ListDaySchedules(db, 9999)
	assertKind(t, err, ErrNotFound)

	if err := DeleteDaySchedule(db, later.ID); err != nil {
		t.Fatalf("DeleteDaySchedule: %v", err)
	}

	var slots, votes int64
	db.Model(&models.ScheduleSlot{}).Where("day_schedule_id = ?", later.ID).Count(&slots)
	db.Model(&models.SlotVote{}).Where("schedule_slot_id IN ?", []uint{s1.ID, s2.ID}).Count(&votes)
	if slots != 0 || votes != 0 {
		t.Errorf("Expected slots and votes removed, found %d slots and %d votes", slots, votes)
	}

	var reloaded models.Marker
	db.First(&reloaded, marker.ID)
	if reloaded.IsScheduled {
		t.Errorf("Expected marker to be unscheduled once its slot is gone")
	}

	assertKind(t, DeleteDaySchedule(db, later.ID), ErrNotFound)
}
