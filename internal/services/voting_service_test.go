package services

import (
	"testing"

	"github.com/farellandr/travel-maker/internal/models"
	"github.com/farellandr/travel-maker/internal/testutil"
)

func TestTallyVotes(t *testing.T) {
	tests := []struct {
		name       string
		votes      []models.SlotVote
		wantWinner uint
		wantVotes  int
	}{
		{
			name: "clear majority",
			votes: []models.SlotVote{
				{ID: 1, MarkerID: 10}, {ID: 2, MarkerID: 20}, {ID: 3, MarkerID: 10}, {ID: 4, MarkerID: 10},
			},
			wantWinner: 10,
			wantVotes:  3,
		},
		{
			name: "tie goes to earliest vote",
			votes: []models.SlotVote{
				{ID: 1, MarkerID: 10}, {ID: 2, MarkerID: 20}, {ID: 3, MarkerID: 10}, {ID: 4, MarkerID: 20},
			},
			wantWinner: 10,
			wantVotes:  2,
		},
		{
			name: "tie ignores input order",
			votes: []models.SlotVote{
				{ID: 4, MarkerID: 20}, {ID: 3, MarkerID: 10}, {ID: 2, MarkerID: 20}, {ID: 1, MarkerID: 10},
			},
			wantWinner: 10,
			wantVotes:  2,
		},
		{
			name: "tie not decided by marker id",
			votes: []models.SlotVote{
				{ID: 5, MarkerID: 30}, {ID: 6, MarkerID: 7},
			},
			wantWinner: 30,
			wantVotes:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tallies := TallyVotes(tt.votes)
			if len(tallies) == 0 {
				t.Fatal("Expected at least one tally")
			}
			if tallies[0].MarkerID != tt.wantWinner {
				t.Errorf("Expected winner %d, got %d", tt.wantWinner, tallies[0].MarkerID)
			}
			if tallies[0].Votes != tt.wantVotes {
				t.Errorf("Expected %d votes, got %d", tt.wantVotes, tallies[0].Votes)
			}
		})
	}

	if got := TallyVotes(nil); len(got) != 0 {
		t.Errorf("Expected empty tally for no votes, got %v", got)
	}
}

func TestCastVote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateTestUser(t, db, "owner")
	member := testutil.CreateTestUser(t, db, "member")
	plan := testutil.CreateTestPlan(t, db, owner, "Kyoto")
	testutil.AddTestMember(t, db, plan, member)
	marker := testutil.CreateTestMarker(t, db, plan, owner, "Fushimi")
	markerB := testutil.CreateTestMarker(t, db, plan, owner, "Kiyomizu")
	schedule := testutil.CreateTestDaySchedule(t, db, plan, "2025-05-01")
	slot := testutil.CreateTestSlot(t, db, schedule, 1)

	otherPlan := testutil.CreateTestPlan(t, db, owner, "Osaka")
	otherMarker := testutil.CreateTestMarker(t, db, otherPlan, owner, "Dotonbori")

	vote, err := CastVote(db, slot.ID, marker.ID, member.ID)
	if err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	if vote.ScheduleSlotID != slot.ID || vote.MarkerID != marker.ID || vote.VotedUserID != member.ID {
		t.Errorf("Unexpected vote %+v", vote)
	}

	tests := []struct {
		name                   string
		slotID, markerID, user uint
		kind                   error
	}{
		{"second vote by same user", slot.ID, marker.ID, member.ID, ErrConflict},
		{"second vote by same user for another marker", slot.ID, markerB.ID, member.ID, ErrConflict},
		{"missing slot", 9999, marker.ID, owner.ID, ErrNotFound},
		{"missing marker", slot.ID, 9999, owner.ID, ErrNotFound},
		{"missing user", slot.ID, marker.ID, 9999, ErrNotFound},
		{"marker from another plan", slot.ID, otherMarker.ID, owner.ID, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CastVote(db, tt.slotID, tt.markerID, tt.user)
			assertKind(t, err, tt.kind)
		})
	}

	var count int64
	db.Model(&models.SlotVote{}).Where("schedule_slot_id = ?", slot.ID).Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly one vote, got %d", count)
	}
}

func TestDuplicateVoteRejectedByStorage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateTestUser(t, db, "owner")
	plan := testutil.CreateTestPlan(t, db, owner, "Kyoto")
	markerA := testutil.CreateTestMarker(t, db, plan, owner, "A")
	markerB := testutil.CreateTestMarker(t, db, plan, owner, "B")
	schedule := testutil.CreateTestDaySchedule(t, db, plan, "2025-05-01")
	slot := testutil.CreateTestSlot(t, db, schedule, 1)

	testutil.CastTestVote(t, db, slot, markerA, owner)

	// Bypass the service pre-check, as a racing request would.
	err := db.Create(&models.SlotVote{ScheduleSlotID: slot.ID, MarkerID: markerB.ID, VotedUserID: owner.ID}).Error
	if err == nil {
		t.Fatal("Expected unique index to reject a second vote")
	}
	if !isUniqueViolation(err) {
		t.Errorf("Expected unique violation, got %v", err)
	}
}

func TestConfirmSlot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	var users []*models.User
	for _, name := range []string{"u1", "u2", "u3", "u4", "u5"} {
		users = append(users, testutil.CreateTestUser(t, db, name))
	}
	plan := testutil.CreateTestPlan(t, db, users[0], "Kyoto")
	markerA := testutil.CreateTestMarker(t, db, plan, users[0], "A")
	markerB := testutil.CreateTestMarker(t, db, plan, users[0], "B")
	schedule := testutil.CreateTestDaySchedule(t, db, plan, "2025-05-01")

	t.Run("no votes", func(t *testing.T) {
		slot := testutil.CreateTestSlot(t, db, schedule, 1)
		_, err := ConfirmSlot(db, slot.ID)
		assertKind(t, err, ErrInvalidState)

		var reloaded models.ScheduleSlot
		db.First(&reloaded, slot.ID)
		if reloaded.HoldingMarkerID != nil {
			t.Errorf("Expected slot to stay unconfirmed")
		}
	})

	t.Run("missing slot", func(t *testing.T) {
		_, err := ConfirmSlot(db, 9999)
		assertKind(t, err, ErrNotFound)
	})

	t.Run("majority wins", func(t *testing.T) {
		slot := testutil.CreateTestSlot(t, db, schedule, 2)
		testutil.CastTestVote(t, db, slot, markerB, users[0])
		testutil.CastTestVote(t, db, slot, markerA, users[1])
		testutil.CastTestVote(t, db, slot, markerA, users[2])
		testutil.CastTestVote(t, db, slot, markerA, users[3])

		confirmed, err := ConfirmSlot(db, slot.ID)
		if err != nil {
			t.Fatalf("ConfirmSlot: %v", err)
		}
		if confirmed.HoldingMarkerID == nil || *confirmed.HoldingMarkerID != markerA.ID {
			t.Errorf("Expected marker %d to win, got %v", markerA.ID, confirmed.HoldingMarkerID)
		}

		var marker models.Marker
		db.First(&marker, markerA.ID)
		if !marker.IsScheduled {
			t.Errorf("Expected winning marker to be scheduled")
		}
	})

	t.Run("tie is deterministic", func(t *testing.T) {
		slot := testutil.CreateTestSlot(t, db, schedule, 3)
		testutil.CastTestVote(t, db, slot, markerB, users[0])
		testutil.CastTestVote(t, db, slot, markerA, users[1])
		testutil.CastTestVote(t, db, slot, markerB, users[2])
		testutil.CastTestVote(t, db, slot, markerA, users[3])

		for i := 0; i < 3; i++ {
			confirmed, err := ConfirmSlot(db, slot.ID)
			if err != nil {
				t.Fatalf("ConfirmSlot: %v", err)
			}
			if confirmed.HoldingMarkerID == nil || *confirmed.HoldingMarkerID != markerB.ID {
				t.Fatalf("Run %d: expected first-voted marker %d, got %v", i, markerB.ID, confirmed.HoldingMarkerID)
			}
		}
	})

	t.Run("reconfirm follows new votes", func(t *testing.T) {
		slot := testutil.CreateTestSlot(t, db, schedule, 4)
		markerC := testutil.CreateTestMarker(t, db, plan, users[0], "C")
		markerD := testutil.CreateTestMarker(t, db, plan, users[0], "D")
		testutil.CastTestVote(t, db, slot, markerC, users[0])

		if _, err := ConfirmSlot(db, slot.ID); err != nil {
			t.Fatalf("ConfirmSlot: %v", err)
		}

		testutil.CastTestVote(t, db, slot, markerD, users[1])
		testutil.CastTestVote(t, db, slot, markerD, users[2])

		confirmed, err := ConfirmSlot(db, slot.ID)
		if err != nil {
			t.Fatalf("ConfirmSlot: %v", err)
		}
		if *confirmed.HoldingMarkerID != markerD.ID {
			t.Errorf("Expected marker %d after new votes, got %d", markerD.ID, *confirmed.HoldingMarkerID)
		}

		var previous, current models.Marker
		db.First(&previous, markerC.ID)
		db.First(&current, markerD.ID)
		if previous.IsScheduled {
			t.Errorf("Expected replaced marker to be unscheduled")
		}
		if !current.IsScheduled {
			t.Errorf("Expected new winner to be scheduled")
		}
	})
}

func TestListVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	u1 := testutil.CreateTestUser(t, db, "u1")
	u2 := testutil.CreateTestUser(t, db, "u2")
	plan := testutil.CreateTestPlan(t, db, u1, "Kyoto")
	marker := testutil.CreateTestMarker(t, db, plan, u1, "A")
	schedule := testutil.CreateTestDaySchedule(t, db, plan, "2025-05-01")
	slot := testutil.CreateTestSlot(t, db, schedule, 1)

	first := testutil.CastTestVote(t, db, slot, marker, u2)
	second := testutil.CastTestVote(t, db, slot, marker, u1)

	votes, err := ListVotes(db, slot.ID)
	if err != nil {
		t.Fatalf("ListVotes: %v", err)
	}
	if len(votes) != 2 || votes[0].ID != first.ID || votes[1].ID != second.ID {
		t.Errorf("Expected votes in cast order, got %+v", votes)
	}

	_, err = ListVotes(db, 9999)
	assertKind(t, err, ErrNotFound)
}
