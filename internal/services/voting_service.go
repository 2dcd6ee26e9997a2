package services

import (
	"sort"

	"github.com/farellandr/travel-maker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MarkerTally is the vote count of one marker on a slot.
type MarkerTally struct {
	MarkerID    uint `json:"marker_id"`
	Votes       int  `json:"votes"`
	FirstVoteID uint `json:"first_vote_id"`
}

// TallyVotes counts votes per marker, most votes first. Markers with equal
// counts are ordered by their earliest vote (lowest vote id), so the first
// entry is the winner and the order does not depend on the input order.
func TallyVotes(votes []models.SlotVote) []MarkerTally {
	byMarker := make(map[uint]*MarkerTally)
	for _, vote := range votes {
		t, ok := byMarker[vote.MarkerID]
		if !ok {
			t = &MarkerTally{MarkerID: vote.MarkerID, FirstVoteID: vote.ID}
			byMarker[vote.MarkerID] = t
		}
		t.Votes++
		if vote.ID < t.FirstVoteID {
			t.FirstVoteID = vote.ID
		}
	}

	tallies := make([]MarkerTally, 0, len(byMarker))
	for _, t := range byMarker {
		tallies = append(tallies, *t)
	}
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].Votes != tallies[j].Votes {
			return tallies[i].Votes > tallies[j].Votes
		}
		return tallies[i].FirstVoteID < tallies[j].FirstVoteID
	})
	return tallies
}

// CastVote records userID's vote for markerID on slotID. A user votes once
// per slot; the unique (schedule_slot_id, voted_user_id) index enforces it
// even when two requests race past the pre-check.
func CastVote(db *gorm.DB, slotID, markerID, userID uint) (*models.SlotVote, error) {
	var vote models.SlotVote
	err := db.Transaction(func(tx *gorm.DB) error {
		slot, err := findSlot(tx, slotID)
		if err != nil {
			return err
		}
		marker, err := findMarker(tx, markerID)
		if err != nil {
			return err
		}
		if _, err := GetUser(tx, userID); err != nil {
			return err
		}

		schedule, err := findDaySchedule(tx, slot.DayScheduleID)
		if err != nil {
			return err
		}
		if marker.PlanID != schedule.PlanID {
			return invalid("Marker does not belong to this slot's plan.")
		}

		var existing int64
		err = tx.Model(&models.SlotVote{}).
			Where("schedule_slot_id = ? AND voted_user_id = ?", slotID, userID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return conflict("User has already voted on this slot.")
		}

		vote = models.SlotVote{
			ScheduleSlotID: slotID,
			MarkerID:       markerID,
			VotedUserID:    userID,
		}
		if err := tx.Create(&vote).Error; err != nil {
			if isUniqueViolation(err) {
				return conflict("User has already voted on this slot.")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// ListVotes returns the slot's votes in the order they were cast.
func ListVotes(db *gorm.DB, slotID uint) ([]models.SlotVote, error) {
	if _, err := findSlot(db, slotID); err != nil {
		return nil, err
	}

	votes := []models.SlotVote{}
	if err := db.Where("schedule_slot_id = ?", slotID).Order("id").Find(&votes).Error; err != nil {
		return nil, err
	}
	return votes, nil
}

// ConfirmSlot tallies the slot's current votes and stores the winner as the
// slot's holding marker. Confirming again recomputes from the votes present
// at that moment, so the winner may change if votes were added meanwhile.
func ConfirmSlot(db *gorm.DB, slotID uint) (*models.ScheduleSlot, error) {
	var slot *models.ScheduleSlot
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		slot, err = findSlot(tx.Clauses(clause.Locking{Strength: "UPDATE"}), slotID)
		if err != nil {
			return err
		}

		votes := []models.SlotVote{}
		if err := tx.Where("schedule_slot_id = ?", slotID).Order("id").Find(&votes).Error; err != nil {
			return err
		}
		if len(votes) == 0 {
			return invalidState("No votes have been cast for this slot.")
		}

		winner := TallyVotes(votes)[0].MarkerID
		var previous *uint
		if slot.HoldingMarkerID != nil {
			held := *slot.HoldingMarkerID
			previous = &held
		}

		if err := tx.Model(&models.ScheduleSlot{}).Where("id = ?", slotID).Update("holding_marker_id", winner).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Marker{}).Where("id = ?", winner).Update("is_scheduled", true).Error; err != nil {
			return err
		}
		if previous != nil && *previous != winner {
			if err := refreshMarkerScheduled(tx, *previous); err != nil {
				return err
			}
		}

		slot, err = findSlot(tx, slotID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return slot, nil
}

// refreshMarkerScheduled sets is_scheduled from whether any slot still holds
// the marker.
func refreshMarkerScheduled(tx *gorm.DB, markerID uint) error {
	var holding int64
	if err := tx.Model(&models.ScheduleSlot{}).Where("holding_marker_id = ?", markerID).Count(&holding).Error; err != nil {
		return err
	}
	return tx.Model(&models.Marker{}).Where("id = ?", markerID).Update("is_scheduled", holding > 0).Error
}
