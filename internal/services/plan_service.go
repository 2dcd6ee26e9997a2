package services

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/farellandr/travel-maker/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlanCreate struct {
	UserID        uint
	Name          string
	Description   *string
	CityToStay    *string
	InitLatitude  float64
	InitLongitude float64
	StartDate     time.Time
	EndDate       time.Time
}

// PlanPatch holds the plan fields a PUT may change. Nil means unchanged.
type PlanPatch struct {
	Name          *string
	Description   *string
	CityToStay    *string
	InitLatitude  *float64
	InitLongitude *float64
	StartDate     *time.Time
	EndDate       *time.Time
}

func validatePlanText(name string, description, city *string) error {
	if n := utf8.RuneCountInString(name); n < 1 || n > 100 {
		return invalid("Plan name must be 1-100 characters.")
	}
	if description != nil && utf8.RuneCountInString(*description) > 512 {
		return invalid("Description must be at most 512 characters.")
	}
	if city != nil && utf8.RuneCountInString(*city) > 20 {
		return invalid("City must be at most 20 characters.")
	}
	return nil
}

func validatePlanDates(start, end time.Time) error {
	if start.After(end) {
		return invalid("Start date must not be after end date.")
	}
	return nil
}

func findPlan(tx *gorm.DB, planID uint) (*models.Plan, error) {
	var plan models.Plan
	if err := tx.First(&plan, planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Plan not found.")
		}
		return nil, err
	}
	return &plan, nil
}

func findPlanForUpdate(tx *gorm.DB, planID uint) (*models.Plan, error) {
	return findPlan(tx.Clauses(clause.Locking{Strength: "UPDATE"}), planID)
}

func findMembership(tx *gorm.DB, planID, userID uint) (*models.UserInPlan, error) {
	var member models.UserInPlan
	err := tx.Where("plan_id = ? AND user_id = ?", planID, userID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// CreatePlan stores the plan and the creator's owner membership in one
// transaction.
func CreatePlan(db *gorm.DB, input PlanCreate) (*models.Plan, error) {
	if err := validatePlanText(input.Name, input.Description, input.CityToStay); err != nil {
		return nil, err
	}
	if err := validatePlanDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	var plan models.Plan
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetUser(tx, input.UserID); err != nil {
			return err
		}

		plan = models.Plan{
			Name:          input.Name,
			Description:   input.Description,
			CityToStay:    input.CityToStay,
			InitLatitude:  input.InitLatitude,
			InitLongitude: input.InitLongitude,
			StartDate:     datatypes.Date(input.StartDate),
			EndDate:       datatypes.Date(input.EndDate),
			CreatedUserID: input.UserID,
		}
		if err := tx.Create(&plan).Error; err != nil {
			return err
		}

		owner := models.UserInPlan{
			UserID: input.UserID,
			PlanID: plan.ID,
			Owner:  true,
		}
		return tx.Create(&owner).Error
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func GetPlan(db *gorm.DB, planID uint) (*models.Plan, error) {
	return findPlan(db, planID)
}

// ListPlansForUser returns the non-deleted plans the user is a member of.
func ListPlansForUser(db *gorm.DB, userID uint) ([]models.Plan, error) {
	if _, err := GetUser(db, userID); err != nil {
		return nil, err
	}

	plans := []models.Plan{}
	err := db.Joins("JOIN users_in_plan ON users_in_plan.plan_id = plans.id").
		Where("users_in_plan.user_id = ? AND plans.is_deleted = ?", userID, false).
		Order("plans.id").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// SearchPlans returns non-deleted plans whose name contains keyword.
// Case sensitivity follows the database collation.
func SearchPlans(db *gorm.DB, keyword string) ([]models.Plan, error) {
	plans := []models.Plan{}
	query := db.Where("is_deleted = ?", false)
	if keyword != "" {
		query = query.Where(`name LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(keyword)+"%")
	}
	if err := query.Order("id").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func UpdatePlan(db *gorm.DB, planID uint, patch PlanPatch) (*models.Plan, error) {
	var plan *models.Plan
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		plan, err = findPlanForUpdate(tx, planID)
		if err != nil {
			return err
		}
		if plan.IsDeleted {
			return conflict("Plan has been deleted.")
		}

		name, description, city := plan.Name, plan.Description, plan.CityToStay
		start, end := time.Time(plan.StartDate), time.Time(plan.EndDate)

		updates := map[string]interface{}{}
		if patch.Name != nil {
			name = *patch.Name
			updates["name"] = name
		}
		if patch.Description != nil {
			description = patch.Description
			updates["description"] = *description
		}
		if patch.CityToStay != nil {
			city = patch.CityToStay
			updates["city_to_stay"] = *city
		}
		if patch.InitLatitude != nil {
			updates["init_latitude"] = *patch.InitLatitude
		}
		if patch.InitLongitude != nil {
			updates["init_longitude"] = *patch.InitLongitude
		}
		if patch.StartDate != nil {
			start = *patch.StartDate
			updates["start_date"] = datatypes.Date(start)
		}
		if patch.EndDate != nil {
			end = *patch.EndDate
			updates["end_date"] = datatypes.Date(end)
		}

		if err := validatePlanText(name, description, city); err != nil {
			return err
		}
		if err := validatePlanDates(start, end); err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(plan).Updates(updates).Error; err != nil {
			return err
		}
		plan, err = findPlan(tx, planID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// JoinPlan adds userID as a non-owner member. The unique (user_id, plan_id)
// index rejects a concurrent duplicate join that slips past the pre-check.
func JoinPlan(db *gorm.DB, planID, userID uint) (*models.UserInPlan, error) {
	var member models.UserInPlan
	err := db.Transaction(func(tx *gorm.DB) error {
		plan, err := findPlan(tx, planID)
		if err != nil {
			return err
		}
		if plan.IsDeleted {
			return conflict("Cannot join a deleted plan.")
		}
		if _, err := GetUser(tx, userID); err != nil {
			return err
		}

		if _, err := findMembership(tx, planID, userID); err == nil {
			return conflict("User is already a member of this plan.")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		member = models.UserInPlan{UserID: userID, PlanID: planID, Owner: false}
		if err := tx.Create(&member).Error; err != nil {
			if isUniqueViolation(err) {
				return conflict("User is already a member of this plan.")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// TransferOwnership moves the owner flag from oldOwnerID to newOwnerID.
// The old flag is cleared before the new one is set so the single-owner
// index holds after every statement.
func TransferOwnership(db *gorm.DB, planID, oldOwnerID, newOwnerID uint) error {
	if oldOwnerID == newOwnerID {
		return invalid("New owner must be a different user.")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := findPlanForUpdate(tx, planID); err != nil {
			return err
		}

		oldMember, err := findMembership(tx, planID, oldOwnerID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if oldMember == nil || !oldMember.Owner {
			return forbidden("Only the plan owner can transfer ownership.")
		}

		newMember, err := findMembership(tx, planID, newOwnerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("New owner is not a member of this plan.")
			}
			return err
		}

		if err := tx.Model(oldMember).Update("owner", false).Error; err != nil {
			return err
		}
		return tx.Model(newMember).Update("owner", true).Error
	})
}

// SoftDeletePlan marks the plan deleted. Only the creator may do so.
func SoftDeletePlan(db *gorm.DB, planID, requesterID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		plan, err := findPlanForUpdate(tx, planID)
		if err != nil {
			return err
		}
		if plan.CreatedUserID != requesterID {
			return forbidden("Only the plan creator can delete this plan.")
		}
		if plan.IsDeleted {
			return conflict("Plan has already been deleted.")
		}
		return tx.Model(plan).Update("is_deleted", true).Error
	})
}

func ListMembers(db *gorm.DB, planID uint) ([]models.UserInPlan, error) {
	if _, err := findPlan(db, planID); err != nil {
		return nil, err
	}

	members := []models.UserInPlan{}
	err := db.Preload("User").Where("plan_id = ?", planID).Order("id").Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// IsMember reports whether userID belongs to planID.
func IsMember(db *gorm.DB, planID, userID uint) (bool, error) {
	var count int64
	err := db.Model(&models.UserInPlan{}).Where("plan_id = ? AND user_id = ?", planID, userID).Count(&count).Error
	return count > 0, err
}
