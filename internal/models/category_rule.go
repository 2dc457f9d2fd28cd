package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// CategoryRule assigns a category to new transactions whose merchant
// matches a glob pattern. Rules are applied in ascending priority
// order, the first match wins.
type CategoryRule struct {
	DefaultModel
	UserID     uuid.UUID `gorm:"index"`
	Priority   uint
	Match      string
	CategoryID uuid.UUID
	Category   Category `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeSave trims whitespace and verifies the match pattern.
func (r *CategoryRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)

	if r.Match == "" {
		return ErrRuleMatchEmpty
	}

	return nil
}

func (r *CategoryRule) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*CategoryRule)
	return r.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the rule before
// committing an update to the database.
func (r *CategoryRule) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("CategoryID") {
		toSave := tx.Statement.Dest.(CategoryRule)
		return r.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (r *CategoryRule) checkIntegrity(tx *gorm.DB, toSave CategoryRule) error {
	return tx.First(&Category{}, "id = ? AND user_id = ?", toSave.CategoryID, toSave.UserID).Error
}

// MatchCategoryRules returns the category ID of the first rule of the
// user whose pattern matches the merchant, nil when no rule matches.
func MatchCategoryRules(db *gorm.DB, userID uuid.UUID, merchant string) (*uuid.UUID, error) {
	var rules []CategoryRule

	err := db.
		Where("user_id = ?", userID).
		Order("priority ASC, datetime(created_at) ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}

	for _, rule := range rules {
		if glob.Glob(rule.Match, merchant) {
			id := rule.CategoryID
			return &id, nil
		}
	}

	return nil, nil
}
