package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryKind determines whether transactions in a category are
// income or expenses.
type CategoryKind string

const (
	CategoryKindIncome  CategoryKind = "income"
	CategoryKindExpense CategoryKind = "expense"
)

// Category groups transactions, e.g. "Groceries" or "Salary".
// Categories can be nested exactly one level deep via ParentID.
type Category struct {
	DefaultModel
	UserID   uuid.UUID `gorm:"index"`
	Name     string
	Kind     CategoryKind
	ParentID *uuid.UUID
	Parent   *Category `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Color    string
	Icon     string
}

// BeforeSave trims whitespace and verifies the category kind.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Color = strings.TrimSpace(c.Color)
	c.Icon = strings.TrimSpace(c.Icon)

	if c.Kind == "" {
		c.Kind = CategoryKindExpense
	}

	if c.Kind != CategoryKindIncome && c.Kind != CategoryKindExpense {
		return ErrCategoryKindInvalid
	}

	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Category)
	return c.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the category before
// committing an update to the database.
func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("ParentID") {
		toSave := tx.Statement.Dest.(Category)
		return c.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies that the parent category exists and is
// itself a top level category.
func (c *Category) checkIntegrity(tx *gorm.DB, toSave Category) error {
	if toSave.ParentID == nil {
		return nil
	}

	var parent Category
	err := tx.First(&parent, "id = ? AND user_id = ?", *toSave.ParentID, toSave.UserID).Error
	if err != nil {
		return err
	}

	if parent.ParentID != nil {
		return ErrCategoryNestingTooDeep
	}

	return nil
}
