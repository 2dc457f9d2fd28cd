package models

import (
	"time"

	"github.com/pennyflow/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is the spending ceiling for one category in one month.
// The amount spent against it is not stored, it is computed from the
// matching transactions on read.
type Budget struct {
	DefaultModel
	UserID     uuid.UUID `gorm:"index;uniqueIndex:budget_user_category_month"`
	CategoryID uuid.UUID `gorm:"uniqueIndex:budget_user_category_month"`
	Category   Category  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Month      types.Month `gorm:"uniqueIndex:budget_user_category_month"`
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

// BeforeSave verifies the budget amount.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	if b.Amount.IsNegative() {
		return ErrBudgetAmountNegative
	}

	return nil
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	_ = b.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Budget)
	return b.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the budget before
// committing an update to the database.
func (b *Budget) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("CategoryID") {
		toSave := tx.Statement.Dest.(Budget)
		return b.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (b *Budget) checkIntegrity(tx *gorm.DB, toSave Budget) error {
	return tx.First(&Category{}, "id = ? AND user_id = ?", toSave.CategoryID, toSave.UserID).Error
}

// Spent calculates the sum of the absolute amounts of all expense
// transactions for the budget's category within the budget month.
func (b Budget) Spent(db *gorm.DB) (decimal.Decimal, error) {
	var transactions []Transaction

	start := time.Date(b.Month.Year(), b.Month.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	err := db.
		Where("user_id = ?", b.UserID).
		Where("category_id = ?", b.CategoryID).
		Where("amount < ?", decimal.Zero).
		Where("date >= ? AND date < ?", start, end).
		Find(&transactions).Error
	if err != nil {
		return decimal.Zero, err
	}

	spent := decimal.Zero
	for _, t := range transactions {
		spent = spent.Add(t.Amount.Abs())
	}

	return spent, nil
}
