package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SavingsGoal is a target amount to be saved until a target date.
// Completion is a flag set by clients, there is no automatic
// transition when the target is reached.
type SavingsGoal struct {
	DefaultModel
	UserID        uuid.UUID `gorm:"index"`
	Name          string
	TargetAmount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	CurrentAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	StartDate     time.Time
	TargetDate    *time.Time
	CategoryID    *uuid.UUID
	Category      *Category `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Completed     bool
}

// BeforeSave trims whitespace and verifies the target amount.
func (g *SavingsGoal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)

	if !g.TargetAmount.IsPositive() {
		return ErrGoalAmountNotPositive
	}

	if g.StartDate.IsZero() {
		g.StartDate = time.Now().In(time.UTC)
	}

	return nil
}

// Progress returns how much of the target amount has been reached,
// in percent. The result is capped at 100.
func (g SavingsGoal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}

	progress := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100))
	if progress.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.NewFromInt(100)
	}

	return progress
}
