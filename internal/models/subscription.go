package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// BillingCycle is the interval between two payments of a subscription.
type BillingCycle string

const (
	BillingCycleWeekly    BillingCycle = "weekly"
	BillingCycleMonthly   BillingCycle = "monthly"
	BillingCycleQuarterly BillingCycle = "quarterly"
	BillingCycleYearly    BillingCycle = "yearly"
)

// Next returns the payment date following t for the billing cycle.
func (c BillingCycle) Next(t time.Time) time.Time {
	switch c {
	case BillingCycleWeekly:
		return t.AddDate(0, 0, 7)
	case BillingCycleQuarterly:
		return t.AddDate(0, 3, 0)
	case BillingCycleYearly:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 1, 0)
	}
}

// Subscription is a template for a recurring payment. Advancing the
// next payment date and emitting the matching transaction only happens
// through an explicit process call, there is no background scheduler.
type Subscription struct {
	DefaultModel
	UserID      uuid.UUID `gorm:"index"`
	Name        string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Currency    string
	Cycle       BillingCycle
	NextPayment time.Time
	AccountID   uuid.UUID
	Account     Account `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CategoryID  *uuid.UUID
	Category    *Category `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Active      bool
}

// BeforeSave trims whitespace and verifies amount, cycle and currency.
func (s *Subscription) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)

	if !s.Amount.IsPositive() {
		return ErrSubscriptionAmountNotPositive
	}

	if s.Cycle == "" {
		s.Cycle = BillingCycleMonthly
	}

	if !slices.Contains([]BillingCycle{BillingCycleWeekly, BillingCycleMonthly, BillingCycleQuarterly, BillingCycleYearly}, s.Cycle) {
		return ErrBillingCycleInvalid
	}

	return checkCurrency(s.Currency)
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	_ = s.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Subscription)
	return s.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the subscription before
// committing an update to the database.
func (s *Subscription) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("AccountID") {
		toSave := tx.Statement.Dest.(Subscription)
		return s.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies that the account referenced by the
// subscription exists and belongs to the same user. The subscription
// currency defaults to the currency of the account.
func (s *Subscription) checkIntegrity(tx *gorm.DB, toSave Subscription) error {
	var account Account
	err := tx.First(&account, "id = ? AND user_id = ?", toSave.AccountID, toSave.UserID).Error
	if err != nil {
		return err
	}

	if s.Currency == "" {
		s.Currency = account.Currency
	}

	return nil
}

// ProcessPayment creates the transaction for the next payment of the
// subscription and advances the next payment date by one billing
// cycle. Both writes happen in a single database transaction.
func (s *Subscription) ProcessPayment(db *gorm.DB) (Transaction, error) {
	transaction := Transaction{
		UserID:      s.UserID,
		AccountID:   s.AccountID,
		CategoryID:  s.CategoryID,
		Amount:      s.Amount.Neg(),
		Currency:    s.Currency,
		Description: s.Name,
		Merchant:    s.Name,
		Date:        s.NextPayment,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}

		s.NextPayment = s.Cycle.Next(s.NextPayment)
		return tx.Model(s).Select("NextPayment").Updates(Subscription{NextPayment: s.NextPayment}).Error
	})
	if err != nil {
		return Transaction{}, err
	}

	return transaction, nil
}
