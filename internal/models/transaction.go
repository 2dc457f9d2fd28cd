package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionStatus is the clearing state of a transaction.
type TransactionStatus string

const (
	TransactionStatusCleared TransactionStatus = "cleared"
	TransactionStatusPending TransactionStatus = "pending"
)

// Transaction represents a single movement of money on an account.
// Negative amounts are expenses, positive amounts are income.
type Transaction struct {
	DefaultModel
	UserID      uuid.UUID `gorm:"index"`
	AccountID   uuid.UUID `gorm:"index"`
	Account     Account   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CategoryID  *uuid.UUID
	Category    *Category `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Currency    string
	Description string
	Merchant    string
	Date        time.Time
	Status      TransactionStatus
	Flagged     bool
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
func (t *Transaction) AfterFind(_ *gorm.DB) (err error) {
	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave sets the timezone for the Date to UTC and verifies
// the status and currency.
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	t.Description = strings.TrimSpace(t.Description)
	t.Merchant = strings.TrimSpace(t.Merchant)

	if t.Status == "" {
		t.Status = TransactionStatusCleared
	}

	if t.Status != TransactionStatusCleared && t.Status != TransactionStatusPending {
		return ErrTransactionStatusInvalid
	}

	return checkCurrency(t.Currency)
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Transaction)
	return t.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the transaction before
// committing an update to the database.
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("AccountID") {
		toSave := tx.Statement.Dest.(Transaction)
		return t.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies that the account referenced by the
// transaction exists and belongs to the same user. The transaction
// currency defaults to the currency of the account.
func (t *Transaction) checkIntegrity(tx *gorm.DB, toSave Transaction) error {
	var account Account
	err := tx.First(&account, "id = ? AND user_id = ?", toSave.AccountID, toSave.UserID).Error
	if err != nil {
		return err
	}

	if t.Currency == "" {
		t.Currency = account.Currency
	}

	return nil
}
