package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// AccountType is the type of an account.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeInvestment AccountType = "investment"
)

// Account represents a real-world account money flows in and out of,
// e.g. a bank account or a credit card.
type Account struct {
	DefaultModel
	UserID   uuid.UUID       `gorm:"index"`
	Name     string
	Type     AccountType
	Balance  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Currency string
	Archived bool
}

// BeforeSave ensures consistency for the account.
//
// It trims whitespace from all strings and verifies the
// account type and currency.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)

	if a.Type == "" {
		a.Type = AccountTypeChecking
	}

	if !slices.Contains([]AccountType{AccountTypeChecking, AccountTypeSavings, AccountTypeCredit, AccountTypeInvestment}, a.Type) {
		return ErrAccountTypeInvalid
	}

	return checkCurrency(a.Currency)
}
