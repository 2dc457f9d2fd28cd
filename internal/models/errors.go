package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrAccountTypeInvalid            = errors.New("the account type must be one of checking, savings, credit, investment")
	ErrCategoryKindInvalid           = errors.New("the category kind must be either income or expense")
	ErrCategoryNestingTooDeep        = errors.New("categories can only be nested one level deep")
	ErrTransactionStatusInvalid      = errors.New("the transaction status must be either cleared or pending")
	ErrCurrencyInvalid               = errors.New("the currency must be a valid ISO 4217 code")
	ErrBudgetMonthNotUnique          = errors.New("you can not create multiple budgets for the same category and month")
	ErrBudgetAmountNegative          = errors.New("budget amounts must not be negative")
	ErrGoalAmountNotPositive         = errors.New("savings goal target amounts must be larger than zero")
	ErrBillingCycleInvalid           = errors.New("the billing cycle must be one of weekly, monthly, quarterly, yearly")
	ErrSubscriptionAmountNotPositive = errors.New("subscription amounts must be larger than zero")
	ErrRuleMatchEmpty                = errors.New("the match pattern of a category rule must not be empty")
)
