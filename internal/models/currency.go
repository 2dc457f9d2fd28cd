package models

import (
	"golang.org/x/text/currency"
)

// checkCurrency verifies that a currency code is a valid ISO 4217 code.
// Empty codes are allowed, the currency then defaults on create.
func checkCurrency(code string) error {
	if code == "" {
		return nil
	}

	if _, err := currency.ParseISO(code); err != nil {
		return ErrCurrencyInvalid
	}

	return nil
}
