package types

import (
	"strings"

	"github.com/shopspring/decimal"
	ierr "github.com/michaello/backoffice/internal/errors"
)

// currencySymbols maps lowercase 3 letter ISO codes to display symbols.
var currencySymbols = map[string]string{
	"eur": "€",
	"usd": "$",
	"gbp": "£",
	"chf": "CHF",
}

// GetCurrencySymbol returns the symbol for a given currency code
// if the code is not found, it returns the code itself
func GetCurrencySymbol(code string) string {
	if symbol, ok := currencySymbols[strings.ToLower(code)]; ok {
		return symbol
	}
	return code
}

// ValidateCurrencyCode accepts lowercase 3 letter ISO codes.
func ValidateCurrencyCode(code string) error {
	if len(code) != 3 || code != strings.ToLower(code) {
		return ierr.NewError("invalid currency code").
			WithHint("Currency must be a lowercase 3 letter ISO code").
			WithReportableDetails(map[string]any{
				"currency": code,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToMinorUnits converts a two decimal place amount to integer minor units
// (cents) for the payment processor.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
