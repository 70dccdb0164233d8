// Package models holds the transfer objects exchanged over the API and
// their validation rules. Both the server handlers and the HTTP client use
// these types, so the wire shape is defined once.
package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

// MaxPrice is the exclusive upper bound for a book price. Fifteen significant
// digits survive sqlite's REAL storage of NUMERIC columns exactly.
var MaxPrice = decimal.New(1, 13)

var (
	errNegative      = errors.New("must not be negative")
	errTooLarge      = errors.New("must be less than 10000000000000")
	errTooManyPlaces = errors.New("must have at most 2 decimal places")
)

// validPrice accepts 0 <= price < MaxPrice with at most two decimal places.
func validPrice(value interface{}) error {
	var v decimal.Decimal
	switch p := value.(type) {
	case decimal.Decimal:
		v = p
	case *decimal.Decimal:
		if p == nil {
			return nil
		}
		v = *p
	default:
		return nil
	}

	switch {
	case v.IsNegative():
		return errNegative
	case v.GreaterThanOrEqual(MaxPrice):
		return errTooLarge
	case !v.Equal(v.Truncate(2)):
		return errTooManyPlaces
	}
	return nil
}

