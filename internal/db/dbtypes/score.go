// Package dbtypes holds column types the generated query layer maps to.
package dbtypes

import (
	"github.com/shopspring/decimal"
)

const scorePlaces = 2

// Score is a two-place decimal stored as TEXT. It scans and binds like
// decimal.Decimal but always renders with two decimal places.
type Score struct {
	decimal.Decimal
}

func NewScore(d decimal.Decimal) Score {
	return Score{Decimal: d}
}

// RequireScore parses s and panics on error. Intended for fixtures.
func RequireScore(s string) Score {
	return Score{Decimal: decimal.RequireFromString(s)}
}

func (s Score) String() string {
	return s.StringFixed(scorePlaces)
}

func (s Score) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.StringFixed(scorePlaces) + `"`), nil
}

func (s Score) MarshalText() ([]byte, error) {
	return []byte(s.StringFixed(scorePlaces)), nil
}
