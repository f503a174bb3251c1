// Package players holds player-level computations that sit between storage
// and the HTTP handlers.
package players

import (
	"errors"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	dbgen "github.com/codr1/leagueapi/internal/db/generated"
)

var (
	ErrEmptyInput        = errors.New("no scores to rank")
	ErrInvalidPercentile = errors.New("percentile must be between 1 and 100")
	ErrIndexBoundary     = errors.New("percentile index out of range")
)

// ValidatePercentile reports whether p lies in [1,100].
func ValidatePercentile(p float64) error {
	if math.IsNaN(p) || p < 1 || p > 100 {
		return ErrInvalidPercentile
	}
	return nil
}

// ComputePercentile returns the score at floor(p/100*n) of the ascending
// order of scores. p == 100 yields the maximum. The input is not modified.
func ComputePercentile(scores []decimal.Decimal, p float64) (decimal.Decimal, error) {
	if err := ValidatePercentile(p); err != nil {
		return decimal.Decimal{}, err
	}
	n := len(scores)
	if n == 0 {
		return decimal.Decimal{}, ErrEmptyInput
	}

	sorted := make([]decimal.Decimal, n)
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})

	idx := int(math.Floor(p * float64(n) / 100))
	if idx == n {
		idx = n - 1
	}
	if idx < 0 || idx >= n {
		return decimal.Decimal{}, ErrIndexBoundary
	}
	return sorted[idx], nil
}

// FilterAbovePercentile keeps the players whose average score is at or
// above the p-th percentile cutoff, in input order.
func FilterAbovePercentile(roster []dbgen.Player, p float64) ([]dbgen.Player, error) {
	if err := ValidatePercentile(p); err != nil {
		return nil, err
	}
	if len(roster) == 0 {
		return nil, ErrEmptyInput
	}

	scores := make([]decimal.Decimal, len(roster))
	for i, player := range roster {
		scores[i] = player.AverageScore.Decimal
	}
	cutoff, err := ComputePercentile(scores, p)
	if err != nil {
		return nil, err
	}

	top := make([]dbgen.Player, 0, len(roster))
	for _, player := range roster {
		if player.AverageScore.GreaterThanOrEqual(cutoff) {
			top = append(top, player)
		}
	}
	return top, nil
}
