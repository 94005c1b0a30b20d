// Package aggregate turns raw backend records into the series the dashboard
// draws. Every function here is pure.
package aggregate

import (
	"sort"

	"github.com/Veraticus/finyo-console/internal/model"
)

// MonthKeyLayout is the layout of a monthly bucket key.
const MonthKeyLayout = "2006-01"

// MonthlySeries is a chronological sequence of monthly sums. Months and
// Amounts always have the same length.
type MonthlySeries struct {
	Months  []string
	Amounts []float64
}

// Len returns the number of buckets.
func (s *MonthlySeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Months)
}

// Max returns the largest bucket sum, or 0 for an empty series.
func (s *MonthlySeries) Max() float64 {
	if s.Len() == 0 {
		return 0
	}
	highest := s.Amounts[0]
	for _, amount := range s.Amounts[1:] {
		if amount > highest {
			highest = amount
		}
	}
	return highest
}

// MonthlyTotals sums transaction amounts per UTC calendar month. Entries
// without a timestamp or amount are skipped. It returns nil when no entry
// survives, so callers can tell "nothing to chart" from an empty chart.
func MonthlyTotals(transactions []model.Transaction) *MonthlySeries {
	sums := make(map[string]float64)
	for _, tx := range transactions {
		if !tx.IsComplete() {
			continue
		}
		sums[tx.Timestamp.UTC().Format(MonthKeyLayout)] += *tx.Amount
	}
	if len(sums) == 0 {
		return nil
	}

	// Zero-padded YYYY-MM keys sort chronologically as strings.
	months := make([]string, 0, len(sums))
	for month := range sums {
		months = append(months, month)
	}
	sort.Strings(months)

	amounts := make([]float64, len(months))
	for i, month := range months {
		amounts[i] = sums[month]
	}
	return &MonthlySeries{Months: months, Amounts: amounts}
}
