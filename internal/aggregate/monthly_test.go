package aggregate

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/Veraticus/finyo-console/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(ts string, amount float64) model.Transaction {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return model.NewTransaction(parsed, amount)
}

func TestMonthlyTotals(t *testing.T) {
	tests := []struct {
		name  string
		input []model.Transaction
		want  *MonthlySeries
	}{
		{
			name:  "nil input",
			input: nil,
			want:  nil,
		},
		{
			name:  "empty input",
			input: []model.Transaction{},
			want:  nil,
		},
		{
			name: "all incomplete",
			input: []model.Transaction{
				{},
				{Amount: func() *float64 { v := 10.0; return &v }()},
				{Timestamp: func() *time.Time { v := time.Now(); return &v }()},
			},
			want: nil,
		},
		{
			name: "two months",
			input: []model.Transaction{
				tx("2024-01-05T00:00:00Z", 100),
				tx("2024-01-20T00:00:00Z", 50),
				tx("2024-02-01T00:00:00Z", 30),
			},
			want: &MonthlySeries{Months: []string{"2024-01", "2024-02"}, Amounts: []float64{150, 30}},
		},
		{
			name: "unsorted input across a year boundary",
			input: []model.Transaction{
				tx("2024-01-02T00:00:00Z", 5),
				tx("2023-12-31T10:00:00Z", 7),
				tx("2023-11-15T00:00:00Z", 1),
			},
			want: &MonthlySeries{Months: []string{"2023-11", "2023-12", "2024-01"}, Amounts: []float64{1, 7, 5}},
		},
		{
			name: "bucketed in UTC",
			input: []model.Transaction{
				tx("2024-03-01T02:00:00+04:00", 40),
				tx("2024-03-01T00:00:00Z", 2),
			},
			want: &MonthlySeries{Months: []string{"2024-02", "2024-03"}, Amounts: []float64{40, 2}},
		},
		{
			name: "negative and zero amounts kept",
			input: []model.Transaction{
				tx("2024-05-01T00:00:00Z", 0),
				tx("2024-05-02T00:00:00Z", -20),
			},
			want: &MonthlySeries{Months: []string{"2024-05"}, Amounts: []float64{-20}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyTotals(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want.Months, got.Months)
			assert.InDeltaSlice(t, tt.want.Amounts, got.Amounts, 1e-9)
		})
	}
}

func TestMonthlyTotals_FromWire(t *testing.T) {
	raw := `[
		{"timestamp": "2024-02-10T00:00:00Z", "amount_aed": 20},
		{"timestamp": null, "amount_aed": 99},
		{"timestamp": "2024-01-10 08:00:00", "amount": "12.5"},
		{"timestamp": "not a date", "amount_aed": 1},
		{"amount_aed": 3}
	]`
	var txs []model.Transaction
	require.NoError(t, json.Unmarshal([]byte(raw), &txs))

	got := MonthlyTotals(txs)
	require.NotNil(t, got)
	assert.Equal(t, []string{"2024-01", "2024-02"}, got.Months)
	assert.InDeltaSlice(t, []float64{12.5, 20}, got.Amounts, 1e-9)
}

func TestMonthlyTotals_OrderingProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	for round := 0; round < 50; round++ {
		t.Run(fmt.Sprintf("round_%d", round), func(t *testing.T) {
			n := rng.Intn(40)
			txs := make([]model.Transaction, 0, n)
			for i := 0; i < n; i++ {
				at := base.Add(time.Duration(rng.Intn(5*365*24)) * time.Hour)
				txs = append(txs, model.NewTransaction(at, float64(rng.Intn(1000))))
			}

			got := MonthlyTotals(txs)
			if n == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Len(t, got.Amounts, len(got.Months))
			assert.True(t, sort.StringsAreSorted(got.Months))
			for i := 1; i < len(got.Months); i++ {
				assert.NotEqual(t, got.Months[i-1], got.Months[i])
			}

			var total, summed float64
			for _, entry := range txs {
				total += *entry.Amount
			}
			for _, a := range got.Amounts {
				summed += a
			}
			assert.InDelta(t, total, summed, 1e-6)
		})
	}
}

func TestMonthlySeries_Helpers(t *testing.T) {
	var empty *MonthlySeries
	assert.Equal(t, 0, empty.Len())
	assert.Zero(t, empty.Max())

	s := &MonthlySeries{Months: []string{"2024-01", "2024-02", "2024-03"}, Amounts: []float64{5, 40, 12}}
	assert.Equal(t, 3, s.Len())
	assert.InDelta(t, 40.0, s.Max(), 1e-9)
}
