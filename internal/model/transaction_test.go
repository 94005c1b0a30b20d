package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		wantTime   *time.Time
		wantAmount *float64
		name       string
		input      string
	}{
		{
			name:       "backend shape",
			input:      `{"timestamp":"2024-01-05T10:00:00Z","amount_aed":100.5}`,
			wantTime:   ptr(time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)),
			wantAmount: ptr(100.5),
		},
		{
			name:       "naive timestamp read as UTC",
			input:      `{"timestamp":"2024-02-01T23:30:00.123456","amount_aed":30}`,
			wantTime:   ptr(time.Date(2024, 2, 1, 23, 30, 0, 123456000, time.UTC)),
			wantAmount: ptr(30.0),
		},
		{
			name:       "amount fallback field",
			input:      `{"timestamp":"2024-03-01","amount":12}`,
			wantTime:   ptr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
			wantAmount: ptr(12.0),
		},
		{
			name:       "numeric string amount",
			input:      `{"timestamp":"2024-03-01","amount_aed":" 7.25 "}`,
			wantTime:   ptr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
			wantAmount: ptr(7.25),
		},
		{
			name:       "zero amount is kept",
			input:      `{"timestamp":"2024-03-01","amount_aed":0}`,
			wantTime:   ptr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
			wantAmount: ptr(0.0),
		},
		{
			name:  "null amount and empty timestamp",
			input: `{"timestamp":"","amount_aed":null}`,
		},
		{
			name:  "garbage timestamp",
			input: `{"timestamp":"yesterday","amount_aed":"lots"}`,
		},
		{
			name:  "not an object",
			input: `42`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var txn Transaction
			require.NoError(t, json.Unmarshal([]byte(tt.input), &txn))
			if tt.wantTime == nil {
				assert.Nil(t, txn.Timestamp)
			} else {
				require.NotNil(t, txn.Timestamp)
				assert.True(t, tt.wantTime.Equal(*txn.Timestamp), "got %s", txn.Timestamp)
			}
			assert.Equal(t, tt.wantAmount, txn.Amount)
			assert.Equal(t, tt.wantTime != nil && tt.wantAmount != nil, txn.IsComplete())
		})
	}
}

func TestTransaction_ListDecodeSurvivesBadEntries(t *testing.T) {
	var txns []Transaction
	input := `[{"timestamp":"2024-01-05T00:00:00Z","amount_aed":1},{"timestamp":null},{"amount_aed":"x"}]`
	require.NoError(t, json.Unmarshal([]byte(input), &txns))
	require.Len(t, txns, 3)
	assert.True(t, txns[0].IsComplete())
	assert.False(t, txns[1].IsComplete())
	assert.False(t, txns[2].IsComplete())
}

func TestTransaction_MarshalJSON(t *testing.T) {
	txn := NewTransaction(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 100)
	data, err := json.Marshal(txn)
	require.NoError(t, err)
	assert.JSONEq(t, `{"timestamp":"2024-01-05T00:00:00Z","amount_aed":100}`, string(data))

	var back Transaction
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, txn.Amount, back.Amount)
	assert.True(t, txn.Timestamp.Equal(*back.Timestamp))
}

func ptr[T any](v T) *T {
	return &v
}
