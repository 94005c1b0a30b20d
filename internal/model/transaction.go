package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Transaction is a single repayment record from the backend.
// Either field may be missing; aggregation skips incomplete entries.
type Transaction struct {
	Timestamp *time.Time
	Amount    *float64
}

// IsComplete reports whether the transaction carries both a timestamp and an amount.
func (t Transaction) IsComplete() bool {
	return t.Timestamp != nil && t.Amount != nil
}

// UnmarshalJSON decodes a transaction without rejecting malformed members.
// The amount is read from amount_aed, falling back to amount.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	*t = Transaction{}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil
	}

	switch ts := doc.Get("timestamp"); ts.Type {
	case gjson.String:
		if parsed, ok := ParseTimestamp(ts.Str); ok {
			t.Timestamp = &parsed
		}
	case gjson.Number:
		parsed := time.UnixMilli(ts.Int()).UTC()
		t.Timestamp = &parsed
	}

	amount := doc.Get("amount_aed")
	if !amount.Exists() || amount.Type == gjson.Null {
		amount = doc.Get("amount")
	}
	switch amount.Type {
	case gjson.Number:
		v := amount.Num
		t.Amount = &v
	case gjson.String:
		if v, err := strconv.ParseFloat(strings.TrimSpace(amount.Str), 64); err == nil {
			t.Amount = &v
		}
	}

	return nil
}

// MarshalJSON encodes the transaction in the backend's wire shape.
func (t Transaction) MarshalJSON() ([]byte, error) {
	out := struct {
		Timestamp *string  `json:"timestamp"`
		Amount    *float64 `json:"amount_aed"`
	}{Amount: t.Amount}
	if t.Timestamp != nil {
		ts := t.Timestamp.UTC().Format(time.RFC3339)
		out.Timestamp = &ts
	}
	return json.Marshal(out)
}

// NewTransaction builds a complete transaction.
func NewTransaction(at time.Time, amount float64) Transaction {
	return Transaction{Timestamp: &at, Amount: &amount}
}
