package insight

import (
	"encoding/json"
	"testing"

	"github.com/Veraticus/finyo-console/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v float64) *float64 { return &v }

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		score    *float64
		wantTier Tier
		wantText string
	}{
		{name: "missing", score: nil, wantTier: TierLow, wantText: "N/A"},
		{name: "clearly high", score: score(0.92), wantTier: TierHigh, wantText: "0.92"},
		{name: "just above high", score: score(0.71), wantTier: TierHigh, wantText: "0.71"},
		{name: "exactly high threshold", score: score(0.7), wantTier: TierModerate, wantText: "0.70"},
		{name: "rounds down onto high threshold", score: score(0.7049), wantTier: TierModerate, wantText: "0.70"},
		{name: "rounds up past high threshold", score: score(0.7051), wantTier: TierHigh, wantText: "0.71"},
		{name: "just above moderate", score: score(0.41), wantTier: TierModerate, wantText: "0.41"},
		{name: "exactly moderate threshold", score: score(0.4), wantTier: TierLow, wantText: "0.40"},
		{name: "zero", score: score(0), wantTier: TierLow, wantText: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, text := Classify(tt.score)
			assert.Equal(t, tt.wantTier, tier)
			assert.Equal(t, tt.wantText, text)
		})
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		app  model.Application
		want string
	}{
		{
			name: "high",
			app:  model.Application{ApplicantID: 3, RequestedAmount: 1500, Score: score(0.864), Decision: model.DecisionApprove},
			want: "The applicant (ID: 3) has applied for a loan of 1500 AED. With a high confidence score of 0.86, " +
				"eligibility is strong. The AI's initial decision is to 'approve'. The applicant shows a reliable financial history.",
		},
		{
			name: "moderate",
			app:  model.Application{ApplicantID: 7, RequestedAmount: 2000, Score: score(0.55), Decision: model.DecisionOffer},
			want: "The applicant (ID: 7) has applied for a loan of 2000 AED. The confidence score is moderate at 0.55. " +
				"The AI suggests a 'offer', possibly with adjusted terms, to mitigate potential risk. Further review of income stability is recommended.",
		},
		{
			name: "low without score",
			app:  model.Application{ApplicantID: 9, RequestedAmount: 2500.5},
			want: "The applicant (ID: 9) has applied for a loan of 2500.5 AED. With a low confidence score of N/A, " +
				"this application presents a higher risk. The AI's decision is 'N/A', indicating a need for significant adjustments or manual intervention.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.app))
		})
	}
}

func TestFeatures(t *testing.T) {
	var app model.Application
	require.NoError(t, json.Unmarshal([]byte(`{
		"application_id": 1,
		"features": {
			"previous_defaults": 1,
			"monthly_salary": 18500.123456,
			"credit_history": "good",
			"has_guarantor": false,
			"employer": null,
			"ratios": [0.1, 0.2]
		}
	}`), &app))

	got := Features(app)

	assert.Equal(t, []Feature{
		{Key: "credit_history", Name: "Credit History", Value: "good"},
		{Key: "employer", Name: "Employer", Value: "N/A"},
		{Key: "has_guarantor", Name: "Has Guarantor", Value: "false"},
		{Key: "monthly_salary", Name: "Monthly Salary", Value: "18500.1235"},
		{Key: "previous_defaults", Name: "Previous Defaults", Value: "1.0000"},
		{Key: "ratios", Name: "Ratios", Value: "[0.1,0.2]"},
	}, got)

	assert.Nil(t, Features(model.Application{}))
}

func TestFeatureName(t *testing.T) {
	assert.Equal(t, "Debt To Income", FeatureName("debt_to_income"))
	assert.Equal(t, "Age", FeatureName("age"))
	assert.Equal(t, "Leading Underscore", FeatureName("_leading__underscore"))
	assert.Equal(t, "", FeatureName(""))
}
