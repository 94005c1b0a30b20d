package testutil

import (
	"time"

	"github.com/Veraticus/finyo-console/internal/model"
)

// Fixture application ids.
const (
	PendingApplicationID  int64 = 101
	ApprovedApplicationID int64 = 102
	OfferApplicationID    int64 = 103
)

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Timestamp builds a UTC wire timestamp.
func Timestamp(year int, month time.Month, day int) *model.Timestamp {
	return &model.Timestamp{Time: time.Date(year, month, day, 9, 30, 0, 0, time.UTC)}
}

// FixtureApplications returns the applications the fake backend starts with.
func FixtureApplications() []model.Application {
	return []model.Application{
		{
			ID:                    PendingApplicationID,
			ApplicantID:           7,
			RequestedAmount:       2000,
			RequestedTenureMonths: 12,
			Status:                model.StatusUnderProcess,
			Decision:              model.DecisionManualReview,
			Score:                 Ptr(0.55),
			Reasoning:             "Income is stable but the applicant has one recent default.",
			Features: map[string]any{
				"monthly_salary":    18500.0,
				"previous_defaults": 1.0,
				"credit_history":    "good",
			},
			CreatedAt: Timestamp(2024, time.March, 14),
		},
		{
			ID:                    ApprovedApplicationID,
			ApplicantID:           3,
			RequestedAmount:       1500,
			RequestedTenureMonths: 6,
			Status:                model.StatusApproved,
			Decision:              model.DecisionApprove,
			Score:                 Ptr(0.86),
			Reasoning:             "Strong repayment history.",
			CreatedAt:             Timestamp(2024, time.March, 10),
		},
		{
			ID:                    OfferApplicationID,
			ApplicantID:           11,
			RequestedAmount:       2500,
			RequestedTenureMonths: 24,
			Status:                model.StatusOffer,
			Decision:              model.DecisionOffer,
			Score:                 Ptr(0.48),
			SuggestedOffer:        &model.Offer{Amount: 1500, TenureMonths: 12},
			Reasoning:             "Requested amount is high relative to salary.",
			CreatedAt:             Timestamp(2024, time.March, 12),
		},
	}
}

// FixtureSummary returns the summary the fake backend starts with.
func FixtureSummary() model.Summary {
	apps := FixtureApplications()
	return model.Summary{
		TotalCases:      12,
		Approved:        5,
		Rejected:        3,
		Offers:          2,
		AvgScore:        Ptr(0.61),
		AcceptanceRatio: Ptr(0.5),
		RejectionRatio:  Ptr(0.3),
		AcceptedDetails: []model.Application{apps[1]},
		RejectedDetails: []model.Application{apps[2]},
	}
}

// FixtureTransactionsJSON is the raw transactions payload the fake backend
// starts with. It spans three months out of order and carries one entry
// without an amount.
const FixtureTransactionsJSON = `[
	{"timestamp": "2024-03-02T10:00:00Z", "amount_aed": 250.5},
	{"timestamp": "2024-01-15T08:00:00Z", "amount_aed": 100},
	{"timestamp": "2024-02-20T12:30:00Z", "amount_aed": "300"},
	{"timestamp": "2024-01-31T23:59:59Z", "amount_aed": 50},
	{"timestamp": "2024-02-01T00:00:00Z"}
]`

// FixtureAnalytics returns the analytics the fake backend starts with.
func FixtureAnalytics() model.Analytics {
	return model.Analytics{
		AvgSalary:      Ptr(16250.0),
		AvgTenure:      Ptr(14.5),
		GoodHistoryPct: Ptr(72.0),
		AvgDefaults:    Ptr(0.4),
	}
}
