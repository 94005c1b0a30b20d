package viewmodel

import (
	"strconv"
	"time"

	"github.com/Veraticus/finyo-console/internal/common"
	"github.com/Veraticus/finyo-console/internal/dashboard"
	"github.com/Veraticus/finyo-console/internal/model"
	"github.com/Veraticus/finyo-console/internal/service"
)

// Dashboard empty and failure messages.
const (
	MsgNoTransactions      = "No repayment transactions available"
	MsgNoDecisions         = "No decisions yet to show distribution."
	MsgNoAccepted          = "No accepted loans yet."
	MsgNoConditional       = "No conditional approvals yet."
	MsgNoAnalytics         = "No analytics available"
	MsgFailedTransactions  = "Couldn't load repayment transactions"
	MsgFailedSummary       = "Couldn't load the decision summary"
	MsgFailedAnalytics     = "Couldn't load analytics"
	MsgDashboardNotLoaded  = "Loading dashboard..."
	conditionalApprovalKPI = "Conditional Approval"
)

// DistributionLabels titles the distribution slots. Rejected decisions are
// presented as conditional approvals.
var DistributionLabels = [3]string{"Approved", "Conditional", "Offers"}

// MonthBar is one month of the repayment monitor.
type MonthBar struct {
	Month  string
	Amount string
	Value  float64
}

// Slice is one slot of the decision distribution.
type Slice struct {
	Label string
	Count int
	Share float64
}

// AcceptedRow is a row of the accepted loans table.
type AcceptedRow struct {
	ID             string
	Applicant      string
	Score          string
	SuggestedOffer string
	Status         string
}

// ConditionalRow is a row of the conditional approvals table.
type ConditionalRow struct {
	ID        string
	Applicant string
	Score     string
	Reasoning string
	Status    string
}

// DashboardView is everything the dashboard tab shows for one snapshot.
type DashboardView struct {
	FetchedAt           time.Time
	Failures            []string
	KPIs                []Stat
	Monthly             []MonthBar
	Distribution        []Slice
	Accepted            []AcceptedRow
	Conditional         []ConditionalRow
	Performance         []Stat
	Insights            []Stat
	MonthlySection      Section
	DistributionSection Section
	AcceptedSection     Section
	ConditionalSection  Section
	InsightsSection     Section
	MonthlyMax          float64
}

// NewDashboardView builds the view for snap.
func NewDashboardView(snap dashboard.Snapshot) DashboardView {
	summary := snap.Summary.Value
	v := DashboardView{
		FetchedAt: snap.FetchedAt,
		KPIs: []Stat{
			{Label: "Total Cases", Value: strconv.Itoa(summary.TotalCases)},
			{Label: "Approved Loans", Value: strconv.Itoa(summary.Approved)},
			{Label: conditionalApprovalKPI, Value: strconv.Itoa(summary.Rejected)},
			{Label: "Offers Made", Value: strconv.Itoa(summary.Offers)},
		},
		Performance: []Stat{
			{Label: "Avg Confidence Score", Value: FormatFixed(summary.AvgScore, 2)},
			{Label: "Acceptance Ratio (%)", Value: FormatRaw(summary.AcceptanceRatio)},
			{Label: "Conditional Approval (%)", Value: FormatRaw(summary.RejectionRatio)},
		},
	}

	for _, err := range snap.Failures() {
		v.Failures = append(v.Failures, common.Detail(err))
	}

	v.buildMonthly(snap)
	v.buildDistribution(snap)
	v.buildTables(snap.Summary)
	v.buildInsights(snap.Analytics)
	return v
}

func (v *DashboardView) buildMonthly(snap dashboard.Snapshot) {
	v.MonthlySection = Section{Title: "Repayment Monitor"}
	if snap.Monthly.Len() == 0 {
		v.MonthlySection.Message, v.MonthlySection.Failed = emptyOrFailed(snap.Transactions.Outcome(), MsgNoTransactions, MsgFailedTransactions)
		return
	}
	v.MonthlyMax = snap.Monthly.Max()
	v.Monthly = make([]MonthBar, snap.Monthly.Len())
	for i, month := range snap.Monthly.Months {
		amount := snap.Monthly.Amounts[i]
		v.Monthly[i] = MonthBar{Month: month, Amount: FormatGrouped(amount), Value: amount}
	}
}

func (v *DashboardView) buildDistribution(snap dashboard.Snapshot) {
	v.DistributionSection = Section{Title: "Credit Access Results"}
	if !snap.Distribution.HasDecisions() {
		v.DistributionSection.Message, v.DistributionSection.Failed = emptyOrFailed(snap.Summary.Outcome(), MsgNoDecisions, MsgFailedSummary)
		return
	}
	shares := snap.Distribution.Shares()
	v.Distribution = make([]Slice, len(DistributionLabels))
	for i, label := range DistributionLabels {
		v.Distribution[i] = Slice{Label: label, Count: snap.Distribution.Values[i], Share: shares[i]}
	}
}

func (v *DashboardView) buildTables(summary service.Result[model.Summary]) {
	accepted := summary.Value.AcceptedDetails
	rejected := summary.Value.RejectedDetails
	v.AcceptedSection = Section{Title: "Accepted Loans (" + strconv.Itoa(len(accepted)) + ")"}
	v.ConditionalSection = Section{Title: "Conditional Approval (" + strconv.Itoa(len(rejected)) + ")"}

	if len(accepted) == 0 {
		v.AcceptedSection.Message, v.AcceptedSection.Failed = emptyOrFailed(summary.Outcome(), MsgNoAccepted, MsgFailedSummary)
	}
	for _, app := range accepted {
		v.Accepted = append(v.Accepted, AcceptedRow{
			ID:             FormatID(app.ID),
			Applicant:      FormatID(app.ApplicantID),
			Score:          FormatFixed(app.Score, 3),
			SuggestedOffer: FormatOffer(app.SuggestedOffer),
			Status:         Or(string(app.Status)),
		})
	}

	if len(rejected) == 0 {
		v.ConditionalSection.Message, v.ConditionalSection.Failed = emptyOrFailed(summary.Outcome(), MsgNoConditional, MsgFailedSummary)
	}
	for _, app := range rejected {
		v.Conditional = append(v.Conditional, ConditionalRow{
			ID:        FormatID(app.ID),
			Applicant: FormatID(app.ApplicantID),
			Score:     FormatFixed(app.Score, 3),
			Reasoning: CleanReasoning(app.Reasoning),
			Status:    Or(string(app.Status)),
		})
	}
}

func (v *DashboardView) buildInsights(analytics service.Result[model.Analytics]) {
	v.InsightsSection = Section{Title: "Extra Insights"}
	if analytics.Outcome() != service.OutcomeLoaded {
		v.InsightsSection.Message, v.InsightsSection.Failed = emptyOrFailed(analytics.Outcome(), MsgNoAnalytics, MsgFailedAnalytics)
		return
	}
	a := analytics.Value
	salary := NotAvailable
	if a.AvgSalary != nil {
		salary = FormatGrouped(*a.AvgSalary)
	}
	v.Insights = []Stat{
		{Label: "Avg Salary (AED)", Value: salary},
		{Label: "Avg Tenure (Months)", Value: FormatFixed(a.AvgTenure, 1)},
		{Label: "Remittance Reliability Index", Value: FormatPercent(a.GoodHistoryPct)},
		{Label: "Avg Delinquency", Value: FormatRaw(a.AvgDefaults)},
	}
}

// HasFailures reports whether any of the three fetches failed.
func (v DashboardView) HasFailures() bool {
	return len(v.Failures) > 0
}

func emptyOrFailed(outcome service.Outcome, empty, failed string) (string, bool) {
	if outcome == service.OutcomeFailed {
		return failed, true
	}
	return empty, false
}
