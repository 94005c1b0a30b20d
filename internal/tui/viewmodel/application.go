package viewmodel

import (
	"strconv"

	"github.com/Veraticus/finyo-console/internal/insight"
	"github.com/Veraticus/finyo-console/internal/model"
)

// Application list messages.
const (
	MsgNoRecent       = "No applications submitted yet."
	MsgNoApplications = "No applications found"
	MsgFailedRecent   = "Couldn't load recent applications"
	MsgLoadingRecent  = "Loading recent applications..."
	MsgSelectToBegin  = "Select an application to begin."
	MsgLoadingDetails = "Loading application details..."
)

// ApplicationView is the detail card of one application.
type ApplicationView struct {
	ID              string
	ApplicantID     string
	Status          string
	CreatedAt       string
	RequestedAmount string
	RequestedTenure string
	Score           string
	Decision        string
	SuggestedOffer  string
	Reasoning       string
	HasOffer        bool
	Decidable       bool
}

// NewApplicationView builds the detail card for app.
func NewApplicationView(app model.Application) ApplicationView {
	return ApplicationView{
		ID:              FormatID(app.ID),
		ApplicantID:     FormatID(app.ApplicantID),
		Status:          Or(string(app.Status)),
		CreatedAt:       FormatTimestamp(app.CreatedAt),
		RequestedAmount: FormatAED(app.RequestedAmount),
		RequestedTenure: strconv.Itoa(app.RequestedTenureMonths) + " months",
		Score:           FormatFixed(app.Score, 2),
		Decision:        Or(string(app.Decision)),
		SuggestedOffer:  FormatOffer(app.SuggestedOffer),
		Reasoning:       Or(SanitizeForDisplay(app.Reasoning)),
		HasOffer:        app.SuggestedOffer != nil,
		Decidable:       app.Status.AcceptsHumanDecision(),
	}
}

// RecentRow is a row of the recent applications table.
type RecentRow struct {
	ID        string
	Applicant string
	Amount    string
	Tenure    string
	Decision  string
	Score     string
	AppID     int64
}

// NewRecentRows builds the recent table rows in the order given.
func NewRecentRows(apps []model.Application) []RecentRow {
	if len(apps) == 0 {
		return nil
	}
	rows := make([]RecentRow, len(apps))
	for i, app := range apps {
		rows[i] = RecentRow{
			AppID:     app.ID,
			ID:        strconv.FormatInt(app.ID, 10),
			Applicant: strconv.FormatInt(app.ApplicantID, 10),
			Amount:    FormatGrouped(app.RequestedAmount),
			Tenure:    strconv.Itoa(app.RequestedTenureMonths),
			Decision:  Or(string(app.Decision)),
			Score:     FormatFixed(app.Score, 2),
		}
	}
	return rows
}

// PickerLabel is how an application is listed when choosing one to review.
func PickerLabel(app model.Application) string {
	return "ID: " + strconv.FormatInt(app.ID, 10) +
		" - Applicant: " + strconv.FormatInt(app.ApplicantID, 10) +
		" (" + Or(string(app.Status)) + ")"
}

// FeatureRow is one line of a score explanation.
type FeatureRow struct {
	Name  string
	Value string
}

// ExplainView is the score breakdown of an application.
type ExplainView struct {
	Title   string
	Message string
	Rows    []FeatureRow
}

// NewExplainView lists app's features, or explains that there are none.
func NewExplainView(app model.Application) ExplainView {
	v := ExplainView{Title: "Score explanation for application " + FormatID(app.ID)}
	features := insight.Features(app)
	if len(features) == 0 {
		v.Message = insight.NoFeaturesMessage
		return v
	}
	v.Rows = make([]FeatureRow, len(features))
	for i, f := range features {
		v.Rows[i] = FeatureRow{Name: f.Name, Value: f.Value}
	}
	return v
}

// AnalysisView is the eligibility analysis of an application.
type AnalysisView struct {
	Title string
	Text  string
	Tier  insight.Tier
}

// NewAnalysisView runs the eligibility analysis for app.
func NewAnalysisView(app model.Application) AnalysisView {
	tier, _ := insight.Classify(app.Score)
	return AnalysisView{
		Title: "Eligibility analysis for application " + FormatID(app.ID),
		Text:  insight.Summarize(app),
		Tier:  tier,
	}
}
