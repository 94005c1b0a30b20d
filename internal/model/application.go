// Package model defines the core domain models used throughout the application.
package model

// Status is the lifecycle status of an application as reported by the backend.
type Status string

// Application status constants.
const (
	StatusUnderProcess Status = "under_process"
	StatusApproved     Status = "approved"
	StatusRejected     Status = "rejected"
	StatusOffer        Status = "offer"
	StatusManualReview Status = "manual_review"
)

// AcceptsHumanDecision reports whether a reviewer may still decide on an
// application in this status. under_process is the only such status.
func (s Status) AcceptsHumanDecision() bool {
	return s == StatusUnderProcess
}

// IsTerminal reports whether the status ends the review workflow.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusOffer:
		return true
	default:
		return false
	}
}

// Decision is a decision taken by the automated scorer or a human reviewer.
type Decision string

// Decision constants. The human-facing values are the ones the backend
// expects in a human_decision request.
const (
	DecisionApprove      Decision = "approve"
	DecisionReject       Decision = "rejected"
	DecisionOffer        Decision = "offer"
	DecisionManualReview Decision = "manual_review"
)

// HumanDecisions lists the decisions a reviewer may submit, in display order.
var HumanDecisions = []Decision{DecisionApprove, DecisionReject, DecisionOffer}

// IsHuman reports whether d may be submitted by a reviewer.
func (d Decision) IsHuman() bool {
	switch d {
	case DecisionApprove, DecisionReject, DecisionOffer:
		return true
	default:
		return false
	}
}

// Label returns the reviewer-facing label for a decision.
func (d Decision) Label() string {
	switch d {
	case DecisionApprove:
		return "Approve"
	case DecisionReject:
		return "Reject"
	case DecisionOffer:
		return "Make New Offer (Conditional)"
	case DecisionManualReview:
		return "Manual Review"
	default:
		return string(d)
	}
}

// Offer is an alternative amount/tenure pair proposed as a conditional approval.
type Offer struct {
	Amount       float64 `json:"amount"`
	TenureMonths int     `json:"tenure_months"`
}

// Application is a loan request progressing through automated-then-human review.
// Summary listings carry partial views of it, so every field is optional on the wire.
type Application struct {
	CreatedAt             *Timestamp     `json:"created_at,omitempty"`
	Score                 *float64       `json:"score,omitempty"`
	SuggestedOffer        *Offer         `json:"suggested_offer,omitempty"`
	Features              map[string]any `json:"features,omitempty"`
	Status                Status         `json:"status"`
	Decision              Decision       `json:"decision"`
	Reasoning             string         `json:"reasoning"`
	ID                    int64          `json:"application_id"`
	ApplicantID           int64          `json:"applicant_id"`
	RequestedAmount       float64        `json:"requested_amount"`
	RequestedTenureMonths int            `json:"requested_tenure_months"`
}

// HumanDecisionRequest is the body of a human_decision call.
type HumanDecisionRequest struct {
	Comment       *string  `json:"comment"`
	NewOffer      *Offer   `json:"new_offer"`
	HumanDecision Decision `json:"human_decision"`
}

// SubmitRequest is the body of an application submission.
type SubmitRequest struct {
	ApplicantID           int64   `json:"applicant_id"`
	RequestedAmount       float64 `json:"requested_amount"`
	RequestedTenureMonths int     `json:"requested_tenure_months"`
}

// SubmitResponse is the backend's reply to a submission. Only the id is
// relied upon.
type SubmitResponse struct {
	ApplicationID int64 `json:"application_id"`
}
