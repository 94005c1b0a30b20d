package components

import (
	"github.com/Veraticus/finyo-console/internal/review"
	"github.com/Veraticus/finyo-console/internal/submission"
)

// SubmitRequestMsg asks for a new application to be filed.
type SubmitRequestMsg struct {
	Form submission.Form
}

// SelectApplicationMsg asks for an application to be loaded for review.
type SelectApplicationMsg struct {
	ID int64
}

// DecideRequestMsg asks for the reviewer's draft to be submitted.
type DecideRequestMsg struct {
	Draft review.Draft
}
