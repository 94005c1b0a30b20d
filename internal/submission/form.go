package submission

import (
	"math"

	"github.com/Veraticus/finyo-console/internal/common"
)

// Submission bounds.
const (
	MinAmount    = 1000
	AmountStep   = 500
	MinTenure    = 1
	MinApplicant = 1
)

// Form holds the values of a new application.
type Form struct {
	Amount       float64
	ApplicantID  int64
	TenureMonths int
}

// DefaultForm returns the values a blank form starts with.
func DefaultForm() Form {
	return Form{ApplicantID: MinApplicant, Amount: MinAmount, TenureMonths: MinTenure}
}

// Validate checks the form before it is sent. The amount must be at least
// 1000 and move in steps of 500 from there.
func (f Form) Validate() error {
	if f.ApplicantID < MinApplicant {
		return common.NewValidationError("applicant_id", "must be a positive integer")
	}
	if math.IsNaN(f.Amount) || math.IsInf(f.Amount, 0) || f.Amount < MinAmount {
		return common.NewValidationError("requested_amount", "must be at least 1000")
	}
	if math.Mod(f.Amount-MinAmount, AmountStep) != 0 {
		return common.NewValidationError("requested_amount", "must be in steps of 500")
	}
	if f.TenureMonths < MinTenure {
		return common.NewValidationError("requested_tenure_months", "must be at least 1 month")
	}
	return nil
}
