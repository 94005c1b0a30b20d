package review

import (
	"math"
	"strings"

	"github.com/Veraticus/finyo-console/internal/common"
	"github.com/Veraticus/finyo-console/internal/model"
)

// Offer bounds accepted by the backend for a conditional approval.
const (
	MinOfferAmount = 500
	MinOfferTenure = 1
)

// Draft is the reviewer's in-progress decision form.
type Draft struct {
	Decision model.Decision
	Comment  string
	// Offer is only sent when Decision is an offer.
	Offer model.Offer
}

// DefaultDraft returns the form a freshly selected application starts with.
func DefaultDraft() Draft {
	return Draft{
		Decision: model.DecisionApprove,
		Offer:    model.Offer{Amount: MinOfferAmount, TenureMonths: MinOfferTenure},
	}
}

// Request validates the draft and builds the request body. A blank comment
// is sent as null, and so is the offer unless the decision is an offer.
func (d Draft) Request() (model.HumanDecisionRequest, error) {
	if !d.Decision.IsHuman() {
		return model.HumanDecisionRequest{}, common.NewValidationError("human_decision",
			"must be one of approve, rejected, offer")
	}

	req := model.HumanDecisionRequest{HumanDecision: d.Decision}
	if comment := strings.TrimSpace(d.Comment); comment != "" {
		req.Comment = &comment
	}

	if d.Decision == model.DecisionOffer {
		if math.IsNaN(d.Offer.Amount) || math.IsInf(d.Offer.Amount, 0) || d.Offer.Amount < MinOfferAmount {
			return model.HumanDecisionRequest{}, common.NewValidationError("new_offer.amount", "must be at least 500")
		}
		if d.Offer.TenureMonths < MinOfferTenure {
			return model.HumanDecisionRequest{}, common.NewValidationError("new_offer.tenure_months", "must be at least 1 month")
		}
		offer := d.Offer
		req.NewOffer = &offer
	}
	return req, nil
}
