package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Veraticus/finyo-console/internal/model"
	"github.com/Veraticus/finyo-console/internal/service"
)

var _ service.Gateway = (*Client)(nil)

// GetSummary fetches the portfolio summary.
func (c *Client) GetSummary(ctx context.Context) service.Result[model.Summary] {
	var summary model.Summary
	if err := c.call(ctx, "get summary", http.MethodGet, "/dashboard/summary", nil, &summary); err != nil {
		return service.Failed(model.Summary{}, err)
	}
	return service.Loaded(summary, summary.IsEmpty())
}

// GetTransactions fetches the repayment transactions.
func (c *Client) GetTransactions(ctx context.Context) service.Result[[]model.Transaction] {
	var txs []model.Transaction
	if err := c.call(ctx, "get transactions", http.MethodGet, "/transactions", nil, &txs); err != nil {
		return service.Failed([]model.Transaction{}, err)
	}
	if txs == nil {
		txs = []model.Transaction{}
	}
	return service.Loaded(txs, len(txs) == 0)
}

// GetAnalytics fetches the applicant-base analytics.
func (c *Client) GetAnalytics(ctx context.Context) service.Result[model.Analytics] {
	var analytics model.Analytics
	if err := c.call(ctx, "get analytics", http.MethodGet, "/analytics", nil, &analytics); err != nil {
		return service.Failed(model.Analytics{}, err)
	}
	return service.Loaded(analytics, analytics.IsEmpty())
}

// SubmitApplication files a new application for scoring.
func (c *Client) SubmitApplication(ctx context.Context, applicantID int64, amount float64, tenureMonths int) service.Result[model.SubmitResponse] {
	req := model.SubmitRequest{
		ApplicantID:           applicantID,
		RequestedAmount:       amount,
		RequestedTenureMonths: tenureMonths,
	}
	var resp model.SubmitResponse
	if err := c.call(ctx, "submit application", http.MethodPost, "/applications/submit", req, &resp); err != nil {
		return service.Failed(model.SubmitResponse{}, err)
	}
	return service.Loaded(resp, false)
}

// GetApplication fetches a single application. An empty or null body is
// reported as an empty result with a nil value.
func (c *Client) GetApplication(ctx context.Context, id int64) service.Result[*model.Application] {
	var app *model.Application
	if err := c.call(ctx, "get application", http.MethodGet, fmt.Sprintf("/applications/%d", id), nil, &app); err != nil {
		return service.Failed[*model.Application](nil, err)
	}
	return service.Loaded(app, app == nil)
}

// SubmitHumanDecision records a reviewer's decision and returns the updated
// application, which is nil when the body is empty or null.
func (c *Client) SubmitHumanDecision(ctx context.Context, id int64, decision model.Decision, comment *string, newOffer *model.Offer) service.Result[*model.Application] {
	req := model.HumanDecisionRequest{
		HumanDecision: decision,
		Comment:       comment,
		NewOffer:      newOffer,
	}
	var app *model.Application
	path := fmt.Sprintf("/applications/%d/human_decision", id)
	if err := c.call(ctx, "submit human decision", http.MethodPost, path, req, &app); err != nil {
		return service.Failed[*model.Application](nil, err)
	}
	return service.Loaded(app, app == nil)
}

// ListRecentApplications fetches the most recent applications.
func (c *Client) ListRecentApplications(ctx context.Context) service.Result[[]model.Application] {
	var apps []model.Application
	if err := c.call(ctx, "list recent applications", http.MethodGet, "/applications/recent", nil, &apps); err != nil {
		return service.Failed([]model.Application{}, err)
	}
	if apps == nil {
		apps = []model.Application{}
	}
	return service.Loaded(apps, len(apps) == 0)
}
