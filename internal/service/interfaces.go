// Package service defines the interfaces shared between the backend gateway
// and the console's orchestrators.
package service

import (
	"context"

	"github.com/Veraticus/finyo-console/internal/model"
)

// Gateway is the contract of the scoring backend as seen by the console.
// No method returns a bare error: failures travel inside the Result.
type Gateway interface {
	GetSummary(ctx context.Context) Result[model.Summary]
	GetTransactions(ctx context.Context) Result[[]model.Transaction]
	GetAnalytics(ctx context.Context) Result[model.Analytics]
	SubmitApplication(ctx context.Context, applicantID int64, amount float64, tenureMonths int) Result[model.SubmitResponse]
	GetApplication(ctx context.Context, id int64) Result[*model.Application]
	SubmitHumanDecision(ctx context.Context, id int64, decision model.Decision, comment *string, newOffer *model.Offer) Result[*model.Application]
	ListRecentApplications(ctx context.Context) Result[[]model.Application]
}

// DashboardSource is the read side the dashboard needs.
type DashboardSource interface {
	GetSummary(ctx context.Context) Result[model.Summary]
	GetTransactions(ctx context.Context) Result[[]model.Transaction]
	GetAnalytics(ctx context.Context) Result[model.Analytics]
}

// ApplicationReviewer is the part of the gateway the review workflow drives.
type ApplicationReviewer interface {
	GetApplication(ctx context.Context, id int64) Result[*model.Application]
	SubmitHumanDecision(ctx context.Context, id int64, decision model.Decision, comment *string, newOffer *model.Offer) Result[*model.Application]
}

// ApplicationSubmitter is the part of the gateway submissions need.
type ApplicationSubmitter interface {
	SubmitApplication(ctx context.Context, applicantID int64, amount float64, tenureMonths int) Result[model.SubmitResponse]
	ListRecentApplications(ctx context.Context) Result[[]model.Application]
}
