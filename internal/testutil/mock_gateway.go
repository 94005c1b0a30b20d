package testutil

import (
	"context"

	"github.com/Veraticus/finyo-console/internal/model"
	"github.com/Veraticus/finyo-console/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockGateway is a testify mock of service.Gateway. An unexpected call fails
// the test, which is how callers assert that no request was made.
type MockGateway struct {
	mock.Mock
}

var _ service.Gateway = (*MockGateway)(nil)

// GetSummary implements service.Gateway.
func (m *MockGateway) GetSummary(ctx context.Context) service.Result[model.Summary] {
	args := m.Called(ctx)
	return args.Get(0).(service.Result[model.Summary])
}

// GetTransactions implements service.Gateway.
func (m *MockGateway) GetTransactions(ctx context.Context) service.Result[[]model.Transaction] {
	args := m.Called(ctx)
	return args.Get(0).(service.Result[[]model.Transaction])
}

// GetAnalytics implements service.Gateway.
func (m *MockGateway) GetAnalytics(ctx context.Context) service.Result[model.Analytics] {
	args := m.Called(ctx)
	return args.Get(0).(service.Result[model.Analytics])
}

// SubmitApplication implements service.Gateway.
func (m *MockGateway) SubmitApplication(ctx context.Context, applicantID int64, amount float64, tenureMonths int) service.Result[model.SubmitResponse] {
	args := m.Called(ctx, applicantID, amount, tenureMonths)
	return args.Get(0).(service.Result[model.SubmitResponse])
}

// GetApplication implements service.Gateway.
func (m *MockGateway) GetApplication(ctx context.Context, id int64) service.Result[*model.Application] {
	args := m.Called(ctx, id)
	return args.Get(0).(service.Result[*model.Application])
}

// SubmitHumanDecision implements service.Gateway.
func (m *MockGateway) SubmitHumanDecision(ctx context.Context, id int64, decision model.Decision, comment *string, newOffer *model.Offer) service.Result[*model.Application] {
	args := m.Called(ctx, id, decision, comment, newOffer)
	return args.Get(0).(service.Result[*model.Application])
}

// ListRecentApplications implements service.Gateway.
func (m *MockGateway) ListRecentApplications(ctx context.Context) service.Result[[]model.Application] {
	args := m.Called(ctx)
	return args.Get(0).(service.Result[[]model.Application])
}
