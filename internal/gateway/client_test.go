package gateway

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/Veraticus/finyo-console/internal/common"
	"github.com/Veraticus/finyo-console/internal/model"
	"github.com/Veraticus/finyo-console/internal/service"
	"github.com/Veraticus/finyo-console/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, cfg Config) (*Client, *testutil.Backend) {
	t.Helper()
	backend := testutil.NewBackend(t)
	cfg.BaseURL = backend.URL()
	client := New(cfg, WithRetryOptions(common.RetryOptions{
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}))
	return client, backend
}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{BaseURL: "http://scoring.internal:9000/"})
	assert.Equal(t, "http://scoring.internal:9000", c.BaseURL())
	assert.Equal(t, 15*time.Second, c.cfg.Timeout)
	assert.Equal(t, 1, c.cfg.MaxAttempts)

	c = New(Config{})
	assert.Equal(t, "http://localhost:8000", c.BaseURL())
}

func TestClient_DashboardReads(t *testing.T) {
	client, backend := newTestClient(t, Config{})
	ctx := context.Background()

	summary := client.GetSummary(ctx)
	require.Equal(t, service.OutcomeLoaded, summary.Outcome())
	assert.Equal(t, 5, summary.Value.Approved)
	assert.Equal(t, 3, summary.Value.Rejected)
	assert.Equal(t, 2, summary.Value.Offers)
	require.Len(t, summary.Value.AcceptedDetails, 1)
	assert.Equal(t, testutil.ApprovedApplicationID, summary.Value.AcceptedDetails[0].ID)

	txs := client.GetTransactions(ctx)
	require.Equal(t, service.OutcomeLoaded, txs.Outcome())
	require.Len(t, txs.Value, 5)
	assert.InDelta(t, 300.0, *txs.Value[2].Amount, 1e-9)
	assert.False(t, txs.Value[4].IsComplete())

	analytics := client.GetAnalytics(ctx)
	require.Equal(t, service.OutcomeLoaded, analytics.Outcome())
	assert.InDelta(t, 16250.0, *analytics.Value.AvgSalary, 1e-9)

	assert.Equal(t, 1, backend.Calls(testutil.RouteSummary))
	assert.Equal(t, 1, backend.Calls(testutil.RouteTransactions))
	assert.Equal(t, 1, backend.Calls(testutil.RouteAnalytics))
}

func TestClient_EmptyPayloads(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty array", raw: `[]`},
		{name: "null", raw: `null`},
		{name: "no body", raw: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, backend := newTestClient(t, Config{})
			backend.SetTransactionsJSON(tt.raw)

			res := client.GetTransactions(context.Background())
			assert.Equal(t, service.OutcomeEmpty, res.Outcome())
			assert.NotNil(t, res.Value)
			assert.Empty(t, res.Value)
		})
	}

	t.Run("empty summary and analytics", func(t *testing.T) {
		client, backend := newTestClient(t, Config{})
		backend.SetSummary(model.Summary{})
		backend.SetAnalytics(model.Analytics{})

		assert.Equal(t, service.OutcomeEmpty, client.GetSummary(context.Background()).Outcome())
		assert.Equal(t, service.OutcomeEmpty, client.GetAnalytics(context.Background()).Outcome())
	})
}

func TestClient_Timeout(t *testing.T) {
	client, backend := newTestClient(t, Config{Timeout: 50 * time.Millisecond})
	backend.Delay(testutil.RouteSummary, time.Second)

	res := client.GetSummary(context.Background())

	require.Equal(t, service.OutcomeFailed, res.Outcome())
	assert.Equal(t, model.Summary{}, res.Value)
	require.ErrorIs(t, res.Err, common.ErrTransport)
	var terr *common.TransportError
	require.ErrorAs(t, res.Err, &terr)
	assert.True(t, terr.Timeout())
	assert.Equal(t, "request timed out", res.Detail())
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(nil)
	url := server.URL
	server.Close()

	client := New(Config{BaseURL: url, Timeout: time.Second})
	res := client.ListRecentApplications(context.Background())

	require.Equal(t, service.OutcomeFailed, res.Outcome())
	assert.NotNil(t, res.Value)
	assert.Empty(t, res.Value)
	assert.ErrorIs(t, res.Err, common.ErrTransport)
}

func TestClient_HTTPErrors(t *testing.T) {
	tests := []struct {
		name       string
		failure    testutil.Failure
		wantDetail string
		wantStatus int
	}{
		{
			name:       "detail member extracted",
			failure:    testutil.Failure{Status: 422, Body: `{"detail": "requested_amount must be at least 1000"}`},
			wantDetail: "requested_amount must be at least 1000",
			wantStatus: 422,
		},
		{
			name:       "structured detail kept as json",
			failure:    testutil.Failure{Status: 422, Body: `{"detail": [{"loc": ["body", "applicant_id"], "msg": "field required"}]}`},
			wantDetail: `[{"loc": ["body", "applicant_id"], "msg": "field required"}]`,
			wantStatus: 422,
		},
		{
			name:       "error member extracted",
			failure:    testutil.Failure{Status: 400, Body: `{"error": "bad applicant"}`},
			wantDetail: "bad applicant",
			wantStatus: 400,
		},
		{
			name:       "plain body verbatim",
			failure:    testutil.Failure{Status: 502, Body: "Bad Gateway"},
			wantDetail: "Bad Gateway",
			wantStatus: 502,
		},
		{
			name:       "json without detail verbatim",
			failure:    testutil.Failure{Status: 500, Body: `{"message": "boom"}`},
			wantDetail: `{"message": "boom"}`,
			wantStatus: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, backend := newTestClient(t, Config{})
			backend.Fail(testutil.RouteSubmit, tt.failure)

			res := client.SubmitApplication(context.Background(), 7, 1500, 12)

			require.Equal(t, service.OutcomeFailed, res.Outcome())
			assert.Equal(t, model.SubmitResponse{}, res.Value)
			var herr *common.HTTPError
			require.ErrorAs(t, res.Err, &herr)
			assert.Equal(t, tt.wantStatus, herr.StatusCode)
			assert.Equal(t, tt.wantDetail, res.Detail())
		})
	}
}

func TestClient_UndecodableSuccess(t *testing.T) {
	client, backend := newTestClient(t, Config{})
	backend.SetTransactionsJSON(`{"transactions": `)

	res := client.GetTransactions(context.Background())

	require.Equal(t, service.OutcomeFailed, res.Outcome())
	assert.ErrorIs(t, res.Err, common.ErrHTTPStatus)
	assert.Equal(t, `{"transactions": `, res.Detail())
}

func TestClient_Retry(t *testing.T) {
	t.Run("GET retried until success", func(t *testing.T) {
		client, backend := newTestClient(t, Config{MaxAttempts: 3})
		backend.Fail(testutil.RouteSummary, testutil.Failure{Status: 503, Body: "unavailable", Times: 2})

		res := client.GetSummary(context.Background())

		assert.Equal(t, service.OutcomeLoaded, res.Outcome())
		assert.Equal(t, 3, backend.Calls(testutil.RouteSummary))
	})

	t.Run("GET gives up after max attempts", func(t *testing.T) {
		client, backend := newTestClient(t, Config{MaxAttempts: 2})
		backend.Fail(testutil.RouteAnalytics, testutil.Failure{Status: 500, Body: `{"detail": "db down"}`})

		res := client.GetAnalytics(context.Background())

		require.Equal(t, service.OutcomeFailed, res.Outcome())
		assert.ErrorIs(t, res.Err, common.ErrMaxRetries)
		assert.Equal(t, "db down", res.Detail())
		assert.Equal(t, 2, backend.Calls(testutil.RouteAnalytics))
	})

	t.Run("client errors not retried", func(t *testing.T) {
		client, backend := newTestClient(t, Config{MaxAttempts: 3})
		backend.Fail(testutil.RouteApplication, testutil.Failure{Status: 404, Body: `{"detail": "Application not found"}`})

		res := client.GetApplication(context.Background(), 999)

		require.Equal(t, service.OutcomeFailed, res.Outcome())
		assert.Nil(t, res.Value)
		assert.Equal(t, 1, backend.Calls(testutil.RouteApplication))
	})

	t.Run("POST never retried", func(t *testing.T) {
		client, backend := newTestClient(t, Config{MaxAttempts: 3})
		backend.Fail(testutil.RouteSubmit, testutil.Failure{Status: 503, Body: "unavailable", Times: 1})

		res := client.SubmitApplication(context.Background(), 7, 1500, 12)

		assert.Equal(t, service.OutcomeFailed, res.Outcome())
		assert.Equal(t, 1, backend.Calls(testutil.RouteSubmit))
	})

	t.Run("single attempt by default", func(t *testing.T) {
		client, backend := newTestClient(t, Config{})
		backend.Fail(testutil.RouteRecent, testutil.Failure{Status: 503, Body: "unavailable", Times: 1})

		res := client.ListRecentApplications(context.Background())

		assert.Equal(t, service.OutcomeFailed, res.Outcome())
		assert.False(t, errors.Is(res.Err, common.ErrMaxRetries))
		assert.Equal(t, 1, backend.Calls(testutil.RouteRecent))
	})
}

func TestClient_RequestIDs(t *testing.T) {
	client, backend := newTestClient(t, Config{})
	ctx := context.Background()

	client.GetSummary(ctx)
	client.GetApplication(ctx, testutil.PendingApplicationID)

	ids := backend.RequestIDs()
	require.Len(t, ids, 2)
	for _, id := range ids {
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	}
	assert.NotEqual(t, ids[0], ids[1])
}

func TestClient_Applications(t *testing.T) {
	client, backend := newTestClient(t, Config{})
	ctx := context.Background()

	submitted := client.SubmitApplication(ctx, 42, 2500, 18)
	require.Equal(t, service.OutcomeLoaded, submitted.Outcome())
	assert.Positive(t, submitted.Value.ApplicationID)
	assert.Equal(t, []model.SubmitRequest{{ApplicantID: 42, RequestedAmount: 2500, RequestedTenureMonths: 18}}, backend.Submissions())

	fetched := client.GetApplication(ctx, submitted.Value.ApplicationID)
	require.Equal(t, service.OutcomeLoaded, fetched.Outcome())
	require.NotNil(t, fetched.Value)
	assert.Equal(t, model.StatusUnderProcess, fetched.Value.Status)
	assert.Equal(t, int64(42), fetched.Value.ApplicantID)

	recent := client.ListRecentApplications(ctx)
	require.Equal(t, service.OutcomeLoaded, recent.Outcome())
	assert.Equal(t, submitted.Value.ApplicationID, recent.Value[0].ID)

	missing := client.GetApplication(ctx, 999)
	require.Equal(t, service.OutcomeFailed, missing.Outcome())
	assert.Nil(t, missing.Value)
	assert.Equal(t, "Application not found", missing.Detail())
}

func TestClient_SubmitHumanDecision(t *testing.T) {
	tests := []struct {
		name       string
		decision   model.Decision
		comment    *string
		offer      *model.Offer
		wantStatus model.Status
	}{
		{
			name:       "approve without comment",
			decision:   model.DecisionApprove,
			wantStatus: model.StatusApproved,
		},
		{
			name:       "reject with comment",
			decision:   model.DecisionReject,
			comment:    testutil.Ptr("salary could not be verified"),
			wantStatus: model.StatusRejected,
		},
		{
			name:       "conditional offer",
			decision:   model.DecisionOffer,
			offer:      &model.Offer{Amount: 1000, TenureMonths: 6},
			wantStatus: model.StatusOffer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, backend := newTestClient(t, Config{})

			res := client.SubmitHumanDecision(context.Background(), testutil.PendingApplicationID, tt.decision, tt.comment, tt.offer)

			require.Equal(t, service.OutcomeLoaded, res.Outcome())
			require.NotNil(t, res.Value)
			assert.Equal(t, tt.wantStatus, res.Value.Status)

			sent := backend.Decisions()
			require.Len(t, sent, 1)
			assert.Equal(t, model.HumanDecisionRequest{HumanDecision: tt.decision, Comment: tt.comment, NewOffer: tt.offer}, sent[0])
		})
	}

	t.Run("already processed", func(t *testing.T) {
		client, _ := newTestClient(t, Config{})

		res := client.SubmitHumanDecision(context.Background(), testutil.ApprovedApplicationID, model.DecisionReject, nil, nil)

		require.Equal(t, service.OutcomeFailed, res.Outcome())
		assert.Nil(t, res.Value)
		assert.Equal(t, "Application already processed", res.Detail())
	})

	t.Run("offer amount that cannot be encoded", func(t *testing.T) {
		client, backend := newTestClient(t, Config{})

		res := client.SubmitHumanDecision(context.Background(), testutil.PendingApplicationID, model.DecisionOffer, nil,
			&model.Offer{Amount: math.NaN(), TenureMonths: 6})

		require.Equal(t, service.OutcomeFailed, res.Outcome())
		assert.Nil(t, res.Value)
		require.ErrorIs(t, res.Err, common.ErrValidation)
		assert.Zero(t, backend.Calls(testutil.RouteHumanDecision))
	})
}

func TestClient_NullApplication(t *testing.T) {
	for _, raw := range []string{`null`, ``} {
		t.Run("body "+strconv.Quote(raw), func(t *testing.T) {
			client, backend := newTestClient(t, Config{})
			backend.Fail(testutil.RouteApplication, testutil.Failure{Status: http.StatusOK, Body: raw})
			backend.Fail(testutil.RouteHumanDecision, testutil.Failure{Status: http.StatusOK, Body: raw})

			fetched := client.GetApplication(context.Background(), testutil.PendingApplicationID)
			assert.True(t, fetched.OK())
			assert.Equal(t, service.OutcomeEmpty, fetched.Outcome())
			assert.Nil(t, fetched.Value)

			decided := client.SubmitHumanDecision(context.Background(), testutil.PendingApplicationID, model.DecisionApprove, nil, nil)
			assert.True(t, decided.OK())
			assert.Equal(t, service.OutcomeEmpty, decided.Outcome())
			assert.Nil(t, decided.Value)
		})
	}
}

func TestErrorDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "empty", body: "", want: ""},
		{name: "whitespace trimmed", body: "  oops \n", want: "oops"},
		{name: "detail number", body: `{"detail": 42}`, want: "42"},
		{name: "detail wins over error", body: `{"error": "e", "detail": "d"}`, want: "d"},
		{name: "json array", body: `[1, 2]`, want: `[1, 2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorDetail([]byte(tt.body)))
		})
	}
}
