package tui

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/finyo-console/internal/common"
	"github.com/Veraticus/finyo-console/internal/gateway"
	"github.com/Veraticus/finyo-console/internal/model"
	"github.com/Veraticus/finyo-console/internal/review"
	"github.com/Veraticus/finyo-console/internal/submission"
	"github.com/Veraticus/finyo-console/internal/testutil"
	"github.com/Veraticus/finyo-console/internal/tui/components"
	"github.com/Veraticus/finyo-console/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, opts ...Option) (Model, *testutil.Backend) {
	t.Helper()
	backend := testutil.NewBackend(t)
	gw := gateway.New(gateway.Config{BaseURL: backend.URL(), Timeout: 2 * time.Second})

	m, err := New(context.Background(), append([]Option{WithGateway(gw), WithSize(120, 40)}, opts...)...)
	require.NoError(t, err)
	return m, backend
}

// started returns a model with its Init commands run to completion.
func started(t *testing.T, opts ...Option) (Model, *testutil.Backend) {
	t.Helper()
	m, backend := newTestModel(t, opts...)
	return drain(t, m, m.Init()), backend
}

// drain runs cmd and every command it leads to, feeding each message back
// into the model. Spinner ticks are dropped so the loop terminates.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "command loop did not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case nil, spinner.TickMsg, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			updated, follow := m.Update(msg)
			m = updated.(Model)
			queue = append(queue, follow)
		}
	}
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	return drain(t, updated.(Model), cmd)
}

func TestNew_RequiresGateway(t *testing.T) {
	_, err := New(context.Background())
	require.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestInit_LoadsDashboardAndRoster(t *testing.T) {
	m, backend := started(t)

	snap, ok := m.dash.Snapshot()
	require.True(t, ok)
	assert.Empty(t, snap.Failures())
	assert.False(t, m.dash.Loading())
	assert.Equal(t, 1, backend.Calls(testutil.RouteSummary))
	assert.Equal(t, 1, backend.Calls(testutil.RouteRecent))

	recent, ok := m.submit.Recent()
	require.True(t, ok)
	assert.Len(t, recent.Value, 3)

	// The review tab starts on the newest application.
	assert.Equal(t, testutil.OfferApplicationID, m.review.SelectedID())
	assert.Equal(t, review.StateLoaded, m.review.State())
	assert.False(t, m.inFlight())

	out := m.View()
	assert.Contains(t, out, consoleTitle)
	assert.Contains(t, out, "Total Cases")
	assert.Contains(t, out, "Repayment Monitor")
}

func TestInit_DashboardDegradesPerSection(t *testing.T) {
	m, backend := newTestModel(t)
	backend.Fail(testutil.RouteAnalytics, testutil.Failure{Status: 500, Body: `{"detail":"analytics offline"}`})
	m = drain(t, m, m.Init())

	out := m.View()
	assert.Contains(t, out, viewmodel.MsgFailedAnalytics)
	assert.Contains(t, out, "analytics offline")
	assert.Contains(t, out, "Total Cases")
}

func TestUpdate_TabSwitchingReloads(t *testing.T) {
	m, backend := started(t)
	assert.Equal(t, viewmodel.TabDashboard, m.tab)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, viewmodel.TabSubmit, m.tab)
	assert.Equal(t, 2, backend.Calls(testutil.RouteRecent))
	assert.Contains(t, m.View(), "Submit Loan Application")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, viewmodel.TabReview, m.tab)
	assert.Contains(t, m.View(), "Manual Review & Intervention")
	assert.Equal(t, 2, backend.Calls(testutil.RouteApplication))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, viewmodel.TabDashboard, m.tab)
	assert.Equal(t, 2, backend.Calls(testutil.RouteSummary))
}

func TestUpdate_RefreshReloadsCurrentTab(t *testing.T) {
	m, backend := started(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, 2, backend.Calls(testutil.RouteSummary))
	assert.Equal(t, 2, backend.Calls(testutil.RouteTransactions))
	assert.Equal(t, 2, backend.Calls(testutil.RouteAnalytics))
	assert.Equal(t, 1, backend.Calls(testutil.RouteRecent))
}

func TestUpdate_SubmitApplication(t *testing.T) {
	m, backend := started(t, WithInitialTab(viewmodel.TabSubmit))

	m = send(t, m, components.SubmitRequestMsg{Form: submission.Form{ApplicantID: 7, Amount: 1500, TenureMonths: 6}})

	require.Len(t, backend.Submissions(), 1)
	assert.Equal(t, "Application Submitted! ID: 201", m.submit.Message())
	assert.Equal(t, 2, backend.Calls(testutil.RouteRecent))

	recent, _ := m.submit.Recent()
	require.NotEmpty(t, recent.Value)
	assert.Equal(t, int64(201), recent.Value[0].ID)
	assert.Contains(t, m.View(), "Application Submitted! ID: 201")
}

func TestUpdate_InvalidSubmissionMakesNoCall(t *testing.T) {
	m, backend := started(t, WithInitialTab(viewmodel.TabSubmit))

	updated, cmd := m.Update(components.SubmitRequestMsg{Form: submission.Form{ApplicantID: 7, Amount: 1200, TenureMonths: 6}})
	m = updated.(Model)

	assert.Nil(t, cmd)
	assert.Empty(t, backend.Submissions())
	require.ErrorIs(t, m.submit.Err(), common.ErrValidation)
	assert.Contains(t, m.View(), "requested_amount")
}

func TestUpdate_SubmitFailureSurfacesDetail(t *testing.T) {
	m, backend := started(t, WithInitialTab(viewmodel.TabSubmit))
	backend.Fail(testutil.RouteSubmit, testutil.Failure{Status: 404, Body: `{"detail":"Applicant not found"}`})

	m = send(t, m, components.SubmitRequestMsg{Form: submission.Form{ApplicantID: 9, Amount: 1500, TenureMonths: 6}})

	assert.Equal(t, "Applicant not found", m.submit.ErrorText())
	assert.Equal(t, submission.Form{ApplicantID: 9, Amount: 1500, TenureMonths: 6}, m.submit.Form())
	assert.Equal(t, 1, backend.Calls(testutil.RouteRecent))
	assert.Contains(t, m.View(), "Error: Applicant not found")
}

func TestUpdate_ReviewDecision(t *testing.T) {
	m, backend := started(t, WithInitialTab(viewmodel.TabReview))

	m = send(t, m, components.SelectApplicationMsg{ID: testutil.PendingApplicationID})
	require.True(t, m.review.CanDecide())
	assert.Contains(t, m.View(), "Your Decision")

	draft := review.DefaultDraft()
	draft.Comment = "Verified payslip"
	m = send(t, m, components.DecideRequestMsg{Draft: draft})

	decisions := backend.Decisions()
	require.Len(t, decisions, 1)
	assert.Equal(t, model.DecisionApprove, decisions[0].HumanDecision)

	assert.Equal(t, review.StateLoaded, m.review.State())
	require.NotNil(t, m.review.Application())
	assert.Equal(t, model.StatusApproved, m.review.Application().Status)
	assert.Equal(t, "Decision recorded. Application status is now 'approved'.", m.review.Message())
	assert.Equal(t, 2, backend.Calls(testutil.RouteRecent))
	assert.Contains(t, m.View(), "Decision recorded")
}

func TestUpdate_StaleSelectionDiscarded(t *testing.T) {
	m, _ := started(t, WithInitialTab(viewmodel.TabReview))

	updated, first := m.Update(components.SelectApplicationMsg{ID: testutil.PendingApplicationID})
	updated, second := updated.(Model).Update(components.SelectApplicationMsg{ID: testutil.ApprovedApplicationID})
	m = updated.(Model)

	m = drain(t, m, second)
	m = drain(t, m, first)

	require.NotNil(t, m.review.Application())
	assert.Equal(t, testutil.ApprovedApplicationID, m.review.Application().ID)
	assert.Equal(t, testutil.ApprovedApplicationID, m.review.SelectedID())
}

func TestUpdate_QuitKeys(t *testing.T) {
	tests := []struct {
		name     string
		tab      viewmodel.Tab
		key      tea.KeyMsg
		wantQuit bool
	}{
		{name: "q on dashboard", tab: viewmodel.TabDashboard, key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, wantQuit: true},
		{name: "q on submit is typed", tab: viewmodel.TabSubmit, key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}},
		{name: "ctrl+c on review", tab: viewmodel.TabReview, key: tea.KeyMsg{Type: tea.KeyCtrlC}, wantQuit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, WithInitialTab(tt.tab))

			updated, cmd := m.Update(tt.key)
			m = updated.(Model)

			if !tt.wantQuit {
				assert.False(t, m.quitting)
				return
			}
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
			assert.True(t, m.quitting)
			assert.True(t, m.review.Closed())
			assert.Empty(t, m.View())
		})
	}
}

func TestUpdate_LateResultsAfterQuitDiscarded(t *testing.T) {
	m, _ := newTestModel(t)
	initCmd := m.Init()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = drain(t, updated.(Model), initCmd)

	_, ok := m.dash.Snapshot()
	assert.False(t, ok)
	_, ok = m.submit.Recent()
	assert.False(t, ok)
}

func TestUpdate_HelpToggle(t *testing.T) {
	m, _ := started(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyF1})
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	// Keys other than the closers are swallowed while help is open.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, viewmodel.TabDashboard, m.tab)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)
	assert.NotContains(t, m.View(), "Keyboard Shortcuts")
}

func TestUpdate_WindowResize(t *testing.T) {
	m, _ := started(t)

	m = send(t, m, tea.WindowSizeMsg{Width: 90, Height: 30})
	assert.Equal(t, 86, m.body.Width)
	assert.Equal(t, 24, m.body.Height)
}
