package tui

import (
	"log/slog"

	"github.com/Veraticus/finyo-console/internal/common"
	"github.com/Veraticus/finyo-console/internal/review"
	"github.com/Veraticus/finyo-console/internal/submission"
	tea "github.com/charmbracelet/bubbletea"
)

// The command builders below run the orchestrators' Begin step on the
// Update goroutine and hand only the gateway call to the returned tea.Cmd.
// The gateway bounds every call with its own timeout.

// loadDashboard starts the joined dashboard fetch.
func (m *Model) loadDashboard() tea.Cmd {
	t, err := m.dash.Begin()
	if err != nil {
		slog.Debug("Dashboard load refused", "error", err)
		return nil
	}

	ctx, dash := m.ctx, m.dash
	return func() tea.Msg {
		return dashboardLoadedMsg{ticket: t, snap: dash.Fetch(ctx)}
	}
}

// loadRecent starts a reload of the recent applications list.
func (m *Model) loadRecent() tea.Cmd {
	t, err := m.submit.BeginRefresh()
	if err != nil {
		slog.Debug("Recent list reload refused", "error", err)
		return nil
	}
	m.syncSubmit()

	ctx, gw := m.ctx, m.gateway
	return func() tea.Msg {
		return recentLoadedMsg{ticket: t, res: gw.ListRecentApplications(ctx)}
	}
}

// submitApplication validates f and files it.
func (m *Model) submitApplication(f submission.Form) tea.Cmd {
	t, err := m.submit.BeginSubmit(f)
	m.syncSubmit()
	if err != nil {
		m.setStatus(err)
		return nil
	}
	m.setStatus(nil)

	ctx, gw := m.ctx, m.gateway
	return func() tea.Msg {
		return submittedMsg{ticket: t, res: gw.SubmitApplication(ctx, f.ApplicantID, f.Amount, f.TenureMonths)}
	}
}

// selectApplication starts loading application id into the review machine.
func (m *Model) selectApplication(id int64) tea.Cmd {
	t, err := m.review.BeginSelect(id)
	if err != nil {
		m.setStatus(err)
		return nil
	}
	m.setStatus(nil)
	m.syncReview()
	return m.fetchApplication(t, id)
}

// fetchApplication loads id and reports it under ticket t.
func (m *Model) fetchApplication(t review.Ticket, id int64) tea.Cmd {
	ctx, gw := m.ctx, m.gateway
	return func() tea.Msg {
		return applicationLoadedMsg{ticket: t, res: gw.GetApplication(ctx, id)}
	}
}

// decide submits d for the application under review.
func (m *Model) decide(d review.Draft) tea.Cmd {
	if err := m.review.SetDraft(d); err != nil {
		m.setStatus(err)
		return nil
	}
	t, req, err := m.review.BeginDecide()
	m.syncReview()
	if err != nil {
		m.setStatus(err)
		return nil
	}
	m.setStatus(nil)

	ctx, gw, id := m.ctx, m.gateway, m.review.SelectedID()
	return func() tea.Msg {
		res := gw.SubmitHumanDecision(ctx, id, req.HumanDecision, req.Comment, req.NewOffer)
		return decisionSubmittedMsg{ticket: t, id: id, res: res}
	}
}

// setStatus shows why an action was refused in the status bar.
func (m *Model) setStatus(err error) {
	if err == nil {
		m.status = ""
		return
	}
	m.status = common.Detail(err)
	common.LogDebug("Console action refused", common.Fields{"error": err, "tab": m.tab.String()})
}
