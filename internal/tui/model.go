package tui

import (
	"context"
	"fmt"

	"github.com/Veraticus/finyo-console/internal/common"
	"github.com/Veraticus/finyo-console/internal/dashboard"
	"github.com/Veraticus/finyo-console/internal/review"
	"github.com/Veraticus/finyo-console/internal/service"
	"github.com/Veraticus/finyo-console/internal/submission"
	"github.com/Veraticus/finyo-console/internal/tui/components"
	"github.com/Veraticus/finyo-console/internal/tui/themes"
	"github.com/Veraticus/finyo-console/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the main TUI state. It owns one orchestrator per tab and is
// their only caller, so every Begin and Apply happens on the Update goroutine.
type Model struct {
	ctx            context.Context
	gateway        service.Gateway
	dash           *dashboard.Orchestrator
	submit         *submission.Orchestrator
	review         *review.Machine
	theme          themes.Theme
	status         string
	config         Config
	keymap         KeyMap
	help           help.Model
	spinner        spinner.Model
	body           viewport.Model
	reviewPanel    components.ReviewPanel
	submitPanel    components.SubmitPanel
	dashboardPanel components.DashboardPanel
	tab            viewmodel.Tab
	width          int
	height         int
	showHelp       bool
	quitting       bool
}

// New creates the console model. A gateway is required.
func New(ctx context.Context, opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Gateway == nil {
		return Model{}, fmt.Errorf("%w: console needs a backend gateway", common.ErrMissingConfig)
	}
	return newModel(ctx, cfg), nil
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = sp.Style.Foreground(cfg.Theme.Primary)

	m := Model{
		ctx:            ctx,
		gateway:        cfg.Gateway,
		dash:           dashboard.New(cfg.Gateway),
		submit:         submission.New(cfg.Gateway),
		review:         review.New(cfg.Gateway),
		theme:          cfg.Theme,
		config:         cfg,
		keymap:         DefaultKeyMap(),
		help:           help.New(),
		spinner:        sp,
		body:           viewport.New(cfg.Width, cfg.Height),
		dashboardPanel: components.NewDashboardPanel(cfg.Theme),
		submitPanel:    components.NewSubmitPanel(cfg.Theme, submission.DefaultForm()),
		reviewPanel:    components.NewReviewPanel(cfg.Theme),
		tab:            cfg.InitialTab,
		width:          cfg.Width,
		height:         cfg.Height,
	}
	m.handleResize()
	return m
}

// Init starts the dashboard load and the recent list load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadDashboard(), m.loadRecent())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}
		cmd := m.updateActivePanel(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dashboardLoadedMsg:
		if m.dash.Apply(msg.ticket, msg.snap) {
			m.dashboardPanel = m.dashboardPanel.SetView(viewmodel.NewDashboardView(msg.snap))
		}
		return m, nil

	case recentLoadedMsg:
		if !m.submit.ApplyRefresh(msg.ticket, msg.res) {
			return m, nil
		}
		m.syncSubmit()
		m.reviewPanel = m.reviewPanel.SetRoster(msg.res.Value)
		if m.review.State() == review.StateUnloaded && len(msg.res.Value) > 0 {
			cmd := m.selectApplication(msg.res.Value[0].ID)
			return m, cmd
		}
		return m, nil

	case submittedMsg:
		refresh := m.submit.ApplySubmit(msg.ticket, msg.res)
		m.syncSubmit()
		if refresh {
			cmd := m.loadRecent()
			return m, cmd
		}
		return m, nil

	case applicationLoadedMsg:
		if m.review.ApplyFetch(msg.ticket, msg.res) {
			m.syncReview()
		}
		return m, nil

	case decisionSubmittedMsg:
		refetch := m.review.ApplyDecide(msg.ticket, msg.res)
		m.syncReview()
		if !refetch {
			return m, nil
		}
		fetch := m.fetchApplication(msg.ticket, msg.id)
		recent := m.loadRecent()
		return m, tea.Batch(fetch, recent)

	case components.SubmitRequestMsg:
		cmd := m.submitApplication(msg.Form)
		return m, cmd

	case components.SelectApplicationMsg:
		cmd := m.selectApplication(msg.ID)
		return m, cmd

	case components.DecideRequestMsg:
		cmd := m.decide(msg.Draft)
		return m, cmd
	}

	return m, nil
}

// handleGlobalKeys handles keys that work on every tab. It reports whether
// the key was consumed.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit):
		return m.quit(), true
	case m.showHelp:
		if key.Matches(msg, m.keymap.Help, m.keymap.Close) {
			m.showHelp = false
		}
		return nil, true
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
		return nil, true
	case key.Matches(msg, m.keymap.NextTab):
		return m.activate(m.tab.Next()), true
	case key.Matches(msg, m.keymap.PrevTab):
		return m.activate(m.tab.Prev()), true
	case key.Matches(msg, m.keymap.Refresh):
		return m.refreshTab(), true
	case m.tab == viewmodel.TabDashboard && key.Matches(msg, m.keymap.Quit):
		return m.quit(), true
	}
	return nil, false
}

// activate switches to tab and reloads what it shows.
func (m *Model) activate(tab viewmodel.Tab) tea.Cmd {
	m.tab = tab
	m.status = ""
	return m.refreshTab()
}

// refreshTab reloads the data behind the current tab.
func (m *Model) refreshTab() tea.Cmd {
	switch m.tab {
	case viewmodel.TabDashboard:
		return m.loadDashboard()
	case viewmodel.TabSubmit:
		return m.loadRecent()
	case viewmodel.TabReview:
		cmds := []tea.Cmd{m.loadRecent()}
		if id := m.review.SelectedID(); id > 0 && m.review.State() != review.StateSubmitting {
			cmds = append(cmds, m.selectApplication(id))
		}
		return tea.Batch(cmds...)
	}
	return nil
}

func (m *Model) updateActivePanel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.tab {
	case viewmodel.TabDashboard:
		m.body.SetContent(m.dashboardPanel.View())
		m.body, cmd = m.body.Update(msg)
	case viewmodel.TabSubmit:
		m.submitPanel, cmd = m.submitPanel.Update(msg)
	case viewmodel.TabReview:
		m.reviewPanel, cmd = m.reviewPanel.Update(msg)
	}
	return cmd
}

// syncSubmit mirrors the submission orchestrator into the submit panel.
func (m *Model) syncSubmit() {
	recent, ok := m.submit.Recent()
	m.submitPanel = m.submitPanel.SetState(components.SubmitState{
		Recent:     recent,
		HasRecent:  ok,
		Message:    m.submit.Message(),
		Error:      m.submit.ErrorText(),
		Submitting: m.submit.Submitting(),
		Refreshing: m.submit.Refreshing(),
	})
}

// syncReview mirrors the review machine into the review panel.
func (m *Model) syncReview() {
	m.reviewPanel = m.reviewPanel.SetState(components.ReviewState{
		App:        m.review.Application(),
		Message:    m.review.Message(),
		Error:      common.Detail(m.review.Err()),
		Draft:      m.review.Draft(),
		SelectedID: m.review.SelectedID(),
		State:      m.review.State(),
		CanDecide:  m.review.CanDecide(),
	})
}

// inFlight reports whether any backend call is outstanding.
func (m Model) inFlight() bool {
	state := m.review.State()
	return m.dash.Loading() || m.submit.Submitting() || m.submit.Refreshing() ||
		state == review.StateLoading || state == review.StateSubmitting
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.closeAll()
	return tea.Quit
}

// closeAll tears the orchestrators down so late results are discarded.
func (m Model) closeAll() {
	m.dash.Close()
	m.submit.Close()
	m.review.Close()
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	// Border (2) and padding (2) horizontally; header (3) and status bar (1)
	// plus border (2) vertically.
	width := max(20, m.width-4)
	height := max(5, m.height-6)
	m.body.Width = width
	m.body.Height = height
	m.help.Width = width
	m.dashboardPanel.Resize(width, height)
	m.submitPanel.Resize(width, height)
	m.reviewPanel.Resize(width, height)
}
