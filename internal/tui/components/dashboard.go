package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/finyo-console/internal/tui/themes"
	"github.com/Veraticus/finyo-console/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	monthLabelWidth = 8
	minBarWidth     = 10
)

// DashboardPanel renders the portfolio aggregates of one snapshot.
type DashboardPanel struct {
	theme   themes.Theme
	view    viewmodel.DashboardView
	share   progress.Model
	width   int
	height  int
	loaded  bool
	loading bool
}

// NewDashboardPanel creates an empty dashboard panel.
func NewDashboardPanel(theme themes.Theme) DashboardPanel {
	share := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	share.Width = 30

	return DashboardPanel{
		theme:  theme,
		share:  share,
		width:  80,
		height: 24,
	}
}

// SetView installs the view of a freshly applied snapshot.
func (p DashboardPanel) SetView(v viewmodel.DashboardView) DashboardPanel {
	p.view = v
	p.loaded = true
	p.loading = false
	return p
}

// SetLoading marks a load as outstanding. The previous view stays visible.
func (p DashboardPanel) SetLoading(loading bool) DashboardPanel {
	p.loading = loading
	return p
}

// Loaded reports whether any snapshot has been shown.
func (p DashboardPanel) Loaded() bool {
	return p.loaded
}

// Loading reports whether a load is outstanding.
func (p DashboardPanel) Loading() bool {
	return p.loading
}

// ViewModel returns the installed view model.
func (p DashboardPanel) ViewModel() viewmodel.DashboardView {
	return p.view
}

// Update handles messages.
func (p DashboardPanel) Update(msg tea.Msg) (DashboardPanel, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		p.Resize(msg.Width, msg.Height)
	}
	return p, nil
}

// Resize sets the panel dimensions.
func (p *DashboardPanel) Resize(width, height int) {
	p.width = width
	p.height = height
	p.share.Width = max(minBarWidth, min(width/3, 40))
}

// View renders the dashboard panel.
func (p DashboardPanel) View() string {
	if !p.loaded {
		return p.theme.StatusPending.Render(viewmodel.MsgDashboardNotLoaded)
	}

	v := p.view
	sections := []string{p.renderKPIs(v.KPIs)}
	if p.loading {
		sections = append(sections, p.theme.StatusPending.Render("Refreshing..."))
	}
	if v.HasFailures() {
		sections = append(sections, p.theme.StatusError.Render("Couldn't load: "+strings.Join(v.Failures, "; ")))
	}

	charts := []string{p.renderMonthly(v), p.renderDistribution(v)}
	if p.width >= 120 {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, charts[0], "    ", charts[1]))
	} else {
		sections = append(sections, charts...)
	}

	sections = append(sections,
		p.renderAccepted(v),
		p.renderConditional(v),
		p.renderStats("Performance Indicators", v.Performance),
		p.renderInsights(v),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (p DashboardPanel) renderKPIs(kpis []viewmodel.Stat) string {
	cards := make([]string, 0, len(kpis))
	for _, kpi := range kpis {
		card := lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Foreground(p.theme.Muted).Render(kpi.Label),
			p.theme.Bold.Render(kpi.Value),
		)
		cards = append(cards, p.theme.RoundedBox.Padding(0, 1).Render(card))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (p DashboardPanel) renderMonthly(v viewmodel.DashboardView) string {
	lines := []string{p.theme.Subtitle.Render(v.MonthlySection.Title)}
	if v.MonthlySection.IsEmpty() {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, p.sectionMessage(v.MonthlySection))...)
	}

	barWidth := max(minBarWidth, min(p.width/3, 40))
	for _, month := range v.Monthly {
		bar := p.theme.ProgressBar.Render(viewmodel.Bar(month.Value, v.MonthlyMax, barWidth))
		lines = append(lines, fmt.Sprintf("%-*s %s %s AED", monthLabelWidth, month.Month, bar, month.Amount))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (p DashboardPanel) renderDistribution(v viewmodel.DashboardView) string {
	lines := []string{p.theme.Subtitle.Render(v.DistributionSection.Title)}
	if v.DistributionSection.IsEmpty() {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, p.sectionMessage(v.DistributionSection))...)
	}

	for _, slice := range v.Distribution {
		lines = append(lines, fmt.Sprintf("%-12s %s %3d (%.0f%%)",
			slice.Label, p.share.ViewAs(slice.Share), slice.Count, slice.Share*100))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (p DashboardPanel) renderAccepted(v viewmodel.DashboardView) string {
	title := p.theme.Subtitle.Render(v.AcceptedSection.Title)
	if v.AcceptedSection.IsEmpty() {
		return lipgloss.JoinVertical(lipgloss.Left, title, p.sectionMessage(v.AcceptedSection))
	}

	rows := make([]table.Row, len(v.Accepted))
	for i, r := range v.Accepted {
		rows[i] = table.Row{r.ID, r.Applicant, r.Score, r.SuggestedOffer, r.Status}
	}
	columns := []table.Column{
		{Title: "App ID", Width: 8},
		{Title: "Applicant", Width: 10},
		{Title: "Score", Width: 7},
		{Title: "Suggested Offer", Width: 26},
		{Title: "Status", Width: 14},
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, p.staticTable(columns, rows))
}

func (p DashboardPanel) renderConditional(v viewmodel.DashboardView) string {
	title := p.theme.Subtitle.Render(v.ConditionalSection.Title)
	if v.ConditionalSection.IsEmpty() {
		return lipgloss.JoinVertical(lipgloss.Left, title, p.sectionMessage(v.ConditionalSection))
	}

	reasoningWidth := max(20, p.width-52)
	rows := make([]table.Row, len(v.Conditional))
	for i, r := range v.Conditional {
		rows[i] = table.Row{r.ID, r.Applicant, r.Score, viewmodel.TruncateString(r.Reasoning, reasoningWidth), r.Status}
	}
	columns := []table.Column{
		{Title: "App ID", Width: 8},
		{Title: "Applicant", Width: 10},
		{Title: "Score", Width: 7},
		{Title: "Reasoning", Width: reasoningWidth},
		{Title: "Status", Width: 14},
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, p.staticTable(columns, rows))
}

func (p DashboardPanel) renderInsights(v viewmodel.DashboardView) string {
	if v.InsightsSection.IsEmpty() {
		return lipgloss.JoinVertical(lipgloss.Left,
			p.theme.Subtitle.Render(v.InsightsSection.Title), p.sectionMessage(v.InsightsSection))
	}
	return p.renderStats(v.InsightsSection.Title, v.Insights)
}

func (p DashboardPanel) renderStats(title string, stats []viewmodel.Stat) string {
	labelWidth := 0
	for _, s := range stats {
		labelWidth = max(labelWidth, lipgloss.Width(s.Label))
	}
	lines := []string{p.theme.Subtitle.Render(title)}
	for _, s := range stats {
		lines = append(lines, fmt.Sprintf("%-*s  %s", labelWidth, s.Label, p.theme.Bold.Render(s.Value)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (p DashboardPanel) sectionMessage(s viewmodel.Section) string {
	if s.Failed {
		return p.theme.StatusError.Render(s.Message)
	}
	return p.theme.StatusPending.Render(s.Message)
}

func (p DashboardPanel) staticTable(columns []table.Column, rows []table.Row) string {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithFocused(false),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	return t.View()
}
