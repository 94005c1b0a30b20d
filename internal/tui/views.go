package tui

import (
	"strings"

	"github.com/Veraticus/finyo-console/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

const consoleTitle = "FinYo Console · Confidence Dashboard"

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelp()
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderBody(),
	)
	return m.wrapWithBorder(content)
}

// renderHeader renders the title and the tab strip.
func (m Model) renderHeader() string {
	tabs := make([]string, 0, len(viewmodel.Tabs))
	for _, tab := range viewmodel.Tabs {
		style := m.theme.InactiveTab
		if tab == m.tab {
			style = m.theme.ActiveTab
		}
		tabs = append(tabs, style.Render(tab.String()))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Bold.Foreground(m.theme.Primary).Render(consoleTitle),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		"",
	)
}

// renderBody renders the active tab. The dashboard scrolls; the forms are
// clipped to the space left.
func (m Model) renderBody() string {
	switch m.tab {
	case viewmodel.TabDashboard:
		body := m.body
		body.SetContent(m.dashboardPanel.SetLoading(m.dash.Loading()).View())
		return body.View()
	case viewmodel.TabSubmit:
		return lipgloss.NewStyle().MaxHeight(m.body.Height).Render(m.submitPanel.View())
	case viewmodel.TabReview:
		return lipgloss.NewStyle().MaxHeight(m.body.Height).Render(m.reviewPanel.View())
	}
	return ""
}

// renderHelp renders the help screen.
func (m Model) renderHelp() string {
	title := m.theme.Title.Render("Keyboard Shortcuts")

	full := m.help
	full.ShowAll = true
	footer := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press F1 or Esc to close help")

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.BorderedBox.
			MaxHeight(m.height-2).
			Render(
				lipgloss.JoinVertical(
					lipgloss.Left,
					title,
					full.View(m.keymap),
					"",
					footer,
				),
			),
	)
}

// wrapWithBorder adds a border around content.
func (m Model) wrapWithBorder(content string) string {
	statusBar := m.renderStatusBar()

	fullContent := lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		statusBar,
	)

	return m.theme.BorderedBox.
		Width(m.width).
		Render(fullContent)
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	left := m.tab.String()

	var center string
	switch {
	case m.status != "":
		center = m.theme.StatusError.Render(m.status)
	case m.inFlight():
		center = m.spinner.View() + " Loading..."
	}

	right := m.help.ShortHelpView(m.keymap.ShortHelp())

	totalWidth := m.width - 4
	spacing := max(2, totalWidth-lipgloss.Width(left)-lipgloss.Width(center)-lipgloss.Width(right))
	leftPad := spacing / 2
	rightPad := spacing - leftPad

	status := m.theme.StatusInfo.Render(left) +
		strings.Repeat(" ", leftPad) +
		center +
		strings.Repeat(" ", rightPad) +
		right

	return m.theme.Normal.
		Width(m.width - 4).
		MaxWidth(m.width - 4).
		Render(status)
}
