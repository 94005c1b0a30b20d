package components

import (
	"strings"

	"github.com/Veraticus/finyo-console/internal/tui/themes"
	"github.com/Veraticus/finyo-console/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

// Overlay is a dismissable box shown over a panel.
type Overlay struct {
	Title string
	Lines []string
}

// AnalysisOverlay wraps an eligibility analysis.
func AnalysisOverlay(v viewmodel.AnalysisView) *Overlay {
	return &Overlay{Title: v.Title, Lines: []string{v.Text}}
}

// ExplainOverlay wraps a score explanation.
func ExplainOverlay(v viewmodel.ExplainView) *Overlay {
	if v.Message != "" {
		return &Overlay{Title: v.Title, Lines: []string{v.Message}}
	}
	nameWidth := 0
	for _, row := range v.Rows {
		nameWidth = max(nameWidth, lipgloss.Width(row.Name))
	}
	lines := make([]string, len(v.Rows))
	for i, row := range v.Rows {
		lines[i] = row.Name + ":" + strings.Repeat(" ", nameWidth-lipgloss.Width(row.Name)+1) + row.Value
	}
	return &Overlay{Title: v.Title, Lines: lines}
}

// View renders the overlay box at most width cells wide.
func (o Overlay) View(theme themes.Theme, width int) string {
	inner := max(20, min(width-6, 80))
	body := lipgloss.NewStyle().Width(inner).Render(strings.Join(o.Lines, "\n"))
	content := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render(o.Title),
		body,
		"",
		lipgloss.NewStyle().Foreground(theme.Muted).Render("Esc to close"),
	)
	return theme.RoundedBox.BorderForeground(theme.Primary).Render(content)
}
