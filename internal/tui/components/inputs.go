package components

import (
	"strconv"
	"strings"

	"github.com/Veraticus/finyo-console/internal/common"
	"github.com/Veraticus/finyo-console/internal/tui/themes"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

const labelWidth = 26

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	in.Prompt = ""
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

func parseInt(field, value string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, common.NewValidationError(field, "must be a whole number")
	}
	return n, nil
}

func parseFloat(field, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, common.NewValidationError(field, "must be a number")
	}
	return f, nil
}

// field renders a labelled input, marking the focused one.
func field(theme themes.Theme, label, value string, focused bool) string {
	marker := "  "
	style := lipgloss.NewStyle().Foreground(theme.Muted)
	if focused {
		marker = "> "
		style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	return marker + style.Width(labelWidth).Render(label) + value
}
