// Package themes holds the console's colour palettes and the styles built
// from them.
package themes

import (
	"github.com/Veraticus/finyo-console/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colours a theme is built from.
type Palette struct {
	Primary   lipgloss.Color
	Text      lipgloss.Color
	Subtle    lipgloss.Color
	Muted     lipgloss.Color
	Border    lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color
	TabActive lipgloss.Color
	TabText   lipgloss.Color
	TabIdle   lipgloss.Color
}

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	BorderedBox   lipgloss.Style
	RoundedBox    lipgloss.Style
	ProgressBar   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusPending lipgloss.Style
	ActiveTab     lipgloss.Style
	InactiveTab   lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
}

// New builds the styles of a theme from p.
func New(p Palette) Theme {
	status := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	box := func(b lipgloss.Border) lipgloss.Style {
		return lipgloss.NewStyle().Border(b).BorderForeground(p.Border).Padding(1, 2)
	}

	return Theme{
		Primary: p.Primary,
		Muted:   p.Muted,
		Border:  p.Border,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Text).MarginBottom(1),
		Subtitle: lipgloss.NewStyle().Foreground(p.Subtle).MarginBottom(1),
		Normal:   lipgloss.NewStyle().Foreground(p.Text),
		Bold:     lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		Selected: lipgloss.NewStyle().Background(p.Primary).Foreground(p.TabText).Bold(true),

		BorderedBox: box(lipgloss.NormalBorder()),
		RoundedBox:  box(lipgloss.RoundedBorder()),
		ProgressBar: lipgloss.NewStyle().Foreground(p.Primary),

		StatusSuccess: status(p.Success),
		StatusWarning: status(p.Warning),
		StatusError:   status(p.Error),
		StatusInfo:    status(p.Info),
		StatusPending: lipgloss.NewStyle().Foreground(p.Muted).Italic(true),

		ActiveTab:   lipgloss.NewStyle().Background(p.TabActive).Foreground(p.TabText).Bold(true).Padding(0, 2),
		InactiveTab: lipgloss.NewStyle().Foreground(p.TabIdle).Padding(0, 2),
	}
}

// DefaultPalette is the FinYo palette.
var DefaultPalette = Palette{
	Primary:   "#7c3aed",
	Text:      "#fafafa",
	Subtle:    "#a3a3a3",
	Muted:     "#737373",
	Border:    "#404040",
	Success:   "#10b981",
	Warning:   "#f59e0b",
	Error:     "#ef4444",
	Info:      "#3b82f6",
	TabActive: "#0284c7",
	TabText:   "#fafafa",
	TabIdle:   "#7dd3fc",
}

// MochaPalette is the Catppuccin Mocha palette.
var MochaPalette = Palette{
	Primary:   "#cba6f7",
	Text:      "#cdd6f4",
	Subtle:    "#a6adc8",
	Muted:     "#6c7086",
	Border:    "#45475a",
	Success:   "#a6e3a1",
	Warning:   "#f9e2af",
	Error:     "#f38ba8",
	Info:      "#89dceb",
	TabActive: "#89b4fa",
	TabText:   "#1e1e2e",
	TabIdle:   "#89dceb",
}

// Built-in themes.
var (
	Default         = New(DefaultPalette)
	CatppuccinMocha = New(MochaPalette)
)

// Names lists the theme names GetTheme recognises.
var Names = []string{"default", "catppuccin-mocha"}

// GetTheme returns a theme by name, falling back to Default.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// Badge returns the style for an application status or decision, e.g.
// approved in the success color and rejected in the error color.
func (t Theme) Badge(value string) lipgloss.Style {
	switch value {
	case string(model.StatusApproved), string(model.DecisionApprove):
		return t.StatusSuccess
	case string(model.StatusRejected):
		return t.StatusError
	case string(model.StatusOffer):
		return t.StatusWarning
	case string(model.StatusManualReview):
		return t.StatusInfo
	default:
		return t.StatusPending
	}
}
