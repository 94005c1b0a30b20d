package components

import (
	"strconv"

	"github.com/Veraticus/finyo-console/internal/model"
	"github.com/Veraticus/finyo-console/internal/service"
	"github.com/Veraticus/finyo-console/internal/submission"
	"github.com/Veraticus/finyo-console/internal/tui/themes"
	"github.com/Veraticus/finyo-console/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Submit form fields in focus order.
const (
	submitApplicant = iota
	submitAmount
	submitTenure
	submitFieldCount
)

const recentTableHeight = 10

// SubmitState is the submission orchestrator state the panel mirrors.
type SubmitState struct {
	Recent     service.Result[[]model.Application]
	Message    string
	Error      string
	HasRecent  bool
	Submitting bool
	Refreshing bool
}

// SubmitPanel is the new-application form with the recent applications table.
type SubmitPanel struct {
	theme   themes.Theme
	overlay *Overlay
	state   SubmitState
	apps    []model.Application
	inputs  []textinput.Model
	recent  table.Model
	inline  string
	focus   int
	width   int
}

// NewSubmitPanel creates the form populated with form's values.
func NewSubmitPanel(theme themes.Theme, form submission.Form) SubmitPanel {
	inputs := make([]textinput.Model, submitFieldCount)
	inputs[submitApplicant] = newInput("Applicant ID", 10)
	inputs[submitAmount] = newInput("Amount (AED), min 1000 in steps of 500", 12)
	inputs[submitTenure] = newInput("Tenure (months), min 1", 4)

	recent := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: "Applicant", Width: 10},
			{Title: "Amount", Width: 10},
			{Title: "Tenure", Width: 7},
			{Title: "Decision", Width: 14},
			{Title: "Score", Width: 6},
		}),
		table.WithHeight(recentTableHeight),
		table.WithFocused(true),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	recent.SetStyles(s)

	p := SubmitPanel{
		theme:  theme,
		inputs: inputs,
		recent: recent,
		width:  80,
	}
	p.SetForm(form)
	p.inputs[submitApplicant].Focus()
	return p
}

// SetForm replaces the input values.
func (p *SubmitPanel) SetForm(f submission.Form) {
	p.inputs[submitApplicant].SetValue(strconv.FormatInt(f.ApplicantID, 10))
	p.inputs[submitAmount].SetValue(strconv.FormatFloat(f.Amount, 'f', -1, 64))
	p.inputs[submitTenure].SetValue(strconv.Itoa(f.TenureMonths))
}

// SetState mirrors the orchestrator state into the panel.
func (p SubmitPanel) SetState(s SubmitState) SubmitPanel {
	p.state = s
	p.inline = ""
	p.apps = s.Recent.Value
	rows := viewmodel.NewRecentRows(p.apps)
	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		tableRows[i] = table.Row{r.ID, r.Applicant, r.Amount, r.Tenure, r.Decision, r.Score}
	}
	p.recent.SetRows(tableRows)
	if p.recent.Cursor() >= len(tableRows) {
		p.recent.SetCursor(max(0, len(tableRows)-1))
	}
	return p
}

// Form parses the inputs. Unparseable values are reported as validation errors.
func (p SubmitPanel) Form() (submission.Form, error) {
	applicant, err := parseInt("applicant_id", p.inputs[submitApplicant].Value())
	if err != nil {
		return submission.Form{}, err
	}
	amount, err := parseFloat("requested_amount", p.inputs[submitAmount].Value())
	if err != nil {
		return submission.Form{}, err
	}
	tenure, err := parseInt("requested_tenure_months", p.inputs[submitTenure].Value())
	if err != nil {
		return submission.Form{}, err
	}
	return submission.Form{ApplicantID: applicant, Amount: amount, TenureMonths: int(tenure)}, nil
}

// Selected returns the application under the table cursor.
func (p SubmitPanel) Selected() (model.Application, bool) {
	i := p.recent.Cursor()
	if i < 0 || i >= len(p.apps) {
		return model.Application{}, false
	}
	return p.apps[i], true
}

// Overlay returns the open overlay, if any.
func (p SubmitPanel) Overlay() *Overlay {
	return p.overlay
}

// Focused returns the index of the focused input.
func (p SubmitPanel) Focused() int {
	return p.focus
}

// Update handles messages.
func (p SubmitPanel) Update(msg tea.Msg) (SubmitPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.Resize(msg.Width, msg.Height)
		return p, nil

	case tea.KeyMsg:
		if p.overlay != nil {
			if msg.String() == "esc" || msg.String() == "enter" {
				p.overlay = nil
			}
			return p, nil
		}

		switch msg.String() {
		case "up", "shift+up":
			p.setFocus((p.focus + submitFieldCount - 1) % submitFieldCount)
			return p, nil
		case "down", "shift+down":
			p.setFocus((p.focus + 1) % submitFieldCount)
			return p, nil
		case "pgup":
			p.recent.MoveUp(1)
			return p, nil
		case "pgdown":
			p.recent.MoveDown(1)
			return p, nil
		case "ctrl+a":
			if app, ok := p.Selected(); ok {
				p.overlay = AnalysisOverlay(viewmodel.NewAnalysisView(app))
			}
			return p, nil
		case "ctrl+e":
			if app, ok := p.Selected(); ok {
				p.overlay = ExplainOverlay(viewmodel.NewExplainView(app))
			}
			return p, nil
		case "enter":
			if p.state.Submitting {
				return p, nil
			}
			form, err := p.Form()
			if err != nil {
				p.inline = err.Error()
				return p, nil
			}
			p.inline = ""
			return p, func() tea.Msg { return SubmitRequestMsg{Form: form} }
		}
	}

	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	return p, cmd
}

func (p *SubmitPanel) setFocus(i int) {
	p.inputs[p.focus].Blur()
	p.focus = i
	p.inputs[p.focus].Focus()
}

// Resize sets the panel dimensions.
func (p *SubmitPanel) Resize(width, _ int) {
	p.width = width
}

// View renders the submit panel.
func (p SubmitPanel) View() string {
	title := p.theme.Subtitle.Render("Submit Loan Application")
	form := lipgloss.JoinVertical(lipgloss.Left,
		field(p.theme, "Applicant ID", p.inputs[submitApplicant].View(), p.focus == submitApplicant),
		field(p.theme, "Requested Amount (AED)", p.inputs[submitAmount].View(), p.focus == submitAmount),
		field(p.theme, "Requested Tenure (Months)", p.inputs[submitTenure].View(), p.focus == submitTenure),
	)

	lines := []string{title, form, ""}
	switch {
	case p.state.Submitting:
		lines = append(lines, p.theme.StatusPending.Render("Submitting..."))
	case p.inline != "":
		lines = append(lines, p.theme.StatusError.Render("Error: "+p.inline))
	case p.state.Error != "":
		lines = append(lines, p.theme.StatusError.Render("Error: "+p.state.Error))
	case p.state.Message != "":
		lines = append(lines, p.theme.StatusSuccess.Render(p.state.Message))
	default:
		lines = append(lines, lipgloss.NewStyle().Foreground(p.theme.Muted).Render("Enter to submit"))
	}

	lines = append(lines, "", p.theme.Subtitle.Render("Recent Applications"))
	lines = append(lines, p.renderRecent())

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if p.overlay != nil {
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", p.overlay.View(p.theme, p.width))
	}
	return content
}

func (p SubmitPanel) renderRecent() string {
	switch {
	case !p.state.HasRecent:
		return p.theme.StatusPending.Render(viewmodel.MsgLoadingRecent)
	case p.state.Recent.Outcome() == service.OutcomeFailed:
		return p.theme.StatusError.Render(viewmodel.MsgFailedRecent + ": " + p.state.Recent.Detail())
	case len(p.apps) == 0:
		return p.theme.StatusPending.Render(viewmodel.MsgNoRecent)
	}

	hint := "PgUp/PgDn select · Ctrl+A analyze with AI · Ctrl+E explain score"
	if p.state.Refreshing {
		hint = "Refreshing... · " + hint
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		p.recent.View(),
		lipgloss.NewStyle().Foreground(p.theme.Muted).Render(hint),
	)
}
