package components

import (
	"strconv"

	"github.com/Veraticus/finyo-console/internal/model"
	"github.com/Veraticus/finyo-console/internal/review"
	"github.com/Veraticus/finyo-console/internal/tui/themes"
	"github.com/Veraticus/finyo-console/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ReviewField identifies an input of the review panel.
type ReviewField int

// Review fields in focus order.
const (
	FieldApplicationID ReviewField = iota
	FieldDecision
	FieldComment
	FieldOfferAmount
	FieldOfferTenure
)

// ReviewState is the review machine state the panel mirrors.
type ReviewState struct {
	App        *model.Application
	Message    string
	Error      string
	Draft      review.Draft
	SelectedID int64
	State      review.State
	CanDecide  bool
}

// ReviewPanel is the manual review form for one application.
type ReviewPanel struct {
	theme       themes.Theme
	state       ReviewState
	roster      []model.Application
	draft       review.Draft
	inline      string
	idInput     textinput.Model
	comment     textinput.Model
	offerAmount textinput.Model
	offerTenure textinput.Model
	rosterIdx   int
	decision    int
	focus       ReviewField
	width       int
	hasRoster   bool
}

// NewReviewPanel creates a review panel with the default draft.
func NewReviewPanel(theme themes.Theme) ReviewPanel {
	p := ReviewPanel{
		theme:       theme,
		idInput:     newInput("Application ID", 10),
		comment:     newInput("e.g., Verified income with payslip.", 500),
		offerAmount: newInput("New offer amount (AED), min 500", 12),
		offerTenure: newInput("New offer tenure (months), min 1", 4),
		width:       80,
	}
	p.comment.Width = 60
	p.loadDraft(review.DefaultDraft())
	p.idInput.Focus()
	return p
}

// SetState mirrors the machine state into the panel. The draft inputs are
// reloaded when another application is selected or the machine's draft
// differs from the last one seen.
func (p ReviewPanel) SetState(s ReviewState) ReviewPanel {
	reselected := s.SelectedID != p.state.SelectedID
	p.state = s
	p.inline = ""
	if s.SelectedID > 0 && p.idInput.Value() != strconv.FormatInt(s.SelectedID, 10) {
		p.idInput.SetValue(strconv.FormatInt(s.SelectedID, 10))
	}
	if reselected || s.Draft != p.draft {
		p.loadDraft(s.Draft)
	}
	if !p.formVisible() && p.focus != FieldApplicationID {
		p.setFocus(FieldApplicationID)
	}
	return p
}

// SetRoster replaces the applications offered for selection.
func (p ReviewPanel) SetRoster(apps []model.Application) ReviewPanel {
	p.roster = apps
	p.hasRoster = true
	p.rosterIdx = 0
	for i, app := range apps {
		if app.ID == p.state.SelectedID {
			p.rosterIdx = i
		}
	}
	return p
}

// Draft parses the draft inputs.
func (p ReviewPanel) Draft() (review.Draft, error) {
	d := review.Draft{
		Decision: model.HumanDecisions[p.decision],
		Comment:  p.comment.Value(),
		Offer:    p.draft.Offer,
	}
	if d.Decision != model.DecisionOffer {
		return d, nil
	}

	amount, err := parseFloat("new_offer.amount", p.offerAmount.Value())
	if err != nil {
		return review.Draft{}, err
	}
	tenure, err := parseInt("new_offer.tenure_months", p.offerTenure.Value())
	if err != nil {
		return review.Draft{}, err
	}
	d.Offer = model.Offer{Amount: amount, TenureMonths: int(tenure)}
	return d, nil
}

// Focused returns the focused field.
func (p ReviewPanel) Focused() ReviewField {
	return p.focus
}

// Update handles messages.
func (p ReviewPanel) Update(msg tea.Msg) (ReviewPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.Resize(msg.Width, msg.Height)
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "shift+up":
			p.moveFocus(-1)
			return p, nil
		case "down", "shift+down":
			p.moveFocus(1)
			return p, nil
		case "pgup":
			cmd := p.pick(-1)
			return p, cmd
		case "pgdown":
			cmd := p.pick(1)
			return p, cmd
		case "left", "right":
			if p.focus == FieldDecision {
				step := 1
				if msg.String() == "left" {
					step = len(model.HumanDecisions) - 1
				}
				p.decision = (p.decision + step) % len(model.HumanDecisions)
				return p, nil
			}
		case "enter":
			cmd := p.submit()
			return p, cmd
		}
	}

	var cmd tea.Cmd
	switch p.focus {
	case FieldApplicationID:
		p.idInput, cmd = p.idInput.Update(msg)
	case FieldComment:
		p.comment, cmd = p.comment.Update(msg)
	case FieldOfferAmount:
		p.offerAmount, cmd = p.offerAmount.Update(msg)
	case FieldOfferTenure:
		p.offerTenure, cmd = p.offerTenure.Update(msg)
	}
	return p, cmd
}

func (p *ReviewPanel) submit() tea.Cmd {
	if p.focus == FieldApplicationID {
		id, err := parseInt("application_id", p.idInput.Value())
		if err != nil {
			p.inline = err.Error()
			return nil
		}
		p.inline = ""
		return func() tea.Msg { return SelectApplicationMsg{ID: id} }
	}

	if !p.state.CanDecide {
		return nil
	}
	d, err := p.Draft()
	if err != nil {
		p.inline = err.Error()
		return nil
	}
	p.inline = ""
	p.draft = d
	return func() tea.Msg { return DecideRequestMsg{Draft: d} }
}

// pick moves through the roster and selects the application it lands on.
func (p *ReviewPanel) pick(step int) tea.Cmd {
	if len(p.roster) == 0 {
		return nil
	}
	p.rosterIdx = (p.rosterIdx + step + len(p.roster)) % len(p.roster)
	id := p.roster[p.rosterIdx].ID
	p.idInput.SetValue(strconv.FormatInt(id, 10))
	return func() tea.Msg { return SelectApplicationMsg{ID: id} }
}

func (p *ReviewPanel) fields() []ReviewField {
	fields := []ReviewField{FieldApplicationID}
	if !p.formVisible() {
		return fields
	}
	fields = append(fields, FieldDecision, FieldComment)
	if model.HumanDecisions[p.decision] == model.DecisionOffer {
		fields = append(fields, FieldOfferAmount, FieldOfferTenure)
	}
	return fields
}

// formVisible reports whether the decision form is shown: the application
// still accepts a decision, or one is in flight.
func (p *ReviewPanel) formVisible() bool {
	if p.state.App == nil || !p.state.App.Status.AcceptsHumanDecision() {
		return false
	}
	return p.state.State == review.StateLoaded || p.state.State == review.StateSubmitting
}

func (p *ReviewPanel) moveFocus(step int) {
	fields := p.fields()
	current := 0
	for i, f := range fields {
		if f == p.focus {
			current = i
		}
	}
	p.setFocus(fields[(current+step+len(fields))%len(fields)])
}

func (p *ReviewPanel) setFocus(f ReviewField) {
	p.focus = f
	p.idInput.Blur()
	p.comment.Blur()
	p.offerAmount.Blur()
	p.offerTenure.Blur()
	switch f {
	case FieldApplicationID:
		p.idInput.Focus()
	case FieldComment:
		p.comment.Focus()
	case FieldOfferAmount:
		p.offerAmount.Focus()
	case FieldOfferTenure:
		p.offerTenure.Focus()
	}
}

func (p *ReviewPanel) loadDraft(d review.Draft) {
	p.draft = d
	p.decision = 0
	for i, decision := range model.HumanDecisions {
		if decision == d.Decision {
			p.decision = i
		}
	}
	p.comment.SetValue(d.Comment)
	p.offerAmount.SetValue(strconv.FormatFloat(d.Offer.Amount, 'f', -1, 64))
	p.offerTenure.SetValue(strconv.Itoa(d.Offer.TenureMonths))
}

// Resize sets the panel dimensions.
func (p *ReviewPanel) Resize(width, _ int) {
	p.width = width
}

// View renders the review panel.
func (p ReviewPanel) View() string {
	lines := []string{
		p.theme.Subtitle.Render("Manual Review & Intervention"),
		field(p.theme, "Application", p.idInput.View(), p.focus == FieldApplicationID),
		p.renderRoster(),
		"",
	}

	switch p.state.State {
	case review.StateUnloaded:
		lines = append(lines, p.theme.StatusPending.Render(viewmodel.MsgSelectToBegin))
	case review.StateLoading:
		lines = append(lines, p.theme.StatusPending.Render(viewmodel.MsgLoadingDetails))
	case review.StateError:
		if p.state.Message != "" {
			lines = append(lines, p.theme.StatusWarning.Render(p.state.Message))
		}
		lines = append(lines, p.theme.StatusError.Render("Error: "+p.state.Error))
	case review.StateLoaded, review.StateSubmitting:
		if p.state.App != nil {
			lines = append(lines, p.renderDetails(viewmodel.NewApplicationView(*p.state.App)))
		}
		lines = append(lines, "", p.renderDecision())
	}

	if p.inline != "" {
		lines = append(lines, p.theme.StatusError.Render("Error: "+p.inline))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (p ReviewPanel) renderRoster() string {
	muted := lipgloss.NewStyle().Foreground(p.theme.Muted)
	switch {
	case !p.hasRoster:
		return muted.Render("  " + viewmodel.MsgLoadingRecent)
	case len(p.roster) == 0:
		return muted.Render("  " + viewmodel.MsgNoApplications)
	}
	label := viewmodel.PickerLabel(p.roster[p.rosterIdx])
	return muted.Render("  PgUp/PgDn  " + label + "  (" + strconv.Itoa(p.rosterIdx+1) + "/" + strconv.Itoa(len(p.roster)) + ")")
}

func (p ReviewPanel) renderDetails(v viewmodel.ApplicationView) string {
	item := func(label, value string) string {
		return lipgloss.NewStyle().Foreground(p.theme.Muted).Width(labelWidth).Render(label) + value
	}
	lines := []string{
		p.theme.Title.Render("Application Details"),
		item("Application ID", v.ID),
		item("Applicant ID", v.ApplicantID),
		item("Status", p.theme.Badge(v.Status).Render(v.Status)),
		item("Created At", v.CreatedAt),
		item("Requested Amount", v.RequestedAmount),
		item("Requested Tenure", v.RequestedTenure),
		item("Confidence Score", v.Score),
		item("AI Decision", p.theme.Badge(v.Decision).Render(v.Decision)),
	}
	if v.HasOffer {
		lines = append(lines, item("Suggested Offer", v.SuggestedOffer))
	}
	reasoning := lipgloss.NewStyle().Width(max(20, p.width-labelWidth-4)).Render(v.Reasoning)
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Foreground(p.theme.Muted).Width(labelWidth).Render("Reasoning"), reasoning))
	return p.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (p ReviewPanel) renderDecision() string {
	if !p.formVisible() {
		lines := []string{}
		if p.state.Message != "" {
			lines = append(lines, p.theme.StatusInfo.Render(p.state.Message))
		}
		if p.state.Error != "" {
			lines = append(lines, p.theme.StatusError.Render("Error: "+p.state.Error))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	decision := model.HumanDecisions[p.decision]
	lines := []string{
		field(p.theme, "Your Decision", "< "+decision.Label()+" >", p.focus == FieldDecision),
		field(p.theme, "Reviewer Comments", p.comment.View(), p.focus == FieldComment),
	}
	if decision == model.DecisionOffer {
		lines = append(lines,
			field(p.theme, "New Offer Amount (AED)", p.offerAmount.View(), p.focus == FieldOfferAmount),
			field(p.theme, "New Offer Tenure (Months)", p.offerTenure.View(), p.focus == FieldOfferTenure),
		)
	}

	lines = append(lines, "")
	switch {
	case p.state.State == review.StateSubmitting:
		lines = append(lines, p.theme.StatusPending.Render("Submitting..."))
	case p.state.Error != "":
		lines = append(lines, p.theme.StatusError.Render("Error: "+p.state.Error))
	case p.state.Message != "":
		lines = append(lines, p.theme.StatusSuccess.Render(p.state.Message))
	default:
		lines = append(lines, lipgloss.NewStyle().Foreground(p.theme.Muted).Render("Enter to submit decision"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
