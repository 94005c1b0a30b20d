package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Veraticus/finyo-console/internal/dashboard"
	"github.com/Veraticus/finyo-console/internal/insight"
	"github.com/Veraticus/finyo-console/internal/model"
	"github.com/Veraticus/finyo-console/internal/service"
	"github.com/Veraticus/finyo-console/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const barWidth = 30

// Printer writes command output. It renders the same view models as the
// console.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer writing to w, or to stdout when w is nil.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{w: w}
}

// Dashboard prints a dashboard snapshot section by section.
func (p *Printer) Dashboard(snap dashboard.Snapshot) error {
	v := viewmodel.NewDashboardView(snap)

	blocks := []string{FormatTitle("FinYo Confidence Dashboard")}
	for _, failure := range v.Failures {
		blocks = append(blocks, FormatError("Couldn't load: "+failure))
	}
	blocks = append(blocks,
		p.stats(v.KPIs),
		p.monthly(v),
		p.distribution(v),
		p.section(v.AcceptedSection, []string{"App ID", "Applicant", "Score", "Suggested Offer", "Status"}, acceptedRows(v.Accepted)),
		p.section(v.ConditionalSection, []string{"App ID", "Applicant", "Score", "Reasoning", "Status"}, conditionalRows(v.Conditional)),
		SubtitleStyle.Render("Performance Indicators")+"\n"+p.stats(v.Performance),
	)
	insights := SubtitleStyle.Render(v.InsightsSection.Title) + "\n"
	if v.InsightsSection.IsEmpty() {
		insights += sectionMessage(v.InsightsSection)
	} else {
		insights += p.stats(v.Insights)
	}
	blocks = append(blocks, insights)

	return p.write(strings.Join(blocks, "\n\n"))
}

// Recent prints the recent applications list.
func (p *Printer) Recent(res service.Result[[]model.Application]) error {
	title := SubtitleStyle.Render("Recent Applications")
	switch {
	case res.Outcome() == service.OutcomeFailed:
		return p.write(title + "\n" + FormatError(viewmodel.MsgFailedRecent+": "+res.Detail()))
	case len(res.Value) == 0:
		return p.write(title + "\n" + SubtleStyle.Render(viewmodel.MsgNoRecent))
	}

	rows := make([][]string, 0, len(res.Value))
	for _, r := range viewmodel.NewRecentRows(res.Value) {
		rows = append(rows, []string{r.ID, r.Applicant, r.Amount, r.Tenure, r.Decision, r.Score})
	}
	return p.write(title + "\n" + newTable([]string{"ID", "Applicant", "Amount", "Tenure", "Decision", "Score"}, rows))
}

// Application prints the detail card of app.
func (p *Printer) Application(app model.Application) error {
	v := viewmodel.NewApplicationView(app)
	items := []viewmodel.Stat{
		{Label: "Application ID", Value: v.ID},
		{Label: "Applicant ID", Value: v.ApplicantID},
		{Label: "Status", Value: StatusStyle(v.Status).Render(v.Status)},
		{Label: "Created At", Value: v.CreatedAt},
		{Label: "Requested Amount", Value: v.RequestedAmount},
		{Label: "Requested Tenure", Value: v.RequestedTenure},
		{Label: "Confidence Score", Value: v.Score},
		{Label: "AI Decision", Value: StatusStyle(v.Decision).Render(v.Decision)},
	}
	if v.HasOffer {
		items = append(items, viewmodel.Stat{Label: "Suggested Offer", Value: v.SuggestedOffer})
	}
	items = append(items, viewmodel.Stat{Label: "Reasoning", Value: v.Reasoning})

	return p.write(RenderBox("Application Details", p.stats(items)))
}

// Submitted prints the acknowledgement of a new application.
func (p *Printer) Submitted(message string) error {
	return p.write(FormatSuccess(message))
}

// Analysis prints an eligibility analysis.
func (p *Printer) Analysis(v viewmodel.AnalysisView) error {
	style := SuccessStyle
	switch v.Tier {
	case insight.TierModerate:
		style = WarningStyle
	case insight.TierLow:
		style = ErrorStyle
	}
	text := style.Render("Confidence tier: "+v.Tier.String()) + "\n" + v.Text
	return p.write(RenderBox(RobotIcon+" "+v.Title, text))
}

// Explain prints a score explanation.
func (p *Printer) Explain(v viewmodel.ExplainView) error {
	if v.Message != "" {
		return p.write(RenderBox(v.Title, SubtleStyle.Render(v.Message)))
	}
	rows := make([][]string, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = []string{r.Name, r.Value}
	}
	return p.write(TitleStyle.Render(v.Title) + "\n" + newTable([]string{"Feature", "Value"}, rows))
}

// Message prints an informational line.
func (p *Printer) Message(message string) error {
	return p.write(FormatInfo(message))
}

func (p *Printer) stats(stats []viewmodel.Stat) string {
	width := 0
	for _, s := range stats {
		width = max(width, lipgloss.Width(s.Label))
	}
	lines := make([]string, len(stats))
	for i, s := range stats {
		label := SubtleStyle.Render(s.Label + strings.Repeat(" ", width-lipgloss.Width(s.Label)))
		lines[i] = label + "  " + BoldStyle.Render(s.Value)
	}
	return strings.Join(lines, "\n")
}

func (p *Printer) monthly(v viewmodel.DashboardView) string {
	title := SubtitleStyle.Render(ChartIcon + " " + v.MonthlySection.Title)
	if v.MonthlySection.IsEmpty() {
		return title + "\n" + sectionMessage(v.MonthlySection)
	}
	lines := []string{title}
	for _, m := range v.Monthly {
		bar := InfoStyle.Render(viewmodel.Bar(m.Value, v.MonthlyMax, barWidth))
		lines = append(lines, fmt.Sprintf("%-8s %s %s AED", m.Month, bar, m.Amount))
	}
	return strings.Join(lines, "\n")
}

func (p *Printer) distribution(v viewmodel.DashboardView) string {
	title := SubtitleStyle.Render(ChartIcon + " " + v.DistributionSection.Title)
	if v.DistributionSection.IsEmpty() {
		return title + "\n" + sectionMessage(v.DistributionSection)
	}
	lines := []string{title}
	for _, s := range v.Distribution {
		bar := StatusStyle(distributionStatus(s.Label)).Render(viewmodel.Bar(s.Share, 1, barWidth))
		lines = append(lines, fmt.Sprintf("%-12s %s %3d (%.0f%%)", s.Label, bar, s.Count, s.Share*100))
	}
	return strings.Join(lines, "\n")
}

func (p *Printer) section(s viewmodel.Section, headers []string, rows [][]string) string {
	title := SubtitleStyle.Render(s.Title)
	if s.IsEmpty() {
		return title + "\n" + sectionMessage(s)
	}
	return title + "\n" + newTable(headers, rows)
}

func (p *Printer) write(out string) error {
	_, err := fmt.Fprintln(p.w, out)
	return err
}

func sectionMessage(s viewmodel.Section) string {
	if s.Failed {
		return FormatError(s.Message)
	}
	return SubtleStyle.Render(s.Message)
}

func distributionStatus(label string) string {
	switch label {
	case viewmodel.DistributionLabels[0]:
		return string(model.StatusApproved)
	case viewmodel.DistributionLabels[1]:
		return string(model.StatusRejected)
	default:
		return string(model.StatusOffer)
	}
}

func acceptedRows(rows []viewmodel.AcceptedRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.ID, r.Applicant, r.Score, r.SuggestedOffer, r.Status}
	}
	return out
}

func conditionalRows(rows []viewmodel.ConditionalRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.ID, r.Applicant, r.Score, viewmodel.TruncateString(r.Reasoning, 60), r.Status}
	}
	return out
}

func newTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		}).
		String()
}
