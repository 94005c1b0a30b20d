package tui

import (
	"github.com/Veraticus/finyo-console/internal/dashboard"
	"github.com/Veraticus/finyo-console/internal/model"
	"github.com/Veraticus/finyo-console/internal/review"
	"github.com/Veraticus/finyo-console/internal/service"
	"github.com/Veraticus/finyo-console/internal/submission"
)

// Backend results. Each carries the ticket of the Begin call that issued it
// so the owning orchestrator can drop superseded results.
type dashboardLoadedMsg struct {
	snap   dashboard.Snapshot
	ticket dashboard.Ticket
}

type recentLoadedMsg struct {
	res    service.Result[[]model.Application]
	ticket submission.Ticket
}

type submittedMsg struct {
	res    service.Result[model.SubmitResponse]
	ticket submission.Ticket
}

type applicationLoadedMsg struct {
	res    service.Result[*model.Application]
	ticket review.Ticket
}

type decisionSubmittedMsg struct {
	res    service.Result[*model.Application]
	ticket review.Ticket
	id     int64
}
