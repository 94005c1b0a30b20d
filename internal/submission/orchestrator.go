// Package submission validates and files new applications and owns the
// recent-applications list.
package submission

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/Veraticus/finyo-console/internal/common"
	"github.com/Veraticus/finyo-console/internal/model"
	"github.com/Veraticus/finyo-console/internal/service"
)

// MsgSubmitted is the success message; the placeholder is the new id.
const MsgSubmitted = "Application Submitted! ID: %d"

// Ticket identifies one Begin call.
type Ticket uint64

// Orchestrator is the single writer of the recent list. Begin and Apply
// calls must come from the owning goroutine; Recent may be read anywhere.
type Orchestrator struct {
	gw            service.ApplicationSubmitter
	recent        atomic.Pointer[service.Result[[]model.Application]]
	err           error
	logger        *slog.Logger
	message       string
	form          Form
	lastID        int64
	submitTicket  Ticket
	refreshTicket Ticket
	submitting    bool
	refreshing    bool
	closed        bool
}

// New creates an orchestrator with a blank form.
func New(gw service.ApplicationSubmitter) *Orchestrator {
	return &Orchestrator{
		gw:     gw,
		form:   DefaultForm(),
		logger: slog.Default().With("component", "submission"),
	}
}

// Form returns the retained form values.
func (o *Orchestrator) Form() Form { return o.form }

// SetForm replaces the form values without submitting them.
func (o *Orchestrator) SetForm(f Form) { o.form = f }

// Message returns the last success message.
func (o *Orchestrator) Message() string { return o.message }

// Err returns the last submission error.
func (o *Orchestrator) Err() error { return o.err }

// ErrorText returns the operator-facing text of the last error.
func (o *Orchestrator) ErrorText() string { return common.Detail(o.err) }

// LastID returns the id of the last accepted application.
func (o *Orchestrator) LastID() int64 { return o.lastID }

// Submitting reports whether a submission is in flight.
func (o *Orchestrator) Submitting() bool { return o.submitting }

// Refreshing reports whether the recent list is being reloaded.
func (o *Orchestrator) Refreshing() bool { return o.refreshing }

// Recent returns the last loaded recent list.
func (o *Orchestrator) Recent() (service.Result[[]model.Application], bool) {
	res := o.recent.Load()
	if res == nil {
		return service.Result[[]model.Application]{}, false
	}
	return *res, true
}

// Close marks the owning view as torn down.
func (o *Orchestrator) Close() { o.closed = true }

// BeginSubmit validates f and marks a submission in flight. The form is
// retained whether or not it is valid.
func (o *Orchestrator) BeginSubmit(f Form) (Ticket, error) {
	if o.closed {
		return 0, common.ErrViewClosed
	}
	if o.submitting {
		return 0, common.ErrBusy
	}
	o.form = f
	o.message = ""
	if err := f.Validate(); err != nil {
		o.err = err
		return 0, err
	}

	o.err = nil
	o.submitting = true
	o.submitTicket++
	o.logger.Debug("Submitting application",
		"applicant_id", f.ApplicantID, "amount", f.Amount, "tenure_months", f.TenureMonths)
	return o.submitTicket, nil
}

// ApplySubmit folds the gateway result in. It reports whether the recent
// list must now be re-fetched.
func (o *Orchestrator) ApplySubmit(t Ticket, res service.Result[model.SubmitResponse]) bool {
	if o.closed || t != o.submitTicket || !o.submitting {
		o.logger.Debug("Discarding stale submission result", "ticket", t)
		return false
	}
	o.submitting = false

	if !res.OK() {
		o.err = res.Err
		return false
	}
	o.lastID = res.Value.ApplicationID
	o.message = fmt.Sprintf(MsgSubmitted, res.Value.ApplicationID)
	return true
}

// BeginRefresh starts a reload of the recent list.
func (o *Orchestrator) BeginRefresh() (Ticket, error) {
	if o.closed {
		return 0, common.ErrViewClosed
	}
	o.refreshTicket++
	o.refreshing = true
	return o.refreshTicket, nil
}

// ApplyRefresh replaces the recent list if t is the latest refresh.
func (o *Orchestrator) ApplyRefresh(t Ticket, res service.Result[[]model.Application]) bool {
	if o.closed || t != o.refreshTicket {
		o.logger.Debug("Discarding stale recent list", "ticket", t)
		return false
	}
	o.refreshing = false
	o.recent.Store(&res)
	return true
}

// Submit validates and files f, then reloads the recent list on success.
func (o *Orchestrator) Submit(ctx context.Context, f Form) (model.SubmitResponse, error) {
	t, err := o.BeginSubmit(f)
	if err != nil {
		return model.SubmitResponse{}, err
	}
	res := o.gw.SubmitApplication(ctx, f.ApplicantID, f.Amount, f.TenureMonths)
	if !o.ApplySubmit(t, res) {
		if o.err != nil {
			return model.SubmitResponse{}, o.err
		}
		return model.SubmitResponse{}, common.ErrViewClosed
	}
	if err := o.Refresh(ctx); err != nil {
		o.logger.Warn("Recent applications reload failed", "error", err)
	}
	return res.Value, nil
}

// Refresh reloads the recent list and waits for it.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	t, err := o.BeginRefresh()
	if err != nil {
		return err
	}
	res := o.gw.ListRecentApplications(ctx)
	o.ApplyRefresh(t, res)
	return res.Err
}
