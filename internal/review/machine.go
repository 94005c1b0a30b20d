// Package review drives the fetch/decide lifecycle of the application under
// human review. Transition legality lives here and in model.Status only.
package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/finyo-console/internal/common"
	"github.com/Veraticus/finyo-console/internal/model"
	"github.com/Veraticus/finyo-console/internal/service"
)

// State is the lifecycle state of the review machine.
type State int

// Review states.
const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
	StateSubmitting
	StateError
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateSubmitting:
		return "submitting"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Ticket identifies one Begin call. Results carrying an older ticket are stale.
type Ticket uint64

// ErrNoApplication is reported when the backend answered without a payload.
var ErrNoApplication = errors.New("backend returned no application")

// Messages shown alongside the loaded application.
const (
	MsgDecisionRecorded = "Decision recorded. Application status is now '%s'."
	MsgReloadFailed     = "Decision submitted, but reloading the application failed."
	MsgAlreadyProcessed = "This application has already been processed with a final status of '%s'. No further action is needed."
)

// Machine is the review state machine. It is not safe for concurrent use:
// Begin and Apply calls must come from the one goroutine that owns it.
type Machine struct {
	gw          service.ApplicationReviewer
	app         *model.Application
	err         error
	logger      *slog.Logger
	message     string
	draft       Draft
	selected    int64
	ticket      Ticket
	state       State
	afterDecide bool
	closed      bool
}

// New creates a machine in the Unloaded state.
func New(gw service.ApplicationReviewer) *Machine {
	return &Machine{
		gw:     gw,
		draft:  DefaultDraft(),
		logger: slog.Default().With("component", "review"),
	}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Application returns the loaded application, nil unless Loaded or Submitting.
func (m *Machine) Application() *model.Application { return m.app }

// SelectedID returns the id of the last selected application.
func (m *Machine) SelectedID() int64 { return m.selected }

// Draft returns the reviewer's form values.
func (m *Machine) Draft() Draft { return m.draft }

// Err returns the error surfaced by the last transition, if any.
func (m *Machine) Err() error { return m.err }

// Message returns the informational message of the last transition.
func (m *Machine) Message() string { return m.message }

// Closed reports whether the owning view has been torn down.
func (m *Machine) Closed() bool { return m.closed }

// CanDecide reports whether Decide would be attempted from the current state.
func (m *Machine) CanDecide() bool {
	return m.state == StateLoaded && m.app != nil && m.app.Status.AcceptsHumanDecision()
}

// SetDraft replaces the form values. Edits are refused while a decision is in flight.
func (m *Machine) SetDraft(d Draft) error {
	if m.state == StateSubmitting {
		return common.ErrBusy
	}
	m.draft = d
	return nil
}

// Close marks the owning view as torn down. Later results are discarded.
func (m *Machine) Close() {
	m.closed = true
}

// BeginSelect starts loading application id.
func (m *Machine) BeginSelect(id int64) (Ticket, error) {
	switch {
	case m.closed:
		return 0, common.ErrViewClosed
	case m.state == StateSubmitting:
		return 0, fmt.Errorf("%w: decision for application %d is being submitted", common.ErrBusy, m.selected)
	case id < 1:
		return 0, common.NewValidationError("application_id", "must be a positive integer")
	}

	if id != m.selected {
		m.draft = DefaultDraft()
	}
	m.ticket++
	m.selected = id
	m.app = nil
	m.err = nil
	m.message = ""
	m.afterDecide = false
	m.transition(StateLoading)
	return m.ticket, nil
}

// ApplyFetch folds a GetApplication result into the machine. It reports
// whether the result was applied; stale and post-Close results are dropped.
func (m *Machine) ApplyFetch(t Ticket, res service.Result[*model.Application]) bool {
	if !m.live(t, StateLoading) {
		return false
	}

	afterDecide := m.afterDecide
	m.afterDecide = false

	if !res.OK() || res.Value == nil {
		m.app = nil
		m.err = res.Err
		if m.err == nil {
			m.err = ErrNoApplication
		}
		m.message = ""
		if afterDecide {
			m.message = MsgReloadFailed
		}
		m.transition(StateError)
		return true
	}

	m.app = res.Value
	m.err = nil
	switch {
	case afterDecide:
		m.message = fmt.Sprintf(MsgDecisionRecorded, m.app.Status)
		m.draft = DefaultDraft()
	case !m.app.Status.AcceptsHumanDecision():
		m.message = fmt.Sprintf(MsgAlreadyProcessed, m.app.Status)
	default:
		m.message = ""
	}
	m.transition(StateLoaded)
	return true
}

// BeginDecide validates the draft and moves to Submitting. It returns the
// request to send for the selected application.
func (m *Machine) BeginDecide() (Ticket, model.HumanDecisionRequest, error) {
	if m.closed {
		return 0, model.HumanDecisionRequest{}, common.ErrViewClosed
	}
	if m.state != StateLoaded || m.app == nil {
		return 0, model.HumanDecisionRequest{}, fmt.Errorf("%w: cannot decide while %s", common.ErrIllegalTransition, m.state)
	}
	if !m.app.Status.AcceptsHumanDecision() {
		return 0, model.HumanDecisionRequest{}, fmt.Errorf("%w: application %d has status %s",
			common.ErrIllegalTransition, m.app.ID, m.app.Status)
	}

	req, err := m.draft.Request()
	if err != nil {
		m.err = err
		return 0, model.HumanDecisionRequest{}, err
	}

	m.ticket++
	m.err = nil
	m.message = ""
	m.transition(StateSubmitting)
	return m.ticket, req, nil
}

// ApplyDecide folds a SubmitHumanDecision result into the machine. It
// reports whether the caller must now re-fetch the application, passing the
// same ticket to ApplyFetch. On failure the draft is kept for a retry.
func (m *Machine) ApplyDecide(t Ticket, res service.Result[*model.Application]) bool {
	if !m.live(t, StateSubmitting) {
		return false
	}

	if !res.OK() {
		m.err = res.Err
		m.transition(StateLoaded)
		return false
	}

	m.afterDecide = true
	m.transition(StateLoading)
	return true
}

// Select loads application id and waits for the result.
func (m *Machine) Select(ctx context.Context, id int64) error {
	t, err := m.BeginSelect(id)
	if err != nil {
		return err
	}
	m.ApplyFetch(t, m.gw.GetApplication(ctx, id))
	return m.err
}

// Decide submits d for the loaded application and re-fetches it to learn
// its authoritative status.
func (m *Machine) Decide(ctx context.Context, d Draft) error {
	if err := m.SetDraft(d); err != nil {
		return err
	}
	t, req, err := m.BeginDecide()
	if err != nil {
		return err
	}

	id := m.selected
	if !m.ApplyDecide(t, m.gw.SubmitHumanDecision(ctx, id, req.HumanDecision, req.Comment, req.NewOffer)) {
		return m.err
	}
	m.ApplyFetch(t, m.gw.GetApplication(ctx, id))
	return m.err
}

func (m *Machine) live(t Ticket, want State) bool {
	if m.closed || t != m.ticket || m.state != want {
		m.logger.Debug("Discarding stale review result",
			"ticket", t, "current_ticket", m.ticket, "state", m.state, "closed", m.closed)
		return false
	}
	return true
}

func (m *Machine) transition(to State) {
	m.logger.Debug("Review transition", "from", m.state, "to", to, "application_id", m.selected)
	m.state = to
}
