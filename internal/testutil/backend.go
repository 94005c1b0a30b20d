package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/finyo-console/internal/model"
	"github.com/go-chi/chi/v5"
)

// Routes served by the fake backend, as "METHOD pattern".
const (
	RouteSummary       = "GET /dashboard/summary"
	RouteTransactions  = "GET /transactions"
	RouteAnalytics     = "GET /analytics"
	RouteSubmit        = "POST /applications/submit"
	RouteApplication   = "GET /applications/{id}"
	RouteHumanDecision = "POST /applications/{id}/human_decision"
	RouteRecent        = "GET /applications/recent"
)

// recentLimit caps the recent applications listing.
const recentLimit = 10

// Failure makes a route answer with a canned error response.
type Failure struct {
	Body   string
	Status int
	// Times limits how many calls fail; zero fails every call.
	Times int
}

// DecisionHook runs after the fake applied a human decision and may alter
// the stored application, for instance to simulate a concurrent reviewer.
type DecisionHook func(app *model.Application, req model.HumanDecisionRequest)

// Backend is an in-memory stand-in for the scoring backend.
type Backend struct {
	analytics    model.Analytics
	server       *httptest.Server
	apps         map[int64]*model.Application
	calls        map[string]int
	failures     map[string]*Failure
	delays       map[string]time.Duration
	onDecision   DecisionHook
	transactions string
	decisions    []model.HumanDecisionRequest
	submissions  []model.SubmitRequest
	requestIDs   []string
	summary      model.Summary
	nextID       int64
	mu           sync.Mutex
}

// NewBackend starts a fake backend seeded with the fixtures. The server is
// closed when the test ends.
func NewBackend(tb testing.TB) *Backend {
	tb.Helper()

	b := &Backend{
		summary:      FixtureSummary(),
		transactions: FixtureTransactionsJSON,
		analytics:    FixtureAnalytics(),
		apps:         make(map[int64]*model.Application),
		calls:        make(map[string]int),
		failures:     make(map[string]*Failure),
		delays:       make(map[string]time.Duration),
		nextID:       200,
	}
	for _, app := range FixtureApplications() {
		b.PutApplication(app)
	}

	b.server = httptest.NewServer(b.Router())
	tb.Cleanup(b.server.Close)
	return b
}

// URL returns the base URL of the running server.
func (b *Backend) URL() string {
	return b.server.URL
}

// Router builds the chi router serving the backend's endpoints.
func (b *Backend) Router() http.Handler {
	r := chi.NewRouter()
	b.handle(r, RouteSummary, b.getSummary)
	b.handle(r, RouteTransactions, b.getTransactions)
	b.handle(r, RouteAnalytics, b.getAnalytics)
	b.handle(r, RouteSubmit, b.submitApplication)
	b.handle(r, RouteRecent, b.listRecent)
	b.handle(r, RouteApplication, b.getApplication)
	b.handle(r, RouteHumanDecision, b.humanDecision)
	return r
}

func (b *Backend) handle(r chi.Router, route string, h http.HandlerFunc) {
	var method, pattern string
	if _, err := fmt.Sscanf(route, "%s %s", &method, &pattern); err != nil {
		panic(fmt.Sprintf("invalid route %q", route))
	}
	r.Method(method, pattern, b.instrument(route, h))
}

func (b *Backend) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls[route]++
		b.requestIDs = append(b.requestIDs, r.Header.Get("X-Request-ID"))
		delay := b.delays[route]
		var failure *Failure
		if f, ok := b.failures[route]; ok {
			copied := *f
			failure = &copied
			if f.Times > 0 {
				f.Times--
				if f.Times == 0 {
					delete(b.failures, route)
				}
			}
		}
		b.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		if failure != nil {
			writeRaw(w, failure.Status, failure.Body)
			return
		}
		next(w, r)
	}
}

// Fail makes route answer with f until its Times are used up.
func (b *Backend) Fail(route string, f Failure) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = &f
}

// Delay holds every response on route for d.
func (b *Backend) Delay(route string, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.delays[route] = d
}

// Calls returns how many requests reached route.
func (b *Backend) Calls(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[route]
}

// RequestIDs returns the X-Request-ID of every request received, in order.
func (b *Backend) RequestIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requestIDs...)
}

// Decisions returns the human decision bodies received, in order.
func (b *Backend) Decisions() []model.HumanDecisionRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.HumanDecisionRequest(nil), b.decisions...)
}

// Submissions returns the submission bodies received, in order.
func (b *Backend) Submissions() []model.SubmitRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.SubmitRequest(nil), b.submissions...)
}

// SetSummary replaces the summary payload.
func (b *Backend) SetSummary(s model.Summary) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.summary = s
}

// SetTransactionsJSON replaces the raw transactions payload.
func (b *Backend) SetTransactionsJSON(raw string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transactions = raw
}

// SetAnalytics replaces the analytics payload.
func (b *Backend) SetAnalytics(a model.Analytics) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.analytics = a
}

// PutApplication stores or replaces an application.
func (b *Backend) PutApplication(app model.Application) {
	b.mu.Lock()
	defer b.mu.Unlock()
	stored := app
	b.apps[app.ID] = &stored
}

// Application returns a copy of the stored application.
func (b *Backend) Application(id int64) (model.Application, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	app, ok := b.apps[id]
	if !ok {
		return model.Application{}, false
	}
	return *app, true
}

// SetStatus changes an application's status behind the reviewer's back.
func (b *Backend) SetStatus(id int64, status model.Status) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if app, ok := b.apps[id]; ok {
		app.Status = status
	}
}

// OnDecision installs a hook run after each applied human decision.
func (b *Backend) OnDecision(hook DecisionHook) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onDecision = hook
}

func (b *Backend) getSummary(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	summary := b.summary
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, summary)
}

func (b *Backend) getTransactions(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	raw := b.transactions
	b.mu.Unlock()
	writeRaw(w, http.StatusOK, raw)
}

func (b *Backend) getAnalytics(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	analytics := b.analytics
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, analytics)
}

func (b *Backend) submitApplication(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if req.ApplicantID < 1 {
		writeDetail(w, http.StatusNotFound, "Applicant not found")
		return
	}

	b.mu.Lock()
	b.submissions = append(b.submissions, req)
	b.nextID++
	app := model.Application{
		ID:                    b.nextID,
		ApplicantID:           req.ApplicantID,
		RequestedAmount:       req.RequestedAmount,
		RequestedTenureMonths: req.RequestedTenureMonths,
		Status:                model.StatusUnderProcess,
		Decision:              model.DecisionManualReview,
		Score:                 Ptr(0.5),
		Reasoning:             "Awaiting human review.",
		CreatedAt:             &model.Timestamp{Time: time.Now().UTC()},
	}
	b.apps[app.ID] = &app
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"application_id": app.ID,
		"status":         app.Status,
		"decision":       app.Decision,
	})
}

func (b *Backend) listRecent(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	apps := make([]model.Application, 0, len(b.apps))
	for _, app := range b.apps {
		apps = append(apps, *app)
	}
	b.mu.Unlock()

	sort.Slice(apps, func(i, j int) bool { return apps[i].ID > apps[j].ID })
	if len(apps) > recentLimit {
		apps = apps[:recentLimit]
	}
	writeJSON(w, http.StatusOK, apps)
}

func (b *Backend) getApplication(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "application id must be an integer")
		return
	}
	app, ok := b.Application(id)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Application not found")
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (b *Backend) humanDecision(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "application id must be an integer")
		return
	}
	var req model.HumanDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	b.mu.Lock()
	b.decisions = append(b.decisions, req)
	app, ok := b.apps[id]
	if !ok {
		b.mu.Unlock()
		writeDetail(w, http.StatusNotFound, "Application not found")
		return
	}
	if !app.Status.AcceptsHumanDecision() {
		b.mu.Unlock()
		writeDetail(w, http.StatusConflict, "Application already processed")
		return
	}

	switch req.HumanDecision {
	case model.DecisionApprove:
		app.Status = model.StatusApproved
	case model.DecisionReject:
		app.Status = model.StatusRejected
	case model.DecisionOffer:
		if req.NewOffer == nil {
			b.mu.Unlock()
			writeDetail(w, http.StatusUnprocessableEntity, "new_offer is required for an offer")
			return
		}
		app.Status = model.StatusOffer
		offer := *req.NewOffer
		app.SuggestedOffer = &offer
	default:
		b.mu.Unlock()
		writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("unknown decision %q", req.HumanDecision))
		return
	}
	if req.Comment != nil {
		app.Reasoning = *req.Comment
	}
	if b.onDecision != nil {
		b.onDecision(app, req)
	}
	updated := *app
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, updated)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeRaw(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
