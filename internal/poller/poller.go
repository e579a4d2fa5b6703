// Package poller runs the homework status watch loop: fetch, validate,
// translate, notify, then wait a fixed period and start over.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/edgard/homeworkbot/internal/practicum"
)

// DefaultRetryPeriod is the delay between two cycles.
const DefaultRetryPeriod = 10 * time.Minute

// diagnosticPrefix starts every failure report sent to the user.
const diagnosticPrefix = "Program failure: "

// Fetcher returns the decoded status document for the window starting at cursor.
type Fetcher interface {
	Fetch(ctx context.Context, cursor int64) (any, error)
}

// Notifier delivers message unless it repeats last.
type Notifier interface {
	Notify(ctx context.Context, message, last string) (bool, string, error)
}

// State is owned by the loop and threaded through every cycle.
type State struct {
	// Cursor is the from_date of the next request, in unix seconds.
	Cursor int64
	// LastMessage is the text most recently delivered to the user.
	LastMessage string
}

// Poller wires the pipeline stages together.
type Poller struct {
	fetcher     Fetcher
	notifier    Notifier
	retryPeriod time.Duration
	now         func() time.Time
	logger      *slog.Logger

	mu    sync.Mutex
	stats Stats
}

// Option customizes a Poller.
type Option func(*Poller)

// WithRetryPeriod sets the delay after every cycle.
func WithRetryPeriod(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.retryPeriod = d
		}
	}
}

// WithClock replaces time.Now, used for the initial cursor.
func WithClock(now func() time.Time) Option {
	return func(p *Poller) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates a Poller.
func New(fetcher Fetcher, notifier Notifier, logger *slog.Logger, opts ...Option) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Poller{
		fetcher:     fetcher,
		notifier:    notifier,
		retryPeriod: DefaultRetryPeriod,
		now:         time.Now,
		logger:      logger.With("component", "poller"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls until ctx is cancelled. The cursor starts at the current time.
// Errors inside a cycle never stop the loop; the only return value is the
// context error.
func (p *Poller) Run(ctx context.Context) error {
	state := State{Cursor: p.now().Unix()}
	p.logger.InfoContext(ctx, "Starting status poller",
		"cursor", state.Cursor,
		"retry_period", p.retryPeriod)

	for {
		var res Result
		state, res = p.Cycle(ctx, state)
		p.record(state, res)

		timer := time.NewTimer(p.retryPeriod)
		select {
		case <-ctx.Done():
			timer.Stop()
			p.logger.InfoContext(ctx, "Status poller stopped", "cursor", state.Cursor)
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Cycle runs one fetch-validate-translate-notify pass and returns the state
// for the next one. The cursor only moves forward on the success path, so a
// failed pass is retried with the same window.
func (p *Poller) Cycle(ctx context.Context, state State) (State, Result) {
	raw, err := p.fetcher.Fetch(ctx, state.Cursor)
	if err != nil {
		if ctx.Err() != nil {
			p.logger.InfoContext(ctx, "Status request interrupted by shutdown", "cursor", state.Cursor)
			return state, Result{Outcome: OutcomeFetchFailed, Err: err}
		}
		var apiErr *practicum.APIError
		var tErr *practicum.TransportError
		switch {
		case errors.As(err, &apiErr):
			p.logger.ErrorContext(ctx, "Status endpoint returned an error", "status_code", apiErr.StatusCode, "error", err)
			return state, Result{Outcome: OutcomeFetchFailed, Err: err}
		case errors.As(err, &tErr):
			p.logger.ErrorContext(ctx, "Status endpoint unreachable", "error", err)
			return state, Result{Outcome: OutcomeFetchFailed, Err: err}
		default:
			// An invalid body is a contract problem worth showing to the user.
			return p.reportFailure(ctx, state, err), Result{Outcome: OutcomeInvalidResponse, Err: err}
		}
	}

	outcome, err := practicum.ValidateResponse(raw)
	if err != nil {
		return p.reportFailure(ctx, state, err), Result{Outcome: OutcomeInvalidResponse, Err: err}
	}

	if outcome.Kind == practicum.OutcomeNoPendingWork {
		p.logger.InfoContext(ctx, "Homework status has not changed", "cursor", state.Cursor)
		return p.advance(ctx, state, outcome), Result{Outcome: OutcomeNoChange}
	}

	message, err := practicum.Translate(outcome.Item)
	if err != nil {
		return p.reportFailure(ctx, state, err), Result{Outcome: OutcomeInvalidResponse, Err: err}
	}

	delivered, last, err := p.notifier.Notify(ctx, message, state.LastMessage)
	if err != nil {
		return p.reportFailure(ctx, state, err), Result{Outcome: OutcomeDeliveryFailed, Err: err}
	}

	state.LastMessage = last
	res := Result{Outcome: OutcomeDuplicate, Message: message}
	if delivered {
		res.Outcome = OutcomeDelivered
		p.logger.InfoContext(ctx, "Status message sent",
			"homework", outcome.Item.Name,
			"status", outcome.Item.Status)
	} else {
		p.logger.DebugContext(ctx, "Status message already sent", "homework", outcome.Item.Name)
	}
	return p.advance(ctx, state, outcome), res
}

// advance moves the cursor to the server clock when the response carried one.
func (p *Poller) advance(ctx context.Context, state State, outcome practicum.Outcome) State {
	if !outcome.HasCurrentDate {
		p.logger.WarnContext(ctx, "Response has no current_date, keeping cursor", "cursor", state.Cursor)
		return state
	}
	state.Cursor = outcome.CurrentDate
	return state
}

// reportFailure logs an unexpected failure and tells the user about it.
// A failing report is logged and otherwise ignored.
func (p *Poller) reportFailure(ctx context.Context, state State, cause error) State {
	message := diagnosticPrefix + cause.Error()
	p.logger.ErrorContext(ctx, "Unexpected failure in status cycle", "error", cause)

	_, last, err := p.notifier.Notify(ctx, message, state.LastMessage)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to report failure to user", "error", err)
		return state
	}
	state.LastMessage = last
	return state
}
