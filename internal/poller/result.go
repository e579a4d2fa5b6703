package poller

import "time"

// Outcome classifies how a cycle ended.
type Outcome int

const (
	// OutcomeDelivered means a new status message was sent.
	OutcomeDelivered Outcome = iota
	// OutcomeDuplicate means the status message repeated the last one and was skipped.
	OutcomeDuplicate
	// OutcomeNoChange means the response listed no homework.
	OutcomeNoChange
	// OutcomeFetchFailed means the endpoint could not be reached or answered non-200.
	OutcomeFetchFailed
	// OutcomeInvalidResponse means the body, name or status could not be used.
	OutcomeInvalidResponse
	// OutcomeDeliveryFailed means the status message could not be sent.
	OutcomeDeliveryFailed
)

// String returns the snake_case name used in logs and stats.
func (o Outcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeNoChange:
		return "no_change"
	case OutcomeFetchFailed:
		return "fetch_failed"
	case OutcomeInvalidResponse:
		return "invalid_response"
	case OutcomeDeliveryFailed:
		return "delivery_failed"
	default:
		return "unknown"
	}
}

// Failed reports whether the cycle ended with an error.
func (o Outcome) Failed() bool {
	return o >= OutcomeFetchFailed
}

// Result describes one cycle.
type Result struct {
	Outcome Outcome
	// Message is the status text built in this cycle, if any.
	Message string
	Err     error
}

// Stats is a point-in-time summary of the poller, safe to read from other
// goroutines through Snapshot.
type Stats struct {
	Cycles      uint64
	Delivered   uint64
	Duplicates  uint64
	NoChange    uint64
	Failures    uint64
	Cursor      int64
	LastOutcome string
	LastError   string
	LastCycleAt time.Time
}

// Snapshot returns a copy of the current counters.
func (p *Poller) Snapshot() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

func (p *Poller) record(state State, res Result) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stats.Cycles++
	switch res.Outcome {
	case OutcomeDelivered:
		p.stats.Delivered++
	case OutcomeDuplicate:
		p.stats.Duplicates++
	case OutcomeNoChange:
		p.stats.NoChange++
	}
	if res.Outcome.Failed() {
		p.stats.Failures++
	}
	p.stats.LastError = ""
	if res.Err != nil {
		p.stats.LastError = res.Err.Error()
	}
	p.stats.Cursor = state.Cursor
	p.stats.LastOutcome = res.Outcome.String()
	p.stats.LastCycleAt = p.now()
}
