package probe

import (
	"time"
)

// Config holds configuration for a probe run.
type Config struct {
	BaseURL string        // Base URL of the backend API
	Workers int           // Maximum concurrent calls
	Timeout time.Duration // Per-call HTTP timeout
	Lang    string        // Language passed to language-aware endpoints
	Verbose bool          // Log every call as it completes
}

// Result is the outcome of one endpoint call.
type Result struct {
	Name     string
	Path     string
	Outcome  string // ok, envelope_error or transport_error
	Status   int    // envelope status code, zero unless Outcome is envelope_error
	Message  string
	Duration time.Duration
}

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r.Outcome == OutcomeOK }

// Report collects the results of a run in the order the checks were declared.
type Report struct {
	RunID     string
	BaseURL   string
	Results   []Result
	StartTime time.Time
	Duration  time.Duration
}

// Failed returns the number of calls that did not succeed.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}
