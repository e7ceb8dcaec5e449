// Package doctor runs the health checks behind the ersm doctor command:
// config parsing, save root and slot discovery, sidecar integrity, and
// drift between the notes file and the backup directories.
package doctor

import "time"

// Check is a single diagnostic. Run never returns nil.
type Check interface {
	Name() string
	Category() string
	Run() *CheckResult
}

// Runner executes checks in registration order.
type Runner struct {
	checks []Check
}

// NewRunner builds a Runner over the given checks.
func NewRunner(checks ...Check) *Runner {
	return &Runner{checks: checks}
}

// AddCheck appends a check to the run.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Run executes every registered check and aggregates the outcomes.
func (r *Runner) Run() *Report {
	report := &Report{
		Timestamp: time.Now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}
	for _, c := range r.checks {
		res := c.Run()
		report.Results = append(report.Results, res)
		report.Summary.record(res.Status)
	}
	return report
}

// Report is one full diagnostic run, shaped for both the text and JSON
// renderings of the doctor command.
type Report struct {
	Timestamp time.Time      `json:"timestamp"`
	Results   []*CheckResult `json:"results"`
	Summary   Summary        `json:"summary"`
}

// HasErrors reports whether any check ended at SeverityError.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings reports whether any check ended at SeverityWarning.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}
