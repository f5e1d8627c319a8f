package domain

import "time"

// Step outcomes.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// StepResult is the outcome of one scenario call.
type StepResult struct {
	Name     string        `json:"name"`
	Endpoint string        `json:"endpoint"`
	Status   string        `json:"status"`
	Error    string        `json:"error,omitempty"`
	Elapsed  time.Duration `json:"elapsed"`
	Response any           `json:"response,omitempty"`
}

// Report collects the steps of one scenario run.
type Report struct {
	RunID      string       `json:"run_id"`
	Scenario   string       `json:"scenario"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Steps      []StepResult `json:"steps"`
}

// Failed returns the first failed step, if any.
func (r *Report) Failed() (StepResult, bool) {
	if r == nil {
		return StepResult{}, false
	}
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			return s, true
		}
	}
	return StepResult{}, false
}
