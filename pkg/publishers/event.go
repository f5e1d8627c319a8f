package publishers

import (
	"time"

	"github.com/grassroot-hq/grassroot-apiclient/internal/domain"
)

// Event is the report record sent to every sink for one scenario step.
type Event struct {
	RunID      string    `json:"run_id"`
	Scenario   string    `json:"scenario"`
	Step       string    `json:"step"`
	Endpoint   string    `json:"endpoint"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	ElapsedMs  int64     `json:"elapsed_ms"`
	Response   any       `json:"response,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// NewEvent builds the record for a finished step.
func NewEvent(runID, scenario string, step domain.StepResult) Event {
	return Event{
		RunID:      runID,
		Scenario:   scenario,
		Step:       step.Name,
		Endpoint:   step.Endpoint,
		Status:     step.Status,
		Error:      step.Error,
		ElapsedMs:  step.Elapsed.Milliseconds(),
		Response:   step.Response,
		RecordedAt: time.Now().UTC(),
	}
}

// attributes are the routing attributes queue sinks attach to messages.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"run_id":   e.RunID,
		"step":     e.Step,
		"endpoint": e.Endpoint,
		"status":   e.Status,
	}
}
