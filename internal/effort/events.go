package effort

import (
	"time"

	"github.com/effortwise/gearbox/pkg/models"
)

// EventType represents the type of effort controller event.
type EventType string

const (
	// EventTopDown indicates a full top-down re-seed of role profiles.
	EventTopDown EventType = "effort_top_down"
	// EventEscalate indicates a failure-driven escalation step.
	EventEscalate EventType = "effort_escalate"
	// EventMidTune indicates a signal-driven mid-execution adjustment.
	EventMidTune EventType = "effort_mid_tune"
	// EventCircuitBreak indicates the controller halted escalation.
	EventCircuitBreak EventType = "effort_circuit_break"
)

// Event carries one controller telemetry record.
type Event struct {
	Type      EventType      `json:"type"`
	TaskID    string         `json:"task_id,omitempty"`
	Role      models.Role    `json:"role,omitempty"`
	Message   string         `json:"message,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// EventSink receives controller events. Emission is fire-and-forget:
// sinks must not block controller progress, and a failing sink never
// affects controller correctness.
type EventSink interface {
	Emit(Event)
}

// SinkFunc adapts a function to the EventSink interface.
type SinkFunc func(Event)

// Emit calls the wrapped function.
func (f SinkFunc) Emit(e Event) { f(e) }

// MultiSink fans one event out to several sinks in order.
type MultiSink []EventSink

// Emit delivers the event to every sink.
func (m MultiSink) Emit(e Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(e)
		}
	}
}
