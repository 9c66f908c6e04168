package models

import "time"

// Direction tags an audit entry with which control path produced it.
type Direction string

const (
	// DirectionTopDown marks a full re-seed by the propagator.
	DirectionTopDown Direction = "top_down"
	// DirectionBottomUp marks a failure-driven escalation step.
	DirectionBottomUp Direction = "bottom_up"
	// DirectionMidExecution marks a signal-driven mid-run adjustment.
	DirectionMidExecution Direction = "mid_execution"
)

// FailureTrace records one rejected role output.
type FailureTrace struct {
	Role      Role      `json:"role"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// EffortChange is one append-only audit entry describing an effort
// adjustment.
type EffortChange struct {
	Direction Direction `json:"direction"`
	// Role is set for single-role changes (mid-execution tuning,
	// the failing role on escalation).
	Role Role `json:"role,omitempty"`
	// Level is the escalation level after a bottom-up step.
	Level int `json:"level,omitempty"`
	// Phase is the ladder phase of a bottom-up step.
	Phase string `json:"phase,omitempty"`
	// Reason carries the failure reason or tuning signal.
	Reason string `json:"reason,omitempty"`
	// Detail is a short human-readable summary of what changed.
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ControllerState is the one mutable aggregate the effort controller
// owns. One ControllerState exists per task context; it is persisted as
// a single blob and never shared across concurrent tasks.
type ControllerState struct {
	TaskID          string  `json:"task_id"`
	ComplexityScore float64 `json:"complexity_score"`
	// NodeStates holds the current per-role effort profiles.
	NodeStates map[Role]EffortProfile `json:"node_states"`
	// EscalationLevel is the ladder position in [0,6]; 6 is terminal.
	EscalationLevel int `json:"escalation_level"`
	// FailureTraces records every rejected output, in order.
	FailureTraces []FailureTrace `json:"failure_traces"`
	// EffortHistory is the append-only audit trail.
	EffortHistory []EffortChange `json:"effort_history"`
	// TotalCostEstimate is the running cost estimate for the task.
	TotalCostEstimate float64 `json:"total_cost_estimate"`
}

// NewControllerState returns a fresh state with empty node profiles and
// escalation level zero.
func NewControllerState() *ControllerState {
	return &ControllerState{
		NodeStates: make(map[Role]EffortProfile),
	}
}

// Clone returns a deep copy of the state. The escalator hands copies to
// callers so result snapshots cannot alias live state.
func (s *ControllerState) Clone() *ControllerState {
	out := &ControllerState{
		TaskID:            s.TaskID,
		ComplexityScore:   s.ComplexityScore,
		EscalationLevel:   s.EscalationLevel,
		TotalCostEstimate: s.TotalCostEstimate,
		NodeStates:        make(map[Role]EffortProfile, len(s.NodeStates)),
	}
	for role, profile := range s.NodeStates {
		out.NodeStates[role] = profile
	}
	out.FailureTraces = append([]FailureTrace(nil), s.FailureTraces...)
	out.EffortHistory = append([]EffortChange(nil), s.EffortHistory...)
	return out
}
