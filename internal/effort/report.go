package effort

import (
	"github.com/effortwise/gearbox/pkg/models"
)

// RoleSummary is the per-role slice of an effort report.
type RoleSummary struct {
	Role            models.Role  `json:"role"`
	Level           models.Level `json:"level"`
	Tier            models.Tier  `json:"tier"`
	Depth           float64      `json:"depth"`
	Temperature     float64      `json:"temperature"`
	TokenBudget     int          `json:"token_budget"`
	EffectiveEffort float64      `json:"effective_effort"`
}

// EffortReport is the reporting surface consumed by audits and
// cost summaries.
type EffortReport struct {
	TaskID           string                `json:"task_id"`
	ComplexityScore  float64               `json:"complexity_score"`
	Bucket           ComplexityBucket      `json:"bucket"`
	EscalationLevel  int                   `json:"escalation_level"`
	TotalEscalations int                   `json:"total_escalations"`
	TotalFailures    int                   `json:"total_failures"`
	EffortChanges    int                   `json:"effort_changes"`
	CostEstimate     float64               `json:"cost_estimate"`
	MaxCost          float64               `json:"max_cost"`
	FinalStates      []RoleSummary         `json:"final_states"`
	FailureTraces    []models.FailureTrace `json:"failure_traces,omitempty"`
	History          []models.EffortChange `json:"history,omitempty"`
}

// Report summarizes the controller's current state for audit and cost
// reporting. Role summaries come back in pipeline order, Level1 first.
func (c *Controller) Report() *EffortReport {
	state := c.state

	report := &EffortReport{
		TaskID:           state.TaskID,
		ComplexityScore:  state.ComplexityScore,
		EscalationLevel:  state.EscalationLevel,
		TotalEscalations: state.EscalationLevel,
		TotalFailures:    len(state.FailureTraces),
		EffortChanges:    len(state.EffortHistory),
		CostEstimate:     c.params.EstimateCost(state.NodeStates),
		MaxCost:          c.params.MaxCostPerTask,
		FailureTraces:    append([]models.FailureTrace(nil), state.FailureTraces...),
		History:          append([]models.EffortChange(nil), state.EffortHistory...),
	}
	// A never-assessed state has no bucket; classifying its zero score
	// would misreport it as trivial.
	if state.TaskID != "" {
		report.Bucket = Classify(state.ComplexityScore)
	}

	for _, role := range models.AllRoles {
		profile, ok := state.NodeStates[role]
		if !ok {
			continue
		}
		report.FinalStates = append(report.FinalStates, RoleSummary{
			Role:            role,
			Level:           role.Level(),
			Tier:            profile.Tier,
			Depth:           profile.Depth,
			Temperature:     profile.Temperature,
			TokenBudget:     profile.TokenBudget,
			EffectiveEffort: EffectiveEffort(profile),
		})
	}

	return report
}
