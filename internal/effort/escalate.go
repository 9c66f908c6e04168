package effort

import (
	"fmt"
	"time"

	"github.com/effortwise/gearbox/pkg/models"
)

// EscalationAction is the outcome class of a HandleFailure call.
type EscalationAction string

const (
	// ActionEscalate means the ladder advanced and execution should
	// resume from the result's RestartFrom level.
	ActionEscalate EscalationAction = "escalate"
	// ActionCircuitBreak means the controller refuses further automatic
	// escalation and a human should take over.
	ActionCircuitBreak EscalationAction = "circuit_break"
)

// BreakReason distinguishes why the circuit breaker tripped.
type BreakReason string

const (
	// BreakCostExceeded means the cost estimate already passed the
	// per-task ceiling before the transition.
	BreakCostExceeded BreakReason = "cost_exceeded"
	// BreakMaxEscalation means the ladder ran out of rungs.
	BreakMaxEscalation BreakReason = "max_escalation"
)

// RecommendationNeedsHuman is returned on terminal results.
const RecommendationNeedsHuman = "needs_human"

// RoleChange pairs a role's profile before and after a rung was applied.
type RoleChange struct {
	Role   models.Role          `json:"role"`
	Before models.EffortProfile `json:"before"`
	After  models.EffortProfile `json:"after"`
}

// EscalationResult reports one HandleFailure transition.
type EscalationResult struct {
	Action EscalationAction `json:"action"`
	Level  int              `json:"level"`
	Phase  Phase            `json:"phase"`
	// RestartFrom is the pipeline level execution should resume from.
	// Zero on terminal results.
	RestartFrom models.Level `json:"restart_from,omitempty"`
	// AffectedRoles lists every profile the rung transformed.
	AffectedRoles []RoleChange `json:"affected_roles,omitempty"`
	CostEstimate  float64      `json:"cost_estimate"`
	TotalFailures int          `json:"total_failures"`
	// Reason and Recommendation are set on circuit-break results only.
	Reason         BreakReason `json:"reason,omitempty"`
	Recommendation string      `json:"recommendation,omitempty"`
}

// Terminal reports whether the result halted automatic escalation.
func (r *EscalationResult) Terminal() bool {
	return r.Action == ActionCircuitBreak
}

// tokenBudgetGrowth is the per-rung budget multiplier in the effort phase.
const tokenBudgetGrowth = 1.2

// HandleFailure advances the escalation ladder in response to one
// rejected role output. The cost precondition is checked against the
// pre-transition profiles and takes priority over the rung lookup: a
// task already over budget short-circuits straight to circuit_break from
// any level. Replaying the same failure twice legitimately advances the
// ladder twice.
func (c *Controller) HandleFailure(role models.Role, reason string) (*EscalationResult, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("effort: unknown role %q", role)
	}

	// Cost of the profiles as they stood before this transition.
	preCost := c.params.EstimateCost(c.state.NodeStates)

	c.state.FailureTraces = append(c.state.FailureTraces, models.FailureTrace{
		Role:      role,
		Reason:    reason,
		Timestamp: time.Now(),
	})
	if c.state.EscalationLevel < maxEscalationLevel {
		c.state.EscalationLevel++
	}

	if preCost > c.params.MaxCostPerTask {
		return c.breakCircuit(role, reason, BreakCostExceeded, preCost)
	}

	rung := escalationLadder[c.state.EscalationLevel]
	if rung.Phase == PhaseCircuitBreak {
		return c.breakCircuit(role, reason, BreakMaxEscalation, preCost)
	}

	affected := c.applyRung(rung)
	cost := c.params.EstimateCost(c.state.NodeStates)
	c.state.TotalCostEstimate = cost
	restart := RestartLevelFor(c.state.EscalationLevel)

	c.record(models.EffortChange{
		Direction: models.DirectionBottomUp,
		Role:      role,
		Level:     c.state.EscalationLevel,
		Phase:     string(rung.Phase),
		Reason:    reason,
		Detail:    fmt.Sprintf("rung %d adjusted %d roles", rung.Level, len(affected)),
	})
	if err := c.persist(); err != nil {
		return nil, err
	}

	c.logger.Log("ESCALATE role=%s level=%d phase=%s restart=L%d cost=%.4f",
		role, c.state.EscalationLevel, rung.Phase, restart, cost)
	c.emit(EventEscalate, role, fmt.Sprintf("escalated to level %d (%s)", c.state.EscalationLevel, rung.Phase), map[string]any{
		"level":         c.state.EscalationLevel,
		"phase":         string(rung.Phase),
		"reason":        reason,
		"restart_from":  int(restart),
		"cost_estimate": cost,
	})

	return &EscalationResult{
		Action:        ActionEscalate,
		Level:         c.state.EscalationLevel,
		Phase:         rung.Phase,
		RestartFrom:   restart,
		AffectedRoles: affected,
		CostEstimate:  cost,
		TotalFailures: len(c.state.FailureTraces),
	}, nil
}

// applyRung transforms every role at the pipeline levels the rung
// targets and returns the before/after pairs.
func (c *Controller) applyRung(rung LadderRung) []RoleChange {
	var affected []RoleChange
	for _, level := range []models.Level{models.Level1, models.Level2, models.Level3} {
		target, ok := rung.Changes[level]
		if !ok {
			continue
		}
		for _, role := range models.RolesAtLevel(level) {
			before, ok := c.state.NodeStates[role]
			if !ok {
				continue
			}
			after := before
			switch rung.Phase {
			case PhaseModel:
				// Model-tier escalation does not touch reasoning depth.
				after.Tier = target.Tier
			case PhaseEffort:
				// By this phase the role must run on the premium tier.
				after.Tier = models.TierPremium
				after.Depth = target.Depth
				after.VariantCount++
				after.MaxMutationCycles++
				after.TokenBudget = int(float64(after.TokenBudget) * tokenBudgetGrowth)
			}
			after.Clamp()
			c.state.NodeStates[role] = after
			affected = append(affected, RoleChange{Role: role, Before: before, After: after})
		}
	}
	return affected
}

// breakCircuit forces the terminal level, persists, emits, and returns
// a terminal result.
func (c *Controller) breakCircuit(role models.Role, reason string, breakReason BreakReason, cost float64) (*EscalationResult, error) {
	c.state.EscalationLevel = maxEscalationLevel
	c.state.TotalCostEstimate = cost
	c.record(models.EffortChange{
		Direction: models.DirectionBottomUp,
		Role:      role,
		Level:     maxEscalationLevel,
		Phase:     string(PhaseCircuitBreak),
		Reason:    string(breakReason),
		Detail:    reason,
	})
	if err := c.persist(); err != nil {
		return nil, err
	}

	c.logger.Log("CIRCUIT_BREAK role=%s reason=%s cost=%.4f failures=%d",
		role, breakReason, cost, len(c.state.FailureTraces))
	c.emit(EventCircuitBreak, role, fmt.Sprintf("circuit break: %s", breakReason), map[string]any{
		"reason":         string(breakReason),
		"cost_estimate":  cost,
		"max_cost":       c.params.MaxCostPerTask,
		"total_failures": len(c.state.FailureTraces),
	})

	return &EscalationResult{
		Action:         ActionCircuitBreak,
		Level:          maxEscalationLevel,
		Phase:          PhaseCircuitBreak,
		CostEstimate:   cost,
		TotalFailures:  len(c.state.FailureTraces),
		Reason:         breakReason,
		Recommendation: RecommendationNeedsHuman,
	}, nil
}
