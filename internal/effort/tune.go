package effort

import (
	"fmt"
	"math"

	"github.com/effortwise/gearbox/pkg/models"
)

// Signal is one of the four advisory tokens a pipeline driver may send
// about a role mid-execution.
type Signal string

const (
	// SignalStruggling asks for more effort: tier first, depth once the
	// tier is maxed.
	SignalStruggling Signal = "struggling"
	// SignalConfident winds effort back down one notch.
	SignalConfident Signal = "confident"
	// SignalNovelTerritory throws maximum breadth at unfamiliar work.
	SignalNovelTerritory Signal = "novel_territory"
	// SignalPatternMatch minimizes cost for recognized, low-novelty work.
	SignalPatternMatch Signal = "pattern_match"
)

// Valid returns true if the signal is a known token.
func (s Signal) Valid() bool {
	switch s {
	case SignalStruggling, SignalConfident, SignalNovelTerritory, SignalPatternMatch:
		return true
	default:
		return false
	}
}

// AllSignals lists the accepted signal tokens.
var AllSignals = []Signal{SignalStruggling, SignalConfident, SignalNovelTerritory, SignalPatternMatch}

// TuneResult reports one mid-execution adjustment. Invalid input comes
// back as Success=false with Error set; it is not a Go error because the
// caller decides whether to treat it as fatal.
type TuneResult struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Role    models.Role `json:"role,omitempty"`
	Signal  Signal      `json:"signal,omitempty"`
	// NewProfile is the role's profile after the adjustment.
	NewProfile *models.EffortProfile `json:"new_profile,omitempty"`
}

// MidExecutionTune adjusts a single role's profile from a live signal,
// independent of the escalation level.
func (c *Controller) MidExecutionTune(role models.Role, signal Signal) (*TuneResult, error) {
	if !signal.Valid() {
		return &TuneResult{Success: false, Error: fmt.Sprintf("unknown signal %q", signal)}, nil
	}
	profile, ok := c.state.NodeStates[role]
	if !ok {
		if role.Valid() {
			return &TuneResult{Success: false, Error: fmt.Sprintf("role %q has no effort profile yet (run assess first)", role)}, nil
		}
		return &TuneResult{Success: false, Error: fmt.Sprintf("unknown role %q", role)}, nil
	}

	tuned := applySignal(profile, signal)
	tuned.Clamp()
	c.state.NodeStates[role] = tuned
	c.state.TotalCostEstimate = c.params.EstimateCost(c.state.NodeStates)

	c.record(models.EffortChange{
		Direction: models.DirectionMidExecution,
		Role:      role,
		Reason:    string(signal),
		Detail: fmt.Sprintf("tier %s->%s depth %.2f->%.2f budget %d->%d",
			profile.Tier, tuned.Tier, profile.Depth, tuned.Depth, profile.TokenBudget, tuned.TokenBudget),
	})
	if err := c.persist(); err != nil {
		return nil, err
	}

	c.logger.Log("MID_TUNE role=%s signal=%s tier=%s depth=%.2f", role, signal, tuned.Tier, tuned.Depth)
	c.emit(EventMidTune, role, fmt.Sprintf("tuned %s on signal %s", role, signal), map[string]any{
		"signal": string(signal),
		"tier":   tuned.Tier.String(),
		"depth":  tuned.Depth,
	})

	return &TuneResult{
		Success:    true,
		Role:       role,
		Signal:     signal,
		NewProfile: &tuned,
	}, nil
}

// applySignal is the pure transform for one tuning signal.
func applySignal(p models.EffortProfile, signal Signal) models.EffortProfile {
	switch signal {
	case SignalStruggling:
		// Escalate tier first; raise depth only once the tier is maxed.
		if p.Tier < models.TierPremium {
			p.Tier = p.Tier.Up()
		} else {
			p.Depth = math.Min(1, p.Depth+0.15)
		}
		p.TokenBudget = int(float64(p.TokenBudget) * 1.3)

	case SignalConfident:
		switch {
		case p.Tier == models.TierPremium && p.Depth > 0.3:
			p.Depth -= 0.1
		case p.Tier == models.TierPremium:
			p.Tier = models.TierMid
		default:
			p.Tier = p.Tier.Down()
		}

	case SignalNovelTerritory:
		p.Tier = models.TierPremium
		p.Depth = math.Min(1, p.Depth+0.25)
		p.Temperature = math.Min(0.9, p.Temperature+0.2)
		p.VariantCount += 2
		p.MaxMutationCycles++
		p.TokenBudget = int(float64(p.TokenBudget) * 1.5)

	case SignalPatternMatch:
		p.Depth = math.Max(0.1, p.Depth-0.2)
		p.Temperature = 0.1
		p.Tier = p.Tier.Down()
		p.VariantCount = 1
		p.MaxMutationCycles = 0
		p.TokenBudget = int(float64(p.TokenBudget) * 0.7)
	}
	return p
}
