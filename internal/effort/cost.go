package effort

import "github.com/effortwise/gearbox/pkg/models"

// DefaultMaxCostPerTask is the hard spend ceiling in dollars before the
// circuit breaker refuses further escalation.
const DefaultMaxCostPerTask = 5.0

// DefaultBaseCostPer1K prices one thousand tokens per tier.
var DefaultBaseCostPer1K = map[models.Tier]float64{
	models.TierLocal:   0,
	models.TierMid:     0.003,
	models.TierPremium: 0.015,
}

// Params holds the cost-model knobs the controller runs with.
type Params struct {
	// MaxCostPerTask is the circuit-breaker ceiling.
	MaxCostPerTask float64
	// BaseCostPer1K prices a thousand tokens per tier.
	BaseCostPer1K map[models.Tier]float64
}

// DefaultParams returns the built-in cost parameters.
func DefaultParams() Params {
	base := make(map[models.Tier]float64, len(DefaultBaseCostPer1K))
	for tier, cost := range DefaultBaseCostPer1K {
		base[tier] = cost
	}
	return Params{
		MaxCostPerTask: DefaultMaxCostPerTask,
		BaseCostPer1K:  base,
	}
}

// EstimateCost prices a set of effort profiles. Premium-tier profiles
// pay a depth multiplier of 1 + 2*depth, so depth 0 costs the base rate
// and depth 1 costs three times it.
func (p Params) EstimateCost(profiles map[models.Role]models.EffortProfile) float64 {
	total := 0.0
	for _, profile := range profiles {
		cost := p.BaseCostPer1K[profile.Tier] * float64(profile.TokenBudget) / 1000
		if profile.Tier == models.TierPremium {
			cost *= 1 + 2*profile.Depth
		}
		total += cost
	}
	return total
}

// EffectiveEffort collapses a profile into a single [0,1] scalar for
// reporting and comparison: the tier contributes 0, 0.33 or 0.66, and
// depth contributes up to a further 0.34 at the premium tier only.
func EffectiveEffort(profile models.EffortProfile) float64 {
	effort := 0.0
	switch profile.Tier {
	case models.TierMid:
		effort = 0.33
	case models.TierPremium:
		effort = 0.66 + profile.Depth*0.34
	}
	return effort
}
