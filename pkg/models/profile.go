package models

// EffortProfile holds the tunable execution parameters for a single role.
// All numeric fields stay within their documented ranges after every
// mutation; callers that adjust a profile must call Clamp before
// persisting it.
type EffortProfile struct {
	// Tier is the compute tier the role runs on.
	Tier Tier `json:"tier"`
	// Depth is the reasoning-effort scalar in [0,1]. It is only
	// meaningful when Tier is TierPremium.
	Depth float64 `json:"depth"`
	// Temperature is the sampling temperature in [0,1].
	Temperature float64 `json:"temperature"`
	// VariantCount is how many candidate variants to produce (>= 1).
	VariantCount int `json:"variant_count"`
	// MaxMutationCycles bounds the mutation/refinement loop (>= 0).
	MaxMutationCycles int `json:"max_mutation_cycles"`
	// MaxRetries bounds per-role retry attempts (>= 0).
	MaxRetries int `json:"max_retries"`
	// TokenBudget is the token allowance for one invocation (>= 0).
	TokenBudget int `json:"token_budget"`
}

// Clamp forces every field back into its documented range and returns
// the receiver for chaining.
func (p *EffortProfile) Clamp() *EffortProfile {
	if p.Tier < TierLocal {
		p.Tier = TierLocal
	}
	if p.Tier > TierPremium {
		p.Tier = TierPremium
	}
	p.Depth = clampFloat(p.Depth, 0, 1)
	p.Temperature = clampFloat(p.Temperature, 0, 1)
	if p.VariantCount < 1 {
		p.VariantCount = 1
	}
	if p.MaxMutationCycles < 0 {
		p.MaxMutationCycles = 0
	}
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.TokenBudget < 0 {
		p.TokenBudget = 0
	}
	return p
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
