package effort

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/effortwise/gearbox/pkg/models"
)

// Scaling constants for score-derived profile fields.
const (
	tokenBudgetFloor   = 8000
	tokenBudgetCeiling = 32000
	temperatureFloor   = 0.3
	temperatureCeiling = 0.8
	// selectorTemperature pins selection to near-deterministic sampling.
	selectorTemperature = 0.1
	verifierTemperature = 0.2
	// depthFloor is the minimum reasoning depth for the roles that run
	// slightly below their level baseline (selector, verifier).
	depthFloor = 0.1
)

// PropagationResult reports a top-down seeding of all role profiles.
type PropagationResult struct {
	TaskID     string                               `json:"task_id"`
	Score      float64                              `json:"score"`
	Bucket     ComplexityBucket                     `json:"bucket"`
	NodeStates map[models.Role]models.EffortProfile `json:"node_states"`
	// CostEstimate prices the seeded profiles.
	CostEstimate float64 `json:"cost_estimate"`
}

// AssessAndPropagateDown classifies the task's complexity score and
// derives all seven role profiles from the bucket's per-level baselines.
// It fully replaces the controller state for a new task: profiles are
// re-seeded, the escalation level returns to 0 and failure traces are
// cleared. An empty taskID gets a generated one.
func (c *Controller) AssessAndPropagateDown(score float64, taskID string) (*PropagationResult, error) {
	score = clamp01(score)
	if taskID == "" {
		taskID = uuid.NewString()
	}

	bucket := Classify(score)
	nodeStates := propagateProfiles(score, bucket)
	cost := c.params.EstimateCost(nodeStates)

	c.state.TaskID = taskID
	c.state.ComplexityScore = score
	c.state.NodeStates = nodeStates
	c.state.EscalationLevel = 0
	c.state.FailureTraces = nil
	c.state.TotalCostEstimate = cost
	c.record(models.EffortChange{
		Direction: models.DirectionTopDown,
		Detail:    fmt.Sprintf("seeded %d roles from bucket %s (score %.2f)", len(nodeStates), bucket, score),
	})

	if err := c.persist(); err != nil {
		return nil, err
	}

	c.logger.Log("TOP_DOWN task=%s score=%.2f bucket=%s cost=%.4f", taskID, score, bucket, cost)
	c.emit(EventTopDown, "", fmt.Sprintf("seeded effort for bucket %s", bucket), map[string]any{
		"score":         score,
		"bucket":        string(bucket),
		"cost_estimate": cost,
	})

	return &PropagationResult{
		TaskID:       taskID,
		Score:        score,
		Bucket:       bucket,
		NodeStates:   copyProfiles(nodeStates),
		CostEstimate: cost,
	}, nil
}

// propagateProfiles derives every role's profile from the score and the
// bucket's per-level baselines.
func propagateProfiles(score float64, bucket ComplexityBucket) map[models.Role]models.EffortProfile {
	l1 := BaselineFor(bucket, models.Level1)
	l2 := BaselineFor(bucket, models.Level2)
	l3 := BaselineFor(bucket, models.Level3)

	budget := int(lerp(tokenBudgetFloor, tokenBudgetCeiling, score))
	genTemp := lerp(temperatureFloor, temperatureCeiling, score)

	profiles := map[models.Role]models.EffortProfile{
		models.RoleVision: {
			Tier:         l1.Tier,
			Depth:        l1.Depth,
			Temperature:  genTemp,
			VariantCount: 1,
			MaxRetries:   1,
			TokenBudget:  budget,
		},
		models.RoleVariantGen: {
			Tier:              l1.Tier,
			Depth:             l1.Depth,
			Temperature:       genTemp,
			VariantCount:      1 + scaleInt(score, 4),
			MaxMutationCycles: 1 + scaleInt(score, 3),
			MaxRetries:        1,
			TokenBudget:       budget,
		},
		models.RoleDecomposer: {
			Tier:         l2.Tier,
			Depth:        l2.Depth,
			Temperature:  genTemp,
			VariantCount: 1,
			MaxRetries:   1,
			TokenBudget:  budget,
		},
		models.RoleSelector: {
			// Selection never needs the premium tier.
			Tier:         stepDownIfPremium(l2.Tier),
			Depth:        math.Max(depthFloor, l2.Depth-0.1),
			Temperature:  selectorTemperature,
			VariantCount: 1,
			MaxRetries:   1,
			TokenBudget:  budget,
		},
		models.RoleAdapter: {
			Tier:              l2.Tier,
			Depth:             l2.Depth,
			Temperature:       genTemp,
			VariantCount:      1,
			MaxMutationCycles: scaleInt(score, 3),
			MaxRetries:        1,
			TokenBudget:       budget,
		},
		models.RoleExecutor: {
			Tier:         l3.Tier,
			Depth:        l3.Depth,
			Temperature:  genTemp,
			VariantCount: 1,
			MaxRetries:   1 + scaleInt(score, 3),
			TokenBudget:  budget,
		},
		models.RoleVerifier: {
			// Verification is never fully free-tier.
			Tier:         tierAtLeast(l3.Tier, models.TierMid),
			Depth:        math.Max(depthFloor, l3.Depth-0.1),
			Temperature:  verifierTemperature,
			VariantCount: 1,
			MaxRetries:   1,
			TokenBudget:  budget,
		},
	}

	for role, profile := range profiles {
		profile.Clamp()
		profiles[role] = profile
	}
	return profiles
}

// lerp interpolates linearly between lo and hi as t goes 0 -> 1.
func lerp(lo, hi, t float64) float64 {
	return lo + (hi-lo)*t
}

// scaleInt maps a [0,1] score onto 0..n.
func scaleInt(score float64, n int) int {
	return int(math.Round(score * float64(n)))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func stepDownIfPremium(t models.Tier) models.Tier {
	if t == models.TierPremium {
		return t.Down()
	}
	return t
}

func tierAtLeast(t, floor models.Tier) models.Tier {
	if t < floor {
		return floor
	}
	return t
}

func copyProfiles(in map[models.Role]models.EffortProfile) map[models.Role]models.EffortProfile {
	out := make(map[models.Role]models.EffortProfile, len(in))
	for role, profile := range in {
		out[role] = profile
	}
	return out
}
