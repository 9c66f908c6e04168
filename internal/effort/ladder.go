package effort

import (
	"fmt"

	"github.com/effortwise/gearbox/pkg/models"
)

// Phase partitions the escalation ladder: levels 0-2 raise model tiers,
// levels 3-5 raise reasoning effort, level 6 breaks the circuit.
type Phase string

const (
	PhaseModel        Phase = "model"
	PhaseEffort       Phase = "effort"
	PhaseCircuitBreak Phase = "circuit_break"
)

// maxEscalationLevel is the terminal ladder position.
const maxEscalationLevel = 6

// RungTarget is the tier/depth a rung pushes one pipeline level toward.
// Model-phase rungs only consume Tier; effort-phase rungs only consume
// Depth (tier is forced to premium by then).
type RungTarget struct {
	Tier  models.Tier
	Depth float64
}

// LadderRung is one entry in the escalation ladder.
type LadderRung struct {
	Level   int
	Phase   Phase
	Changes map[models.Level]RungTarget
}

// escalationLadder defines how consecutive failures change effort.
// Rung 0 is never reached through HandleFailure (the first failure
// already lands on rung 1); it documents the pre-failure baseline.
var escalationLadder = [maxEscalationLevel + 1]LadderRung{
	{Level: 0, Phase: PhaseModel},
	{Level: 1, Phase: PhaseModel, Changes: map[models.Level]RungTarget{
		models.Level3: {Tier: models.TierMid},
	}},
	{Level: 2, Phase: PhaseModel, Changes: map[models.Level]RungTarget{
		models.Level2: {Tier: models.TierPremium},
		models.Level3: {Tier: models.TierPremium},
	}},
	{Level: 3, Phase: PhaseEffort, Changes: map[models.Level]RungTarget{
		models.Level2: {Tier: models.TierPremium, Depth: 0.8},
		models.Level3: {Tier: models.TierPremium, Depth: 0.7},
	}},
	{Level: 4, Phase: PhaseEffort, Changes: map[models.Level]RungTarget{
		models.Level1: {Tier: models.TierPremium, Depth: 0.8},
		models.Level2: {Tier: models.TierPremium, Depth: 0.9},
		models.Level3: {Tier: models.TierPremium, Depth: 0.85},
	}},
	{Level: 5, Phase: PhaseEffort, Changes: map[models.Level]RungTarget{
		models.Level1: {Tier: models.TierPremium, Depth: 0.95},
		models.Level2: {Tier: models.TierPremium, Depth: 1.0},
		models.Level3: {Tier: models.TierPremium, Depth: 1.0},
	}},
	{Level: 6, Phase: PhaseCircuitBreak},
}

// restartLevels maps an escalation level to the pipeline level execution
// should resume from after the rung is applied.
var restartLevels = map[int]models.Level{
	0: models.Level3,
	1: models.Level3,
	2: models.Level2,
	3: models.Level2,
	4: models.Level2,
	5: models.Level1,
}

// PhaseForLevel returns the ladder phase for an escalation level.
// Phase is a pure function of the level.
func PhaseForLevel(level int) Phase {
	switch {
	case level <= 2:
		return PhaseModel
	case level <= 5:
		return PhaseEffort
	default:
		return PhaseCircuitBreak
	}
}

// RestartLevelFor returns the pipeline level to resume from after
// escalating to the given level. Terminal levels have no restart point
// and return 0.
func RestartLevelFor(level int) models.Level {
	return restartLevels[level]
}

// ConfigError reports an invalid static configuration table. The tables
// are compiled in, so hitting one of these is a programming error caught
// at init.
type ConfigError struct {
	Table  string
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s table: %s", e.Table, e.Detail)
}

// validateLadder asserts rung levels are monotonically indexed and every
// rung's phase matches the level partition.
func validateLadder() error {
	for i, rung := range escalationLadder {
		if rung.Level != i {
			return &ConfigError{Table: "escalation ladder", Detail: fmt.Sprintf("rung %d has level %d", i, rung.Level)}
		}
		if rung.Phase != PhaseForLevel(rung.Level) {
			return &ConfigError{Table: "escalation ladder", Detail: fmt.Sprintf("rung %d phase %q does not match level partition", i, rung.Phase)}
		}
		for level, target := range rung.Changes {
			if !level.Valid() {
				return &ConfigError{Table: "escalation ladder", Detail: fmt.Sprintf("rung %d targets unknown level %d", i, level)}
			}
			if !target.Tier.Valid() || target.Depth < 0 || target.Depth > 1 {
				return &ConfigError{Table: "escalation ladder", Detail: fmt.Sprintf("rung %d has out-of-range target", i)}
			}
		}
	}
	for level := 0; level < maxEscalationLevel; level++ {
		if _, ok := restartLevels[level]; !ok {
			return &ConfigError{Table: "restart map", Detail: fmt.Sprintf("missing entry for level %d", level)}
		}
	}
	return nil
}

func init() {
	if err := validateLadder(); err != nil {
		panic(err)
	}
	if err := validateBaselines(); err != nil {
		panic(err)
	}
}
