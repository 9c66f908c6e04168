package models

// Role identifies one of the seven fixed pipeline positions.
type Role string

const (
	// RoleVision frames the task and produces the high-level intent.
	RoleVision Role = "vision"
	// RoleVariantGen generates candidate solution variants.
	RoleVariantGen Role = "variant_gen"
	// RoleDecomposer breaks the task into sub-steps.
	RoleDecomposer Role = "decomposer"
	// RoleSelector picks among candidate variants.
	RoleSelector Role = "selector"
	// RoleAdapter adapts selected candidates to the task context.
	RoleAdapter Role = "adapter"
	// RoleExecutor carries out the concrete work.
	RoleExecutor Role = "executor"
	// RoleVerifier checks the executor's output.
	RoleVerifier Role = "verifier"
)

// Level is a pipeline hierarchy level. Level1 is the top of the
// pipeline, Level3 the bottom.
type Level int

const (
	Level1 Level = 1
	Level2 Level = 2
	Level3 Level = 3
)

// roleLevels is the fixed Role -> Level membership table. Roles never
// change level, and dispatch goes through this table rather than any
// naming convention.
var roleLevels = map[Role]Level{
	RoleVision:     Level1,
	RoleVariantGen: Level1,
	RoleDecomposer: Level2,
	RoleSelector:   Level2,
	RoleAdapter:    Level2,
	RoleExecutor:   Level3,
	RoleVerifier:   Level3,
}

// AllRoles lists every role in a stable order, top of the pipeline first.
var AllRoles = []Role{
	RoleVision,
	RoleVariantGen,
	RoleDecomposer,
	RoleSelector,
	RoleAdapter,
	RoleExecutor,
	RoleVerifier,
}

// Valid returns true if the role is a known value.
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// Level returns the pipeline level the role belongs to.
// It returns 0 for unknown roles.
func (r Role) Level() Level {
	return roleLevels[r]
}

// RolesAtLevel returns every role belonging to the given level,
// in AllRoles order.
func RolesAtLevel(level Level) []Role {
	var roles []Role
	for _, r := range AllRoles {
		if r.Level() == level {
			roles = append(roles, r)
		}
	}
	return roles
}

// Valid returns true if the level is one of the three pipeline levels.
func (l Level) Valid() bool {
	return l >= Level1 && l <= Level3
}
