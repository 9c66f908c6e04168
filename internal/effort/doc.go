// Package effort allocates and adapts compute effort across the fixed
// hierarchy of pipeline roles. It decides effort before execution from a
// task's complexity score, escalates effort when roles repeatedly fail,
// and fine-tunes single roles from live execution signals, all while
// keeping the running cost estimate under a hard ceiling.
//
// The package owns exactly one mutable aggregate, models.ControllerState,
// persisted through an injected Store. Every operation is a pure
// computation over the in-memory state followed by one save; callers
// must serialize access per task context.
package effort
