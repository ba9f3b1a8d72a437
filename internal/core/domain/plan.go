package domain

// ExecutionPlan is the resolver's output: a total topological order over the
// batch plus a partition into concurrency levels. Every target in Levels[i]
// depends only on targets in strictly earlier levels, so the members of one
// level are safe to execute concurrently.
//
// Plans are derived per batch and never persisted.
type ExecutionPlan struct {
	// Targets holds all batch targets in topological order.
	Targets []BuildTarget

	// Levels partitions Targets into waves by longest-path distance from
	// the roots. Within a level the caller-supplied target order is kept.
	Levels [][]BuildTarget

	// Deps maps each target id to its direct dependency target ids, the
	// union of target-level and rule-derived edges. The executor uses it
	// to propagate failures to dependents.
	Deps map[string][]string
}
