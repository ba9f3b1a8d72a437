// Package resolver validates a batch of build targets against the rule map
// and derives an execution plan: a topological order plus a partition into
// concurrency levels.
package resolver

import (
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolve builds the dependency graph over targets and returns an execution
// plan. An edge A -> B exists if A names B in its target-level DependsOn, or
// if A's rule depends on B's rule.
//
// It fails with domain.ErrCircularDependency if the graph has a cycle, and
// with domain.ErrUnknownRule or domain.ErrUnknownDependency if a reference
// does not resolve. These are configuration errors: nothing executes.
func Resolve(targets []domain.BuildTarget, rules map[string]domain.BuildRule) (*domain.ExecutionPlan, error) {
	byID := make(map[string]*domain.BuildTarget, len(targets))
	for i := range targets {
		t := &targets[i]
		if _, dup := byID[t.ID]; dup {
			return nil, zerr.With(domain.ErrDuplicateTarget, "target", t.ID)
		}
		byID[t.ID] = t
	}

	deps, err := dependencyEdges(targets, rules, byID)
	if err != nil {
		return nil, err
	}

	order, level, err := topoSort(targets, deps)
	if err != nil {
		return nil, err
	}

	maxLevel := 0
	for _, l := range level {
		if l > maxLevel {
			maxLevel = l
		}
	}

	levels := make([][]domain.BuildTarget, maxLevel+1)
	if len(targets) == 0 {
		levels = nil
	}
	// Bucket in caller order so sibling targets keep their batch order.
	for _, t := range targets {
		l := level[t.ID]
		levels[l] = append(levels[l], t)
	}

	return &domain.ExecutionPlan{
		Targets: order,
		Levels:  levels,
		Deps:    deps,
	}, nil
}

// dependencyEdges computes the direct dependency target ids for every
// target: target-level edges first, then edges derived from the bound
// rule's DependsOn resolved against all targets bound to those rules.
func dependencyEdges(
	targets []domain.BuildTarget,
	rules map[string]domain.BuildRule,
	byID map[string]*domain.BuildTarget,
) (map[string][]string, error) {
	deps := make(map[string][]string, len(targets))

	for _, t := range targets {
		rule, ok := rules[t.RuleID]
		if !ok {
			return nil, zerr.With(zerr.With(domain.ErrUnknownRule, "rule", t.RuleID), "target", t.ID)
		}

		seen := make(map[string]bool)
		edges := make([]string, 0, len(t.DependsOn))

		for _, dep := range t.DependsOn {
			if _, ok := byID[dep]; !ok {
				return nil, zerr.With(zerr.With(domain.ErrUnknownDependency, "dependency", dep), "target", t.ID)
			}
			if !seen[dep] {
				seen[dep] = true
				edges = append(edges, dep)
			}
		}

		for _, depRule := range rule.DependsOn {
			if _, ok := rules[depRule]; !ok {
				return nil, zerr.With(zerr.With(domain.ErrUnknownRule, "rule", depRule), "target", t.ID)
			}
			for _, other := range targets {
				if other.ID == t.ID || other.RuleID != depRule {
					continue
				}
				if !seen[other.ID] {
					seen[other.ID] = true
					edges = append(edges, other.ID)
				}
			}
		}

		deps[t.ID] = edges
	}

	return deps, nil
}

// topoSort runs iterative Kahn's algorithm over the dependency edges. It
// returns the targets in topological order and each target's level, where a
// root sits at level 0 and every other target one past its deepest
// dependency. If the sort cannot consume every node, a cycle exists and the
// error names one member of the unresolved set.
func topoSort(targets []domain.BuildTarget, deps map[string][]string) ([]domain.BuildTarget, map[string]int, error) {
	byID := make(map[string]domain.BuildTarget, len(targets))
	inDegree := make(map[string]int, len(targets))
	dependents := make(map[string][]string, len(targets))

	for _, t := range targets {
		byID[t.ID] = t
		inDegree[t.ID] = len(deps[t.ID])
	}
	for _, t := range targets {
		for _, dep := range deps[t.ID] {
			dependents[dep] = append(dependents[dep], t.ID)
		}
	}

	// Seed the ready queue in caller order for determinism.
	var ready []string
	for _, t := range targets {
		if inDegree[t.ID] == 0 {
			ready = append(ready, t.ID)
		}
	}

	order := make([]domain.BuildTarget, 0, len(targets))
	level := make(map[string]int, len(targets))

	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]

		l := 0
		for _, dep := range deps[id] {
			if level[dep]+1 > l {
				l = level[dep] + 1
			}
		}
		level[id] = l
		order = append(order, byID[id])

		for _, dependent := range dependents[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(order) != len(targets) {
		for _, t := range targets {
			if _, done := level[t.ID]; !done {
				return nil, nil, zerr.With(domain.ErrCircularDependency, "target", t.ID)
			}
		}
	}

	return order, level, nil
}

// Closure returns the subset of targets reachable from the requested ids by
// following dependency edges, in the original batch order. Unknown ids fail
// with domain.ErrUnknownDependency.
func Closure(targets []domain.BuildTarget, rules map[string]domain.BuildRule, ids []string) ([]domain.BuildTarget, error) {
	byID := make(map[string]*domain.BuildTarget, len(targets))
	for i := range targets {
		byID[targets[i].ID] = &targets[i]
	}

	deps, err := dependencyEdges(targets, rules, byID)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool)
	var visit func(id string) error
	visit = func(id string) error {
		if wanted[id] {
			return nil
		}
		if _, ok := byID[id]; !ok {
			return zerr.With(domain.ErrUnknownDependency, "target", id)
		}
		wanted[id] = true
		for _, dep := range deps[id] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}
	for _, id := range ids {
		if err := visit(id); err != nil {
			return nil, err
		}
	}

	selected := make([]domain.BuildTarget, 0, len(wanted))
	for _, t := range targets {
		if wanted[t.ID] {
			selected = append(selected, t)
		}
	}
	return selected, nil
}
