package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/engine/resolver"
)

func rules(ids ...string) map[string]domain.BuildRule {
	m := make(map[string]domain.BuildRule, len(ids))
	for _, id := range ids {
		m[id] = domain.BuildRule{ID: id, Command: []string{"true"}}
	}
	return m
}

func target(id, rule string, deps ...string) domain.BuildTarget {
	return domain.BuildTarget{ID: id, RuleID: rule, DependsOn: deps}
}

func TestResolve_Diamond(t *testing.T) {
	// A <- B, A <- C, B <- D, C <- D (D depends on B and C, both on A)
	targets := []domain.BuildTarget{
		target("D", "r", "B", "C"),
		target("B", "r", "A"),
		target("C", "r", "A"),
		target("A", "r"),
	}

	plan, err := resolver.Resolve(targets, rules("r"))
	require.NoError(t, err)

	require.Len(t, plan.Levels, 3)
	assert.Equal(t, []string{"A"}, ids(plan.Levels[0]))
	assert.Equal(t, []string{"B", "C"}, ids(plan.Levels[1]))
	assert.Equal(t, []string{"D"}, ids(plan.Levels[2]))
	assert.Len(t, plan.Targets, 4)
}

func TestResolve_LevelsRespectDependencies(t *testing.T) {
	targets := []domain.BuildTarget{
		target("a", "r"),
		target("b", "r", "a"),
		target("c", "r", "b"),
		target("d", "r", "a", "c"),
		target("e", "r"),
	}

	plan, err := resolver.Resolve(targets, rules("r"))
	require.NoError(t, err)

	levelOf := make(map[string]int)
	for i, level := range plan.Levels {
		for _, tg := range level {
			levelOf[tg.ID] = i
		}
	}

	// Every dependency sits on a strictly lower level.
	for id, deps := range plan.Deps {
		for _, dep := range deps {
			assert.Less(t, levelOf[dep], levelOf[id], "%s must be below %s", dep, id)
		}
	}
}

func TestResolve_WavePreservesCallerOrder(t *testing.T) {
	targets := []domain.BuildTarget{
		target("z", "r"),
		target("m", "r"),
		target("a", "r"),
	}

	plan, err := resolver.Resolve(targets, rules("r"))
	require.NoError(t, err)

	require.Len(t, plan.Levels, 1)
	assert.Equal(t, []string{"z", "m", "a"}, ids(plan.Levels[0]))
}

func TestResolve_RuleLevelDependencies(t *testing.T) {
	rs := rules("compile", "bundle")
	bundle := rs["bundle"]
	bundle.DependsOn = []string{"compile"}
	rs["bundle"] = bundle

	targets := []domain.BuildTarget{
		target("app-bundle", "bundle"),
		target("lib-compile", "compile"),
		target("app-compile", "compile"),
	}

	plan, err := resolver.Resolve(targets, rs)
	require.NoError(t, err)

	// The bundle target inherits edges to every target bound to "compile".
	assert.ElementsMatch(t, []string{"lib-compile", "app-compile"}, plan.Deps["app-bundle"])
	require.Len(t, plan.Levels, 2)
	assert.Equal(t, []string{"lib-compile", "app-compile"}, ids(plan.Levels[0]))
	assert.Equal(t, []string{"app-bundle"}, ids(plan.Levels[1]))
}

func TestResolve_CycleDetected(t *testing.T) {
	targets := []domain.BuildTarget{
		target("a", "r", "c"),
		target("b", "r", "a"),
		target("c", "r", "b"),
	}

	_, err := resolver.Resolve(targets, rules("r"))
	require.ErrorIs(t, err, domain.ErrCircularDependency)
}

func TestResolve_SelfCycle(t *testing.T) {
	targets := []domain.BuildTarget{target("a", "r", "a")}

	_, err := resolver.Resolve(targets, rules("r"))
	require.ErrorIs(t, err, domain.ErrCircularDependency)
}

func TestResolve_UnknownRule(t *testing.T) {
	targets := []domain.BuildTarget{target("a", "missing")}

	_, err := resolver.Resolve(targets, rules("r"))
	require.ErrorIs(t, err, domain.ErrUnknownRule)
}

func TestResolve_UnknownDependency(t *testing.T) {
	targets := []domain.BuildTarget{target("a", "r", "ghost")}

	_, err := resolver.Resolve(targets, rules("r"))
	require.ErrorIs(t, err, domain.ErrUnknownDependency)
}

func TestResolve_DuplicateTarget(t *testing.T) {
	targets := []domain.BuildTarget{target("a", "r"), target("a", "r")}

	_, err := resolver.Resolve(targets, rules("r"))
	require.ErrorIs(t, err, domain.ErrDuplicateTarget)
}

func TestResolve_Empty(t *testing.T) {
	plan, err := resolver.Resolve(nil, rules("r"))
	require.NoError(t, err)
	assert.Empty(t, plan.Targets)
	assert.Empty(t, plan.Levels)
}

func TestClosure(t *testing.T) {
	targets := []domain.BuildTarget{
		target("a", "r"),
		target("b", "r", "a"),
		target("c", "r", "b"),
		target("d", "r"),
	}

	selected, err := resolver.Closure(targets, rules("r"), []string{"c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(selected))
}

func TestClosure_UnknownTarget(t *testing.T) {
	_, err := resolver.Closure([]domain.BuildTarget{target("a", "r")}, rules("r"), []string{"nope"})
	require.ErrorIs(t, err, domain.ErrUnknownDependency)
}

func ids(targets []domain.BuildTarget) []string {
	out := make([]string, len(targets))
	for i, t := range targets {
		out[i] = t.ID
	}
	return out
}
