// Package domain contains the core data model of the build orchestrator.
package domain

// BuildRule is a reusable template describing how a class of targets is
// built: which files it reads, which it produces, and the command that
// transforms the former into the latter. Rules are immutable once loaded.
type BuildRule struct {
	ID      string
	Name    string
	Inputs  []string
	Outputs []string

	// Command is the tool invocation as an argv vector. The first element
	// is the executable name, resolved against PATH at execution time.
	Command []string

	// Env holds tool-level environment overrides applied to every target
	// bound to this rule, below target-level overrides in precedence.
	Env map[string]string

	// DependsOn names other rules whose targets must complete first.
	DependsOn []string
}

// BuildTarget binds a rule to a concrete execution context. A target may
// declare additional dependencies on other targets beyond what its rule
// implies. Targets are immutable once loaded.
type BuildTarget struct {
	ID       string
	RuleID   string
	ModuleID string

	// Env holds target-level environment overrides, the highest precedence
	// layer in the environment merge.
	Env map[string]string

	// DependsOn names other target ids this target depends on.
	DependsOn []string
}

// BuildSet is a fully loaded set of rules and targets, the unit a config
// loader hands to the application layer.
type BuildSet struct {
	Rules   map[string]BuildRule
	Targets []BuildTarget
}
