package config

// Forgefile represents the structure of the forge.yaml configuration file.
type Forgefile struct {
	Version string               `yaml:"version"`
	Rules   map[string]RuleDTO   `yaml:"rules"`
	Targets map[string]TargetDTO `yaml:"targets"`
}

// RuleDTO represents a build rule declaration.
type RuleDTO struct {
	Name        string            `yaml:"name"`
	Inputs      []string          `yaml:"inputs"`
	Outputs     []string          `yaml:"outputs"`
	Cmd         []string          `yaml:"cmd"`
	Environment map[string]string `yaml:"environment"`
	DependsOn   []string          `yaml:"dependsOn"`
}

// TargetDTO binds a rule to a concrete module with optional overrides.
type TargetDTO struct {
	Rule        string            `yaml:"rule"`
	Module      string            `yaml:"module"`
	Environment map[string]string `yaml:"environment"`
	DependsOn   []string          `yaml:"dependsOn"`
}
