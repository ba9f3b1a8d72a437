// Package config provides the configuration loader for forge.
package config

import (
	"os"
	"slices"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct{}

// Load reads the configuration file at path.
func (l *FileConfigLoader) Load(path string) (*domain.BuildSet, error) {
	return Load(path)
}

// Load reads a configuration file from the given path and returns the
// declared rules and targets. Rule references are validated here; graph
// shape (cycles, dependency ids) is the resolver's concern.
func Load(path string) (*domain.BuildSet, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var forgefile Forgefile
	if err := yaml.Unmarshal(data, &forgefile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	rules := make(map[string]domain.BuildRule, len(forgefile.Rules))
	for id, dto := range forgefile.Rules {
		for _, dep := range dto.DependsOn {
			if _, ok := forgefile.Rules[dep]; !ok {
				return nil, zerr.With(zerr.With(domain.ErrUnknownRule, "rule", dep), "referenced_by", id)
			}
		}
		rules[id] = domain.BuildRule{
			ID:        id,
			Name:      dto.Name,
			Inputs:    canonicalize(dto.Inputs),
			Outputs:   canonicalize(dto.Outputs),
			Command:   dto.Cmd,
			Env:       dto.Environment,
			DependsOn: slices.Clone(dto.DependsOn),
		}
	}

	// Deterministic target order: yaml maps iterate randomly, and the batch
	// order is the wave tie-break downstream.
	ids := make([]string, 0, len(forgefile.Targets))
	for id := range forgefile.Targets {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	targets := make([]domain.BuildTarget, 0, len(ids))
	for _, id := range ids {
		dto := forgefile.Targets[id]
		if _, ok := rules[dto.Rule]; !ok {
			return nil, zerr.With(zerr.With(domain.ErrUnknownRule, "rule", dto.Rule), "target", id)
		}
		for _, dep := range dto.DependsOn {
			if _, ok := forgefile.Targets[dep]; !ok {
				return nil, zerr.With(zerr.With(domain.ErrUnknownDependency, "dependency", dep), "target", id)
			}
		}
		targets = append(targets, domain.BuildTarget{
			ID:        id,
			RuleID:    dto.Rule,
			ModuleID:  dto.Module,
			Env:       dto.Environment,
			DependsOn: slices.Clone(dto.DependsOn),
		})
	}

	return &domain.BuildSet{Rules: rules, Targets: targets}, nil
}

func canonicalize(patterns []string) []string {
	if len(patterns) == 0 {
		return nil
	}
	sorted := slices.Clone(patterns)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}
