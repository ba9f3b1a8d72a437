// Package app implements the application layer for forge.
package app

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/executor"
	"go.trai.ch/forge/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader   ports.ConfigLoader
	executor *executor.Executor
	newCache ports.CacheFactory
	logger   ports.Logger
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, exec *executor.Executor, newCache ports.CacheFactory, logger ports.Logger) *App {
	return &App{
		loader:   loader,
		executor: exec,
		newCache: newCache,
		logger:   logger,
	}
}

// DefaultConfigFile is the configuration file used when --config is not set.
const DefaultConfigFile = "forge.yaml"

// RunOptions carries CLI-level knobs for a build run.
type RunOptions struct {
	ConfigFile string
	CacheDir   string
	Jobs       int
	NoCache    bool
}

// Run loads the configuration, selects the requested targets plus their
// dependency closure, and executes the batch. It returns
// domain.ErrBuildFailed if any target finished with a failure.
func (a *App) Run(ctx context.Context, targetIDs []string, opts RunOptions) error {
	if opts.ConfigFile == "" {
		opts.ConfigFile = DefaultConfigFile
	}

	set, err := a.loader.Load(opts.ConfigFile)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	targets := set.Targets
	if len(targetIDs) > 0 {
		targets, err = resolver.Closure(set.Targets, set.Rules, targetIDs)
		if err != nil {
			return err
		}
	}
	if len(targets) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	results, err := a.executor.ExecuteBatch(ctx, targets, set.Rules, executor.Options{
		WorkspaceRoot:  ".",
		BaseEnv:        environ(),
		Cache:          a.newCache(opts.CacheDir),
		MaxConcurrency: opts.Jobs,
		NoCache:        opts.NoCache,
	})
	if err != nil {
		return zerr.Wrap(err, "build execution failed")
	}

	failed := a.renderResults(results)
	if failed > 0 {
		return zerr.With(domain.ErrBuildFailed, "failed_targets", failed)
	}
	return nil
}

// Clean removes every cache entry under cacheDir (the default directory
// when empty).
func (a *App) Clean(cacheDir string) error {
	if err := a.newCache(cacheDir).InvalidateAll(); err != nil {
		return zerr.Wrap(err, "failed to clean build cache")
	}
	a.logger.Info("build cache cleaned")
	return nil
}

// renderResults logs a per-target summary line plus any diagnostics and
// returns the number of failed targets.
func (a *App) renderResults(results map[string]domain.BuildResult) int {
	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	failed := 0
	for _, id := range ids {
		res := results[id]
		if res.Status == domain.StatusFailure {
			failed++
		}
		a.logger.Info(fmt.Sprintf("%-10s %s (%dms)", res.Status, id, res.DurationMs))
		for _, d := range res.Diagnostics {
			a.logger.Info(formatDiagnostic(d))
		}
	}
	return failed
}

func formatDiagnostic(d domain.Diagnostic) string {
	var b strings.Builder
	b.WriteString("  ")
	if d.File != "" {
		fmt.Fprintf(&b, "%s:%d:%d ", d.File, d.Line, d.Column)
	}
	b.WriteString(string(d.Severity))
	if d.Code != "" {
		fmt.Fprintf(&b, " %s", d.Code)
	}
	b.WriteString(": ")
	b.WriteString(d.Message)
	return b.String()
}

// environ snapshots the process environment into the explicit base map the
// executor requires. This is the single place ambient state enters a batch.
func environ() map[string]string {
	env := make(map[string]string)
	for _, e := range os.Environ() {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}
	return env
}
