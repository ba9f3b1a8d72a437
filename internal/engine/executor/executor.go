// Package executor implements the wave-based batch executor: it consumes an
// execution plan and drives each target through cache probe, tool
// invocation, diagnostic extraction, and failure propagation.
package executor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/diagnostics"
	"go.trai.ch/forge/internal/engine/resolver"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds intra-wave parallelism when the caller does not
// set a limit.
const DefaultConcurrency = 4

// Options configures one batch execution.
type Options struct {
	// WorkspaceRoot is the directory globs are expanded against and tools
	// run in.
	WorkspaceRoot string

	// BaseEnv is the explicit base environment. Rule-level and target-level
	// overrides are layered on top, in that order. The executor never reads
	// process-wide state itself; callers decide what leaks in.
	BaseEnv map[string]string

	// Cache is the build cache probed and updated during the batch. The
	// cache location is a per-run choice (--cache-dir), so it travels with
	// the batch options rather than the executor. Nil disables caching.
	Cache ports.BuildCache

	// MaxConcurrency bounds how many targets of one wave run in parallel.
	// Zero or negative means DefaultConcurrency.
	MaxConcurrency int

	// NoCache bypasses cache probes, forcing every target to execute.
	// Successful results are still written back.
	NoCache bool
}

// Executor orchestrates batch execution. It holds no cross-batch state; the
// cache arrives with each batch's options.
type Executor struct {
	fs       ports.FileSystem
	runner   ports.ToolRunner
	hasher   ports.Hasher
	logger   ports.Logger
	progress ports.Progress
}

// New creates an Executor. A nil progress sink is replaced with a no-op.
func New(
	fs ports.FileSystem,
	runner ports.ToolRunner,
	hasher ports.Hasher,
	logger ports.Logger,
	progress ports.Progress,
) *Executor {
	if progress == nil {
		progress = noProgress{}
	}
	return &Executor{
		fs:       fs,
		runner:   runner,
		hasher:   hasher,
		logger:   logger,
		progress: progress,
	}
}

// ExecuteBatch resolves the targets and executes them wave by wave.
//
// Configuration errors (cycle, unknown rule or dependency) abort the whole
// batch before anything runs and return a nil map. Everything target-scoped
// is encoded in the result map instead: failures carry diagnostics, targets
// downstream of a failure come back skipped, valid cache hits come back
// cached without a tool invocation.
//
// Cancellation is wave-granular: once ctx is done no new wave starts, the
// in-flight wave finishes to avoid partial tool-runner state, and the
// results computed so far are returned together with the context error.
func (e *Executor) ExecuteBatch(
	ctx context.Context,
	targets []domain.BuildTarget,
	rules map[string]domain.BuildRule,
	opts Options,
) (map[string]domain.BuildResult, error) {
	plan, err := resolver.Resolve(targets, rules)
	if err != nil {
		return nil, err
	}

	limit := opts.MaxConcurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make(map[string]domain.BuildResult, len(targets))
	var mu sync.Mutex

	for _, level := range plan.Levels {
		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		runnable := make([]domain.BuildTarget, 0, len(level))
		for _, t := range level {
			if dep, blocked := blockingDependency(t.ID, plan.Deps, results); blocked {
				e.logger.Info(fmt.Sprintf("skipping %s: dependency %s did not succeed", t.ID, dep))
				results[t.ID] = skippedResult(t.ID)
				e.progress.TargetCompleted(t.ID, domain.StatusSkipped)
				continue
			}
			runnable = append(runnable, t)
		}

		// In-flight targets may finish even if ctx is cancelled mid-wave;
		// the pre-wave check above is the only abort point.
		runCtx := context.WithoutCancel(ctx)

		var eg errgroup.Group
		eg.SetLimit(limit)
		for _, t := range runnable {
			eg.Go(func() error {
				res := e.executeTarget(runCtx, &t, rules[t.RuleID], opts)
				mu.Lock()
				results[t.ID] = res
				mu.Unlock()
				return nil
			})
		}
		// Workers encode failures in their results and never return errors.
		_ = eg.Wait()
	}

	return results, ctx.Err()
}

// blockingDependency reports whether any direct dependency of the target
// finished failed or skipped. Deeper chains propagate wave by wave: a
// skipped dependency always roots in a failure further upstream.
func blockingDependency(id string, deps map[string][]string, results map[string]domain.BuildResult) (string, bool) {
	for _, dep := range deps[id] {
		switch results[dep].Status {
		case domain.StatusFailure, domain.StatusSkipped:
			return dep, true
		}
	}
	return "", false
}

// executeTarget drives one target to a terminal result. Infrastructure
// problems (unhashable inputs, spawn failures) surface as a failure with a
// single synthetic diagnostic, never as an error out of the batch.
func (e *Executor) executeTarget(
	ctx context.Context,
	target *domain.BuildTarget,
	rule domain.BuildRule,
	opts Options,
) domain.BuildResult {
	start := time.Now()
	e.progress.TargetStarted(target.ID)

	inputHashes, err := e.hashGlobs(rule.Inputs, opts.WorkspaceRoot)
	if err != nil {
		return e.finish(infraFailure(target.ID, start, "failed to hash inputs", err))
	}

	if !opts.NoCache && opts.Cache != nil {
		entry, lookupErr := opts.Cache.Lookup(target, inputHashes)
		if lookupErr != nil {
			// A broken cache read is a miss, not a build failure.
			e.logger.Warn(fmt.Sprintf("cache lookup for %s failed: %v", target.ID, lookupErr))
		}
		if entry != nil {
			return e.finish(domain.BuildResult{
				TargetID:   target.ID,
				Status:     domain.StatusCached,
				StartedAt:  start,
				FinishedAt: start,
			})
		}
	}

	env := MergeEnvironment(opts.BaseEnv, rule.Env, target.Env)
	outcome, runErr := e.runner.Run(ctx, rule.Command, ports.RunOptions{
		Dir: opts.WorkspaceRoot,
		Env: env,
	})
	finished := time.Now()

	if runErr != nil {
		res := infraFailure(target.ID, start, "tool runner failed", runErr)
		res.FinishedAt = finished
		res.DurationMs = finished.Sub(start).Milliseconds()
		return e.finish(res)
	}

	e.streamOutput(target.ID, outcome)

	// Diagnostics and failure are independent signals: a clean exit with
	// warnings is still a success, and only the exit code decides pass/fail.
	// The streams are parsed separately so a newline-less final stdout line
	// cannot merge into stderr and a JSON report on one stream survives plain
	// text on the other; stdout diagnostics precede stderr diagnostics, in
	// stream order.
	diags := diagnostics.Parse(outcome.Stdout, opts.WorkspaceRoot)
	diags = append(diags, diagnostics.Parse(outcome.Stderr, opts.WorkspaceRoot)...)

	status := domain.StatusFailure
	if outcome.ExitCode == 0 {
		status = domain.StatusSuccess
		e.storeCacheEntry(target, rule, inputHashes, opts)
	}

	return e.finish(domain.BuildResult{
		TargetID:    target.ID,
		Status:      status,
		StartedAt:   start,
		FinishedAt:  finished,
		DurationMs:  finished.Sub(start).Milliseconds(),
		Diagnostics: diags,
	})
}

// storeCacheEntry hashes the declared outputs and persists the entry. Any
// problem degrades to a warning: the build already succeeded and must not
// be failed retroactively by cache plumbing.
func (e *Executor) storeCacheEntry(target *domain.BuildTarget, rule domain.BuildRule, inputHashes map[string]string, opts Options) {
	if opts.Cache == nil {
		return
	}
	outputHashes, err := e.hashGlobs(rule.Outputs, opts.WorkspaceRoot)
	if err != nil {
		e.logger.Warn(fmt.Sprintf("skipping cache write for %s: %v", target.ID, err))
		return
	}
	if err := opts.Cache.Store(target, inputHashes, outputHashes); err != nil {
		e.logger.Warn(fmt.Sprintf("cache write for %s failed: %v", target.ID, err))
	}
}

// hashGlobs expands the patterns against the workspace root and hashes each
// matched file, keyed by workspace-relative path.
func (e *Executor) hashGlobs(patterns []string, root string) (map[string]string, error) {
	hashes := make(map[string]string)
	for _, pattern := range patterns {
		paths, err := e.fs.Glob(root, pattern)
		if err != nil {
			return nil, err
		}
		for _, rel := range paths {
			h, err := e.hasher.HashFile(filepath.Join(root, rel))
			if err != nil {
				return nil, err
			}
			hashes[rel] = h
		}
	}
	return hashes, nil
}

func (e *Executor) streamOutput(targetID string, outcome *ports.RunOutcome) {
	for _, stream := range []string{outcome.Stdout, outcome.Stderr} {
		for line := range strings.Lines(stream) {
			line = strings.TrimRight(line, "\r\n")
			if line != "" {
				e.progress.TargetOutput(targetID, line)
			}
		}
	}
}

func (e *Executor) finish(res domain.BuildResult) domain.BuildResult {
	e.progress.TargetCompleted(res.TargetID, res.Status)
	return res
}

// infraFailure builds a failure result carrying one synthetic diagnostic
// with no file coordinates.
func infraFailure(targetID string, start time.Time, msg string, err error) domain.BuildResult {
	return domain.BuildResult{
		TargetID:   targetID,
		Status:     domain.StatusFailure,
		StartedAt:  start,
		FinishedAt: start,
		Diagnostics: []domain.Diagnostic{{
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("%s: %v", msg, err),
		}},
	}
}

func skippedResult(targetID string) domain.BuildResult {
	now := time.Now()
	return domain.BuildResult{
		TargetID:   targetID,
		Status:     domain.StatusSkipped,
		StartedAt:  now,
		FinishedAt: now,
	}
}

// noProgress is the fallback sink when no progress reporting is wired.
type noProgress struct{}

func (noProgress) TargetStarted(string)                      {}
func (noProgress) TargetOutput(string, string)               {}
func (noProgress) TargetCompleted(string, domain.BuildStatus) {}
