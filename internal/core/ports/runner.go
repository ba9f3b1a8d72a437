package ports

import (
	"context"
	"time"
)

// RunOptions configures a single tool invocation.
type RunOptions struct {
	// Dir is the working directory, normally the workspace root.
	Dir string

	// Env is the complete environment in "KEY=VALUE" form. The runner must
	// not mix in ambient process state; callers construct the environment
	// explicitly.
	Env []string

	// Timeout bounds the invocation when positive.
	Timeout time.Duration
}

// RunOutcome is the observable result of a tool invocation that actually
// started, regardless of its exit code.
type RunOutcome struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ToolRunner executes external build tools.
//
// A nonzero exit code is not an error: Run returns a RunOutcome and a nil
// error. A non-nil error means the process could not be spawned at all
// (missing binary, permission problem) and no outcome exists.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type ToolRunner interface {
	Run(ctx context.Context, command []string, opts RunOptions) (*RunOutcome, error)
}
