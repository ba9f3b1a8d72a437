package domain

import "go.trai.ch/zerr"

var (
	// ErrCircularDependency is returned when the target graph contains a cycle.
	ErrCircularDependency = zerr.New("circular dependency detected")

	// ErrUnknownRule is returned when a target references a rule id that is
	// not present in the rule map.
	ErrUnknownRule = zerr.New("unknown rule")

	// ErrUnknownDependency is returned when a target declares a dependency
	// on a target id that is not part of the batch.
	ErrUnknownDependency = zerr.New("unknown dependency")

	// ErrDuplicateTarget is returned when a batch contains two targets with
	// the same id.
	ErrDuplicateTarget = zerr.New("duplicate target")

	// ErrInvalidCacheFormat is returned when a persisted cache entry cannot
	// be decoded. Callers treat it as a cache miss, never as fatal.
	ErrInvalidCacheFormat = zerr.New("invalid cache entry format")

	// ErrNoTargetsSpecified is returned when a run is requested without targets.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrBuildFailed is returned by the application layer when at least one
	// target in the batch finished with a failure status.
	ErrBuildFailed = zerr.New("build failed")
)
