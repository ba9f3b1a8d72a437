package ports

import "go.trai.ch/forge/internal/core/domain"

// BuildCache persists per-target build results keyed by content hashes.
//
// Lookup returns (nil, nil) on a miss. A corrupt or unreadable entry is a
// miss, never an error: correctness favors recomputation over blocking the
// batch. A hit requires the stored input hashes to exactly match the current
// ones (same key set, same hash per key) and the recorded output files to
// still hash identically on disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type BuildCache interface {
	Lookup(target *domain.BuildTarget, inputHashes map[string]string) (*domain.CacheEntry, error)

	// Store persists the entry for target.ID, overwriting any previous one.
	// The write is atomic with respect to process crashes.
	Store(target *domain.BuildTarget, inputHashes, outputHashes map[string]string) error

	// Invalidate removes the entry for one target. Missing entries are not
	// an error.
	Invalidate(targetID string) error

	// InvalidateAll removes every entry.
	InvalidateAll() error
}

// CacheFactory builds a BuildCache stored under dir. An empty dir selects
// the implementation's default location.
type CacheFactory func(dir string) BuildCache
