// Package cache implements the build cache: persisted per-target records of
// input and output content hashes.
package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultDir is the cache directory relative to the workspace root.
const DefaultDir = ".forge/cache"

var _ ports.BuildCache = (*FileStore)(nil)

// FileStore persists one JSON file per target under a cache directory.
// Entries for different targets never share a file, so concurrent targets
// need no cross-target lock; atomicity per entry comes from
// write-then-rename.
type FileStore struct {
	dir    string
	root   string
	hasher ports.Hasher
}

// NewFileStore creates a FileStore writing under dir and verifying output
// hashes against files below the workspace root.
func NewFileStore(dir, root string, hasher ports.Hasher) *FileStore {
	return &FileStore{
		dir:    filepath.Clean(dir),
		root:   root,
		hasher: hasher,
	}
}

// Lookup returns the entry for target.ID if it is still valid: the stored
// input hashes must exactly match inputHashes and every recorded output must
// still hash identically on disk. Any read or decode problem surfaces as an
// error the caller may log, but semantically it is just a miss.
func (s *FileStore) Lookup(target *domain.BuildTarget, inputHashes map[string]string) (*domain.CacheEntry, error) {
	data, err := os.ReadFile(s.entryPath(target.ID)) //nolint:gosec // Path derives from the configured cache dir
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read cache entry"), "target", target.ID)
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, zerr.With(domain.ErrInvalidCacheFormat, "target", target.ID)
	}
	// Self-describing guard against sanitized-name collisions.
	if entry.TargetID != target.ID {
		return nil, zerr.With(domain.ErrInvalidCacheFormat, "target", target.ID)
	}

	if !hashesEqual(entry.InputHashes, inputHashes) {
		return nil, nil
	}
	if !outputsIntact(entry.OutputHashes, s.root, s.hasher) {
		return nil, nil
	}

	return &entry, nil
}

// Store persists the entry for target.ID via write-then-rename so a crash
// mid-write never leaves a half-written entry behind.
func (s *FileStore) Store(target *domain.BuildTarget, inputHashes, outputHashes map[string]string) error {
	entry := domain.CacheEntry{
		TargetID:     target.ID,
		InputHashes:  inputHashes,
		OutputHashes: outputHashes,
		Timestamp:    timeNow(),
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache entry")
	}

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create cache directory")
	}

	tmp, err := os.CreateTemp(s.dir, "entry-*.tmp")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp cache entry")
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to write cache entry")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to close temp cache entry")
	}

	if err := os.Rename(tmp.Name(), s.entryPath(target.ID)); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to rename cache entry")
	}

	return nil
}

// Invalidate removes the entry for one target. A missing entry is fine.
func (s *FileStore) Invalidate(targetID string) error {
	err := os.Remove(s.entryPath(targetID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to remove cache entry"), "target", targetID)
	}
	return nil
}

// InvalidateAll removes every entry in the cache directory.
func (s *FileStore) InvalidateAll() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read cache directory")
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			return zerr.Wrap(err, "failed to remove cache entry")
		}
	}
	return nil
}

// entryPath addresses an entry by target id. The sanitized id keeps the
// filename readable; the digest suffix keeps distinct ids from colliding
// after sanitization.
func (s *FileStore) entryPath(targetID string) string {
	name := sanitize(targetID) + "-" + s.hasher.HashBytes([]byte(targetID))[:8] + ".json"
	return filepath.Join(s.dir, name)
}

func sanitize(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, id)
}
