package cache

import (
	"sync"
	"time"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
)

// timeNow is stubbed in tests.
var timeNow = time.Now

var _ ports.BuildCache = (*MemoryStore)(nil)

// MemoryStore is the in-memory BuildCache used by tests and ephemeral runs.
// It applies the same validity rules as FileStore, including on-disk output
// verification.
type MemoryStore struct {
	root   string
	hasher ports.Hasher

	mu      sync.RWMutex
	entries map[string]domain.CacheEntry
}

// NewMemoryStore creates an empty MemoryStore verifying outputs below root.
func NewMemoryStore(root string, hasher ports.Hasher) *MemoryStore {
	return &MemoryStore{
		root:    root,
		hasher:  hasher,
		entries: make(map[string]domain.CacheEntry),
	}
}

// Lookup returns the entry for target.ID if inputs match exactly and the
// recorded outputs still hash identically on disk.
func (s *MemoryStore) Lookup(target *domain.BuildTarget, inputHashes map[string]string) (*domain.CacheEntry, error) {
	s.mu.RLock()
	entry, ok := s.entries[target.ID]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if !hashesEqual(entry.InputHashes, inputHashes) {
		return nil, nil
	}
	if !outputsIntact(entry.OutputHashes, s.root, s.hasher) {
		return nil, nil
	}
	return &entry, nil
}

// Store records the entry for target.ID.
func (s *MemoryStore) Store(target *domain.BuildTarget, inputHashes, outputHashes map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[target.ID] = domain.CacheEntry{
		TargetID:     target.ID,
		InputHashes:  inputHashes,
		OutputHashes: outputHashes,
		Timestamp:    timeNow(),
	}
	return nil
}

// Invalidate removes the entry for one target.
func (s *MemoryStore) Invalidate(targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, targetID)
	return nil
}

// InvalidateAll removes every entry.
func (s *MemoryStore) InvalidateAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]domain.CacheEntry)
	return nil
}
