package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	fsadapter "go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/core/domain"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	root := t.TempDir()
	return NewFileStore(filepath.Join(root, DefaultDir), root, fsadapter.NewHasher()), root
}

func writeWorkspaceFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestFileStore_StoreAndLookup(t *testing.T) {
	store, root := newTestStore(t)
	target := &domain.BuildTarget{ID: "app:compile"}
	inputs := map[string]string{"src/a.ts": "aaaa", "src/b.ts": "bbbb"}

	writeWorkspaceFile(t, root, "dist/out.js", "bundle")
	outHash, err := store.hasher.HashFile(filepath.Join(root, "dist/out.js"))
	require.NoError(t, err)
	outputs := map[string]string{"dist/out.js": outHash}

	before := time.Now()
	require.NoError(t, store.Store(target, inputs, outputs))

	entry, err := store.Lookup(target, inputs)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "app:compile", entry.TargetID)
	assert.Equal(t, inputs, entry.InputHashes)
	assert.Equal(t, outputs, entry.OutputHashes)
	assert.False(t, entry.Timestamp.Before(before))
}

func TestFileStore_LookupMissesOnAbsentEntry(t *testing.T) {
	store, _ := newTestStore(t)

	entry, err := store.Lookup(&domain.BuildTarget{ID: "nope"}, nil)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestFileStore_LookupMissesOnHashMismatch(t *testing.T) {
	store, _ := newTestStore(t)
	target := &domain.BuildTarget{ID: "a"}
	require.NoError(t, store.Store(target, map[string]string{"f": "h1"}, nil))

	entry, err := store.Lookup(target, map[string]string{"f": "h2"})
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestFileStore_LookupMissesOnShapeChange(t *testing.T) {
	store, _ := newTestStore(t)
	target := &domain.BuildTarget{ID: "a"}
	require.NoError(t, store.Store(target, map[string]string{"f": "h1"}, nil))

	// Added input file.
	entry, err := store.Lookup(target, map[string]string{"f": "h1", "g": "h2"})
	require.NoError(t, err)
	assert.Nil(t, entry)

	// Removed input file.
	entry, err = store.Lookup(target, map[string]string{})
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestFileStore_LookupMissesOnTamperedOutput(t *testing.T) {
	store, root := newTestStore(t)
	target := &domain.BuildTarget{ID: "a"}

	writeWorkspaceFile(t, root, "out.txt", "built")
	outHash, err := store.hasher.HashFile(filepath.Join(root, "out.txt"))
	require.NoError(t, err)

	inputs := map[string]string{"in.txt": "h1"}
	require.NoError(t, store.Store(target, inputs, map[string]string{"out.txt": outHash}))

	writeWorkspaceFile(t, root, "out.txt", "tampered")

	entry, err := store.Lookup(target, inputs)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestFileStore_LookupMissesOnDeletedOutput(t *testing.T) {
	store, root := newTestStore(t)
	target := &domain.BuildTarget{ID: "a"}

	writeWorkspaceFile(t, root, "out.txt", "built")
	outHash, err := store.hasher.HashFile(filepath.Join(root, "out.txt"))
	require.NoError(t, err)

	inputs := map[string]string{"in.txt": "h1"}
	require.NoError(t, store.Store(target, inputs, map[string]string{"out.txt": outHash}))
	require.NoError(t, os.Remove(filepath.Join(root, "out.txt")))

	entry, err := store.Lookup(target, inputs)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestFileStore_CorruptEntryIsInvalidFormat(t *testing.T) {
	store, _ := newTestStore(t)
	target := &domain.BuildTarget{ID: "a"}

	require.NoError(t, os.MkdirAll(store.dir, 0o750))
	require.NoError(t, os.WriteFile(store.entryPath("a"), []byte("{truncated"), 0o600))

	entry, err := store.Lookup(target, nil)
	require.ErrorIs(t, err, domain.ErrInvalidCacheFormat)
	assert.Nil(t, entry)
}

func TestFileStore_MismatchedTargetIDIsInvalidFormat(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Store(&domain.BuildTarget{ID: "b"}, nil, nil))
	data, err := os.ReadFile(store.entryPath("b"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.entryPath("a"), data, 0o600))

	entry, err := store.Lookup(&domain.BuildTarget{ID: "a"}, nil)
	require.ErrorIs(t, err, domain.ErrInvalidCacheFormat)
	assert.Nil(t, entry)
}

func TestFileStore_StoreOverwritesExistingEntry(t *testing.T) {
	store, _ := newTestStore(t)
	target := &domain.BuildTarget{ID: "a"}

	require.NoError(t, store.Store(target, map[string]string{"f": "h1"}, nil))
	require.NoError(t, store.Store(target, map[string]string{"f": "h2"}, nil))

	entry, err := store.Lookup(target, map[string]string{"f": "h2"})
	require.NoError(t, err)
	require.NotNil(t, entry)

	entry, err = store.Lookup(target, map[string]string{"f": "h1"})
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestFileStore_Invalidate(t *testing.T) {
	store, _ := newTestStore(t)
	target := &domain.BuildTarget{ID: "a"}
	require.NoError(t, store.Store(target, nil, nil))

	require.NoError(t, store.Invalidate("a"))

	entry, err := store.Lookup(target, nil)
	require.NoError(t, err)
	assert.Nil(t, entry)

	// Idempotent on a missing entry.
	require.NoError(t, store.Invalidate("a"))
}

func TestFileStore_InvalidateAll(t *testing.T) {
	store, _ := newTestStore(t)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Store(&domain.BuildTarget{ID: id}, nil, nil))
	}

	require.NoError(t, store.InvalidateAll())

	for _, id := range []string{"a", "b", "c"} {
		entry, err := store.Lookup(&domain.BuildTarget{ID: id}, nil)
		require.NoError(t, err)
		assert.Nil(t, entry)
	}

	// A missing cache directory is not an error.
	require.NoError(t, os.RemoveAll(store.dir))
	require.NoError(t, store.InvalidateAll())
}

func TestFileStore_SanitizedIDsDoNotCollide(t *testing.T) {
	store, _ := newTestStore(t)
	first := &domain.BuildTarget{ID: "pkg/a:build"}
	second := &domain.BuildTarget{ID: "pkg:a/build"}

	require.NoError(t, store.Store(first, map[string]string{"f": "h1"}, nil))
	require.NoError(t, store.Store(second, map[string]string{"f": "h2"}, nil))

	entry, err := store.Lookup(first, map[string]string{"f": "h1"})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "pkg/a:build", entry.TargetID)

	entry, err = store.Lookup(second, map[string]string{"f": "h2"})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "pkg:a/build", entry.TargetID)
}
