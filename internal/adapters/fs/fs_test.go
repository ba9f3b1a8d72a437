package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/fs"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestFilesystem_Glob(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/b.ts", "b")
	writeFile(t, root, "src/a.ts", "a")
	writeFile(t, root, "src/readme.md", "docs")

	filesystem := fs.NewFilesystem(fs.NewWalker())

	paths, err := filesystem.Glob(root, "src/*.ts")
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.ts", "src/b.ts"}, paths)
}

func TestFilesystem_GlobWalksMatchedDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/deep/nested/x.ts", "x")
	writeFile(t, root, "src/top.ts", "t")
	writeFile(t, root, "src/.git/config", "ignored")

	filesystem := fs.NewFilesystem(fs.NewWalker())

	paths, err := filesystem.Glob(root, "src")
	require.NoError(t, err)
	assert.Equal(t, []string{"src/deep/nested/x.ts", "src/top.ts"}, paths)
}

func TestFilesystem_GlobNoMatches(t *testing.T) {
	filesystem := fs.NewFilesystem(fs.NewWalker())

	paths, err := filesystem.Glob(t.TempDir(), "nothing/*.here")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestFilesystem_ReadFileAndStat(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "f.txt", "content")

	filesystem := fs.NewFilesystem(fs.NewWalker())

	data, err := filesystem.ReadFile(filepath.Join(root, "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	info, err := filesystem.Stat(filepath.Join(root, "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, int64(len("content")), info.Size)
	assert.False(t, info.ModTime.IsZero())

	_, err = filesystem.ReadFile(filepath.Join(root, "missing.txt"))
	require.Error(t, err)
}

func TestHasher_Digests(t *testing.T) {
	hasher := fs.NewHasher()

	a := hasher.HashBytes([]byte("hello"))
	assert.Len(t, a, 16)
	assert.Equal(t, a, hasher.HashBytes([]byte("hello")))
	assert.NotEqual(t, a, hasher.HashBytes([]byte("hello!")))
}

func TestHasher_HashFileMatchesHashBytes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "f.txt", "same content")

	hasher := fs.NewHasher()

	fromFile, err := hasher.HashFile(filepath.Join(root, "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, hasher.HashBytes([]byte("same content")), fromFile)

	_, err = hasher.HashFile(filepath.Join(root, "missing.txt"))
	require.Error(t, err)
}

func TestWalker_SkipsVersionControlAndIgnores(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep/a.txt", "a")
	writeFile(t, root, ".git/HEAD", "ref")
	writeFile(t, root, "node_modules/pkg/index.js", "js")

	walker := fs.NewWalker()

	var found []string
	for path := range walker.WalkFiles(root, []string{"node_modules"}) {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		found = append(found, filepath.ToSlash(rel))
	}

	assert.Equal(t, []string{"keep/a.txt"}, found)
}
