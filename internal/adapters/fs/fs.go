// Package fs provides the os-backed file system adapter plus content
// hashing and file walking.
package fs

import (
	"os"
	"path/filepath"
	"sort"

	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileSystem = (*Filesystem)(nil)

// Filesystem implements ports.FileSystem on the local disk.
type Filesystem struct {
	walker *Walker
}

// NewFilesystem creates a new Filesystem.
func NewFilesystem(walker *Walker) *Filesystem {
	return &Filesystem{walker: walker}
}

// ReadFile returns the content of the file at path.
func (f *Filesystem) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read file"), "path", path)
	}
	return data, nil
}

// Stat returns metadata for the file at path.
func (f *Filesystem) Stat(path string) (ports.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ports.FileInfo{}, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}
	return ports.FileInfo{Size: info.Size(), ModTime: info.ModTime()}, nil
}

// Glob expands pattern against root and returns workspace-relative file
// paths, sorted and deduplicated. Directories matched by the pattern are
// walked recursively. Zero matches is not an error.
func (f *Filesystem) Glob(root, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(root, pattern))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to glob pattern"), "pattern", pattern)
	}

	unique := make(map[string]bool)
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to stat match"), "path", match)
		}
		if info.IsDir() {
			for path := range f.walker.WalkFiles(match, nil) {
				unique[path] = true
			}
		} else {
			unique[match] = true
		}
	}

	result := make([]string, 0, len(unique))
	for path := range unique {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
		}
		result = append(result, filepath.ToSlash(rel))
	}
	sort.Strings(result)

	return result, nil
}
