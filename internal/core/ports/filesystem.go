// Package ports defines the core interfaces for the application.
package ports

import "time"

// FileInfo is the subset of file metadata the engine cares about.
type FileInfo struct {
	Size    int64
	ModTime time.Time
}

// FileSystem abstracts file access for hashing and glob expansion so the
// engine never touches the os package directly.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// ReadFile returns the content of the file at path.
	ReadFile(path string) ([]byte, error)

	// Stat returns metadata for the file at path.
	Stat(path string) (FileInfo, error)

	// Glob expands pattern relative to root and returns the matching file
	// paths relative to root, sorted and deduplicated. Matched directories
	// are walked recursively. A pattern with no matches yields an empty
	// slice, not an error.
	Glob(root, pattern string) ([]string, error)
}
