package cache

import (
	"path/filepath"

	"go.trai.ch/forge/internal/core/ports"
)

// hashesEqual reports whether two hash maps have the same key set and the
// same hash per key. A shape change (added or removed input) invalidates
// just like a content change.
func hashesEqual(stored, current map[string]string) bool {
	if len(stored) != len(current) {
		return false
	}
	for path, hash := range stored {
		if current[path] != hash {
			return false
		}
	}
	return true
}

// outputsIntact re-hashes every recorded output against the workspace,
// guarding against results deleted or edited out-of-band. A missing or
// unreadable output is a plain miss.
func outputsIntact(outputs map[string]string, root string, hasher ports.Hasher) bool {
	for path, stored := range outputs {
		current, err := hasher.HashFile(filepath.Join(root, path))
		if err != nil || current != stored {
			return false
		}
	}
	return true
}
