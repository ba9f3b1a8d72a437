package domain

import "time"

// CacheEntry is the persisted record of a target's last successful build:
// the content hashes of every input and output file at the time the tool
// exited zero. An entry is stale as soon as any currently declared input
// hashes differently, or the input/output sets change shape.
type CacheEntry struct {
	TargetID     string            `json:"target_id"`
	InputHashes  map[string]string `json:"input_hashes"`
	OutputHashes map[string]string `json:"output_hashes"`
	Timestamp    time.Time         `json:"timestamp"`
}
