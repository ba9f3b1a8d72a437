// Package progrock implements the progress sink on progrock vertexes.
package progrock

import (
	"fmt"
	"os"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
)

var _ ports.Progress = (*Recorder)(nil)

// Recorder maps targets onto progrock vertexes: one vertex per target, with
// streamed output attached to the vertex's stdout.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu       sync.Mutex
	vertexes map[string]*progrock.VertexRecorder
}

// New creates a Recorder rendering to stderr.
func New() *Recorder {
	return NewRecorder(NewStreamWriter(os.Stderr))
}

// NewRecorder creates a Recorder over the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:        w,
		rec:      progrock.NewRecorder(w),
		vertexes: make(map[string]*progrock.VertexRecorder),
	}
}

// TargetStarted opens a vertex for the target.
func (r *Recorder) TargetStarted(targetID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vertexes[targetID] = r.vertex(targetID)
}

// TargetOutput appends a line of tool output to the target's vertex.
func (r *Recorder) TargetOutput(targetID, line string) {
	r.mu.Lock()
	v, ok := r.vertexes[targetID]
	r.mu.Unlock()
	if !ok {
		return
	}
	_, _ = fmt.Fprintln(v.Stdout(), line)
}

// TargetCompleted closes the target's vertex with the terminal status.
// Skipped targets never started, so a vertex is opened on demand.
func (r *Recorder) TargetCompleted(targetID string, status domain.BuildStatus) {
	r.mu.Lock()
	v, ok := r.vertexes[targetID]
	if !ok {
		v = r.vertex(targetID)
	}
	delete(r.vertexes, targetID)
	r.mu.Unlock()

	switch status {
	case domain.StatusCached:
		v.Cached()
		v.Done(nil)
	case domain.StatusFailure:
		v.Done(fmt.Errorf("target %s failed", targetID))
	case domain.StatusSkipped:
		_, _ = fmt.Fprintln(v.Stdout(), "skipped: upstream dependency failed")
		v.Done(nil)
	default:
		v.Done(nil)
	}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (r *Recorder) vertex(targetID string) *progrock.VertexRecorder {
	return r.rec.Vertex(digest.FromString(targetID), targetID)
}
