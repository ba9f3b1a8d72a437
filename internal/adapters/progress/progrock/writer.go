package progrock

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/vito/progrock"
)

var _ progrock.Writer = (*StreamWriter)(nil)

// StreamWriter renders status updates as plain lines on out. A Tape only
// renders when something drives it, so the CLI path streams vertex
// transitions and log chunks directly instead of accumulating updates in
// memory.
type StreamWriter struct {
	mu    sync.Mutex
	out   io.Writer
	names map[string]string
	done  map[string]bool
}

// NewStreamWriter creates a StreamWriter rendering to out.
func NewStreamWriter(out io.Writer) *StreamWriter {
	return &StreamWriter{
		out:   out,
		names: make(map[string]string),
		done:  make(map[string]bool),
	}
}

// WriteStatus renders the update: one line per log chunk, one line per
// vertex reaching a terminal state. Repeated updates for a completed vertex
// render nothing.
func (w *StreamWriter) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, v := range update.Vertexes {
		w.names[v.Id] = v.Name
	}

	for _, l := range update.Logs {
		name := w.names[l.Vertex]
		for line := range strings.Lines(string(l.Data)) {
			line = strings.TrimRight(line, "\r\n")
			if line != "" {
				fmt.Fprintf(w.out, "%s: %s\n", name, line)
			}
		}
	}

	for _, v := range update.Vertexes {
		if v.Completed == nil || w.done[v.Id] {
			continue
		}
		w.done[v.Id] = true
		switch {
		case v.Cached:
			fmt.Fprintf(w.out, "cached   %s\n", v.Name)
		case v.Error != nil:
			fmt.Fprintf(w.out, "failed   %s: %s\n", v.Name, v.GetError())
		default:
			fmt.Fprintf(w.out, "done     %s\n", v.Name)
		}
	}

	return nil
}

// Close implements progrock.Writer.
func (w *StreamWriter) Close() error {
	return nil
}
