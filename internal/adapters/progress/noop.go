// Package progress provides implementations of the progress event sink.
package progress

import (
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
)

var _ ports.Progress = (*Noop)(nil)

// Noop is a progress sink that discards every event.
type Noop struct{}

// NewNoop creates a new Noop sink.
func NewNoop() *Noop {
	return &Noop{}
}

// TargetStarted does nothing.
func (n *Noop) TargetStarted(_ string) {}

// TargetOutput does nothing.
func (n *Noop) TargetOutput(_, _ string) {}

// TargetCompleted does nothing.
func (n *Noop) TargetCompleted(_ string, _ domain.BuildStatus) {}
