package ports

import "go.trai.ch/forge/internal/core/domain"

// Progress receives observational events during batch execution. Sinks must
// never influence ordering or results; the executor calls them best-effort
// and ignores anything they do.
//
//go:generate go run go.uber.org/mock/mockgen -source=progress.go -destination=mocks/mock_progress.go -package=mocks
type Progress interface {
	// TargetStarted fires when a target begins processing (including a
	// cache probe that turns into a hit).
	TargetStarted(targetID string)

	// TargetOutput streams one line of tool output attributed to a target.
	TargetOutput(targetID, line string)

	// TargetCompleted fires once a target has a terminal status.
	TargetCompleted(targetID string, status domain.BuildStatus)
}
