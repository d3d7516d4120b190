package ports

import "time"

// Renderer presents task lifecycle events on the terminal.
// It is fed from finished and started spans, so the executor never writes to the console directly.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// OnTaskStart is called when a task begins resolving and launching.
	OnTaskStart(spanID, parentID, name string, startTime time.Time)

	// OnTaskComplete is called when a task finishes.
	// exitCode is -1 when the task never launched.
	OnTaskComplete(spanID string, endTime time.Time, exitCode int, err error)
}
