// Package console renders task lifecycle banners on the terminal.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/tasks/internal/core/ports"
	"go.trai.ch/tasks/internal/ui/output"
	"go.trai.ch/tasks/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer with one line per lifecycle event.
type Renderer struct {
	output  *termenv.Output
	verbose bool

	mu    sync.Mutex
	tasks map[string]*taskState // spanID -> task state
}

type taskState struct {
	name      string
	startTime time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithVerbose prints a completion line with the task duration.
func WithVerbose(enable bool) Option {
	return func(r *Renderer) {
		r.verbose = enable
	}
}

// NewRenderer creates a new Renderer writing to w. A nil w writes to stdout.
func NewRenderer(w io.Writer, opts ...Option) *Renderer {
	if w == nil {
		w = os.Stdout
	}

	r := &Renderer{
		output: output.New(w),
		tasks:  make(map[string]*taskState),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnTaskStart prints the execution banner.
func (r *Renderer) OnTaskStart(spanID, _ /* parentID */, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[spanID] = &taskState{name: name, startTime: startTime}

	r.printLocked(string(style.Green), fmt.Sprintf("Executing task: %s", name))
}

// OnTaskComplete prints the failure banner for non-zero exits and, when
// verbose, the task duration.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, exitCode int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}
	delete(r.tasks, spanID)

	if exitCode > 0 {
		r.printLocked(string(style.Red), fmt.Sprintf("TASK [%s] exited with error code [%d]", task.name, exitCode))
	}

	if !r.verbose {
		return
	}

	duration := endTime.Sub(task.startTime).Round(time.Millisecond)
	if err != nil {
		symbol := output.Colorize(r.output, string(style.Red), style.Cross)
		_, _ = fmt.Fprintf(r.output, "[%s] %s Failed after %v\n", task.name, symbol, duration)
		return
	}
	symbol := output.Colorize(r.output, string(style.Green), style.Dot)
	_, _ = fmt.Fprintf(r.output, "[%s] %s Completed in %v\n", task.name, symbol, duration)
}

// printLocked writes a banner line. Must be called with r.mu held.
func (r *Renderer) printLocked(hex, text string) {
	line := style.BannerOpen + text + style.BannerClose
	_, _ = fmt.Fprintln(r.output, output.Colorize(r.output, hex, line))
}
