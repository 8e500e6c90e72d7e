// Package progress gives feedback while a simulation request is in flight.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter shows that a request is running. The wait is indeterminate: there
// is no timeout and no partial progress, only start and finish.
type Reporter interface {
	Start(message string)
	Finish()
}

// NewReporter returns a TerminalReporter in an interactive terminal, or a
// CIReporter when a CI environment is detected.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{}
	}
	return &TerminalReporter{}
}

// spinnerInterval is how often the spinner advances a frame.
const spinnerInterval = 100 * time.Millisecond

// TerminalReporter displays a spinner in the terminal. The spinner has no
// external progress events to ride on, so a background ticker drives the
// animation until Finish.
type TerminalReporter struct {
	w    io.Writer // defaults to os.Stderr
	bar  *progressbar.ProgressBar
	done chan struct{}
	wg   sync.WaitGroup
}

func (r *TerminalReporter) Start(message string) {
	w := r.w
	if w == nil {
		w = os.Stderr
	}
	r.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(message),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWriter(w),
		progressbar.OptionClearOnFinish(),
	)
	_ = r.bar.RenderBlank()

	r.done = make(chan struct{})
	r.wg.Add(1)
	go func(bar *progressbar.ProgressBar, done chan struct{}) {
		defer r.wg.Done()
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}(r.bar, r.done)
}

func (r *TerminalReporter) Finish() {
	if r.bar == nil {
		return
	}
	close(r.done)
	r.wg.Wait()
	_ = r.bar.Finish()
	r.bar = nil
}

// CIReporter prints plain lines suitable for CI logs.
type CIReporter struct{}

func (r *CIReporter) Start(message string) {
	fmt.Fprintln(os.Stderr, message)
}

func (r *CIReporter) Finish() {
	fmt.Fprintln(os.Stderr, "done")
}
