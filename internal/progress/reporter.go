// Package progress shows feedback on stderr while the CLI waits on slow
// backend calls such as article summarization.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter shows that a long-running step is in progress.
type Reporter interface {
	Start(message string)
	Finish()
}

// NewReporter returns a TerminalReporter for interactive use, or a
// CIReporter if the CI environment variable is set.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{w: os.Stderr}
	}
	return &TerminalReporter{w: os.Stderr}
}

// TerminalReporter displays a spinner with the elapsed time.
type TerminalReporter struct {
	w    io.Writer
	bar  *progressbar.ProgressBar
	stop chan struct{}
	done sync.WaitGroup
}

func (r *TerminalReporter) Start(message string) {
	r.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription(message),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionClearOnFinish(),
	)
	r.stop = make(chan struct{})
	r.done.Add(1)
	go func() {
		defer r.done.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				_ = r.bar.Add(1)
			}
		}
	}()
}

func (r *TerminalReporter) Finish() {
	if r.bar == nil {
		return
	}
	close(r.stop)
	r.done.Wait()
	_ = r.bar.Finish()
	r.bar = nil
}

// CIReporter prints one line per step, suitable for CI logs.
type CIReporter struct {
	w       io.Writer
	message string
	started time.Time
}

func (r *CIReporter) Start(message string) {
	r.message = message
	r.started = time.Now()
	fmt.Fprintln(r.w, message)
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(r.w, "%s done in %s\n", r.message, time.Since(r.started).Round(time.Millisecond))
}
