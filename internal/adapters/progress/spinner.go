package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/scubr/scubr-migrate/internal/usecase"
)

// SpinnerSink reports migration progress with a terminal spinner
type SpinnerSink struct {
	out          io.Writer
	spinner      *spinner.Spinner
	stageStarted time.Time
}

// NewSpinnerSink creates a spinner-based progress sink writing to stderr
func NewSpinnerSink() *SpinnerSink {
	return NewSpinnerSinkTo(os.Stderr)
}

// NewSpinnerSinkTo creates a spinner-based progress sink writing to out
func NewSpinnerSinkTo(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerSink{
		out:     out,
		spinner: s,
	}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	switch event.Stage {
	case usecase.StageDeployed:
		r.finish(color.New(color.FgGreen), "✓", event.Message)
		return
	case usecase.StageFailed:
		r.finish(color.New(color.FgRed), "✗", event.Message)
		return
	case usecase.StageCompleted:
		r.spinner.Stop()
		return
	}

	if event.Spinner {
		r.stageStarted = time.Now()
		r.spinner.Suffix = " " + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}

	if event.Total > 0 {
		r.Info(fmt.Sprintf("[%d/%d] %s", event.Current, event.Total, event.Message))
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.pause(func() {
		color.New(color.FgCyan).Fprintln(r.out, message)
	})
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.pause(func() {
		color.New(color.FgRed).Fprintln(r.out, message)
	})
}

// finish stops the spinner and prints the outcome of the running step
func (r *SpinnerSink) finish(c *color.Color, icon, message string) {
	r.spinner.Stop()
	elapsed := ""
	if !r.stageStarted.IsZero() {
		elapsed = color.New(color.Faint).Sprintf(" (%s)", time.Since(r.stageStarted).Round(time.Millisecond))
	}
	fmt.Fprintf(r.out, "%s %s%s\n", c.Sprint(icon), message, elapsed)
	r.stageStarted = time.Time{}
}

// pause stops the spinner while fn writes
func (r *SpinnerSink) pause(fn func()) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	fn()

	if wasActive {
		r.spinner.Start()
	}
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
