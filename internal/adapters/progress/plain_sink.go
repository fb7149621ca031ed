package progress

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/scubr/scubr-migrate/internal/usecase"
)

// PlainSink prints one line per finished step, for CI logs and other non-terminal output
type PlainSink struct {
	out io.Writer
}

var _ usecase.ProgressSink = (*PlainSink)(nil)

// NewPlainSink creates a plain sink writing to stderr
func NewPlainSink() *PlainSink {
	return NewPlainSinkTo(os.Stderr)
}

// NewPlainSinkTo creates a plain sink writing to out
func NewPlainSinkTo(out io.Writer) *PlainSink {
	return &PlainSink{out: out}
}

func (p *PlainSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	// spinner events announce work a later event reports; completion is left to the renderers
	if event.Spinner || event.Stage == usecase.StageCompleted {
		return
	}

	switch {
	case event.Total > 0:
		fmt.Fprintf(p.out, "[%d/%d] %s\n", event.Current, event.Total, event.Message)
	case event.Stage == usecase.StageFailed:
		fmt.Fprintf(p.out, "FAILED %s\n", event.Message)
	case event.Message != "":
		fmt.Fprintln(p.out, event.Message)
	}
}

func (p *PlainSink) Info(message string) {
	fmt.Fprintln(p.out, message)
}

func (p *PlainSink) Error(message string) {
	fmt.Fprintf(p.out, "error: %s\n", message)
}
