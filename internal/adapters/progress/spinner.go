package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/rt-deploy/internal/usecase"
)

// SpinnerSink shows deployment stages with a spinner on stderr.
// Stdout is left untouched for the deployment result.
type SpinnerSink struct {
	spinner      *spinner.Spinner
	out          io.Writer
	currentStage usecase.ExecutionStage
	stageStart   time.Time
	now          func() time.Time
}

// NewSpinnerSink creates a spinner-based progress sink writing to stderr
func NewSpinnerSink() *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.HideCursor = false
	return newSpinnerSink(s, os.Stderr)
}

func newSpinnerSink(s *spinner.Spinner, out io.Writer) *SpinnerSink {
	return &SpinnerSink{
		spinner: s,
		out:     out,
		now:     time.Now,
	}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage != r.currentStage {
		r.completeCurrentStage()
		r.currentStage = event.Stage
		r.stageStart = r.now()
	}

	if event.Stage == usecase.StageCompleted {
		r.spinner.Stop()
		r.currentStage = ""
		return
	}

	if event.Spinner {
		r.spinner.Suffix = " " + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.withSpinnerPaused(func() {
		_, _ = color.New(color.FgCyan).Fprintln(r.out, message)
	})
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.spinner.Stop()
	r.currentStage = ""
	_, _ = color.New(color.FgRed).Fprintln(r.out, message)
}

// completeCurrentStage prints a check mark for the stage that just finished
func (r *SpinnerSink) completeCurrentStage() {
	if r.currentStage == "" {
		return
	}
	r.withSpinnerPaused(func() {
		elapsed := r.now().Sub(r.stageStart).Round(time.Millisecond)
		_, _ = fmt.Fprintf(r.out, "%s %s %s\n",
			color.GreenString("✓"),
			r.currentStage,
			color.New(color.Faint).Sprintf("(%s)", elapsed))
	})
}

func (r *SpinnerSink) withSpinnerPaused(fn func()) {
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
