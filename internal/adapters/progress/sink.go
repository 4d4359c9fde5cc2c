package progress

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/trebuchet-org/rt-deploy/internal/domain/config"
	"github.com/trebuchet-org/rt-deploy/internal/usecase"
)

// NewSink picks the spinner when stderr is a terminal and the run is interactive
func NewSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || !isTerminal(os.Stderr) {
		return NewNopSink()
	}
	return NewSpinnerSink()
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
