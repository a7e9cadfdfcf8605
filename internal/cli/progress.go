package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/Veraticus/wallmatch/internal/flow"
	"github.com/schollz/progressbar/v3"
)

// ProgressView implements flow.View for one-shot commands. It shows a
// spinner while a match is in flight and prints alerts as errors.
type ProgressView struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
	status string
	mu     sync.Mutex
	quiet  bool
}

// Ensure we implement the interface.
var _ flow.View = (*ProgressView)(nil)

// NewProgressView creates a view writing to writer. quiet suppresses the spinner.
func NewProgressView(writer io.Writer, quiet bool) *ProgressView {
	if writer == nil {
		writer = os.Stderr
	}
	return &ProgressView{writer: writer, quiet: quiet}
}

// Update implements flow.View.
func (v *ProgressView) Update(s flow.Screen) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !s.LoadingVisible {
		v.finish()
		return
	}
	if v.quiet {
		return
	}

	if v.bar == nil {
		v.bar = v.newSpinner(s.Status)
	} else if s.Status != v.status {
		v.bar.Describe(describe(s.Status))
	}
	v.status = s.Status

	if err := v.bar.Add(1); err != nil {
		slog.Warn("Failed to update progress spinner", "error", err)
	}
}

// Alert implements flow.View.
func (v *ProgressView) Alert(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.finish()
	if _, err := fmt.Fprintln(v.writer, FormatError(message)); err != nil {
		slog.Warn("Failed to write alert", "error", err)
	}
}

// Active reports whether the spinner is showing.
func (v *ProgressView) Active() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.bar != nil
}

func (v *ProgressView) newSpinner(status string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(v.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription(describe(status)),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionClearOnFinish(),
	)
}

func (v *ProgressView) finish() {
	if v.bar == nil {
		return
	}
	if err := v.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress spinner", "error", err)
	}
	v.bar = nil
	v.status = ""
}

func describe(status string) string {
	return "[cyan][bold]" + status + "[reset]"
}
