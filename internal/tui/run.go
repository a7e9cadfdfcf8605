package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Veraticus/wallmatch/internal/flow"
	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the form until the user quits or ctx is cancelled.
func Run(ctx context.Context, ctrl *flow.Controller, bridge *Bridge, opts ...Option) error {
	if ctrl == nil {
		return fmt.Errorf("controller is required")
	}
	if bridge == nil {
		return fmt.Errorf("bridge is required")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Restore the terminal even if the program dies mid-frame.
	cleanupTerminal := func() {
		_, _ = os.Stdout.Write([]byte("\033[?1049l")) // Exit alternate screen
		_, _ = os.Stdout.Write([]byte("\033[?25h"))   // Show cursor
		_, _ = os.Stdout.Write([]byte("\033[m"))      // Reset colors
	}
	defer cleanupTerminal()

	err := New(ctx, ctrl, bridge, opts...).Start()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
