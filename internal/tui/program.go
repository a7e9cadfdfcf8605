package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/wallmatch/internal/flow"
	tea "github.com/charmbracelet/bubbletea"
)

// Bridge implements flow.View for a Bubble Tea program. Screens are
// coalesced so only the newest snapshot waits for the update loop.
type Bridge struct {
	screens chan flow.Screen
	alerts  chan string
}

// Ensure we implement the interface.
var _ flow.View = (*Bridge)(nil)

// alertBuffer bounds alerts waiting for the update loop.
const alertBuffer = 8

// NewBridge creates a bridge with empty queues.
func NewBridge() *Bridge {
	return &Bridge{
		screens: make(chan flow.Screen, 1),
		alerts:  make(chan string, alertBuffer),
	}
}

// Update implements flow.View. It never blocks.
func (b *Bridge) Update(s flow.Screen) {
	for {
		select {
		case b.screens <- s:
			return
		default:
		}

		select {
		case <-b.screens:
		default:
		}
	}
}

// Alert implements flow.View. Alerts beyond the buffer are dropped.
func (b *Bridge) Alert(message string) {
	select {
	case b.alerts <- message:
	default:
		slog.Warn("Dropped alert", "alert", message)
	}
}

// Program wraps the Bubble Tea program driving the form.
type Program struct {
	program *tea.Program
	model   Model
}

// New creates the TUI for ctrl. ctrl must have been built with bridge as its view.
func New(ctx context.Context, ctrl *flow.Controller, bridge *Bridge, opts ...Option) *Program {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m := newModel(ctx, ctrl, bridge, cfg)

	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	}
	if cfg.MouseSupport {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	return &Program{
		model:   m,
		program: tea.NewProgram(m, programOpts...),
	}
}

// Start runs the program until the user quits.
func (p *Program) Start() error {
	if _, err := p.program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// Quit stops the program.
func (p *Program) Quit() {
	if p.program != nil {
		p.program.Quit()
	}
}

// Model returns the initial model for testing.
func (p *Program) Model() Model {
	return p.model
}
