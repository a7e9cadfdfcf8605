package tui

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/Veraticus/wallmatch/internal/common"
	"github.com/Veraticus/wallmatch/internal/flow"
	"github.com/Veraticus/wallmatch/internal/model"
	"github.com/Veraticus/wallmatch/internal/render"
	"github.com/Veraticus/wallmatch/internal/tui/components"
	"github.com/Veraticus/wallmatch/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the main TUI state. Everything about the submission lives in
// the controller; the model keeps only cursor, focus and layout state.
type Model struct {
	ctx        context.Context
	ctrl       *flow.Controller
	bridge     *Bridge
	theme      themes.Theme
	alert      string
	notice     string
	config     Config
	keymap     KeyMap
	screen     flow.Screen
	help       help.Model
	input      textinput.Model
	results    viewport.Model
	spinner    spinner.Model
	categories components.FacetListModel
	colors     components.FacetListModel
	focus      Pane
	width      int
	height     int
	showHelp   bool
	quitting   bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, ctrl *flow.Controller, bridge *Bridge, cfg Config) Model {
	input := textinput.New()
	input.Prompt = "Wall image: "
	input.Placeholder = "~/Pictures/wall.jpg"
	input.CharLimit = 4096

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = spin.Style.Foreground(cfg.Theme.Primary)

	m := Model{
		ctx:        ctx,
		ctrl:       ctrl,
		bridge:     bridge,
		theme:      cfg.Theme,
		config:     cfg,
		keymap:     DefaultKeyMap(),
		screen:     ctrl.Screen(),
		help:       help.New(),
		input:      input,
		spinner:    spin,
		results:    viewport.New(cfg.Width, cfg.Height),
		categories: components.NewFacetList(model.FacetCategory, cfg.Catalog, cfg.Theme),
		colors:     components.NewFacetList(model.FacetColor, cfg.Catalog, cfg.Theme),
		width:      cfg.Width,
		height:     cfg.Height,
	}
	m.setFocus(PaneFile)
	m.handleResize()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.waitForScreen(),
		m.waitForAlert(),
		textinput.Blink,
		m.spinner.Tick,
	}
	if cmd := m.loadCatalog(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()

	case screenMsg:
		m.applyScreen(msg.screen)
		cmds = append(cmds, m.waitForScreen())

	case alertMsg:
		m.alert = msg.text
		m.notice = ""
		cmds = append(cmds, m.waitForAlert())

	case catalogLoadedMsg:
		m.config.Catalog = msg.catalog
		m.categories = components.NewFacetList(model.FacetCategory, msg.catalog, m.theme)
		m.colors = components.NewFacetList(model.FacetColor, msg.catalog, m.theme)
		m.setFocus(m.focus)
		m.handleResize()

	case fileSelectedMsg:
		m.applyScreen(m.ctrl.Screen())
		if msg.err != nil {
			slog.Debug("File selection failed", "path", msg.path, "error", msg.err)
			break
		}
		m.alert = ""
		m.notice = "Using " + filepath.Base(msg.path)
		m.setFocus(PaneCategories)

	case components.FacetToggledMsg:
		m.ctrl.Toggle(msg.Kind, msg.Value)
		m.alert = ""
		m.applyScreen(m.ctrl.Screen())

	case submitDoneMsg:
		if errors.Is(msg.err, common.ErrSubmissionInFlight) {
			m.notice = "A submission is already running"
		}
		m.applyScreen(m.ctrl.Screen())

	case compositeSavedMsg:
		if msg.err != nil {
			m.alert = "Cannot download preview: " + msg.err.Error()
			break
		}
		m.alert = ""
		m.notice = "Saved preview to " + msg.path

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		if m.focus == PaneFile {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleKey routes key presses by the screen currently shown.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, m.keymap.Help, m.keymap.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	if m.screen.FormVisible && m.focus == PaneFile {
		return m.handleFileKey(msg)
	}

	switch {
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keymap.ClearScreen):
		return m, tea.ClearScreen
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case m.screen.ResultsVisible:
		return m.handleResultsKey(msg)
	case m.screen.FormVisible:
		return m.handleFormKey(msg)
	default:
		return m, nil
	}
}

// handleFileKey handles typing into the path input.
func (m Model) handleFileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.NextPane):
		m.setFocus(m.focus + 1)
		return m, nil
	case key.Matches(msg, m.keymap.PrevPane):
		m.setFocus(m.focus - 1)
		return m, nil
	case key.Matches(msg, m.keymap.ChooseFile):
		return m, m.selectFile(m.input.Value())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleFormKey handles the facet lists and submit button.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.NextPane):
		m.setFocus(m.focus + 1)
		return m, nil
	case key.Matches(msg, m.keymap.PrevPane):
		m.setFocus(m.focus - 1)
		return m, nil
	case key.Matches(msg, m.keymap.Submit),
		m.focus == PaneSubmit && msg.Type == tea.KeyEnter:
		if !m.screen.SubmitEnabled {
			return m, nil
		}
		m.alert = ""
		m.notice = ""
		return m, m.submit()
	}

	var cmd tea.Cmd
	switch m.focus {
	case PaneCategories:
		m.categories, cmd = m.categories.Update(msg)
	case PaneColors:
		m.colors, cmd = m.colors.Update(msg)
	}
	return m, cmd
}

// handleResultsKey handles the results view.
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Reset):
		m.activateReset()
		return m, nil
	case key.Matches(msg, m.keymap.Download):
		return m, m.saveComposite()
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

// activateReset presses the rendered reset button.
func (m *Model) activateReset() {
	for _, n := range m.screen.Results {
		if r, ok := n.(render.ResetButton); ok && r.Activate != nil {
			r.Activate()
			break
		}
	}

	m.alert = ""
	m.notice = ""
	m.input.Reset()
	m.applyScreen(m.ctrl.Screen())
	m.setFocus(PaneFile)
}

// applyScreen stores a controller snapshot and refreshes dependent views.
func (m *Model) applyScreen(s flow.Screen) {
	m.screen = s
	if s.ResultsVisible {
		m.results.SetContent(render.Terminal(s.Results, m.theme, m.contentWidth()))
		m.results.GotoTop()
	}
}

// setFocus moves keyboard focus, wrapping around the form panes.
func (m *Model) setFocus(p Pane) {
	m.focus = (p%paneCount + paneCount) % paneCount

	m.categories.Blur()
	m.colors.Blur()
	m.input.Blur()

	switch m.focus {
	case PaneFile:
		m.input.Focus()
	case PaneCategories:
		m.categories.Focus()
	case PaneColors:
		m.colors.Focus()
	}
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	width := m.contentWidth()
	if width >= 76 {
		m.categories.Resize(width/2 - 2)
		m.colors.Resize(width/2 - 2)
	} else {
		m.categories.Resize(width)
		m.colors.Resize(width)
	}

	m.input.Width = max(width-len(m.input.Prompt)-2, 10)
	m.help.Width = width
	m.results.Width = width
	m.results.Height = max(m.height-6, 3)
	if m.screen.ResultsVisible {
		m.results.SetContent(render.Terminal(m.screen.Results, m.theme, width))
	}
}

// contentWidth is the width inside the outer border.
func (m Model) contentWidth() int {
	return max(m.width-4, 20)
}

// Screen returns the snapshot the model last rendered.
func (m Model) Screen() flow.Screen {
	return m.screen
}

// Focus returns the focused pane.
func (m Model) Focus() Pane {
	return m.focus
}
