package tui

import (
	"context"
	"time"

	"github.com/Veraticus/wallmatch/internal/config"
	tea "github.com/charmbracelet/bubbletea"
)

// catalogTimeout bounds the facet catalog requests made on start.
const catalogTimeout = 10 * time.Second

// waitForScreen delivers the next controller snapshot.
func (m Model) waitForScreen() tea.Cmd {
	screens := m.bridge.screens
	return func() tea.Msg {
		return screenMsg{screen: <-screens}
	}
}

// waitForAlert delivers the next controller alert.
func (m Model) waitForAlert() tea.Cmd {
	alerts := m.bridge.alerts
	return func() tea.Msg {
		return alertMsg{text: <-alerts}
	}
}

// loadCatalog fetches the facet values from the configured source.
func (m Model) loadCatalog() tea.Cmd {
	source := m.config.CatalogSource
	if source == nil {
		return nil
	}

	ctx := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, catalogTimeout)
		defer cancel()

		return catalogLoadedMsg{catalog: source.Catalog(ctx)}
	}
}

// selectFile hands the typed path to the controller.
func (m Model) selectFile(raw string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		path := config.ExpandPath(raw)
		return fileSelectedMsg{path: path, err: ctrl.SelectFile(path)}
	}
}

// submit runs the whole submit flow off the update loop.
func (m Model) submit() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return submitDoneMsg{err: ctrl.Submit(ctx)}
	}
}

// saveComposite downloads the composite preview.
func (m Model) saveComposite() tea.Cmd {
	ctrl, dir := m.ctrl, m.config.SaveDir
	return func() tea.Msg {
		path, err := ctrl.SaveComposite(dir)
		return compositeSavedMsg{path: path, err: err}
	}
}
