package tui

import (
	"github.com/Veraticus/wallmatch/internal/flow"
	"github.com/Veraticus/wallmatch/internal/model"
)

// Controller updates.
type screenMsg struct {
	screen flow.Screen
}

type alertMsg struct {
	text string
}

// Async operation results.
type catalogLoadedMsg struct {
	catalog model.Catalog
}

type fileSelectedMsg struct {
	err  error
	path string
}

type submitDoneMsg struct {
	err error
}

type compositeSavedMsg struct {
	err  error
	path string
}

// Pane identifies the focused form section.
type Pane int

const (
	PaneFile Pane = iota
	PaneCategories
	PaneColors
	PaneSubmit
	paneCount
)

func (p Pane) String() string {
	switch p {
	case PaneFile:
		return "Image"
	case PaneCategories:
		return "Categories"
	case PaneColors:
		return "Colors"
	case PaneSubmit:
		return "Submit"
	default:
		return "Unknown"
	}
}
