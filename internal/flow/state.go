// Package flow drives a match submission from validation to rendered results.
package flow

import (
	"slices"

	"github.com/Veraticus/wallmatch/internal/config"
	"github.com/Veraticus/wallmatch/internal/encoder"
	"github.com/Veraticus/wallmatch/internal/model"
	"github.com/Veraticus/wallmatch/internal/render"
)

// State is the controller's position in the submit flow.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateEncoding
	StateRequesting
	StateRendering
	StateErrorRecovery
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateEncoding:
		return "encoding"
	case StateRequesting:
		return "requesting"
	case StateRendering:
		return "rendering"
	case StateErrorRecovery:
		return "error-recovery"
	default:
		return "unknown"
	}
}

// Busy reports whether a submission is in flight.
func (s State) Busy() bool {
	return s == StateValidating || s == StateEncoding || s == StateRequesting
}

// Submit button labels.
const (
	LabelSubmit     = config.DefaultSubmitLabel
	LabelProcessing = "Processing..."
	LabelDone       = "Process Done"
)

// Screen is a snapshot of everything a view shows.
type Screen struct {
	Preview        *encoder.Preview
	File           string
	Status         string
	SubmitLabel    string
	CategoryMirror string
	ColorMirror    string
	Categories     []string
	Colors         []string
	Results        []render.Node
	State          State
	FormVisible    bool
	LoadingVisible bool
	ResultsVisible bool
	SubmitEnabled  bool
}

// PlaceholderVisible reports whether the upload placeholder replaces the preview.
func (s Screen) PlaceholderVisible() bool {
	return s.Preview == nil
}

// Selected reports whether a facet value is highlighted.
func (s Screen) Selected(kind model.FacetKind, value string) bool {
	switch kind {
	case model.FacetCategory:
		return slices.Contains(s.Categories, value)
	case model.FacetColor:
		return slices.Contains(s.Colors, value)
	default:
		return false
	}
}

// View presents controller state. Both methods are called with the
// controller's lock held and must not call back into the Controller.
type View interface {
	Update(s Screen)
	Alert(message string)
}
