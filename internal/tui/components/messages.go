package components

import "github.com/Veraticus/wallmatch/internal/model"

// FacetToggledMsg reports a facet value chosen in a FacetListModel.
type FacetToggledMsg struct {
	Kind  model.FacetKind
	Value string
}
