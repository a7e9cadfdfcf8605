package model

import "encoding/json"

// DefaultBudget is the budget sent with every match request.
const DefaultBudget = 5000

// SelectionMode selects between the single-value and multi-value request shapes.
type SelectionMode string

const (
	// ModeMulti sends "categories" and "colors" arrays.
	ModeMulti SelectionMode = "multi"
	// ModeSingle sends scalar "category" and "color" fields.
	ModeSingle SelectionMode = "single"
)

// MatchRequest is built fresh for every submission.
type MatchRequest struct {
	WallImage  string
	Mode       SelectionMode
	Categories []string
	Colors     []string
	Budget     float64
}

// MarshalJSON emits the wire shape for the request's selection mode.
func (r MatchRequest) MarshalJSON() ([]byte, error) {
	budget := r.Budget
	if budget == 0 {
		budget = DefaultBudget
	}

	if r.Mode == ModeSingle {
		return json.Marshal(struct {
			WallImage string  `json:"wall_image"`
			Category  string  `json:"category"`
			Budget    float64 `json:"budget"`
			Color     string  `json:"color"`
		}{
			WallImage: r.WallImage,
			Category:  first(r.Categories),
			Budget:    budget,
			Color:     first(r.Colors),
		})
	}

	categories := r.Categories
	if categories == nil {
		categories = []string{}
	}
	colors := r.Colors
	if colors == nil {
		colors = []string{}
	}

	return json.Marshal(struct {
		WallImage  string   `json:"wall_image"`
		Categories []string `json:"categories"`
		Budget     float64  `json:"budget"`
		Colors     []string `json:"colors"`
	}{
		WallImage:  r.WallImage,
		Categories: categories,
		Budget:     budget,
		Colors:     colors,
	})
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
