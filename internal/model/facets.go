package model

// FacetKind names a selectable facet.
type FacetKind string

const (
	// FacetCategory is the artwork category facet.
	FacetCategory FacetKind = "category"
	// FacetColor is the dominant color facet.
	FacetColor FacetKind = "color"
)

// ColorOption is a named color as served by GET /api/colors.
type ColorOption struct {
	Name string `json:"name" yaml:"name"`
	Hex  string `json:"hex" yaml:"hex"`
}

// DefaultCategories mirrors the backend's category list.
func DefaultCategories() []string {
	return []string{"classical", "aesthetic", "impressive"}
}

// DefaultColors mirrors the backend's color list.
func DefaultColors() []ColorOption {
	return []ColorOption{
		{Name: "Red", Hex: "#FF0000"},
		{Name: "Blue", Hex: "#0000FF"},
		{Name: "Green", Hex: "#00FF00"},
		{Name: "Yellow", Hex: "#FFFF00"},
		{Name: "Orange", Hex: "#FFA500"},
		{Name: "Purple", Hex: "#800080"},
		{Name: "Pink", Hex: "#FFC0CB"},
		{Name: "Brown", Hex: "#8B4513"},
		{Name: "Black", Hex: "#000000"},
		{Name: "White", Hex: "#FFFFFF"},
	}
}

// Catalog holds the facet values a user can choose from.
type Catalog struct {
	Categories []string      `json:"categories" yaml:"categories"`
	Colors     []ColorOption `json:"colors" yaml:"colors"`
}

// DefaultCatalog returns the built-in facet catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		Categories: DefaultCategories(),
		Colors:     DefaultColors(),
	}
}

// ColorNames returns the color names in catalog order.
func (c Catalog) ColorNames() []string {
	names := make([]string, 0, len(c.Colors))
	for _, color := range c.Colors {
		names = append(names, color.Name)
	}
	return names
}

// Values returns the selectable values for a facet.
func (c Catalog) Values(kind FacetKind) []string {
	switch kind {
	case FacetCategory:
		return c.Categories
	case FacetColor:
		return c.ColorNames()
	default:
		return nil
	}
}

// HexFor returns the hex code for a color name, or "" when unknown.
func (c Catalog) HexFor(name string) string {
	for _, color := range c.Colors {
		if color.Name == name {
			return color.Hex
		}
	}
	return ""
}
