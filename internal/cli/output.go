package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/wallmatch/internal/model"
	"github.com/Veraticus/wallmatch/internal/render"
	"github.com/Veraticus/wallmatch/internal/tui/themes"
	"gopkg.in/yaml.v3"
)

// OutputFormat selects how match results are written.
type OutputFormat string

// Supported output formats.
const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
	OutputHTML OutputFormat = "html"
)

// OutputFormats lists the accepted --output values.
var OutputFormats = []OutputFormat{OutputText, OutputJSON, OutputYAML, OutputHTML}

// ParseOutputFormat validates an --output value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range OutputFormats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want text, json, yaml or html)", s)
}

// Result is what a match command prints.
type Result struct {
	Response      model.MatchResponse `json:"response" yaml:"response"`
	CompositePath string              `json:"composite_path,omitempty" yaml:"composite_path,omitempty"`
	Nodes         []render.Node       `json:"-" yaml:"-"`
}

// WriteResult writes r to w in the given format. width applies to text output.
func WriteResult(w io.Writer, format OutputFormat, r Result, width int) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil

	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to flush YAML: %w", err)
		}
		return nil

	case OutputHTML:
		return render.WriteHTML(w, r.Nodes)

	default:
		text := render.Terminal(r.Nodes, themes.Default, width)
		if r.CompositePath != "" {
			text += "\n\n" + FormatSuccess("Saved preview to "+r.CompositePath)
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
		return nil
	}
}

// WriteCatalog prints the facet catalog.
func WriteCatalog(w io.Writer, format OutputFormat, catalog model.Catalog) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(catalog)
	case OutputYAML:
		return yaml.NewEncoder(w).Encode(catalog)
	}

	var categories strings.Builder
	for _, c := range catalog.Categories {
		categories.WriteString(c + "\n")
	}

	var colors strings.Builder
	for _, c := range catalog.Colors {
		colors.WriteString(FormatSwatch(c.Name, c.Hex) + SubtleStyle.Render(" "+c.Hex) + "\n")
	}

	var b strings.Builder
	b.WriteString(RenderBox(FrameIcon+" Categories", strings.TrimRight(categories.String(), "\n")) + "\n")
	b.WriteString(RenderBox(PaletteIcon+" Colors", strings.TrimRight(colors.String(), "\n")) + "\n")

	_, err := fmt.Fprint(w, b.String())
	return err
}
