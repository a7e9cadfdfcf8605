package render

import (
	"testing"

	"github.com/Veraticus/wallmatch/internal/model"
	tuitesting "github.com/Veraticus/wallmatch/internal/tui/testing"
	"github.com/Veraticus/wallmatch/internal/tui/themes"
	"github.com/stretchr/testify/assert"
)

func TestTerminal_ContainsContentInOrder(t *testing.T) {
	var buf Buffer
	NewRenderer(nil).Render(model.MatchResponse{
		Artworks: []model.Artwork{
			{Title: "Water Lilies", Artist: "Claude Monet", Price: "1200"},
			{Title: "Starry Night"},
		},
		CompositeImage: "data:image/jpeg;base64,QUJD",
	}, &buf)

	out := tuitesting.StripANSI(Terminal(buf.Nodes(), themes.Default, 100))

	assert.True(t, tuitesting.ContainsInOrder(out,
		"Your Matched Artworks",
		"1. Water Lilies", "Claude Monet", "$1200.00",
		"2. Starry Night", "Unknown", "$0.00",
		"AI-Generated Preview", "image/jpeg",
		"Try Another Wall",
	), out)
}

func TestTerminal_Placeholders(t *testing.T) {
	var buf Buffer
	NewRenderer(nil).Render(model.MatchResponse{}, &buf)

	out := tuitesting.StripANSI(Terminal(buf.Nodes(), themes.Default, 0))
	assert.Contains(t, out, "No artworks found")
	assert.Contains(t, out, "Preview not available")
}
