package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/Veraticus/wallmatch/internal/model"
	"github.com/microcosm-cc/bluemonday"
)

// Display text for the results view.
const (
	ResultsTitle     = "Your Matched Artworks"
	CompositeTitle   = "AI-Generated Preview: Your Wall with Selected Artwork"
	NoArtworksText   = "No artworks found"
	NoCompositeText  = "Preview not available"
	ResetLabel       = "Try Another Wall"
	UnknownArtist    = "Unknown"
	NotAvailable     = "N/A"
	defaultImageMIME = "data:image/png;base64,"
)

// Renderer builds result nodes from a match response.
type Renderer struct {
	onReset   func()
	sanitizer *bluemonday.Policy
}

// NewRenderer creates a renderer whose reset button calls onReset.
func NewRenderer(onReset func()) *Renderer {
	return &Renderer{
		onReset:   onReset,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Render replaces the container's content with the results for resp.
func (r *Renderer) Render(resp model.MatchResponse, target Container) {
	target.Clear()
	target.Append(Heading{Text: ResultsTitle})

	if len(resp.Artworks) > 0 {
		cards := make([]Card, 0, len(resp.Artworks))
		for _, artwork := range resp.Artworks {
			cards = append(cards, r.CardFor(artwork))
		}
		target.Append(ArtworkList{Cards: cards})
	} else {
		target.Append(Placeholder{Section: SectionArtworks, Text: NoArtworksText})
	}

	if resp.CompositeImage != "" {
		target.Append(CompositeImage{
			Title:   CompositeTitle,
			DataURL: NormalizeComposite(resp.CompositeImage),
		})
	} else {
		target.Append(Placeholder{Section: SectionComposite, Text: NoCompositeText})
	}

	target.Append(ResetButton{Label: ResetLabel, Activate: r.onReset})
}

// CardFor applies display fallbacks to an artwork.
func (r *Renderer) CardFor(a model.Artwork) Card {
	return Card{
		Title:    r.clean(a.Title),
		Artist:   fallback(r.clean(a.Artist), UnknownArtist),
		Year:     fallback(r.clean(a.Year.String()), NotAvailable),
		Medium:   fallback(r.clean(a.Medium), NotAvailable),
		Price:    fmt.Sprintf("$%.2f", a.PriceValue()),
		ImageURL: strings.TrimSpace(a.ImageURL),
	}
}

// NormalizeComposite prefixes a bare base64 payload with a PNG data URL header.
func NormalizeComposite(image string) string {
	if strings.HasPrefix(image, "data:image") {
		return image
	}
	return defaultImageMIME + image
}

// clean strips markup from server-provided text.
func (r *Renderer) clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(r.sanitizer.Sanitize(s)))
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
