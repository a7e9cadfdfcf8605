package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

var pageTemplate = template.Must(template.New("results").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Heading}}</title>
</head>
<body>
<section id="results">
<h2>{{.Heading}}</h2>
<div class="artworks-list" id="artworksList">
{{- if .Cards}}
{{- range .Cards}}
<div class="artwork-card">
<img src="{{.ImageURL}}" alt="{{.Title}}" class="artwork-image">
<div class="artwork-info">
<h3>{{.Title}}</h3>
<p><strong>Artist:</strong> {{.Artist}}</p>
<p><strong>Year:</strong> {{.Year}}</p>
<p><strong>Medium:</strong> {{.Medium}}</p>
<p class="artwork-price">{{.Price}}</p>
</div>
</div>
{{- end}}
{{- else}}
<p>{{.ArtworksPlaceholder}}</p>
{{- end}}
</div>
<div class="composite-container">
{{- if .Composite}}
<h3>{{.CompositeTitle}}</h3>
<div class="composite-wrapper">
<img src="{{.Composite}}" alt="Wall preview" class="composite-image" id="generatedImage">
</div>
{{- else}}
<p class="composite-placeholder">{{.CompositePlaceholder}}</p>
{{- end}}
</div>
{{- if .ResetLabel}}
<a class="reset-btn" id="resetBtn" href="#">{{.ResetLabel}}</a>
{{- end}}
</section>
</body>
</html>
`))

type pageData struct {
	Heading              string
	ArtworksPlaceholder  string
	CompositeTitle       string
	CompositePlaceholder string
	ResetLabel           string
	Composite            template.URL
	Cards                []Card
}

// WriteHTML writes nodes as a standalone results page.
func WriteHTML(w io.Writer, nodes []Node) error {
	data := pageData{Heading: ResultsTitle}

	for _, n := range nodes {
		switch n := n.(type) {
		case Heading:
			data.Heading = n.Text
		case ArtworkList:
			data.Cards = n.Cards
		case Placeholder:
			switch n.Section {
			case SectionArtworks:
				data.ArtworksPlaceholder = n.Text
			case SectionComposite:
				data.CompositePlaceholder = n.Text
			}
		case CompositeImage:
			data.CompositeTitle = n.Title
			// html/template rejects data: URLs unless they are marked safe.
			if strings.HasPrefix(n.DataURL, "data:image/") {
				data.Composite = template.URL(n.DataURL) //nolint:gosec // only image data URLs
			}
		case ResetButton:
			data.ResetLabel = n.Label
		}
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render results page: %w", err)
	}
	return nil
}
