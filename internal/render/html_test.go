package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/Veraticus/wallmatch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestWriteHTML_Results(t *testing.T) {
	var buf Buffer
	NewRenderer(nil).Render(model.MatchResponse{
		Artworks: []model.Artwork{
			{Title: "Water Lilies", Artist: "Claude Monet", Price: "99.5", ImageURL: "http://img/1.jpg"},
			{Title: "Untitled"},
		},
		CompositeImage: "QUJD",
	}, &buf)

	var out bytes.Buffer
	require.NoError(t, WriteHTML(&out, buf.Nodes()))
	doc := parseHTML(t, out.Bytes())

	assert.Equal(t, "Your Matched Artworks", doc.Find("#results h2").Text())

	cards := doc.Find(".artwork-card")
	require.Equal(t, 2, cards.Length())
	first := cards.First()
	assert.Equal(t, "Water Lilies", first.Find("h3").Text())
	assert.Equal(t, "$99.50", first.Find(".artwork-price").Text())
	src, _ := first.Find("img").Attr("src")
	assert.Equal(t, "http://img/1.jpg", src)
	assert.Contains(t, cards.Eq(1).Text(), "Unknown")

	composite, ok := doc.Find("#generatedImage").Attr("src")
	require.True(t, ok)
	assert.Equal(t, "data:image/png;base64,QUJD", composite)

	assert.Equal(t, "Try Another Wall", doc.Find("#resetBtn").Text())
}

func TestWriteHTML_Placeholders(t *testing.T) {
	var buf Buffer
	NewRenderer(nil).Render(model.MatchResponse{}, &buf)

	var out bytes.Buffer
	require.NoError(t, WriteHTML(&out, buf.Nodes()))
	doc := parseHTML(t, out.Bytes())

	assert.Equal(t, 0, doc.Find(".artwork-card").Length())
	assert.Equal(t, "No artworks found", strings.TrimSpace(doc.Find("#artworksList p").Text()))
	assert.Equal(t, "Preview not available", doc.Find(".composite-placeholder").Text())
	assert.Equal(t, 0, doc.Find("#generatedImage").Length())
}

func TestWriteHTML_EscapesText(t *testing.T) {
	nodes := []Node{
		Heading{Text: ResultsTitle},
		ArtworkList{Cards: []Card{{Title: `"><script>x</script>`, Price: "$0.00"}}},
	}

	var out bytes.Buffer
	require.NoError(t, WriteHTML(&out, nodes))
	assert.NotContains(t, out.String(), "<script>x</script>")

	doc := parseHTML(t, out.Bytes())
	assert.Equal(t, `"><script>x</script>`, doc.Find(".artwork-card h3").Text())
}
