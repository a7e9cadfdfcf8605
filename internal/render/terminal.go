package render

import (
	"fmt"
	"strings"

	"github.com/Veraticus/wallmatch/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// Terminal formats nodes for a terminal of the given width.
func Terminal(nodes []Node, theme themes.Theme, width int) string {
	if width <= 0 {
		width = 80
	}

	sections := make([]string, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case Heading:
			sections = append(sections, theme.Title.Render(n.Text))
		case ArtworkList:
			sections = append(sections, renderCards(n.Cards, theme, width))
		case Placeholder:
			sections = append(sections, lipgloss.NewStyle().Foreground(theme.Muted).Render(n.Text))
		case CompositeImage:
			sections = append(sections, renderComposite(n, theme))
		case ResetButton:
			sections = append(sections, "", theme.Button.Render(n.Label))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderCards(cards []Card, theme themes.Theme, width int) string {
	cardWidth := width - 4
	if cardWidth > 60 {
		cardWidth = 60
	}

	rendered := make([]string, 0, len(cards))
	for i, c := range cards {
		label := func(k, v string) string {
			return lipgloss.NewStyle().Foreground(theme.Muted).Render(k+":") + " " + theme.Normal.Render(v)
		}

		body := lipgloss.JoinVertical(lipgloss.Left,
			theme.Bold.Render(fmt.Sprintf("%d. %s", i+1, c.Title)),
			label("Artist", c.Artist),
			label("Year", c.Year),
			label("Medium", c.Medium),
			theme.Price.Render(c.Price),
			lipgloss.NewStyle().Foreground(theme.Muted).Render(c.ImageURL),
		)
		rendered = append(rendered, theme.Card.Width(cardWidth).Render(body))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

func renderComposite(c CompositeImage, theme themes.Theme) string {
	mimeType, data, err := DecodeDataURL(c.DataURL)
	detail := "embedded image"
	if err == nil {
		detail = fmt.Sprintf("%s, %.1f KB", mimeType, float64(len(data))/1024)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		theme.Subtitle.Render(c.Title),
		theme.Normal.Render(strings.Join([]string{"Composite ready", "(" + detail + ")"}, " ")),
	)
}
