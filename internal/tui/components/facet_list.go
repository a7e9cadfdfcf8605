package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/wallmatch/internal/model"
	"github.com/Veraticus/wallmatch/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FacetOption is one selectable facet value.
type FacetOption struct {
	Value string
	Hex   string
}

// FacetListModel is a cursor list over the values of one facet.
// Highlight state is read from the selected callback on every render.
type FacetListModel struct {
	theme   themes.Theme
	kind    model.FacetKind
	title   string
	options []FacetOption
	cursor  int
	width   int
	focused bool
}

// NewFacetList creates a list for kind with options from the catalog.
func NewFacetList(kind model.FacetKind, catalog model.Catalog, theme themes.Theme) FacetListModel {
	return FacetListModel{
		theme:   theme,
		kind:    kind,
		title:   facetTitle(kind),
		options: OptionsFor(kind, catalog),
	}
}

// OptionsFor lists the catalog's values for kind.
func OptionsFor(kind model.FacetKind, catalog model.Catalog) []FacetOption {
	var options []FacetOption
	switch kind {
	case model.FacetCategory:
		for _, c := range catalog.Categories {
			options = append(options, FacetOption{Value: c})
		}
	case model.FacetColor:
		for _, c := range catalog.Colors {
			options = append(options, FacetOption{Value: c.Name, Hex: c.Hex})
		}
	}
	return options
}

func facetTitle(kind model.FacetKind) string {
	switch kind {
	case model.FacetCategory:
		return "Categories"
	case model.FacetColor:
		return "Colors"
	default:
		return string(kind)
	}
}

// Update moves the cursor and emits FacetToggledMsg on selection.
func (m FacetListModel) Update(msg tea.Msg) (FacetListModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused || len(m.options) == 0 {
		return m, nil
	}

	switch keyMsg.String() {
	case "j", "down":
		m.cursor = min(m.cursor+1, len(m.options)-1)
	case "k", "up":
		m.cursor = max(m.cursor-1, 0)
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = len(m.options) - 1
	case " ", "x", "enter":
		toggled := FacetToggledMsg{Kind: m.kind, Value: m.options[m.cursor].Value}
		return m, func() tea.Msg { return toggled }
	}

	return m, nil
}

// View renders the list. selected reports the highlight state of a value.
func (m FacetListModel) View(selected func(value string) bool) string {
	title := m.theme.Subtitle.Render(m.title)
	if m.focused {
		title = lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true).Render(m.title)
	}

	lines := make([]string, 0, len(m.options)+1)
	lines = append(lines, title)

	for i, opt := range m.options {
		prefix := "  "
		if m.focused && i == m.cursor {
			prefix = lipgloss.NewStyle().Foreground(m.theme.Primary).Render("> ")
		}

		mark := "[ ]"
		style := m.theme.Normal
		if selected(opt.Value) {
			mark = "[x]"
			style = m.theme.Selected
		}

		label := opt.Value
		if opt.Hex != "" {
			label = fmt.Sprintf("%s %s", m.theme.Swatch(opt.Hex), opt.Value)
		}
		lines = append(lines, prefix+style.Render(mark)+" "+label)
	}

	box := m.theme.RoundedBox
	if m.width > 0 {
		box = box.Width(m.width)
	}
	return box.Render(strings.Join(lines, "\n"))
}

// Focus gives the list keyboard focus.
func (m *FacetListModel) Focus() {
	m.focused = true
}

// Blur removes keyboard focus.
func (m *FacetListModel) Blur() {
	m.focused = false
}

// Focused reports whether the list has focus.
func (m FacetListModel) Focused() bool {
	return m.focused
}

// Resize sets the rendered width.
func (m *FacetListModel) Resize(width int) {
	m.width = width
}

// Kind returns the facet this list edits.
func (m FacetListModel) Kind() model.FacetKind {
	return m.kind
}

// Cursor returns the highlighted row.
func (m FacetListModel) Cursor() int {
	return m.cursor
}

// Len returns the number of options.
func (m FacetListModel) Len() int {
	return len(m.options)
}
