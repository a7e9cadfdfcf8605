package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/wallmatch/internal/flow"
	"github.com/Veraticus/wallmatch/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// appTitle heads every screen.
const appTitle = "WallMatch"

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var content string
	switch {
	case m.screen.LoadingVisible:
		content = m.renderLoading()
	case m.screen.ResultsVisible:
		content = m.renderResults()
	default:
		content = m.renderForm()
	}

	return m.wrapWithBorder(content)
}

// renderForm renders the upload and facet form.
func (m Model) renderForm() string {
	sections := []string{
		m.theme.Title.Render(appTitle),
		m.theme.Subtitle.Render("Find artworks that suit your wall"),
		"",
		m.renderFileSection(),
		"",
		m.renderFacets(),
		"",
		m.renderSelectionSummary(),
		"",
		m.renderSubmit(),
	}

	if msg := m.renderMessages(); msg != "" {
		sections = append(sections, "", msg)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderFileSection shows the path input and either the preview or the placeholder.
func (m Model) renderFileSection() string {
	var detail string
	if m.screen.PlaceholderVisible() {
		detail = lipgloss.NewStyle().Foreground(m.theme.Muted).
			Render("No image selected. Type a path and press Enter.")
	} else {
		p := m.screen.Preview
		detail = fmt.Sprintf("%s  %s  %s",
			m.theme.Bold.Render(p.Name),
			m.theme.Subtitle.Render(p.MIME),
			m.theme.Subtitle.Render(formatSize(p.Size)),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.input.View(), detail)
}

// renderFacets lays out the category and color lists.
func (m Model) renderFacets() string {
	categories := m.categories.View(func(v string) bool {
		return m.screen.Selected(model.FacetCategory, v)
	})
	colors := m.colors.View(func(v string) bool {
		return m.screen.Selected(model.FacetColor, v)
	})

	if m.contentWidth() >= 76 {
		return lipgloss.JoinHorizontal(lipgloss.Top, categories, "  ", colors)
	}
	return lipgloss.JoinVertical(lipgloss.Left, categories, colors)
}

// renderSelectionSummary shows the serialized selections.
func (m Model) renderSelectionSummary() string {
	label := lipgloss.NewStyle().Foreground(m.theme.Muted)
	value := func(s string) string {
		if s == "" {
			return label.Render("none")
		}
		return m.theme.Normal.Render(s)
	}

	return fmt.Sprintf("%s %s   %s %s",
		label.Render("Categories:"), value(m.screen.CategoryMirror),
		label.Render("Colors:"), value(m.screen.ColorMirror),
	)
}

// renderSubmit renders the submit button.
func (m Model) renderSubmit() string {
	style := m.theme.Button
	if !m.screen.SubmitEnabled {
		style = m.theme.Disabled
	}

	button := style.Render(m.screen.SubmitLabel)
	if m.focus == PaneSubmit {
		return lipgloss.NewStyle().Foreground(m.theme.Primary).Render("> ") + button
	}
	return "  " + button
}

// renderMessages renders the latest alert or notice.
func (m Model) renderMessages() string {
	switch {
	case m.alert != "":
		return m.theme.StatusError.Render(m.alert)
	case m.notice != "":
		return m.theme.StatusSuccess.Render(m.notice)
	default:
		return ""
	}
}

// renderLoading renders the in-flight screen.
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render(appTitle),
		m.spinner.View()+" "+m.theme.Normal.Render(m.screen.Status),
		"",
		m.theme.Disabled.Render(m.screen.SubmitLabel),
	)

	return lipgloss.Place(
		m.contentWidth(),
		max(m.height-4, 1),
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// renderResults renders the scrollable results.
func (m Model) renderResults() string {
	sections := []string{m.results.View()}
	if msg := m.renderMessages(); msg != "" {
		sections = append(sections, msg)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHelp renders the help screen.
func (m Model) renderHelp() string {
	full := m.help
	full.ShowAll = true
	full.Width = 0

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.BorderedBox.Render(
			lipgloss.JoinVertical(
				lipgloss.Left,
				m.theme.Title.Render(appTitle+" - Help"),
				full.View(m.keymap),
				"",
				lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press ? or Esc to close help"),
			),
		),
	)
}

// wrapWithBorder adds the status bar and help footer.
func (m Model) wrapWithBorder(content string) string {
	parts := []string{content, m.renderStatusBar()}
	if m.config.ShowHelp {
		parts = append(parts, m.help.View(m.keymap))
	}

	return m.theme.RoundedBox.
		Padding(0, 1).
		Width(m.width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	left := stateLabel(m.screen)
	right := "? Help"
	if m.screen.FormVisible {
		right = m.focus.String() + " | " + right
	}

	spacing := max(m.contentWidth()-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return m.theme.StatusInfo.Render(left) +
		strings.Repeat(" ", spacing) +
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(right)
}

func stateLabel(s flow.Screen) string {
	switch {
	case s.ResultsVisible:
		return "Results"
	case s.LoadingVisible:
		return "Working"
	default:
		return "Form"
	}
}

func formatSize(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(n)/1024/1024)
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
