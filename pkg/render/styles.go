// Package render draws navigation trees and documents for terminals and
// exports documents as Markdown or HTML.
package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gnana997/rndocs/pkg/appstate"
	"github.com/gnana997/rndocs/pkg/catalog"
)

// Styles is the terminal palette for one theme.
type Styles struct {
	Title    lipgloss.Style
	Category lipgloss.Style
	Active   lipgloss.Style
	Item     lipgloss.Style
	Muted    lipgloss.Style
	Code     lipgloss.Style
	Warning  lipgloss.Style
	Badge    map[catalog.Platform]lipgloss.Style
}

// NewStyles returns the palette for theme.
func NewStyles(theme appstate.Theme) Styles {
	accent, muted, code := lipgloss.Color("63"), lipgloss.Color("245"), lipgloss.Color("236")
	if theme == appstate.ThemeDark {
		accent, muted, code = lipgloss.Color("141"), lipgloss.Color("242"), lipgloss.Color("252")
	}

	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Category: lipgloss.NewStyle().Bold(true),
		Active:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Item:     lipgloss.NewStyle().PaddingLeft(2),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Code:     lipgloss.NewStyle().Foreground(code).PaddingLeft(4),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Badge: map[catalog.Platform]lipgloss.Style{
			catalog.PlatformIOS:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			catalog.PlatformAndroid: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
			catalog.PlatformAll:     lipgloss.NewStyle().Foreground(muted),
		},
	}
}

// badge renders a platform tag such as "[iOS]", or "" for untagged props.
func (s Styles) badge(p catalog.Platform) string {
	if p == "" {
		return ""
	}
	style, ok := s.Badge[p]
	if !ok {
		style = s.Muted
	}
	return style.Render("[" + string(p) + "]")
}
