package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriRoast/internal/models"
	"github.com/Rorical/RoriRoast/ui/styles"
)

// RenderTabs renders the tool switcher followed by the active tool's heading
func RenderTabs(bindings []models.ToolBinding, active int) string {
	tabs := make([]string, 0, len(bindings))
	for i, b := range bindings {
		if i == active {
			tabs = append(tabs, styles.ActiveTabStyle().Render(b.Title))
		} else {
			tabs = append(tabs, styles.TabStyle().Render(b.Title))
		}
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	sb.WriteString("\n\n")
	if active >= 0 && active < len(bindings) {
		sb.WriteString(styles.TitleStyle().Render(bindings[active].Title))
		sb.WriteString("\n")
		if tagline := bindings[active].Tagline; tagline != "" {
			sb.WriteString(styles.TaglineStyle().Render(tagline))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// RenderLanguages renders one selector group. No button is highlighted
// when the group has no active value.
func RenderLanguages(buttons []string, isActive func(string) bool) string {
	rendered := make([]string, 0, len(buttons))
	for _, b := range buttons {
		if isActive(b) {
			rendered = append(rendered, styles.ActiveLanguageStyle().Render(b))
		} else {
			rendered = append(rendered, styles.LanguageStyle().Render(b))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
