package components

import (
	"strings"

	"github.com/Rorical/RoriRoast/internal/models"
	"github.com/Rorical/RoriRoast/internal/utils"
	"github.com/Rorical/RoriRoast/ui/styles"
)

// RenderSurface draws a tool's output region and, below it, its copy control.
func RenderSurface(surface *models.Surface, spinnerView string, copied bool, width int) string {
	if surface == nil {
		return ""
	}

	var b strings.Builder
	switch surface.Outcome.Kind {
	case models.Loading:
		b.WriteString("  " + spinnerView + " generating")
	case models.Success:
		b.WriteString(styles.ResponseStyle(width).Render(utils.RenderMarkdown(surface.Outcome.Text)))
	case models.Error:
		b.WriteString(styles.ErrorStyle(width).Render(surface.Outcome.Text))
	default:
		return ""
	}
	b.WriteString("\n")

	if surface.Copy != nil && surface.Copy.Visible {
		label := "[ctrl+y] " + surface.Copy.Label
		if copied {
			label = "Copied!"
		}
		b.WriteString(styles.CopyStyle().Render(label))
		b.WriteString("\n")
	}
	return b.String()
}
