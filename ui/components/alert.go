package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriRoast/internal/models"
	"github.com/Rorical/RoriRoast/ui/styles"
)

func RenderAlert(alert *models.Alert, width, height int) string {
	if alert == nil {
		return ""
	}
	box := styles.AlertStyle(width).Render(alert.Message + "\n\n[enter] OK")
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
