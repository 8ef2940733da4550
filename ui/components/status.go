package components

import (
	"fmt"

	"github.com/Rorical/RoriRoast/ui/styles"
)

func RenderStatus(status string, inFlight int, width int) string {
	statusContent := status
	if inFlight > 0 {
		statusContent += fmt.Sprintf(" · %d pending", inFlight)
	}

	return styles.StatusStyle(width).Render(statusContent)
}
