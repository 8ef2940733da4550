package components

import (
	"github.com/Rorical/RoriRoast/ui/styles"
)

func RenderInput(inputView string, width int) string {
	return styles.InputStyle(width).Render(inputView)
}
