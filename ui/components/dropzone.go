package components

import (
	"fmt"

	"github.com/Rorical/RoriRoast/internal/attachment"
	"github.com/Rorical/RoriRoast/ui/styles"
)

// RenderDropZone shows either the upload prompt or the decoded preview
func RenderDropZone(stager *attachment.Stager, zone *attachment.DropZone, width int) string {
	style := styles.DropZoneStyle(width, zone.Active())

	preview, ok := stager.Preview()
	file, _ := stager.Pending()
	if !ok {
		return style.Render("Drop an image here or press ctrl+o to browse")
	}

	label := styles.PreviewStyle().Render("🖼  " + file.Name)
	details := fmt.Sprintf("%s · %s", file.Type, humanBytes(preview.Bytes))
	if preview.Width > 0 && preview.Height > 0 {
		details = fmt.Sprintf("%dx%d · %s", preview.Width, preview.Height, details)
	}
	return style.Render(label + "  " + details + "   [ctrl+x] remove")
}

func humanBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
