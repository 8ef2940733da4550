package render

import "github.com/Rorical/RoriRoast/internal/models"

// Render replaces the surface content with the outcome and toggles the
// surface's copy control: visible on success, hidden otherwise.
func Render(surface *models.Surface, outcome models.Outcome) {
	if surface == nil {
		return
	}
	surface.Outcome = outcome
	if surface.Copy != nil {
		surface.Copy.Visible = outcome.Kind == models.Success
	}
}

// Reset returns the surface to its idle state.
func Reset(surface *models.Surface) {
	Render(surface, models.Outcome{})
}
