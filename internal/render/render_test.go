package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rorical/RoriRoast/internal/models"
)

func TestRenderTogglesCopyControl(t *testing.T) {
	outcomes := []models.Outcome{
		models.LoadingOutcome(),
		models.SuccessOutcome("nice"),
		models.ErrorOutcome("bad"),
		models.SuccessOutcome("again"),
		models.LoadingOutcome(),
		models.ErrorOutcome("bad again"),
	}

	// every outcome from every prior state
	for _, prior := range outcomes {
		for _, next := range outcomes {
			surface := models.NewSurface("out")
			Render(surface, prior)
			Render(surface, next)

			assert.Equal(t, next, surface.Outcome)
			assert.Equal(t, next.Kind == models.Success, surface.Copy.Visible,
				"prior=%s next=%s", prior.Kind, next.Kind)
		}
	}
}

func TestRenderReplacesContent(t *testing.T) {
	surface := models.NewSurface("out")
	Render(surface, models.SuccessOutcome("first"))
	Render(surface, models.ErrorOutcome("second"))

	assert.Equal(t, models.Error, surface.Outcome.Kind)
	assert.Equal(t, "second", surface.Outcome.Text)

	Render(surface, models.LoadingOutcome())
	assert.Empty(t, surface.Outcome.Text)
}

func TestRenderWithoutCopyControl(t *testing.T) {
	surface := &models.Surface{ID: "contact"}
	Render(surface, models.SuccessOutcome("sent"))

	assert.Equal(t, "sent", surface.Outcome.Text)
	_, ok := surface.CopyText()
	assert.False(t, ok)
}

func TestCopyTextOnlyForSuccess(t *testing.T) {
	surface := models.NewSurface("out")
	Render(surface, models.SuccessOutcome("copy me"))
	text, ok := surface.CopyText()
	assert.True(t, ok)
	assert.Equal(t, "copy me", text)

	Render(surface, models.ErrorOutcome("Error: nope"))
	_, ok = surface.CopyText()
	assert.False(t, ok)
}

func TestRenderNilSurface(t *testing.T) {
	assert.NotPanics(t, func() { Render(nil, models.LoadingOutcome()) })
}
