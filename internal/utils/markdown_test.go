package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdownKeepsText(t *testing.T) {
	out := RenderMarkdown("Dear boss,\nI am **truly** sorry.\n\n- one\n1. two")

	assert.Contains(t, out, "Dear boss,")
	assert.Contains(t, out, "truly")
	assert.NotContains(t, out, "**")
	assert.Contains(t, out, "• one")
	assert.Contains(t, out, "1. two")
}

func TestRenderMarkdownPlainTextUnchanged(t *testing.T) {
	assert.Equal(t, "Qué jefazo.", RenderMarkdown("  Qué jefazo.  "))
}

func TestStripMarkdown(t *testing.T) {
	assert.Equal(t, "so bold and slanted and code", StripMarkdown("so **bold** and *slanted* and `code`"))
	assert.Equal(t, "an underscore_name stays", StripMarkdown("an underscore_name stays"))
	assert.Equal(t, "x italic y", StripMarkdown("x _italic_ y"))
}
