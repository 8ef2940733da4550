package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriRoast/internal/models"
)

func TestBuiltinCatalog(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	want := map[string]string{
		"roast":      "/api/roast",
		"compliment": "/api/toxic-compliment",
		"apology":    "/api/apology",
		"flirt":      "/api/ai-flirt",
	}
	require.Len(t, c.Tools, len(want))
	for id, endpoint := range want {
		tool, ok := c.Find(id)
		require.True(t, ok, id)
		assert.Equal(t, endpoint, tool.Endpoint)
		assert.Contains(t, tool.Languages, "English")
		assert.Contains(t, tool.Languages, "Tanglish")
	}

	roast, _ := c.Find("roast")
	assert.True(t, roast.AcceptsImage)
	assert.Equal(t, "multipart", roast.Encoding)

	apology, _ := c.Find("apology")
	assert.False(t, apology.AcceptsImage)
	assert.Equal(t, "json", apology.Encoding)
}

func TestBindingHasOwnSurface(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	a := c.Tools[0].Binding()
	b := c.Tools[0].Binding()
	assert.NotSame(t, a.Surface, b.Surface)
	assert.Equal(t, c.Tools[0].ID, a.LanguageGroup)
	require.NotNil(t, a.Surface.Copy)
	assert.False(t, a.Surface.Copy.Visible)
}

func TestParseDefaults(t *testing.T) {
	c, err := Parse([]byte(`
languages: [English, Tamil]
tools:
  - id: roast
    endpoint: /api/roast
    accepts_image: true
  - id: pun
    endpoint: /api/pun
`))
	require.NoError(t, err)

	assert.Equal(t, string(models.EncodingMultipart), c.Tools[0].Encoding)
	assert.Equal(t, string(models.EncodingJSON), c.Tools[1].Encoding)
	assert.Equal(t, []string{"English", "Tamil"}, c.Tools[1].Languages)
	assert.Equal(t, "pun", c.Tools[1].Title)
	assert.Equal(t, 1, c.Index("pun"))
	assert.Equal(t, -1, c.Index("nope"))
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"no tools":       `tools: []`,
		"duplicate":      "tools:\n  - {id: a, endpoint: /a}\n  - {id: a, endpoint: /b}",
		"no endpoint":    "tools:\n  - {id: a}",
		"bad encoding":   "tools:\n  - {id: a, endpoint: /a, encoding: xml}",
		"image via json": "tools:\n  - {id: a, endpoint: /a, encoding: json, accepts_image: true}",
		"not yaml":       "tools: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tools:\n  - {id: solo, endpoint: /api/solo}\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Tools, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
