package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Rorical/RoriRoast/internal/models"
)

//go:embed catalog.yaml
var builtin []byte

// Tool describes one generation tool
type Tool struct {
	ID              string   `yaml:"id"`
	Title           string   `yaml:"title"`
	Tagline         string   `yaml:"tagline"`
	Endpoint        string   `yaml:"endpoint"`
	Encoding        string   `yaml:"encoding"`
	AcceptsImage    bool     `yaml:"accepts_image"`
	Placeholder     string   `yaml:"placeholder"`
	Languages       []string `yaml:"languages"`
	DefaultLanguage string   `yaml:"default_language"`
}

type Catalog struct {
	Languages []string `yaml:"languages"`
	Tools     []Tool   `yaml:"tools"`
}

// Load reads the catalog at path, or the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	data := builtin
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	// Set defaults
	for i := range c.Tools {
		t := &c.Tools[i]
		if t.Encoding == "" {
			t.Encoding = string(models.EncodingJSON)
			if t.AcceptsImage {
				t.Encoding = string(models.EncodingMultipart)
			}
		}
		if len(t.Languages) == 0 {
			t.Languages = c.Languages
		}
		if t.Title == "" {
			t.Title = t.ID
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Tools) == 0 {
		return fmt.Errorf("catalog defines no tools")
	}

	seen := make(map[string]bool, len(c.Tools))
	for _, t := range c.Tools {
		if t.ID == "" {
			return fmt.Errorf("tool without id")
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate tool id %q", t.ID)
		}
		seen[t.ID] = true

		if t.Endpoint == "" {
			return fmt.Errorf("tool %q has no endpoint", t.ID)
		}
		switch models.Encoding(t.Encoding) {
		case models.EncodingJSON, models.EncodingMultipart:
		default:
			return fmt.Errorf("tool %q has unknown encoding %q", t.ID, t.Encoding)
		}
		if t.AcceptsImage && models.Encoding(t.Encoding) != models.EncodingMultipart {
			return fmt.Errorf("tool %q accepts images but is not multipart", t.ID)
		}
	}
	return nil
}

// Find returns the tool with the given id
func (c *Catalog) Find(id string) (Tool, bool) {
	for _, t := range c.Tools {
		if t.ID == id {
			return t, true
		}
	}
	return Tool{}, false
}

// Index returns the position of the tool with the given id, or -1
func (c *Catalog) Index(id string) int {
	for i, t := range c.Tools {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Binding builds the static binding for t with a fresh output surface.
func (t Tool) Binding() models.ToolBinding {
	return models.ToolBinding{
		ID:            t.ID,
		Title:         t.Title,
		Tagline:       t.Tagline,
		Endpoint:      t.Endpoint,
		Encoding:      models.Encoding(t.Encoding),
		AcceptsImage:  t.AcceptsImage,
		Placeholder:   t.Placeholder,
		LanguageGroup: t.ID,
		Surface:       models.NewSurface(t.ID + "-response"),
	}
}
