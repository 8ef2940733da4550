package models

type Encoding string

const (
	EncodingJSON      Encoding = "json"
	EncodingMultipart Encoding = "multipart"
)

// ToolBinding ties one tool's controls to its backend endpoint.
// Created once at startup and never mutated afterwards.
type ToolBinding struct {
	ID            string
	Title         string
	Tagline       string
	Endpoint      string
	Encoding      Encoding
	AcceptsImage  bool
	Placeholder   string
	LanguageGroup string
	Surface       *Surface
}
