package attachment

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const imagePrefix = "image/"

// extension lookups that mime.TypeByExtension misses on minimal systems
var extTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".svg":  "image/svg+xml",
	".heic": "image/heic",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".json": "application/json",
	".pdf":  "application/pdf",
}

var typeAliases = map[string]string{
	"image/jpg":   "image/jpeg",
	"image/pjpeg": "image/jpeg",
	"image/x-png": "image/png",
}

// File is a handle to a local file together with its declared media type.
type File struct {
	Name string
	Path string
	Type string
	Size int64
}

// IsImage reports whether the declared type carries the image media-type prefix.
func (f File) IsImage() bool {
	return strings.HasPrefix(f.Type, imagePrefix)
}

// Open stats path and derives the declared type from its extension,
// sniffing the content when the extension is unknown.
func Open(path string) (File, error) {
	path = strings.TrimSpace(path)
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%s is a directory", path)
	}

	typ := TypeByName(path)
	if typ == "" {
		typ, err = sniff(path)
		if err != nil {
			return File{}, err
		}
	}

	return File{
		Name: filepath.Base(path),
		Path: path,
		Type: typ,
		Size: info.Size(),
	}, nil
}

// TypeByName returns the normalised media type for a file name, or "".
func TypeByName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	if t, ok := extTypes[ext]; ok {
		return t
	}
	return normalizeType(mime.TypeByExtension(ext))
}

func normalizeType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	if alias, ok := typeAliases[t]; ok {
		return alias
	}
	return t
}

func sniff(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return normalizeType(http.DetectContentType(head[:n])), nil
}

// ReadAll returns the raw bytes of the file
func (f File) ReadAll() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	return data, nil
}

// Preview is the display data derived from a staged image.
type Preview struct {
	DataURL string
	Width   int
	Height  int
	Bytes   int
}

// Decode reads the file into a data URL. Dimensions are filled in when the
// image header is one of the registered formats.
func Decode(f File) (Preview, error) {
	data, err := f.ReadAll()
	if err != nil {
		return Preview{}, err
	}

	p := Preview{
		DataURL: "data:" + f.Type + ";base64," + base64.StdEncoding.EncodeToString(data),
		Bytes:   len(data),
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		p.Width = cfg.Width
		p.Height = cfg.Height
	}
	return p, nil
}
