package update

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/Rorical/RoriRoast/internal/attachment"
)

// droppedFiles interprets pasted text as a terminal file drop. Terminals
// paste dropped files as absolute paths or file:// URIs, quoted or
// backslash-escaped and separated by spaces or newlines. Text only counts
// as a drop when every path is absolute and names an existing file, so
// typing a bare file name still reaches the input.
func droppedFiles(text string) []attachment.File {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	// a single path containing spaces, pasted verbatim
	if f, ok := openDropped(text); ok {
		return []attachment.File{f}
	}

	tokens := splitPaths(text)
	if len(tokens) == 0 {
		return nil
	}
	files := make([]attachment.File, 0, len(tokens))
	for _, token := range tokens {
		f, ok := openDropped(token)
		if !ok {
			return nil
		}
		files = append(files, f)
	}
	return files
}

func openDropped(p string) (attachment.File, bool) {
	p = fromURI(p)
	if !filepath.IsAbs(p) {
		return attachment.File{}, false
	}
	f, err := attachment.Open(p)
	if err != nil {
		return attachment.File{}, false
	}
	return f, true
}

func fromURI(p string) string {
	if !strings.HasPrefix(p, "file://") {
		return p
	}
	u, err := url.Parse(p)
	if err != nil {
		return p
	}
	return u.Path
}

// splitPaths tokenizes like a shell: whitespace separates, quotes group
// and a backslash escapes the next character.
func splitPaths(text string) []string {
	var (
		tokens  []string
		current strings.Builder
		quote   rune
		escaped bool
		started bool
	)

	flush := func() {
		if started {
			tokens = append(tokens, current.String())
		}
		current.Reset()
		started = false
	}

	for _, r := range text {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			started = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			started = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			current.WriteRune(r)
			started = true
		}
	}
	flush()
	return tokens
}
