package utils

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	orderedItem   = regexp.MustCompile(`^(\d+)\.\s+(.*)`)
	inlineCode    = regexp.MustCompile("`[^`]+`")
	boldText      = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicStar    = regexp.MustCompile(`(^|[^*])\*([^*]+)\*`)
	italicUnder   = regexp.MustCompile(`(^|\s)_([^_]+)_`)
	paragraphGaps = regexp.MustCompile(`\n\s*\n`)
)

func codeStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Padding(0, 1)
}

func boldStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

func italicStyle() lipgloss.Style {
	return lipgloss.NewStyle().Italic(true)
}

func listStyle() lipgloss.Style {
	return lipgloss.NewStyle().MarginLeft(2)
}

// RenderMarkdown applies light markdown rendering to generated text.
// Paragraphs and line breaks are kept: apology letters and roasts are
// laid out by the model and reflowing them reads badly.
func RenderMarkdown(text string) string {
	paragraphs := paragraphGaps.Split(strings.TrimSpace(text), -1)

	rendered := make([]string, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}

		lines := strings.Split(paragraph, "\n")
		for i, line := range lines {
			lines[i] = renderLine(strings.TrimSpace(line))
		}
		rendered = append(rendered, strings.Join(lines, "\n"))
	}

	return strings.Join(rendered, "\n\n")
}

func renderLine(line string) string {
	for _, prefix := range []string{"### ", "## ", "# "} {
		if title, found := strings.CutPrefix(line, prefix); found {
			return boldStyle().Render(renderInline(title))
		}
	}

	for _, prefix := range []string{"- ", "* "} {
		if item, found := strings.CutPrefix(line, prefix); found {
			return listStyle().Render("• " + renderInline(item))
		}
	}

	if m := orderedItem.FindStringSubmatch(line); len(m) == 3 {
		return listStyle().Render(m[1] + ". " + renderInline(m[2]))
	}

	if quote, found := strings.CutPrefix(line, "> "); found {
		return italicStyle().Render("│ " + renderInline(quote))
	}

	return renderInline(line)
}

func renderInline(line string) string {
	// code first so its content is left alone
	line = inlineCode.ReplaceAllStringFunc(line, func(match string) string {
		return codeStyle().Render(strings.Trim(match, "`"))
	})

	line = boldText.ReplaceAllStringFunc(line, func(match string) string {
		return boldStyle().Render(strings.Trim(match, "*"))
	})

	line = italicStar.ReplaceAllStringFunc(line, func(match string) string {
		m := italicStar.FindStringSubmatch(match)
		return m[1] + italicStyle().Render(m[2])
	})

	line = italicUnder.ReplaceAllStringFunc(line, func(match string) string {
		m := italicUnder.FindStringSubmatch(match)
		return m[1] + italicStyle().Render(m[2])
	})

	return line
}

// StripMarkdown removes the markers RenderMarkdown styles, for plain output.
func StripMarkdown(text string) string {
	text = boldText.ReplaceAllString(text, "$1")
	text = italicStar.ReplaceAllString(text, "$1$2")
	text = italicUnder.ReplaceAllString(text, "$1$2")
	return inlineCode.ReplaceAllStringFunc(text, func(match string) string {
		return strings.Trim(match, "`")
	})
}
