package export

import (
	"io"
	"strings"
)

// MarkdownExporter rewrites the tab-indented bullets of formatted text as
// Markdown list items.
type MarkdownExporter struct{}

func (e *MarkdownExporter) ContentType() string { return "text/markdown; charset=utf-8" }
func (e *MarkdownExporter) Extension() string   { return ".md" }

func (e *MarkdownExporter) Export(w io.Writer, c Content) error {
	_, err := io.WriteString(w, toMarkdown(c))
	return err
}

func toMarkdown(c Content) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(c.Heading())
	b.WriteString("\n\n")
	for _, line := range strings.Split(c.Text, "\n") {
		b.WriteString(markdownLine(line))
		b.WriteByte('\n')
	}
	if c.PageURL != "" {
		b.WriteString("\n[Source](")
		b.WriteString(c.PageURL)
		b.WriteString(")\n")
	}
	return b.String()
}

func markdownLine(line string) string {
	trimmed := strings.TrimLeft(line, "\t")
	for _, bullet := range []string{"• ", "● "} {
		if rest, ok := strings.CutPrefix(trimmed, bullet); ok {
			return "- " + rest
		}
	}
	if rest, ok := strings.CutPrefix(trimmed, "○ "); ok {
		return "  - " + rest
	}
	return trimmed
}
