package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
)

// HTMLExporter renders the Markdown form of the content with goldmark.
type HTMLExporter struct{}

func (e *HTMLExporter) ContentType() string { return "text/html; charset=utf-8" }
func (e *HTMLExporter) Extension() string   { return ".html" }

func (e *HTMLExporter) Export(w io.Writer, c Content) error {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(toMarkdown(c)), &buf); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	if _, err := io.WriteString(w, `<article class="subtopic">`+"\n"); err != nil {
		return err
	}
	if _, err := buf.WriteTo(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</article>\n")
	return err
}
