package export

import (
	"fmt"
	"io"
)

// TextExporter writes the heading followed by the formatted text.
type TextExporter struct{}

func (e *TextExporter) ContentType() string { return "text/plain; charset=utf-8" }
func (e *TextExporter) Extension() string   { return ".txt" }

func (e *TextExporter) Export(w io.Writer, c Content) error {
	_, err := fmt.Fprintf(w, "%s\n\n%s\n", c.Heading(), c.Text)
	return err
}
