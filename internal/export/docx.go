package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXExporter writes a Word document with the heading as a Heading1
// paragraph and one paragraph per block of text.
type DOCXExporter struct{}

func (e *DOCXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}
func (e *DOCXExporter) Extension() string { return ".docx" }

func (e *DOCXExporter) Export(w io.Writer, c Content) error {
	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().Style("Heading1").AddText(c.Heading()).Bold()

	for _, block := range strings.Split(c.Text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimLeft(line, "\t")
		}
		doc.AddParagraph().AddText(strings.Join(lines, " "))
	}
	if c.PageURL != "" {
		doc.AddParagraph().AddText("Source: " + c.PageURL).Italic()
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}
