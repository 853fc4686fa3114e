// Package export renders subtopic content and document outlines in the
// formats offered for download.
package export

import (
	"fmt"
	"io"
	"strings"
)

// Content is one subtopic's formatted text plus the labels needed to
// present it on its own.
type Content struct {
	File     string // library file name
	Section  string // "101"
	Subtopic string // "101.01"
	Title    string // full heading line, "101.01 ASPHALT PAVEMENT"
	Text     string // output of reflow.FormatText
	PageURL  string // published URL anchored at the heading page, if known
}

// Heading returns the title, falling back to the subtopic number.
func (c Content) Heading() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Subtopic
}

// Exporter writes Content in one format.
type Exporter interface {
	ContentType() string
	Extension() string
	Export(w io.Writer, c Content) error
}

// Formats lists the accepted format names.
var Formats = []string{"text", "markdown", "html", "docx"}

// ForFormat returns the exporter for a format name. The empty name
// selects plain text.
func ForFormat(format string) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text", "txt":
		return &TextExporter{}, nil
	case "markdown", "md":
		return &MarkdownExporter{}, nil
	case "html":
		return &HTMLExporter{}, nil
	case "docx":
		return &DOCXExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// Filename returns a download name such as "2024_02-101.01.md".
func Filename(c Content, e Exporter) string {
	base := strings.TrimSuffix(c.File, ".pdf")
	if base == "" {
		base = "bluebook"
	}
	return base + "-" + c.Subtopic + e.Extension()
}
