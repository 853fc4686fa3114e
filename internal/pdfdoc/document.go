// Package pdfdoc provides read access to the table of contents and page
// text of a PDF document.
package pdfdoc

import (
	"errors"

	"github.com/dgallion1/bluebook/internal/doctree"
)

// ErrPageRange is returned when a page number is outside the document.
var ErrPageRange = errors.New("page out of range")

// Document is an open, read-only PDF handle. Pages are 1-based.
type Document interface {
	Path() string
	TableOfContents() ([]doctree.TocEntry, error)
	PageCount() int
	PageText(page int) (string, error)
	Close() error
}

// Opener opens the document at path.
type Opener func(path string) (Document, error)
