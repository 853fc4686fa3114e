package pdfdoc

import (
	"fmt"
	"io/fs"

	"github.com/dgallion1/bluebook/internal/doctree"
)

// Memory is a Document whose outline and page text are held in memory.
// Pages[0] is page 1.
type Memory struct {
	Name    string
	TOC     []doctree.TocEntry
	Pages   []string
	TOCErr  error
	PageErr map[int]error // per-page failures, keyed by 1-based page

	closed bool
}

func (m *Memory) Path() string { return m.Name }

func (m *Memory) TableOfContents() ([]doctree.TocEntry, error) {
	if m.TOCErr != nil {
		return nil, m.TOCErr
	}
	return m.TOC, nil
}

func (m *Memory) PageCount() int { return len(m.Pages) }

func (m *Memory) PageText(page int) (string, error) {
	if err := m.PageErr[page]; err != nil {
		return "", err
	}
	if page < 1 || page > len(m.Pages) {
		return "", fmt.Errorf("page %d of %d: %w", page, len(m.Pages), ErrPageRange)
	}
	return m.Pages[page-1], nil
}

func (m *Memory) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (m *Memory) Closed() bool { return m.closed }

// MemoryOpener serves Memory documents by path. Unknown paths fail with an
// error wrapping fs.ErrNotExist.
func MemoryOpener(docs map[string]*Memory) Opener {
	return func(path string) (Document, error) {
		d, ok := docs[path]
		if !ok {
			return nil, fmt.Errorf("open pdf %s: %w", path, fs.ErrNotExist)
		}
		d.closed = false
		return d, nil
	}
}
