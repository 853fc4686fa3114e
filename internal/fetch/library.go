package fetch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrBadFileName is returned for names that are not plain .pdf file names
// inside the library directory.
var ErrBadFileName = errors.New("bad file name")

// Entry is one PDF in the library.
type Entry struct {
	File string `json:"file"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Library is a directory of Bluebook PDFs plus an optional catalog of the
// URLs they were published at.
type Library struct {
	dir     string
	sources map[string]string
}

// NewLibrary returns a Library rooted at dir. sources maps file names to
// their published URLs and may be nil.
func NewLibrary(dir string, sources map[string]string) *Library {
	if sources == nil {
		sources = map[string]string{}
	}
	return &Library{dir: dir, sources: sources}
}

func (l *Library) Dir() string { return l.dir }

// List returns the PDFs in the library, newest publication first. Files
// that do not follow the YYYY_MM.pdf convention sort after the rest by
// name.
func (l *Library) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read library %s: %w", l.dir, err)
	}
	entries := []Entry{}
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".pdf") {
			continue
		}
		entries = append(entries, Entry{
			File: de.Name(),
			Name: DisplayName(de.Name()),
			URL:  l.sources[de.Name()],
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		ci := canonicalName.MatchString(strings.TrimSuffix(entries[i].File, ".pdf"))
		cj := canonicalName.MatchString(strings.TrimSuffix(entries[j].File, ".pdf"))
		if ci != cj {
			return ci
		}
		if ci {
			return entries[i].File > entries[j].File
		}
		return entries[i].File < entries[j].File
	})
	return entries, nil
}

// Path resolves a file name to its path in the library. The file must
// exist; a missing file yields an error wrapping fs.ErrNotExist.
func (l *Library) Path(file string) (string, error) {
	if file == "" || file != filepath.Base(file) || file == ".." || !strings.HasSuffix(file, ".pdf") {
		return "", fmt.Errorf("%q: %w", file, ErrBadFileName)
	}
	p := filepath.Join(l.dir, file)
	info, err := os.Stat(p)
	if err != nil {
		return "", fmt.Errorf("library file %s: %w", file, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("library file %s: %w", file, fs.ErrNotExist)
	}
	return p, nil
}

// PageURL returns the published URL of file anchored at page, or "" when
// the file has no catalog entry.
func (l *Library) PageURL(file string, page int) string {
	u, ok := l.sources[file]
	if !ok || u == "" {
		return ""
	}
	if page < 1 {
		return u
	}
	return fmt.Sprintf("%s#page=%d", u, page)
}
