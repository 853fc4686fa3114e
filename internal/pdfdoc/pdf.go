package pdfdoc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"

	"github.com/dgallion1/bluebook/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/unicode/norm"
)

// PDF reads page text with ledongthuc/pdf and the outline with pdfcpu.
// When FallbackPdftotext is set, pages the Go reader cannot decode are
// retried with the pdftotext binary if it is installed.
type PDF struct {
	FallbackPdftotext bool

	path   string
	file   *os.File
	reader *pdflib.Reader

	toc       []doctree.TocEntry
	tocErr    error
	tocLoaded bool
}

// Open opens the PDF at path. The caller must Close it.
func Open(path string) (*PDF, error) {
	f, reader, err := openReader(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &PDF{path: path, file: f, reader: reader}, nil
}

// NewOpener returns an Opener for real PDF files.
func NewOpener(fallbackPdftotext bool) Opener {
	return func(path string) (Document, error) {
		d, err := Open(path)
		if err != nil {
			return nil, err
		}
		d.FallbackPdftotext = fallbackPdftotext
		return d, nil
	}
}

// openReader wraps pdflib.Open, which panics on some malformed files.
func openReader(path string) (f *os.File, r *pdflib.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			if f != nil {
				f.Close()
			}
			f, r, err = nil, nil, fmt.Errorf("malformed pdf: %v", p)
		}
	}()
	f, r, err = pdflib.Open(path)
	if err != nil && f != nil {
		f.Close()
		return nil, nil, err
	}
	return f, r, err
}

func (d *PDF) Path() string { return d.path }

func (d *PDF) PageCount() int { return d.reader.NumPage() }

// PageText returns the plain text of a 1-based page, NFC-normalized.
func (d *PDF) PageText(page int) (string, error) {
	if page < 1 || page > d.PageCount() {
		return "", fmt.Errorf("page %d of %d: %w", page, d.PageCount(), ErrPageRange)
	}
	text, err := d.plainText(page)
	if err != nil && d.FallbackPdftotext {
		text, err = pdftotextPage(d.path, page)
	}
	if err != nil {
		return "", fmt.Errorf("extract page %d: %w", page, err)
	}
	return norm.NFC.String(text), nil
}

func (d *PDF) plainText(page int) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("decode page: %v", p)
		}
	}()
	p := d.reader.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}

func pdftotextPage(path string, page int) (string, error) {
	n := strconv.Itoa(page)
	cmd := exec.Command("pdftotext", "-f", n, "-l", n, path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}

// TableOfContents flattens the PDF outline into document-order entries.
// A document without an outline yields an empty slice.
func (d *PDF) TableOfContents() ([]doctree.TocEntry, error) {
	if d.tocLoaded {
		return d.toc, d.tocErr
	}
	d.tocLoaded = true
	d.toc, d.tocErr = readOutline(d.file)
	return d.toc, d.tocErr
}

func readOutline(rs io.ReadSeeker) ([]doctree.TocEntry, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek: %w", err)
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	bms, err := api.Bookmarks(rs, conf)
	if errors.Is(err, api.ErrNoOutlines) {
		return []doctree.TocEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read outline: %w", err)
	}

	toc := []doctree.TocEntry{}
	var walk func(bms []pdfcpu.Bookmark, level int)
	walk = func(bms []pdfcpu.Bookmark, level int) {
		for _, bm := range bms {
			toc = append(toc, doctree.TocEntry{
				Level: level,
				Title: norm.NFC.String(bm.Title),
				Page:  bm.PageFrom,
			})
			walk(bm.Kids, level+1)
		}
	}
	walk(bms, 1)
	return toc, nil
}

// Close releases the underlying file.
func (d *PDF) Close() error {
	return d.file.Close()
}
