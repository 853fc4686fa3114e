package pdfdoc

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgallion1/bluebook/internal/doctree"
)

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "2024_02.pdf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestOpen_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Fatal("expected error for malformed pdf")
	}
}

func TestNewOpener_PropagatesError(t *testing.T) {
	open := NewOpener(false)
	if _, err := open(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Fatal("expected error")
	}
}

func TestMemory_PageText(t *testing.T) {
	m := &Memory{Name: "2024_02.pdf", Pages: []string{"one", "two"}}
	got, err := m.PageText(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "two" {
		t.Errorf("expected %q, got %q", "two", got)
	}
	if _, err := m.PageText(3); !errors.Is(err, ErrPageRange) {
		t.Errorf("expected ErrPageRange, got %v", err)
	}
	if _, err := m.PageText(0); !errors.Is(err, ErrPageRange) {
		t.Errorf("expected ErrPageRange, got %v", err)
	}
}

func TestMemory_PageErr(t *testing.T) {
	boom := errors.New("boom")
	m := &Memory{Pages: []string{"one"}, PageErr: map[int]error{1: boom}}
	if _, err := m.PageText(1); !errors.Is(err, boom) {
		t.Errorf("expected injected error, got %v", err)
	}
}

func TestMemoryOpener(t *testing.T) {
	doc := &Memory{
		Name: "a.pdf",
		TOC:  []doctree.TocEntry{{Level: 1, Title: "Part 100", Page: 1}},
	}
	open := MemoryOpener(map[string]*Memory{"a.pdf": doc})

	d, err := open("a.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	toc, err := d.TableOfContents()
	if err != nil || len(toc) != 1 {
		t.Fatalf("expected 1 toc entry, got %d (err %v)", len(toc), err)
	}
	d.Close()
	if !doc.Closed() {
		t.Error("expected document to be closed")
	}

	if _, err := open("b.pdf"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist for unknown path, got %v", err)
	}
}
