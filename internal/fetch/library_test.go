package fetch

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLibraryList(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "2022_12.pdf", "2024_02.pdf", "notes.pdf", "readme.txt", "2023_08.pdf")
	if err := os.Mkdir(filepath.Join(dir, "old.pdf"), 0o755); err != nil {
		t.Fatal(err)
	}

	lib := NewLibrary(dir, map[string]string{
		"2024_02.pdf": "https://example.test/Blue_Book_02_2024.pdf",
	})
	entries, err := lib.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Entry{
		{File: "2024_02.pdf", Name: "February, 2024 RIDOT Bluebook", URL: "https://example.test/Blue_Book_02_2024.pdf"},
		{File: "2023_08.pdf", Name: "August, 2023 RIDOT Bluebook"},
		{File: "2022_12.pdf", Name: "December, 2022 RIDOT Bluebook"},
		{File: "notes.pdf", Name: "notes.pdf"},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("got %+v\nwant %+v", entries, want)
	}
}

func TestLibraryList_EmptyDir(t *testing.T) {
	entries, err := NewLibrary(t.TempDir(), nil).List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", entries)
	}
}

func TestLibraryList_MissingDir(t *testing.T) {
	_, err := NewLibrary(filepath.Join(t.TempDir(), "nope"), nil).List()
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLibraryPath(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "2024_02.pdf")
	lib := NewLibrary(dir, nil)

	p, err := lib.Path("2024_02.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != filepath.Join(dir, "2024_02.pdf") {
		t.Errorf("got %q", p)
	}

	if _, err := lib.Path("2023_08.pdf"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: expected fs.ErrNotExist, got %v", err)
	}
	for _, bad := range []string{"", "..", "../2024_02.pdf", "sub/2024_02.pdf", "2024_02.txt"} {
		if _, err := lib.Path(bad); !errors.Is(err, ErrBadFileName) {
			t.Errorf("%q: expected ErrBadFileName, got %v", bad, err)
		}
	}
}

func TestLibraryPageURL(t *testing.T) {
	lib := NewLibrary(t.TempDir(), map[string]string{"2024_02.pdf": "https://example.test/bb.pdf"})
	if got := lib.PageURL("2024_02.pdf", 12); got != "https://example.test/bb.pdf#page=12" {
		t.Errorf("got %q", got)
	}
	if got := lib.PageURL("2024_02.pdf", 0); got != "https://example.test/bb.pdf" {
		t.Errorf("got %q", got)
	}
	if got := lib.PageURL("2023_08.pdf", 3); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
