package reflow

import (
	"context"
	"errors"
	"testing"

	"github.com/dgallion1/bluebook/internal/pdfdoc"
)

func bluebookDoc() *pdfdoc.Memory {
	return &pdfdoc.Memory{
		Name: "/pdfs/2024_02.pdf",
		Pages: []string{
			"Table of contents\n101.01 ASPHALT PAVEMENT ........ 2",
			"101.01\nASPHALT PAVEMENT\nSome body text.\nFebruary 2024 100-2",
			"Continued on the next page.\n101.02 CONCRETE CURBS\nMore text.",
			"101.01 ASPHALT PAVEMENT\nRepeated heading must not restart.",
		},
	}
}

func TestExtractSpan(t *testing.T) {
	got, err := ExtractSpan(context.Background(), bluebookDoc(), "101", "01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Some body text.\nFebruary 2024 100-2\nContinued on the next page.\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractSpan_StopsAtFollowingHeading(t *testing.T) {
	got, err := ExtractSpan(context.Background(), bluebookDoc(), "101", "02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The next heading of the section ends collection for good.
	want := "More text.\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractSpan_UnknownSubtopic(t *testing.T) {
	got, err := ExtractSpan(context.Background(), bluebookDoc(), "101", "09")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty span, got %q", got)
	}
}

func TestExtractSpan_RepeatedCurrentHeadingIsSkipped(t *testing.T) {
	doc := &pdfdoc.Memory{Pages: []string{
		"101.01 ASPHALT\nfirst\n",
		"101.01 ASPHALT (continued)\nsecond\n101.02 CURBS",
	}}
	got, err := ExtractSpan(context.Background(), doc, "101", "01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "first\n\nsecond\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtract(t *testing.T) {
	got := Extract(context.Background(), bluebookDoc(), "101", "01")
	want := "Some body text.\n\nContinued on the next page."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	doc := bluebookDoc()
	first := Extract(context.Background(), doc, "101", "01")
	second := Extract(context.Background(), doc, "101", "01")
	if first != second {
		t.Errorf("expected byte-identical output, got %q and %q", first, second)
	}
}

func TestExtract_PageFailureYieldsSentinel(t *testing.T) {
	doc := bluebookDoc()
	doc.PageErr = map[int]error{3: errors.New("bad stream")}
	if got := Extract(context.Background(), doc, "101", "01"); got != ErrorSentinel {
		t.Errorf("expected sentinel, got %q", got)
	}
}

func TestExtract_CancelledYieldsSentinel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := Extract(ctx, bluebookDoc(), "101", "01"); got != ErrorSentinel {
		t.Errorf("expected sentinel, got %q", got)
	}
}

func TestExtractSpan_BareNumberBeforeHeading(t *testing.T) {
	doc := &pdfdoc.Memory{Pages: []string{
		"M01.01 SCOPE OF WORK\nBody.\nM01.02\nM01.03 TESTING\nMore text.\nM01.04 ANOTHER",
	}}
	got, err := ExtractSpan(context.Background(), doc, "M01", "01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "Body.\nM01.02\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
