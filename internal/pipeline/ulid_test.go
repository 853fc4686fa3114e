package pipeline

import (
	"strings"
	"testing"
	"time"
)

func TestEncodeBase32(t *testing.T) {
	var zero [16]byte
	if got := encodeBase32(zero); got != strings.Repeat("0", 26) {
		t.Errorf("zero = %q", got)
	}
	var ones [16]byte
	for i := range ones {
		ones[i] = 0xFF
	}
	if got, want := encodeBase32(ones), "7"+strings.Repeat("Z", 25); got != want {
		t.Errorf("max = %q, want %q", got, want)
	}
}

func TestJobID_TimestampPrefix(t *testing.T) {
	var s idSource
	id := s.next(time.UnixMilli(1))
	if len(id) != 26 {
		t.Fatalf("len = %d, want 26", len(id))
	}
	if got := id[:10]; got != "0000000001" {
		t.Errorf("timestamp prefix = %q, want 0000000001", got)
	}
}

func TestJobID_SortsBySubmission(t *testing.T) {
	var s idSource
	now := time.UnixMilli(1_700_000_000_000)
	a := s.next(now)
	b := s.next(now)
	c := s.next(now.Add(time.Millisecond))
	if !(a < b && b < c) {
		t.Errorf("ids out of order: %s %s %s", a, b, c)
	}
}
