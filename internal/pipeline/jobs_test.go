package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgallion1/bluebook/internal/doctree"
)

func TestHashFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "2024_02.pdf")
	if err := os.WriteFile(p, []byte("hello world"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := HashFile(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// SHA-256 of "hello world".
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if got != want {
		t.Errorf("HashFile = %q, want %q", got, want)
	}

	if _, err := HashFile(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNewJob(t *testing.T) {
	job := NewJob("2024_02.pdf", "/pdfs/2024_02.pdf", "February, 2024 RIDOT Bluebook")
	if len(job.ID) != 26 {
		t.Errorf("expected 26-char ULID, got %q", job.ID)
	}
	if job.Status != StatusQueued || job.Path() != "/pdfs/2024_02.pdf" {
		t.Errorf("unexpected job %+v", job)
	}
	if other := NewJob("a.pdf", "a.pdf", ""); other.ID == job.ID {
		t.Error("expected distinct job IDs")
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusReadingParts, "parts"},
		{StatusReadingSections, "sections"},
		{StatusReadingSubtopics, "subtopics"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	if job.HasErrors() {
		t.Fatal("new job should have no errors")
	}
	job.AddError("section 101 failed")
	job.AddError("section 203 failed")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "section 101 failed" {
		t.Errorf("expected first error %q, got %q", "section 101 failed", snap.Progress.Errors[0])
	}
	if !job.HasErrors() {
		t.Error("expected HasErrors after AddError")
	}
}

func TestJob_Progress(t *testing.T) {
	job := &Job{ID: "progress-test", UpdatedAt: time.Now()}
	job.SetCounts(2, 5)
	job.SectionDone(3)
	job.SectionDone(0)
	job.SectionDone(4)

	snap := job.Snapshot()
	want := Progress{Parts: 2, Sections: 5, SectionsProcessed: 3, Subtopics: 7, Errors: []string{}}
	if snap.Progress.Parts != want.Parts || snap.Progress.Sections != want.Sections ||
		snap.Progress.SectionsProcessed != want.SectionsProcessed || snap.Progress.Subtopics != want.Subtopics {
		t.Errorf("progress = %+v, want %+v", snap.Progress, want)
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil errors slice.
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if snap.Outline != nil {
		t.Error("expected no outline before completion")
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_FindCompleted(t *testing.T) {
	store := NewJobStore(time.Hour)
	done := &Job{ID: "done", ContentHash: "abc", Status: StatusCompleted, UpdatedAt: time.Now()}
	done.SetResult(&doctree.DocTree{Title: "t"})
	running := &Job{ID: "running", ContentHash: "abc", Status: StatusReadingParts, UpdatedAt: time.Now()}
	store.Put(done)
	store.Put(running)

	if got := store.FindCompleted("abc", "running"); got != done {
		t.Errorf("expected completed job, got %+v", got)
	}
	if got := store.FindCompleted("abc", "done"); got != nil {
		t.Errorf("excluded job returned: %+v", got)
	}
	if got := store.FindCompleted("", ""); got != nil {
		t.Error("empty hash must not match")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	// Add a fresh job.
	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}
