package pipeline

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dgallion1/bluebook/internal/doctree"
)

// JobStatus represents the state of an indexing job.
type JobStatus string

const (
	StatusQueued           JobStatus = "queued"
	StatusReadingParts     JobStatus = "reading_parts"
	StatusReadingSections  JobStatus = "reading_sections"
	StatusReadingSubtopics JobStatus = "reading_subtopics"
	StatusCompleted        JobStatus = "completed"
	StatusFailed           JobStatus = "failed"
	StatusPartial          JobStatus = "partial"
	StatusCached           JobStatus = "cached"
)

// Job tracks the outline indexing of one library document.
type Job struct {
	mu sync.Mutex

	ID    string `json:"job_id"`
	File  string `json:"file"`
	Title string `json:"title"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	path   string
	result *doctree.DocTree
	errors []string
}

// Progress tracks indexing progress.
type Progress struct {
	Parts             int      `json:"parts"`
	Sections          int      `json:"sections"`
	SectionsProcessed int      `json:"sections_processed"`
	Subtopics         int      `json:"subtopics"`
	Errors            []string `json:"errors"`
}

// NewJob returns a queued job for the document at path.
func NewJob(file, path, title string) *Job {
	now := time.Now()
	return &Job{
		ID:        NewJobID(),
		File:      file,
		Title:     title,
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
		path:      path,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// FindCompleted returns a finished job, other than exclude, whose document
// had the given content hash.
func (s *JobStore) FindCompleted(hash, exclude string) *Job {
	if hash == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, job := range s.jobs {
		if id == exclude {
			continue
		}
		job.mu.Lock()
		match := job.ContentHash == hash && job.Status == StatusCompleted && job.result != nil
		job.mu.Unlock()
		if match {
			return job
		}
	}
	return nil
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// Path returns the library path of the document being indexed.
func (j *Job) Path() string { return j.path }

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// HasErrors reports whether any error was recorded.
func (j *Job) HasErrors() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.errors) > 0
}

// SetCounts records the number of parts and sections found.
func (j *Job) SetCounts(parts, sections int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Parts = parts
	j.Progress.Sections = sections
	j.UpdatedAt = time.Now()
}

// SectionDone records one processed section and its subtopic count.
func (j *Job) SectionDone(subtopics int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.SectionsProcessed++
	j.Progress.Subtopics += subtopics
	j.UpdatedAt = time.Now()
}

func (j *Job) SetContentHash(hash string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = hash
}

// SetResult stores the finished outline.
func (j *Job) SetResult(tree *doctree.DocTree) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = tree
	j.UpdatedAt = time.Now()
}

// Result returns the outline, or nil while the job is running.
func (j *Job) Result() *doctree.DocTree {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string           `json:"job_id"`
	File        string           `json:"file"`
	Title       string           `json:"title"`
	Status      JobStatus        `json:"status"`
	Phase       string           `json:"phase"`
	Progress    Progress         `json:"progress"`
	ContentHash string           `json:"content_hash,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Outline     *doctree.DocTree `json:"outline,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := append([]string{}, j.errors...)
	return JobSnapshot{
		ID:          j.ID,
		File:        j.File,
		Title:       j.Title,
		Status:      j.Status,
		Phase:       j.Phase,
		ContentHash: j.ContentHash,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
		Outline:     j.result,
		Progress: Progress{
			Parts:             j.Progress.Parts,
			Sections:          j.Progress.Sections,
			SectionsProcessed: j.Progress.SectionsProcessed,
			Subtopics:         j.Progress.Subtopics,
			Errors:            errs,
		},
	}
}

// HashFile returns the SHA-256 of the file at path as a hex string.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
