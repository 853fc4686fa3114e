package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgallion1/bluebook/internal/doctree"
)

// Outliner answers the structure queries an indexing job is built from.
// *bluebook.Service implements it.
type Outliner interface {
	ListParts(ctx context.Context, path string) ([]doctree.Part, error)
	ListSections(ctx context.Context, path, partTitle string) ([]doctree.Section, error)
	ListSubtopics(ctx context.Context, path, section string) ([]doctree.Subtopic, error)
}

// Worker processes a single indexing job.
type Worker struct {
	svc  Outliner
	jobs *JobStore
	hash func(path string) (string, error)
	log  *slog.Logger

	maxConcurrentSections int
}

func NewWorker(svc Outliner, jobs *JobStore, hash func(string) (string, error), log *slog.Logger, maxSections int) *Worker {
	if maxSections <= 0 {
		maxSections = 1
	}
	return &Worker{
		svc:                   svc,
		jobs:                  jobs,
		hash:                  hash,
		log:                   log,
		maxConcurrentSections: maxSections,
	}
}

// Process builds the full outline for a job's document.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "file", job.File)

	// Phase 0: Reuse an outline of identical content.
	if w.hash != nil {
		hash, err := w.hash(job.Path())
		if err != nil {
			log.Warn("hash failed, proceeding", "error", err)
		} else {
			job.SetContentHash(hash)
			if prev := w.jobs.FindCompleted(hash, job.ID); prev != nil {
				tree := *prev.Result()
				tree.Title, tree.File = job.Title, job.File
				log.Info("identical document already indexed", "previous_job_id", prev.ID)
				job.SetCounts(tree.Count(doctree.KindPart), tree.Count(doctree.KindSection))
				job.SetResult(&tree)
				job.SetStatus(StatusCached, "done")
				return
			}
		}
	}

	// Phase 1: Parts
	job.SetStatus(StatusReadingParts, "parts")
	parts, err := w.svc.ListParts(ctx, job.Path())
	if err != nil {
		log.Error("read parts failed", "error", err)
		job.AddError(fmt.Sprintf("parts: %s", err))
		job.SetStatus(StatusFailed, "parts")
		return
	}

	tree := &doctree.DocTree{
		Title:    job.Title,
		File:     job.File,
		Children: []*doctree.DocNode{},
	}

	// Phase 2: Sections per part.
	job.SetStatus(StatusReadingSections, "sections")
	type pendingSection struct {
		node   *doctree.DocNode
		number string
	}
	var pending []pendingSection
	sectionCount := 0
	for _, part := range parts {
		partNode := &doctree.DocNode{Kind: doctree.KindPart, Title: part.Title, Page: part.Page}
		tree.Children = append(tree.Children, partNode)

		sections, err := w.svc.ListSections(ctx, job.Path(), part.Title)
		if err != nil {
			if isCancelled(err) {
				job.AddError(err.Error())
				job.SetStatus(StatusFailed, "sections")
				return
			}
			log.Error("read sections failed", "part", part.Title, "error", err)
			job.AddError(fmt.Sprintf("part %q: %s", part.Title, err))
			continue
		}
		for _, sec := range sections {
			secNode := &doctree.DocNode{
				Kind:   doctree.KindSection,
				Title:  sec.Title,
				Number: sec.Number,
				Page:   sec.Page,
				Empty:  !sec.HasSubsections,
			}
			partNode.Children = append(partNode.Children, secNode)
			sectionCount++
			if sec.HasSubsections && sec.Number != "" {
				pending = append(pending, pendingSection{node: secNode, number: sec.Number})
			} else {
				job.SectionDone(0)
			}
		}
	}
	job.SetCounts(len(parts), sectionCount)
	log.Info("sections read", "parts", len(parts), "sections", sectionCount, "with_subtopics", len(pending))

	// Phase 3: Subtopics with bounded concurrency. Each call opens its own
	// document handle and each goroutine writes only its own node.
	job.SetStatus(StatusReadingSubtopics, "subtopics")
	sem := make(chan struct{}, w.maxConcurrentSections)
	var wg sync.WaitGroup
	for _, ps := range pending {
		sem <- struct{}{}
		wg.Add(1)
		go func(ps pendingSection) {
			defer wg.Done()
			defer func() { <-sem }()
			subs, err := w.svc.ListSubtopics(ctx, job.Path(), ps.number)
			if err != nil {
				log.Error("read subtopics failed", "section", ps.number, "error", err)
				job.AddError(fmt.Sprintf("section %s: %s", ps.number, err))
				job.SectionDone(0)
				return
			}
			for _, sub := range subs {
				ps.node.Children = append(ps.node.Children, &doctree.DocNode{
					Kind:   doctree.KindSubtopic,
					Title:  sub.Title,
					Number: sub.Number,
					Page:   sub.Page,
				})
			}
			job.SectionDone(len(subs))
		}(ps)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "subtopics")
		return
	}

	job.SetResult(tree)
	log.Info("outline indexed",
		"parts", tree.Count(doctree.KindPart),
		"sections", tree.Count(doctree.KindSection),
		"subtopics", tree.Count(doctree.KindSubtopic))

	if job.HasErrors() {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}

func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
