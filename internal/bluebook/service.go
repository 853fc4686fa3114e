package bluebook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dgallion1/bluebook/internal/doctree"
	"github.com/dgallion1/bluebook/internal/outline"
	"github.com/dgallion1/bluebook/internal/pdfdoc"
	"github.com/dgallion1/bluebook/internal/reflow"
)

// Operation names recorded in Stats.
const (
	OpParts     = "parts"
	OpSections  = "sections"
	OpSubtopics = "subtopics"
	OpContent   = "content"
	OpOutline   = "outline"
)

// Config carries the dependencies of a Service.
type Config struct {
	Open   pdfdoc.Opener
	Logger *slog.Logger
	// StatsWindow bounds the age of latency samples; defaults to one hour.
	StatsWindow time.Duration
}

// Service answers structure and content queries against Bluebook PDFs.
// Every call opens its own document handle and closes it before returning.
type Service struct {
	open  pdfdoc.Opener
	log   *slog.Logger
	stats *Stats
}

func NewService(cfg Config) *Service {
	open := cfg.Open
	if open == nil {
		open = pdfdoc.NewOpener(false)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		open:  open,
		log:   log,
		stats: NewStats(cfg.StatsWindow),
	}
}

// Stats returns the latency tracker shared by all operations.
func (s *Service) Stats() *Stats { return s.stats }

// ListParts returns the Parts of the document in TOC order.
func (s *Service) ListParts(ctx context.Context, path string) ([]doctree.Part, error) {
	var parts []doctree.Part
	err := s.withDocument(ctx, OpParts, path, func(doc pdfdoc.Document) error {
		var err error
		parts, err = outline.ExtractParts(doc)
		return err
	})
	if err != nil {
		return nil, err
	}
	return parts, nil
}

// ListSections returns the Sections under the named Part, including those
// without subsections.
func (s *Service) ListSections(ctx context.Context, path, partTitle string) ([]doctree.Section, error) {
	var sections []doctree.Section
	err := s.withDocument(ctx, OpSections, path, func(doc pdfdoc.Document) error {
		var err error
		sections, err = outline.ExtractSections(ctx, doc, partTitle)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sections, nil
}

// ListSubtopics returns the numbered headings of a Section. The section may
// be given as a bare number or as its full TOC title.
func (s *Service) ListSubtopics(ctx context.Context, path, section string) ([]doctree.Subtopic, error) {
	number, err := ParseSectionNumber(section)
	if err != nil {
		return nil, err
	}
	var subtopics []doctree.Subtopic
	err = s.withDocument(ctx, OpSubtopics, path, func(doc pdfdoc.Document) error {
		var err error
		subtopics, err = outline.ExtractSubtopics(ctx, doc, number)
		return err
	})
	if err != nil {
		return nil, err
	}
	return subtopics, nil
}

// GetContent returns the formatted body text of a Subtopic. Only malformed
// arguments produce an error; any failure while reading the document yields
// reflow.ErrorSentinel.
func (s *Service) GetContent(ctx context.Context, path, section, subtopic string) (string, error) {
	number, err := ParseSectionNumber(section)
	if err != nil {
		return "", err
	}
	sub, err := ParseSubtopicNumber(number, subtopic)
	if err != nil {
		return "", err
	}

	var text string
	err = s.withDocument(ctx, OpContent, path, func(doc pdfdoc.Document) error {
		text = reflow.Extract(ctx, doc, number, sub)
		return nil
	})
	if err != nil {
		s.log.Warn("content extraction failed",
			"file", filepath.Base(path), "section", number, "subtopic", sub, "error", err)
		return reflow.ErrorSentinel, nil
	}
	return text, nil
}

// BuildOutline recovers the full Part, Section and Subtopic tree using a
// single document handle. Sections without subsections are kept and marked
// Empty.
func (s *Service) BuildOutline(ctx context.Context, path, title string) (*doctree.DocTree, error) {
	if title == "" {
		title = filepath.Base(path)
	}
	tree := &doctree.DocTree{
		Title:    title,
		File:     filepath.Base(path),
		Children: []*doctree.DocNode{},
	}
	err := s.withDocument(ctx, OpOutline, path, func(doc pdfdoc.Document) error {
		parts, err := outline.ExtractParts(doc)
		if err != nil {
			return err
		}
		for _, part := range parts {
			partNode := &doctree.DocNode{Kind: doctree.KindPart, Title: part.Title, Page: part.Page}
			sections, err := outline.ExtractSections(ctx, doc, part.Title)
			if err != nil {
				return fmt.Errorf("sections of %q: %w", part.Title, err)
			}
			for _, sec := range sections {
				secNode := &doctree.DocNode{
					Kind:   doctree.KindSection,
					Title:  sec.Title,
					Number: sec.Number,
					Page:   sec.Page,
					Empty:  !sec.HasSubsections,
				}
				if sec.HasSubsections && sec.Number != "" {
					subs, err := outline.ExtractSubtopics(ctx, doc, sec.Number)
					if err != nil {
						return fmt.Errorf("subtopics of %s: %w", sec.Number, err)
					}
					for _, sub := range subs {
						secNode.Children = append(secNode.Children, &doctree.DocNode{
							Kind:   doctree.KindSubtopic,
							Title:  sub.Title,
							Number: sub.Number,
							Page:   sub.Page,
						})
					}
				}
				partNode.Children = append(partNode.Children, secNode)
			}
			tree.Children = append(tree.Children, partNode)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("outline built",
		"file", tree.File,
		"parts", tree.Count(doctree.KindPart),
		"sections", tree.Count(doctree.KindSection),
		"subtopics", tree.Count(doctree.KindSubtopic))
	return tree, nil
}

// withDocument opens path, runs fn and closes the document. Open and read
// failures are reported as DocumentUnavailableError; context errors pass
// through unchanged.
func (s *Service) withDocument(ctx context.Context, op, path string, fn func(pdfdoc.Document) error) error {
	start := time.Now()
	defer func() { s.stats.Record(op, time.Since(start).Milliseconds()) }()

	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := s.open(path)
	if err != nil {
		return &DocumentUnavailableError{Path: path, Err: err}
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil {
			s.log.Warn("close document", "file", filepath.Base(path), "error", cerr)
		}
	}()

	if err := fn(doc); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return &DocumentUnavailableError{Path: path, Err: err}
	}
	return nil
}
