// Package outline recovers Parts and Sections from a Bluebook table of
// contents and locates the numbered subtopics of a Section in page text.
package outline

import (
	"context"
	"fmt"

	"github.com/dgallion1/bluebook/internal/doctree"
	"github.com/dgallion1/bluebook/internal/heading"
	"github.com/dgallion1/bluebook/internal/pdfdoc"
)

// ExtractParts returns the TOC entries naming a Part, in TOC order.
func ExtractParts(doc pdfdoc.Document) ([]doctree.Part, error) {
	toc, err := doc.TableOfContents()
	if err != nil {
		return nil, fmt.Errorf("table of contents: %w", err)
	}
	parts := []doctree.Part{}
	for _, e := range toc {
		if heading.IsPart(e.Title) {
			parts = append(parts, doctree.Part{Title: e.Title, Page: e.Page})
		}
	}
	return parts, nil
}

// ExtractSections returns the Sections listed between the TOC entry titled
// partTitle and the next Part entry. The first exact title match wins. An
// unknown part yields an empty slice.
func ExtractSections(ctx context.Context, doc pdfdoc.Document, partTitle string) ([]doctree.Section, error) {
	toc, err := doc.TableOfContents()
	if err != nil {
		return nil, fmt.Errorf("table of contents: %w", err)
	}

	sections := []doctree.Section{}
	start := -1
	for i, e := range toc {
		if e.Title == partTitle {
			start = i
			break
		}
	}
	if start < 0 {
		return sections, nil
	}

	for i := start + 1; i < len(toc) && !heading.IsPart(toc[i].Title); i++ {
		if !heading.IsSection(toc[i].Title) {
			continue
		}
		has, err := HasSubsections(ctx, doc, toc, i)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", toc[i].Title, err)
		}
		sections = append(sections, doctree.Section{
			Title:          toc[i].Title,
			Number:         doctree.SectionNumber(toc[i].Title),
			Page:           toc[i].Page,
			HasSubsections: has,
		})
	}
	return sections, nil
}

// SectionSpan returns the inclusive 1-based page range of the Section at
// toc[idx]: from its own page up to the page before the next Section or
// Part entry, or to the last page. The range is empty (end < start) when
// the next heading starts on the same page.
func SectionSpan(toc []doctree.TocEntry, idx, pageCount int) (start, end int) {
	start = toc[idx].Page
	end = pageCount
	for i := idx + 1; i < len(toc); i++ {
		if heading.IsPart(toc[i].Title) || heading.IsSection(toc[i].Title) {
			end = toc[i].Page - 1
			break
		}
	}
	if start < 1 {
		start = 1
	}
	if end > pageCount {
		end = pageCount
	}
	return start, end
}

// HasSubsections reports whether any page in the Section's span contains
// decimal-style numbering. This over-approximates: any "2.5" on a page in
// range counts.
func HasSubsections(ctx context.Context, doc pdfdoc.Document, toc []doctree.TocEntry, idx int) (bool, error) {
	start, end := SectionSpan(toc, idx, doc.PageCount())
	for page := start; page <= end; page++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		text, err := doc.PageText(page)
		if err != nil {
			return false, err
		}
		if heading.HasDecimalNumbering(text) {
			return true, nil
		}
	}
	return false, nil
}
