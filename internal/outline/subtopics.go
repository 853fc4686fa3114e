package outline

import (
	"context"
	"strings"

	"github.com/dgallion1/bluebook/internal/doctree"
	"github.com/dgallion1/bluebook/internal/heading"
	"github.com/dgallion1/bluebook/internal/pdfdoc"
)

// ExtractSubtopics scans every page for subtopic headings of sectionNumber.
//
// Collection starts at the ".01" heading whose title begins with two
// capitals; after that any heading of the section whose title begins with
// two capitals is accepted, in document order, regardless of gaps in the
// numbering. If no ".01" heading is found the result is empty.
func ExtractSubtopics(ctx context.Context, doc pdfdoc.Document, sectionNumber string) ([]doctree.Subtopic, error) {
	m := heading.ForSection(sectionNumber)
	subtopics := []doctree.Subtopic{}
	collecting := false

	for page := 1; page <= doc.PageCount(); page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := doc.PageText(page)
		if err != nil {
			return nil, err
		}
		for _, line := range m.LogicalLines(text) {
			number, ok := m.MatchSubtopic(line)
			if !ok {
				continue
			}
			if !collecting {
				if !m.IsFirstSubtopic(line) {
					continue
				}
				collecting = true
			} else if !heading.HasTwoCapitals(heading.TitleAfterNumber(line)) {
				continue
			}
			subtopics = append(subtopics, doctree.Subtopic{
				Number: number,
				Title:  strings.TrimRight(line, "."),
				Page:   page,
			})
		}
	}
	return subtopics, nil
}
