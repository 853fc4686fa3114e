// Package reflow extracts the body text of a Bluebook subtopic and
// normalizes it into readable paragraphs.
package reflow

import (
	"context"
	"strings"

	"github.com/dgallion1/bluebook/internal/heading"
	"github.com/dgallion1/bluebook/internal/pdfdoc"
)

// ErrorSentinel is returned in place of content when extraction fails.
const ErrorSentinel = "Error occurred while processing the document."

// ExtractSpan returns the raw lines between the heading of subtopic
// sectionNumber.subNumber and the next subtopic heading of the same
// section. The heading line itself is not included. Collection ends for
// good at the first following heading, so the span is always contiguous.
func ExtractSpan(ctx context.Context, doc pdfdoc.Document, sectionNumber, subNumber string) (string, error) {
	m := heading.ForSection(sectionNumber)
	current := m.HeadingFor(subNumber)

	var b strings.Builder
	extracting := false
	for page := 1; page <= doc.PageCount(); page++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := doc.PageText(page)
		if err != nil {
			return "", err
		}
		for _, line := range m.LogicalLines(text) {
			if current.MatchString(line) {
				extracting = true
				continue
			}
			if !extracting {
				continue
			}
			if m.IsHeading(line) {
				return b.String(), nil
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// Extract returns the formatted content of a subtopic. Any failure while
// reading the document yields ErrorSentinel.
func Extract(ctx context.Context, doc pdfdoc.Document, sectionNumber, subNumber string) string {
	raw, err := ExtractSpan(ctx, doc, sectionNumber, subNumber)
	if err != nil {
		return ErrorSentinel
	}
	return FormatText(raw, doc.Path(), sectionNumber)
}
