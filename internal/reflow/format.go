package reflow

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"
)

var (
	fileDatePattern = regexp.MustCompile(`^(\d{4})_(\d{2})`)

	manyNewlines  = regexp.MustCompile(`\n{2,}`)
	bulletSpacing = regexp.MustCompile(`([•●○])\s*`)
	letteredItem  = regexp.MustCompile(`\n([a-z]\.)`)
	tocLeaderLine = regexp.MustCompile(`(?m)^.*\.{6,}.*$`)
	nestedBullet  = regexp.MustCompile(`\n\t○`)
	nextHeading   = regexp.MustCompile(`(?m)^[ \t]*(?:[•●○] )?(?:SECTION\s+\d+|Part\s+\d+)`)
	blankLineRuns = regexp.MustCompile(`\n(?:[ \t]*\n){2,}`)
)

// PublicationDate derives the running-header date ("February 2024") from a
// file name starting with YYYY_MM. It returns "" when the name does not
// encode a valid year and month.
func PublicationDate(docPath string) string {
	base := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	m := fileDatePattern.FindStringSubmatch(base)
	if m == nil {
		return ""
	}
	t, err := time.Parse("2006_01", m[1]+"_"+m[2])
	if err != nil {
		return ""
	}
	return t.Format("January 2006")
}

// PartPrefix returns the page-stamp prefix of the Part enclosing a section:
// "100" for section "101", "M" for section "M01".
func PartPrefix(sectionNumber string) string {
	if sectionNumber == "" {
		return ""
	}
	first := sectionNumber[:1]
	if first[0] >= '0' && first[0] <= '9' {
		return first + "00"
	}
	return first
}

// furniturePatterns returns the running headers and page stamps to strip
// for a section of the document at docPath.
func furniturePatterns(docPath, sectionNumber string) []*regexp.Regexp {
	prefix := regexp.QuoteMeta(PartPrefix(sectionNumber))
	patterns := []*regexp.Regexp{
		regexp.MustCompile(prefix + `-\d{1,2}`),
		regexp.MustCompile(`(?m)Part\s+` + prefix + `\s+—\s+.*$`),
		regexp.MustCompile(`(?m)SECTION\s+` + regexp.QuoteMeta(sectionNumber) + `\s+—\s+.*$`),
	}
	if date := PublicationDate(docPath); date != "" {
		patterns = append([]*regexp.Regexp{regexp.MustCompile(regexp.QuoteMeta(date))}, patterns...)
	}
	return patterns
}

// FormatText turns a raw span into display text. The steps run in a fixed
// order and each one sees the output of the previous one.
func FormatText(raw, docPath, sectionNumber string) string {
	text := raw
	for _, p := range furniturePatterns(docPath, sectionNumber) {
		text = p.ReplaceAllString(text, "")
	}

	// Page breaks leave runs of empty lines; drop them entirely.
	text = manyNewlines.ReplaceAllString(text, "\n\n")
	text = strings.ReplaceAll(text, "\n\n", "\n")

	text = bulletSpacing.ReplaceAllString(text, "${1} ")
	text = letteredItem.ReplaceAllString(text, "\n\n${1}")
	text = tocLeaderLine.ReplaceAllString(text, "")
	text = bulletSpacing.ReplaceAllString(text, "\n\t${1} ")
	text = breakParagraphs(text)
	text = nestedBullet.ReplaceAllString(text, "\n\t\t\t○")

	if loc := nextHeading.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	text = blankLineRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// breakParagraphs doubles a newline that is followed by a capital letter
// unless the character before it is a word character. Lines joined by
// extraction mid-sentence end in a letter and stay together.
func breakParagraphs(s string) string {
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	for i, r := range rs {
		b.WriteRune(r)
		if r != '\n' || i+1 >= len(rs) {
			continue
		}
		if next := rs[i+1]; next < 'A' || next > 'Z' {
			continue
		}
		if i > 0 && isWordRune(rs[i-1]) {
			continue
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
