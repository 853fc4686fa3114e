// Package heading holds the regular-expression predicates that identify
// Bluebook headings in TOC titles and extracted page text.
package heading

import (
	"regexp"
	"strings"
	"unicode"
)

// space matches one whitespace rune, including non-breaking spaces that PDF
// text extraction often emits between a heading number and its title.
const space = `[\s\p{Z}]`

var (
	partPattern        = regexp.MustCompile(`^Part [0-9A-Z]+`)
	decimalPattern     = regexp.MustCompile(`\d+\.\d+`)
	twoCapitalsPattern = regexp.MustCompile(`^[A-Z][A-Z]`)
	sectionNumberToken = regexp.MustCompile(`^[0-9A-Za-z]+$`)
	subNumberToken     = regexp.MustCompile(`^\d+$`)
)

// IsPart reports whether a TOC title names a Part ("Part 100", "Part M").
func IsPart(title string) bool {
	return partPattern.MatchString(title)
}

// IsSection reports whether a TOC title names a Section.
func IsSection(title string) bool {
	return strings.HasPrefix(title, "SECTION")
}

// HasDecimalNumbering reports whether text contains any digit-dot-digit
// sequence. It does not check that the digits belong to a particular
// section, so measurements such as "2.5 inches" also match.
func HasDecimalNumbering(text string) bool {
	return decimalPattern.MatchString(text)
}

// HasTwoCapitals reports whether s starts with two consecutive ASCII
// uppercase letters.
func HasTwoCapitals(s string) bool {
	return twoCapitalsPattern.MatchString(s)
}

// StartsUpper reports whether s starts with an ASCII uppercase letter.
func StartsUpper(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}

// ValidSectionNumber reports whether s is usable as a section number: an
// alphanumeric token containing at least one digit ("101", "M01").
func ValidSectionNumber(s string) bool {
	if !sectionNumberToken.MatchString(s) {
		return false
	}
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

// ValidSubtopicNumber reports whether s is a bare digit run ("01", "12").
func ValidSubtopicNumber(s string) bool {
	return subNumberToken.MatchString(s)
}

// TitleAfterNumber returns the text after the first whitespace-delimited
// token of a heading line.
func TitleAfterNumber(line string) string {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return ""
	}
	return strings.TrimLeftFunc(line[i:], unicode.IsSpace)
}

// Matcher holds the heading patterns for a single section number.
type Matcher struct {
	section  string
	bare     *regexp.Regexp
	subtopic *regexp.Regexp
	first    *regexp.Regexp
	next     *regexp.Regexp
}

// ForSection compiles the heading patterns for sectionNumber. The number is
// quoted, so callers should validate it with ValidSectionNumber first.
func ForSection(sectionNumber string) *Matcher {
	q := regexp.QuoteMeta(sectionNumber)
	return &Matcher{
		section:  sectionNumber,
		bare:     regexp.MustCompile(`^` + q + `\.\d+$`),
		subtopic: regexp.MustCompile(`^(` + q + `\.\d+)` + space + `[A-Z].*$`),
		first:    regexp.MustCompile(`^` + q + `\.01` + space + `+[A-Z][A-Z].*$`),
		next:     regexp.MustCompile(`^` + q + `\.(\d+)` + space + `+[A-Z][A-Za-z].*$`),
	}
}

// IsBareNumber reports whether line is only a subtopic number with no
// title, e.g. "101.01".
func (m *Matcher) IsBareNumber(line string) bool {
	return m.bare.MatchString(line)
}

// MatchSubtopic returns the subtopic number when line looks like a
// subtopic heading of this section.
func (m *Matcher) MatchSubtopic(line string) (string, bool) {
	sm := m.subtopic.FindStringSubmatch(line)
	if sm == nil {
		return "", false
	}
	return sm[1], true
}

// IsFirstSubtopic reports whether line is the ".01" heading with a title
// starting with two capitals.
func (m *Matcher) IsFirstSubtopic(line string) bool {
	return m.first.MatchString(line)
}

// IsHeading reports whether line is any subtopic heading of this section
// whose title starts with a capital followed by a letter.
func (m *Matcher) IsHeading(line string) bool {
	return m.next.MatchString(line)
}

// HeadingFor compiles the heading pattern for one specific subtopic.
func (m *Matcher) HeadingFor(subNumber string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(m.section) + `\.` + regexp.QuoteMeta(subNumber) + space + `+[A-Z][A-Za-z].*$`)
}

// LogicalLines splits page text into trimmed lines and rejoins headings
// that extraction split across two lines: a bare "101.01" followed by a
// line starting with a capital becomes "101.01 TITLE". A following line
// that is itself a heading of the section is never joined.
func (m *Matcher) LogicalLines(pageText string) []string {
	raw := strings.Split(pageText, "\n")
	lines := make([]string, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		line := strings.TrimSpace(raw[i])
		if m.IsBareNumber(line) && i+1 < len(raw) {
			nextLine := strings.TrimSpace(raw[i+1])
			if StartsUpper(nextLine) && !m.startsHeading(nextLine) {
				lines = append(lines, line+" "+nextLine)
				i++
				continue
			}
		}
		lines = append(lines, line)
	}
	return lines
}

func (m *Matcher) startsHeading(line string) bool {
	return m.bare.MatchString(line) || m.subtopic.MatchString(line)
}
