package bluebook

import (
	"strings"

	"github.com/dgallion1/bluebook/internal/doctree"
	"github.com/dgallion1/bluebook/internal/heading"
)

// ParseSectionNumber accepts either a bare section number ("101", "M01")
// or a full section title ("SECTION 101 — Roadway") and returns the number.
func ParseSectionNumber(s string) (string, error) {
	s = strings.TrimSpace(s)
	number := s
	if heading.IsSection(s) {
		number = doctree.SectionNumber(s)
	}
	if !heading.ValidSectionNumber(number) {
		return "", &InvalidArgumentError{Field: "section", Value: s}
	}
	return number, nil
}

// ParseSubtopicNumber accepts "02" or "101.02" for section "101" and
// returns the digits after the section prefix.
func ParseSubtopicNumber(section, s string) (string, error) {
	s = strings.TrimSpace(s)
	number := strings.TrimPrefix(s, section+".")
	if !heading.ValidSubtopicNumber(number) {
		return "", &InvalidArgumentError{Field: "subtopic", Value: s}
	}
	return number, nil
}
