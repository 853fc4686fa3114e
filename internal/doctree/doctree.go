package doctree

import "strings"

// NoSubsectionsMarker is appended to a section title when no numbered
// subsections were found in its page span.
const NoSubsectionsMarker = "[No Subsections]"

// TocEntry is one table-of-contents entry as reported by the PDF outline.
type TocEntry struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	Page  int    `json:"page_number"` // 1-based
}

// Part is a top-level "Part 100" grouping.
type Part struct {
	Title string `json:"title"`
	Page  int    `json:"page_number"`
}

// Section is a "SECTION 101 — Name" entry belonging to the nearest
// preceding Part in TOC order.
type Section struct {
	Title          string `json:"title"`
	Number         string `json:"number"`
	Page           int    `json:"page_number"`
	HasSubsections bool   `json:"has_subsections"`
}

// DisplayTitle returns the title with the no-subsections marker applied.
func (s Section) DisplayTitle() string {
	if s.HasSubsections {
		return s.Title
	}
	return s.Title + " " + NoSubsectionsMarker
}

// Subtopic is a numbered heading ("101.02 CONCRETE CURBS") inside a Section.
type Subtopic struct {
	Number string `json:"number"`
	Title  string `json:"title"`
	Page   int    `json:"page_number"`
}

// SectionNumber extracts the number token from a section title:
// "SECTION 101 — Roadway" yields "101". Returns "" when the title has
// fewer than two tokens.
func SectionNumber(title string) string {
	fields := strings.Fields(title)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

// NodeKind identifies the level of a DocNode in the outline.
type NodeKind string

const (
	KindPart     NodeKind = "part"
	KindSection  NodeKind = "section"
	KindSubtopic NodeKind = "subtopic"
)

// DocTree is the root of a recovered document outline.
type DocTree struct {
	Title    string     `json:"title"`    // Document title (display name or filename)
	File     string     `json:"file"`     // Source file name
	Children []*DocNode `json:"children"` // Parts
}

// DocNode is one Part, Section or Subtopic in the outline.
type DocNode struct {
	Kind     NodeKind   `json:"kind"`
	Title    string     `json:"title"`
	Number   string     `json:"number,omitempty"`
	Page     int        `json:"page_number"`
	Empty    bool       `json:"empty,omitempty"` // section without subsections
	Children []*DocNode `json:"children,omitempty"`
}

// Count returns the number of nodes of the given kind in the tree.
func (t *DocTree) Count(kind NodeKind) int {
	n := 0
	var walk func(nodes []*DocNode)
	walk = func(nodes []*DocNode) {
		for _, node := range nodes {
			if node.Kind == kind {
				n++
			}
			walk(node.Children)
		}
	}
	walk(t.Children)
	return n
}
