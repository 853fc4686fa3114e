package export

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dgallion1/bluebook/internal/doctree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PageLinker returns a link for a 1-based page, or "" for none.
type PageLinker func(page int) string

// OutlineMarkdown writes the tree as nested Markdown lists under one
// heading per Part.
func OutlineMarkdown(w io.Writer, tree *doctree.DocTree) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", tree.Title)
	for _, part := range tree.Children {
		fmt.Fprintf(&b, "\n## %s\n\n", part.Title)
		if len(part.Children) == 0 {
			b.WriteString("_No sections._\n")
		}
		for _, sec := range part.Children {
			fmt.Fprintf(&b, "- %s (p. %d)\n", sectionLabel(sec), sec.Page)
			for _, sub := range sec.Children {
				fmt.Fprintf(&b, "  - %s (p. %d)\n", sub.Title, sub.Page)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// OutlineHTML writes the tree as a nested list. Page numbers become links
// when link is non-nil and returns a URL.
func OutlineHTML(w io.Writer, tree *doctree.DocTree, link PageLinker) error {
	nav := Element(atom.Nav, map[string]string{"class": "outline"},
		Element(atom.H1, nil, Text(tree.Title)))
	parts := Element(atom.Ul, nil)
	for _, part := range tree.Children {
		li := Element(atom.Li, map[string]string{"class": "part"}, Text(part.Title+" "), pageRef(part.Page, link))
		if len(part.Children) > 0 {
			secs := Element(atom.Ul, nil)
			for _, sec := range part.Children {
				class := "section"
				if sec.Empty {
					class = "section empty"
				}
				sli := Element(atom.Li, map[string]string{"class": class}, Text(sectionLabel(sec)+" "), pageRef(sec.Page, link))
				if len(sec.Children) > 0 {
					subs := Element(atom.Ul, nil)
					for _, sub := range sec.Children {
						subs.AppendChild(Element(atom.Li, map[string]string{"class": "subtopic"},
							Text(sub.Title+" "), pageRef(sub.Page, link)))
					}
					sli.AppendChild(subs)
				}
				secs.AppendChild(sli)
			}
			li.AppendChild(secs)
		}
		parts.AppendChild(li)
	}
	nav.AppendChild(parts)
	return html.Render(w, nav)
}

func sectionLabel(n *doctree.DocNode) string {
	if n.Empty {
		return n.Title + " " + doctree.NoSubsectionsMarker
	}
	return n.Title
}

func pageRef(page int, link PageLinker) *html.Node {
	label := "p. " + strconv.Itoa(page)
	if link != nil {
		if href := link(page); href != "" {
			return Element(atom.A, map[string]string{"href": href, "target": "_blank"}, Text(label))
		}
	}
	return Element(atom.Span, map[string]string{"class": "page"}, Text(label))
}

// Element builds an element node with the given attributes and children.
// Attributes are emitted in key order.
func Element(a atom.Atom, attrs map[string]string, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		n.Attr = append(n.Attr, html.Attribute{Key: k, Val: attrs[k]})
	}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// Text builds a text node; html.Render escapes it.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
