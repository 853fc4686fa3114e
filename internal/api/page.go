package api

import (
	"net/http"
	"net/url"

	"github.com/dgallion1/bluebook/internal/export"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// handleHome renders the library as an HTML page linking each edition to
// its parts listing.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	entries, err := s.lib.List()
	if err != nil {
		s.log.Error("list library", "error", err)
		http.Error(w, "library unavailable", http.StatusInternalServerError)
		return
	}

	body := export.Element(atom.Body, nil, export.Element(atom.H1, nil, export.Text("RIDOT Bluebook Index")))
	if len(entries) == 0 {
		body.AppendChild(export.Element(atom.P, nil, export.Text("No PDF files found.")))
	} else {
		list := export.Element(atom.Ul, map[string]string{"class": "documents"})
		for _, e := range entries {
			li := export.Element(atom.Li, nil,
				export.Element(atom.A, map[string]string{"href": "/api/documents/" + url.PathEscape(e.File) + "/parts"},
					export.Text(e.Name)))
			if e.URL != "" {
				li.AppendChild(export.Text(" "))
				li.AppendChild(export.Element(atom.A, map[string]string{"href": e.URL, "target": "_blank"}, export.Text("(source)")))
			}
			list.AppendChild(li)
		}
		body.AppendChild(list)
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(export.Element(atom.Html, map[string]string{"lang": "en"},
		export.Element(atom.Head, nil,
			export.Element(atom.Meta, map[string]string{"charset": "utf-8"}),
			export.Element(atom.Title, nil, export.Text("RIDOT Bluebook Index"))),
		body))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := html.Render(w, doc); err != nil {
		s.log.Error("render index page", "error", err)
	}
}
