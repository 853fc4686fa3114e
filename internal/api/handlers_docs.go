package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dgallion1/bluebook/internal/bluebook"
	"github.com/dgallion1/bluebook/internal/doctree"
	"github.com/dgallion1/bluebook/internal/export"
	"github.com/go-chi/chi/v5"
)

type partView struct {
	doctree.Part
	URL string `json:"url,omitempty"`
}

type sectionView struct {
	doctree.Section
	DisplayTitle string `json:"display_title"`
	URL          string `json:"url,omitempty"`
}

type subtopicView struct {
	doctree.Subtopic
	URL string `json:"url,omitempty"`
}

// handleListDocuments lists the PDFs in the library.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	entries, err := s.lib.List()
	if err != nil {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": entries})
}

func (s *Server) handleParts(w http.ResponseWriter, r *http.Request) {
	file, path, ok := s.resolve(w, r)
	if !ok {
		return
	}
	v, err := s.coalesce(r.Context(), "parts", path, func(ctx context.Context) (any, error) {
		return s.svc.ListParts(ctx, path)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	parts := v.([]doctree.Part)
	views := make([]partView, 0, len(parts))
	for _, p := range parts {
		views = append(views, partView{Part: p, URL: s.lib.PageURL(file, p.Page)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"file": file, "parts": views})
}

// handleSections lists the sections of ?part=. Sections without
// subsections are left out unless include_empty is true.
func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	file, path, ok := s.resolve(w, r)
	if !ok {
		return
	}
	part := r.URL.Query().Get("part")
	if part == "" {
		jsonError(w, "part query parameter is required", http.StatusBadRequest)
		return
	}
	includeEmpty, _ := strconv.ParseBool(r.URL.Query().Get("include_empty"))

	v, err := s.coalesce(r.Context(), "sections", path+"\x00"+part, func(ctx context.Context) (any, error) {
		return s.svc.ListSections(ctx, path, part)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	sections := v.([]doctree.Section)
	views := make([]sectionView, 0, len(sections))
	for _, sec := range sections {
		if !sec.HasSubsections && !includeEmpty {
			continue
		}
		views = append(views, sectionView{
			Section:      sec,
			DisplayTitle: sec.DisplayTitle(),
			URL:          s.lib.PageURL(file, sec.Page),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"file": file, "part": part, "sections": views})
}

func (s *Server) handleSubtopics(w http.ResponseWriter, r *http.Request) {
	file, path, ok := s.resolve(w, r)
	if !ok {
		return
	}
	section := chi.URLParam(r, "section")
	subtopics, err := s.subtopics(r.Context(), path, section)
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]subtopicView, 0, len(subtopics))
	for _, sub := range subtopics {
		views = append(views, subtopicView{Subtopic: sub, URL: s.lib.PageURL(file, sub.Page)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"file": file, "section": section, "subtopics": views})
}

// handleContent returns a subtopic's text as JSON, or as a download when
// ?format= names an export format.
func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	file, path, ok := s.resolve(w, r)
	if !ok {
		return
	}
	section := chi.URLParam(r, "section")
	subtopic := chi.URLParam(r, "subtopic")

	format := r.URL.Query().Get("format")
	var exporter export.Exporter
	if format != "" {
		var err error
		if exporter, err = export.ForFormat(format); err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	v, err := s.coalesce(r.Context(), "content", path+"\x00"+section+"\x00"+subtopic, func(ctx context.Context) (any, error) {
		return s.svc.GetContent(ctx, path, section, subtopic)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	text := v.(string)

	// Both numbers were accepted by GetContent, so parsing cannot fail here.
	secNum, _ := bluebook.ParseSectionNumber(section)
	subNum, _ := bluebook.ParseSubtopicNumber(secNum, subtopic)
	c := export.Content{File: file, Section: secNum, Subtopic: secNum + "." + subNum, Text: text}

	if exporter == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"file":     file,
			"section":  c.Section,
			"subtopic": c.Subtopic,
			"content":  c.Text,
		})
		return
	}

	if sub, ok := s.findSubtopic(r.Context(), path, secNum, c.Subtopic); ok {
		c.Title = sub.Title
		c.PageURL = s.lib.PageURL(file, sub.Page)
	}
	var buf bytes.Buffer
	if err := exporter.Export(&buf, c); err != nil {
		jsonError(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", exporter.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", export.Filename(c, exporter)))
	w.Write(buf.Bytes())
}

func (s *Server) subtopics(ctx context.Context, path, section string) ([]doctree.Subtopic, error) {
	v, err := s.coalesce(ctx, "subtopics", path+"\x00"+section, func(ctx context.Context) (any, error) {
		return s.svc.ListSubtopics(ctx, path, section)
	})
	if err != nil {
		return nil, err
	}
	return v.([]doctree.Subtopic), nil
}

// findSubtopic looks up the heading of a subtopic for labelling exports.
func (s *Server) findSubtopic(ctx context.Context, path, section, number string) (doctree.Subtopic, bool) {
	subtopics, err := s.subtopics(ctx, path, section)
	if err != nil {
		s.log.Debug("subtopic lookup failed", "section", section, "error", err)
		return doctree.Subtopic{}, false
	}
	for _, sub := range subtopics {
		if sub.Number == number {
			return sub, true
		}
	}
	return doctree.Subtopic{}, false
}

// resolve maps the {file} URL parameter to a library path, writing the
// error response when it cannot.
func (s *Server) resolve(w http.ResponseWriter, r *http.Request) (file, path string, ok bool) {
	file = chi.URLParam(r, "file")
	path, err := s.lib.Path(file)
	if err != nil {
		writeError(w, err)
		return "", "", false
	}
	return file, path, true
}

// coalesce runs fn once for concurrent callers with the same key. The
// shared call is detached from any single caller's cancellation.
func (s *Server) coalesce(ctx context.Context, op, key string, fn func(context.Context) (any, error)) (any, error) {
	ch := s.group.DoChan(op+"\x00"+key, func() (any, error) {
		return fn(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
