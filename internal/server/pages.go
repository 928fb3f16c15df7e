package server

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/utrgv-dp/roadmap/pkg/catalog"
	"github.com/utrgv-dp/roadmap/pkg/errors"
	"github.com/utrgv-dp/roadmap/pkg/observability"
	"github.com/utrgv-dp/roadmap/pkg/render"
	"github.com/utrgv-dp/roadmap/pkg/roadmap"
	"github.com/utrgv-dp/roadmap/pkg/roadmap/layout"
)

// handleBrowser serves the degree browser: listings filtered by level,
// sorted by course name, one page at a time.
func (s *Server) handleBrowser(w http.ResponseWriter, r *http.Request) {
	state := catalog.NewViewState()
	if level := r.URL.Query().Get("level"); level != "" {
		state.Level = level
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		state.Page = page
	}

	listings, err := s.listings(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.WriteBrowserPage(w, render.BrowserPage{
		Level: state.Level,
		Page:  catalog.Browse(listings, state, s.pageSize),
	}); err != nil {
		s.respondError(w, r, err)
	}
}

// roadmapQuery identifies the roadmap a page request addresses.
type roadmapQuery struct {
	courseType string
	course     string
	degree     string
	college    string
}

func queryFromRequest(r *http.Request) roadmapQuery {
	q := r.URL.Query()
	return roadmapQuery{
		courseType: q.Get("courseType"),
		course:     q.Get("course"),
		degree:     q.Get("degree"),
		college:    q.Get("college"),
	}
}

// renderRoadmap fetches the roadmap for a query and renders the full
// page document.
func (s *Server) renderRoadmap(r *http.Request, q roadmapQuery, editable bool) (string, error) {
	collection, err := roadmap.CollectionName(q.courseType)
	if err != nil {
		return "", err
	}

	docs, err := s.roadmaps(r.Context(), collection)
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", errors.New(errors.ErrCodeNotFound, "no roadmap for %q", q.courseType)
	}
	doc := docs[0]

	start := time.Now()
	plan, err := layout.BuildPlan(&doc)
	if err != nil {
		return "", err
	}
	table := render.Table(plan, &doc)
	observability.Render().OnRenderComplete(r.Context(), collection, len(plan.Rows), time.Since(start))

	var buf bytes.Buffer
	err = render.WriteRoadmapPage(&buf, render.RoadmapPage{
		Course:     q.course,
		Degree:     q.degree,
		College:    q.college,
		CourseType: q.courseType,
		Department: doc.Department,
		Table:      template.HTML(table),
		Editable:   editable,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// handleRoadmapPage serves the editable roadmap view.
func (s *Server) handleRoadmapPage(w http.ResponseWriter, r *http.Request) {
	page, err := s.renderRoadmap(r, queryFromRequest(r), true)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

// handleExport renders the read-only view and converts it to PDF.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q := queryFromRequest(r)
	page, err := s.renderRoadmap(r, q, false)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	pdf, err := s.exporter.Export(r.Context(), page, q.courseType)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", render.Filename(q.courseType)))
	_, _ = w.Write(pdf)
}
