package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gnana997/rndocs/pkg/catalog"
	"github.com/gnana997/rndocs/pkg/render"
)

func (s *Server) routes(r chi.Router) {
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", s.handleCategories)
		r.Get("/nav", s.handleNav)
		r.Get("/search", s.handleSearch)
		r.Route("/documents/{id}", func(r chi.Router) {
			r.Get("/", s.handleDocument)
			r.Get("/props", s.handleProps)
			r.Get("/export", s.handleExport)
		})
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, catalog.ErrNotFound) {
		status = http.StatusNotFound
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"documents": len(s.svc.Query().Documents()),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.Categories())
}

func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.Navigation(r.URL.Query().Get("q")))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.Search(r.URL.Query().Get("q")))
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	examples := true
	if v := r.URL.Query().Get("examples"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			examples = b
		}
	}

	resp, err := s.svc.Document(chi.URLParam(r, "id"), examples)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProps(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := s.svc.FilterProps(chi.URLParam(r, "id"), q.Get("q"), splitList(q["selected"]))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	resp, err := s.svc.Document(chi.URLParam(r, "id"), true)
	if err != nil {
		s.writeError(w, err)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "md", "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		err = render.Markdown(w, resp.Document, nil)
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = render.HTML(w, resp.Document, nil)
	default:
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown format " + strconv.Quote(format)})
		return
	}
	if err != nil {
		s.logger.Warn("export failed", "id", resp.Document.ID, "error", err)
	}
}

// splitList accepts both ?selected=a,b and ?selected=a&selected=b.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
