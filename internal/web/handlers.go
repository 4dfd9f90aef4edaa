package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Damilavkin/price-list/internal/core"
	"github.com/a-h/templ"
)

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Query   string               `json:"query"`
	Count   int                  `json:"count"`
	Results []core.ProductRecord `json:"results"`
}

// FileSummary describes one file of the last load.
type FileSummary struct {
	Path        string `json:"path"`
	Records     int    `json:"records"`
	RowsSkipped int    `json:"rows_skipped"`
	Error       string `json:"error,omitempty"`
	Code        string `json:"code,omitempty"`
}

// FilesResponse is the body of GET /api/files.
type FilesResponse struct {
	RunID     string        `json:"run_id"`
	Directory string        `json:"directory"`
	Files     []FileSummary `json:"files"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": len(s.catalog.Snapshot().Records),
	})
}

// handleSearch answers ?q=text with records ranked by unit price.
// A missing q matches everything.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results := s.catalog.Search(r.Context(), query)

	writeJSON(w, http.StatusOK, SearchResponse{
		Query:   query,
		Count:   len(results),
		Results: results,
	})
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	last := s.catalog.LastLoad()
	if last == nil {
		writeError(w, http.StatusNotFound, "no price lists loaded")
		return
	}

	resp := FilesResponse{
		RunID:     last.RunID,
		Directory: last.Directory,
		Files:     make([]FileSummary, 0, len(last.Files)),
	}
	for _, f := range last.Files {
		summary := FileSummary{
			Path:        f.Path,
			Records:     len(f.Records),
			RowsSkipped: len(f.RowErrors),
		}
		if f.Err != nil {
			summary.Error = f.Err.Error()
			summary.Code = core.MapError(f.Err).Code
		}
		resp.Files = append(resp.Files, summary)
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleReport renders the full catalog as the HTML report.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	component := s.report.Component(s.catalog.Snapshot())
	templ.Handler(component, templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, r, err, http.StatusInternalServerError)
		})
	})).ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}
