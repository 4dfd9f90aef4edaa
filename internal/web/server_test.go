package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Damilavkin/price-list/internal/config"
	"github.com/Damilavkin/price-list/internal/core"
	"github.com/Damilavkin/price-list/internal/report"
)

// newTestServer loads a small catalog from a temp dir and wraps it in a Server.
func newTestServer(t *testing.T, cfg config.ServerConfig) *Server {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"price_1.csv": "Товар,Цена,Фасовка\nСахар,100,1\nЯблоко,100,2\n",
		"price_2.csv": "Продукт,Стоимость,Вес\nСахар,1,1\n",
		"price_3.csv": "Наименование,Розница,Масса\nСахар <b>,120,2\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	svc := core.NewService(core.Options{}, nil)
	if _, err := svc.Load(context.Background(), dir); err != nil {
		t.Fatalf("Load error = %v", err)
	}
	return NewServer(svc, report.NewExporter(""), cfg)
}

func do(t *testing.T, s *Server, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{})
	rec := do(t, s, http.MethodGet, "/health", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Status  string `json:"status"`
		Records int    `json:"records"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" || body.Records != 3 {
		t.Errorf("body = %+v, want ok with 3 records", body)
	}
}

func TestSearch(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{})

	tests := []struct {
		name      string
		target    string
		wantCount int
		wantFirst string
	}{
		{"case insensitive", "/api/search?q=%D0%A1%D0%90%D0%A5%D0%90%D0%A0", 2, "Сахар <b>"},
		{"no match", "/api/search?q=milk", 0, ""},
		{"empty query matches all", "/api/search", 3, "Яблоко"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, tt.target, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var resp SearchResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Count != tt.wantCount || len(resp.Results) != tt.wantCount {
				t.Fatalf("count = %d (%d results), want %d", resp.Count, len(resp.Results), tt.wantCount)
			}
			if resp.Results == nil {
				t.Error("results must encode as [] not null")
			}
			if tt.wantCount > 0 && resp.Results[0].Name != tt.wantFirst {
				t.Errorf("first = %q, want %q", resp.Results[0].Name, tt.wantFirst)
			}
		})
	}
}

func TestFiles(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{})
	rec := do(t, s, http.MethodGet, "/api/files", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp FilesResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.RunID == "" {
		t.Error("run_id is empty")
	}
	if len(resp.Files) != 3 {
		t.Fatalf("files = %d, want 3", len(resp.Files))
	}
	skipped := resp.Files[1]
	if !strings.HasSuffix(skipped.Path, "price_2.csv") || skipped.Code != "VAL001" || skipped.Error == "" {
		t.Errorf("price_2 summary = %+v, want VAL001 error", skipped)
	}
	if resp.Files[0].Records != 2 || resp.Files[0].Code != "" {
		t.Errorf("price_1 summary = %+v, want 2 records and no error", resp.Files[0])
	}
}

func TestFiles_NothingLoaded(t *testing.T) {
	s := NewServer(core.NewService(core.Options{}, nil), report.NewExporter(""), config.ServerConfig{})
	rec := do(t, s, http.MethodGet, "/api/files", nil)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestReport(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{})
	rec := do(t, s, http.MethodGet, "/report", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{report.DefaultTitle, "<td>Яблоко</td>", "Сахар &lt;b&gt;"} {
		if !strings.Contains(body, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Contains(body, "Сахар <b>") {
		t.Error("record name was not escaped")
	}
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{})
	rec := do(t, s, http.MethodGet, "/nope", nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != "HTTP404" {
		t.Errorf("code = %q, want HTTP404", resp.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{})
	rec := do(t, s, http.MethodGet, "/health", http.Header{"X-Request-Id": {"abc-123"}})

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	origin := http.Header{"Origin": {"http://localhost:3000"}}

	t.Run("disabled without origins", func(t *testing.T) {
		s := newTestServer(t, config.ServerConfig{})
		rec := do(t, s, http.MethodGet, "/health", origin)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
		}
	})

	t.Run("allowed origin", func(t *testing.T) {
		s := newTestServer(t, config.ServerConfig{AllowedOrigins: []string{"http://localhost:3000"}})
		rec := do(t, s, http.MethodGet, "/health", origin)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("Access-Control-Allow-Origin = %q, want origin echoed", got)
		}
	})
}

func TestRespondError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/report", nil)
	rec := httptest.NewRecorder()

	respondError(rec, req, &core.ExportError{Path: "out.html", Err: os.ErrPermission}, http.StatusInternalServerError)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(resp.Code, "EXP") || resp.Message == "" {
		t.Errorf("response = %+v, want an EXP code with a message", resp)
	}
}

func TestShutdownWithoutStart(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{})
	if err := s.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() = %v, want nil", err)
	}
}
