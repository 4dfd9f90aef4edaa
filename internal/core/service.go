package core

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/Damilavkin/price-list/internal/logging"
	"github.com/google/uuid"
)

// StopToken ends an interactive query session. It is matched case-insensitively.
const StopToken = "exit"

// IsStop reports whether a query is the session stop token.
func IsStop(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), StopToken)
}

// Exporter writes a catalog snapshot to a destination.
type Exporter interface {
	Export(ctx context.Context, path string, snap Snapshot) error
}

// Options configures a Service.
type Options struct {
	RowPolicy   RowPolicy
	MaxFileSize int64
}

// LoadResult summarizes one directory load.
type LoadResult struct {
	RunID     string
	Directory string
	Files     []FileResult
}

// Loaded returns the results of files that were ingested.
func (r *LoadResult) Loaded() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.OK() {
			out = append(out, f)
		}
	}
	return out
}

// Skipped returns the results of files that contributed no records.
func (r *LoadResult) Skipped() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if !f.OK() {
			out = append(out, f)
		}
	}
	return out
}

// TotalRecords returns the number of records added by this load.
func (r *LoadResult) TotalRecords() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Records)
	}
	return n
}

// Service wires directory scanning, ingestion, the catalog and report export.
// It holds no business rules of its own.
type Service struct {
	ingestor *Ingestor
	catalog  *Catalog
	exporter Exporter
	last     *LoadResult
}

// NewService creates a service with an empty catalog. exporter may be nil,
// in which case Export fails with ErrNoExporter.
func NewService(opts Options, exporter Exporter) *Service {
	return &Service{
		ingestor: &Ingestor{RowPolicy: opts.RowPolicy, MaxFileSize: opts.MaxFileSize},
		catalog:  NewCatalog(),
		exporter: exporter,
	}
}

// Load ingests every price-list file in dir, one after another in discovery
// order. Only a *DiscoveryError is returned; per-file failures are reported
// in the result and never stop the load.
func (s *Service) Load(ctx context.Context, dir string) (*LoadResult, error) {
	runID := uuid.NewString()
	logger := logging.WithFields(ctx, "run_id", runID, "dir", dir)

	names, err := ScanDirectory(dir)
	if err != nil {
		logger.Error("scan failed", "error", err)
		return nil, err
	}

	if len(names) == 0 {
		logger.Info("no price-list files found")
	} else {
		logger.Info("price-list files found", "count", len(names), "files", names)
	}

	result := &LoadResult{RunID: runID, Directory: dir, Files: make([]FileResult, 0, len(names))}
	for _, name := range names {
		path := filepath.Join(dir, name)
		res := s.ingestor.IngestFile(ctx, path)
		if res.OK() {
			logger.Debug("headers resolved", "file", path, "headers", res.Headers)
			for _, rec := range res.Records {
				s.catalog.Append(rec)
			}
		}
		result.Files = append(result.Files, res)
	}

	logger.Info("load complete",
		"files", len(result.Files),
		"skipped", len(result.Skipped()),
		"records", result.TotalRecords(),
		"catalog_size", s.catalog.Len(),
	)

	s.last = result
	return result, nil
}

// Search runs a ranked catalog query and logs the match count.
func (s *Service) Search(ctx context.Context, text string) []ProductRecord {
	results := s.catalog.Search(text)
	logging.FromContext(ctx).Info("search", "query", text, "matches", len(results))
	return results
}

// Width returns the catalog display width.
func (s *Service) Width() DisplayWidth { return s.catalog.Width() }

// Snapshot returns the full catalog.
func (s *Service) Snapshot() Snapshot { return s.catalog.ExportAll() }

// LastLoad returns the result of the most recent Load, or nil.
func (s *Service) LastLoad() *LoadResult { return s.last }

// Export writes the full catalog to path through the configured exporter.
// Failures are reported as *ExportError and leave the catalog untouched.
func (s *Service) Export(ctx context.Context, path string) error {
	if s.exporter == nil {
		return &ExportError{Path: path, Err: ErrNoExporter}
	}

	if err := s.exporter.Export(ctx, path, s.catalog.ExportAll()); err != nil {
		var exportErr *ExportError
		if errors.As(err, &exportErr) {
			return err
		}
		return &ExportError{Path: path, Err: err}
	}

	logging.FromContext(ctx).Info("report exported", "path", path, "records", s.catalog.Len())
	return nil
}
