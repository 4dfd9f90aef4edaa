package core

import (
	"errors"
	"fmt"
)

var (
	// ErrFileTooLarge is returned for candidate files above the size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrEmptyFile is returned for files without a header row.
	ErrEmptyFile = errors.New("empty file: no header row")

	// ErrShortRow is returned when a row has fewer cells than a resolved column needs.
	ErrShortRow = errors.New("row has too few columns")

	// ErrNoExporter is returned by Service.Export when no exporter is configured.
	ErrNoExporter = errors.New("no report exporter configured")
)

// DiscoveryError reports an unreadable or missing source directory.
// It is fatal to a load: nothing is ingested.
type DiscoveryError struct {
	Dir string
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("scan directory %s: %v", e.Dir, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// FileError reports a candidate file that contributed no records.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("skip file %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// MissingColumnError reports a canonical field no header could be resolved to.
type MissingColumnError struct {
	Field Field
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %s", e.Field)
}

// RowError reports a data row that could not be converted into a record.
// Line is the 1-based line number in the source file.
type RowError struct {
	Path  string
	Line  int
	Field Field
	Value string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %v", e.Path, e.Line, e.Field, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ExportError reports a report that could not be written.
// Catalog state is unaffected.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export report to %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
