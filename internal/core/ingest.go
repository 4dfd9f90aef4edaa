package core

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Damilavkin/price-list/internal/logging"
)

// RowPolicy decides what a RowError does to its file.
type RowPolicy int

const (
	// RowSkip drops the offending row and keeps ingesting the file.
	RowSkip RowPolicy = iota
	// RowFail drops the whole file on its first bad row.
	RowFail
)

// ParseRowPolicy converts "skip" or "fail" (case-insensitive) to a RowPolicy.
func ParseRowPolicy(s string) (RowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return RowSkip, nil
	case "fail":
		return RowFail, nil
	default:
		return RowSkip, fmt.Errorf("unknown row policy %q", s)
	}
}

func (p RowPolicy) String() string {
	if p == RowFail {
		return "fail"
	}
	return "skip"
}

// FileResult is the outcome of ingesting one file. When Err is set the file
// contributed no records; Records is empty and Err is a *FileError.
type FileResult struct {
	Path      string
	Headers   []string
	Mapping   ColumnMapping
	Records   []ProductRecord
	RowErrors []*RowError
	Err       error
}

// OK reports whether the file was ingested.
func (r FileResult) OK() bool { return r.Err == nil }

// Ingestor converts price-list files into product records.
type Ingestor struct {
	RowPolicy   RowPolicy
	MaxFileSize int64 // Zero disables the size check
}

// IngestFile reads one file. Ingestion is all-or-nothing per file: on any
// file-level failure the result carries the error and no records.
func (in *Ingestor) IngestFile(ctx context.Context, path string) FileResult {
	logger := logging.WithFields(ctx, "file", path)
	res := FileResult{Path: path}

	records, err := in.readFile(path, &res)
	if err != nil {
		res.Err = &FileError{Path: path, Err: err}
		logger.Warn("file skipped", "error", err, "code", MapError(err).Code)
		return res
	}

	for _, rowErr := range res.RowErrors {
		logger.Warn("row skipped", "line", rowErr.Line, "field", rowErr.Field.String(), "error", rowErr.Err)
	}

	res.Records = records
	logger.Info("file ingested", "records", len(records), "rows_skipped", len(res.RowErrors))
	return res
}

func (in *Ingestor) readFile(path string, res *FileResult) ([]ProductRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if in.MaxFileSize > 0 && info.Size() > in.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, info.Size(), in.MaxFileSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return in.read(path, f, res)
}

// read parses an already-open price list. It is separate from readFile so
// that the parsing rules can be exercised without touching the filesystem.
func (in *Ingestor) read(path string, r io.Reader, res *FileResult) ([]ProductRecord, error) {
	cr := csv.NewReader(wrapForReading(r))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	res.Headers = append([]string(nil), header...)

	res.Mapping = ResolveHeaders(header)
	if err := res.Mapping.Validate(); err != nil {
		return nil, err
	}

	var records []ProductRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		line, _ := cr.FieldPos(0)
		rec, rowErr := buildRecord(row, res.Mapping, path, line)
		if rowErr != nil {
			if in.RowPolicy == RowFail {
				return nil, rowErr
			}
			res.RowErrors = append(res.RowErrors, rowErr)
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// buildRecord extracts the canonical fields from one data row.
func buildRecord(row []string, m ColumnMapping, path string, line int) (ProductRecord, *RowError) {
	cell := func(f Field) (string, *RowError) {
		ref := m.Column(f)
		if ref.Index >= len(row) {
			return "", &RowError{Path: path, Line: line, Field: f, Err: ErrShortRow}
		}
		return row[ref.Index], nil
	}

	rawName, rowErr := cell(FieldName)
	if rowErr != nil {
		return ProductRecord{}, rowErr
	}
	name := strings.TrimSpace(rawName)
	if name == "" {
		return ProductRecord{}, &RowError{Path: path, Line: line, Field: FieldName, Err: ErrEmptyValue}
	}

	var values [2]float64
	for i, f := range [...]Field{FieldPrice, FieldWeight} {
		raw, rowErr := cell(f)
		if rowErr != nil {
			return ProductRecord{}, rowErr
		}
		v, err := ParseNumber(raw)
		if err != nil {
			return ProductRecord{}, &RowError{Path: path, Line: line, Field: f, Value: raw, Err: err}
		}
		values[i] = v
	}

	return NewProductRecord(name, values[0], values[1], path), nil
}
