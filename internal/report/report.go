// Package report renders the catalog as a static HTML document.
//
// The document holds one table with the columns row number, name, price,
// weight, source file and unit price (two decimals), one row per record in
// catalog order. Rendering never sorts, filters or alters records.
package report

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Damilavkin/price-list/internal/core"
	"github.com/a-h/templ"
)

// DefaultTitle is used when an Exporter has no title.
const DefaultTitle = "Позиции продуктов"

// columns are the table headings, in output order.
var columns = [...]string{"Номер", "Название", "Цена", "Фасовка", "Файл", "Цена за кг."}

// Row is one rendered table row. Number is the 1-based output position and
// is not stored on the record.
type Row struct {
	Number     int
	Name       string
	Price      string
	Weight     string
	SourceFile string
	UnitPrice  string
}

// Cells returns the row values in column order.
func (r Row) Cells() []string {
	return []string{
		strconv.Itoa(r.Number), r.Name, r.Price, r.Weight, r.SourceFile, r.UnitPrice,
	}
}

// BuildRows converts records to rows, preserving their order.
func BuildRows(records []core.ProductRecord) []Row {
	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = Row{
			Number:     i + 1,
			Name:       rec.Name,
			Price:      rec.PriceText(),
			Weight:     rec.WeightText(),
			SourceFile: rec.SourceFile,
			UnitPrice:  rec.UnitPriceText(),
		}
	}
	return rows
}

// Exporter writes catalog snapshots as HTML files.
type Exporter struct {
	Title string
}

// NewExporter creates an exporter with the given document title.
func NewExporter(title string) *Exporter {
	if title == "" {
		title = DefaultTitle
	}
	return &Exporter{Title: title}
}

// Component returns the document for snap as a templ component.
func (e *Exporter) Component(snap core.Snapshot) templ.Component {
	return Page(e.Title, BuildRows(snap.Records))
}

// Export renders snap to path, replacing any existing file. The document is
// rendered into a temporary file next to path and renamed into place, so a
// failed render leaves the previous report untouched.
// Failures are returned as *core.ExportError.
func (e *Exporter) Export(ctx context.Context, path string, snap core.Snapshot) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &core.ExportError{Path: path, Err: err}
	}
	tmp := f.Name()

	if err := e.write(ctx, f, snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return &core.ExportError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return &core.ExportError{Path: path, Err: err}
	}

	// CreateTemp uses 0600; match os.Create.
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return &core.ExportError{Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &core.ExportError{Path: path, Err: err}
	}
	return nil
}

func (e *Exporter) write(ctx context.Context, w io.Writer, snap core.Snapshot) error {
	bw := bufio.NewWriter(w)
	if err := e.Component(snap).Render(ctx, bw); err != nil {
		return err
	}
	return bw.Flush()
}
