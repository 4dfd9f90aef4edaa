package core

import (
	"strconv"
	"unicode/utf8"
)

// Field identifies one of the canonical columns every record must have.
type Field int

const (
	FieldName Field = iota
	FieldPrice
	FieldWeight
)

// canonicalFields lists fields in the order missing columns are reported.
var canonicalFields = [...]Field{FieldName, FieldPrice, FieldWeight}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldPrice:
		return "price"
	case FieldWeight:
		return "weight"
	default:
		return "field(" + strconv.Itoa(int(f)) + ")"
	}
}

// ProductRecord is one accepted row of one price-list file.
// Records are immutable once ingested.
type ProductRecord struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Weight     float64 `json:"weight"`
	SourceFile string  `json:"source_file"`
	UnitPrice  float64 `json:"unit_price"`
}

// NewProductRecord builds a record and derives its unit price.
func NewProductRecord(name string, price, weight float64, sourceFile string) ProductRecord {
	return ProductRecord{
		Name:       name,
		Price:      price,
		Weight:     weight,
		SourceFile: sourceFile,
		UnitPrice:  UnitPrice(price, weight),
	}
}

// UnitPrice returns price per unit of weight, or 0 when weight is exactly 0.
// Zero-weight records therefore rank as the cheapest.
func UnitPrice(price, weight float64) float64 {
	if weight == 0 {
		return 0
	}
	return price / weight
}

// FormatNumber renders a price or weight the shortest way that round-trips,
// so 100 prints as "100" and 2.5 as "2.5".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatUnitPrice renders a unit price with exactly two decimals.
func FormatUnitPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// PriceText returns the display form of the price.
func (r ProductRecord) PriceText() string { return FormatNumber(r.Price) }

// WeightText returns the display form of the weight.
func (r ProductRecord) WeightText() string { return FormatNumber(r.Weight) }

// UnitPriceText returns the unit price with two decimals.
func (r ProductRecord) UnitPriceText() string { return FormatUnitPrice(r.UnitPrice) }

// displayWidth is the widest of name, price and weight in characters.
func (r ProductRecord) displayWidth() int {
	return max(
		utf8.RuneCountInString(r.Name),
		utf8.RuneCountInString(r.PriceText()),
		utf8.RuneCountInString(r.WeightText()),
	)
}

// ColumnRef is the optional position of one canonical field in a header row.
type ColumnRef struct {
	Index  int    // Position in the row; meaningful only when Found
	Header string // Raw header text as it appeared in the file
	Found  bool
}

// ColumnMapping is the per-file header resolution result.
type ColumnMapping struct {
	Name   ColumnRef
	Price  ColumnRef
	Weight ColumnRef
}

// Column returns the reference for a canonical field.
func (m ColumnMapping) Column(f Field) ColumnRef {
	switch f {
	case FieldName:
		return m.Name
	case FieldPrice:
		return m.Price
	case FieldWeight:
		return m.Weight
	}
	return ColumnRef{}
}

func (m *ColumnMapping) set(f Field, ref ColumnRef) {
	switch f {
	case FieldName:
		m.Name = ref
	case FieldPrice:
		m.Price = ref
	case FieldWeight:
		m.Weight = ref
	}
}

// Missing returns the unresolved fields in canonical order.
func (m ColumnMapping) Missing() []Field {
	var missing []Field
	for _, f := range canonicalFields {
		if !m.Column(f).Found {
			missing = append(missing, f)
		}
	}
	return missing
}

// Validate reports the first unresolved field as a *MissingColumnError.
func (m ColumnMapping) Validate() error {
	if missing := m.Missing(); len(missing) > 0 {
		return &MissingColumnError{Field: missing[0]}
	}
	return nil
}

// DisplayWidth is the running maximum character width of name, price and
// weight over all records in a catalog. It only sizes console and report
// columns and never decreases.
type DisplayWidth int

// Observe widens w to fit r if needed.
func (w *DisplayWidth) Observe(r ProductRecord) {
	if n := r.displayWidth(); n > int(*w) {
		*w = DisplayWidth(n)
	}
}

// Snapshot is the full catalog content handed to exporters.
type Snapshot struct {
	Records []ProductRecord
	Width   DisplayWidth
}
