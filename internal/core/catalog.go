package core

import (
	"cmp"
	"slices"
	"strings"
)

// Catalog is the append-only, ordered collection of records from all
// ingested files. Insertion order is file discovery order, then row order.
// Records with equal names from different files are kept as distinct entries.
//
// A Catalog is mutated only while loading; once loading is done it may be
// read from multiple goroutines.
type Catalog struct {
	records []ProductRecord
	width   DisplayWidth
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Append adds a record to the end of the catalog.
func (c *Catalog) Append(rec ProductRecord) {
	c.records = append(c.records, rec)
	c.width.Observe(rec)
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.records) }

// Width returns the current display width.
func (c *Catalog) Width() DisplayWidth { return c.width }

// Search returns the records whose name contains text, ignoring case,
// sorted by ascending unit price. Records with equal unit prices keep their
// catalog order. An empty text matches every record. The result is never nil.
func (c *Catalog) Search(text string) []ProductRecord {
	needle := strings.ToLower(text)

	matches := make([]ProductRecord, 0)
	for _, rec := range c.records {
		if strings.Contains(strings.ToLower(rec.Name), needle) {
			matches = append(matches, rec)
		}
	}

	slices.SortStableFunc(matches, func(a, b ProductRecord) int {
		return cmp.Compare(a.UnitPrice, b.UnitPrice)
	})
	return matches
}

// ExportAll returns a copy of every record in catalog order plus the display width.
func (c *Catalog) ExportAll() Snapshot {
	return Snapshot{
		Records: slices.Clone(c.records),
		Width:   c.width,
	}
}
