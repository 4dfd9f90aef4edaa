package core

import (
	"slices"
	"strings"
)

// headerSynonyms is the fixed vocabulary of accepted header spellings,
// indexed by Field. Entries are already in normalized form.
var headerSynonyms = [...][]string{
	FieldName:   {"название", "продукт", "товар", "наименование"},
	FieldPrice:  {"цена", "розница"},
	FieldWeight: {"фасовка", "масса", "вес"},
}

// NormalizeHeader trims, lowercases, then strips "#" and after that ",,".
// The passes run in sequence, so ",#,цена" becomes "цена". Noise is stripped
// after trimming, so "# товар" normalizes to " товар".
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, "#", "")
	return strings.ReplaceAll(h, ",,", "")
}

// Synonyms returns the accepted normalized headers for a field.
func Synonyms(f Field) []string {
	if int(f) < 0 || int(f) >= len(headerSynonyms) {
		return nil
	}
	return append([]string(nil), headerSynonyms[f]...)
}

// ResolveHeaders maps each canonical field to the first header, in file
// order, whose normalized form is one of the field's synonyms. Fields with
// no matching header are left unresolved; later duplicates are ignored.
func ResolveHeaders(headers []string) ColumnMapping {
	var m ColumnMapping
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeHeader(h)
	}

	for _, f := range canonicalFields {
		for i, h := range normalized {
			if slices.Contains(headerSynonyms[f], h) {
				m.set(f, ColumnRef{Index: i, Header: headers[i], Found: true})
				break
			}
		}
	}
	return m
}
