package core

// convert.go turns raw price-list cells into typed values.
//
// Cells are cleaned of common spreadsheet export artifacts first:
//   - surrounding whitespace
//   - Excel formula wrapping (="value")
//   - surrounding quotes
//
// Numbers go through pgtype.Numeric so that only plain decimal and
// scientific notation is accepted; locale-specific formats are rejected.

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// numericRegex validates that a string is a plain numeric literal after cleanup.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ErrEmptyValue is returned for a required cell that is blank after cleanup.
var ErrEmptyValue = errors.New("empty value")

// CleanCell removes common CSV artifacts from a cell value.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") && len(s) >= 3 {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

// ToNumeric converts a cell to pgtype.Numeric.
// Returns an invalid Numeric for empty or non-numeric input.
func ToNumeric(s string) pgtype.Numeric {
	s = CleanCell(s)
	if s == "" || !numericRegex.MatchString(s) {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{Valid: false}
	}
	return n
}

// ParseNumber converts a cell to float64.
func ParseNumber(s string) (float64, error) {
	if CleanCell(s) == "" {
		return 0, ErrEmptyValue
	}

	n := ToNumeric(s)
	if !n.Valid {
		return 0, fmt.Errorf("invalid number %q", strings.TrimSpace(s))
	}

	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return 0, fmt.Errorf("invalid number %q", strings.TrimSpace(s))
	}
	return f.Float64, nil
}
