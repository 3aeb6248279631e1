package sheets

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Cell returns the trimmed string form of row[i], or "" when the row is short.
func Cell(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	switch v := row[i].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// groupedThousands matches numbers whose commas only group thousands.
var groupedThousands = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)

// Float parses numeric cells, tolerating a leading currency sign and
// thousands separators written as commas. Any other comma is ambiguous with
// a decimal comma and is rejected.
func Float(row []interface{}, i int) (float64, error) {
	if i < len(row) {
		if v, ok := row[i].(float64); ok {
			return v, nil
		}
	}
	raw := Cell(row, i)
	raw = strings.TrimPrefix(raw, "$")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty numeric cell at column %d", i)
	}
	if strings.Contains(raw, ",") {
		if !groupedThousands.MatchString(raw) {
			return 0, fmt.Errorf("ambiguous comma in numeric cell %q at column %d", raw, i)
		}
		raw = strings.ReplaceAll(raw, ",", "")
	}
	return strconv.ParseFloat(raw, 64)
}

// Bool accepts spreadsheet checkboxes and the usual literals.
func Bool(row []interface{}, i int) bool {
	if i < len(row) {
		if v, ok := row[i].(bool); ok {
			return v
		}
	}
	switch strings.ToLower(Cell(row, i)) {
	case "true", "verdadero", "si", "sí", "yes", "1", "x":
		return true
	}
	return false
}

// ColumnLetter maps a zero-based column index to its A1 letter.
func ColumnLetter(i int) string {
	letters := ""
	for i >= 0 {
		letters = string(rune('A'+i%26)) + letters
		i = i/26 - 1
	}
	return letters
}

// sheetsEpoch is day zero of spreadsheet date serial numbers.
var sheetsEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Time parses a date cell written either as text in layout or as a date
// serial number. Unparseable cells yield the zero time.
func Time(row []interface{}, i int, layout string, loc *time.Location) time.Time {
	if i < len(row) {
		if serial, ok := row[i].(float64); ok {
			d := time.Duration(serial * float64(24*time.Hour))
			t := sheetsEpoch.Add(d)
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
		}
	}
	t, err := time.ParseInLocation(layout, Cell(row, i), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}
