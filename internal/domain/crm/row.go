// Package crm holds the typed projections of the sheet-backed store:
// the loosely typed Row/Cell model and the per-entity positional mappers.
package crm

import (
	"encoding/json"
	"strconv"
	"strings"
)

// cellKind discriminates the scalar union carried by a Cell
type cellKind uint8

const (
	cellNull cellKind = iota
	cellString
	cellNumber
	cellBool
)

// Cell is a single spreadsheet cell: string, number, boolean or null.
// Cells serialize as plain JSON scalars so the persistence envelope stays
// readable and compatible with spreadsheet exports.
type Cell struct {
	kind cellKind
	str  string
	num  float64
	b    bool
}

// Null returns the null cell
func Null() Cell {
	return Cell{kind: cellNull}
}

// String returns a string cell
func String(s string) Cell {
	return Cell{kind: cellString, str: s}
}

// Number returns a numeric cell
func Number(n float64) Cell {
	return Cell{kind: cellNumber, num: n}
}

// Bool returns a boolean cell
func Bool(b bool) Cell {
	return Cell{kind: cellBool, b: b}
}

// IsNull reports whether the cell holds no value
func (c Cell) IsNull() bool {
	return c.kind == cellNull
}

// AsString renders the cell the way a spreadsheet displays it.
// Null renders as the empty string.
func (c Cell) AsString() string {
	switch c.kind {
	case cellString:
		return c.str
	case cellNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case cellBool:
		return strconv.FormatBool(c.b)
	default:
		return ""
	}
}

// AsNumber returns the numeric value of the cell. String cells go through
// ParseCurrency so hand-entered values like "$1,200.00" read as 1200.
func (c Cell) AsNumber() float64 {
	switch c.kind {
	case cellNumber:
		return c.num
	case cellString:
		return ParseCurrency(c.str)
	case cellBool:
		if c.b {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Equal reports whether two cells hold the same kind and value
func (c Cell) Equal(other Cell) bool {
	return c == other
}

// MarshalJSON serializes the cell as a bare JSON scalar
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case cellString:
		return json.Marshal(c.str)
	case cellNumber:
		return json.Marshal(c.num)
	case cellBool:
		return json.Marshal(c.b)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON restores a cell from any JSON scalar. Arrays and objects
// are not valid cell values and fail with a type error.
func (c *Cell) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*c = Null()
		return nil
	}
	if trimmed == "true" || trimmed == "false" {
		*c = Bool(trimmed == "true")
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = String(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = Number(n)
	return nil
}

// Row is an ordered sequence of untyped cells. Identity is positional:
// the 0-based index within its sheet is the only handle for updates.
type Row []Cell

// StringsRow builds a Row of string cells, the shape CSV import produces
func StringsRow(cells ...string) Row {
	row := make(Row, len(cells))
	for i, c := range cells {
		row[i] = String(c)
	}
	return row
}

// At returns the cell at index i, or the null cell when the row is short.
// Mappers rely on this so ragged rows never panic.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Null()
	}
	return r[i]
}

// StringAt returns the display string of the cell at index i
func (r Row) StringAt(i int) string {
	return r.At(i).AsString()
}

// NumberAt returns the numeric value of the cell at index i
func (r Row) NumberAt(i int) float64 {
	return r.At(i).AsNumber()
}

// Equal reports whether two rows are cell-for-cell identical
func (r Row) Equal(other Row) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if !r[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the row
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// NormalizeStatus lowers and trims a raw status cell value before it is
// matched against an entity's status vocabulary
func NormalizeStatus(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
