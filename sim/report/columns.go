// Package report renders generated call logs: a paginated landscape PDF
// table (pdf.go), CSV export and a plain-text preview table.
// All renderers share the fixed column schema defined here.
package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/calllog-sim/calllog-sim/sim"
)

// ErrInvalidColumns is wrapped by every column schema error.
var ErrInvalidColumns = errors.New("invalid column layout")

// TimestampLayout is the cell format of the Date Time column.
const TimestampLayout = "02-01-2006 15:04:05"

// Field names one attribute of a sim.CallEvent that can be shown as a column.
type Field string

const (
	FieldDateTime Field = "date_time"
	FieldAttempt  Field = "attempt"
	FieldLeadID   Field = "lead_id"
	FieldStatus   Field = "status"
	FieldLength   Field = "length"
	FieldPhone    Field = "phone"
)

var fieldHeaders = map[Field]string{
	FieldDateTime: "Date Time",
	FieldAttempt:  "Attempt",
	FieldLeadID:   "Lead ID",
	FieldStatus:   "Status",
	FieldLength:   "Length (s)",
	FieldPhone:    "Phone",
}

// Column is one table column: which field it shows and how wide it is (mm).
type Column struct {
	Field Field
	Width float64
}

// DefaultColumns returns the standard layout, 200mm wide in total.
func DefaultColumns() []Column {
	return []Column{
		{FieldDateTime, 45},
		{FieldAttempt, 20},
		{FieldLeadID, 30},
		{FieldStatus, 30},
		{FieldLength, 30},
		{FieldPhone, 45},
	}
}

// DefaultWidth returns the default width of f, or 0 for an unknown field.
func DefaultWidth(f Field) float64 {
	for _, c := range DefaultColumns() {
		if c.Field == f {
			return c.Width
		}
	}
	return 0
}

// ParseColumns builds a layout from field names and widths. Order may be any
// subset or permutation of the fixed fields. When widths is empty every
// column takes its default width; otherwise widths must match order 1:1.
// Empty order returns DefaultColumns.
func ParseColumns(order []string, widths []float64) ([]Column, error) {
	if len(order) == 0 {
		if len(widths) != 0 {
			return nil, fmt.Errorf("%w: column widths given without a column order", ErrInvalidColumns)
		}
		return DefaultColumns(), nil
	}
	if len(widths) != 0 && len(widths) != len(order) {
		return nil, fmt.Errorf("%w: %d columns but %d widths", ErrInvalidColumns, len(order), len(widths))
	}
	seen := make(map[Field]bool, len(order))
	columns := make([]Column, 0, len(order))
	for i, name := range order {
		f := Field(strings.TrimSpace(name))
		if _, ok := fieldHeaders[f]; !ok {
			return nil, fmt.Errorf("%w: unknown column %q; valid: date_time, attempt, lead_id, status, length, phone", ErrInvalidColumns, name)
		}
		if seen[f] {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidColumns, f)
		}
		seen[f] = true
		w := DefaultWidth(f)
		if len(widths) != 0 {
			w = widths[i]
		}
		if w <= 0 {
			return nil, fmt.Errorf("%w: column %q width must be positive, got %v", ErrInvalidColumns, f, w)
		}
		columns = append(columns, Column{Field: f, Width: w})
	}
	return columns, nil
}

// Header returns the column title.
func (c Column) Header() string {
	return fieldHeaders[c.Field]
}

// Value formats the column's field of e.
func (c Column) Value(e sim.CallEvent) string {
	switch c.Field {
	case FieldDateTime:
		return e.Timestamp.Format(TimestampLayout)
	case FieldAttempt:
		return strconv.Itoa(e.Attempt)
	case FieldLeadID:
		return strconv.Itoa(e.LeadID)
	case FieldStatus:
		return e.Status.String()
	case FieldLength:
		return strconv.Itoa(e.DurationSeconds)
	case FieldPhone:
		return e.PhoneLine
	}
	return ""
}

// TotalWidth returns the sum of column widths.
func TotalWidth(columns []Column) float64 {
	total := 0.0
	for _, c := range columns {
		total += c.Width
	}
	return total
}

func headers(columns []Column) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.Header()
	}
	return out
}

func values(columns []Column, e sim.CallEvent) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.Value(e)
	}
	return out
}
