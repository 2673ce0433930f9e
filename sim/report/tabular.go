package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/calllog-sim/calllog-sim/sim"
)

// WriteCSV writes a header line and one line per event in column order.
func WriteCSV(w io.Writer, events []sim.CallEvent, columns []Column) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers(columns)); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for i, e := range events {
		if err := cw.Write(values(columns, e)); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable writes an aligned plain-text preview of at most limit events
// (all events when limit <= 0), followed by an ellipsis line when rows were
// omitted.
func WriteTable(w io.Writer, events []sim.CallEvent, columns []Column, limit int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers(columns), "\t"))
	shown := events
	if limit > 0 && len(events) > limit {
		shown = events[:limit]
	}
	for _, e := range shown {
		fmt.Fprintln(tw, strings.Join(values(columns, e), "\t"))
	}
	if len(shown) < len(events) {
		fmt.Fprintf(tw, "... %d more rows\n", len(events)-len(shown))
	}
	return tw.Flush()
}
