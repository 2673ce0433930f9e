package report

import (
	"fmt"
	"math"
	"time"
)

// MIMEType is the media type of rendered documents.
const MIMEType = "application/pdf"

// Color is an RGB color with 0-255 components.
type Color struct {
	R, G, B int
}

// Options controls PDF page geometry and styling. All lengths are in mm.
type Options struct {
	// Orientation is "L" (landscape) or "P" (portrait).
	Orientation string

	// PageSize is an fpdf page size name such as "A4" or "Letter".
	PageSize string

	FontFamily string
	FontSize   float64

	// RowHeight is the height of every header and data row.
	RowHeight float64

	// TopMargin is where the first row of each page starts.
	TopMargin float64

	// BreakThreshold is the vertical position past which the next row
	// starts a new page.
	BreakThreshold float64

	// CellPadding is the horizontal text inset used when clipping cell text.
	CellPadding float64

	HeaderFill   Color
	RowFill      Color
	AnsweredText Color
	DefaultText  Color

	// Title, Author and DocumentID are written to the PDF metadata.
	Title      string
	Author     string
	DocumentID string

	// CreationDate pins the metadata timestamp; zero means render time.
	CreationDate time.Time
}

// DefaultOptions returns A4 landscape, Helvetica 9pt, 7mm rows, a page break
// once a row would start below 180mm, a light blue bold header and dark green
// text for answered calls.
func DefaultOptions() Options {
	return Options{
		Orientation:    "L",
		PageSize:       "A4",
		FontFamily:     "Helvetica",
		FontSize:       9,
		RowHeight:      7,
		TopMargin:      10,
		BreakThreshold: 180,
		CellPadding:    1,
		HeaderFill:     Color{200, 220, 255},
		RowFill:        Color{255, 255, 255},
		AnsweredText:   Color{0, 100, 0},
		DefaultText:    Color{0, 0, 0},
		Title:          "Call Log",
	}
}

// RowsPerPage returns how many data rows fit under the header on each page
// before BreakThreshold forces a new page.
func (o Options) RowsPerPage() int {
	if o.RowHeight <= 0 {
		return 0
	}
	return int(math.Floor((o.BreakThreshold - o.TopMargin) / o.RowHeight))
}

// Validate checks that the geometry can hold at least one data row per page.
func (o Options) Validate() error {
	if o.Orientation != "L" && o.Orientation != "P" {
		return fmt.Errorf("orientation must be L or P, got %q", o.Orientation)
	}
	if o.PageSize == "" {
		return fmt.Errorf("page size is required")
	}
	if o.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %v", o.FontSize)
	}
	if o.RowHeight <= 0 {
		return fmt.Errorf("row height must be positive, got %v", o.RowHeight)
	}
	if o.TopMargin < 0 {
		return fmt.Errorf("top margin must be non-negative, got %v", o.TopMargin)
	}
	if o.RowsPerPage() < 1 {
		return fmt.Errorf("break threshold %v leaves no room for a data row below the header", o.BreakThreshold)
	}
	return nil
}
