package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/sirupsen/logrus"

	"github.com/calllog-sim/calllog-sim/sim"
)

// Document is a fully rendered call-log PDF.
type Document struct {
	ID         string
	Bytes      []byte
	Pages      int
	HeaderRows int // header repaints, one per page
	DataRows   int
}

// Renderer turns call logs into paginated PDF tables.
// A Renderer holds only immutable configuration and is safe for concurrent use.
type Renderer struct {
	opts    Options
	columns []Column
}

// NewRenderer validates opts and columns and returns a Renderer.
func NewRenderer(opts Options, columns []Column) (*Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("report options: %w", err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: at least one column is required", ErrInvalidColumns)
	}
	for _, c := range columns {
		if _, ok := fieldHeaders[c.Field]; !ok {
			return nil, fmt.Errorf("%w: unknown column %q", ErrInvalidColumns, c.Field)
		}
		if c.Width <= 0 {
			return nil, fmt.Errorf("%w: column %q width must be positive, got %v", ErrInvalidColumns, c.Field, c.Width)
		}
	}
	return &Renderer{opts: opts, columns: append([]Column(nil), columns...)}, nil
}

// Options returns the renderer's page options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Render draws the header row and one row per event, in order, starting a
// new page (with a repainted header) whenever the next row would begin below
// the break threshold. An empty log renders a single header-only page.
//
// Render either returns a complete document or an error; partial output is
// never returned.
func (r *Renderer) Render(events []sim.CallEvent) (*Document, error) {
	pdf := fpdf.New(r.opts.Orientation, "mm", r.opts.PageSize, "")
	pdf.SetTopMargin(r.opts.TopMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("calllog-sim", true)
	pdf.SetTitle(r.opts.Title, true)
	if r.opts.Author != "" {
		pdf.SetAuthor(r.opts.Author, true)
	}
	if r.opts.DocumentID != "" {
		pdf.SetSubject("call log "+r.opts.DocumentID, true)
	}
	if !r.opts.CreationDate.IsZero() {
		pdf.SetCreationDate(r.opts.CreationDate)
	}

	cursor := newPageCursor(pdf, r.opts, r.columns, pdf.UnicodeTranslatorFromDescriptor(""))
	cursor.startPage()
	for _, e := range events {
		cursor.drawRow(e)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering call log pdf: %w", err)
	}

	logrus.Debugf("rendered %d rows on %d pages (%d bytes)", cursor.dataRows, cursor.pages, buf.Len())
	return &Document{
		ID:         r.opts.DocumentID,
		Bytes:      buf.Bytes(),
		Pages:      cursor.pages,
		HeaderRows: cursor.headerRows,
		DataRows:   cursor.dataRows,
	}, nil
}
