package report

import "github.com/calllog-sim/calllog-sim/sim"

// surface is the subset of *fpdf.Fpdf the table layout draws on.
type surface interface {
	AddPage()
	GetY() float64
	SetFont(familyStr, styleStr string, size float64)
	SetFillColor(r, g, b int)
	SetTextColor(r, g, b int)
	CellFormat(w, h float64, txtStr, borderStr string, ln int, alignStr string, fill bool, link int, linkStr string)
	Ln(h float64)
	GetStringWidth(s string) float64
}

// pageCursor owns the mutable layout state of a single Render call: the
// current page, and how many pages, header rows and data rows were drawn.
// It is never shared between renders.
type pageCursor struct {
	s         surface
	opts      Options
	columns   []Column
	translate func(string) string

	pages      int
	headerRows int
	dataRows   int
}

func newPageCursor(s surface, opts Options, columns []Column, translate func(string) string) *pageCursor {
	if translate == nil {
		translate = func(s string) string { return s }
	}
	return &pageCursor{s: s, opts: opts, columns: columns, translate: translate}
}

// startPage adds a page and paints the header row at its top.
func (c *pageCursor) startPage() {
	c.s.AddPage()
	c.pages++
	c.drawHeader()
}

func (c *pageCursor) drawHeader() {
	c.s.SetFont(c.opts.FontFamily, "B", c.opts.FontSize)
	c.s.SetFillColor(c.opts.HeaderFill.R, c.opts.HeaderFill.G, c.opts.HeaderFill.B)
	c.s.SetTextColor(c.opts.DefaultText.R, c.opts.DefaultText.G, c.opts.DefaultText.B)
	for _, col := range c.columns {
		c.drawCell(col.Width, col.Header())
	}
	c.s.Ln(c.opts.RowHeight)
	c.headerRows++
}

// drawRow paints one record. The page-break check runs once, before the
// row's first cell, so a row is never split across pages.
func (c *pageCursor) drawRow(e sim.CallEvent) {
	if c.s.GetY() > c.opts.BreakThreshold {
		c.startPage()
	}

	text := c.opts.DefaultText
	if e.IsAnswered() {
		text = c.opts.AnsweredText
	}
	c.s.SetFont(c.opts.FontFamily, "", c.opts.FontSize)
	c.s.SetFillColor(c.opts.RowFill.R, c.opts.RowFill.G, c.opts.RowFill.B)
	c.s.SetTextColor(text.R, text.G, text.B)
	for _, col := range c.columns {
		c.drawCell(col.Width, col.Value(e))
	}
	c.s.Ln(c.opts.RowHeight)
	c.dataRows++
}

func (c *pageCursor) drawCell(width float64, text string) {
	fitted := c.fitText(text, width-2*c.opts.CellPadding)
	c.s.CellFormat(width, c.opts.RowHeight, fitted, "1", 0, "C", true, 0, "")
}

// fitText returns text translated for the page font and clipped with a
// trailing "..." so that it fits in width.
func (c *pageCursor) fitText(text string, width float64) string {
	out := c.translate(text)
	if c.s.GetStringWidth(out) <= width {
		return out
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		out = c.translate(string(runes) + "...")
		if c.s.GetStringWidth(out) <= width {
			return out
		}
	}
	return ""
}
