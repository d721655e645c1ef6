package docx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Table is a handle to a body-level w:tbl element.
type Table struct {
	doc   *Document
	node  *xmlquery.Node
	index int
}

// Index returns the table's position among the body's tables.
func (t *Table) Index() int { return t.index }

// Location describes the table for issue reports.
func (t *Table) Location() string {
	return fmt.Sprintf("table %d", t.index+1)
}

// Rows returns the table's rows in order.
func (t *Table) Rows() []*Row {
	var rows []*Row
	for _, n := range childrenW(t.node, "tr") {
		rows = append(rows, &Row{table: t, node: n, index: len(rows)})
	}
	return rows
}

// ColCount returns the number of grid columns spanned by the first row.
func (t *Table) ColCount() int {
	rows := t.Rows()
	if len(rows) == 0 {
		return 0
	}
	count := 0
	for _, cell := range rows[0].Cells() {
		count += cell.ColSpan()
	}
	return count
}

// Text returns a plain text rendering: one line per row, cells separated by tabs.
func (t *Table) Text() string {
	var sb strings.Builder
	for i, row := range t.Rows() {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, cell := range row.Cells() {
			if j > 0 {
				sb.WriteString("\t")
			}
			// Replace newlines within cells with spaces
			sb.WriteString(strings.ReplaceAll(cell.Text(), "\n", " "))
		}
	}
	return sb.String()
}

// Row is a handle to a w:tr element.
type Row struct {
	table *Table
	node  *xmlquery.Node
	index int
}

// Index returns the row's position in its table.
func (r *Row) Index() int { return r.index }

// Cells returns the row's cells in order.
func (r *Row) Cells() []*Cell {
	var cells []*Cell
	for _, n := range childrenW(r.node, "tc") {
		cells = append(cells, &Cell{row: r, node: n, index: len(cells)})
	}
	return cells
}

// Cell is a handle to a w:tc element.
type Cell struct {
	row   *Row
	node  *xmlquery.Node
	index int
}

// Index returns the cell's position in its row.
func (c *Cell) Index() int { return c.index }

// ColSpan returns the number of grid columns the cell spans.
func (c *Cell) ColSpan() int {
	span, ok := intAttr(childW(childW(c.node, "tcPr"), "gridSpan"), "val")
	if !ok || span < 1 {
		return 1
	}
	return int(span)
}

// IsMergedContinuation reports whether the cell continues a vertical merge
// from the row above.
func (c *Cell) IsMergedContinuation() bool {
	vMerge := childW(childW(c.node, "tcPr"), "vMerge")
	if vMerge == nil {
		return false
	}
	v, _ := wAttr(vMerge, "val")
	return v != "restart"
}

// Paragraphs returns the cell's paragraphs.
func (c *Cell) Paragraphs() []*Paragraph {
	var paras []*Paragraph
	for _, n := range childrenW(c.node, "p") {
		paras = append(paras, &Paragraph{doc: c.row.table.doc, node: n, index: len(paras)})
	}
	return paras
}

// Text returns the cell's paragraph texts joined by newlines.
func (c *Cell) Text() string {
	paras := c.Paragraphs()
	texts := make([]string, len(paras))
	for i, p := range paras {
		texts[i] = p.Text()
	}
	return strings.Join(texts, "\n")
}

// SetText replaces the cell's text. The text goes into the first paragraph;
// the others are removed. A cell always keeps one paragraph.
func (c *Cell) SetText(text string) {
	paras := c.Paragraphs()
	if len(paras) == 0 {
		n := newW("p")
		appendChild(c.node, n)
		paras = []*Paragraph{{doc: c.row.table.doc, node: n}}
	}
	paras[0].SetText(text)
	for _, p := range paras[1:] {
		removeNode(p.node)
	}
}

// BorderSide names one edge of a table cell.
type BorderSide int

const (
	BorderTop BorderSide = iota
	BorderBottom
	BorderLeft
	BorderRight
)

func (s BorderSide) String() string {
	switch s {
	case BorderTop:
		return "top"
	case BorderBottom:
		return "bottom"
	case BorderLeft:
		return "left"
	default:
		return "right"
	}
}

// alias returns the bidi-aware element name that Word may write instead.
func (s BorderSide) alias() string {
	switch s {
	case BorderLeft:
		return "start"
	case BorderRight:
		return "end"
	}
	return ""
}

// Border describes one cell edge. Style is the w:val line style ("single",
// "double", "nil", ...); Size is in eighths of a point.
type Border struct {
	Style string
	Size  int
	Color string
}

// Single is a plain half-point single line.
var Single = Border{Style: "single", Size: 4, Color: "auto"}

// NoBorder suppresses an edge.
var NoBorder = Border{Style: "nil"}

// Border returns the cell's explicit border on side.
func (c *Cell) Border(side BorderSide) (Border, bool) {
	borders := childW(childW(c.node, "tcPr"), "tcBorders")
	el := childW(borders, side.String())
	if el == nil && side.alias() != "" {
		el = childW(borders, side.alias())
	}
	if el == nil {
		return Border{}, false
	}
	b := Border{}
	b.Style, _ = wAttr(el, "val")
	if sz, ok := intAttr(el, "sz"); ok {
		b.Size = int(sz)
	}
	b.Color, _ = wAttr(el, "color")
	return b, true
}

// SetBorder sets the cell's border on side.
func (c *Cell) SetBorder(side BorderSide, b Border) {
	tcPr := ensureFirstW(c.node, "tcPr")
	borders := ensureOrderedW(tcPr, "tcBorders", tcPrOrder)
	if side.alias() != "" {
		removeChildW(borders, side.alias())
	}
	el := ensureOrderedW(borders, side.String(), tcBordersOrder)
	el.Attr = nil
	setWAttr(el, "val", b.Style)
	if b.Size > 0 {
		setWAttr(el, "sz", strconv.Itoa(b.Size))
		setWAttr(el, "space", "0")
	}
	if b.Color != "" {
		setWAttr(el, "color", b.Color)
	}
}
