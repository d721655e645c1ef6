package docx

import (
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// XML namespaces used in DOCX files
const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsXML = "http://www.w3.org/XML/1998/namespace"

	nsPkgRels     = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentType = "http://schemas.openxmlformats.org/package/2006/content-types"

	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relHeader         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	relImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

	ctHeader = "application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"
	ctRels   = "application/vnd.openxmlformats-package.relationships+xml"

	prefixW = "w"
)

// Compiled queries. Matching is by namespace URI so documents that bind the
// WordprocessingML namespace to an unusual prefix are still found.
var (
	sectPrQuery = xpath.MustCompile(
		`//*[local-name()='sectPr' and namespace-uri()='` + nsW + `']` +
			`[not(ancestor::*[local-name()='sectPrChange' or local-name()='pPrChange'])]`)
	inlineQuery = xpath.MustCompile(
		`//*[local-name()='inline' and namespace-uri()='` + nsWP + `']`)
	blipQuery = xpath.MustCompile(
		`.//*[local-name()='blip' and namespace-uri()='` + nsA + `']`)
	docPrQuery = xpath.MustCompile(
		`./*[local-name()='docPr' and namespace-uri()='` + nsWP + `']`)
	extentQuery = xpath.MustCompile(
		`./*[local-name()='extent' and namespace-uri()='` + nsWP + `']`)
)

// Document is an in-memory WordprocessingML document.
//
// The Document owns every node of the parsed parts; Section, Paragraph, Run,
// Table and InlineShape values are handles into that tree and stay valid for
// the lifetime of the Document. Mutations are applied to the tree immediately.
type Document struct {
	pkg      *pkg
	main     *part // main document part (word/document.xml)
	body     *xmlquery.Node
	styles   *StyleResolver
	headers  map[string]*part // part name -> parsed header part
	mainRels *relationships
}

// Sections returns the document's sections in document order. A Document
// always has at least one Section.
func (d *Document) Sections() []*Section {
	nodes := selectInOrder(d.body, sectPrQuery)
	sections := make([]*Section, 0, len(nodes))
	for i, n := range nodes {
		sections = append(sections, &Section{doc: d, node: n, index: i})
	}
	return sections
}

// Paragraphs returns the body-level paragraphs in document order. Paragraphs
// nested in tables are reached through Tables.
func (d *Document) Paragraphs() []*Paragraph {
	var paras []*Paragraph
	for c := d.body.FirstChild; c != nil; c = c.NextSibling {
		if isW(c, "p") {
			paras = append(paras, &Paragraph{doc: d, node: c, index: len(paras)})
		}
	}
	return paras
}

// Tables returns the body-level tables in document order.
func (d *Document) Tables() []*Table {
	var tables []*Table
	for c := d.body.FirstChild; c != nil; c = c.NextSibling {
		if isW(c, "tbl") {
			tables = append(tables, &Table{doc: d, node: c, index: len(tables)})
		}
	}
	return tables
}

// InlineShapes returns the inline drawings (images, charts) in the body.
func (d *Document) InlineShapes() []*InlineShape {
	nodes := selectInOrder(d.body, inlineQuery)
	shapes := make([]*InlineShape, 0, len(nodes))
	for i, n := range nodes {
		shapes = append(shapes, &InlineShape{doc: d, node: n, index: i})
	}
	return shapes
}

// AddParagraph appends a new empty paragraph to the end of the body, ahead of
// the body-level section properties.
func (d *Document) AddParagraph() *Paragraph {
	p := newW("p")
	if last := lastElement(d.body); isW(last, "sectPr") {
		insertBefore(last, p)
	} else {
		appendChild(d.body, p)
	}
	return d.paragraphFor(p)
}

// paragraphFor wraps a w:p node, computing its index among the paragraphs
// of its container (body, header or table cell).
func (d *Document) paragraphFor(n *xmlquery.Node) *Paragraph {
	idx := 0
	if n.Parent != nil {
		for c := n.Parent.FirstChild; c != nil && c != n; c = c.NextSibling {
			if isW(c, "p") {
				idx++
			}
		}
	}
	return &Paragraph{doc: d, node: n, index: idx}
}
