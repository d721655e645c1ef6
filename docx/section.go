package docx

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/antchfx/xmlquery"
)

// Margins holds a section's page margins.
type Margins struct {
	Top, Bottom, Left, Right Length
}

// Uniform returns margins of l on every side.
func Uniform(l Length) Margins {
	return Margins{Top: l, Bottom: l, Left: l, Right: l}
}

// Section is a handle to a w:sectPr element.
type Section struct {
	doc   *Document
	node  *xmlquery.Node
	index int
}

// Index returns the section's position in the document.
func (s *Section) Index() int { return s.index }

// Location describes the section for issue reports.
func (s *Section) Location() string {
	return fmt.Sprintf("section %d", s.index+1)
}

// Margins returns the section's page margins. Missing values read as zero.
func (s *Section) Margins() Margins {
	pgMar := childW(s.node, "pgMar")
	top, _ := intAttr(pgMar, "top")
	bottom, _ := intAttr(pgMar, "bottom")
	left, _ := intAttr(pgMar, "left")
	right, _ := intAttr(pgMar, "right")
	if left == 0 {
		left, _ = intAttr(pgMar, "start")
	}
	if right == 0 {
		right, _ = intAttr(pgMar, "end")
	}
	return Margins{Top: Length(top), Bottom: Length(bottom), Left: Length(left), Right: Length(right)}
}

// SetMargins sets all four page margins.
func (s *Section) SetMargins(m Margins) {
	pgMar := ensureOrderedW(s.node, "pgMar", sectPrOrder)
	setWAttr(pgMar, "top", m.Top.attr())
	setWAttr(pgMar, "right", m.Right.attr())
	setWAttr(pgMar, "bottom", m.Bottom.attr())
	setWAttr(pgMar, "left", m.Left.attr())
	removeWAttr(pgMar, "start")
	removeWAttr(pgMar, "end")
	// header, footer and gutter are required by the schema.
	for _, a := range []struct{ name, def string }{{"header", "720"}, {"footer", "720"}, {"gutter", "0"}} {
		if _, ok := wAttr(pgMar, a.name); !ok {
			setWAttr(pgMar, a.name, a.def)
		}
	}
}

// Header returns the section's default header, or nil when it has none.
func (s *Section) Header() *Header {
	for _, ref := range childrenW(s.node, "headerReference") {
		if t, _ := wAttr(ref, "type"); t != "" && t != "default" {
			continue
		}
		id, _ := attrNS(ref, nsR, "id")
		name, ok := s.doc.mainRels.target(id)
		if !ok {
			return nil
		}
		if pt := s.doc.headers[name]; pt != nil {
			return &Header{doc: s.doc, part: pt, root: rootElement(pt.tree)}
		}
	}
	return nil
}

// AddHeader creates an empty default header for the section and returns it.
// It fails if the section already has a default header.
func (s *Section) AddHeader() (*Header, error) {
	if s.Header() != nil {
		return nil, errors.New("section already has a default header")
	}
	d := s.doc

	name := d.nextHeaderName()
	tree := &xmlquery.Node{Type: xmlquery.DocumentNode}
	appendChild(tree, xmlDeclaration())
	hdr := newW("hdr")
	ensureNamespace(hdr, prefixW, nsW)
	ensureNamespace(hdr, "r", nsR)
	appendChild(tree, hdr)
	appendChild(hdr, newW("p"))

	if err := d.pkg.addOverride(name, ctHeader); err != nil {
		return nil, fmt.Errorf("registering header content type: %w", err)
	}
	if err := d.pkg.ensureDefault("rels", ctRels); err != nil {
		return nil, fmt.Errorf("registering relationships content type: %w", err)
	}
	pt := d.pkg.add(name, tree)
	d.headers[name] = pt

	id := d.mainRels.add(d.pkg, d.main.name, relHeader, relativeTarget(d.main.name, name))

	ref := newW("headerReference")
	setWAttr(ref, "type", "default")
	setAttrNS(ref, nsR, "id", id)
	insertOrdered(s.node, ref, sectPrOrder)
	ensureNamespace(rootElement(d.main.tree), "r", nsR)

	return &Header{doc: d, part: pt, root: hdr}, nil
}

// nextHeaderName returns an unused word/headerN.xml part name.
func (d *Document) nextHeaderName() string {
	dir := partDir(d.main.name)
	for n := 1; ; n++ {
		name := dir + "header" + strconv.Itoa(n) + ".xml"
		if d.pkg.get(name) == nil {
			return name
		}
	}
}

// Header is a handle to a header part.
type Header struct {
	doc  *Document
	part *part
	root *xmlquery.Node
}

// Paragraphs returns the header's top-level paragraphs.
func (h *Header) Paragraphs() []*Paragraph {
	var paras []*Paragraph
	for c := h.root.FirstChild; c != nil; c = c.NextSibling {
		if isW(c, "p") {
			paras = append(paras, &Paragraph{doc: h.doc, node: c, index: len(paras)})
		}
	}
	return paras
}

// Text returns the header's paragraph texts joined by newlines.
func (h *Header) Text() string {
	var s string
	for i, p := range h.Paragraphs() {
		if i > 0 {
			s += "\n"
		}
		s += p.Text()
	}
	return s
}

// AddParagraph appends an empty paragraph to the header.
func (h *Header) AddParagraph() *Paragraph {
	n := newW("p")
	appendChild(h.root, n)
	return h.doc.paragraphFor(n)
}

// AddPageNumber appends a PAGE field to the paragraph.
func (p *Paragraph) AddPageNumber() {
	fld := newW("fldSimple")
	setWAttr(fld, "instr", " PAGE ")
	r := newW("r")
	t := newW("t")
	appendChild(t, newText("1"))
	appendChild(r, t)
	appendChild(fld, r)
	appendChild(p.node, fld)
}

// HasPageNumber reports whether the paragraph holds a PAGE field.
func (p *Paragraph) HasPageNumber() bool {
	found := false
	var walk func(n *xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil && !found; c = c.NextSibling {
			switch {
			case isW(c, "fldSimple"):
				if v, _ := wAttr(c, "instr"); isPageInstr(v) {
					found = true
				}
			case isW(c, "instrText"):
				if isPageInstr(c.InnerText()) {
					found = true
				}
			}
			walk(c)
		}
	}
	walk(p.node)
	return found
}
