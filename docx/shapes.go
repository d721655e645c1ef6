package docx

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

// InlineShape is a handle to an inline drawing (wp:inline), typically a figure.
type InlineShape struct {
	doc   *Document
	node  *xmlquery.Node
	index int
}

// Index returns the shape's position among the document's inline shapes.
func (s *InlineShape) Index() int { return s.index }

// Location describes the shape for issue reports.
func (s *InlineShape) Location() string {
	return fmt.Sprintf("figure %d", s.index+1)
}

// Size returns the displayed width and height in inches.
func (s *InlineShape) Size() (width, height float64) {
	ext := xmlquery.QuerySelector(s.node, extentQuery)
	cx, _ := attrInt(ext, "cx")
	cy, _ := attrInt(ext, "cy")
	return float64(cx) / emuPerInch, float64(cy) / emuPerInch
}

// Name returns the drawing's name from wp:docPr.
func (s *InlineShape) Name() string {
	v, _ := attrNS(xmlquery.QuerySelector(s.node, docPrQuery), "", "name")
	return v
}

// Description returns the drawing's alternative text.
func (s *InlineShape) Description() string {
	v, _ := attrNS(xmlquery.QuerySelector(s.node, docPrQuery), "", "descr")
	return v
}

// EmbedID returns the relationship id of the embedded picture, or "".
func (s *InlineShape) EmbedID() string {
	v, _ := attrNS(xmlquery.QuerySelector(s.node, blipQuery), nsR, "embed")
	return v
}

// Image returns the embedded picture bytes and their part name.
func (s *InlineShape) Image() ([]byte, string, error) {
	id := s.EmbedID()
	if id == "" {
		return nil, "", fmt.Errorf("%s has no embedded picture", s.Location())
	}
	name, ok := s.doc.mainRels.target(id)
	if !ok {
		return nil, "", fmt.Errorf("%s: relationship %s not found or external", s.Location(), id)
	}
	pt := s.doc.pkg.get(name)
	if pt == nil {
		return nil, "", fmt.Errorf("%s: missing media part %s", s.Location(), name)
	}
	return pt.data, name, nil
}

// Paragraph returns the paragraph that anchors the shape.
func (s *InlineShape) Paragraph() *Paragraph {
	for n := s.node.Parent; n != nil; n = n.Parent {
		if isW(n, "p") {
			return s.doc.paragraphFor(n)
		}
	}
	return nil
}

// Caption returns the caption paragraph that directly follows the shape's
// paragraph, or nil. A caption carries the Caption style or starts with
// "Figure".
func (s *InlineShape) Caption() *Paragraph {
	p := s.Paragraph()
	if p == nil {
		return nil
	}
	next := p.node.NextSibling
	for next != nil && next.Type != xmlquery.ElementNode {
		next = next.NextSibling
	}
	if !isW(next, "p") {
		return nil
	}
	np := s.doc.paragraphFor(next)
	if np.Style() == "Caption" || strings.HasPrefix(strings.TrimSpace(np.Text()), "Figure") {
		return np
	}
	return nil
}

// attrInt parses an unqualified numeric attribute.
func attrInt(n *xmlquery.Node, local string) (int64, bool) {
	v, ok := attrNS(n, "", local)
	if !ok {
		return 0, false
	}
	var i int64
	if _, err := fmt.Sscan(v, &i); err != nil {
		return 0, false
	}
	return i, true
}
