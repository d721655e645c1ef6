package docx

import (
	"encoding/xml"
	"strconv"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Child element order for the property containers the engine writes to.
// WordprocessingML is a sequence schema, so new children must be placed at
// their declared position or Word rejects the part.
var (
	pPrOrder = []string{
		"pStyle", "keepNext", "keepLines", "pageBreakBefore", "framePr",
		"widowControl", "numPr", "suppressLineNumbers", "pBdr", "shd", "tabs",
		"suppressAutoHyphens", "kinsoku", "wordWrap", "overflowPunct",
		"topLinePunct", "autoSpaceDE", "autoSpaceDN", "bidi", "adjustRightInd",
		"snapToGrid", "spacing", "ind", "contextualSpacing", "mirrorIndents",
		"suppressOverlap", "jc", "textDirection", "textAlignment",
		"textboxTightWrap", "outlineLvl", "divId", "cnfStyle", "rPr", "sectPr",
		"pPrChange",
	}
	rPrOrder = []string{
		"rStyle", "rFonts", "b", "bCs", "i", "iCs", "caps", "smallCaps",
		"strike", "dstrike", "outline", "shadow", "emboss", "imprint",
		"noProof", "snapToGrid", "vanish", "webHidden", "color", "spacing",
		"w", "kern", "position", "sz", "szCs", "highlight", "u", "effect",
		"bdr", "shd", "fitText", "vertAlign", "rtl", "cs", "em", "lang",
		"eastAsianLayout", "specVanish", "oMath",
	}
	sectPrOrder = []string{
		"headerReference", "footerReference", "footnotePr", "endnotePr",
		"type", "pgSz", "pgMar", "paperSrc", "pgBorders", "lnNumType",
		"pgNumType", "cols", "formProt", "vAlign", "noEndnote", "titlePg",
		"textDirection", "bidi", "rtlGutter", "docGrid", "printerSettings",
		"sectPrChange",
	}
	tcPrOrder = []string{
		"cnfStyle", "tcW", "gridSpan", "hMerge", "vMerge", "tcBorders", "shd",
		"noWrap", "tcMar", "textDirection", "tcFitText", "vAlign", "hideMark",
	}
	tcBordersOrder = []string{
		"top", "start", "left", "bottom", "end", "right", "insideH",
		"insideV", "tl2br", "tr2bl",
	}
)

// isElem reports whether n is an element with the given namespace and local name.
func isElem(n *xmlquery.Node, ns, local string) bool {
	return n != nil && n.Type == xmlquery.ElementNode && n.NamespaceURI == ns && n.Data == local
}

// isW reports whether n is a WordprocessingML element named local.
func isW(n *xmlquery.Node, local string) bool {
	return isElem(n, nsW, local)
}

// childW returns the first w:local child of n, or nil.
func childW(n *xmlquery.Node, local string) *xmlquery.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isW(c, local) {
			return c
		}
	}
	return nil
}

// childrenW returns every w:local child of n in document order.
func childrenW(n *xmlquery.Node, local string) []*xmlquery.Node {
	if n == nil {
		return nil
	}
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isW(c, local) {
			out = append(out, c)
		}
	}
	return out
}

// attrNS returns the value of the attribute local in namespace ns.
// An empty ns matches an unqualified attribute.
func attrNS(n *xmlquery.Node, ns, local string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Name.Local != local {
			continue
		}
		if ns == "" && a.Name.Space == "" && a.NamespaceURI == "" {
			return a.Value, true
		}
		if ns != "" && (a.NamespaceURI == ns || (a.NamespaceURI == "" && a.Name.Space == prefixFor(ns))) {
			return a.Value, true
		}
	}
	return "", false
}

// wAttr returns the w:local attribute of n.
func wAttr(n *xmlquery.Node, local string) (string, bool) {
	return attrNS(n, nsW, local)
}

// setAttrNS sets (or adds) the attribute local in namespace ns.
func setAttrNS(n *xmlquery.Node, ns, local, value string) {
	for i, a := range n.Attr {
		if a.Name.Local != local {
			continue
		}
		if a.NamespaceURI == ns || (ns == "" && a.Name.Space == "") || a.Name.Space == prefixFor(ns) {
			n.Attr[i].Value = value
			return
		}
	}
	n.Attr = append(n.Attr, xmlquery.Attr{
		Name:         xml.Name{Space: prefixFor(ns), Local: local},
		Value:        value,
		NamespaceURI: ns,
	})
}

// setWAttr sets the w:local attribute of n.
func setWAttr(n *xmlquery.Node, local, value string) {
	setAttrNS(n, nsW, local, value)
}

// removeWAttr drops the w:local attribute of n if present.
func removeWAttr(n *xmlquery.Node, local string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Name.Local == local && (a.NamespaceURI == nsW || a.Name.Space == prefixW) {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

// newW creates a detached w:local element.
func newW(local string) *xmlquery.Node {
	return &xmlquery.Node{
		Type:         xmlquery.ElementNode,
		Data:         local,
		Prefix:       prefixW,
		NamespaceURI: nsW,
	}
}

// newText creates a detached text node.
func newText(s string) *xmlquery.Node {
	return &xmlquery.Node{Type: xmlquery.TextNode, Data: s}
}

// appendChild attaches n as the last child of parent.
func appendChild(parent, n *xmlquery.Node) {
	xmlquery.AddChild(parent, n)
}

// insertBefore attaches n as the previous sibling of ref.
func insertBefore(ref, n *xmlquery.Node) {
	parent := ref.Parent
	n.Parent = parent
	n.NextSibling = ref
	n.PrevSibling = ref.PrevSibling
	if ref.PrevSibling != nil {
		ref.PrevSibling.NextSibling = n
	} else if parent != nil {
		parent.FirstChild = n
	}
	ref.PrevSibling = n
}

// insertAfter attaches n as the next sibling of ref.
func insertAfter(ref, n *xmlquery.Node) {
	if ref.NextSibling == nil {
		appendChild(ref.Parent, n)
		return
	}
	insertBefore(ref.NextSibling, n)
}

// removeNode detaches n from its parent.
func removeNode(n *xmlquery.Node) {
	if n == nil || n.Parent == nil {
		return
	}
	xmlquery.RemoveFromTree(n)
}

// ensureFirstW returns the w:local child of n, creating it as the first child.
// Used for pPr, rPr and tcPr which must lead their parent.
func ensureFirstW(n *xmlquery.Node, local string) *xmlquery.Node {
	if c := childW(n, local); c != nil {
		return c
	}
	c := newW(local)
	if n.FirstChild != nil {
		insertBefore(n.FirstChild, c)
	} else {
		appendChild(n, c)
	}
	return c
}

// ensureOrderedW returns the w:local child of n, creating it at the position
// the schema order dictates.
func ensureOrderedW(n *xmlquery.Node, local string, order []string) *xmlquery.Node {
	if c := childW(n, local); c != nil {
		return c
	}
	c := newW(local)
	insertOrdered(n, c, order)
	return c
}

// insertOrdered attaches c to n ahead of the first sibling that sorts after it.
func insertOrdered(n, c *xmlquery.Node, order []string) {
	rank := orderRank(order, c.Data)
	for s := n.FirstChild; s != nil; s = s.NextSibling {
		if s.Type != xmlquery.ElementNode {
			continue
		}
		// Extension elements (w14, mc) trail the w: sequence.
		if s.NamespaceURI != nsW || orderRank(order, s.Data) > rank {
			insertBefore(s, c)
			return
		}
	}
	appendChild(n, c)
}

// lastElement returns the last element child of n, skipping text and comments.
func lastElement(n *xmlquery.Node) *xmlquery.Node {
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

// removeChildW drops every w:local child of n.
func removeChildW(n *xmlquery.Node, local string) {
	for _, c := range childrenW(n, local) {
		removeNode(c)
	}
}

func orderRank(order []string, local string) int {
	for i, name := range order {
		if name == local {
			return i
		}
	}
	return len(order)
}

// onOff interprets an ST_OnOff toggle element such as w:b or w:pageBreakBefore.
// A present element without w:val is on.
func onOff(n *xmlquery.Node) bool {
	if n == nil {
		return false
	}
	v, ok := wAttr(n, "val")
	if !ok {
		return true
	}
	switch v {
	case "0", "false", "off":
		return false
	}
	return true
}

// intAttr parses a numeric w: attribute.
func intAttr(n *xmlquery.Node, local string) (int64, bool) {
	v, ok := wAttr(n, local)
	if !ok || v == "" {
		return 0, false
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		// Some producers write fractional twips.
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil {
			return 0, false
		}
		return int64(f), true
	}
	return i, true
}

func prefixFor(ns string) string {
	switch ns {
	case nsW:
		return prefixW
	case nsR:
		return "r"
	case nsXML:
		return "xml"
	}
	return ""
}

// selectInOrder evaluates q under root and returns the matches in document
// order. QuerySelectorAll does not guarantee that order for descendant axes.
func selectInOrder(root *xmlquery.Node, q *xpath.Expr) []*xmlquery.Node {
	matches := xmlquery.QuerySelectorAll(root, q)
	if len(matches) < 2 {
		return matches
	}
	want := make(map[*xmlquery.Node]bool, len(matches))
	for _, m := range matches {
		want[m] = true
	}
	ordered := make([]*xmlquery.Node, 0, len(want))
	var walk func(n *xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		if want[n] {
			ordered = append(ordered, n)
			delete(want, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return ordered
}
