package docx

import (
	"math"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Run is a handle to a w:r element.
type Run struct {
	para *Paragraph
	node *xmlquery.Node
}

// Paragraph returns the paragraph that owns the run.
func (r *Run) Paragraph() *Paragraph { return r.para }

// Text returns the run's text. Tabs and line breaks are rendered as "\t" and
// "\n"; page and column breaks contribute nothing.
func (r *Run) Text() string {
	var sb strings.Builder
	for c := r.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode || c.NamespaceURI != nsW {
			continue
		}
		switch c.Data {
		case "t":
			sb.WriteString(c.InnerText())
		case "tab", "ptab":
			sb.WriteByte('\t')
		case "br":
			if t, _ := wAttr(c, "type"); t == "" || t == "textWrapping" {
				sb.WriteByte('\n')
			}
		case "cr":
			sb.WriteByte('\n')
		case "noBreakHyphen":
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

// isTextContent reports whether c is run content produced by SetText.
func isTextContent(c *xmlquery.Node) bool {
	if c.Type != xmlquery.ElementNode || c.NamespaceURI != nsW {
		return false
	}
	switch c.Data {
	case "t", "tab", "ptab", "cr", "noBreakHyphen", "softHyphen", "sym":
		return true
	case "br":
		t, _ := wAttr(c, "type")
		return t == "" || t == "textWrapping"
	}
	return false
}

// SetText replaces the run's text content. Non-text content such as drawings,
// field characters and page breaks is kept in place; the new text takes the
// position of the first text element.
func (r *Run) SetText(text string) {
	var anchor *xmlquery.Node
	var next *xmlquery.Node
	for c := r.node.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if !isTextContent(c) {
			continue
		}
		if anchor == nil {
			anchor = newText("")
			insertBefore(c, anchor)
		}
		removeNode(c)
	}

	nodes := textNodes(text)
	for _, n := range nodes {
		if anchor != nil {
			insertBefore(anchor, n)
		} else {
			appendChild(r.node, n)
		}
	}
	if anchor != nil {
		removeNode(anchor)
	}
}

// textNodes splits text into w:t, w:tab and w:br elements.
func textNodes(text string) []*xmlquery.Node {
	var nodes []*xmlquery.Node
	var sb strings.Builder
	flush := func() {
		if sb.Len() == 0 {
			return
		}
		s := sb.String()
		t := newW("t")
		if strings.TrimSpace(s) != s {
			setAttrNS(t, nsXML, "space", "preserve")
		}
		appendChild(t, newText(s))
		nodes = append(nodes, t)
		sb.Reset()
	}
	for _, ch := range text {
		switch ch {
		case '\t':
			flush()
			nodes = append(nodes, newW("tab"))
		case '\n':
			flush()
			nodes = append(nodes, newW("br"))
		case '\r':
		default:
			sb.WriteRune(ch)
		}
	}
	flush()
	return nodes
}

// FontName returns the run's explicit ASCII font, or "".
func (r *Run) FontName() string {
	fonts := childW(childW(r.node, "rPr"), "rFonts")
	if v, ok := wAttr(fonts, "ascii"); ok {
		return v
	}
	v, _ := wAttr(fonts, "hAnsi")
	return v
}

// SetFontName sets the run's font for ASCII, high-ANSI and complex scripts.
// Theme font references, which take precedence, are removed.
func (r *Run) SetFontName(name string) {
	fonts := ensureOrderedW(r.rPr(), "rFonts", rPrOrder)
	for _, a := range []string{"ascii", "hAnsi", "cs"} {
		setWAttr(fonts, a, name)
	}
	for _, a := range []string{"asciiTheme", "hAnsiTheme", "cstheme"} {
		removeWAttr(fonts, a)
	}
}

// FontSize returns the run's explicit font size in points.
func (r *Run) FontSize() (float64, bool) {
	halfPoints, ok := intAttr(childW(childW(r.node, "rPr"), "sz"), "val")
	if !ok {
		return 0, false
	}
	return float64(halfPoints) / 2, true
}

// SetFontSize sets the run's font size in points (half-point resolution).
func (r *Run) SetFontSize(pt float64) {
	sz := ensureOrderedW(r.rPr(), "sz", rPrOrder)
	setWAttr(sz, "val", strconv.FormatInt(int64(math.Round(pt*2)), 10))
}

// Bold reports whether the run is explicitly bold.
func (r *Run) Bold() bool {
	return onOff(childW(childW(r.node, "rPr"), "b"))
}

// SetBold sets the run's bold toggle.
func (r *Run) SetBold(on bool) {
	r.setToggle("b", on)
}

// Italic reports whether the run is explicitly italic.
func (r *Run) Italic() bool {
	return onOff(childW(childW(r.node, "rPr"), "i"))
}

// SetItalic sets the run's italic toggle.
func (r *Run) SetItalic(on bool) {
	r.setToggle("i", on)
}

// Color returns the run's font color as a hex string or "auto".
func (r *Run) Color() string {
	v, _ := wAttr(childW(childW(r.node, "rPr"), "color"), "val")
	return v
}

// SetColor sets the run's font color.
func (r *Run) SetColor(hex string) {
	c := ensureOrderedW(r.rPr(), "color", rPrOrder)
	setWAttr(c, "val", hex)
	removeWAttr(c, "themeColor")
	removeWAttr(c, "themeShade")
	removeWAttr(c, "themeTint")
}

// AddPageBreak appends a page break to the run.
func (r *Run) AddPageBreak() {
	br := newW("br")
	setWAttr(br, "type", "page")
	appendChild(r.node, br)
}

// HasPageBreak reports whether the run holds a page break.
func (r *Run) HasPageBreak() bool {
	for _, br := range childrenW(r.node, "br") {
		if t, _ := wAttr(br, "type"); t == "page" {
			return true
		}
	}
	return false
}

// HasNonText reports whether the run holds content other than text, such as
// a drawing, an embedded object or a field character.
func (r *Run) HasNonText() bool {
	for c := r.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode || isW(c, "rPr") || isTextContent(c) {
			continue
		}
		return true
	}
	return false
}

func (r *Run) setToggle(local string, on bool) {
	el := ensureOrderedW(r.rPr(), local, rPrOrder)
	if on {
		removeWAttr(el, "val")
		return
	}
	setWAttr(el, "val", "0")
}

func (r *Run) rPr() *xmlquery.Node {
	return ensureFirstW(r.node, "rPr")
}
