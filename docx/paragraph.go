package docx

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Alignment is a paragraph's horizontal justification.
type Alignment int

const (
	// AlignNone means no explicit alignment (inherited from the style).
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignJustify
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "none"
	}
}

// jc returns the w:jc value for the alignment.
func (a Alignment) jc() string {
	if a == AlignJustify {
		return "both"
	}
	return a.String()
}

func parseAlignment(v string) Alignment {
	switch v {
	case "left", "start":
		return AlignLeft
	case "center":
		return AlignCenter
	case "right", "end":
		return AlignRight
	case "both", "distribute", "justify":
		return AlignJustify
	}
	return AlignNone
}

// Paragraph is a handle to a w:p element.
type Paragraph struct {
	doc   *Document
	node  *xmlquery.Node
	index int
}

// Index returns the paragraph's position within its container.
func (p *Paragraph) Index() int { return p.index }

// Location describes the paragraph's position for issue reports.
func (p *Paragraph) Location() string {
	return fmt.Sprintf("paragraph %d", p.index+1)
}

// Text returns the concatenated text of the paragraph's runs.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// IsBlank reports whether the paragraph has no visible text.
func (p *Paragraph) IsBlank() bool {
	return strings.TrimSpace(p.Text()) == ""
}

// Is reports whether p and o are handles to the same paragraph.
func (p *Paragraph) Is(o *Paragraph) bool {
	return o != nil && p.node == o.node
}

// Runs returns the paragraph's runs in document order, including runs nested
// in hyperlinks, insertions, smart tags and content controls. Deleted runs
// are skipped.
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	var walk func(n *xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != xmlquery.ElementNode || c.NamespaceURI != nsW {
				continue
			}
			switch c.Data {
			case "r":
				runs = append(runs, &Run{para: p, node: c})
			case "hyperlink", "ins", "smartTag", "fldSimple", "customXml", "sdt", "sdtContent":
				walk(c)
			}
		}
	}
	walk(p.node)
	return runs
}

// StyleID returns the paragraph's style id, or "" for the default style.
func (p *Paragraph) StyleID() string {
	v, _ := wAttr(childW(childW(p.node, "pPr"), "pStyle"), "val")
	return v
}

// Style returns the display name of the paragraph's style, e.g. "Title" or
// "Heading 2".
func (p *Paragraph) Style() string {
	return p.doc.styles.Name(p.StyleID())
}

// SetStyle sets the paragraph's style id.
func (p *Paragraph) SetStyle(styleID string) {
	setWAttr(ensureOrderedW(p.pPr(), "pStyle", pPrOrder), "val", styleID)
}

// HeadingLevel returns 1-9 for heading paragraphs and 0 otherwise.
func (p *Paragraph) HeadingLevel() int {
	return p.doc.styles.Resolve(p.StyleID()).HeadingLevel
}

// Alignment returns the paragraph's explicit alignment.
func (p *Paragraph) Alignment() Alignment {
	v, _ := wAttr(childW(childW(p.node, "pPr"), "jc"), "val")
	return parseAlignment(v)
}

// SetAlignment sets the paragraph's alignment. AlignNone removes it.
func (p *Paragraph) SetAlignment(a Alignment) {
	if a == AlignNone {
		removeChildW(childW(p.node, "pPr"), "jc")
		return
	}
	setWAttr(ensureOrderedW(p.pPr(), "jc", pPrOrder), "val", a.jc())
}

// LineSpacing returns the paragraph's explicit line spacing.
func (p *Paragraph) LineSpacing() (LineSpacing, bool) {
	spacing := p.spacing()
	line, ok := intAttr(spacing, "line")
	if !ok {
		return LineSpacing{}, false
	}
	rule, _ := wAttr(spacing, "lineRule")
	return parseLineSpacing(line, rule), true
}

// SetLineSpacing sets the paragraph's line spacing.
func (p *Paragraph) SetLineSpacing(ls LineSpacing) {
	spacing := ensureOrderedW(p.pPr(), "spacing", pPrOrder)
	setWAttr(spacing, "line", ls.line())
	setWAttr(spacing, "lineRule", ls.Rule.String())
}

// SpaceBefore returns the space above the paragraph.
func (p *Paragraph) SpaceBefore() (Length, bool) {
	v, ok := intAttr(p.spacing(), "before")
	return Length(v), ok
}

// SetSpaceBefore sets the space above the paragraph.
func (p *Paragraph) SetSpaceBefore(l Length) {
	spacing := ensureOrderedW(p.pPr(), "spacing", pPrOrder)
	setWAttr(spacing, "before", l.attr())
	removeWAttr(spacing, "beforeAutospacing")
	removeWAttr(spacing, "beforeLines")
}

// SpaceAfter returns the space below the paragraph.
func (p *Paragraph) SpaceAfter() (Length, bool) {
	v, ok := intAttr(p.spacing(), "after")
	return Length(v), ok
}

// SetSpaceAfter sets the space below the paragraph.
func (p *Paragraph) SetSpaceAfter(l Length) {
	spacing := ensureOrderedW(p.pPr(), "spacing", pPrOrder)
	setWAttr(spacing, "after", l.attr())
	removeWAttr(spacing, "afterAutospacing")
	removeWAttr(spacing, "afterLines")
}

// FirstLineIndent returns the first-line indent. Hanging indents are negative.
func (p *Paragraph) FirstLineIndent() (Length, bool) {
	ind := p.ind()
	if v, ok := intAttr(ind, "hanging"); ok {
		return Length(-v), true
	}
	v, ok := intAttr(ind, "firstLine")
	return Length(v), ok
}

// SetFirstLineIndent sets the first-line indent.
func (p *Paragraph) SetFirstLineIndent(l Length) {
	ind := ensureOrderedW(p.pPr(), "ind", pPrOrder)
	removeWAttr(ind, "hanging")
	removeWAttr(ind, "firstLineChars")
	removeWAttr(ind, "hangingChars")
	if l < 0 {
		removeWAttr(ind, "firstLine")
		setWAttr(ind, "hanging", (-l).attr())
		return
	}
	setWAttr(ind, "firstLine", l.attr())
}

// ClearFirstLineIndent removes any first-line or hanging indent.
func (p *Paragraph) ClearFirstLineIndent() {
	ind := p.ind()
	if ind == nil {
		return
	}
	for _, a := range []string{"firstLine", "hanging", "firstLineChars", "hangingChars"} {
		removeWAttr(ind, a)
	}
}

// LeftIndent returns the left (start) indent.
func (p *Paragraph) LeftIndent() (Length, bool) {
	ind := p.ind()
	if v, ok := intAttr(ind, "left"); ok {
		return Length(v), true
	}
	v, ok := intAttr(ind, "start")
	return Length(v), ok
}

// SetLeftIndent sets the left (start) indent.
func (p *Paragraph) SetLeftIndent(l Length) {
	ind := ensureOrderedW(p.pPr(), "ind", pPrOrder)
	setWAttr(ind, "left", l.attr())
	if _, ok := wAttr(ind, "start"); ok {
		setWAttr(ind, "start", l.attr())
	}
}

// PageBreakBefore reports whether the paragraph starts on a new page.
func (p *Paragraph) PageBreakBefore() bool {
	return onOff(childW(childW(p.node, "pPr"), "pageBreakBefore"))
}

// SetPageBreakBefore sets or clears the page-break-before flag.
func (p *Paragraph) SetPageBreakBefore(on bool) {
	if !on {
		removeChildW(childW(p.node, "pPr"), "pageBreakBefore")
		return
	}
	pb := ensureOrderedW(p.pPr(), "pageBreakBefore", pPrOrder)
	removeWAttr(pb, "val")
}

// HasPageBreak reports whether any run of the paragraph holds a page break.
func (p *Paragraph) HasPageBreak() bool {
	for _, r := range p.Runs() {
		if r.HasPageBreak() {
			return true
		}
	}
	return false
}

// SetText replaces the paragraph's text. The text goes into the first run
// that holds only text, keeping its formatting. Other text-only runs are
// removed; runs with non-text content (drawings, fields, note references)
// lose their text but stay in place.
func (p *Paragraph) SetText(text string) {
	runs := p.Runs()
	if len(runs) == 0 {
		p.AddRun(text)
		return
	}
	carrier := 0
	for i, r := range runs {
		if !r.HasNonText() {
			carrier = i
			break
		}
	}
	for i, r := range runs {
		switch {
		case i == carrier:
			r.SetText(text)
		case r.HasNonText():
			r.SetText("")
		default:
			removeNode(r.node)
		}
	}
}

// Clear removes all content of the paragraph but keeps its properties.
func (p *Paragraph) Clear() {
	var next *xmlquery.Node
	for c := p.node.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if !isW(c, "pPr") {
			removeNode(c)
		}
	}
}

// AddRun appends a run holding text to the paragraph.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{para: p, node: newW("r")}
	appendChild(p.node, r.node)
	if text != "" {
		r.SetText(text)
	}
	return r
}

// InsertParagraphBefore inserts a new paragraph holding text before p.
func (p *Paragraph) InsertParagraphBefore(text string) *Paragraph {
	n := newW("p")
	insertBefore(p.node, n)
	p.index++
	np := p.doc.paragraphFor(n)
	if text != "" {
		np.AddRun(text)
	}
	return np
}

// InsertParagraphAfter inserts a new paragraph holding text after p.
func (p *Paragraph) InsertParagraphAfter(text string) *Paragraph {
	n := newW("p")
	insertAfter(p.node, n)
	np := p.doc.paragraphFor(n)
	if text != "" {
		np.AddRun(text)
	}
	return np
}

func (p *Paragraph) pPr() *xmlquery.Node {
	return ensureFirstW(p.node, "pPr")
}

func (p *Paragraph) spacing() *xmlquery.Node {
	return childW(childW(p.node, "pPr"), "spacing")
}

func (p *Paragraph) ind() *xmlquery.Node {
	return childW(childW(p.node, "pPr"), "ind")
}
