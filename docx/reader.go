// Package docx loads, edits and re-serializes DOCX (Office Open XML) documents.
//
// A Document is loaded from bytes with Load, inspected and changed through
// Section, Paragraph, Run, Table and InlineShape handles, and written back
// with Serialize. Markup the package does not model is carried through a
// load/serialize cycle unchanged.
package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/tsawler/stylecheck/format"
)

const (
	contentTypesPart = "[Content_Types].xml"
	defaultMainPart  = "word/document.xml"
	defaultStyles    = "word/styles.xml"

	relStyles = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
)

var headerRefQuery = xpath.MustCompile(
	`//*[local-name()='headerReference' and namespace-uri()='` + nsW + `']`)

// Load parses DOCX bytes into a Document. It fails with a
// *MalformedDocumentError when the bytes are not a DOCX container, a mandatory
// part is missing or not well-formed, or a header reference is dangling.
// On failure no Document is returned.
func Load(data []byte) (*Document, error) {
	f, err := format.DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, malformed("not a ZIP container", err)
	}
	if f != format.DOCX {
		return nil, malformed(fmt.Sprintf("input is %s, not DOCX", f), nil)
	}

	p, err := readPackage(data)
	if err != nil {
		return nil, malformed("reading container", err)
	}

	ct := p.get(contentTypesPart)
	if ct == nil {
		return nil, malformed("missing "+contentTypesPart, nil)
	}
	if err := checkWellFormed(ct.data); err != nil {
		return nil, malformed("parsing "+contentTypesPart, err)
	}

	pkgRels, err := p.loadRelationships("")
	if err != nil {
		return nil, malformed("parsing package relationships", err)
	}
	mainName, ok := pkgRels.ofType(relOfficeDocument)
	if !ok {
		mainName = defaultMainPart
	}
	if p.get(mainName) == nil {
		return nil, malformed("missing main document part "+mainName, nil)
	}

	main, err := p.parse(mainName)
	if err != nil {
		return nil, malformed("parsing main document part", err)
	}
	root := rootElement(main.tree)
	if !isW(root, "document") {
		return nil, malformed(mainName+": root element is not w:document", nil)
	}
	body := childW(root, "body")
	if body == nil {
		return nil, malformed(mainName+": missing w:body", nil)
	}

	mainRels, err := p.loadRelationships(mainName)
	if err != nil {
		return nil, malformed("parsing document relationships", err)
	}

	doc := &Document{
		pkg:      p,
		main:     main,
		body:     body,
		headers:  make(map[string]*part),
		mainRels: mainRels,
	}

	if err := doc.loadHeaders(); err != nil {
		return nil, err
	}
	doc.styles = NewStyleResolver(loadStyles(p, mainRels))

	if len(xmlquery.QuerySelectorAll(body, sectPrQuery)) == 0 {
		appendChild(body, defaultSectPr())
	}

	return doc, nil
}

// loadHeaders parses every header part referenced from a section.
func (d *Document) loadHeaders() error {
	for _, ref := range xmlquery.QuerySelectorAll(d.body, headerRefQuery) {
		id, _ := attrNS(ref, nsR, "id")
		if id == "" {
			return malformed("header reference without r:id", nil)
		}
		name, ok := d.mainRels.target(id)
		if !ok {
			return malformed(fmt.Sprintf("header reference %s has no relationship", id), nil)
		}
		if _, done := d.headers[name]; done {
			continue
		}
		if d.pkg.get(name) == nil {
			return malformed(fmt.Sprintf("header reference %s points to missing part %s", id, name), nil)
		}
		pt, err := d.pkg.parse(name)
		if err != nil {
			return malformed("parsing header part", err)
		}
		if !isW(rootElement(pt.tree), "hdr") {
			return malformed(name+": root element is not w:hdr", nil)
		}
		d.headers[name] = pt
	}
	return nil
}

// loadStyles decodes styles.xml. Styles are optional; an absent or unreadable
// part leaves names to be derived from style ids.
func loadStyles(p *pkg, rels *relationships) *stylesXML {
	name, ok := rels.ofType(relStyles)
	if !ok {
		name = defaultStyles
	}
	pt := p.get(name)
	if pt == nil {
		return nil
	}
	var styles stylesXML
	if err := xml.Unmarshal(pt.data, &styles); err != nil {
		return nil
	}
	return &styles
}

// defaultSectPr builds US Letter section properties with 1in margins.
func defaultSectPr() *xmlquery.Node {
	sectPr := newW("sectPr")

	pgSz := newW("pgSz")
	setWAttr(pgSz, "w", "12240")
	setWAttr(pgSz, "h", "15840")
	appendChild(sectPr, pgSz)

	pgMar := newW("pgMar")
	for _, a := range []struct{ name, val string }{
		{"top", "1440"}, {"right", "1440"}, {"bottom", "1440"}, {"left", "1440"},
		{"header", "720"}, {"footer", "720"}, {"gutter", "0"},
	} {
		setWAttr(pgMar, a.name, a.val)
	}
	appendChild(sectPr, pgMar)

	return sectPr
}
