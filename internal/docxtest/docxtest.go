// Package docxtest builds small DOCX archives in memory for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"testing"
)

// Namespace declarations carried by every generated document and header.
const Namespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" ` +
	`xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
	`xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"`

// Styles defines the paragraph styles the checks look for.
const Styles = `
  <w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
  <w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/></w:style>
  <w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:pPr><w:outlineLvl w:val="0"/></w:pPr></w:style>
  <w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/><w:pPr><w:outlineLvl w:val="1"/></w:pPr></w:style>
  <w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/><w:basedOn w:val="Normal"/><w:pPr><w:outlineLvl w:val="2"/></w:pPr></w:style>
  <w:style w:type="paragraph" w:styleId="Heading4"><w:name w:val="heading 4"/><w:basedOn w:val="Normal"/><w:pPr><w:outlineLvl w:val="3"/></w:pPr></w:style>
  <w:style w:type="paragraph" w:styleId="Heading5"><w:name w:val="heading 5"/><w:basedOn w:val="Normal"/><w:pPr><w:outlineLvl w:val="4"/></w:pPr></w:style>
  <w:style w:type="paragraph" w:styleId="Caption"><w:name w:val="caption"/><w:basedOn w:val="Normal"/></w:style>`

// Fixture describes a document to build.
type Fixture struct {
	// Body is the inner XML of w:body.
	Body string
	// Styles is the inner XML of w:styles; empty omits styles.xml.
	Styles string
	// Headers maps a relationship id to the inner XML of a w:hdr part.
	Headers map[string]string
	// Media maps a relationship id to picture bytes stored as word/media/<id>.png.
	Media map[string][]byte
	// SkipContentTypes omits [Content_Types].xml.
	SkipContentTypes bool
}

// New builds a document with the standard styles and the given body.
func New(t testing.TB, body string) []byte {
	t.Helper()
	return Fixture{Body: body, Styles: Styles}.Bytes(t)
}

// Bytes builds the DOCX archive.
func (f Fixture) Bytes(t testing.TB) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	write := func(name, content string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	if !f.SkipContentTypes {
		var overrides strings.Builder
		overrides.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
		for i := range sortedKeys(f.Headers) {
			fmt.Fprintf(&overrides, `<Override PartName="/word/header%d.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"/>`, i+1)
		}
		write("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Default Extension="png" ContentType="image/png"/>
  `+overrides.String()+`
</Types>`)
	}

	write("_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`)

	write("word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document `+Namespaces+`>
  <w:body>`+f.Body+`</w:body>
</w:document>`)

	var rels strings.Builder
	if f.Styles != "" {
		rels.WriteString(`<Relationship Id="rIdStyles" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)
		write("word/styles.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`+f.Styles+`</w:styles>`)
	}
	for i, id := range sortedKeys(f.Headers) {
		name := fmt.Sprintf("header%d.xml", i+1)
		fmt.Fprintf(&rels, `<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/header" Target="%s"/>`, id, name)
		write("word/"+name, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:hdr `+Namespaces+`>`+f.Headers[id]+`</w:hdr>`)
	}
	for _, id := range sortedKeys(f.Media) {
		name := "media/" + id + ".png"
		fmt.Fprintf(&rels, `<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="%s"/>`, id, name)
		w, err := zw.Create("word/" + name)
		if err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
		if _, err := w.Write(f.Media[id]); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if rels.Len() > 0 {
		write("word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+rels.String()+`</Relationships>`)
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Escape returns s escaped for use as XML character data.
func Escape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

// Run returns a w:r holding text with optional run properties.
func Run(rPr, text string) string {
	if rPr != "" {
		rPr = "<w:rPr>" + rPr + "</w:rPr>"
	}
	return `<w:r>` + rPr + `<w:t xml:space="preserve">` + Escape(text) + `</w:t></w:r>`
}

// Para returns a paragraph with a single plain run.
func Para(text string) string {
	return ParaWith("", "", text)
}

// Styled returns a paragraph with the given style id and a single run.
func Styled(styleID, text string) string {
	return ParaWith(`<w:pStyle w:val="`+styleID+`"/>`, "", text)
}

// ParaWith returns a paragraph with paragraph properties, run properties and
// a single run. An empty text yields a paragraph without runs.
func ParaWith(pPr, rPr, text string) string {
	if pPr != "" {
		pPr = "<w:pPr>" + pPr + "</w:pPr>"
	}
	run := ""
	if text != "" {
		run = Run(rPr, text)
	}
	return `<w:p>` + pPr + run + `</w:p>`
}

// SectPr returns body section properties with uniform margins in twips.
func SectPr(margin int) string {
	return fmt.Sprintf(`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/>`+
		`<w:pgMar w:top="%[1]d" w:right="%[1]d" w:bottom="%[1]d" w:left="%[1]d" w:header="720" w:footer="720" w:gutter="0"/></w:sectPr>`, margin)
}

// Picture returns a paragraph holding an inline picture of the given size in
// inches that embeds relationship id.
func Picture(id string, widthIn, heightIn float64) string {
	cx := int64(widthIn * 914400)
	cy := int64(heightIn * 914400)
	return fmt.Sprintf(`<w:p><w:r><w:drawing><wp:inline>`+
		`<wp:extent cx="%[2]d" cy="%[3]d"/><wp:docPr id="1" name="Picture %[1]s" descr="figure"/>`+
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
		`<pic:pic><pic:blipFill><a:blip r:embed="%[1]s"/></pic:blipFill></pic:pic>`+
		`</a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>`, id, cx, cy)
}
