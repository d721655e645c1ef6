package docx

import (
	"strings"
	"testing"

	"github.com/tsawler/stylecheck/internal/docxtest"
)

func TestSection_SetMargins(t *testing.T) {
	doc := createTestDOCX(t, docxtest.Para("x")+`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/><w:cols w:space="720"/></w:sectPr>`)
	s := doc.Sections()[0]

	if got := s.Margins(); got != (Margins{}) {
		t.Errorf("Margins() = %+v, want zero for missing pgMar", got)
	}

	s.SetMargins(Uniform(Inch))
	if got := s.Margins(); got != Uniform(Inch) {
		t.Errorf("Margins() = %+v", got)
	}

	pgMar := childW(s.node, "pgMar")
	for _, a := range []string{"header", "footer", "gutter"} {
		if _, ok := wAttr(pgMar, a); !ok {
			t.Errorf("pgMar missing required attribute %s", a)
		}
	}

	out, err := doc.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	xml := string(partOf(t, out, "word/document.xml"))
	if strings.Index(xml, "<w:pgSz") > strings.Index(xml, "<w:pgMar") || strings.Index(xml, "<w:pgMar") > strings.Index(xml, "<w:cols") {
		t.Error("pgMar not placed between pgSz and cols")
	}
}

func TestSection_Header(t *testing.T) {
	body := docxtest.Para("body") +
		`<w:sectPr><w:headerReference w:type="first" r:id="rIdFirst"/><w:headerReference w:type="default" r:id="rIdHdr"/>` +
		`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/></w:sectPr>`
	data := docxtest.Fixture{
		Body:   body,
		Styles: docxtest.Styles,
		Headers: map[string]string{
			"rIdFirst": docxtest.Para("first page header"),
			"rIdHdr":   docxtest.Para("RUNNING HEAD"),
		},
	}.Bytes(t)

	doc, err := Load(data)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	h := doc.Sections()[0].Header()
	if h == nil {
		t.Fatal("Header() = nil")
	}
	if got := h.Text(); got != "RUNNING HEAD" {
		t.Errorf("Header().Text() = %q", got)
	}
	if _, err := doc.Sections()[0].AddHeader(); err == nil {
		t.Error("AddHeader() should fail when a default header exists")
	}
}

func TestSection_AddHeader(t *testing.T) {
	doc := createTestDOCX(t, docxtest.Para("body")+docxtest.SectPr(1440))
	s := doc.Sections()[0]

	if s.Header() != nil {
		t.Fatal("Header() should be nil")
	}
	h, err := s.AddHeader()
	if err != nil {
		t.Fatalf("AddHeader() error = %v", err)
	}
	p := h.Paragraphs()[0]
	p.SetAlignment(AlignRight)
	p.AddPageNumber()
	h.AddParagraph().AddRun("RUNNING HEAD: TITLE")

	out, err := doc.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	again, err := Load(out)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	h2 := again.Sections()[0].Header()
	if h2 == nil {
		t.Fatal("header lost after round trip")
	}
	paras := h2.Paragraphs()
	if len(paras) != 2 {
		t.Fatalf("len(Paragraphs()) = %d, want 2", len(paras))
	}
	if !paras[0].HasPageNumber() {
		t.Error("page number field lost")
	}
	if paras[0].Alignment() != AlignRight {
		t.Errorf("Alignment() = %v, want right", paras[0].Alignment())
	}
	if got := paras[1].Text(); got != "RUNNING HEAD: TITLE" {
		t.Errorf("Text() = %q", got)
	}

	ct := string(partOf(t, out, "[Content_Types].xml"))
	if !strings.Contains(ct, `PartName="/word/header1.xml"`) {
		t.Error("content type override for header1.xml missing")
	}
	rels := string(partOf(t, out, "word/_rels/document.xml.rels"))
	if !strings.Contains(rels, `Target="header1.xml"`) {
		t.Errorf("relationship to header1.xml missing: %s", rels)
	}
}

func TestIsPageInstr(t *testing.T) {
	tests := []struct {
		instr string
		want  bool
	}{
		{" PAGE ", true},
		{"PAGE \\* MERGEFORMAT", true},
		{"page", true},
		{"NUMPAGES", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isPageInstr(tt.instr); got != tt.want {
			t.Errorf("isPageInstr(%q) = %v, want %v", tt.instr, got, tt.want)
		}
	}
}
