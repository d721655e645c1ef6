package rules

import (
	"strings"

	"github.com/tsawler/stylecheck/docx"
	"github.com/tsawler/stylecheck/report"
)

// abstractWordLimit caps the abstract body.
const abstractWordLimit = 250

// findAbstract returns the index of the first paragraph reading "Abstract",
// or -1.
func findAbstract(paras []*docx.Paragraph) int {
	for i, p := range paras {
		if strings.EqualFold(strings.TrimSpace(p.Text()), "abstract") {
			return i
		}
	}
	return -1
}

// Abstract formats the Abstract heading, starts it on a new page and trims
// the abstract body that follows it.
func Abstract(doc *docx.Document, log *report.Log) error {
	paras := doc.Paragraphs()
	idx := findAbstract(paras)
	if idx < 0 {
		log.RequireAction(report.Format, "Abstract heading should be added to the document")
		return nil
	}
	heading := paras[idx]

	if heading.Alignment() != docx.AlignCenter {
		log.Record(report.Format, "Abstract heading was centered", heading.Location())
		heading.SetAlignment(docx.AlignCenter)
	}
	if runs := heading.Runs(); !allBold(runs) {
		log.Record(report.Format, "Abstract heading was bolded", heading.Location())
		setBold(runs)
	}
	if !heading.PageBreakBefore() && !(idx > 0 && paras[idx-1].HasPageBreak()) {
		brk := heading.InsertParagraphBefore("")
		r := brk.AddRun("")
		r.SetFontName(Font)
		r.AddPageBreak()
		log.Record(report.Format, "Abstract was placed on a separate page", heading.Location())
	}

	if idx+1 >= len(paras) {
		return nil
	}
	body := paras[idx+1]
	if indent, ok := body.FirstLineIndent(); ok && indent != 0 {
		log.Record(report.Format, "Abstract first line indent removed", body.Location())
		body.ClearFirstLineIndent()
	}
	if text, cut := truncateWords(body.Text(), abstractWordLimit); cut {
		log.Record(report.Format, "Abstract was cut to 250 words", body.Location())
		body.SetText(text)
	}
	return nil
}

// Keywords formats the keywords line two paragraphs below the Abstract
// heading.
func Keywords(doc *docx.Document, log *report.Log) error {
	paras := doc.Paragraphs()
	idx := findAbstract(paras)
	if idx < 0 || idx+2 >= len(paras) {
		log.RequireAction(report.Format, "Add Keywords section below Abstract")
		return nil
	}
	heading, kw := paras[idx], paras[idx+2]

	// The prefix is read from the heading, not from the keywords line.
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(heading.Text())), "keywords:") {
		log.RequireAction(report.Format, "Keywords heading should begin with word: 'Keywords:'")
	}
	if runs := heading.Runs(); !anyItalic(runs) {
		log.Record(report.Format, "Keywords heading is not italicized", heading.Location())
		setItalic(runs)
	}

	if left, ok := kw.LeftIndent(); !ok || left != docx.Inches(0.5) {
		log.Record(report.Format, "Keywords section indented by 0.5 inches", kw.Location())
		kw.SetLeftIndent(docx.Inches(0.5))
	}

	text := kw.Text()
	_, list, found := strings.Cut(text, ":")
	if !found {
		log.RequireAction(report.Format, "Keywords line should read 'Keywords: term, term'")
		return nil
	}
	terms := strings.Split(list, ",")
	for i, t := range terms {
		terms[i] = strings.ToLower(strings.TrimSpace(t))
	}
	want := "Keywords: " + strings.Join(terms, ", ")

	runs := kw.Runs()
	if len(runs) == 1 && text == want && runs[0].Italic() {
		return nil
	}
	kw.Clear()
	r := kw.AddRun(want)
	r.SetFontName(Font)
	r.SetItalic(true)
	log.Record(report.Format, "Keywords were normalized", kw.Location())
	return nil
}
