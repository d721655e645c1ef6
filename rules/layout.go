package rules

import (
	"fmt"

	"github.com/tsawler/stylecheck/docx"
	"github.com/tsawler/stylecheck/report"
)

// FrontMatterFont sets every run of every body paragraph to 12 pt Times New
// Roman. Runs without an explicit size inherit it and are left alone.
func FrontMatterFont(doc *docx.Document, log *report.Log) error {
	for _, p := range doc.Paragraphs() {
		for _, r := range p.Runs() {
			if r.FontName() != Font {
				log.Record(report.Format, fmt.Sprintf("Times New Roman was used for: '%s'", quote(r.Text())), p.Location())
				r.SetFontName(Font)
			}
			if size, ok := r.FontSize(); ok && size != 12 {
				log.Record(report.Format, fmt.Sprintf("Font size 12 was used instead of %g for: '%s'", size, quote(r.Text())), p.Location())
				r.SetFontSize(12)
			}
		}
	}
	return nil
}

// Margins sets every section's margins to one inch on all sides.
func Margins(doc *docx.Document, log *report.Log) error {
	want := docx.Uniform(docx.Inch)
	for _, s := range doc.Sections() {
		if s.Margins() != want {
			log.Record(report.Format, "Margins were corrected to 1 inch on all sides", s.Location())
			s.SetMargins(want)
		}
	}
	return nil
}

// LineSpacing double-spaces every non-blank body paragraph and removes extra
// space before and after it. The title-page author line keeps the exact 24pt
// spacing TitlePage gives it.
func LineSpacing(doc *docx.Document, log *report.Log) error {
	_, author := findTitleAndAuthor(titlePageParagraphs(doc))
	for _, p := range doc.Paragraphs() {
		if p.IsBlank() {
			continue
		}
		ls, ok := p.LineSpacing()
		authorLine := author != nil && p.Is(author) && ok && ls.IsExactly(24)
		if !authorLine && (!ok || !ls.IsMultiple(2)) {
			log.Record(report.Format, fmt.Sprintf("Line spacing corrected to 2 for paragraph: '%s'", quote(p.Text())), p.Location())
			p.SetLineSpacing(docx.Multiple(2))
		}
		if after, ok := p.SpaceAfter(); ok && after > 0 {
			log.Record(report.Format, "Extra space after paragraph removed", p.Location())
			p.SetSpaceAfter(0)
		}
		if before, ok := p.SpaceBefore(); ok && before > 0 {
			log.Record(report.Format, "Extra space before paragraph removed", p.Location())
			p.SetSpaceBefore(0)
		}
	}
	return nil
}
