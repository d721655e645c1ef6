package rules

import (
	"strings"

	"github.com/tsawler/stylecheck/docx"
	"github.com/tsawler/stylecheck/report"
)

// titlePageWindow is how many leading paragraphs count as the title page.
const titlePageWindow = 12

// titlePageParagraphs returns the leading paragraphs that count as the
// title page.
func titlePageParagraphs(doc *docx.Document) []*docx.Paragraph {
	paras := doc.Paragraphs()
	if len(paras) > titlePageWindow {
		paras = paras[:titlePageWindow]
	}
	return paras
}

// findTitleAndAuthor returns the first Title-styled paragraph and the first
// non-blank paragraph after it. Without a title the author search starts at
// the second paragraph. Either result may be nil.
func findTitleAndAuthor(paras []*docx.Paragraph) (title, author *docx.Paragraph) {
	start := 1
	for i, p := range paras {
		if p.Style() == "Title" {
			title = p
			start = i + 1
			break
		}
	}
	for i := start; i < len(paras); i++ {
		if !paras[i].IsBlank() {
			return title, paras[i]
		}
	}
	return title, nil
}

// TitlePage checks the title, the author information line and the Author
// Note among the first paragraphs of the document.
func TitlePage(doc *docx.Document, log *report.Log) error {
	paras := titlePageParagraphs(doc)
	title, author := findTitleAndAuthor(paras)
	if title == nil {
		log.RequireAction(report.Format, "Add title to upper half of first page")
	} else {
		if text := title.Text(); !isTitleCase(text) {
			log.Record(report.Format, "Title case was used for title", title.Location())
			title.SetText(titleCase(text))
		}
		if title.Alignment() != docx.AlignCenter {
			log.Record(report.Format, "Title was centered", title.Location())
			title.SetAlignment(docx.AlignCenter)
		}
		if runs := title.Runs(); !allBold(runs) {
			log.Record(report.Format, "Title was bolded", title.Location())
			setBold(runs)
		}
	}

	if author == nil {
		log.RequireAction(report.Format, "Add author information to upper half of first page")
	} else {
		if author.Alignment() != docx.AlignCenter {
			log.Record(report.Format, "Author information was centered", author.Location())
			author.SetAlignment(docx.AlignCenter)
		}
		if ls, ok := author.LineSpacing(); !ok || !ls.IsExactly(24) {
			log.Record(report.Format, "Author information line spacing was corrected", author.Location())
			author.SetLineSpacing(docx.Exactly(24))
		}
	}

	var note *docx.Paragraph
	for _, p := range paras {
		if strings.Contains(p.Text(), "Author Note") {
			note = p
			break
		}
	}
	if note == nil {
		log.RequireAction(report.Format, "Add Author Note to upper half of first page")
		return nil
	}
	if note.Alignment() != docx.AlignCenter {
		log.Record(report.Format, "Author Note was centered", note.Location())
		note.SetAlignment(docx.AlignCenter)
	}
	if runs := note.Runs(); !allBold(runs) {
		log.Record(report.Format, "Author Note was bolded", note.Location())
		setBold(runs)
	}
	return nil
}
