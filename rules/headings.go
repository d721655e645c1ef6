package rules

import (
	"fmt"
	"strings"

	"github.com/tsawler/stylecheck/docx"
	"github.com/tsawler/stylecheck/report"
)

// headingFormat is the APA presentation of one heading level.
type headingFormat struct {
	align  docx.Alignment
	indent bool // 0.5 inch left indent
	italic bool
	period bool // heading text ends with a period
}

var headingFormats = map[string]headingFormat{
	"Heading 1": {align: docx.AlignCenter},
	"Heading 2": {align: docx.AlignLeft},
	"Heading 3": {align: docx.AlignLeft, italic: true},
	"Heading 4": {align: docx.AlignLeft, indent: true, period: true},
	"Heading 5": {align: docx.AlignLeft, indent: true, italic: true, period: true},
}

// HeadingLevels formats paragraphs styled Heading 1 to Heading 5. Every
// heading processed is reported, whether or not it needed a change.
func HeadingLevels(doc *docx.Document, log *report.Log) error {
	for _, p := range doc.Paragraphs() {
		f, ok := headingFormats[p.Style()]
		if !ok || p.IsBlank() {
			continue
		}

		text := titleCase(p.Text())
		if f.period && !strings.HasSuffix(text, ".") {
			text += "."
		}
		if text != p.Text() {
			p.SetText(text)
		}

		p.SetAlignment(f.align)
		if f.indent {
			p.SetLeftIndent(docx.Inches(0.5))
		}
		for _, r := range p.Runs() {
			r.SetBold(true)
			if f.italic {
				r.SetItalic(true)
			}
		}
		log.Record(report.Format, fmt.Sprintf("Formatted heading: '%s' to APA style.", quote(text)), p.Location())
	}
	return nil
}
