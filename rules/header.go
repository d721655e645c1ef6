package rules

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/tsawler/stylecheck/docx"
	"github.com/tsawler/stylecheck/report"
)

// DefaultRunningHead is written into documents that have no header.
const DefaultRunningHead = "RUNNING HEAD: TITLE OF THE PAPER"

// firstHeader returns the first section's default header, creating it when
// missing.
func firstHeader(doc *docx.Document) (*docx.Header, error) {
	s := doc.Sections()[0]
	if h := s.Header(); h != nil {
		return h, nil
	}
	h, err := s.AddHeader()
	if err != nil {
		return nil, fmt.Errorf("adding header: %w", err)
	}
	return h, nil
}

// RunningHead requires an upper-case, left-aligned running head in the
// first section's header.
func RunningHead(doc *docx.Document, log *report.Log) error {
	h, err := firstHeader(doc)
	if err != nil {
		return err
	}

	var head *docx.Paragraph
	for _, p := range h.Paragraphs() {
		if strings.IndexFunc(p.Text(), unicode.IsLetter) >= 0 {
			head = p
			break
		}
	}
	if head == nil {
		paras := h.Paragraphs()
		if len(paras) > 0 && paras[0].IsBlank() && !paras[0].HasPageNumber() {
			head = paras[0]
		} else {
			head = h.AddParagraph()
		}
		head.SetText(DefaultRunningHead)
		head.SetAlignment(docx.AlignLeft)
		log.Record(report.Format, "Running head added to header", "header")
		return nil
	}

	if text := head.Text(); text != strings.ToUpper(text) {
		// Per run, so fields and formatting stay in place.
		for _, r := range head.Runs() {
			if t := r.Text(); t != strings.ToUpper(t) {
				r.SetText(strings.ToUpper(t))
			}
		}
		log.Record(report.Format, "Running head corrected to uppercase", "header")
	}
	if head.Alignment() != docx.AlignLeft && !head.HasPageNumber() {
		head.SetAlignment(docx.AlignLeft)
		log.Record(report.Format, "Running head aligned to left", "header")
	}
	return nil
}

// PageNumbers requires a right-aligned page number in the first section's
// header.
func PageNumbers(doc *docx.Document, log *report.Log) error {
	h, err := firstHeader(doc)
	if err != nil {
		return err
	}

	var num *docx.Paragraph
	for _, p := range h.Paragraphs() {
		if p.HasPageNumber() || isNumeral(p.Text()) {
			num = p
			break
		}
	}
	if num == nil {
		num = h.AddParagraph()
		num.SetAlignment(docx.AlignRight)
		num.AddPageNumber()
		log.Record(report.Format, "Page number added to header, right-aligned", "header")
		return nil
	}
	// A page number sharing its line with the running head keeps the
	// running head's alignment.
	if num.Alignment() != docx.AlignRight && isNumeral(num.Text()) {
		num.SetAlignment(docx.AlignRight)
		log.Record(report.Format, "Page number aligned to right", "header")
	}
	return nil
}

// isNumeral reports whether s is a page number: digits and nothing else but
// space.
func isNumeral(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
