package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tsawler/stylecheck/docx"
	"github.com/tsawler/stylecheck/report"
)

// citationPattern matches parenthetical author-date citations with an
// optional page pin, tolerating stray whitespace around the separators.
var citationPattern = regexp.MustCompile(`\(([^()]+?)\s*,\s*(\d{4})\s*(?:,\s*p\.\s*(\d+))?\s*\)`)

// canonicalCitation renders a citation match as "(Author, YYYY[, p. N])".
func canonicalCitation(author, year, page string) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(strings.Join(strings.Fields(author), " "))
	sb.WriteString(", ")
	sb.WriteString(year)
	if page != "" {
		sb.WriteString(", p. ")
		sb.WriteString(page)
	}
	sb.WriteByte(')')
	return sb.String()
}

// Citations rewrites in-text citations into canonical author-date form.
func Citations(doc *docx.Document, log *report.Log) error {
	for _, p := range doc.Paragraphs() {
		rewriteCitations(p, log)
	}
	return nil
}

// span is a run's byte range within its paragraph's text.
type span struct {
	run        *docx.Run
	start, end int
}

func rewriteCitations(p *docx.Paragraph, log *report.Log) {
	var spans []span
	var sb strings.Builder
	for _, r := range p.Runs() {
		t := r.Text()
		spans = append(spans, span{run: r, start: sb.Len(), end: sb.Len() + len(t)})
		sb.WriteString(t)
	}
	text := sb.String()

	matches := citationPattern.FindAllStringSubmatchIndex(text, -1)
	// Walk backwards so edits never shift the offsets of earlier matches.
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		literal := text[m[0]:m[1]]
		page := ""
		if m[6] >= 0 {
			page = text[m[6]:m[7]]
		}
		want := canonicalCitation(text[m[2]:m[3]], text[m[4]:m[5]], page)
		if want == literal {
			continue
		}
		if err := replaceSpan(spans, m[0], m[1], want); err != nil {
			log.Record(report.Citation, fmt.Sprintf("Could not correct in-text citation %s: %v", literal, err), p.Location())
			continue
		}
		log.Record(report.Citation, fmt.Sprintf("Corrected in-text citation format to author-date: %s to %s", literal, want), p.Location())
	}
}

// replaceSpan replaces the paragraph text in [start, end) with repl. The
// replacement goes into the first run touched; the remainder of the last run
// is kept and runs in between are emptied.
func replaceSpan(spans []span, start, end int, repl string) error {
	var touched []span
	for _, s := range spans {
		if s.end > start && s.start < end {
			touched = append(touched, s)
		}
	}
	if len(touched) == 0 {
		return fmt.Errorf("no run holds the citation")
	}
	for _, s := range touched {
		if s.run.HasNonText() {
			return fmt.Errorf("it spans embedded content")
		}
	}

	first, last := touched[0], touched[len(touched)-1]
	firstText := first.run.Text()
	if len(touched) == 1 {
		first.run.SetText(firstText[:start-first.start] + repl + firstText[end-first.start:])
		return nil
	}
	first.run.SetText(firstText[:start-first.start] + repl)
	for _, s := range touched[1 : len(touched)-1] {
		s.run.SetText("")
	}
	lastText := last.run.Text()
	last.run.SetText(lastText[end-last.start:])
	return nil
}
