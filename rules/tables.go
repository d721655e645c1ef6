package rules

import (
	"fmt"
	"strings"

	"github.com/tsawler/stylecheck/docx"
	"github.com/tsawler/stylecheck/report"
)

// Tables applies APA table rules: a single line above the header row and
// below the last row, no vertical rules between interior rows, and
// title-cased row labels in the first column.
func Tables(doc *docx.Document, log *report.Log) error {
	for _, t := range doc.Tables() {
		if formatTable(t) {
			log.Record(report.Format, fmt.Sprintf("Table %d formatted according to APA style.", t.Index()+1), t.Location())
		}
	}
	return nil
}

func formatTable(t *docx.Table) bool {
	changed := false
	setBorder := func(c *docx.Cell, side docx.BorderSide, want docx.Border) {
		if got, ok := c.Border(side); !ok || got != want {
			c.SetBorder(side, want)
			changed = true
		}
	}

	rows := t.Rows()
	last := len(rows) - 1
	for i, row := range rows {
		cells := row.Cells()
		for _, c := range cells {
			// A one-row table is both header and footer.
			if i == 0 {
				setBorder(c, docx.BorderTop, docx.Single)
			}
			if i == last {
				setBorder(c, docx.BorderBottom, docx.Single)
			}
			if i > 0 && i < last {
				setBorder(c, docx.BorderLeft, docx.NoBorder)
				setBorder(c, docx.BorderRight, docx.NoBorder)
			}
		}
		if len(cells) == 0 || cells[0].IsMergedContinuation() {
			continue
		}
		text := cells[0].Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		if want := titleCase(text); want != text {
			cells[0].SetText(want)
			changed = true
		}
	}
	return changed
}
