package rules

import (
	"bytes"
	"fmt"
	"image"
	"regexp"
	"strconv"
	"strings"

	// Image formats for resolution checks.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/stylecheck/docx"
	"github.com/tsawler/stylecheck/report"
)

// minFigureDPI is the lowest acceptable print resolution.
const minFigureDPI = 300

var figureLabel = regexp.MustCompile(`^\s*Figure\b\s*(\d+)?`)

// Figures numbers figures sequentially and gives each an APA caption: the
// bold label "Figure N" followed by an italic title. Pictures sharing a
// paragraph form one figure. Low-resolution images are reported for
// replacement.
func Figures(doc *docx.Document, log *report.Log) error {
	n := 0
	var prev *docx.Paragraph
	for _, shape := range doc.InlineShapes() {
		p := shape.Paragraph()
		if p == nil || p.Is(prev) {
			continue
		}
		prev = p
		n++

		label := "Figure " + strconv.Itoa(n)
		if caption := shape.Caption(); caption == nil {
			addCaption(p, label, shape.Description())
			log.Record(report.Format, fmt.Sprintf("%s formatted with APA-style caption.", label), shape.Location())
		} else if renumberCaption(caption, n) {
			log.Record(report.Format, fmt.Sprintf("%s caption renumbered.", label), caption.Location())
		}

		if dpi, ok := resolution(shape); ok && dpi < minFigureDPI {
			log.RequireAction(report.Format, fmt.Sprintf("%s resolution is %.0f dpi; replace it with an image of at least %d dpi", label, dpi, minFigureDPI))
		}
	}
	return nil
}

func addCaption(p *docx.Paragraph, label, title string) {
	if title = strings.TrimSpace(title); title == "" {
		title = "Brief description here"
	}
	c := p.InsertParagraphAfter("")
	c.SetAlignment(docx.AlignCenter)
	c.SetLineSpacing(docx.Multiple(2))

	r := c.AddRun(label)
	r.SetFontName(Font)
	r.SetBold(true)
	r = c.AddRun(": " + title)
	r.SetFontName(Font)
	r.SetItalic(true)
}

// renumberCaption makes the caption's label read "Figure n".
func renumberCaption(c *docx.Paragraph, n int) bool {
	num := strconv.Itoa(n)
	text := c.Text()
	m := figureLabel.FindStringSubmatchIndex(text)
	if m != nil && m[2] >= 0 && text[m[2]:m[3]] == num {
		return false
	}

	label := "Figure " + num
	if m == nil {
		c.SetText(label + ": " + strings.TrimSpace(text))
		return true
	}
	// Keep the caption's run formatting when the label sits in the first run.
	if runs := c.Runs(); len(runs) > 0 {
		if first := runs[0].Text(); len(first) >= m[1] && first[:m[1]] == text[:m[1]] {
			runs[0].SetText(label + first[m[1]:])
			return true
		}
	}
	c.SetText(label + text[m[1]:])
	return true
}

// resolution returns the effective horizontal resolution of the shape's
// picture at its displayed size.
func resolution(shape *docx.InlineShape) (float64, bool) {
	data, _, err := shape.Image()
	if err != nil {
		return 0, false
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, false
	}
	width, _ := shape.Size()
	if width <= 0 {
		return 0, false
	}
	return float64(cfg.Width) / width, true
}
