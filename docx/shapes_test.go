package docx

import (
	"bytes"
	"math"
	"testing"

	"github.com/tsawler/stylecheck/internal/docxtest"
)

func TestInlineShapes(t *testing.T) {
	png := []byte("\x89PNG fake image bytes")
	body := docxtest.Para("Intro") +
		docxtest.Picture("rIdImg1", 4, 3) +
		docxtest.Styled("Caption", "Figure 1 Results") +
		docxtest.Picture("rIdImg2", 2, 1) +
		docxtest.Para("Not a caption") +
		docxtest.SectPr(1440)
	data := docxtest.Fixture{
		Body:   body,
		Styles: docxtest.Styles,
		Media:  map[string][]byte{"rIdImg1": png, "rIdImg2": png},
	}.Bytes(t)

	doc, err := Load(data)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	shapes := doc.InlineShapes()
	if len(shapes) != 2 {
		t.Fatalf("len(InlineShapes()) = %d, want 2", len(shapes))
	}

	first := shapes[0]
	w, h := first.Size()
	if math.Abs(w-4) > 1e-6 || math.Abs(h-3) > 1e-6 {
		t.Errorf("Size() = %v x %v, want 4 x 3", w, h)
	}
	if got := first.EmbedID(); got != "rIdImg1" {
		t.Errorf("EmbedID() = %q", got)
	}
	if got := first.Name(); got != "Picture rIdImg1" {
		t.Errorf("Name() = %q", got)
	}
	img, name, err := first.Image()
	if err != nil {
		t.Fatalf("Image() error = %v", err)
	}
	if name != "word/media/rIdImg1.png" || !bytes.Equal(img, png) {
		t.Errorf("Image() = %d bytes from %s", len(img), name)
	}
	if p := first.Paragraph(); p == nil || p.Index() != 1 {
		t.Errorf("Paragraph() = %v, want paragraph 1", p)
	}
	if c := first.Caption(); c == nil || c.Text() != "Figure 1 Results" {
		t.Errorf("Caption() = %v", c)
	}
	if c := shapes[1].Caption(); c != nil {
		t.Errorf("Caption() = %q, want nil", c.Text())
	}
	if got := shapes[1].Location(); got != "figure 2" {
		t.Errorf("Location() = %q", got)
	}
}

func TestInlineShape_MissingImage(t *testing.T) {
	doc := createTestDOCX(t, docxtest.Picture("rIdNone", 1, 1))
	if _, _, err := doc.InlineShapes()[0].Image(); err == nil {
		t.Error("Image() should fail for an unknown relationship")
	}
}
