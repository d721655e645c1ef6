package docx

import "testing"

func TestNewStyleResolver_Nil(t *testing.T) {
	sr := NewStyleResolver(nil)
	if sr == nil {
		t.Fatal("NewStyleResolver(nil) returned nil")
	}

	if got := sr.Name(""); got != "Normal" {
		t.Errorf("Name(\"\") = %q, want Normal", got)
	}
}

func TestStyleResolver_NamesFromIDs(t *testing.T) {
	sr := NewStyleResolver(nil)

	tests := []struct {
		styleID   string
		wantName  string
		wantLevel int
	}{
		{"Heading1", "Heading 1", 1},
		{"heading2", "Heading 2", 2},
		{"Title", "Title", 0},
		{"Normal", "Normal", 0},
		{"HeadingX", "HeadingX", 0},
		{"BlockText", "BlockText", 0},
	}

	for _, tt := range tests {
		t.Run(tt.styleID, func(t *testing.T) {
			style := sr.Resolve(tt.styleID)
			if style.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", style.Name, tt.wantName)
			}
			if style.HeadingLevel != tt.wantLevel {
				t.Errorf("HeadingLevel = %v, want %v", style.HeadingLevel, tt.wantLevel)
			}
		})
	}
}

func TestStyleResolver_WithStyles(t *testing.T) {
	styles := &stylesXML{
		Styles: []styleDefXML{
			{StyleID: "Standard", Type: "paragraph", Default: "1", Name: valXML{Val: "normal"}},
			{StyleID: "berschrift1", Type: "paragraph", Name: valXML{Val: "heading 1"}},
			{
				StyleID: "ChapterTitle",
				Type:    "paragraph",
				Name:    valXML{Val: "Chapter Title"},
				PPr:     stylePPrXML{OutlineLvl: valXML{Val: "1"}},
			},
			{StyleID: "ChapterTitleAlt", Type: "paragraph", Name: valXML{Val: "Chapter Alt"}, BasedOn: valXML{Val: "ChapterTitle"}},
			{StyleID: "BodyOutline", Type: "paragraph", Name: valXML{Val: "Body Outline"}, PPr: stylePPrXML{OutlineLvl: valXML{Val: "9"}}},
		},
	}

	sr := NewStyleResolver(styles)

	t.Run("default paragraph style", func(t *testing.T) {
		if got := sr.Name(""); got != "Normal" {
			t.Errorf("Name(\"\") = %q, want Normal", got)
		}
	})

	t.Run("localized id with built-in name", func(t *testing.T) {
		style := sr.Resolve("berschrift1")
		if style.Name != "Heading 1" || style.HeadingLevel != 1 {
			t.Errorf("Resolve() = %+v", style)
		}
	})

	t.Run("outline level", func(t *testing.T) {
		style := sr.Resolve("ChapterTitle")
		if !style.IsHeading || style.HeadingLevel != 2 {
			t.Errorf("Resolve() = %+v, want heading level 2", style)
		}
	})

	t.Run("inherited outline level", func(t *testing.T) {
		if got := sr.Resolve("ChapterTitleAlt").HeadingLevel; got != 2 {
			t.Errorf("HeadingLevel = %d, want 2", got)
		}
	})

	t.Run("body text outline level", func(t *testing.T) {
		if sr.Resolve("BodyOutline").IsHeading {
			t.Error("outline level 9 is body text")
		}
	})

	t.Run("cached", func(t *testing.T) {
		if sr.Resolve("ChapterTitle") != sr.Resolve("ChapterTitle") {
			t.Error("Resolve() should return the cached value")
		}
	})
}

func TestStyleResolver_CircularInheritance(t *testing.T) {
	styles := &stylesXML{
		Styles: []styleDefXML{
			{StyleID: "A", Type: "paragraph", BasedOn: valXML{Val: "B"}},
			{StyleID: "B", Type: "paragraph", BasedOn: valXML{Val: "A"}},
		},
	}
	sr := NewStyleResolver(styles)

	chain := sr.buildInheritanceChain("A")
	if len(chain) != 2 {
		t.Errorf("chain = %v, want 2 entries", chain)
	}
	if sr.Resolve("A").IsHeading {
		t.Error("circular styles should not be headings")
	}
}

func TestParseOutlineLevel(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"0", 0},
		{"8", 8},
		{" 3 ", 3},
		{"9", -1},
		{"-1", -1},
		{"abc", -1},
		{"", -1},
	}

	for _, tt := range tests {
		if got := parseOutlineLevel(tt.input); got != tt.want {
			t.Errorf("parseOutlineLevel(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
