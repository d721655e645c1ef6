package format

import (
	"archive/zip"
	"bytes"
	"testing"
)

func zipWith(t *testing.T, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
		if name == "mimetype" {
			w.Write([]byte("application/vnd.oasis.opendocument.text"))
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{DOCX, "DOCX"},
		{DOC, "DOC"},
		{RTF, "RTF"},
		{ODT, "ODT"},
		{PDF, "PDF"},
		{ZIP, "ZIP"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{DOCX, ".docx"},
		{DOC, ".doc"},
		{RTF, ".rtf"},
		{ODT, ".odt"},
		{PDF, ".pdf"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"manuscript.docx", DOCX},
		{"manuscript.DOCX", DOCX},
		{"manuscript.doc", DOC},
		{"manuscript.rtf", RTF},
		{"manuscript.odt", ODT},
		{"manuscript.pdf", PDF},
		{"/uploads/manuscript.docx", DOCX},
		{"manuscript.txt", Unknown},
		{"manuscript", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"PDF", []byte("%PDF-1.4"), PDF},
		{"legacy Word", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0x00}, DOC},
		{"RTF", []byte(`{\rtf1\ansi`), RTF},
		{"ZIP needs inspection", []byte{0x50, 0x4B, 0x03, 0x04, 0x00}, Unknown},
		{"empty", []byte{}, Unknown},
		{"text", []byte("Hello, World!"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"DOCX package", zipWith(t, "[Content_Types].xml", "word/document.xml"), DOCX},
		{"ODT package", zipWith(t, "mimetype", "content.xml"), ODT},
		{"spreadsheet package", zipWith(t, "[Content_Types].xml", "xl/workbook.xml"), ZIP},
		{"PDF", []byte("%PDF-1.4\n%%EOF"), PDF},
		{"plain text", []byte("Hello, World! This is plain text."), Unknown},
		{"empty", nil, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFromReader(bytes.NewReader(tt.data), int64(len(tt.data)))
			if err != nil {
				t.Fatalf("DetectFromReader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFromReader() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader_TruncatedZip(t *testing.T) {
	data := []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00}
	if _, err := DetectFromReader(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Error("DetectFromReader() should fail on a truncated archive")
	}
}
