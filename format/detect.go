// Package format identifies the container format of a submitted manuscript so
// that non-DOCX uploads can be rejected with a useful explanation.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a manuscript container format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Word 2007+ (.docx) document.
	DOCX
	// DOC indicates a legacy Word 97-2003 (.doc) compound file.
	DOC
	// RTF indicates a Rich Text Format document.
	RTF
	// ODT indicates an OpenDocument Text (.odt) document.
	ODT
	// PDF indicates a PDF document.
	PDF
	// ZIP indicates a ZIP archive that is not a known document package.
	ZIP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case DOC:
		return "DOC"
	case RTF:
		return "RTF"
	case ODT:
		return "ODT"
	case PDF:
		return "PDF"
	case ZIP:
		return "ZIP"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOCX:
		return ".docx"
	case DOC:
		return ".doc"
	case RTF:
		return ".rtf"
	case ODT:
		return ".odt"
	case PDF:
		return ".pdf"
	case ZIP:
		return ".zip"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return DOCX
	case ".doc":
		return DOC
	case ".rtf":
		return RTF
	case ".odt":
		return ODT
	case ".pdf":
		return PDF
	case ".zip":
		return ZIP
	default:
		return Unknown
	}
}

var (
	magicZIP = []byte{0x50, 0x4B, 0x03, 0x04}
	magicOLE = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	magicPDF = []byte("%PDF")
	magicRTF = []byte(`{\rtf`)
)

// DetectFromMagic checks leading bytes to determine format.
// ZIP archives report Unknown: use DetectFromReader to look inside them.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicPDF):
		return PDF
	case bytes.HasPrefix(data, magicOLE):
		return DOC
	case bytes.HasPrefix(data, magicRTF):
		return RTF
	}
	return Unknown
}

// DetectFromReader inspects the content to determine format. ZIP archives are
// opened to tell DOCX and ODT packages from other archives.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 8)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if bytes.HasPrefix(magic, magicZIP) {
		return detectZIPFormat(r, size)
	}
	return DetectFromMagic(magic), nil
}

// detectZIPFormat inspects a ZIP archive's entry names.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	// OpenDocument packages store their mimetype as the first entry.
	for _, f := range zr.File {
		if f.Name != "mimetype" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			break
		}
		data := make([]byte, 256)
		n, _ := rc.Read(data)
		rc.Close()
		if strings.Contains(string(data[:n]), "application/vnd.oasis.opendocument.text") {
			return ODT, nil
		}
	}

	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/") {
			return DOCX, nil
		}
	}

	return ZIP, nil
}
