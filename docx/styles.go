package docx

import "encoding/xml"

// stylesXML represents the structure of word/styles.xml.
// The styles part is read-only for the engine, so it is decoded into structs
// rather than kept as a tree.
type stylesXML struct {
	XMLName xml.Name      `xml:"styles"`
	Styles  []styleDefXML `xml:"style"`
}

// styleDefXML represents a style definition.
type styleDefXML struct {
	XMLName xml.Name     `xml:"style"`
	Type    string       `xml:"type,attr"` // paragraph, character, table, numbering
	StyleID string       `xml:"styleId,attr"`
	Default string       `xml:"default,attr"` // "1" if default style
	Name    valXML       `xml:"name"`
	BasedOn valXML       `xml:"basedOn"`
	PPr     stylePPrXML  `xml:"pPr"`
}

// stylePPrXML holds the paragraph properties a style contributes to heading
// detection.
type stylePPrXML struct {
	OutlineLvl valXML `xml:"outlineLvl"`
}

// valXML represents an element carrying a single w:val attribute.
type valXML struct {
	Val string `xml:"val,attr"`
}
