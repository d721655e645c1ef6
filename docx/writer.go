package docx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/antchfx/xmlquery"
)

// Serialize renders the Document back into DOCX bytes. Parts that were never
// parsed are copied byte-for-byte; parsed parts are rendered from their trees.
func (d *Document) Serialize() ([]byte, error) {
	if d.body == nil || d.main == nil || d.main.tree == nil {
		return nil, &SerializationError{Err: errors.New("document has no body")}
	}
	if len(d.Sections()) == 0 {
		return nil, &SerializationError{Part: d.main.name, Err: errors.New("document has no section properties")}
	}
	return d.pkg.write()
}

// renderXML writes a parsed tree back to text. Whitespace inside text nodes
// is significant in WordprocessingML and is always kept.
func renderXML(tree *xmlquery.Node) string {
	return tree.OutputXMLWithOptions(
		xmlquery.WithPreserveSpace(),
		xmlquery.WithEmptyTagSupport(),
	)
}

// checkWellFormed runs a token pass over rendered XML.
func checkWellFormed(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("rendered XML is not well-formed: %w", err)
		}
	}
}

// normalizePrefixes binds the WordprocessingML namespace to "w", the
// relationships namespace to "r" and the XML namespace to "xml" throughout a
// parsed tree so that markup created by the engine shares the document's
// prefixes.
func normalizePrefixes(doc *xmlquery.Node) {
	root := rootElement(doc)
	if root == nil {
		return
	}
	usesW, usesR := false, false
	var walk func(n *xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		if n.Type == xmlquery.ElementNode {
			if n.NamespaceURI == nsW {
				n.Prefix = prefixW
				usesW = true
			}
			for i := range n.Attr {
				a := &n.Attr[i]
				switch {
				case a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns"):
				case a.NamespaceURI == nsW:
					a.Name.Space = prefixW
					usesW = true
				case a.NamespaceURI == nsR:
					a.Name.Space = "r"
					usesR = true
				case a.NamespaceURI == nsXML || a.Name.Space == nsXML:
					a.Name.Space = "xml"
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if usesW {
		ensureNamespace(root, prefixW, nsW)
	}
	if usesR {
		ensureNamespace(root, "r", nsR)
	}
}

// ensureNamespace declares prefix on root unless it is already declared.
func ensureNamespace(root *xmlquery.Node, prefix, ns string) {
	for _, a := range root.Attr {
		if a.Name.Space == "xmlns" && a.Name.Local == prefix {
			return
		}
	}
	root.Attr = append(root.Attr, xmlquery.Attr{
		Name:  xml.Name{Space: "xmlns", Local: prefix},
		Value: ns,
	})
}
