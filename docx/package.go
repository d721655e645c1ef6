package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
)

// part is one entry of the OPC zip package. Parts the engine edits are held
// as parsed trees; everything else is carried through as raw bytes.
type part struct {
	name     string
	data     []byte
	tree     *xmlquery.Node
	method   uint16
	modified time.Time
}

// pkg is the ordered set of parts of a DOCX file.
type pkg struct {
	parts []*part
	index map[string]*part
}

// readPackage reads every entry of the zip archive into memory.
func readPackage(data []byte) (*pkg, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	p := &pkg{index: make(map[string]*part, len(zr.File))}
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		pt := &part{
			name:     f.Name,
			data:     content,
			method:   f.Method,
			modified: f.Modified,
		}
		p.parts = append(p.parts, pt)
		p.index[f.Name] = pt
	}
	return p, nil
}

// get returns the part with the given name, or nil.
func (p *pkg) get(name string) *part {
	return p.index[strings.TrimPrefix(name, "/")]
}

// parse parses the named part into an XML tree (once) and returns it.
func (p *pkg) parse(name string) (*part, error) {
	pt := p.get(name)
	if pt == nil {
		return nil, fmt.Errorf("missing part %s", name)
	}
	if pt.tree != nil {
		return pt, nil
	}
	tree, err := xmlquery.Parse(bytes.NewReader(pt.data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	normalizePrefixes(tree)
	pt.tree = tree
	return pt, nil
}

// add appends a new parsed part.
func (p *pkg) add(name string, tree *xmlquery.Node) *part {
	pt := &part{name: name, tree: tree, method: zip.Deflate, modified: time.Now()}
	p.parts = append(p.parts, pt)
	p.index[name] = pt
	return pt
}

// write produces the zip archive, re-rendering parsed parts from their trees.
func (p *pkg) write() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, pt := range p.parts {
		content := pt.data
		if pt.tree != nil {
			content = []byte(renderXML(pt.tree))
			if err := checkWellFormed(content); err != nil {
				return nil, &SerializationError{Part: pt.name, Err: err}
			}
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     pt.name,
			Method:   pt.method,
			Modified: pt.modified,
		})
		if err != nil {
			return nil, &SerializationError{Part: pt.name, Err: err}
		}
		if _, err := w.Write(content); err != nil {
			return nil, &SerializationError{Part: pt.name, Err: err}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &SerializationError{Err: err}
	}
	return buf.Bytes(), nil
}

// relsName returns the relationships part name for a source part.
func relsName(source string) string {
	dir, file := path.Split(source)
	return dir + "_rels/" + file + ".rels"
}

// relationships wraps a parsed .rels part.
type relationships struct {
	part *part
	root *xmlquery.Node
	base string // directory targets are resolved against
}

// loadRelationships parses the .rels part for source. A missing part yields
// an empty, unattached set that is created on first add.
func (p *pkg) loadRelationships(source string) (*relationships, error) {
	name := relsName(source)
	base := path.Dir(source)
	if base == "." {
		base = ""
	}
	if p.get(name) == nil {
		return &relationships{base: base}, nil
	}
	pt, err := p.parse(name)
	if err != nil {
		return nil, err
	}
	root := rootElement(pt.tree)
	if !isElem(root, nsPkgRels, "Relationships") {
		return nil, fmt.Errorf("%s: root element is not Relationships", name)
	}
	return &relationships{part: pt, root: root, base: base}, nil
}

func (r *relationships) find(id string) *xmlquery.Node {
	if r.root == nil {
		return nil
	}
	for c := r.root.FirstChild; c != nil; c = c.NextSibling {
		if !isElem(c, nsPkgRels, "Relationship") {
			continue
		}
		if v, _ := attrNS(c, "", "Id"); v == id {
			return c
		}
	}
	return nil
}

// target resolves relationship id to a part name. External targets and
// unknown ids report false.
func (r *relationships) target(id string) (string, bool) {
	rel := r.find(id)
	if rel == nil {
		return "", false
	}
	if mode, _ := attrNS(rel, "", "TargetMode"); mode == "External" {
		return "", false
	}
	target, _ := attrNS(rel, "", "Target")
	if target == "" {
		return "", false
	}
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/"), true
	}
	return path.Clean(path.Join(r.base, target)), true
}

// ofType returns the target of the first relationship with the given type.
func (r *relationships) ofType(relType string) (string, bool) {
	if r.root == nil {
		return "", false
	}
	for c := r.root.FirstChild; c != nil; c = c.NextSibling {
		if !isElem(c, nsPkgRels, "Relationship") {
			continue
		}
		if t, _ := attrNS(c, "", "Type"); t == relType {
			id, _ := attrNS(c, "", "Id")
			return r.target(id)
		}
	}
	return "", false
}

// add appends a relationship and returns its new id. The rels part is created
// in the package when it did not exist.
func (r *relationships) add(p *pkg, source, relType, target string) string {
	if r.root == nil {
		doc := &xmlquery.Node{Type: xmlquery.DocumentNode}
		appendChild(doc, xmlDeclaration())
		r.root = &xmlquery.Node{Type: xmlquery.ElementNode, Data: "Relationships", NamespaceURI: nsPkgRels}
		setAttrNS(r.root, "", "xmlns", nsPkgRels)
		appendChild(doc, r.root)
		r.part = p.add(relsName(source), doc)
	}

	used := make(map[string]bool)
	for c := r.root.FirstChild; c != nil; c = c.NextSibling {
		if id, ok := attrNS(c, "", "Id"); ok {
			used[id] = true
		}
	}
	n := 1
	for used["rId"+strconv.Itoa(n)] {
		n++
	}
	id := "rId" + strconv.Itoa(n)

	rel := &xmlquery.Node{Type: xmlquery.ElementNode, Data: "Relationship", NamespaceURI: nsPkgRels}
	setAttrNS(rel, "", "Id", id)
	setAttrNS(rel, "", "Type", relType)
	setAttrNS(rel, "", "Target", target)
	appendChild(r.root, rel)
	return id
}

// addOverride registers a content type for a new part in [Content_Types].xml.
func (p *pkg) addOverride(partName, contentType string) error {
	pt, err := p.parse(contentTypesPart)
	if err != nil {
		return err
	}
	root := rootElement(pt.tree)
	if !isElem(root, nsContentType, "Types") {
		return fmt.Errorf("%s: root element is not Types", contentTypesPart)
	}
	name := "/" + strings.TrimPrefix(partName, "/")
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if isElem(c, nsContentType, "Override") {
			if v, _ := attrNS(c, "", "PartName"); v == name {
				setAttrNS(c, "", "ContentType", contentType)
				return nil
			}
		}
	}
	o := &xmlquery.Node{Type: xmlquery.ElementNode, Data: "Override", NamespaceURI: nsContentType}
	setAttrNS(o, "", "PartName", name)
	setAttrNS(o, "", "ContentType", contentType)
	appendChild(root, o)
	return nil
}

// rootElement returns the document element of a parsed tree.
func rootElement(doc *xmlquery.Node) *xmlquery.Node {
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

func xmlDeclaration() *xmlquery.Node {
	decl := &xmlquery.Node{Type: xmlquery.DeclarationNode, Data: "xml"}
	setAttrNS(decl, "", "version", "1.0")
	setAttrNS(decl, "", "encoding", "UTF-8")
	setAttrNS(decl, "", "standalone", "yes")
	return decl
}

// ensureDefault registers a content type for an extension in
// [Content_Types].xml unless one is already present.
func (p *pkg) ensureDefault(ext, contentType string) error {
	pt, err := p.parse(contentTypesPart)
	if err != nil {
		return err
	}
	root := rootElement(pt.tree)
	if !isElem(root, nsContentType, "Types") {
		return fmt.Errorf("%s: root element is not Types", contentTypesPart)
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if isElem(c, nsContentType, "Default") {
			if v, _ := attrNS(c, "", "Extension"); strings.EqualFold(v, ext) {
				return nil
			}
		}
	}
	def := &xmlquery.Node{Type: xmlquery.ElementNode, Data: "Default", NamespaceURI: nsContentType}
	setAttrNS(def, "", "Extension", ext)
	setAttrNS(def, "", "ContentType", contentType)
	if first := root.FirstChild; first != nil {
		insertBefore(first, def)
	} else {
		appendChild(root, def)
	}
	return nil
}

// partDir returns the directory of a part name with a trailing slash.
func partDir(name string) string {
	dir, _ := path.Split(name)
	return dir
}

// relativeTarget expresses target relative to the directory of source.
func relativeTarget(source, target string) string {
	dir := partDir(source)
	if dir != "" && strings.HasPrefix(target, dir) {
		return strings.TrimPrefix(target, dir)
	}
	return "/" + target
}

// isPageInstr reports whether a field instruction is a PAGE field.
func isPageInstr(instr string) bool {
	fields := strings.Fields(instr)
	return len(fields) > 0 && strings.EqualFold(fields[0], "PAGE")
}
