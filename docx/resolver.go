package docx

import (
	"strconv"
	"strings"
	"unicode"
)

// ResolvedStyle contains the resolved identity of a paragraph style.
type ResolvedStyle struct {
	ID   string
	Name string // UI name, e.g. "Heading 1", "Title", "Normal"

	IsHeading    bool
	HeadingLevel int // 1-9, 0 if not a heading
}

// StyleResolver resolves paragraph style ids against styles.xml, following
// basedOn inheritance for outline levels.
type StyleResolver struct {
	styles       map[string]*styleDefXML
	resolved     map[string]*ResolvedStyle
	defaultParaID string
}

// builtInNames maps the lower-case built-in style names Word stores in
// styles.xml to the names shown in the UI.
var builtInNames = map[string]string{
	"normal":    "Normal",
	"title":     "Title",
	"subtitle":  "Subtitle",
	"caption":   "Caption",
	"quote":     "Quote",
	"header":    "Header",
	"footer":    "Footer",
	"heading 1": "Heading 1",
	"heading 2": "Heading 2",
	"heading 3": "Heading 3",
	"heading 4": "Heading 4",
	"heading 5": "Heading 5",
	"heading 6": "Heading 6",
	"heading 7": "Heading 7",
	"heading 8": "Heading 8",
	"heading 9": "Heading 9",
}

// NewStyleResolver creates a new style resolver from parsed styles.
func NewStyleResolver(styles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles:   make(map[string]*styleDefXML),
		resolved: make(map[string]*ResolvedStyle),
	}

	if styles == nil {
		return sr
	}

	for i := range styles.Styles {
		style := &styles.Styles[i]
		sr.styles[style.StyleID] = style
		if style.Type == "paragraph" && style.Default == "1" {
			sr.defaultParaID = style.StyleID
		}
	}

	return sr
}

// Resolve returns the resolved style for the given style ID. An empty id
// resolves to the default paragraph style.
func (sr *StyleResolver) Resolve(styleID string) *ResolvedStyle {
	if styleID == "" {
		styleID = sr.defaultParaID
		if styleID == "" {
			return &ResolvedStyle{Name: "Normal"}
		}
	}

	if resolved, ok := sr.resolved[styleID]; ok {
		return resolved
	}

	resolved := &ResolvedStyle{ID: styleID}
	if def, ok := sr.styles[styleID]; ok && def.Name.Val != "" {
		resolved.Name = uiName(def.Name.Val)
	} else {
		resolved.Name = nameFromID(styleID)
	}

	resolved.IsHeading, resolved.HeadingLevel = sr.detectHeading(styleID, resolved.Name)

	sr.resolved[styleID] = resolved
	return resolved
}

// Name returns the UI name for a style id.
func (sr *StyleResolver) Name(styleID string) string {
	return sr.Resolve(styleID).Name
}

// detectHeading determines heading status from the style name first and the
// inherited outline level second.
func (sr *StyleResolver) detectHeading(styleID, name string) (bool, int) {
	if strings.HasPrefix(name, "Heading ") {
		if level, err := strconv.Atoi(strings.TrimPrefix(name, "Heading ")); err == nil && level >= 1 && level <= 9 {
			return true, level
		}
	}

	for _, sid := range sr.buildInheritanceChain(styleID) {
		def, ok := sr.styles[sid]
		if !ok || def.PPr.OutlineLvl.Val == "" {
			continue
		}
		if level := parseOutlineLevel(def.PPr.OutlineLvl.Val); level >= 0 {
			return true, level + 1
		}
	}

	return false, 0
}

// buildInheritanceChain returns style IDs from derived to base.
func (sr *StyleResolver) buildInheritanceChain(styleID string) []string {
	var chain []string
	visited := make(map[string]bool)

	current := styleID
	for current != "" && !visited[current] {
		visited[current] = true
		chain = append(chain, current)

		def, ok := sr.styles[current]
		if !ok {
			break
		}
		current = def.BasedOn.Val
	}

	return chain
}

// uiName converts a stored style name to its UI form.
func uiName(name string) string {
	if ui, ok := builtInNames[strings.ToLower(name)]; ok {
		return ui
	}
	return name
}

// nameFromID derives a UI name from a style id when styles.xml has no entry:
// "Heading1" becomes "Heading 1".
func nameFromID(id string) string {
	lower := strings.ToLower(id)
	if strings.HasPrefix(lower, "heading") {
		rest := strings.TrimPrefix(lower, "heading")
		if rest != "" && strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
			return "Heading " + rest
		}
	}
	if ui, ok := builtInNames[lower]; ok {
		return ui
	}
	return id
}

// parseOutlineLevel parses an outline level string to an integer.
func parseOutlineLevel(s string) int {
	level, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return -1
	}
	if level >= 0 && level <= 8 {
		return level
	}
	return -1
}
