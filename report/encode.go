package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// EncodeJSON writes the report as indented JSON.
func EncodeJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report as JSON: %w", err)
	}
	return nil
}

// EncodeYAML writes the report as YAML.
func EncodeYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report as YAML: %w", err)
	}
	return enc.Close()
}

// EncodeMarkdown writes the report and its summary as a Markdown document.
func EncodeMarkdown(w io.Writer, r Report) error {
	_, err := io.WriteString(w, markdown(r))
	return err
}

// EncodeHTML writes the Markdown rendering of the report converted to HTML.
func EncodeHTML(w io.Writer, r Report) error {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown(r)), &buf); err != nil {
		return fmt.Errorf("rendering report as HTML: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Encode writes the report in the named format: json, yaml, markdown or html.
func Encode(w io.Writer, r Report, format string) error {
	switch strings.ToLower(format) {
	case "", "json":
		return EncodeJSON(w, r)
	case "yaml", "yml":
		return EncodeYAML(w, r)
	case "markdown", "md":
		return EncodeMarkdown(w, r)
	case "html":
		return EncodeHTML(w, r)
	}
	return fmt.Errorf("unknown report format %q", format)
}

// Decode reads a report encoded as JSON or YAML. YAML is a superset of JSON,
// so a single decoder handles both.
func Decode(data []byte) (Report, error) {
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("decoding report: %w", err)
	}
	return r, nil
}

func markdown(r Report) string {
	var sb strings.Builder
	s := Summarize(r)

	sb.WriteString("# Style Report\n\n")
	fmt.Fprintf(&sb, "- Issues corrected: %d (format %d, citation %d)\n", s.TotalCount, s.FormatIssues, s.CitationIssues)
	fmt.Fprintf(&sb, "- Recommendations: %d (format %d, citation %d)\n", s.TotalRecommendations, s.FormatRecommendations, s.CitationRecommendations)

	writeSection(&sb, "Format", r.Format)
	writeSection(&sb, "Citation", r.Citation)
	if r.Grammar != nil {
		writeSection(&sb, "Grammar", *r.Grammar)
	}
	return sb.String()
}

func writeSection(sb *strings.Builder, title string, s Section) {
	fmt.Fprintf(sb, "\n## %s\n", title)
	if s.Len() == 0 {
		sb.WriteString("\nNo issues found.\n")
		return
	}
	if len(s.Issues) > 0 {
		sb.WriteString("\n### Corrections\n\n")
		for _, i := range s.Issues {
			fmt.Fprintf(sb, "- %s\n", escapeMarkdown(i))
		}
	}
	if len(s.RequiredActions) > 0 {
		sb.WriteString("\n### Required actions\n\n")
		for _, a := range s.RequiredActions {
			fmt.Fprintf(sb, "- [ ] %s\n", escapeMarkdown(a))
		}
	}
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "<", "&lt;", ">", "&gt;",
)

// escapeMarkdown keeps manuscript text from being read as Markdown syntax.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
