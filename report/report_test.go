package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLog() *Log {
	l := NewLog()
	l.Record(Format, "Margins were corrected to 1 inch on all sides", "section 1")
	l.RequireAction(Format, "Add title to upper half of first page")
	l.Record(Citation, "Corrected in-text citation format to author-date", "paragraph 4")
	l.Record(Format, "Abstract was cut to 250 words", "")
	l.RequireAction(Citation, "Check reference list")
	l.RequireAction(Format, "Add Keywords section below Abstract")
	return l
}

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "format", Format.String())
	assert.Equal(t, "citation", Citation.String())
	assert.Equal(t, "grammar", Grammar.String())
	assert.Equal(t, "category(7)", Category(7).String())
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Citation ")
	require.NoError(t, err)
	assert.Equal(t, Citation, c)

	_, err = ParseCategory("style")
	assert.Error(t, err)
}

func TestLog_AppendOnlyViews(t *testing.T) {
	l := sampleLog()

	assert.Equal(t, 6, l.Len())
	assert.Len(t, l.Issues(Format), 2)
	assert.Len(t, l.Issues(Citation), 1)
	assert.Empty(t, l.Issues(Grammar))

	actions := l.RequiredActions(Format)
	require.Len(t, actions, 2)
	assert.Equal(t, "Add title to upper half of first page", actions[0].Description)
	assert.Equal(t, "Add Keywords section below Abstract", actions[1].Description)

	// Views are copies; changing them does not touch the log.
	issues := l.Issues(Format)
	issues[0].Message = "changed"
	assert.Equal(t, "Margins were corrected to 1 inch on all sides", l.Issues(Format)[0].Message)
}

func TestLog_ZeroValue(t *testing.T) {
	var l Log
	l.Record(Grammar, "placeholder", "")
	assert.Equal(t, 1, l.Len())
}

func TestRender(t *testing.T) {
	r := Render(sampleLog())

	assert.Equal(t, []string{
		"section 1: Margins were corrected to 1 inch on all sides",
		"Abstract was cut to 250 words",
	}, r.Format.Issues)
	assert.Equal(t, []string{"paragraph 4: Corrected in-text citation format to author-date"}, r.Citation.Issues)
	assert.Equal(t, []string{"Check reference list"}, r.Citation.RequiredActions)
	assert.Nil(t, r.Grammar)
}

func TestRender_GrammarPlaceholder(t *testing.T) {
	l := NewLog()
	l.Record(Grammar, "passive voice", "")
	r := Render(l)
	require.NotNil(t, r.Grammar)
	assert.Equal(t, []string{"passive voice"}, r.Grammar.Issues)
}

func TestRender_EmptyLogJSONShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, Render(NewLog())))

	var got map[string]map[string][]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, map[string]map[string][]string{
		"format_issues":   {"issues": {}, "required_actions": {}},
		"citation_issues": {"issues": {}, "required_actions": {}},
	}, got)
}

func TestSummarize(t *testing.T) {
	s := Summarize(Render(sampleLog()))

	assert.Equal(t, Summary{
		TotalCount:              3,
		FormatIssues:            2,
		CitationIssues:          1,
		TotalRecommendations:    3,
		FormatRecommendations:   2,
		CitationRecommendations: 1,
		Recommendations: []string{
			"Add title to upper half of first page",
			"Add Keywords section below Abstract",
			"Check reference list",
		},
	}, s)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(Report{})
	assert.Zero(t, s.TotalCount)
	assert.NotNil(t, s.Recommendations)
	assert.Empty(t, s.Recommendations)
}

func TestEncodeDecode(t *testing.T) {
	r := Render(sampleLog())

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, r, format))

			got, err := Decode(buf.Bytes())
			require.NoError(t, err)
			assert.Equal(t, r, got)
		})
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, Report{}, "pdf")
	assert.ErrorContains(t, err, "unknown report format")
}

func TestEncodeMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeMarkdown(&buf, Render(sampleLog())))
	md := buf.String()

	assert.Contains(t, md, "# Style Report")
	assert.Contains(t, md, "- Issues corrected: 3 (format 2, citation 1)")
	assert.Contains(t, md, "- [ ] Add Keywords section below Abstract")
	assert.NotContains(t, md, "## Grammar")
}

func TestEncodeHTML(t *testing.T) {
	l := NewLog()
	l.Record(Citation, "Rewrote (Smith , 2020) as <(Smith, 2020)>", "")

	var buf bytes.Buffer
	require.NoError(t, EncodeHTML(&buf, Render(l)))
	html := buf.String()

	assert.Contains(t, html, "<h1>Style Report</h1>")
	assert.Contains(t, html, "<h2>Format</h2>")
	assert.Contains(t, html, "No issues found.")
	assert.True(t, strings.Contains(html, "&lt;(Smith, 2020)&gt;"), html)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte("format_issues: [unterminated"))
	assert.Error(t, err)
}
