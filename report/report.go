package report

// Section holds the rendered entries of one category.
type Section struct {
	Issues          []string `json:"issues" yaml:"issues"`
	RequiredActions []string `json:"required_actions" yaml:"required_actions"`
}

// Len returns the number of entries in the section.
func (s Section) Len() int {
	return len(s.Issues) + len(s.RequiredActions)
}

// Report is the caller-facing result of a run. Grammar is a placeholder
// category that no check fills yet; it is omitted while empty.
type Report struct {
	Format   Section  `json:"format_issues" yaml:"format_issues"`
	Citation Section  `json:"citation_issues" yaml:"citation_issues"`
	Grammar  *Section `json:"grammar_issues,omitempty" yaml:"grammar_issues,omitempty"`
}

// Render builds a Report from a Log. The Log is only read.
func Render(l *Log) Report {
	r := Report{
		Format:   renderSection(l, Format),
		Citation: renderSection(l, Citation),
	}
	if g := renderSection(l, Grammar); g.Len() > 0 {
		r.Grammar = &g
	}
	return r
}

func renderSection(l *Log, cat Category) Section {
	s := Section{Issues: []string{}, RequiredActions: []string{}}
	if l == nil {
		return s
	}
	for _, i := range l.Issues(cat) {
		s.Issues = append(s.Issues, i.String())
	}
	for _, a := range l.RequiredActions(cat) {
		s.RequiredActions = append(s.RequiredActions, a.Description)
	}
	return s
}

// Summary aggregates a Report into counts.
type Summary struct {
	TotalCount              int      `json:"total_count" yaml:"total_count"`
	FormatIssues            int      `json:"format_issues" yaml:"format_issues"`
	CitationIssues          int      `json:"citation_issues" yaml:"citation_issues"`
	TotalRecommendations    int      `json:"total_recommendations" yaml:"total_recommendations"`
	FormatRecommendations   int      `json:"format_recommendations" yaml:"format_recommendations"`
	CitationRecommendations int      `json:"citation_recommendations" yaml:"citation_recommendations"`
	Recommendations         []string `json:"recommendations" yaml:"recommendations"`
}

// Summarize counts the report's entries. Recommendations lists the format
// required actions followed by the citation ones, each in original order.
func Summarize(r Report) Summary {
	s := Summary{
		FormatIssues:            len(r.Format.Issues),
		CitationIssues:          len(r.Citation.Issues),
		FormatRecommendations:   len(r.Format.RequiredActions),
		CitationRecommendations: len(r.Citation.RequiredActions),
	}
	s.TotalCount = s.FormatIssues + s.CitationIssues
	s.TotalRecommendations = s.FormatRecommendations + s.CitationRecommendations

	s.Recommendations = make([]string, 0, s.TotalRecommendations)
	s.Recommendations = append(s.Recommendations, r.Format.RequiredActions...)
	s.Recommendations = append(s.Recommendations, r.Citation.RequiredActions...)
	return s
}
