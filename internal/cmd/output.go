package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/tsawler/stylecheck/report"
)

// printSummary formats and prints a run summary.
func printSummary(w io.Writer, s report.Summary, path string) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	cyan.Fprintf(w, "\n=== Style Check Summary ===\n\n")

	fmt.Fprintf(w, "  Corrections made: ")
	green.Fprintf(w, "%d\n", s.TotalCount)
	fmt.Fprintf(w, "    Format: %d\n", s.FormatIssues)
	fmt.Fprintf(w, "    Citation: %d\n", s.CitationIssues)

	fmt.Fprintf(w, "  Required actions: ")
	if s.TotalRecommendations == 0 {
		green.Fprintf(w, "0\n")
	} else {
		yellow.Fprintf(w, "%d\n", s.TotalRecommendations)
	}

	if len(s.Recommendations) > 0 {
		fmt.Fprintf(w, "\n")
		cyan.Fprintf(w, "Still to do:\n")
		for _, r := range s.Recommendations {
			red.Fprintf(w, "  - ")
			fmt.Fprintf(w, "%s\n", r)
		}
	}

	if path != "" {
		fmt.Fprintf(w, "\n  Saved to: %s\n", path)
	}
	fmt.Fprintf(w, "\n")
}
