package rules

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tsawler/stylecheck/docx"
)

// Font is the APA body font.
const Font = "Times New Roman"

// titleCase capitalizes the first letter of every word and lower-cases the
// rest. Runs of whitespace collapse to a single space.
func titleCase(s string) string {
	// A Caser holds state and is not safe for concurrent use.
	c := cases.Title(language.English)
	return c.String(strings.Join(strings.Fields(s), " "))
}

// isTitleCase reports whether no word of s starts with a lower-case letter.
func isTitleCase(s string) bool {
	for _, w := range strings.Fields(s) {
		for _, r := range w {
			if unicode.IsLower(r) {
				return false
			}
			break
		}
	}
	return true
}

// truncateWords keeps the first n whitespace-separated words of s.
func truncateWords(s string, n int) (string, bool) {
	words := strings.Fields(s)
	if len(words) <= n {
		return s, false
	}
	return strings.Join(words[:n], " "), true
}

// quote shortens text for use in an issue message.
func quote(text string) string {
	const limit = 60
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) > limit {
		return string(r[:limit]) + "..."
	}
	return text
}

func anyItalic(runs []*docx.Run) bool {
	for _, r := range runs {
		if r.Italic() {
			return true
		}
	}
	return false
}

func allBold(runs []*docx.Run) bool {
	for _, r := range runs {
		if !r.Bold() {
			return false
		}
	}
	return true
}

func setBold(runs []*docx.Run) {
	for _, r := range runs {
		r.SetBold(true)
	}
}

func setItalic(runs []*docx.Run) {
	for _, r := range runs {
		r.SetItalic(true)
	}
}
