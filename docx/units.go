package docx

import (
	"math"
	"strconv"
)

// Length is a distance in twentieths of a point (twips), the unit WordprocessingML
// uses for margins, indents and paragraph spacing.
type Length int64

const (
	// Twip is the base unit.
	Twip Length = 1
	// Point is 20 twips.
	Point Length = 20
	// Inch is 1440 twips.
	Inch Length = 1440
)

// Inches returns a Length for a (possibly fractional) number of inches.
func Inches(in float64) Length {
	return Length(math.Round(in * float64(Inch)))
}

// Pt returns a Length for a (possibly fractional) number of points.
func Pt(pt float64) Length {
	return Length(math.Round(pt * float64(Point)))
}

// Inches returns the length in inches.
func (l Length) Inches() float64 {
	return float64(l) / float64(Inch)
}

// Points returns the length in points.
func (l Length) Points() float64 {
	return float64(l) / float64(Point)
}

func (l Length) attr() string {
	return strconv.FormatInt(int64(l), 10)
}

// emuPerInch converts DrawingML extents.
const emuPerInch = 914400

// LineRule tells how a LineSpacing value is interpreted.
type LineRule int

const (
	// LineRuleAuto spaces lines as a multiple of single spacing.
	LineRuleAuto LineRule = iota
	// LineRuleExact spaces lines at exactly Value points.
	LineRuleExact
	// LineRuleAtLeast spaces lines at a minimum of Value points.
	LineRuleAtLeast
)

// String returns the w:lineRule attribute value.
func (r LineRule) String() string {
	switch r {
	case LineRuleExact:
		return "exact"
	case LineRuleAtLeast:
		return "atLeast"
	default:
		return "auto"
	}
}

// LineSpacing is a paragraph's line pitch. For LineRuleAuto, Value is a
// multiplier (2 is double spacing); otherwise Value is in points.
type LineSpacing struct {
	Rule  LineRule
	Value float64
}

// Multiple returns multiplier-based line spacing.
func Multiple(m float64) LineSpacing {
	return LineSpacing{Rule: LineRuleAuto, Value: m}
}

// Exactly returns fixed line spacing in points.
func Exactly(pt float64) LineSpacing {
	return LineSpacing{Rule: LineRuleExact, Value: pt}
}

// IsMultiple reports whether the spacing is the given multiplier.
func (ls LineSpacing) IsMultiple(m float64) bool {
	return ls.Rule == LineRuleAuto && nearlyEqual(ls.Value, m)
}

// IsExactly reports whether the spacing is a fixed pitch of pt points.
func (ls LineSpacing) IsExactly(pt float64) bool {
	return ls.Rule == LineRuleExact && nearlyEqual(ls.Value, pt)
}

// line returns the w:line attribute value: 240ths of a line for auto,
// twips otherwise.
func (ls LineSpacing) line() string {
	if ls.Rule == LineRuleAuto {
		return strconv.FormatInt(int64(math.Round(ls.Value*240)), 10)
	}
	return Pt(ls.Value).attr()
}

func parseLineSpacing(line int64, rule string) LineSpacing {
	switch rule {
	case "exact":
		return LineSpacing{Rule: LineRuleExact, Value: Length(line).Points()}
	case "atLeast":
		return LineSpacing{Rule: LineRuleAtLeast, Value: Length(line).Points()}
	default:
		return LineSpacing{Rule: LineRuleAuto, Value: float64(line) / 240}
	}
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
