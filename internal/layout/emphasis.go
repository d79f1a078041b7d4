package layout

import "github.com/golang/geo/s1"

// GridlineCount is the number of angular gridlines on the wheel (every 45°).
const GridlineCount = 8

// Emphasis says how an angular gridline is drawn.
type Emphasis int

const (
	EmphasisDefault    Emphasis = iota // light, thin
	EmphasisDivider                    // solid, heavy: separates indicator sets
	EmphasisSuppressed                 // fully transparent
)

func (e Emphasis) String() string {
	switch e {
	case EmphasisDivider:
		return "divider"
	case EmphasisSuppressed:
		return "suppressed"
	default:
		return "default"
	}
}

// Gridline is one angular gridline of the wheel.
type Gridline struct {
	Ordinal  int
	AngleDeg float64 // plotting angle, 0 = east, counter-clockwise
	Emphasis Emphasis
}

// Theta returns the gridline angle.
func (g Gridline) Theta() s1.Angle {
	return s1.Angle(g.AngleDeg) * s1.Degree
}

var (
	dividerOrdinals    = []int{0, 2, 4, 6}
	suppressedOrdinals = []int{1, 3, 5, 7}
)

// AngularGridlines returns the wheel's angular gridlines with emphasis
// applied. With the 90° wheel offset the dividers at 0°, 90°, 180° and
// 270° fall on the SID1|SID4, SID4|SID2, SID2|SID3 and SID3|SID1 borders.
func AngularGridlines() []Gridline {
	lines := make([]Gridline, GridlineCount)
	for i := range lines {
		lines[i] = Gridline{Ordinal: i, AngleDeg: float64(i) * 360 / GridlineCount}
	}
	return ApplyEmphasis(lines)
}

// ApplyEmphasis marks ordinals 0,2,4,6 as dividers and 1,3,5,7 as
// suppressed, leaving everything else at default. Ordinals past the end
// of lines are ignored. The input slice is not modified.
func ApplyEmphasis(lines []Gridline) []Gridline {
	out := make([]Gridline, len(lines))
	copy(out, lines)
	for _, i := range dividerOrdinals {
		if i < len(out) {
			out[i].Emphasis = EmphasisDivider
		}
	}
	for _, i := range suppressedOrdinals {
		if i < len(out) {
			out[i].Emphasis = EmphasisSuppressed
		}
	}
	return out
}

// CountEmphasis tallies the gridlines per emphasis.
func CountEmphasis(lines []Gridline) map[Emphasis]int {
	counts := make(map[Emphasis]int)
	for _, l := range lines {
		counts[l.Emphasis]++
	}
	return counts
}
