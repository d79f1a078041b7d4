package layout

import (
	"math"
	"testing"

	"github.com/seenimoa/sidwheel/pkg/models"
)

// ── Layout Table ──

func TestSlotTableExactValues(t *testing.T) {
	wantAngles := []float64{9, 27, 45, 63, 81, 99, 117, 135, 153, 171,
		191.25, 213.75, 236.25, 258.75, 277.5, 292.5, 307.5, 322.5, 337.5, 352.5}
	wantColors := []string{"firebrick", "red", "darkorange", "orangered", "gold",
		"royalblue", "turquoise", "steelblue", "lightskyblue", "blue",
		"limegreen", "forestgreen", "lightgreen", "darkgreen",
		"purple", "magenta", "deeppink", "fuchsia", "violet", "hotpink"}

	slots := Slots()
	if len(slots) != models.SlotCount {
		t.Fatalf("len(Slots()): got %d, want %d", len(slots), models.SlotCount)
	}
	for i, s := range slots {
		if s.Index != i {
			t.Errorf("slot %d: Index = %d", i, s.Index)
		}
		if s.AngleDeg != wantAngles[i] {
			t.Errorf("slot %d: AngleDeg = %v, want %v", i, s.AngleDeg, wantAngles[i])
		}
		wantWidth := 15.0
		switch {
		case i < 10:
			wantWidth = 18
		case i < 14:
			wantWidth = 22.5
		}
		if s.WidthDeg != wantWidth {
			t.Errorf("slot %d: WidthDeg = %v, want %v", i, s.WidthDeg, wantWidth)
		}
		if s.Color.Name != wantColors[i] {
			t.Errorf("slot %d: Color = %q, want %q", i, s.Color.Name, wantColors[i])
		}
	}
	if slots[0].Category != "Dwelling Type" || slots[19].Category != "Home Ownership" {
		t.Errorf("categories: got %q .. %q", slots[0].Category, slots[19].Category)
	}
}

func TestSlotGroups(t *testing.T) {
	wantGroup := func(i int) models.GroupID {
		switch {
		case i < 5:
			return models.SID4
		case i < 10:
			return models.SID2
		case i < 14:
			return models.SID3
		default:
			return models.SID1
		}
	}
	for _, s := range Slots() {
		if s.Group != wantGroup(s.Index) {
			t.Errorf("slot %d: Group = %s, want %s", s.Index, s.Group, wantGroup(s.Index))
		}
	}

	sizes := GroupSizes()
	want := map[models.GroupID]int{models.SID4: 5, models.SID2: 5, models.SID3: 4, models.SID1: 6}
	for g, n := range want {
		if sizes[g] != n {
			t.Errorf("GroupSizes()[%s] = %d, want %d", g, sizes[g], n)
		}
	}
}

func TestSlotAt(t *testing.T) {
	s, err := SlotAt(13)
	if err != nil {
		t.Fatalf("SlotAt(13) error: %v", err)
	}
	if s.Category != "Savings (any)" || s.AngleDeg != 258.75 {
		t.Errorf("SlotAt(13) = %+v", s)
	}
	for _, bad := range []int{-1, models.SlotCount, 100} {
		if _, err := SlotAt(bad); err == nil {
			t.Errorf("SlotAt(%d) should fail", bad)
		}
	}
}

func TestSlotsReturnsCopy(t *testing.T) {
	a := Slots()
	a[0].Category = "mutated"
	if Slots()[0].Category != "Dwelling Type" {
		t.Error("Slots() must not expose the shared table")
	}
}

func TestSlotsContiguousAndNonOverlapping(t *testing.T) {
	slots := Slots()
	total := 0.0
	for i, s := range slots {
		total += s.WidthDeg
		next := slots[(i+1)%len(slots)]
		end := math.Mod(s.EndDeg(), 360)
		if end != next.StartDeg() {
			t.Errorf("slot %d ends at %v but slot %d starts at %v", i, end, next.Index, next.StartDeg())
		}
		if i > 0 && s.AngleDeg <= slots[i-1].AngleDeg {
			t.Errorf("angles not strictly increasing at slot %d", i)
		}
		for j := i + 1; j < len(slots); j++ {
			if s.Interval().InteriorIntersects(slots[j].Interval()) {
				t.Errorf("slot %d %v overlaps slot %d %v", i, s.Interval(), j, slots[j].Interval())
			}
		}
	}
	if total != 360 {
		t.Errorf("widths sum to %v, want 360", total)
	}

	var length float64
	for _, s := range slots {
		length += s.Interval().Length()
	}
	if math.Abs(length-2*math.Pi) > 1e-9 {
		t.Errorf("interval lengths sum to %v, want 2π", length)
	}
}

func TestSlotTheta(t *testing.T) {
	s, _ := SlotAt(0)
	if got := s.Theta().Degrees(); math.Abs(got-99) > 1e-9 {
		t.Errorf("slot 0 Theta = %v°, want 99°", got)
	}
	if got := s.Width().Radians(); math.Abs(got-18*math.Pi/180) > 1e-12 {
		t.Errorf("slot 0 Width = %v rad", got)
	}
}

func TestWithAlpha(t *testing.T) {
	s, _ := SlotAt(1)
	c := s.Color.WithAlpha(0.8)
	if c.R != 0xff || c.G != 0 || c.B != 0 || c.A != 204 {
		t.Errorf("red at 0.8 = %+v", c)
	}
	if s.Color.Hex() != "#ff0000" {
		t.Errorf("Hex() = %q", s.Color.Hex())
	}
}

// ── Emphasis Rule ──

func TestAngularGridlinesEmphasis(t *testing.T) {
	lines := AngularGridlines()
	if len(lines) != GridlineCount {
		t.Fatalf("got %d gridlines, want %d", len(lines), GridlineCount)
	}
	counts := CountEmphasis(lines)
	if counts[EmphasisDivider] != 4 {
		t.Errorf("dividers: got %d, want 4", counts[EmphasisDivider])
	}
	if counts[EmphasisSuppressed] != 4 {
		t.Errorf("suppressed: got %d, want 4", counts[EmphasisSuppressed])
	}
	for _, l := range lines {
		want := EmphasisDivider
		if l.Ordinal%2 == 1 {
			want = EmphasisSuppressed
		}
		if l.Emphasis != want {
			t.Errorf("gridline %d (%v°): %s, want %s", l.Ordinal, l.AngleDeg, l.Emphasis, want)
		}
	}
}

func TestDividersFallOnGroupBorders(t *testing.T) {
	dividers := map[float64]bool{}
	for _, l := range AngularGridlines() {
		if l.Emphasis == EmphasisDivider {
			dividers[l.AngleDeg] = true
		}
	}
	slots := Slots()
	for i, s := range slots {
		prev := slots[(i+len(slots)-1)%len(slots)]
		if prev.Group == s.Group {
			continue
		}
		border := math.Mod(s.StartDeg()+ThetaOffsetDeg, 360)
		if !dividers[border] {
			t.Errorf("no divider at %s|%s border (%v°)", prev.Group, s.Group, border)
		}
	}
}

func TestApplyEmphasisShortList(t *testing.T) {
	lines := []Gridline{{Ordinal: 0}, {Ordinal: 1}, {Ordinal: 2}}
	got := ApplyEmphasis(lines)
	want := []Emphasis{EmphasisDivider, EmphasisSuppressed, EmphasisDivider}
	for i := range want {
		if got[i].Emphasis != want[i] {
			t.Errorf("line %d: %s, want %s", i, got[i].Emphasis, want[i])
		}
	}
	if lines[0].Emphasis != EmphasisDefault {
		t.Error("ApplyEmphasis modified its input")
	}
	if len(ApplyEmphasis(nil)) != 0 {
		t.Error("ApplyEmphasis(nil) should be empty")
	}
}

func TestApplyEmphasisLongListKeepsDefaults(t *testing.T) {
	lines := make([]Gridline, 12)
	got := ApplyEmphasis(lines)
	for i := 8; i < 12; i++ {
		if got[i].Emphasis != EmphasisDefault {
			t.Errorf("line %d: %s, want default", i, got[i].Emphasis)
		}
	}
}

// ── Label Orientation Rule ──

func TestLabelRotation(t *testing.T) {
	tests := []struct {
		angle float64
		want  float64
	}{
		{9, 279},       // 99 < 270 → flipped
		{171, 441},     // 261 < 270 → flipped
		{180, 270},     // exactly 270 stays
		{191.25, 281.25},
		{352.5, 442.5},
	}
	for _, tt := range tests {
		if got := LabelRotation(tt.angle); got != tt.want {
			t.Errorf("LabelRotation(%v) = %v, want %v", tt.angle, got, tt.want)
		}
	}
}

func TestLabelRotationProperties(t *testing.T) {
	for a := 0.0; a < 360; a += 0.25 {
		got := LabelRotation(a)
		if got < 270 || got >= 450 {
			t.Fatalf("LabelRotation(%v) = %v outside [270,450)", a, got)
		}
		if again := LabelRotation(a); again != got {
			t.Fatalf("LabelRotation(%v) not stable: %v then %v", a, got, again)
		}
		// Text stays on the radius through the label anchor.
		diff := math.Mod(got-(a+ThetaOffsetDeg)+360, 180)
		if diff != 0 {
			t.Fatalf("LabelRotation(%v) = %v is not radial", a, got)
		}
	}
}

func TestSlotLabelAngle(t *testing.T) {
	s, _ := SlotAt(0)
	if got := s.LabelAngle(); math.Abs(got.Degrees()-279) > 1e-9 {
		t.Errorf("slot 0 LabelAngle = %v, want 279°", got.Degrees())
	}
}
