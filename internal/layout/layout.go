// Package layout holds the fixed geometry of the SID indicator wheel: the
// twenty slots with their angles, widths, colors and categories, plus the
// rules that derive gridline emphasis and label rotation from them.
package layout

import (
	"fmt"
	"image/color"
	"math"

	"github.com/golang/geo/s1"

	"github.com/seenimoa/sidwheel/pkg/models"
)

// ThetaOffsetDeg rotates the wheel so slot 0 starts at the top.
const ThetaOffsetDeg = 90.0

// Slot is one fixed position on the indicator wheel.
type Slot struct {
	Index    int
	AngleDeg float64 // center angle, 0 = east, counter-clockwise
	WidthDeg float64
	Color    NamedColor
	Group    models.GroupID
	Category string
}

// Theta returns the plotting angle of the slot center, including the
// wheel offset.
func (s Slot) Theta() s1.Angle {
	return s1.Angle(s.AngleDeg+ThetaOffsetDeg) * s1.Degree
}

// Width returns the angular span of the slot.
func (s Slot) Width() s1.Angle {
	return s1.Angle(s.WidthDeg) * s1.Degree
}

// StartDeg and EndDeg return the slot edges in unrotated degrees.
func (s Slot) StartDeg() float64 { return s.AngleDeg - s.WidthDeg/2 }
func (s Slot) EndDeg() float64   { return s.AngleDeg + s.WidthDeg/2 }

// Interval returns the slot's span on the unit circle.
func (s Slot) Interval() s1.Interval {
	lo := (s1.Angle(math.Mod(s.StartDeg(), 360)) * s1.Degree).Normalized()
	hi := (s1.Angle(math.Mod(s.EndDeg(), 360)) * s1.Degree).Normalized()
	return s1.IntervalFromEndpoints(lo.Radians(), hi.Radians())
}

// NamedColor is a palette entry with its CSS/matplotlib name.
type NamedColor struct {
	Name string
	RGB  color.NRGBA
}

// WithAlpha returns the color at the given opacity in [0,1].
func (c NamedColor) WithAlpha(alpha float64) color.NRGBA {
	out := c.RGB
	out.A = uint8(alpha*255 + 0.5)
	return out
}

// Hex returns the color as #rrggbb.
func (c NamedColor) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.RGB.R, c.RGB.G, c.RGB.B)
}

func rgb(name string, r, g, b uint8) NamedColor {
	return NamedColor{Name: name, RGB: color.NRGBA{R: r, G: g, B: b, A: 0xff}}
}

var (
	angles = [models.SlotCount]float64{
		9, 27, 45, 63, 81, 99, 117, 135, 153, 171,
		191.25, 213.75, 236.25, 258.75,
		277.5, 292.5, 307.5, 322.5, 337.5, 352.5,
	}

	widths = [models.SlotCount]float64{
		18, 18, 18, 18, 18, 18, 18, 18, 18, 18,
		22.5, 22.5, 22.5, 22.5,
		15, 15, 15, 15, 15, 15,
	}

	// Colors run SID4, SID2, SID3, SID1 around the wheel.
	palette = [models.SlotCount]NamedColor{
		rgb("firebrick", 0xb2, 0x22, 0x22),
		rgb("red", 0xff, 0x00, 0x00),
		rgb("darkorange", 0xff, 0x8c, 0x00),
		rgb("orangered", 0xff, 0x45, 0x00),
		rgb("gold", 0xff, 0xd7, 0x00),

		rgb("royalblue", 0x41, 0x69, 0xe1),
		rgb("turquoise", 0x40, 0xe0, 0xd0),
		rgb("steelblue", 0x46, 0x82, 0xb4),
		rgb("lightskyblue", 0x87, 0xce, 0xfa),
		rgb("blue", 0x00, 0x00, 0xff),

		rgb("limegreen", 0x32, 0xcd, 0x32),
		rgb("forestgreen", 0x22, 0x8b, 0x22),
		rgb("lightgreen", 0x90, 0xee, 0x90),
		rgb("darkgreen", 0x00, 0x64, 0x00),

		rgb("purple", 0x80, 0x00, 0x80),
		rgb("magenta", 0xff, 0x00, 0xff),
		rgb("deeppink", 0xff, 0x14, 0x93),
		rgb("fuchsia", 0xff, 0x00, 0xff),
		rgb("violet", 0xee, 0x82, 0xee),
		rgb("hotpink", 0xff, 0x69, 0xb4),
	}

	categories = [models.SlotCount]string{
		"Dwelling Type",
		"Waste Disposal",
		"Water Source",
		"Lighting",
		"Cooking",
		"First Marriage",
		"Education",
		"Type",
		"Age Structure",
		"Household-head",
		"Finance Assistance",
		"Income Source",
		"Employment Status",
		"Savings (any)",
		"Transport Assets",
		"Household Size",
		"Occupation Assets",
		"Furniture",
		"Tech Assets",
		"Home Ownership",
	}
)

// groupRuns lists the color groups in angular order with their sizes.
var groupRuns = []struct {
	Group models.GroupID
	Size  int
}{
	{models.SID4, 5},
	{models.SID2, 5},
	{models.SID3, 4},
	{models.SID1, 6},
}

var table = buildTable()

func buildTable() [models.SlotCount]Slot {
	var t [models.SlotCount]Slot
	i := 0
	for _, run := range groupRuns {
		for n := 0; n < run.Size; n++ {
			t[i] = Slot{
				Index:    i,
				AngleDeg: angles[i],
				WidthDeg: widths[i],
				Color:    palette[i],
				Group:    run.Group,
				Category: categories[i],
			}
			i++
		}
	}
	return t
}

// SlotAt returns the slot at index.
func SlotAt(index int) (Slot, error) {
	if index < 0 || index >= models.SlotCount {
		return Slot{}, fmt.Errorf("slot index %d out of range [0,%d)", index, models.SlotCount)
	}
	return table[index], nil
}

// Slots returns a copy of the full table in index order.
func Slots() []Slot {
	out := make([]Slot, models.SlotCount)
	copy(out, table[:])
	return out
}

// Categories returns the category labels in slot order.
func Categories() []string {
	out := make([]string, models.SlotCount)
	copy(out, categories[:])
	return out
}

// GroupSizes returns how many slots belong to each indicator set.
func GroupSizes() map[models.GroupID]int {
	sizes := make(map[models.GroupID]int, len(groupRuns))
	for _, run := range groupRuns {
		sizes[run.Group] += run.Size
	}
	return sizes
}
