// Package chart draws the SID indicator wheel: one radial bar chart per
// cluster file and a shared color legend. Drawing goes through gonum/plot
// with a polar plotter of its own, since plot only ships Cartesian axes.
package chart

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
)

// ════════════════════════════════════════════════════════════════════
// Configuration
// ════════════════════════════════════════════════════════════════════

// Config holds figure parameters for wheel rendering.
type Config struct {
	SizeIn   float64 // square figure edge in inches (default: 5)
	DPI      int     // raster resolution (default: 100)
	FontSize float64 // label size in points (default: 10)
	Format   string  // "png" or "svg" (default: "png")
	Title    string  // optional; "{id}" is replaced by the cluster id
}

// DefaultConfig returns the 5×5in, 100dpi PNG figure with 10pt labels.
func DefaultConfig() Config {
	return Config{
		SizeIn:   5,
		DPI:      100,
		FontSize: 10,
		Format:   FormatPNG,
	}
}

// Output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Ext returns the file extension for the configured format.
func (c Config) Ext() string {
	if c.Format == FormatSVG {
		return ".svg"
	}
	return ".png"
}

func (c Config) size() vg.Length {
	return vg.Length(c.SizeIn) * vg.Inch
}

func (c Config) font() font.Font {
	f := plot.DefaultFont
	f.Size = vg.Points(c.FontSize)
	return f
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SizeIn <= 0 {
		c.SizeIn = d.SizeIn
	}
	if c.DPI <= 0 {
		c.DPI = d.DPI
	}
	if c.FontSize <= 0 {
		c.FontSize = d.FontSize
	}
	if c.Format == "" {
		c.Format = d.Format
	}
	return c
}

// ── Wheel styling ──

const (
	radialMin = -0.5 // inner "donut hole" of the radial axis
	radialMax = 1.0

	barAlpha          = 0.8
	legendAlpha       = 0.7
	labelRadius       = 1.0
	legendLabelRadius = 0.48

	gridAlpha   = 0.7
	tickStep    = 0.1
	arcStepDeg  = 1.0
	legendFill  = 0.77 // share of the half-width the legend wheel occupies
	layoutPadEm = 1.08 // outer padding in font heights
)

var (
	gridWidth    = vg.Points(0.5)
	dividerWidth = vg.Points(1.75)
	edgeWidth    = vg.Points(1)
	spineWidth   = vg.Points(0.8)
	haloWidth    = vg.Points(3)

	lightGrey = color.NRGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 0xff}
	darkGrey  = color.NRGBA{R: 0xa9, G: 0xa9, B: 0xa9, A: 0xff}
	black     = color.NRGBA{A: 0xff}
	white     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(alpha*255 + 0.5)
	return c
}
