package chart

import (
	"fmt"
	"image/color"
	"math"

	"github.com/golang/geo/s1"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/seenimoa/sidwheel/internal/layout"
)

// newPlot builds a transparent, axis-less plot holding the wheel.
func (r *Renderer) newPlot(spec *Spec) *plot.Plot {
	p := plot.New()
	p.HideAxes()
	p.X.Padding, p.Y.Padding = 0, 0
	p.BackgroundColor = color.Transparent
	if spec.Title != "" {
		p.Title.Text = spec.Title
		p.Title.TextStyle.Font = r.cfg.font()
		p.Title.TextStyle.Font.Size = vg.Points(r.cfg.FontSize * 1.2)
		p.Title.TextStyle.Color = black
	}
	p.Add(&wheel{spec: spec, font: r.cfg.font()})
	return p
}

// wheel is a plot.Plotter that draws a polar bar chart centered in the
// data area. Angles are measured counter-clockwise from east.
type wheel struct {
	spec *Spec
	font font.Font
}

var (
	_ plot.Plotter    = (*wheel)(nil)
	_ plot.DataRanger = (*wheel)(nil)
)

// DataRange implements plot.DataRanger.
func (w *wheel) DataRange() (xmin, xmax, ymin, ymax float64) {
	span := radialMax - radialMin
	return -span, span, -span, span
}

// Plot implements plot.Plotter. Bars go first so the grid, spine and
// labels stay visible on top of them.
func (w *wheel) Plot(c draw.Canvas, _ *plot.Plot) {
	g := w.geometry(c)

	w.drawBars(&c, g)
	if !w.spec.Legend {
		w.drawRadialGrid(&c, g)
	}
	w.drawAngularGrid(&c, g)
	w.drawSpine(&c, g)
	if !w.spec.Legend {
		w.drawTickLabels(&c, g)
	}
	w.drawLabels(&c, g)
}

// ── Geometry ──

type geometry struct {
	center vg.Point
	radius vg.Length // pixel radius of radialMax
}

// r maps an axis value to a distance from the center, clipped to the axis.
func (g geometry) r(v float64) vg.Length {
	v = math.Max(radialMin, math.Min(radialMax, v))
	return g.radius * vg.Length((v-radialMin)/(radialMax-radialMin))
}

func (g geometry) at(theta s1.Angle, v float64) vg.Point {
	return polar(g.center, g.r(v), theta)
}

func polar(center vg.Point, r vg.Length, theta s1.Angle) vg.Point {
	rad := theta.Radians()
	return vg.Point{
		X: center.X + r*vg.Length(math.Cos(rad)),
		Y: center.Y + r*vg.Length(math.Sin(rad)),
	}
}

// arc samples the circle of radius r from one angle to another.
func arc(center vg.Point, r vg.Length, from, to s1.Angle) []vg.Point {
	steps := int(math.Ceil(math.Abs((to - from).Degrees()) / arcStepDeg))
	if steps < 1 {
		steps = 1
	}
	pts := make([]vg.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := from + (to-from)*s1.Angle(i)/s1.Angle(steps)
		pts = append(pts, polar(center, r, a))
	}
	return pts
}

func circle(center vg.Point, r vg.Length) []vg.Point {
	return arc(center, r, 0, 2*math.Pi)
}

// geometry fits the wheel into c. Data charts leave room for the labels
// that straddle the outer edge; the legend keeps a fixed inset.
func (w *wheel) geometry(c draw.Canvas) geometry {
	size := c.Size()
	half := min(size.X, size.Y) / 2
	g := geometry{center: c.Center()}

	if w.spec.Legend {
		g.radius = half * legendFill
		return g
	}
	pad := w.font.Size * layoutPadEm
	g.radius = half - pad - w.overhang()
	if g.radius < half/4 {
		g.radius = half / 4
	}
	return g
}

// overhang is how far labels at the outer edge reach past it.
func (w *wheel) overhang() vg.Length {
	reach := (w.spec.LabelRadius - radialMax) / (radialMax - radialMin)
	if reach < -0.1 {
		return 0
	}
	sty := w.textStyle(0, black)
	var widest vg.Length
	for _, b := range w.spec.Bars {
		if wd := sty.Width(b.Label); wd > widest {
			widest = wd
		}
	}
	return widest/2 + haloWidth/2
}

// ── Drawing ──

func (w *wheel) drawBars(c *draw.Canvas, g geometry) {
	edge := draw.LineStyle{Color: darkGrey, Width: edgeWidth}
	for _, b := range w.spec.Bars {
		lo, hi := math.Min(0, b.Value), math.Max(0, b.Value)
		if g.r(lo) == g.r(hi) {
			continue
		}
		theta, half := b.Slot.Theta(), b.Slot.Width()/2
		outer := arc(g.center, g.r(hi), theta-half, theta+half)
		inner := arc(g.center, g.r(lo), theta+half, theta-half)
		wedge := append(outer, inner...)

		c.FillPolygon(b.Slot.Color.WithAlpha(w.spec.Alpha), wedge)
		c.StrokeLines(edge, append(wedge, wedge[0]))
	}
}

func (w *wheel) drawRadialGrid(c *draw.Canvas, g geometry) {
	sty := draw.LineStyle{Color: withAlpha(lightGrey, gridAlpha), Width: gridWidth}
	for _, v := range radialTicks() {
		c.StrokeLines(sty, circle(g.center, g.r(v)))
	}
}

func (w *wheel) drawAngularGrid(c *draw.Canvas, g geometry) {
	for _, line := range w.spec.Gridlines {
		sty, visible := gridlineStyle(line.Emphasis)
		if !visible {
			continue
		}
		c.StrokeLines(sty, []vg.Point{g.at(line.Theta(), radialMin), g.at(line.Theta(), radialMax)})
	}
}

func gridlineStyle(e layout.Emphasis) (draw.LineStyle, bool) {
	switch e {
	case layout.EmphasisDivider:
		return draw.LineStyle{Color: black, Width: dividerWidth}, true
	case layout.EmphasisSuppressed:
		return draw.LineStyle{}, false
	default:
		return draw.LineStyle{Color: withAlpha(lightGrey, gridAlpha), Width: gridWidth}, true
	}
}

func (w *wheel) drawSpine(c *draw.Canvas, g geometry) {
	width := spineWidth
	if w.spec.Legend {
		width = dividerWidth
	}
	c.StrokeLines(draw.LineStyle{Color: black, Width: width}, circle(g.center, g.radius))
}

// drawTickLabels writes the radial values along the east axis, reading
// downwards.
func (w *wheel) drawTickLabels(c *draw.Canvas, g geometry) {
	sty := w.textStyle(3*math.Pi/2, black)
	sty.XAlign = draw.XRight
	sty.YAlign = draw.YBottom
	for _, v := range radialTicks() {
		c.FillText(sty, g.at(0, v), fmt.Sprintf("%.1f", v))
	}
}

// drawLabels writes one label per bar, rotated along its radius. Data
// labels get a white halo so they stay legible over bars and grid.
func (w *wheel) drawLabels(c *draw.Canvas, g geometry) {
	for _, b := range w.spec.Bars {
		if b.Label == "" {
			continue
		}
		pt := g.at(b.Slot.Theta(), w.spec.LabelRadius)
		rot := b.Slot.LabelAngle().Radians()

		if !w.spec.Legend {
			halo := w.textStyle(rot, white)
			for k := 0; k < 8; k++ {
				c.FillText(halo, polar(pt, haloWidth/2, s1.Angle(k)*math.Pi/4), b.Label)
			}
		}
		c.FillText(w.textStyle(rot, black), pt, b.Label)
	}
}

func (w *wheel) textStyle(rotation float64, clr color.Color) draw.TextStyle {
	return draw.TextStyle{
		Color:    clr,
		Font:     w.font,
		Rotation: rotation,
		XAlign:   draw.XCenter,
		YAlign:   draw.YCenter,
		Handler:  plot.DefaultTextHandler,
	}
}

// radialTicks returns 0.0, 0.1, ... 1.0.
func radialTicks() []float64 {
	n := int(math.Round(radialMax/tickStep)) + 1
	ticks := make([]float64, n)
	for i := range ticks {
		ticks[i] = math.Round(float64(i)*tickStep*10) / 10
	}
	return ticks
}
