package chart

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/seenimoa/sidwheel/internal/layout"
	"github.com/seenimoa/sidwheel/pkg/models"
)

// Bar is one slot of a wheel paired with the value and label drawn there.
type Bar struct {
	Slot  layout.Slot
	Value float64
	Label string
}

// Spec is everything one wheel drawing needs. It is built per render and
// never shared between renders.
type Spec struct {
	Title       string
	Bars        []Bar
	Alpha       float64 // bar fill opacity
	LabelRadius float64 // in axis units, radialMin..radialMax
	Gridlines   []layout.Gridline
	Legend      bool // no radial grid or tick labels, plain labels, heavy spine
}

// NewSpec pairs points with the layout slots in row order. It fails with
// a *models.MalformedInputError unless there is exactly one finite value
// per slot.
func NewSpec(path string, points []models.DataPoint) (*Spec, error) {
	if len(points) != models.SlotCount {
		return nil, models.NewMalformedInputError(path, 0,
			fmt.Errorf("%w: got %d, want %d", models.ErrRowCount, len(points), models.SlotCount))
	}
	slots := layout.Slots()
	bars := make([]Bar, len(slots))
	for i, s := range slots {
		v := points[i].Value
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, models.NewMalformedInputError(path, i+1, models.ErrNotNumeric)
		}
		bars[i] = Bar{Slot: s, Value: v, Label: points[i].Variable}
	}
	return &Spec{
		Bars:        bars,
		Alpha:       barAlpha,
		LabelRadius: labelRadius,
		Gridlines:   layout.AngularGridlines(),
	}, nil
}

// LegendSpec returns the fully filled wheel labeled with the categories.
func LegendSpec() *Spec {
	slots := layout.Slots()
	bars := make([]Bar, len(slots))
	for i, s := range slots {
		bars[i] = Bar{Slot: s, Value: radialMax, Label: s.Category}
	}
	return &Spec{
		Bars:        bars,
		Alpha:       legendAlpha,
		LabelRadius: legendLabelRadius,
		Gridlines:   layout.AngularGridlines(),
		Legend:      true,
	}
}

// ════════════════════════════════════════════════════════════════════
// Renderer
// ════════════════════════════════════════════════════════════════════

// Renderer writes wheel images. It holds no per-render state and is safe
// for concurrent use.
type Renderer struct {
	cfg    Config
	logger *slog.Logger
}

// NewRenderer creates a renderer; zero config fields take their defaults.
func NewRenderer(cfg Config, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{cfg: cfg.withDefaults(), logger: logger}
}

// Config returns the effective configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Title expands the configured title template for a cluster id.
func (r *Renderer) Title(id string) string {
	return strings.ReplaceAll(r.cfg.Title, "{id}", id)
}

// Render draws one cluster chart to outputPath, replacing any existing
// file. Malformed points are rejected before anything is drawn.
func (r *Renderer) Render(points []models.DataPoint, outputPath string) error {
	return r.RenderTitled(points, "", outputPath)
}

// RenderTitled is Render with a figure title.
func (r *Renderer) RenderTitled(points []models.DataPoint, title, outputPath string) error {
	spec, err := NewSpec(outputPath, points)
	if err != nil {
		return err
	}
	spec.Title = title
	return r.RenderSpec(spec, outputPath)
}

// RenderSpec draws a prepared spec to outputPath.
func (r *Renderer) RenderSpec(spec *Spec, outputPath string) error {
	r.logger.Debug("plotting", "output", outputPath, "legend", spec.Legend)
	if err := r.withSurface(outputPath, func(s *surface) error {
		return s.draw(r.newPlot(spec))
	}); err != nil {
		return &models.RenderError{Path: outputPath, Err: err}
	}
	return nil
}
