// Package batch drives a full run: discover cluster files, render one
// chart per file in order, render the shared legend and write the
// optional reports.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/sidwheel/internal/chart"
	"github.com/seenimoa/sidwheel/internal/config"
	"github.com/seenimoa/sidwheel/internal/dataset"
	"github.com/seenimoa/sidwheel/internal/report"
	"github.com/seenimoa/sidwheel/pkg/models"
)

// Options controls a batch run.
type Options struct {
	CSVDir     string
	OutputDir  string // empty: CSVDir
	Suffix     string // appended to the cluster id, e.g. "_max_plot"
	LegendName string // legend file name without extension
	Legend     bool
	Workers    int    // <= 1 renders sequentially
	OnError    string // config.OnErrorSkip or config.OnErrorAbort

	// Report destinations; empty disables.
	Gallery  string
	Workbook string
	Manifest string
}

// OptionsFromConfig maps the application config onto batch options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		CSVDir:     cfg.CSVDir,
		OutputDir:  cfg.OutputDir(),
		Suffix:     cfg.Output.Suffix,
		LegendName: cfg.Output.Legend,
		Legend:     cfg.Batch.Legend,
		Workers:    cfg.Batch.Workers,
		OnError:    cfg.Batch.OnError,
		Gallery:    cfg.ResolveReportPath(cfg.Report.Gallery),
		Workbook:   cfg.ResolveReportPath(cfg.Report.Workbook),
		Manifest:   cfg.ResolveReportPath(cfg.Report.Manifest),
	}
}

// ChartConfig maps the application config onto renderer settings.
func ChartConfig(cfg *config.Config) chart.Config {
	return chart.Config{
		SizeIn:   cfg.Chart.SizeIn,
		DPI:      cfg.Chart.DPI,
		FontSize: cfg.Chart.FontSize,
		Format:   cfg.Output.Format,
		Title:    cfg.Chart.Title,
	}
}

// Result is the outcome of a batch.
type Result struct {
	Charts   []models.ChartResult // in discovery order
	Rejected []error              // files skipped during discovery
	Legend   string               // legend path, empty if not written
	Started  time.Time
	Duration time.Duration
}

// Count returns how many charts ended with the given status.
func (r *Result) Count(status models.ChartStatus) int {
	n := 0
	for _, c := range r.Charts {
		if c.Status == status {
			n++
		}
	}
	return n
}

// Driver runs batches. A Driver may be reused across runs.
type Driver struct {
	opts     Options
	renderer *chart.Renderer
	logger   *slog.Logger
}

// NewDriver creates a batch driver.
func NewDriver(opts Options, renderer *chart.Renderer, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.OutputDir == "" {
		opts.OutputDir = opts.CSVDir
	}
	if opts.Suffix == "" {
		opts.Suffix = "_max_plot"
	}
	if opts.LegendName == "" {
		opts.LegendName = "color_legend"
	}
	if opts.OnError == "" {
		opts.OnError = config.OnErrorSkip
	}
	return &Driver{opts: opts, renderer: renderer, logger: logger}
}

// FromConfig builds a driver and its renderer from the application config.
func FromConfig(cfg *config.Config, logger *slog.Logger) *Driver {
	return NewDriver(OptionsFromConfig(cfg), chart.NewRenderer(ChartConfig(cfg), logger), logger)
}

// OutputPath returns where the chart for a cluster id is written.
func (d *Driver) OutputPath(id string) string {
	return filepath.Join(d.opts.OutputDir, id+d.opts.Suffix+d.renderer.Config().Ext())
}

// LegendPath returns where the legend is written.
func (d *Driver) LegendPath() string {
	return filepath.Join(d.opts.OutputDir, d.opts.LegendName+d.renderer.Config().Ext())
}

func (d *Driver) abortOnError() bool {
	return d.opts.OnError == config.OnErrorAbort
}

// ════════════════════════════════════════════════════════════════════
// Run
// ════════════════════════════════════════════════════════════════════

// Run processes every cluster file in the input directory. A discovery
// failure aborts with a *models.DiscoveryError and no result. Under the
// skip policy, file errors are collected and returned joined once the
// batch is complete; under abort, the first file error stops the batch
// and is returned as is.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	res := &Result{Started: time.Now()}

	listing, err := dataset.Discover(d.opts.CSVDir)
	if err != nil {
		return nil, err
	}
	res.Rejected = listing.Rejected
	d.logger.Info("found csv files", "dir", d.opts.CSVDir, "count", len(listing.Inputs), "rejected", len(listing.Rejected))
	for _, rej := range listing.Rejected {
		d.logger.Warn("skipping file", "error", rej)
	}
	if len(listing.Rejected) > 0 && d.abortOnError() {
		res.Duration = time.Since(res.Started)
		return res, listing.Rejected[0]
	}

	if err := os.MkdirAll(d.opts.OutputDir, 0755); err != nil {
		return res, fmt.Errorf("creating output dir: %w", err)
	}

	res.Charts = d.plan(listing.Inputs)
	runErr := d.render(ctx, res.Charts)

	var legendErr error
	if d.opts.Legend && runErr == nil && ctx.Err() == nil {
		path := d.LegendPath()
		if legendErr = d.renderer.RenderLegend(path); legendErr != nil {
			d.logger.Error("legend failed", "output", path, "error", legendErr)
			if d.abortOnError() {
				runErr = legendErr
			}
		} else {
			res.Legend = path
			d.logger.Info("legend saved", "output", path)
		}
	}
	res.Duration = time.Since(res.Started)

	if runErr != nil {
		return res, runErr
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	errs := append([]error{}, res.Rejected...)
	for _, c := range res.Charts {
		if c.Err != nil {
			errs = append(errs, c.Err)
		}
	}
	errs = append(errs, legendErr)
	errs = append(errs, d.writeReports(res))
	return res, errors.Join(errs...)
}

// plan assigns output paths. A cluster id seen before would overwrite
// an earlier chart, so the later file is failed up front.
func (d *Driver) plan(inputs []models.ClusterInput) []models.ChartResult {
	charts := make([]models.ChartResult, len(inputs))
	owner := make(map[string]string, len(inputs))
	for i, in := range inputs {
		out := d.OutputPath(in.ID)
		charts[i] = models.ChartResult{Input: in, Output: out, Status: models.StatusSkipped}
		if first, ok := owner[out]; ok {
			charts[i].Err = models.NewMalformedInputError(in.Path, 0,
				fmt.Errorf("%w: %s already written from %s", models.ErrDuplicateOutput, out, first))
			continue
		}
		owner[out] = in.Path
	}
	return charts
}

// render processes planned charts in place. It returns the error that
// stopped the batch, if any.
func (d *Driver) render(ctx context.Context, charts []models.ChartResult) error {
	if d.opts.Workers <= 1 {
		for i := range charts {
			if ctx.Err() != nil {
				break
			}
			d.process(&charts[i])
			if charts[i].Err != nil && d.abortOnError() {
				return charts[i].Err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Workers)
	for i := range charts {
		c := &charts[i]
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			d.process(c)
			if c.Err != nil && d.abortOnError() {
				return c.Err
			}
			return nil
		})
	}
	return g.Wait()
}

// process reads and renders one cluster file, recording the outcome in c.
func (d *Driver) process(c *models.ChartResult) {
	logger := d.logger.With("file", c.Input.Path, "id", c.Input.ID)

	fail := func(err error) {
		c.Status = models.StatusFailed
		c.Output = ""
		c.Err = err
		logger.Error("chart failed", "error", err)
	}
	if c.Err != nil {
		fail(c.Err)
		return
	}

	logger.Info("processing")
	logger.Debug("extracting data")
	points, err := dataset.ReadFile(c.Input.Path)
	if err != nil {
		fail(err)
		return
	}
	c.Points = points

	logger.Info("plotting")
	if err := d.renderer.RenderTitled(points, d.renderer.Title(c.Input.ID), c.Output); err != nil {
		fail(err)
		return
	}
	c.Status = models.StatusRendered
	logger.Info("figure saved", "output", c.Output)
}

// writeReports writes whichever reports are configured.
func (d *Driver) writeReports(res *Result) error {
	if d.opts.Gallery == "" && d.opts.Workbook == "" && d.opts.Manifest == "" {
		return nil
	}
	run := &report.Run{
		GeneratedAt: res.Started,
		Duration:    res.Duration,
		CSVDir:      d.opts.CSVDir,
		OutputDir:   d.opts.OutputDir,
		Legend:      res.Legend,
		Results:     res.Charts,
	}

	var errs []error
	write := func(kind, path string, fn func(*report.Run, string) error) {
		if path == "" {
			return
		}
		if err := fn(run, path); err != nil {
			errs = append(errs, fmt.Errorf("%s report: %w", kind, err))
			return
		}
		d.logger.Info("report saved", "kind", kind, "output", path)
	}
	write("gallery", d.opts.Gallery, report.WriteGallery)
	write("workbook", d.opts.Workbook, report.WriteWorkbook)
	write("manifest", d.opts.Manifest, report.WriteManifest)
	return errors.Join(errs...)
}
