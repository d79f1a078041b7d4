package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seenimoa/sidwheel/internal/chart"
	"github.com/seenimoa/sidwheel/internal/config"
	"github.com/seenimoa/sidwheel/internal/report"
	"github.com/seenimoa/sidwheel/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

func clusterCSV(rows int) string {
	var sb strings.Builder
	sb.WriteString("max_r2,variable\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&sb, "%.2f,var_%02d\n", float64(i%10)/10, i)
	}
	return sb.String()
}

func writeCluster(t *testing.T, dir, name string, rows int) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(clusterCSV(rows)), 0644); err != nil {
		t.Fatal(err)
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDriver(opts Options) *Driver {
	logger := quietLogger()
	return NewDriver(opts, chart.NewRenderer(chart.DefaultConfig(), logger), logger)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func ids(charts []models.ChartResult) string {
	var out []string
	for _, c := range charts {
		out = append(out, c.Input.ID)
	}
	return strings.Join(out, ",")
}

// ════════════════════════════════════════════════════════════════════
// Run
// ════════════════════════════════════════════════════════════════════

func TestRun_OrderAndOutputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a_003.csv", "a_001.csv", "a_002.csv"} {
		writeCluster(t, dir, name, 20)
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	d := NewDriver(Options{CSVDir: dir, Legend: true}, chart.NewRenderer(chart.DefaultConfig(), logger), logger)

	res, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got := ids(res.Charts); got != "001,002,003" {
		t.Errorf("order: got %s, want 001,002,003", got)
	}
	for _, id := range []string{"001", "002", "003"} {
		if !exists(filepath.Join(dir, id+"_max_plot.png")) {
			t.Errorf("missing chart for %s", id)
		}
	}
	if res.Legend != filepath.Join(dir, "color_legend.png") || !exists(res.Legend) {
		t.Errorf("legend not written: %q", res.Legend)
	}
	if res.Count(models.StatusRendered) != 3 {
		t.Errorf("rendered: got %d", res.Count(models.StatusRendered))
	}
	if len(res.Charts[0].Points) != models.SlotCount {
		t.Errorf("points not recorded on result")
	}
	if !strings.Contains(logs.String(), "count=3") {
		t.Errorf("discovery count not logged:\n%s", logs.String())
	}
}

func TestRun_NoInputsStillWritesLegend(t *testing.T) {
	dir := t.TempDir()
	res, err := newTestDriver(Options{CSVDir: dir, Legend: true}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(res.Charts) != 0 {
		t.Errorf("charts: got %d", len(res.Charts))
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "color_legend.png" {
		t.Errorf("dir contents: %v", entries)
	}
}

func TestRun_LegendDisabled(t *testing.T) {
	dir := t.TempDir()
	writeCluster(t, dir, "c_001.csv", 20)
	res, err := newTestDriver(Options{CSVDir: dir, Legend: false}).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Legend != "" || exists(filepath.Join(dir, "color_legend.png")) {
		t.Error("legend should not be written")
	}
}

func TestRun_SkipPolicyContinues(t *testing.T) {
	dir := t.TempDir()
	writeCluster(t, dir, "c_001.csv", 20)
	writeCluster(t, dir, "c_002.csv", 19)
	writeCluster(t, dir, "c_003.csv", 20)

	res, err := newTestDriver(Options{CSVDir: dir, Legend: true, OnError: config.OnErrorSkip}).Run(context.Background())
	var me *models.MalformedInputError
	if !errors.As(err, &me) || !errors.Is(err, models.ErrRowCount) {
		t.Fatalf("expected joined MalformedInputError, got %v", err)
	}
	if res.Charts[1].Status != models.StatusFailed || res.Charts[1].Output != "" {
		t.Errorf("002: %+v", res.Charts[1])
	}
	if res.Charts[0].Status != models.StatusRendered || res.Charts[2].Status != models.StatusRendered {
		t.Errorf("statuses: %s, %s", res.Charts[0].Status, res.Charts[2].Status)
	}
	if exists(filepath.Join(dir, "002_max_plot.png")) {
		t.Error("malformed file produced a chart")
	}
	if !exists(filepath.Join(dir, "003_max_plot.png")) || res.Legend == "" {
		t.Error("batch did not continue after the malformed file")
	}
}

func TestRun_AbortPolicyStops(t *testing.T) {
	dir := t.TempDir()
	writeCluster(t, dir, "c_001.csv", 20)
	writeCluster(t, dir, "c_002.csv", 5)
	writeCluster(t, dir, "c_003.csv", 20)

	res, err := newTestDriver(Options{CSVDir: dir, Legend: true, OnError: config.OnErrorAbort}).Run(context.Background())
	var me *models.MalformedInputError
	if !errors.As(err, &me) || !strings.HasSuffix(me.Path, "c_002.csv") {
		t.Fatalf("expected MalformedInputError for c_002.csv, got %v", err)
	}
	want := []models.ChartStatus{models.StatusRendered, models.StatusFailed, models.StatusSkipped}
	for i, st := range want {
		if res.Charts[i].Status != st {
			t.Errorf("chart %d: got %s, want %s", i, res.Charts[i].Status, st)
		}
	}
	if exists(filepath.Join(dir, "003_max_plot.png")) || exists(filepath.Join(dir, "color_legend.png")) {
		t.Error("abort should stop before later charts and the legend")
	}
}

func TestRun_ParallelKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	for i := 8; i >= 1; i-- {
		writeCluster(t, dir, fmt.Sprintf("c_%03d.csv", i), 20)
	}
	res, err := newTestDriver(Options{CSVDir: dir, Legend: true, Workers: 4}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got := ids(res.Charts); got != "001,002,003,004,005,006,007,008" {
		t.Errorf("order: got %s", got)
	}
	if res.Count(models.StatusRendered) != 8 {
		t.Errorf("rendered: got %d, want 8", res.Count(models.StatusRendered))
	}
}

func TestRun_ParallelAbort(t *testing.T) {
	dir := t.TempDir()
	writeCluster(t, dir, "c_001.csv", 3)
	for i := 2; i <= 6; i++ {
		writeCluster(t, dir, fmt.Sprintf("c_%03d.csv", i), 20)
	}
	res, err := newTestDriver(Options{CSVDir: dir, Legend: true, Workers: 2, OnError: config.OnErrorAbort}).Run(context.Background())
	if !errors.Is(err, models.ErrRowCount) {
		t.Fatalf("expected ErrRowCount, got %v", err)
	}
	if res.Charts[0].Status != models.StatusFailed {
		t.Errorf("001: got %s", res.Charts[0].Status)
	}
	if res.Legend != "" {
		t.Error("aborted batch should not write the legend")
	}
}

func TestRun_DuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	writeCluster(t, dir, "a_001.csv", 20)
	writeCluster(t, dir, "b_001.csv", 20)

	res, err := newTestDriver(Options{CSVDir: dir}).Run(context.Background())
	if !errors.Is(err, models.ErrDuplicateOutput) {
		t.Fatalf("expected ErrDuplicateOutput, got %v", err)
	}
	if res.Charts[0].Status != models.StatusRendered || res.Charts[1].Status != models.StatusFailed {
		t.Errorf("statuses: %s, %s", res.Charts[0].Status, res.Charts[1].Status)
	}
	if !strings.HasSuffix(res.Charts[0].Input.Path, "a_001.csv") {
		t.Errorf("first owner: %s", res.Charts[0].Input.Path)
	}
}

func TestRun_RejectedFileNames(t *testing.T) {
	dir := t.TempDir()
	writeCluster(t, dir, "c_001.csv", 20)
	writeCluster(t, dir, "summary.csv", 20)

	res, err := newTestDriver(Options{CSVDir: dir}).Run(context.Background())
	if !errors.Is(err, models.ErrBadClusterID) {
		t.Fatalf("expected ErrBadClusterID, got %v", err)
	}
	if len(res.Rejected) != 1 || res.Count(models.StatusRendered) != 1 {
		t.Errorf("rejected %d, rendered %d", len(res.Rejected), res.Count(models.StatusRendered))
	}
}

func TestRun_MissingDir(t *testing.T) {
	res, err := newTestDriver(Options{CSVDir: filepath.Join(t.TempDir(), "nope")}).Run(context.Background())
	var de *models.DiscoveryError
	if !errors.As(err, &de) {
		t.Fatalf("expected DiscoveryError, got %v", err)
	}
	if res != nil {
		t.Error("discovery failure should not return a result")
	}
}

func TestRun_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeCluster(t, dir, "c_001.csv", 20)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := newTestDriver(Options{CSVDir: dir, Legend: true}).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if res.Charts[0].Status != models.StatusSkipped || exists(filepath.Join(dir, "001_max_plot.png")) {
		t.Error("canceled batch should not render")
	}
}

func TestRun_SeparateOutputDirAndReports(t *testing.T) {
	in, out := t.TempDir(), filepath.Join(t.TempDir(), "charts")
	writeCluster(t, in, "c_001.csv", 20)
	writeCluster(t, in, "c_002.csv", 20)

	opts := Options{
		CSVDir:    in,
		OutputDir: out,
		Legend:    true,
		Gallery:   filepath.Join(out, "index.html"),
		Workbook:  filepath.Join(out, "summary.xlsx"),
		Manifest:  filepath.Join(out, "manifest.yaml"),
	}
	if _, err := newTestDriver(opts).Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	for _, name := range []string{"001_max_plot.png", "002_max_plot.png", "color_legend.png", "index.html", "summary.xlsx", "manifest.yaml"} {
		if !exists(filepath.Join(out, name)) {
			t.Errorf("missing %s", name)
		}
	}
	m, err := report.ReadManifest(opts.Manifest)
	if err != nil {
		t.Fatal(err)
	}
	if m.Summary.Rendered != 2 || m.Legend == "" {
		t.Errorf("manifest: %+v", m.Summary)
	}
}

func TestRun_SVGFormat(t *testing.T) {
	dir := t.TempDir()
	writeCluster(t, dir, "c_001.csv", 20)
	logger := quietLogger()
	d := NewDriver(Options{CSVDir: dir, Legend: true}, chart.NewRenderer(chart.Config{Format: chart.FormatSVG}, logger), logger)
	if _, err := d.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !exists(filepath.Join(dir, "001_max_plot.svg")) || !exists(filepath.Join(dir, "color_legend.svg")) {
		t.Error("svg outputs missing")
	}
}

// ════════════════════════════════════════════════════════════════════
// Config mapping
// ════════════════════════════════════════════════════════════════════

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{CSVDir: "/data/max"}
	cfg.Output.Suffix = "_max_plot"
	cfg.Output.Legend = "color_legend"
	cfg.Batch.Workers = 3
	cfg.Batch.OnError = config.OnErrorAbort
	cfg.Report.Manifest = "manifest.yaml"

	opts := OptionsFromConfig(cfg)
	if opts.OutputDir != "/data/max" || opts.Workers != 3 || opts.OnError != config.OnErrorAbort {
		t.Errorf("OptionsFromConfig() = %+v", opts)
	}
	if opts.Manifest != filepath.Join("/data/max", "manifest.yaml") {
		t.Errorf("manifest path: got %q", opts.Manifest)
	}
	if opts.Gallery != "" {
		t.Errorf("gallery should stay disabled, got %q", opts.Gallery)
	}
}

func TestOutputPaths(t *testing.T) {
	d := newTestDriver(Options{CSVDir: "/data"})
	if got := d.OutputPath("007"); got != filepath.Join("/data", "007_max_plot.png") {
		t.Errorf("OutputPath: got %q", got)
	}
	if got := d.LegendPath(); got != filepath.Join("/data", "color_legend.png") {
		t.Errorf("LegendPath: got %q", got)
	}
}
