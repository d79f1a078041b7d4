// sidwheel: radial bar charts for SID indicator clusters
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/seenimoa/sidwheel/internal/batch"
	"github.com/seenimoa/sidwheel/internal/chart"
	"github.com/seenimoa/sidwheel/internal/config"
	"github.com/seenimoa/sidwheel/internal/layout"
	"github.com/seenimoa/sidwheel/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger
var (
	cfg    *config.Config
	logger *slog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sidwheel",
	Short: "Radial bar charts for SID indicator clusters",
	Long: `sidwheel renders one radial bar chart per cluster CSV file plus a
shared color legend. Twenty socio-economic indicator variables sit on a
fixed wheel grouped into the SID1–SID4 indicator sets; each chart shows
the cluster's max R² per variable.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		logger, err = config.NewLogger(cfg.Logging, os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(legendCmd)
	rootCmd.AddCommand(layoutCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sidwheel %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Render Command ---

var renderCmd = &cobra.Command{
	Use:   "render [csv-dir]",
	Short: "Render a chart for every cluster file, then the legend",
	Long: `Render one radial chart per *.csv file in the input directory, ordered
by the numeric cluster id in the last three characters of the file name,
then write the shared color legend and any configured reports.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			cfg.CSVDir = args[0]
		}
		applyRenderFlags(cmd)
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		res, err := batch.FromConfig(cfg, logger).Run(ctx)
		if res != nil {
			fmt.Printf("Rendered %d/%d charts (%d failed, %d skipped, %d rejected) in %s\n",
				res.Count(models.StatusRendered), len(res.Charts),
				res.Count(models.StatusFailed), res.Count(models.StatusSkipped),
				len(res.Rejected), res.Duration.Round(time.Millisecond))
			if res.Legend != "" {
				fmt.Printf("Legend: %s\n", res.Legend)
			}
		}
		return err
	},
}

func init() {
	f := renderCmd.Flags()
	f.String("csv-dir", "", "directory holding the cluster CSV files")
	f.String("out-dir", "", "directory for chart images (default: csv-dir)")
	f.String("format", "", "image format: png or svg")
	f.Int("workers", 0, "number of charts rendered in parallel")
	f.String("on-error", "", "per-file error policy: skip or abort")
	f.Bool("no-legend", false, "do not write the color legend")
	f.String("gallery", "", "write an HTML gallery to this path")
	f.String("workbook", "", "write an XLSX summary to this path")
	f.String("manifest", "", "write a YAML run manifest to this path")
}

// applyRenderFlags copies explicitly set flags over the loaded config.
func applyRenderFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	str := func(name string, dst *string) {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	str("csv-dir", &cfg.CSVDir)
	str("out-dir", &cfg.Output.Dir)
	str("format", &cfg.Output.Format)
	str("on-error", &cfg.Batch.OnError)
	str("gallery", &cfg.Report.Gallery)
	str("workbook", &cfg.Report.Workbook)
	str("manifest", &cfg.Report.Manifest)
	if f.Changed("workers") {
		cfg.Batch.Workers, _ = f.GetInt("workers")
	}
	if noLegend, _ := f.GetBool("no-legend"); noLegend {
		cfg.Batch.Legend = false
	}
}

// --- Legend Command ---

var legendCmd = &cobra.Command{
	Use:   "legend",
	Short: "Render only the shared color legend",
	RunE: func(cmd *cobra.Command, args []string) error {
		if f, _ := cmd.Flags().GetString("format"); f != "" {
			cfg.Output.Format = f
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		r := chart.NewRenderer(batch.ChartConfig(cfg), logger)

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = filepath.Join(cfg.OutputDir(), cfg.Output.Legend+r.Config().Ext())
		}
		if err := r.RenderLegend(out); err != nil {
			return err
		}
		logger.Info("legend saved", "output", out)
		fmt.Printf("Legend: %s\n", out)
		return nil
	},
}

func init() {
	legendCmd.Flags().String("out", "", "output path (default: <out-dir>/color_legend.png)")
	legendCmd.Flags().String("format", "", "image format: png or svg")
}

// --- Layout Command ---

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the indicator wheel layout",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SLOT\tGROUP\tANGLE\tWIDTH\tCOLOR\tLABEL ROT\tCATEGORY")
		for _, s := range layout.Slots() {
			fmt.Fprintf(w, "%d\t%s\t%.2f\t%.1f\t%s (%s)\t%.2f\t%s\n",
				s.Index, s.Group, s.AngleDeg, s.WidthDeg, s.Color.Name, s.Color.Hex(),
				layout.LabelRotation(s.AngleDeg), s.Category)
		}
		w.Flush()

		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), "Angular gridlines:")
		for _, g := range layout.AngularGridlines() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d  %5.1f°  %s\n", g.Ordinal, g.AngleDeg, g.Emphasis)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		for _, grp := range []models.GroupID{models.SID1, models.SID2, models.SID3, models.SID4} {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-24s %d slots\n", grp, grp.Description(), layout.GroupSizes()[grp])
		}
	},
}
