package config

// Package config handles configuration loading for sidwheel.
// It supports YAML config files with environment variable overrides.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	CSVDir  string        `mapstructure:"csv_dir" yaml:"csv_dir"` // root to search for *.csv and to write outputs into
	Output  OutputConfig  `mapstructure:"output"  yaml:"output"`
	Chart   ChartConfig   `mapstructure:"chart"   yaml:"chart"`
	Batch   BatchConfig   `mapstructure:"batch"   yaml:"batch"`
	Report  ReportConfig  `mapstructure:"report"  yaml:"report"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// OutputConfig controls where and how chart images are written.
type OutputConfig struct {
	Dir    string `mapstructure:"dir"    yaml:"dir"`    // empty: same as csv_dir
	Format string `mapstructure:"format" yaml:"format"` // "png" or "svg"
	Suffix string `mapstructure:"suffix" yaml:"suffix"` // appended to the cluster id
	Legend string `mapstructure:"legend" yaml:"legend"` // legend file name without extension
}

// ChartConfig holds figure geometry and typography.
type ChartConfig struct {
	SizeIn   float64 `mapstructure:"size_in"   yaml:"size_in"` // square figure edge, inches
	DPI      int     `mapstructure:"dpi"       yaml:"dpi"`
	FontSize float64 `mapstructure:"font_size" yaml:"font_size"` // points
	Title    string  `mapstructure:"title"     yaml:"title"`     // "{id}" is replaced by the cluster id
}

// BatchConfig holds batch driver settings.
type BatchConfig struct {
	Workers int    `mapstructure:"workers"  yaml:"workers"`
	OnError string `mapstructure:"on_error" yaml:"on_error"` // "skip" or "abort"
	Legend  bool   `mapstructure:"legend"   yaml:"legend"`
}

// ReportConfig lists optional batch artifacts. Empty paths disable them;
// relative paths are resolved against the output directory.
type ReportConfig struct {
	Gallery  string `mapstructure:"gallery"  yaml:"gallery"`  // HTML index of all charts
	Workbook string `mapstructure:"workbook" yaml:"workbook"` // XLSX summary
	Manifest string `mapstructure:"manifest" yaml:"manifest"` // YAML run manifest
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

const (
	OnErrorSkip  = "skip"
	OnErrorAbort = "abort"
	FormatPNG    = "png"
	FormatSVG    = "svg"
)

// OutputDir returns the directory charts are written to.
func (c *Config) OutputDir() string {
	if c.Output.Dir != "" {
		return c.Output.Dir
	}
	return c.CSVDir
}

// ResolveReportPath resolves a report path against the output directory.
func (c *Config) ResolveReportPath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.OutputDir(), p)
}

// Validate checks enumerated and numeric settings.
func (c *Config) Validate() error {
	if c.CSVDir == "" {
		return fmt.Errorf("csv_dir must be set")
	}
	switch c.Output.Format {
	case FormatPNG, FormatSVG:
	default:
		return fmt.Errorf("output.format %q: must be %s or %s", c.Output.Format, FormatPNG, FormatSVG)
	}
	switch c.Batch.OnError {
	case OnErrorSkip, OnErrorAbort:
	default:
		return fmt.Errorf("batch.on_error %q: must be %s or %s", c.Batch.OnError, OnErrorSkip, OnErrorAbort)
	}
	if c.Chart.SizeIn <= 0 {
		return fmt.Errorf("chart.size_in must be positive, got %v", c.Chart.SizeIn)
	}
	if c.Chart.DPI <= 0 {
		return fmt.Errorf("chart.dpi must be positive, got %d", c.Chart.DPI)
	}
	if c.Chart.FontSize <= 0 {
		return fmt.Errorf("chart.font_size must be positive, got %v", c.Chart.FontSize)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers)
	}
	if c.Output.Legend == "" {
		return fmt.Errorf("output.legend must not be empty")
	}
	return nil
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.sidwheel/config.yaml (home directory)
//  3. /etc/sidwheel/config.yaml (system)
//
// Environment variables override config file values.
// Format: SIDWHEEL_<SECTION>_<KEY>, e.g., SIDWHEEL_BATCH_WORKERS
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".sidwheel"))
	v.AddConfigPath("/etc/sidwheel")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return unmarshal(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("SIDWHEEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("csv_dir", "./max")

	// Output defaults
	v.SetDefault("output.dir", "")
	v.SetDefault("output.format", FormatPNG)
	v.SetDefault("output.suffix", "_max_plot")
	v.SetDefault("output.legend", "color_legend")

	// Chart defaults (5×5 in at 100 dpi → 500×500 px)
	v.SetDefault("chart.size_in", 5.0)
	v.SetDefault("chart.dpi", 100)
	v.SetDefault("chart.font_size", 10.0)
	v.SetDefault("chart.title", "")

	// Batch defaults
	v.SetDefault("batch.workers", 1)
	v.SetDefault("batch.on_error", OnErrorSkip)
	v.SetDefault("batch.legend", true)

	// Report defaults (all off)
	v.SetDefault("report.gallery", "")
	v.SetDefault("report.workbook", "")
	v.SetDefault("report.manifest", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
