package report

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest is the YAML record of a batch run.
type Manifest struct {
	GeneratedAt time.Time       `yaml:"generated_at"`
	Duration    string          `yaml:"duration"`
	CSVDir      string          `yaml:"csv_dir"`
	OutputDir   string          `yaml:"output_dir"`
	Legend      string          `yaml:"legend,omitempty"`
	Summary     Summary         `yaml:"summary"`
	Charts      []ManifestEntry `yaml:"charts"`
}

// ManifestEntry is one input file and what became of it.
type ManifestEntry struct {
	ID     string `yaml:"id"`
	Source string `yaml:"source"`
	Output string `yaml:"output,omitempty"`
	Status string `yaml:"status"`
	Error  string `yaml:"error,omitempty"`
}

// BuildManifest converts a run into its manifest.
func BuildManifest(run *Run) *Manifest {
	m := &Manifest{
		GeneratedAt: run.GeneratedAt,
		Duration:    FormatDuration(run.Duration),
		CSVDir:      run.CSVDir,
		OutputDir:   run.OutputDir,
		Legend:      run.Legend,
		Summary:     run.Summary(),
		Charts:      make([]ManifestEntry, 0, len(run.Results)),
	}
	for _, res := range run.Results {
		m.Charts = append(m.Charts, ManifestEntry{
			ID:     res.Input.ID,
			Source: res.Input.Path,
			Output: res.Output,
			Status: string(res.Status),
			Error:  res.Error(),
		})
	}
	return m
}

// WriteManifest writes the run manifest to path.
func WriteManifest(run *Run, path string) error {
	if run == nil {
		return fmt.Errorf("run is nil")
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(BuildManifest(run)); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := writeFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}
