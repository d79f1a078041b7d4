// Package report writes the optional batch artifacts that sit next to the
// charts: an HTML gallery, an XLSX summary workbook and a YAML run
// manifest. All of them are built from the same Run.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/seenimoa/sidwheel/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Run
// ════════════════════════════════════════════════════════════════════

// Run describes one batch for reporting.
type Run struct {
	GeneratedAt time.Time
	Duration    time.Duration
	CSVDir      string
	OutputDir   string
	Legend      string // legend image path; empty when not written
	Results     []models.ChartResult
}

// Summary counts results per status.
type Summary struct {
	Total    int `yaml:"total"`
	Rendered int `yaml:"rendered"`
	Failed   int `yaml:"failed"`
	Skipped  int `yaml:"skipped"`
}

// Summary tallies the run's results.
func (r *Run) Summary() Summary {
	s := Summary{Total: len(r.Results)}
	for _, res := range r.Results {
		switch res.Status {
		case models.StatusRendered:
			s.Rendered++
		case models.StatusFailed:
			s.Failed++
		case models.StatusSkipped:
			s.Skipped++
		}
	}
	return s
}

// Rendered returns the successful results in batch order.
func (r *Run) Rendered() []models.ChartResult {
	var out []models.ChartResult
	for _, res := range r.Results {
		if res.Status == models.StatusRendered {
			out = append(out, res)
		}
	}
	return out
}

// ════════════════════════════════════════════════════════════════════
// Utility
// ════════════════════════════════════════════════════════════════════

// ReportTimestamp formats t for report headers.
func ReportTimestamp(t time.Time) string {
	return t.Format("02 Jan 2006, 15:04 MST")
}

// FormatDuration formats a duration for display.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
	return fmt.Sprintf("%.1fh", d.Hours())
}

// relPath returns target relative to the directory of from, with forward
// slashes, falling back to target itself.
func relPath(from, target string) string {
	if target == "" {
		return ""
	}
	rel, err := filepath.Rel(filepath.Dir(from), target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}

// writeFile writes data to path via a temporary file and rename.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	return os.Rename(name, path)
}
