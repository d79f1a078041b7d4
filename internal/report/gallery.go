package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/seenimoa/sidwheel/internal/layout"
	"github.com/seenimoa/sidwheel/pkg/models"
)

// GalleryData is the template model for the HTML gallery.
type GalleryData struct {
	Title       string
	GeneratedAt string
	Duration    string
	CSVDir      string
	Legend      string // relative image path
	Summary     Summary
	Charts      []GalleryChart
	Failures    []GalleryFailure
}

// GalleryChart is one rendered cluster.
type GalleryChart struct {
	ID     string
	Image  string
	Source string
	Rows   []GalleryRow
}

// GalleryRow is one slot of a cluster chart.
type GalleryRow struct {
	Group    string
	Category string
	Variable string
	Value    string
	Color    string
}

// GalleryFailure is a cluster that produced no chart.
type GalleryFailure struct {
	ID     string
	Source string
	Status string
	Error  string
}

// GenerateGallery renders the gallery HTML for a run. Image paths are
// made relative to galleryPath.
func GenerateGallery(run *Run, galleryPath string) (string, error) {
	if run == nil {
		return "", fmt.Errorf("run is nil")
	}

	tmpl, err := template.New("gallery").Parse(GalleryTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, buildGalleryData(run, galleryPath)); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

// WriteGallery renders the gallery and writes it to path.
func WriteGallery(run *Run, path string) error {
	html, err := GenerateGallery(run, path)
	if err != nil {
		return err
	}
	if err := writeFile(path, []byte(html)); err != nil {
		return fmt.Errorf("writing gallery %s: %w", path, err)
	}
	return nil
}

func buildGalleryData(run *Run, galleryPath string) GalleryData {
	d := GalleryData{
		Title:       "SID cluster charts",
		GeneratedAt: ReportTimestamp(run.GeneratedAt),
		Duration:    FormatDuration(run.Duration),
		CSVDir:      run.CSVDir,
		Legend:      relPath(galleryPath, run.Legend),
		Summary:     run.Summary(),
	}

	slots := layout.Slots()
	for _, res := range run.Results {
		if res.Status != models.StatusRendered {
			d.Failures = append(d.Failures, GalleryFailure{
				ID:     res.Input.ID,
				Source: res.Input.Path,
				Status: string(res.Status),
				Error:  res.Error(),
			})
			continue
		}
		c := GalleryChart{
			ID:     res.Input.ID,
			Image:  relPath(galleryPath, res.Output),
			Source: res.Input.Path,
		}
		for i, p := range res.Points {
			if i >= len(slots) {
				break
			}
			c.Rows = append(c.Rows, GalleryRow{
				Group:    string(slots[i].Group),
				Category: slots[i].Category,
				Variable: p.Variable,
				Value:    fmt.Sprintf("%.3f", p.Value),
				Color:    slots[i].Color.Hex(),
			})
		}
		d.Charts = append(d.Charts, c)
	}
	return d
}
