package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/seenimoa/sidwheel/internal/layout"
	"github.com/seenimoa/sidwheel/pkg/models"
)

// Workbook sheet names.
const (
	SheetValues    = "max_r2"
	SheetVariables = "variables"
	SheetCharts    = "charts"
)

// chartRowStride is how many rows one embedded chart image occupies.
const chartRowStride = 12

// WriteWorkbook writes an XLSX summary of the run: one row per rendered
// cluster with its values, the matching variable names, and the chart
// images themselves.
func WriteWorkbook(run *Run, path string) error {
	if run == nil {
		return fmt.Errorf("run is nil")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetValues); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	for _, name := range []string{SheetVariables, SheetCharts} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	rendered := run.Rendered()
	if err := writeGrid(f, SheetValues, rendered, func(p models.DataPoint) interface{} { return p.Value }); err != nil {
		return err
	}
	if err := writeGrid(f, SheetVariables, rendered, func(p models.DataPoint) interface{} { return p.Variable }); err != nil {
		return err
	}
	if err := writeCharts(f, rendered); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

// writeGrid writes a header of categories and one row per cluster.
func writeGrid(f *excelize.File, sheet string, results []models.ChartResult, cell func(models.DataPoint) interface{}) error {
	header := []interface{}{"cluster"}
	for _, c := range layout.Categories() {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}

	for i, res := range results {
		row := []interface{}{res.Input.ID}
		for _, p := range res.Points {
			row = append(row, cell(p))
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			return fmt.Errorf("%s row %s: %w", sheet, res.Input.ID, err)
		}
	}
	if err := f.SetColWidth(sheet, "B", "U", 16); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	})
}

// writeCharts embeds each PNG chart below the previous one.
func writeCharts(f *excelize.File, results []models.ChartResult) error {
	row := 1
	for _, res := range results {
		if !strings.EqualFold(filepath.Ext(res.Output), ".png") {
			continue
		}
		label, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(SheetCharts, label, "Cluster "+res.Input.ID); err != nil {
			return err
		}
		anchor, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.AddPicture(SheetCharts, anchor, res.Output, &excelize.GraphicOptions{
			ScaleX:  0.4,
			ScaleY:  0.4,
			AltText: res.Input.ID,
		}); err != nil {
			return fmt.Errorf("embedding chart %s: %w", res.Output, err)
		}
		row += chartRowStride
	}
	return nil
}
