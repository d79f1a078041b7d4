package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/seenimoa/sidwheel/pkg/models"
)

// ReadFile parses a cluster CSV file. See Read.
func ReadFile(path string) ([]models.DataPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, models.NewMalformedInputError(path, 0, err)
	}
	defer f.Close()
	return Read(f, path)
}

// Read parses a header row followed by exactly models.SlotCount data rows.
// Column 0 is the value, column 1 the variable name; further columns are
// ignored. Row order is slot order. Any problem is returned as a
// *models.MalformedInputError naming the 1-based data row.
func Read(r io.Reader, path string) ([]models.DataPoint, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, models.NewMalformedInputError(path, 0,
				fmt.Errorf("%w: empty file", models.ErrRowCount))
		}
		return nil, models.NewMalformedInputError(path, 0, err)
	}

	points := make([]models.DataPoint, 0, models.SlotCount)
	row := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, models.NewMalformedInputError(path, row, err)
		}
		if blank(rec) {
			row--
			continue
		}
		if len(rec) < 2 {
			return nil, models.NewMalformedInputError(path, row,
				fmt.Errorf("want 2 columns (value, variable), got %d", len(rec)))
		}
		value, err := ParseValue(rec[0])
		if err != nil {
			return nil, models.NewMalformedInputError(path, row, err)
		}
		points = append(points, models.DataPoint{Value: value, Variable: strings.TrimSpace(rec[1])})
	}

	if len(points) != models.SlotCount {
		return nil, models.NewMalformedInputError(path, 0,
			fmt.Errorf("%w: got %d, want %d", models.ErrRowCount, len(points), models.SlotCount))
	}
	return points, nil
}

// ParseValue parses a value column as a finite float.
func ParseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", models.ErrNotNumeric, s)
	}
	return v, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
