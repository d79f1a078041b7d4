// Package dataset finds cluster CSV files and parses them into the
// twenty data points of one chart.
package dataset

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/seenimoa/sidwheel/pkg/models"
)

const (
	csvExt   = ".csv"
	idLength = 3
)

// Listing is the result of scanning an input directory.
type Listing struct {
	Dir      string
	Inputs   []models.ClusterInput // ordered by numeric cluster id
	Rejected []error              // *models.MalformedInputError for unusable file names
}

// Discover lists the *.csv files in dir (non-recursive) ordered by the
// integer formed from the three characters before ".csv", so that
// a_003.csv, a_001.csv, a_002.csv are returned as 001, 002, 003.
// Ties keep path order. A missing or unreadable dir is a
// *models.DiscoveryError; an empty dir is an empty listing.
func Discover(dir string) (*Listing, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &models.DiscoveryError{Dir: dir, Err: err}
	}

	listing := &Listing{Dir: dir}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), csvExt) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		input, err := ParseClusterInput(path)
		if err != nil {
			listing.Rejected = append(listing.Rejected, err)
			continue
		}
		listing.Inputs = append(listing.Inputs, input)
	}

	sort.SliceStable(listing.Inputs, func(i, j int) bool {
		a, b := listing.Inputs[i], listing.Inputs[j]
		if a.Key != b.Key {
			return a.Key < b.Key
		}
		return a.Path < b.Path
	})
	return listing, nil
}

// ParseClusterInput derives the cluster id from a CSV path.
func ParseClusterInput(path string) (models.ClusterInput, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if len(stem) < idLength {
		return models.ClusterInput{}, models.NewMalformedInputError(path, 0, models.ErrBadClusterID)
	}
	id := stem[len(stem)-idLength:]
	key, err := strconv.Atoi(id)
	if err != nil || strings.TrimLeft(id, "0123456789") != "" {
		return models.ClusterInput{}, models.NewMalformedInputError(path, 0, models.ErrBadClusterID)
	}
	return models.ClusterInput{Path: path, ID: id, Key: key}, nil
}
