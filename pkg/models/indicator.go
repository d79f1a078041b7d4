package models

import "fmt"

// SlotCount is the number of indicator variables on the wheel.
const SlotCount = 20

// GroupID identifies one of the four socio-economic indicator sets.
type GroupID string

const (
	SID1 GroupID = "SID1" // Critical infrastructure
	SID2 GroupID = "SID2" // Social standing
	SID3 GroupID = "SID3" // Financial situation
	SID4 GroupID = "SID4" // Physical assets
)

// Description returns the human-readable name of the indicator set.
func (g GroupID) Description() string {
	switch g {
	case SID1:
		return "Critical infrastructure"
	case SID2:
		return "Social standing"
	case SID3:
		return "Financial situation"
	case SID4:
		return "Physical assets"
	default:
		return string(g)
	}
}

// DataPoint is one row of a cluster file: the observed max R² and the
// variable name drawn at that slot.
type DataPoint struct {
	Value    float64 `json:"value"    yaml:"value"`
	Variable string  `json:"variable" yaml:"variable"`
}

// ClusterInput is a discovered cluster CSV file.
type ClusterInput struct {
	Path string `json:"path" yaml:"path"`
	ID   string `json:"id"   yaml:"id"`  // 3-character suffix before ".csv", e.g. "007"
	Key  int    `json:"key"  yaml:"key"` // ID parsed as an integer, used for ordering
}

// String implements fmt.Stringer.
func (c ClusterInput) String() string {
	return fmt.Sprintf("cluster %s (%s)", c.ID, c.Path)
}

// ChartStatus is the outcome of one cluster render.
type ChartStatus string

const (
	StatusRendered ChartStatus = "rendered"
	StatusFailed   ChartStatus = "failed"
	StatusSkipped  ChartStatus = "skipped" // not attempted because the batch aborted
)

// ChartResult records what happened to one cluster file.
type ChartResult struct {
	Input  ClusterInput `json:"input"            yaml:"input"`
	Output string       `json:"output,omitempty" yaml:"output,omitempty"`
	Status ChartStatus  `json:"status"           yaml:"status"`
	Points []DataPoint  `json:"points,omitempty" yaml:"-"`
	Err    error        `json:"-"                yaml:"-"`
}

// Error returns the failure text, or "" for a successful render.
func (r ChartResult) Error() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
