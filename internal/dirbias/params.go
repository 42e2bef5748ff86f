package dirbias

import (
	"fmt"
	"strings"
)

// ApplyMethod selects how per-bin offsets are spread back onto the grid.
type ApplyMethod int

const (
	// Linear interpolates between neighbouring bin centres.
	Linear ApplyMethod = iota
	// Nearest uses the offset of the bin containing the cell.
	Nearest
)

func (m ApplyMethod) String() string {
	switch m {
	case Linear:
		return "linear"
	case Nearest:
		return "nearest"
	default:
		return fmt.Sprintf("ApplyMethod(%d)", int(m))
	}
}

// Statistic selects how the offsets inside one bin are summarised.
type Statistic int

const (
	Mean Statistic = iota
	Median
)

func (s Statistic) String() string {
	switch s {
	case Mean:
		return "mean"
	case Median:
		return "median"
	default:
		return fmt.Sprintf("Statistic(%d)", int(s))
	}
}

// ParseStatistic accepts "mean" or "median" (case-insensitive).
func ParseStatistic(s string) (Statistic, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mean":
		return Mean, nil
	case "median":
		return Median, nil
	}
	return Mean, fmt.Errorf("dirbias: unknown statistic %q", s)
}

// Params configures the directional binning correction.
type Params struct {
	// Angle of the bias axis in degrees, counter-clockwise from east.
	// 90 bins along the northing, which corrects north-south undulations.
	Angle float64
	// Bins is the number of equal-width bins along the bias axis.
	Bins          int
	Apply         ApplyMethod
	Statistic     Statistic
	MinBinSamples int
}

// NorthSouth returns the parameters used for Pleiades along-track undulation:
// 90 degrees, 1000 bins, linear application, mean offset per bin.
func NorthSouth() Params {
	return Params{
		Angle:         90,
		Bins:          1000,
		Apply:         Linear,
		Statistic:     Mean,
		MinBinSamples: 1,
	}
}

// Validate reports the first invalid field.
func (p Params) Validate() error {
	if p.Bins < 1 {
		return fmt.Errorf("dirbias: bins must be positive, got %d", p.Bins)
	}
	if p.MinBinSamples < 1 {
		return fmt.Errorf("dirbias: min bin samples must be positive, got %d", p.MinBinSamples)
	}
	if p.Apply != Linear && p.Apply != Nearest {
		return fmt.Errorf("dirbias: unsupported apply method %v", p.Apply)
	}
	if p.Statistic != Mean && p.Statistic != Median {
		return fmt.Errorf("dirbias: unsupported statistic %v", p.Statistic)
	}
	return nil
}
