// Package dirbias estimates and removes a directional (along-track) bias from
// an elevation-difference grid.
//
// The grid is cut into equal-width bins along the bias axis. Per bin, the
// offset between source and reference is summarised over stable (inlier)
// cells; the offsets are then interpolated between bin centres and subtracted
// from every valid source cell, inlier or not.
package dirbias

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"dh-debias/internal/raster"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrInsufficientSamples means too few bins hold enough inlier samples
	// to build a correction curve.
	ErrInsufficientSamples = errors.New("dirbias: not enough inlier samples to fit the bias")
	// ErrMisaligned means source, reference and mask do not share one grid.
	ErrMisaligned = errors.New("dirbias: source, reference and mask are not aligned")
)

// Model is a fitted correction curve: Offsets[i] applies at Centers[i] along
// the bias axis. Only bins that met the sample threshold are kept, in
// increasing axis order.
type Model struct {
	Params  Params
	Centers []float64
	Offsets []float64
	Counts  []int

	// Bin layout along the axis.
	Min   float64
	Width float64
}

// Engine fits and applies the correction. The zero value is not usable; use
// New.
type Engine struct {
	params Params
}

// New validates params and returns an engine.
func New(params Params) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Engine{params: params}, nil
}

// Params returns the engine configuration.
func (e *Engine) Params() Params {
	return e.params
}

// FitAndApply fits the bias of source relative to reference over the inlier
// cells and returns a corrected copy of source.
func (e *Engine) FitAndApply(reference, source *raster.Grid, inliers *raster.Mask) (*raster.Grid, error) {
	model, err := e.Fit(reference, source, inliers)
	if err != nil {
		return nil, err
	}
	return model.Apply(source)
}

// Fit estimates the per-bin offsets.
func (e *Engine) Fit(reference, source *raster.Grid, inliers *raster.Mask) (*Model, error) {
	if err := source.Validate(); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if err := reference.Validate(); err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	if !source.Aligned(reference) {
		return nil, fmt.Errorf("reference %dx%d vs source %dx%d: %w",
			reference.Width, reference.Height, source.Width, source.Height, ErrMisaligned)
	}
	if inliers == nil || !inliers.Matches(source) {
		return nil, fmt.Errorf("inlier mask does not match source %dx%d: %w",
			source.Width, source.Height, ErrMisaligned)
	}

	axis := axisCoords(source, e.params.Angle)
	lo, hi := floats.Min(axis), floats.Max(axis)
	width := (hi - lo) / float64(e.params.Bins)

	samples := make([][]float64, e.params.Bins)
	for i, u := range axis {
		if !inliers.Data[i] {
			continue
		}
		s, r := source.Data[i], reference.Data[i]
		if !source.IsValid(s) || !reference.IsValid(r) {
			continue
		}
		k := binIndex(u, lo, width, e.params.Bins)
		samples[k] = append(samples[k], s-r)
	}

	m := &Model{Params: e.params, Min: lo, Width: width}
	for k, xs := range samples {
		if len(xs) < e.params.MinBinSamples {
			continue
		}
		m.Centers = append(m.Centers, lo+(float64(k)+0.5)*width)
		m.Offsets = append(m.Offsets, summarise(xs, e.params.Statistic))
		m.Counts = append(m.Counts, len(xs))
	}

	need := 2
	if e.params.Apply == Nearest {
		need = 1
	}
	if len(m.Centers) < need {
		return nil, fmt.Errorf("%d of %d bins have at least %d samples: %w",
			len(m.Centers), e.params.Bins, e.params.MinBinSamples, ErrInsufficientSamples)
	}
	return m, nil
}

// Apply subtracts the fitted curve from every valid cell of source and
// returns the corrected copy. Invalid cells are copied unchanged.
func (m *Model) Apply(source *raster.Grid) (*raster.Grid, error) {
	if err := source.Validate(); err != nil {
		return nil, err
	}
	out := source.Clone()
	axis := axisCoords(source, m.Params.Angle)
	for i, u := range axis {
		v := source.Data[i]
		if !source.IsValid(v) {
			continue
		}
		out.Data[i] = v - m.At(u)
	}
	return out, nil
}

// At returns the correction at axis coordinate u.
func (m *Model) At(u float64) float64 {
	n := len(m.Centers)
	if n == 0 {
		return 0
	}
	if m.Params.Apply == Nearest {
		return m.Offsets[m.nearest(u)]
	}
	if u <= m.Centers[0] {
		return m.Offsets[0]
	}
	if u >= m.Centers[n-1] {
		return m.Offsets[n-1]
	}
	j := sort.SearchFloat64s(m.Centers, u)
	if m.Centers[j] == u {
		return m.Offsets[j]
	}
	x0, x1 := m.Centers[j-1], m.Centers[j]
	y0, y1 := m.Offsets[j-1], m.Offsets[j]
	return y0 + (y1-y0)*(u-x0)/(x1-x0)
}

// nearest returns the index of the kept bin that contains u, or the closest
// kept bin centre when u's own bin was dropped.
func (m *Model) nearest(u float64) int {
	k := binIndex(u, m.Min, m.Width, m.Params.Bins)
	c := m.Min + (float64(k)+0.5)*m.Width
	j := sort.SearchFloat64s(m.Centers, c)
	switch {
	case j < len(m.Centers) && m.Centers[j] == c:
		return j
	case j == 0:
		return 0
	case j == len(m.Centers):
		return j - 1
	case c-m.Centers[j-1] <= m.Centers[j]-c:
		return j - 1
	default:
		return j
	}
}

// axisCoords projects every cell centre onto the bias axis.
func axisCoords(g *raster.Grid, angle float64) []float64 {
	rad := angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	// Snap the cardinal directions so 90 degrees depends on y only.
	if math.Abs(cos) < 1e-12 {
		cos = 0
	}
	if math.Abs(sin) < 1e-12 {
		sin = 0
	}

	t := g.Transform()
	out := make([]float64, g.Width*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			wx := t.A*fx + t.B*fy + t.TX
			wy := t.C*fx + t.D*fy + t.TY
			out[y*g.Width+x] = wx*cos + wy*sin
		}
	}
	return out
}

func binIndex(u, lo, width float64, bins int) int {
	if width <= 0 {
		return 0
	}
	k := int(math.Floor((u - lo) / width))
	if k < 0 {
		return 0
	}
	if k >= bins {
		return bins - 1
	}
	return k
}

func summarise(xs []float64, s Statistic) float64 {
	if s == Median {
		sorted := make([]float64, len(xs))
		copy(sorted, xs)
		sort.Float64s(sorted)
		return stat.Quantile(0.5, stat.Empirical, sorted, nil)
	}
	return stat.Mean(xs, nil)
}
