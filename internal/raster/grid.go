// Package raster holds the in-memory elevation grid and mask types shared by
// the mask builder, the correction engine and the file adapters.
package raster

import (
	"errors"
	"fmt"
	"math"

	"dh-debias/pkg/geometry"
)

// ErrShapeMismatch is returned when two grids (or a grid and a mask) do not
// cover the same number of rows and columns.
var ErrShapeMismatch = errors.New("raster: shape mismatch")

// Grid is a single-band raster. Data is row-major with row 0 at the top
// (north) edge, as GDAL delivers it.
type Grid struct {
	Width  int
	Height int
	Data   []float64

	// GeoTransform maps pixel corners to world coordinates (GDAL order).
	GeoTransform [6]float64
	// Projection is the coordinate reference system as WKT, may be empty.
	Projection string

	NoData    float64
	HasNoData bool
}

// NewGrid allocates a zero-filled grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:        width,
		Height:       height,
		Data:         make([]float64, width*height),
		GeoTransform: [6]float64{0, 1, 0, 0, 0, -1},
	}
}

// Validate checks that the sample buffer matches the declared shape.
func (g *Grid) Validate() error {
	if g == nil {
		return errors.New("raster: nil grid")
	}
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("raster: invalid size %dx%d", g.Width, g.Height)
	}
	if len(g.Data) != g.Width*g.Height {
		return fmt.Errorf("raster: %d samples for a %dx%d grid", len(g.Data), g.Width, g.Height)
	}
	return nil
}

// Shape returns (rows, cols).
func (g *Grid) Shape() (int, int) {
	return g.Height, g.Width
}

// At returns the sample at column x, row y.
func (g *Grid) At(x, y int) float64 {
	return g.Data[y*g.Width+x]
}

// Set stores a sample at column x, row y.
func (g *Grid) Set(x, y int, v float64) {
	g.Data[y*g.Width+x] = v
}

// IsValid reports whether v is a usable sample: finite and not nodata.
func (g *Grid) IsValid(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return !g.HasNoData || v != g.NoData
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := *g
	c.Data = make([]float64, len(g.Data))
	copy(c.Data, g.Data)
	return &c
}

// Transform returns the pixel -> world transform.
func (g *Grid) Transform() geometry.AffineTransform {
	return geometry.FromGeoTransform(g.GeoTransform)
}

// CellCenter returns the world coordinates of the centre of cell (x, y).
func (g *Grid) CellCenter(x, y int) geometry.Point2D {
	return g.Transform().Apply(geometry.Point2D{X: float64(x) + 0.5, Y: float64(y) + 0.5})
}

// Bounds returns the world-space bounding box of the grid footprint.
func (g *Grid) Bounds() geometry.Rect {
	t := g.Transform()
	w, h := float64(g.Width), float64(g.Height)
	return geometry.BoundingBox([]geometry.Point2D{
		t.Apply(geometry.Point2D{X: 0, Y: 0}),
		t.Apply(geometry.Point2D{X: w, Y: 0}),
		t.Apply(geometry.Point2D{X: 0, Y: h}),
		t.Apply(geometry.Point2D{X: w, Y: h}),
	})
}

// SameShape reports whether both grids have identical dimensions.
func (g *Grid) SameShape(other *Grid) bool {
	return g.Width == other.Width && g.Height == other.Height
}

// Aligned reports whether both grids share shape and georeference.
func (g *Grid) Aligned(other *Grid) bool {
	return g.SameShape(other) && g.GeoTransform == other.GeoTransform
}
