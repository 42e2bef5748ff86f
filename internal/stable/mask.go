// Package stable builds the stable-terrain inlier mask and the zeroed
// reference grid used to calibrate the directional correction.
package stable

import (
	"errors"
	"fmt"
	"math"

	"dh-debias/internal/raster"
	"dh-debias/pkg/geometry"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// Polygons is the unstable-terrain outline set, in the grid's coordinate
// reference system.
type Polygons []geom.Polygon

// RasterizeAndInvert burns polys into the cell grid of template and returns
// the inverted result: cells whose centre falls inside any polygon are false
// (unstable), every other cell is true (stable).
func RasterizeAndInvert(polys Polygons, template *raster.Grid) (*raster.Mask, error) {
	covered, err := Rasterize(polys, template)
	if err != nil {
		return nil, err
	}
	return covered.Not(), nil
}

// Rasterize marks every cell of template whose centre lies inside one of the
// polygons. Rings inside a polygon are combined with the even-odd rule.
func Rasterize(polys Polygons, template *raster.Grid) (*raster.Mask, error) {
	if err := template.Validate(); err != nil {
		return nil, err
	}
	toPixel, ok := template.Transform().Inverse()
	if !ok {
		return nil, errors.New("stable: grid geotransform is not invertible")
	}

	mask := raster.NewMask(template.Width, template.Height, false)
	for _, pg := range candidates(polys, template) {
		px := toPixelSpace(pg, toPixel)
		if !px.Valid() {
			return nil, fmt.Errorf("stable: polygon has no ring with three vertices")
		}
		burn(mask, px)
	}
	return mask, nil
}

// candidates drops polygons that cannot touch the grid footprint.
func candidates(polys Polygons, template *raster.Grid) []geom.Polygon {
	if len(polys) == 0 {
		return nil
	}
	fp := template.Bounds()
	footprint := &geom.Bounds{
		Min: geom.Point{X: fp.X, Y: fp.Y},
		Max: geom.Point{X: fp.X + fp.Width, Y: fp.Y + fp.Height},
	}

	tree := rtree.NewTree(25, 50)
	inserted := 0
	var out []geom.Polygon
	for _, pg := range polys {
		if len(pg) == 0 {
			continue
		}
		if !hasRing(pg) {
			// Keep degenerate outlines so the caller reports them.
			out = append(out, pg)
			continue
		}
		if footprint.Overlaps(pg.Bounds()) {
			tree.Insert(pg)
			inserted++
		}
	}
	if inserted == 0 {
		return out
	}
	for _, g := range tree.SearchIntersect(footprint) {
		if pg, ok := g.(geom.Polygon); ok {
			out = append(out, pg)
		}
	}
	return out
}

func hasRing(pg geom.Polygon) bool {
	for _, path := range pg {
		if len(path) >= 3 {
			return true
		}
	}
	return false
}

func toPixelSpace(pg geom.Polygon, toPixel geometry.AffineTransform) geometry.Polygon {
	out := make(geometry.Polygon, 0, len(pg))
	for _, path := range pg {
		ring := make(geometry.Ring, 0, len(path))
		for _, p := range path {
			ring = append(ring, toPixel.Apply(geometry.Point2D{X: p.X, Y: p.Y}))
		}
		out = append(out, ring)
	}
	return out
}

// burn sets every cell whose centre (x+0.5, y+0.5) lies in a half-open
// interior span of px.
func burn(mask *raster.Mask, px geometry.Polygon) {
	b := px.Bounds()
	firstRow := clamp(int(math.Ceil(b.Y-0.5)), 0, mask.Height)
	lastRow := clamp(int(math.Ceil(b.Y+b.Height-0.5)), 0, mask.Height)

	for y := firstRow; y < lastRow; y++ {
		xs := px.Crossings(float64(y) + 0.5)
		for k := 0; k+1 < len(xs); k += 2 {
			from := clamp(int(math.Ceil(xs[k]-0.5)), 0, mask.Width)
			to := clamp(int(math.Ceil(xs[k+1]-0.5)), 0, mask.Width)
			for x := from; x < to; x++ {
				mask.Set(x, y, true)
			}
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
