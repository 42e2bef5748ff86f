package geometry

import "sort"

// Ring is a closed sequence of vertices. The closing vertex may or may not
// repeat the first one.
type Ring []Point2D

// Polygon is a set of rings combined with the even-odd rule, so an inner ring
// cuts a hole out of the outer one.
type Polygon []Ring

// Transform returns a copy of the polygon with every vertex mapped through t.
func (pg Polygon) Transform(t AffineTransform) Polygon {
	out := make(Polygon, len(pg))
	for i, ring := range pg {
		r := make(Ring, len(ring))
		for j, p := range ring {
			r[j] = t.Apply(p)
		}
		out[i] = r
	}
	return out
}

// Bounds returns the bounding box of all rings.
func (pg Polygon) Bounds() Rect {
	var pts []Point2D
	for _, ring := range pg {
		pts = append(pts, ring...)
	}
	return BoundingBox(pts)
}

// Valid reports whether at least one ring has three or more vertices.
func (pg Polygon) Valid() bool {
	for _, ring := range pg {
		if len(ring) >= 3 {
			return true
		}
	}
	return false
}

// PointInPolygon tests if a point is inside a polygon using ray casting.
func PointInPolygon(p Point2D, polygon []Point2D) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]

		// Check if ray from p going right intersects edge pi-pj
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}

	return inside
}

// Contains tests p against every ring with the even-odd rule.
func (pg Polygon) Contains(p Point2D) bool {
	inside := false
	for _, ring := range pg {
		if PointInPolygon(p, ring) {
			inside = !inside
		}
	}
	return inside
}

// Crossings returns the sorted X coordinates where the horizontal line at y
// crosses the polygon's edges. Edges are treated half-open in Y exactly like
// PointInPolygon, so a point (x, y) is inside iff an odd number of crossings
// lie strictly to its right. Consecutive pairs therefore delimit the
// half-open interior spans [xs[2k], xs[2k+1]).
func (pg Polygon) Crossings(y float64) []float64 {
	var xs []float64
	for _, ring := range pg {
		n := len(ring)
		if n < 3 {
			continue
		}
		for i := 0; i < n; i++ {
			pi, pj := ring[i], ring[(i+1)%n]
			if (pi.Y > y) != (pj.Y > y) {
				xs = append(xs, (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X)
			}
		}
	}
	sort.Float64s(xs)
	return xs
}
