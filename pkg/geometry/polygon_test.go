package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, x1, y1 float64) Ring {
	return Ring{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0}}
}

func TestPolygonContainsHonoursHoles(t *testing.T) {
	pg := Polygon{square(0, 0, 10, 10), square(4, 4, 6, 6)}

	assert.True(t, pg.Contains(Point2D{X: 1, Y: 1}))
	assert.False(t, pg.Contains(Point2D{X: 5, Y: 5}), "hole must be excluded")
	assert.False(t, pg.Contains(Point2D{X: 11, Y: 5}))
}

func TestCrossingsDelimitInteriorSpans(t *testing.T) {
	pg := Polygon{square(0, 0, 10, 10), square(4, 4, 6, 6)}

	xs := pg.Crossings(5)
	require.Equal(t, []float64{0, 4, 6, 10}, xs)

	// Every point inside a span must agree with Contains.
	for k := 0; k+1 < len(xs); k += 2 {
		mid := (xs[k] + xs[k+1]) / 2
		assert.True(t, pg.Contains(Point2D{X: mid, Y: 5}))
	}
	assert.False(t, pg.Contains(Point2D{X: 5, Y: 5}))
}

func TestCrossingsOutsideVerticalRange(t *testing.T) {
	pg := Polygon{square(0, 0, 10, 10)}
	assert.Empty(t, pg.Crossings(-1))
	assert.Empty(t, pg.Crossings(10), "top edge is half-open")
}

func TestGeoTransformRoundTrip(t *testing.T) {
	gt := [6]float64{500000, 2, 0, 4100000, 0, -2}
	tr := FromGeoTransform(gt)
	assert.Equal(t, gt, tr.GeoTransform())

	inv, ok := tr.Inverse()
	require.True(t, ok)

	world := tr.Apply(Point2D{X: 10.5, Y: 3.5})
	assert.Equal(t, Point2D{X: 500021, Y: 4099993}, world)
	assert.InDelta(t, 10.5, inv.Apply(world).X, 1e-9)
	assert.InDelta(t, 3.5, inv.Apply(world).Y, 1e-9)
}

func TestInverseOfSingularTransform(t *testing.T) {
	_, ok := FromGeoTransform([6]float64{0, 0, 0, 0, 0, 0}).Inverse()
	assert.False(t, ok)
}

func TestPolygonValid(t *testing.T) {
	assert.False(t, Polygon{Ring{{X: 0, Y: 0}, {X: 1, Y: 1}}}.Valid())
	assert.True(t, Polygon{square(0, 0, 1, 1)}.Valid())
}
