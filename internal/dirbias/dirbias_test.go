package dirbias

import (
	"math"
	"testing"

	"dh-debias/internal/raster"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// column builds a width x height grid whose top edge sits at y = height and
// whose cells are 1x1 map units; fill gets (x, y) in cell indices.
func column(width, height int, fill func(x, y int) float64) *raster.Grid {
	g := raster.NewGrid(width, height)
	g.GeoTransform = [6]float64{0, 1, 0, float64(height), 0, -1}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.Set(x, y, fill(x, y))
		}
	}
	return g
}

func zeros(g *raster.Grid) *raster.Grid {
	z := g.Clone()
	for i := range z.Data {
		z.Data[i] = 0
	}
	return z
}

func engine(t *testing.T, p Params) *Engine {
	t.Helper()
	e, err := New(p)
	require.NoError(t, err)
	return e
}

func TestLinearInterpolationBetweenBinCentres(t *testing.T) {
	// Rows 0,1 carry +4, rows 2,3 carry +2. With two bins the centres sit at
	// y = 2.75 and y = 1.25; rows 1 and 2 fall between them.
	src := column(1, 4, func(_, y int) float64 {
		if y < 2 {
			return 4
		}
		return 2
	})
	p := NorthSouth()
	p.Bins = 2

	out, err := engine(t, p).FitAndApply(zeros(src), src, raster.NewMask(1, 4, true))
	require.NoError(t, err)

	assert.InDelta(t, 0, out.At(0, 0), 1e-12)
	assert.InDelta(t, 4-(2+2*5.0/6), out.At(0, 1), 1e-12)
	assert.InDelta(t, 2-(2+2*1.0/6), out.At(0, 2), 1e-12)
	assert.InDelta(t, 0, out.At(0, 3), 1e-12)
}

func TestNearestRemovesPerRowOffsetExactly(t *testing.T) {
	src := column(3, 5, func(_, y int) float64 { return 1.5 * float64(y) })
	p := NorthSouth()
	p.Bins = 5
	p.Apply = Nearest

	out, err := engine(t, p).FitAndApply(zeros(src), src, raster.NewMask(3, 5, true))
	require.NoError(t, err)
	for i, v := range out.Data {
		assert.InDelta(t, 0, v, 1e-12, "cell %d", i)
	}
}

func TestCorrectionAppliesToExcludedCells(t *testing.T) {
	src := column(4, 6, func(x, _ int) float64 {
		if x == 3 {
			return 10 // unstable column: its own change plus the bias
		}
		return 1
	})
	mask := raster.NewMask(4, 6, true)
	for y := 0; y < 6; y++ {
		mask.Set(3, y, false)
	}
	p := NorthSouth()
	p.Bins = 3

	out, err := engine(t, p).FitAndApply(zeros(src), src, mask)
	require.NoError(t, err)
	for y := 0; y < 6; y++ {
		assert.InDelta(t, 0, out.At(0, y), 1e-12)
		assert.InDelta(t, 9, out.At(3, y), 1e-12)
	}
}

func TestUndulationRemovedWithThousandBins(t *testing.T) {
	undulation := func(y int) float64 { return 2 * math.Sin(2*math.Pi*float64(y)/300) }
	src := column(20, 1200, func(_, y int) float64 { return undulation(y) })

	out, err := engine(t, NorthSouth()).FitAndApply(zeros(src), src, raster.NewMask(20, 1200, true))
	require.NoError(t, err)
	for _, v := range out.Data {
		require.InDelta(t, 0, v, 0.1)
	}
}

func TestFitAndApplyIsDeterministic(t *testing.T) {
	src := column(37, 211, func(x, y int) float64 {
		return math.Sin(float64(x)*0.37) + math.Cos(float64(y)*0.11) + float64(x*y%7)/3
	})
	ref := column(37, 211, func(x, y int) float64 { return math.Sin(float64(x+y) * 0.05) })
	mask := raster.NewMask(37, 211, true)
	for i := range mask.Data {
		mask.Data[i] = i%5 != 0
	}
	p := NorthSouth()
	p.Bins = 50

	first, err := engine(t, p).FitAndApply(ref, src, mask)
	require.NoError(t, err)
	second, err := engine(t, p).FitAndApply(ref, src, mask)
	require.NoError(t, err)

	if diff := cmp.Diff(first.Data, second.Data); diff != "" {
		t.Fatalf("repeated runs differ (-first +second):\n%s", diff)
	}
}

func TestNoDataCellsStayNoData(t *testing.T) {
	src := column(2, 4, func(x, y int) float64 { return 3 })
	src.HasNoData = true
	src.NoData = -9999
	src.Set(1, 2, -9999)
	src.Set(0, 0, math.NaN())
	ref := zeros(src)

	p := NorthSouth()
	p.Bins = 2
	out, err := engine(t, p).FitAndApply(ref, src, raster.NewMask(2, 4, true))
	require.NoError(t, err)

	assert.Equal(t, -9999.0, out.At(1, 2))
	assert.True(t, math.IsNaN(out.At(0, 0)))
	assert.InDelta(t, 0, out.At(1, 1), 1e-12)
}

func TestInsufficientSamples(t *testing.T) {
	src := column(3, 3, func(_, _ int) float64 { return 1 })
	_, err := engine(t, NorthSouth()).FitAndApply(zeros(src), src, raster.NewMask(3, 3, false))
	assert.ErrorIs(t, err, ErrInsufficientSamples)
}

func TestMinBinSamplesDropsSparseBins(t *testing.T) {
	src := column(1, 4, func(_, y int) float64 { return float64(y) })
	p := NorthSouth()
	p.Bins = 4
	p.MinBinSamples = 2

	_, err := engine(t, p).Fit(zeros(src), src, raster.NewMask(1, 4, true))
	assert.ErrorIs(t, err, ErrInsufficientSamples)
}

func TestMisalignedInputs(t *testing.T) {
	src := column(3, 3, func(_, _ int) float64 { return 1 })
	e := engine(t, NorthSouth())

	_, err := e.FitAndApply(column(3, 4, func(_, _ int) float64 { return 0 }), src, raster.NewMask(3, 3, true))
	assert.ErrorIs(t, err, ErrMisaligned)

	shifted := zeros(src)
	shifted.GeoTransform[0] = 10
	_, err = e.FitAndApply(shifted, src, raster.NewMask(3, 3, true))
	assert.ErrorIs(t, err, ErrMisaligned)

	_, err = e.FitAndApply(zeros(src), src, raster.NewMask(2, 3, true))
	assert.ErrorIs(t, err, ErrMisaligned)
}

func TestMedianStatistic(t *testing.T) {
	// One bin, three inlier samples: 1, 2 and an outlier of 100.
	src := column(3, 1, func(x, _ int) float64 { return []float64{1, 2, 100}[x] })
	p := NorthSouth()
	p.Bins = 1
	p.Apply = Nearest
	p.Statistic = Median

	m, err := engine(t, p).Fit(zeros(src), src, raster.NewMask(3, 1, true))
	require.NoError(t, err)
	require.Len(t, m.Offsets, 1)
	assert.Equal(t, 2.0, m.Offsets[0])
}

func TestParamsValidate(t *testing.T) {
	assert.NoError(t, NorthSouth().Validate())

	p := NorthSouth()
	p.Bins = 0
	assert.Error(t, p.Validate())

	p = NorthSouth()
	p.MinBinSamples = 0
	assert.Error(t, p.Validate())

	p = NorthSouth()
	p.Apply = ApplyMethod(7)
	_, err := New(p)
	assert.Error(t, err)
}

func TestParseStatistic(t *testing.T) {
	s, err := ParseStatistic("Median")
	require.NoError(t, err)
	assert.Equal(t, Median, s)

	s, err = ParseStatistic("")
	require.NoError(t, err)
	assert.Equal(t, Mean, s)

	_, err = ParseStatistic("mode")
	assert.Error(t, err)
}
