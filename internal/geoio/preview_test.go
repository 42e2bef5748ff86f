package geoio

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"dh-debias/internal/raster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"
)

func TestWriteMaskRoundTrip(t *testing.T) {
	m := raster.NewMask(5, 3, true)
	m.Set(1, 0, false)
	m.Set(4, 2, false)

	path := filepath.Join(t.TempDir(), "dh_debias_mask.tif")
	require.NoError(t, MaskPreviews{}.WriteMask(path, m))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := tiff.Decode(f)
	require.NoError(t, err)

	gray, ok := img.(*image.Gray)
	require.True(t, ok, "decoded %T", img)
	assert.Equal(t, image.Rect(0, 0, 5, 3), gray.Bounds())
	assert.Equal(t, uint8(0), gray.GrayAt(1, 0).Y)
	assert.Equal(t, uint8(0), gray.GrayAt(4, 2).Y)
	assert.Equal(t, uint8(255), gray.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(255), gray.GrayAt(2, 1).Y)
}

func TestWriteMaskBadDirectory(t *testing.T) {
	err := MaskPreviews{}.WriteMask(filepath.Join(t.TempDir(), "missing", "m.tif"), raster.NewMask(1, 1, true))
	assert.Error(t, err)
}
