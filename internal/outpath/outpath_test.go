package outpath

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/a/b/dem.tif", "/a/b/dem_debias.tif"},
		{"/a/b/name.with.dots.tif", "/a/b/name.with.dots_debias.tif"},
		{"/a/b/dem", "/a/b/dem_debias"},
		{"/a/b/dem.", "/a/b/dem._debias"},
		{"/a/b/.dem", "/a/b/_debias.dem"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.in))
			assert.NotEqual(t, tt.in, Resolve(tt.in))
		})
	}
}

func TestResolveKeepsInputDirectory(t *testing.T) {
	out := Resolve(filepath.Join("data", "dh.tif"))
	assert.True(t, filepath.IsAbs(out))
	want, _ := filepath.Abs(filepath.Join("data", "dh_debias.tif"))
	assert.Equal(t, want, out)
}

func TestResolveTwiceDoublesSuffix(t *testing.T) {
	once := Resolve("/a/b/dem.tif")
	assert.Equal(t, "/a/b/dem_debias_debias.tif", Resolve(once))
}

func TestMaskPreview(t *testing.T) {
	assert.Equal(t, "/a/b/dem_debias_mask.tif", MaskPreview("/a/b/dem.tif"))
	assert.Equal(t, "/a/b/dem_debias_mask.tif", MaskPreview("/a/b/dem"))
	assert.Equal(t, "/a/b/x.y_debias_mask.tif", MaskPreview("/a/b/x.y.vrt"))
}
