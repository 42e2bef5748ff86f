package stable

import (
	"fmt"

	"dh-debias/internal/raster"
)

// ZeroOutside copies grid and forces every cell where mask is false to
// exactly 0. Zero is written even when the grid has a nodata value.
func ZeroOutside(grid *raster.Grid, mask *raster.Mask) (*raster.Grid, error) {
	if !mask.Matches(grid) {
		return nil, fmt.Errorf("stable: mask %dx%d vs grid %dx%d: %w",
			mask.Width, mask.Height, grid.Width, grid.Height, raster.ErrShapeMismatch)
	}
	ref := grid.Clone()
	for i, keep := range mask.Data {
		if !keep {
			ref.Data[i] = 0
		}
	}
	return ref, nil
}
