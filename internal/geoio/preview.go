package geoio

import (
	"fmt"
	"image"
	"os"

	"dh-debias/internal/raster"

	"golang.org/x/image/tiff"
)

// MaskPreviews writes the inlier mask as an 8-bit TIFF: 255 for stable
// cells, 0 for unstable ones.
type MaskPreviews struct{}

// WriteMask encodes m to path.
func (MaskPreviews) WriteMask(path string, m *raster.Mask) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := tiff.Encode(f, MaskImage(m), &tiff.Options{Compression: tiff.Deflate}); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// MaskImage renders m as a grayscale image.
func MaskImage(m *raster.Mask) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.At(x, y) {
				img.Pix[y*img.Stride+x] = 255
			}
		}
	}
	return img
}
