// Package outpath derives the corrected grid's file name from the input grid.
package outpath

import (
	"path/filepath"
	"strings"
)

// Suffix is inserted before the final extension of the input file name.
const Suffix = "_debias"

// Resolve returns <abs dir of input>/<stem>_debias.<ext>.
//
// Only the final extension is split off, so "name.with.dots.tif" becomes
// "name.with.dots_debias.tif". A name without an extension (no dot, or a
// trailing dot) gets the suffix appended. Resolving an already resolved path
// adds a second suffix.
func Resolve(inputPath string) string {
	dir := filepath.Dir(inputPath)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return filepath.Join(dir, Name(filepath.Base(inputPath)))
}

// Name applies the suffix rule to a bare file name.
func Name(base string) string {
	ext := filepath.Ext(base)
	if len(ext) <= 1 {
		return base + Suffix
	}
	return strings.TrimSuffix(base, ext) + Suffix + ext
}

// MaskPreview returns the path of the optional stable-terrain quicklook,
// <abs dir>/<stem>_debias_mask.tif.
func MaskPreview(inputPath string) string {
	out := Resolve(inputPath)
	return strings.TrimSuffix(out, filepath.Ext(filepath.Base(out))) + "_mask.tif"
}
