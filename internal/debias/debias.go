// Package debias assembles the production pipeline: GDAL rasters,
// shapefile outlines and the north-south binning engine.
package debias

import (
	"fmt"

	"dh-debias/internal/config"
	"dh-debias/internal/dirbias"
	"dh-debias/internal/geoio"
	"dh-debias/internal/job"
)

// NewRunner builds the runner for cfg. cfg must be valid.
func NewRunner(cfg config.Config) (*job.Runner, error) {
	engine, err := dirbias.New(cfg.EngineParams())
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	r := &job.Runner{
		Grids:    &geoio.Rasters{CreationOptions: cfg.Output.CreationOptions},
		Polygons: geoio.Shapefiles{},
		Engine:   engine,
		Prepare:  geoio.RegisterDrivers,
	}
	if cfg.Output.MaskPreview {
		r.MaskPreview = geoio.MaskPreviews{}
	}
	return r, nil
}
