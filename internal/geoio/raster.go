// Package geoio reads and writes the files the job works on: single-band
// rasters through GDAL, unstable-terrain shapefiles, and the 8-bit mask
// quicklook.
package geoio

import (
	"fmt"
	"log"
	"sync"

	"dh-debias/internal/raster"

	"github.com/airbusgeo/godal"
)

var registerOnce sync.Once

// RegisterDrivers makes every GDAL driver available. It is safe to call more
// than once.
func RegisterDrivers() {
	registerOnce.Do(func() {
		godal.RegisterAll()
		log.Printf("geoio: GDAL drivers registered")
	})
}

// Rasters loads and saves grids with GDAL. Saved grids are float32 GeoTIFFs.
type Rasters struct {
	// CreationOptions are GTiff creation options, e.g. "COMPRESS=DEFLATE".
	CreationOptions []string
}

// LoadGrid reads the first band of the raster at path.
func (r *Rasters) LoadGrid(path string) (*raster.Grid, error) {
	RegisterDrivers()
	ds, err := godal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer ds.Close()

	st := ds.Structure()
	if st.NBands < 1 {
		return nil, fmt.Errorf("%s: raster has no bands", path)
	}
	if st.NBands > 1 {
		log.Printf("geoio: %s has %d bands, using band 1", path, st.NBands)
	}

	g := raster.NewGrid(st.SizeX, st.SizeY)
	band := ds.Bands()[0]
	if err := band.Read(0, 0, g.Data, st.SizeX, st.SizeY); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if nd, ok := band.NoData(); ok {
		g.NoData, g.HasNoData = nd, true
	}
	if gt, err := ds.GeoTransform(); err == nil {
		g.GeoTransform = gt
	} else {
		log.Printf("geoio: %s has no geotransform, using pixel coordinates", path)
	}
	g.Projection = ds.Projection()

	log.Printf("geoio: loaded %s (%dx%d)", path, g.Width, g.Height)
	return g, nil
}

// SaveGrid writes g to path as a GeoTIFF, replacing any existing file. A
// failed write can leave a partial file behind.
func (r *Rasters) SaveGrid(path string, g *raster.Grid) (err error) {
	RegisterDrivers()
	if err := g.Validate(); err != nil {
		return err
	}

	var opts []godal.DatasetCreateOption
	if len(r.CreationOptions) > 0 {
		opts = append(opts, godal.CreationOption(r.CreationOptions...))
	}
	ds, err := godal.Create(godal.GTiff, path, 1, godal.Float32, g.Width, g.Height, opts...)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := ds.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := ds.SetGeoTransform(g.GeoTransform); err != nil {
		return fmt.Errorf("%s: set geotransform: %w", path, err)
	}
	if g.Projection != "" {
		if err := ds.SetProjection(g.Projection); err != nil {
			return fmt.Errorf("%s: set projection: %w", path, err)
		}
	}
	band := ds.Bands()[0]
	if g.HasNoData {
		if err := band.SetNoData(g.NoData); err != nil {
			return fmt.Errorf("%s: set nodata: %w", path, err)
		}
	}
	if err := band.Write(0, 0, g.Data, g.Width, g.Height); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Printf("geoio: wrote %s", path)
	return nil
}
