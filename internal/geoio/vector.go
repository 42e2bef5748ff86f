package geoio

import (
	"fmt"
	"log"

	"dh-debias/internal/stable"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
)

// Shapefiles reads unstable-terrain outlines from ESRI shapefiles.
type Shapefiles struct{}

// LoadPolygons returns every polygon in the shapefile at path. Multi-polygons
// are split into their parts; records of other geometry types are an error.
//
// When targetWKT is set and both it and the shapefile's .prj can be parsed,
// the polygons are reprojected into targetWKT. Otherwise they are used as
// stored: agreement between the two reference systems is not checked.
func (Shapefiles) LoadPolygons(path, targetWKT string) (stable.Polygons, error) {
	dec, err := shp.NewDecoder(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer dec.Close()

	trans := transformer(dec, targetWKT, path)

	var polys stable.Polygons
	for row := 0; ; row++ {
		g, _, more := dec.DecodeRowFields()
		if !more {
			break
		}
		if g == nil {
			continue
		}
		if trans != nil {
			if g, err = g.Transform(trans); err != nil {
				return nil, fmt.Errorf("%s: record %d: reproject: %w", path, row, err)
			}
		}
		switch t := g.(type) {
		case geom.Polygon:
			polys = append(polys, t)
		case geom.MultiPolygon:
			polys = append(polys, t...)
		default:
			return nil, fmt.Errorf("%s: record %d: %T is not a polygon", path, row, g)
		}
	}
	if err := dec.Error(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	log.Printf("geoio: loaded %d polygons from %s", len(polys), path)
	return polys, nil
}

func transformer(dec *shp.Decoder, targetWKT, path string) proj.Transformer {
	if targetWKT == "" {
		return nil
	}
	src, err := dec.SR()
	if err != nil {
		log.Printf("geoio: %s: no usable .prj (%v), using coordinates as stored", path, err)
		return nil
	}
	dst, err := proj.Parse(targetWKT)
	if err != nil {
		log.Printf("geoio: grid projection not understood (%v), using %s as stored", err, path)
		return nil
	}
	t, err := src.NewTransform(dst)
	if err != nil {
		log.Printf("geoio: %s: %v, using coordinates as stored", path, err)
		return nil
	}
	return t
}
