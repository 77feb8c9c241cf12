// Package raster is the file collaborator for grid data: a Codec reads and
// writes single-band numeric rasters with a geotransform, and Load/Save
// bridge datasets to grid values.
package raster

import (
	"errors"
	"fmt"

	"github.com/san-kum/rasterlife/internal/grid"
)

// ErrIO indicates a raster read or write failure.
var ErrIO = errors.New("raster: read/write failed")

// Dataset is the interchange form between codecs and grids: dimensions, a
// geotransform with CRS, and one or more row-major value bands.
type Dataset struct {
	Rows, Cols int
	Geo        grid.Geo
	Bands      [][]float64
}

// Codec reads and writes raster datasets at local file paths.
type Codec interface {
	Read(path string) (*Dataset, error)
	Write(path string, d *Dataset) error
}

// Load reads a raster and wraps the selected band (1-based) as a grid.
func Load(c Codec, path string, band int) (*grid.Grid, error) {
	if band < 1 {
		return nil, fmt.Errorf("%w: band %d (bands are 1-based)", grid.ErrBadParam, band)
	}
	d, err := c.Read(path)
	if err != nil {
		return nil, err
	}
	if band > len(d.Bands) {
		return nil, fmt.Errorf("%w: %s: band %d of %d", ErrIO, path, band, len(d.Bands))
	}
	return grid.FromCells(d.Rows, d.Cols, d.Bands[band-1], d.Geo, band)
}

// Save writes a grid as a single-band raster, carrying its geotransform
// and CRS through to the codec.
func Save(c Codec, path string, g *grid.Grid) error {
	return c.Write(path, &Dataset{
		Rows:  g.Rows(),
		Cols:  g.Cols(),
		Geo:   g.Geo(),
		Bands: [][]float64{g.Cells()},
	})
}
