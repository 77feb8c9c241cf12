package raster

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/rasterlife/internal/grid"
)

// NoDataValue marks absent cells in written files.
const NoDataValue = -99

// AAIGrid reads and writes the Arc/Info ASCII Grid text format: a short
// key/value header (ncols, nrows, corner coordinates, cell size) followed by
// whitespace-separated cell values, one grid row per line. The format holds
// a single band and cannot carry a CRS, so readers get the default EPSG.
type AAIGrid struct{}

func (AAIGrid) Read(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	header := map[string]float64{}
	var values []float64

	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		// Header lines are "key value" pairs with a non-numeric key.
		if len(fields) == 2 && len(values) == 0 {
			if _, err := strconv.ParseFloat(fields[0], 64); err != nil {
				key := strings.ToLower(fields[0])
				v, err := strconv.ParseFloat(fields[1], 64)
				if err != nil {
					return nil, fmt.Errorf("%w: %s: header %q: %v", ErrIO, path, key, err)
				}
				header[key] = v
				continue
			}
		}
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: bad cell value %q", ErrIO, path, field)
			}
			values = append(values, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}

	rows := int(header["nrows"])
	cols := int(header["ncols"])
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %s: missing or invalid nrows/ncols header", ErrIO, path)
	}
	if len(values) != rows*cols {
		return nil, fmt.Errorf("%w: %s: %d values for a %dx%d grid", ErrIO, path, len(values), rows, cols)
	}

	dx, okx := header["dx"]
	dy, oky := header["dy"]
	if !okx || !oky {
		dx = header["cellsize"]
		dy = header["cellsize"]
	}
	if dx <= 0 || dy <= 0 {
		return nil, fmt.Errorf("%w: %s: missing or invalid cellsize header", ErrIO, path)
	}

	// The header anchors the lower-left corner; the grid origin is top-left.
	geo := grid.Geo{
		OriginX:     header["xllcorner"],
		OriginY:     header["yllcorner"] + float64(rows)*dy,
		PixelWidth:  dx,
		PixelHeight: -dy,
		EPSG:        grid.DefaultEPSG,
	}
	return &Dataset{Rows: rows, Cols: cols, Geo: geo, Bands: [][]float64{values}}, nil
}

func (AAIGrid) Write(path string, d *Dataset) error {
	if len(d.Bands) == 0 || len(d.Bands[0]) != d.Rows*d.Cols {
		return fmt.Errorf("%w: %s: band size does not match %dx%d", ErrIO, path, d.Rows, d.Cols)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	dx := d.Geo.PixelWidth
	dy := d.Geo.PixelHeight
	if dy < 0 {
		dy = -dy
	}
	yll := d.Geo.OriginY - float64(d.Rows)*dy

	fmt.Fprintf(w, "ncols        %d\n", d.Cols)
	fmt.Fprintf(w, "nrows        %d\n", d.Rows)
	fmt.Fprintf(w, "xllcorner    %s\n", formatFloat(d.Geo.OriginX))
	fmt.Fprintf(w, "yllcorner    %s\n", formatFloat(yll))
	if dx == dy {
		fmt.Fprintf(w, "cellsize     %s\n", formatFloat(dx))
	} else {
		fmt.Fprintf(w, "dx           %s\n", formatFloat(dx))
		fmt.Fprintf(w, "dy           %s\n", formatFloat(dy))
	}
	fmt.Fprintf(w, "NODATA_value %d\n", NoDataValue)

	cells := d.Bands[0]
	for row := 0; row < d.Rows; row++ {
		for col := 0; col < d.Cols; col++ {
			if col > 0 {
				w.WriteByte(' ')
			}
			w.WriteString(formatFloat(cells[row*d.Cols+col]))
		}
		w.WriteByte('\n')
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
