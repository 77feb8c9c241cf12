// Package grid implements a coordinate-addressed 2D cell array with an
// affine geotransform, the core data structure under the life engine.
package grid

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// DefaultEPSG is the coordinate reference system used when none is supplied.
const DefaultEPSG = 4326

// Geo is the affine geotransform tying grid indices to real-world
// coordinates: (OriginX, OriginY) is the top-left corner of cell (0, 0),
// PixelWidth the cell size along x, PixelHeight the cell size along y.
// PixelHeight is conventionally negative since row indices increase
// southward; only its magnitude enters the index math.
type Geo struct {
	OriginX     float64
	OriginY     float64
	PixelWidth  float64
	PixelHeight float64
	EPSG        int
}

// DefaultGeo returns a unit geotransform anchored at the origin.
func DefaultGeo() Geo {
	return Geo{PixelWidth: 1, PixelHeight: -1, EPSG: DefaultEPSG}
}

func (g Geo) validate() error {
	if g.PixelWidth <= 0 {
		return fmt.Errorf("%w: pixel width must be positive, got %g", ErrBadParam, g.PixelWidth)
	}
	if g.PixelHeight == 0 {
		return fmt.Errorf("%w: pixel height must be nonzero", ErrBadParam)
	}
	return nil
}

// Grid is a fixed-size 2D array of numeric cells in row-major order.
// Dimensions never change after construction; Set mutates in place.
type Grid struct {
	rows, cols int
	cells      []float64
	geo        Geo
	band       int
}

func newGrid(rows, cols int, geo Geo) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d must be positive", ErrBadParam, rows, cols)
	}
	if geo.EPSG == 0 {
		geo.EPSG = DefaultEPSG
	}
	if err := geo.validate(); err != nil {
		return nil, err
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]float64, rows*cols),
		geo:   geo,
		band:  1,
	}, nil
}

// NewFilled builds a grid with every cell set to value.
func NewFilled(rows, cols int, geo Geo, value float64) (*Grid, error) {
	g, err := newGrid(rows, cols, geo)
	if err != nil {
		return nil, err
	}
	g.Fill(value)
	return g, nil
}

// NewRandom builds a grid of random {0, 1} cells, deterministic per seed.
func NewRandom(rows, cols int, geo Geo, seed int64) (*Grid, error) {
	return NewRandomRange(rows, cols, geo, 0, 2, seed)
}

// NewRandomRange builds a grid of random integer cells in [lo, hi),
// deterministic per seed.
func NewRandomRange(rows, cols int, geo Geo, lo, hi int, seed int64) (*Grid, error) {
	if hi <= lo {
		return nil, fmt.Errorf("%w: empty range [%d, %d)", ErrBadParam, lo, hi)
	}
	g, err := newGrid(rows, cols, geo)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(uint64(seed), 0))
	for i := range g.cells {
		g.cells[i] = float64(lo + rng.IntN(hi-lo))
	}
	return g, nil
}

// NewLiteral builds a grid from explicit row data. Dimensions are inferred;
// every row must have the same length.
func NewLiteral(rows [][]float64, geo Geo) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: literal grid is empty", ErrBadParam)
	}
	want := len(rows[0])
	for i, r := range rows {
		if len(r) != want {
			return nil, &ShapeError{Row: i, Want: want, Got: len(r)}
		}
	}
	g, err := newGrid(len(rows), want, geo)
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		copy(g.cells[i*want:(i+1)*want], r)
	}
	return g, nil
}

// FromCells builds a grid around an existing row-major cell slice. The slice
// is copied. band records which source band the values came from.
func FromCells(rows, cols int, cells []float64, geo Geo, band int) (*Grid, error) {
	g, err := newGrid(rows, cols, geo)
	if err != nil {
		return nil, err
	}
	if len(cells) != rows*cols {
		return nil, fmt.Errorf("%w: %d cells for a %dx%d grid", ErrBadParam, len(cells), rows, cols)
	}
	copy(g.cells, cells)
	if band > 0 {
		g.band = band
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Geo returns the geotransform.
func (g *Grid) Geo() Geo { return g.geo }

// Band returns the source band index (1-based, 1 when not file-backed).
func (g *Grid) Band() int { return g.band }

// Cells exposes the backing row-major slice for read-only walks.
func (g *Grid) Cells() []float64 { return g.cells }

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Locate converts a geographic point to its (row, col) cell index.
func (g *Grid) Locate(x, y float64) (row, col int, err error) {
	col = int(math.Floor((x - g.geo.OriginX) / g.geo.PixelWidth))
	row = int(math.Floor((g.geo.OriginY - y) / math.Abs(g.geo.PixelHeight)))
	if !g.inBounds(row, col) {
		return 0, 0, &OutOfBoundsError{Row: row, Col: col, X: x, Y: y, Geographic: true}
	}
	return row, col, nil
}

// CellOrigin returns the geographic top-left corner of cell (row, col).
// The cell need not be in bounds; the transform extends past the extent.
func (g *Grid) CellOrigin(row, col int) (x, y float64) {
	x = g.geo.OriginX + float64(col)*g.geo.PixelWidth
	y = g.geo.OriginY - float64(row)*math.Abs(g.geo.PixelHeight)
	return x, y
}

// Bounds returns the geographic extent as (minX, minY, maxX, maxY).
func (g *Grid) Bounds() (minX, minY, maxX, maxY float64) {
	minX = g.geo.OriginX
	maxY = g.geo.OriginY
	maxX = minX + float64(g.cols)*g.geo.PixelWidth
	minY = maxY - float64(g.rows)*math.Abs(g.geo.PixelHeight)
	return minX, minY, maxX, maxY
}

// At returns the value of cell (row, col).
func (g *Grid) At(row, col int) (float64, error) {
	if !g.inBounds(row, col) {
		return 0, &OutOfBoundsError{Row: row, Col: col}
	}
	return g.cells[row*g.cols+col], nil
}

// Set writes value into cell (row, col). A failed Set leaves the grid
// unchanged.
func (g *Grid) Set(row, col int, value float64) error {
	if !g.inBounds(row, col) {
		return &OutOfBoundsError{Row: row, Col: col}
	}
	g.cells[row*g.cols+col] = value
	return nil
}

// AtGeo returns the value of the cell containing geographic point (x, y).
func (g *Grid) AtGeo(x, y float64) (float64, error) {
	row, col, err := g.Locate(x, y)
	if err != nil {
		return 0, err
	}
	return g.cells[row*g.cols+col], nil
}

// SetGeo writes value into the cell containing geographic point (x, y).
func (g *Grid) SetGeo(x, y, value float64) error {
	row, col, err := g.Locate(x, y)
	if err != nil {
		return err
	}
	g.cells[row*g.cols+col] = value
	return nil
}

// Fill sets every cell to value.
func (g *Grid) Fill(value float64) {
	for i := range g.cells {
		g.cells[i] = value
	}
}

// Count returns how many cells hold value.
func (g *Grid) Count(value float64) int {
	n := 0
	for _, c := range g.cells {
		if c == value {
			n++
		}
	}
	return n
}

// Clone returns an independent copy sharing no state with g.
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = make([]float64, len(g.cells))
	copy(c.cells, g.cells)
	return &c
}

// Equal reports whether two grids have identical dimensions, geotransform
// and cell values.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols || g.geo != other.geo {
		return false
	}
	for i, c := range g.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}
