package life

import (
	"fmt"
	"sort"

	"github.com/san-kum/rasterlife/internal/grid"
)

// Pattern is a named seed shape expressed as (row, col) offsets from its
// top-left corner.
type Pattern struct {
	Name   string
	Descr  string
	Coords [][2]int
}

var patterns = map[string]Pattern{
	"block": {
		Name:   "block",
		Descr:  "2x2 still life",
		Coords: [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	},
	"blinker": {
		Name:   "blinker",
		Descr:  "period-2 oscillator",
		Coords: [][2]int{{0, 0}, {0, 1}, {0, 2}},
	},
	"toad": {
		Name:   "toad",
		Descr:  "period-2 oscillator",
		Coords: [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 0}, {1, 1}, {1, 2}},
	},
	"glider": {
		Name:   "glider",
		Descr:  "diagonal spaceship",
		Coords: [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
	},
}

// Patterns lists the known seed pattern names.
func Patterns() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupPattern returns a named pattern.
func LookupPattern(name string) (Pattern, bool) {
	p, ok := patterns[name]
	return p, ok
}

// Stamp marks a pattern's cells alive with its top-left corner at
// (top, left). The whole pattern must fit on the board; a partial fit
// fails without touching any cell.
func Stamp(g *grid.Grid, name string, top, left int) error {
	p, ok := patterns[name]
	if !ok {
		return fmt.Errorf("%w: unknown pattern %q", grid.ErrBadParam, name)
	}
	for _, c := range p.Coords {
		row, col := top+c[0], left+c[1]
		if row < 0 || row >= g.Rows() || col < 0 || col >= g.Cols() {
			return &grid.OutOfBoundsError{Row: row, Col: col}
		}
	}
	for _, c := range p.Coords {
		g.Set(top+c[0], left+c[1], Alive)
	}
	return nil
}

// SeedBoard builds a dead board and stamps the pattern at its center.
func SeedBoard(rows, cols int, geo grid.Geo, pattern string) (*grid.Grid, error) {
	p, ok := patterns[pattern]
	if !ok {
		return nil, fmt.Errorf("%w: unknown pattern %q", grid.ErrBadParam, pattern)
	}
	g, err := grid.NewFilled(rows, cols, geo, Dead)
	if err != nil {
		return nil, err
	}

	maxRow, maxCol := 0, 0
	for _, c := range p.Coords {
		if c[0] > maxRow {
			maxRow = c[0]
		}
		if c[1] > maxCol {
			maxCol = c[1]
		}
	}
	top := (rows - maxRow - 1) / 2
	left := (cols - maxCol - 1) / 2
	if err := Stamp(g, pattern, top, left); err != nil {
		return nil, err
	}
	return g, nil
}
