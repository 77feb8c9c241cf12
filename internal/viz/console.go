// Package viz renders grid snapshots: a plain console renderer and a
// bubbletea live view.
package viz

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/san-kum/rasterlife/internal/grid"
	"github.com/san-kum/rasterlife/internal/life"
)

// Style selects the glyphs and coloring used to draw a board.
type Style struct {
	AliveGlyph string
	DeadGlyph  string
	Color      bool
}

// DefaultStyle draws live cells as filled squares with ANSI color.
func DefaultStyle() Style {
	return Style{AliveGlyph: "■", DeadGlyph: "·", Color: true}
}

// PlainStyle draws without color, for logs and tests.
func PlainStyle() Style {
	return Style{AliveGlyph: "#", DeadGlyph: "."}
}

// Render draws the board, one grid row per line.
func (s Style) Render(g *grid.Grid) string {
	var b strings.Builder
	cells := g.Cells()
	cols := g.Cols()
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < cols; col++ {
			if cells[row*cols+col] == life.Alive {
				if s.Color {
					b.WriteString(aurora.Green(s.AliveGlyph).String())
				} else {
					b.WriteString(s.AliveGlyph)
				}
			} else {
				if s.Color {
					b.WriteString(aurora.Gray(8, s.DeadGlyph).String())
				} else {
					b.WriteString(s.DeadGlyph)
				}
			}
			if col < cols-1 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderWithStats draws the board followed by a one-line summary.
func (s Style) RenderWithStats(g *grid.Grid, generation int) string {
	geo := g.Geo()
	footer := fmt.Sprintf("gen %d  pop %d  %dx%d  EPSG:%d",
		generation, g.Count(life.Alive), g.Rows(), g.Cols(), geo.EPSG)
	return s.Render(g) + footer + "\n"
}
