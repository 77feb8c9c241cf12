package life

import "github.com/san-kum/rasterlife/internal/grid"

// PopulationLog records the live-cell count after every step. Attach it as
// an observer to build a population time series for plots and run metadata.
type PopulationLog struct {
	Counts []int
}

func (p *PopulationLog) OnStep(board *grid.Grid, _ int) {
	p.Counts = append(p.Counts, board.Count(Alive))
}
