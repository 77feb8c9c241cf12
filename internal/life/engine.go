// Package life implements Conway's Game of Life over grid boards, with
// configurable edge geometry and snapshot history retention.
package life

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/rasterlife/internal/grid"
)

// Cell states. Any value other than Alive counts as dead when stepping.
const (
	Dead  = 0.0
	Alive = 1.0
)

// ErrNegativeCycles indicates a Cycle call with a negative step count.
var ErrNegativeCycles = errors.New("life: cycle count must be non-negative")

// EdgePolicy selects how neighbor counting treats the board edges.
type EdgePolicy int

const (
	// EdgeBounded treats cells outside the board as permanently dead.
	EdgeBounded EdgePolicy = iota
	// EdgeWrap joins opposite edges into a torus.
	EdgeWrap
)

func (p EdgePolicy) String() string {
	if p == EdgeWrap {
		return "wrap"
	}
	return "bounded"
}

// ParseEdgePolicy converts a config string to an EdgePolicy.
func ParseEdgePolicy(s string) (EdgePolicy, error) {
	switch s {
	case "", "bounded":
		return EdgeBounded, nil
	case "wrap", "toroidal":
		return EdgeWrap, nil
	default:
		return EdgeBounded, fmt.Errorf("%w: unknown edge policy %q", grid.ErrBadParam, s)
	}
}

// Observer is notified after every executed step, retained or not. The
// board argument is the engine's live working board and must be treated
// as read-only.
type Observer interface {
	OnStep(board *grid.Grid, generation int)
}

// Options configures an Engine.
type Options struct {
	// Overwrite keeps history at a single snapshot, replaced in place each
	// step. When false, snapshots accumulate per the Cycle jump stride.
	Overwrite bool
	// Edge selects bounded or toroidal neighbor counting.
	Edge EdgePolicy
	// Delay paces steps for a live display. Zero means no pause; results
	// never depend on it.
	Delay time.Duration
}

// DefaultOptions matches the classic setup: overwrite history, bounded
// edges, no pacing.
func DefaultOptions() Options {
	return Options{Overwrite: true, Edge: EdgeBounded}
}

// Engine steps a Game of Life board and records snapshot history.
// Single-owner: callers sharing an Engine across goroutines must
// serialize access themselves.
type Engine struct {
	seed       *grid.Grid
	board      *grid.Grid
	history    []*grid.Grid
	scratch    []float64
	generation int
	opts       Options
	observers  []Observer
}

// New wraps an initial board in an engine. The engine takes ownership of
// the board.
func New(initial *grid.Grid, opts Options) (*Engine, error) {
	if initial == nil {
		return nil, fmt.Errorf("%w: nil initial board", grid.ErrBadParam)
	}
	e := &Engine{
		seed:    initial.Clone(),
		board:   initial,
		scratch: make([]float64, initial.Rows()*initial.Cols()),
		opts:    opts,
	}
	if opts.Overwrite {
		e.history = []*grid.Grid{e.board}
	} else {
		e.history = []*grid.Grid{e.seed}
	}
	return e, nil
}

// NewRandom builds an engine over a random {0, 1} board.
func NewRandom(rows, cols int, geo grid.Geo, seed int64, opts Options) (*Engine, error) {
	board, err := grid.NewRandom(rows, cols, geo, seed)
	if err != nil {
		return nil, err
	}
	return New(board, opts)
}

// AddObserver registers a step observer.
func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Current returns the live working board.
func (e *Engine) Current() *grid.Grid { return e.board }

// History returns the retained snapshots, oldest first. Under overwrite it
// always has length one.
func (e *Engine) History() []*grid.Grid { return e.history }

// Generation returns the number of steps executed since the last reset.
func (e *Engine) Generation() int { return e.generation }

// Population returns the number of live cells on the current board.
func (e *Engine) Population() int { return e.board.Count(Alive) }

// Cycle runs n steps. jump controls snapshot retention when history is
// appended: a snapshot is kept only every jump steps, counted from the
// start of this call; intermediate boards still compute but are not
// retained. jump values below 1 behave as 1, and jump is ignored under
// overwrite. The context is checked between steps; a canceled context
// stops the run after a whole step, never inside one.
func (e *Engine) Cycle(ctx context.Context, n, jump int) error {
	if n < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeCycles, n)
	}
	if jump < 1 {
		jump = 1
	}

	for i := 1; i <= n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		e.step()
		e.generation++

		if !e.opts.Overwrite && i%jump == 0 {
			e.history = append(e.history, e.board.Clone())
		}

		for _, o := range e.observers {
			o.OnStep(e.board, e.generation)
		}

		if e.opts.Delay > 0 && i < n {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(e.opts.Delay):
			}
		}
	}
	return nil
}

// Reset restores the original initial board and discards all later
// snapshots.
func (e *Engine) Reset() {
	e.board = e.seed.Clone()
	e.generation = 0
	if e.opts.Overwrite {
		e.history = []*grid.Grid{e.board}
	} else {
		e.history = []*grid.Grid{e.seed}
	}
}

// step applies one synchronous B3/S23 transition: the next board is
// computed entirely from a snapshot of the current one.
func (e *Engine) step() {
	rows, cols := e.board.Rows(), e.board.Cols()
	cells := e.board.Cells()

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			n := e.liveNeighbors(cells, rows, cols, row, col)
			idx := row*cols + col
			alive := cells[idx] == Alive
			if (alive && (n == 2 || n == 3)) || (!alive && n == 3) {
				e.scratch[idx] = Alive
			} else {
				e.scratch[idx] = Dead
			}
		}
	}
	copy(cells, e.scratch)
}

func (e *Engine) liveNeighbors(cells []float64, rows, cols, row, col int) int {
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if e.opts.Edge == EdgeWrap {
				r = (r + rows) % rows
				c = (c + cols) % cols
			} else if r < 0 || r >= rows || c < 0 || c >= cols {
				continue
			}
			if cells[r*cols+c] == Alive {
				n++
			}
		}
	}
	return n
}
