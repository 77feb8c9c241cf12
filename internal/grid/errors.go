package grid

import (
	"errors"
	"fmt"
)

// Domain errors for grid construction and access.
var (
	// ErrOutOfBounds indicates a coordinate that resolves outside the grid extent.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")

	// ErrShape indicates a literal grid with inconsistent row lengths.
	ErrShape = errors.New("grid: inconsistent row lengths")

	// ErrBadParam indicates an invalid construction parameter.
	ErrBadParam = errors.New("grid: invalid parameter")
)

// OutOfBoundsError reports the coordinate that failed to resolve. Geographic
// is true when the lookup came in as real-world (x, y) rather than (row, col).
type OutOfBoundsError struct {
	Row, Col   int
	X, Y       float64
	Geographic bool
}

func (e *OutOfBoundsError) Error() string {
	if e.Geographic {
		return fmt.Sprintf("grid: geographic point (%g, %g) maps to cell (%d, %d) outside extent", e.X, e.Y, e.Row, e.Col)
	}
	return fmt.Sprintf("grid: cell (%d, %d) outside extent", e.Row, e.Col)
}

func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// ShapeError reports the first row of a literal grid whose length disagrees
// with the first row.
type ShapeError struct {
	Row  int
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("grid: row %d has %d columns, want %d", e.Row, e.Got, e.Want)
}

func (e *ShapeError) Unwrap() error {
	return ErrShape
}
