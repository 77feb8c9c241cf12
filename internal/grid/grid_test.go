package grid

import (
	"errors"
	"testing"
)

func mustFilled(t *testing.T, rows, cols int, geo Geo, v float64) *Grid {
	t.Helper()
	g, err := NewFilled(rows, cols, geo, v)
	if err != nil {
		t.Fatalf("NewFilled failed: %v", err)
	}
	return g
}

func TestSetAtRoundTrip(t *testing.T) {
	g := mustFilled(t, 4, 6, DefaultGeo(), 0)

	for row := 0; row < 4; row++ {
		for col := 0; col < 6; col++ {
			want := float64(row*10 + col)
			if err := g.Set(row, col, want); err != nil {
				t.Fatalf("Set(%d, %d) failed: %v", row, col, err)
			}
			got, err := g.At(row, col)
			if err != nil {
				t.Fatalf("At(%d, %d) failed: %v", row, col, err)
			}
			if got != want {
				t.Errorf("At(%d, %d) = %g, want %g", row, col, got, want)
			}
		}
	}
}

func TestOutOfBounds(t *testing.T) {
	g := mustFilled(t, 3, 3, DefaultGeo(), 7)

	tests := []struct {
		name     string
		row, col int
	}{
		{"negative row", -1, 0},
		{"negative col", 0, -1},
		{"row past end", 3, 0},
		{"col past end", 0, 3},
		{"both past end", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := g.At(tt.row, tt.col); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("At(%d, %d) err = %v, want ErrOutOfBounds", tt.row, tt.col, err)
			}
			if err := g.Set(tt.row, tt.col, 1); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("Set(%d, %d) err = %v, want ErrOutOfBounds", tt.row, tt.col, err)
			}
		})
	}

	// A failed Set must not clamp or touch any cell.
	for _, c := range g.Cells() {
		if c != 7 {
			t.Fatalf("cell mutated by out-of-bounds Set: %g", c)
		}
	}
}

func TestLocate(t *testing.T) {
	geo := Geo{OriginX: 100, OriginY: 200, PixelWidth: 10, PixelHeight: -10, EPSG: 32617}
	g := mustFilled(t, 5, 5, geo, 0)

	tests := []struct {
		name     string
		x, y     float64
		row, col int
		wantErr  bool
	}{
		{"top-left cell", 105, 195, 0, 0, false},
		{"exact origin", 100, 200, 0, 0, false},
		{"bottom-right cell", 149.9, 151, 4, 4, false},
		{"interior", 127, 163, 3, 2, false},
		{"west of extent", 99, 195, 0, 0, true},
		{"north of extent", 105, 200.1, 0, 0, true},
		{"east edge is exclusive", 150, 195, 0, 0, true},
		{"south edge is exclusive", 105, 150, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col, err := g.Locate(tt.x, tt.y)
			if tt.wantErr {
				if !errors.Is(err, ErrOutOfBounds) {
					t.Fatalf("Locate(%g, %g) err = %v, want ErrOutOfBounds", tt.x, tt.y, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Locate(%g, %g) failed: %v", tt.x, tt.y, err)
			}
			if row != tt.row || col != tt.col {
				t.Errorf("Locate(%g, %g) = (%d, %d), want (%d, %d)", tt.x, tt.y, row, col, tt.row, tt.col)
			}
		})
	}
}

func TestGeoAccessRoundTrip(t *testing.T) {
	geo := Geo{OriginX: -50, OriginY: 50, PixelWidth: 25, PixelHeight: -25}
	g := mustFilled(t, 4, 4, geo, 0)

	if err := g.SetGeo(-40, 40, 9); err != nil {
		t.Fatalf("SetGeo failed: %v", err)
	}
	got, err := g.AtGeo(-40, 40)
	if err != nil {
		t.Fatalf("AtGeo failed: %v", err)
	}
	if got != 9 {
		t.Errorf("AtGeo = %g, want 9", got)
	}

	// Same cell through the index family.
	got, err = g.At(0, 0)
	if err != nil {
		t.Fatalf("At failed: %v", err)
	}
	if got != 9 {
		t.Errorf("At(0, 0) = %g, want 9", got)
	}

	if err := g.SetGeo(1000, 1000, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("SetGeo outside extent err = %v, want ErrOutOfBounds", err)
	}

	var oob *OutOfBoundsError
	_, err = g.AtGeo(1000, 1000)
	if !errors.As(err, &oob) {
		t.Fatalf("AtGeo err = %v, want *OutOfBoundsError", err)
	}
	if !oob.Geographic {
		t.Error("OutOfBoundsError from AtGeo should be flagged geographic")
	}
}

func TestNewLiteral(t *testing.T) {
	g, err := NewLiteral([][]float64{
		{0, 1, 0},
		{1, 1, 1},
	}, DefaultGeo())
	if err != nil {
		t.Fatalf("NewLiteral failed: %v", err)
	}
	if g.Rows() != 2 || g.Cols() != 3 {
		t.Errorf("dimensions = %dx%d, want 2x3", g.Rows(), g.Cols())
	}
	if v, _ := g.At(1, 2); v != 1 {
		t.Errorf("At(1, 2) = %g, want 1", v)
	}
}

func TestNewLiteralRagged(t *testing.T) {
	_, err := NewLiteral([][]float64{
		{0, 1, 0},
		{1, 1},
	}, DefaultGeo())
	if !errors.Is(err, ErrShape) {
		t.Fatalf("err = %v, want ErrShape", err)
	}

	var shape *ShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("err = %v, want *ShapeError", err)
	}
	if shape.Row != 1 || shape.Want != 3 || shape.Got != 2 {
		t.Errorf("ShapeError = %+v, want row 1, want 3, got 2", shape)
	}
}

func TestBadParams(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
	}{
		{"zero rows", func() error { _, err := NewFilled(0, 3, DefaultGeo(), 0); return err }},
		{"negative cols", func() error { _, err := NewFilled(3, -1, DefaultGeo(), 0); return err }},
		{"zero pixel width", func() error {
			_, err := NewFilled(3, 3, Geo{PixelWidth: 0, PixelHeight: -1}, 0)
			return err
		}},
		{"negative pixel width", func() error {
			_, err := NewFilled(3, 3, Geo{PixelWidth: -2, PixelHeight: -1}, 0)
			return err
		}},
		{"zero pixel height", func() error {
			_, err := NewFilled(3, 3, Geo{PixelWidth: 1, PixelHeight: 0}, 0)
			return err
		}},
		{"empty literal", func() error { _, err := NewLiteral(nil, DefaultGeo()); return err }},
		{"empty random range", func() error { _, err := NewRandomRange(3, 3, DefaultGeo(), 5, 5, 1); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, ErrBadParam) {
				t.Errorf("err = %v, want ErrBadParam", err)
			}
		})
	}
}

func TestNewRandomDeterministic(t *testing.T) {
	a, err := NewRandom(8, 8, DefaultGeo(), 42)
	if err != nil {
		t.Fatalf("NewRandom failed: %v", err)
	}
	b, _ := NewRandom(8, 8, DefaultGeo(), 42)
	if !a.Equal(b) {
		t.Error("same seed should give identical boards")
	}

	for _, c := range a.Cells() {
		if c != 0 && c != 1 {
			t.Fatalf("random cell %g outside {0, 1}", c)
		}
	}
}

func TestCloneIndependence(t *testing.T) {
	g := mustFilled(t, 3, 3, DefaultGeo(), 1)
	c := g.Clone()

	if !g.Equal(c) {
		t.Fatal("clone should equal source")
	}
	if err := c.Set(1, 1, 5); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, _ := g.At(1, 1); v != 1 {
		t.Error("mutating clone leaked into source")
	}
	if g.Equal(c) {
		t.Error("Equal should detect diverged cells")
	}
}

func TestBoundsAndCellOrigin(t *testing.T) {
	geo := Geo{OriginX: 10, OriginY: 100, PixelWidth: 5, PixelHeight: -5}
	g := mustFilled(t, 4, 6, geo, 0)

	minX, minY, maxX, maxY := g.Bounds()
	if minX != 10 || maxY != 100 || maxX != 40 || minY != 80 {
		t.Errorf("Bounds = (%g, %g, %g, %g), want (10, 80, 40, 100)", minX, minY, maxX, maxY)
	}

	x, y := g.CellOrigin(2, 3)
	if x != 25 || y != 90 {
		t.Errorf("CellOrigin(2, 3) = (%g, %g), want (25, 90)", x, y)
	}
}
