package raster

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/rasterlife/internal/grid"
)

func TestAAIGridRoundTrip(t *testing.T) {
	geo := grid.Geo{OriginX: 100, OriginY: 200, PixelWidth: 10, PixelHeight: -10, EPSG: grid.DefaultEPSG}
	src, err := grid.NewLiteral([][]float64{
		{0, 1, 0},
		{1, 1, 1},
	}, geo)
	if err != nil {
		t.Fatalf("NewLiteral failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "board.asc")
	codec := AAIGrid{}

	if err := Save(codec, path, src); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(codec, path, 1)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !got.Equal(src) {
		t.Errorf("round trip lost data:\nwrote rows=%d cols=%d geo=%+v\nread  rows=%d cols=%d geo=%+v",
			src.Rows(), src.Cols(), src.Geo(), got.Rows(), got.Cols(), got.Geo())
	}
}

func TestAAIGridNonSquareCells(t *testing.T) {
	geo := grid.Geo{OriginX: 0, OriginY: 30, PixelWidth: 5, PixelHeight: -10}
	src, err := grid.NewFilled(3, 4, geo, 1)
	if err != nil {
		t.Fatalf("NewFilled failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "board.asc")
	if err := Save(AAIGrid{}, path, src); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(AAIGrid{}, path, 1)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if g := got.Geo(); g.PixelWidth != 5 || g.PixelHeight != -10 {
		t.Errorf("pixel sizes = (%g, %g), want (5, -10)", g.PixelWidth, g.PixelHeight)
	}
}

func TestAAIGridReadErrors(t *testing.T) {
	dir := t.TempDir()

	corrupt := filepath.Join(dir, "corrupt.asc")
	if err := os.WriteFile(corrupt, []byte("ncols 2\nnrows 2\ncellsize 1\n1 x 0 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	short := filepath.Join(dir, "short.asc")
	if err := os.WriteFile(short, []byte("ncols 3\nnrows 3\ncellsize 1\n1 0 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	noheader := filepath.Join(dir, "noheader.asc")
	if err := os.WriteFile(noheader, []byte("1 0\n0 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.asc")},
		{"bad cell value", corrupt},
		{"too few values", short},
		{"missing header", noheader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (AAIGrid{}).Read(tt.path); !errors.Is(err, ErrIO) {
				t.Errorf("Read err = %v, want ErrIO", err)
			}
		})
	}
}

func TestAAIGridWriteUnwritablePath(t *testing.T) {
	g, _ := grid.NewFilled(2, 2, grid.DefaultGeo(), 0)
	err := Save(AAIGrid{}, filepath.Join(t.TempDir(), "missing", "dir", "out.asc"), g)
	if !errors.Is(err, ErrIO) {
		t.Errorf("Save err = %v, want ErrIO", err)
	}
}

func TestLoadBandSelection(t *testing.T) {
	mem := NewMemory()
	d := &Dataset{
		Rows: 2, Cols: 2,
		Geo: grid.DefaultGeo(),
		Bands: [][]float64{
			{0, 0, 0, 0},
			{1, 2, 3, 4},
		},
	}
	if err := mem.Write("multi", d); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	g, err := Load(mem, "multi", 2)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if g.Band() != 2 {
		t.Errorf("Band() = %d, want 2", g.Band())
	}
	if v, _ := g.At(1, 1); v != 4 {
		t.Errorf("At(1, 1) = %g, want 4", v)
	}

	if _, err := Load(mem, "multi", 3); !errors.Is(err, ErrIO) {
		t.Errorf("band past end err = %v, want ErrIO", err)
	}
	if _, err := Load(mem, "multi", 0); !errors.Is(err, grid.ErrBadParam) {
		t.Errorf("band 0 err = %v, want ErrBadParam", err)
	}
}

func TestMemoryIsolation(t *testing.T) {
	mem := NewMemory()
	d := &Dataset{Rows: 1, Cols: 2, Geo: grid.DefaultGeo(), Bands: [][]float64{{1, 2}}}
	if err := mem.Write("a", d); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	d.Bands[0][0] = 99
	got, err := mem.Read("a")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Bands[0][0] != 1 {
		t.Error("codec shares cell storage with caller")
	}

	if _, err := mem.Read("missing"); !errors.Is(err, ErrIO) {
		t.Errorf("missing path err = %v, want ErrIO", err)
	}
}
