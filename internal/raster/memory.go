package raster

import "fmt"

// Memory is a path-keyed in-memory codec for tests and previews. Datasets
// are copied on both read and write so callers never share cell slices.
type Memory struct {
	files map[string]*Dataset
}

// NewMemory returns an empty in-memory codec.
func NewMemory() *Memory {
	return &Memory{files: make(map[string]*Dataset)}
}

func (m *Memory) Read(path string) (*Dataset, error) {
	d, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s: no such dataset", ErrIO, path)
	}
	return copyDataset(d), nil
}

func (m *Memory) Write(path string, d *Dataset) error {
	if len(d.Bands) == 0 {
		return fmt.Errorf("%w: %s: dataset has no bands", ErrIO, path)
	}
	for i, b := range d.Bands {
		if len(b) != d.Rows*d.Cols {
			return fmt.Errorf("%w: %s: band %d size does not match %dx%d", ErrIO, path, i+1, d.Rows, d.Cols)
		}
	}
	m.files[path] = copyDataset(d)
	return nil
}

func copyDataset(d *Dataset) *Dataset {
	c := *d
	c.Bands = make([][]float64, len(d.Bands))
	for i, b := range d.Bands {
		c.Bands[i] = append([]float64(nil), b...)
	}
	return &c
}
