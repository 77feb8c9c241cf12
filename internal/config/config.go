// Package config holds the yaml configuration surface for the CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rasterlife/internal/grid"
	"github.com/san-kum/rasterlife/internal/life"
)

const (
	DefaultRows      = 25
	DefaultCols      = 25
	DefaultPixelSize = 1.0
	DefaultSteps     = 10
	DefaultJump      = 1
)

type Config struct {
	// Board geometry.
	Rows        int     `yaml:"rows"`
	Cols        int     `yaml:"cols"`
	PixelWidth  float64 `yaml:"pixel_width"`
	PixelHeight float64 `yaml:"pixel_height"`
	OriginX     float64 `yaml:"origin_x"`
	OriginY     float64 `yaml:"origin_y"`
	EPSG        int     `yaml:"epsg"`

	// Board source: a named pattern, "random", or a raster file.
	Pattern string `yaml:"pattern"`
	Raster  string `yaml:"raster"`
	Band    int    `yaml:"band"`
	Seed    int64  `yaml:"seed"`

	// Simulation.
	Steps     int    `yaml:"steps"`
	Jump      int    `yaml:"jump"`
	Edge      string `yaml:"edge"`
	Overwrite bool   `yaml:"overwrite"`
	DelayMS   int    `yaml:"delay_ms"`

	// Output.
	DataDir string `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Rows:        DefaultRows,
		Cols:        DefaultCols,
		PixelWidth:  DefaultPixelSize,
		PixelHeight: -DefaultPixelSize,
		EPSG:        grid.DefaultEPSG,
		Pattern:     "random",
		Band:        1,
		Steps:       DefaultSteps,
		Jump:        DefaultJump,
		Edge:        "bounded",
		Overwrite:   true,
		DataDir:     ".rasterlife",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("%w: rows and cols must be positive, got %dx%d", grid.ErrBadParam, c.Rows, c.Cols)
	}
	if c.PixelWidth <= 0 {
		return fmt.Errorf("%w: pixel_width must be positive, got %g", grid.ErrBadParam, c.PixelWidth)
	}
	if c.PixelHeight == 0 {
		return fmt.Errorf("%w: pixel_height must be nonzero", grid.ErrBadParam)
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w: steps must be non-negative, got %d", grid.ErrBadParam, c.Steps)
	}
	if c.Jump < 1 {
		return fmt.Errorf("%w: jump must be at least 1, got %d", grid.ErrBadParam, c.Jump)
	}
	if c.Band < 1 {
		return fmt.Errorf("%w: band must be at least 1, got %d", grid.ErrBadParam, c.Band)
	}
	if _, err := life.ParseEdgePolicy(c.Edge); err != nil {
		return err
	}
	return nil
}

// Geo assembles the geotransform from the configured geometry. A positive
// pixel_height is accepted and normalized to the negative raster convention.
func (c *Config) Geo() grid.Geo {
	ph := c.PixelHeight
	if ph > 0 {
		ph = -ph
	}
	return grid.Geo{
		OriginX:     c.OriginX,
		OriginY:     c.OriginY,
		PixelWidth:  c.PixelWidth,
		PixelHeight: ph,
		EPSG:        c.EPSG,
	}
}
