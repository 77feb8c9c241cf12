// Package storage persists simulation runs: one directory per run holding
// metadata and the retained board snapshots as raster files.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/rasterlife/internal/config"
	"github.com/san-kum/rasterlife/internal/life"
	"github.com/san-kum/rasterlife/internal/raster"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Rows        int       `json:"rows"`
	Cols        int       `json:"cols"`
	EPSG        int       `json:"epsg"`
	Pattern     string    `json:"pattern"`
	Seed        int64     `json:"seed"`
	Edge        string    `json:"edge"`
	Overwrite   bool      `json:"overwrite"`
	Jump        int       `json:"jump"`
	Generations int       `json:"generations"`
	Populations []int     `json:"populations"`
	Snapshots   []string  `json:"snapshots"`
}

// SaveRun writes one run directory: metadata.json, the initial board as
// start.asc, and the retained history. Under overwrite the single live
// snapshot lands in cycle.asc; otherwise each retained snapshot gets a
// cycle_<generation>.asc keyed by the jump stride.
func (s *Store) SaveRun(cfg *config.Config, eng *life.Engine, codec raster.Codec, populations []int) (string, error) {
	runID := fmt.Sprintf("life_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	history := eng.History()
	var snapshots []string

	if cfg.Overwrite {
		snapshots = append(snapshots, "cycle.asc")
		if err := raster.Save(codec, filepath.Join(runDir, "cycle.asc"), history[0]); err != nil {
			return "", err
		}
	} else {
		snapshots = append(snapshots, "start.asc")
		if err := raster.Save(codec, filepath.Join(runDir, "start.asc"), history[0]); err != nil {
			return "", err
		}
		for i, snap := range history[1:] {
			name := fmt.Sprintf("cycle_%04d.asc", (i+1)*cfg.Jump)
			snapshots = append(snapshots, name)
			if err := raster.Save(codec, filepath.Join(runDir, name), snap); err != nil {
				return "", err
			}
		}
	}

	board := eng.Current()
	meta := RunMetadata{
		ID:          runID,
		Timestamp:   time.Now(),
		Rows:        board.Rows(),
		Cols:        board.Cols(),
		EPSG:        board.Geo().EPSG,
		Pattern:     cfg.Pattern,
		Seed:        cfg.Seed,
		Edge:        cfg.Edge,
		Overwrite:   cfg.Overwrite,
		Jump:        cfg.Jump,
		Generations: eng.Generation(),
		Populations: populations,
		Snapshots:   snapshots,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// SnapshotPath returns the on-disk path of a snapshot file within a run.
func (s *Store) SnapshotPath(runID, name string) string {
	return filepath.Join(s.baseDir, runID, name)
}
