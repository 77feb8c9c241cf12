package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/rasterlife/internal/config"
	"github.com/san-kum/rasterlife/internal/grid"
	"github.com/san-kum/rasterlife/internal/life"
	"github.com/san-kum/rasterlife/internal/raster"
	"github.com/san-kum/rasterlife/internal/storage"
	"github.com/san-kum/rasterlife/internal/viz"
)

var (
	dataDir     string
	configFile  string
	rows        int
	cols        int
	pixelWidth  float64
	pixelHeight float64
	originX     float64
	originY     float64
	epsg        int
	pattern     string
	rasterPath  string
	band        int
	seed        int64
	steps       int
	jump        int
	edge        string
	overwrite   bool
	delayMS     int
	frameRate   int
	plain       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rasterlife",
		Short: "geospatial cell grids and a Game of Life simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rasterlife", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the result",
		RunE:  runSimulation,
	}
	addBoardFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of cycles")
	runCmd.Flags().IntVar(&jump, "jump", config.DefaultJump, "snapshot stride when history is kept")
	runCmd.Flags().BoolVar(&overwrite, "overwrite", true, "keep only the latest board instead of full history")
	runCmd.Flags().IntVar(&delayMS, "delay-ms", 0, "pause between steps (display pacing only)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the simulation in the terminal",
		RunE:  runLive,
	}
	addBoardFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 10, "frames per second")

	showCmd := &cobra.Command{
		Use:   "show [raster]",
		Short: "print a raster file as a board",
		Args:  cobra.ExactArgs(1),
		RunE:  showRaster,
	}
	showCmd.Flags().IntVar(&band, "band", 1, "band to read")
	showCmd.Flags().BoolVar(&plain, "plain", false, "disable color output")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's population series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "list known seed patterns",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range life.Patterns() {
				p, _ := life.LookupPattern(name)
				fmt.Printf("%-10s %s\n", name, p.Descr)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, showCmd, listCmd, plotCmd, exportCmd, patternsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addBoardFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "board rows")
	cmd.Flags().IntVar(&cols, "cols", config.DefaultCols, "board columns")
	cmd.Flags().Float64Var(&pixelWidth, "pixel-width", config.DefaultPixelSize, "cell width in map units")
	cmd.Flags().Float64Var(&pixelHeight, "pixel-height", config.DefaultPixelSize, "cell height in map units")
	cmd.Flags().Float64Var(&originX, "origin-x", 0, "x of the top-left corner")
	cmd.Flags().Float64Var(&originY, "origin-y", 0, "y of the top-left corner")
	cmd.Flags().IntVar(&epsg, "epsg", grid.DefaultEPSG, "coordinate reference system")
	cmd.Flags().StringVar(&pattern, "pattern", "random", "seed pattern or 'random'")
	cmd.Flags().StringVar(&rasterPath, "raster", "", "seed board from a raster file instead")
	cmd.Flags().IntVar(&band, "band", 1, "raster band to read")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&edge, "edge", "bounded", "edge policy: bounded or wrap")
}

// buildConfig merges the yaml file, when given, with command-line flags.
// Flags the user set explicitly win over file values.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) || configFile == "" {
			apply()
		}
	}
	set("rows", func() { cfg.Rows = rows })
	set("cols", func() { cfg.Cols = cols })
	set("pixel-width", func() { cfg.PixelWidth = pixelWidth })
	set("pixel-height", func() { cfg.PixelHeight = pixelHeight })
	set("origin-x", func() { cfg.OriginX = originX })
	set("origin-y", func() { cfg.OriginY = originY })
	set("epsg", func() { cfg.EPSG = epsg })
	set("pattern", func() { cfg.Pattern = pattern })
	set("raster", func() { cfg.Raster = rasterPath })
	set("band", func() { cfg.Band = band })
	set("seed", func() { cfg.Seed = seed })
	set("edge", func() { cfg.Edge = edge })
	set("steps", func() { cfg.Steps = steps })
	set("jump", func() { cfg.Jump = jump })
	set("overwrite", func() { cfg.Overwrite = overwrite })
	set("delay-ms", func() { cfg.DelayMS = delayMS })
	cfg.DataDir = dataDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildEngine assembles the initial board and wraps it in an engine.
func buildEngine(cfg *config.Config) (*life.Engine, error) {
	var board *grid.Grid
	var err error

	switch {
	case cfg.Raster != "":
		board, err = raster.Load(raster.AAIGrid{}, cfg.Raster, cfg.Band)
	case cfg.Pattern == "random":
		board, err = grid.NewRandom(cfg.Rows, cfg.Cols, cfg.Geo(), cfg.Seed)
	default:
		board, err = life.SeedBoard(cfg.Rows, cfg.Cols, cfg.Geo(), cfg.Pattern)
	}
	if err != nil {
		return nil, err
	}

	edgePolicy, err := life.ParseEdgePolicy(cfg.Edge)
	if err != nil {
		return nil, err
	}
	return life.New(board, life.Options{
		Overwrite: cfg.Overwrite,
		Edge:      edgePolicy,
		Delay:     time.Duration(cfg.DelayMS) * time.Millisecond,
	})
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	pop := &life.PopulationLog{}
	eng.AddObserver(pop)

	if err := eng.Cycle(context.Background(), cfg.Steps, cfg.Jump); err != nil {
		return err
	}

	store := storage.New(cfg.DataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.SaveRun(cfg, eng, raster.AAIGrid{}, pop.Counts)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d generations, population %d\n", runID, eng.Generation(), eng.Population())
	fmt.Print(viz.DefaultStyle().Render(eng.Current()))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	return viz.RunLive(eng, viz.DefaultStyle(), frameRate)
}

func showRaster(cmd *cobra.Command, args []string) error {
	board, err := raster.Load(raster.AAIGrid{}, args[0], band)
	if err != nil {
		return err
	}
	style := viz.DefaultStyle()
	if plain {
		style = viz.PlainStyle()
	}
	fmt.Print(style.RenderWithStats(board, 0))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tBOARD\tPATTERN\tEDGE\tGENS\tSNAPSHOTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Rows, run.Cols,
			run.Pattern,
			run.Edge,
			run.Generations,
			len(run.Snapshots))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	if len(meta.Populations) < 2 {
		return fmt.Errorf("run %s has no population series to plot", meta.ID)
	}

	series := make([]float64, len(meta.Populations))
	for i, p := range meta.Populations {
		series[i] = float64(p)
	}
	fmt.Println(asciigraph.Plot(series, asciigraph.Height(12), asciigraph.Width(60), asciigraph.Caption("population per generation")))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
