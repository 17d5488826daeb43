package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/san-kum/attractor/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFile    string
	seed       int64
	lines      int
	frames     int
	width      int
	height     int
	save       bool
	limit      int
	lineIndex  int
	sweep      string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	steps      int
)

// main registers the commands and flags and runs the live terminal view
// when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:          "attractor",
		Short:        "animated lorenz attractor",
		SilenceUsage: true,
		RunE:         runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".attractor", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.Int64Var(&seed, "seed", 0, "seed for line offsets (0 = time based)")
	pf.IntVar(&lines, "lines", 0, "number of lines")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate in the terminal",
		RunE:  runLive,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "animate in a window",
		RunE:  runGUI,
	}
	guiCmd.Flags().IntVar(&width, "width", 1280, "window width")
	guiCmd.Flags().IntVar(&height, "height", 720, "window height")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [out.png|out.svg]",
		Short: "render one frame to a png or svg",
		Args:  cobra.ExactArgs(1),
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&frames, "frames", 180, "frames to simulate first")
	snapshotCmd.Flags().IntVar(&width, "width", 1280, "image width")
	snapshotCmd.Flags().IntVar(&height, "height", 720, "image height")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "advance headless and export the visible lines",
		RunE:  runSimulate,
	}
	simulateCmd.Flags().IntVar(&frames, "frames", 180, "frames to simulate")
	simulateCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory instead of printing json")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one line of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&lineIndex, "line", 0, "line to plot")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "estimate the largest lyapunov exponent",
		RunE:  analyze,
	}
	analyzeCmd.Flags().IntVar(&steps, "steps", 100000, "measured integration steps")
	analyzeCmd.Flags().StringVar(&sweep, "sweep", "", "parameter to sweep, e.g. rho")
	analyzeCmd.Flags().Float64Var(&sweepFrom, "from", 0.5, "sweep start")
	analyzeCmd.Flags().Float64Var(&sweepTo, "to", 30, "sweep end")
	analyzeCmd.Flags().IntVar(&sweepSteps, "points", 30, "sweep points")

	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "list recent live sessions",
		RunE:  listSessions,
	}
	sessionsCmd.Flags().IntVar(&limit, "limit", 20, "sessions to show")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration files",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	})

	rootCmd.AddCommand(liveCmd, guiCmd, snapshotCmd, simulateCmd, listCmd, exportCmd, plotCmd, analyzeCmd, sessionsCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves defaults, then the preset, then the config file,
// then command line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		if cfg = config.GetPreset(preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		var err error
		if cfg, err = config.LoadOver(cfg, configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Simulation.Seed = seed
	}
	if flags.Changed("lines") {
		cfg.Simulation.Lines = lines
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	return cfg, cfg.Validate()
}

// newLogger builds the process logger. Full screen adapters own the
// terminal, so they log to the configured file or nowhere.
func newLogger(cfg *config.Config, fullscreen bool) (*slog.Logger, func(), error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case cfg.Log.File != "":
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		w, closer = f, func() { f.Close() }
	case fullscreen:
		w = io.Discard
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, closer, nil
}
