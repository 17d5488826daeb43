package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/attractor/internal/config"
	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/engine"
	"github.com/san-kum/attractor/internal/gui"
	"github.com/san-kum/attractor/internal/interact"
	"github.com/san-kum/attractor/internal/snapshot"
	"github.com/san-kum/attractor/internal/storage"
	"github.com/san-kum/attractor/internal/telemetry"
	"github.com/san-kum/attractor/internal/viz"
	"github.com/spf13/cobra"
)

const keepSessions = 500

func runLive(cmd *cobra.Command, args []string) error {
	return runAdapter(cmd, "tui", func(ctx context.Context, eng *engine.Engine, updates <-chan interact.Settings) error {
		return viz.Run(ctx, eng, eng.Config().Simulation.System, updates)
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	return runAdapter(cmd, "gui", func(ctx context.Context, eng *engine.Engine, updates <-chan interact.Settings) error {
		return gui.Run(ctx, eng, gui.Options{
			Title:   "attractor :: " + eng.Config().Simulation.System,
			Width:   int32(width),
			Height:  int32(height),
			Updates: updates,
			Logger:  slog.Default(),
		})
	})
}

// runAdapter wires the pieces every live adapter shares: logging, the
// engine, a session record and config reloads.
func runAdapter(cmd *cobra.Command, adapter string, run func(context.Context, *engine.Engine, <-chan interact.Settings) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	eng, err := engine.New(cfg, engine.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	db, sess := beginSession(cfg, adapter, logger)
	if db != nil {
		defer db.Close()
	}

	updates := make(chan interact.Settings, 1)
	if configFile != "" {
		go func() {
			err := config.Watch(ctx, configFile,
				func(c *config.Config) {
					select {
					case updates <- c.Interaction:
					default:
						logger.Debug("config reload dropped, previous one pending")
					}
				},
				func(err error) { logger.Warn("config reload failed", "err", err) })
			if err != nil && ctx.Err() == nil {
				logger.Warn("config watch stopped", "err", err)
			}
		}()
	}

	runErr := run(ctx, eng, updates)
	if db != nil {
		finishSession(db, sess, eng, logger)
	}
	return runErr
}

// beginSession records the session. Telemetry failures are logged and
// never stop the animation.
func beginSession(cfg *config.Config, adapter string, logger *slog.Logger) (*telemetry.DB, telemetry.Session) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		logger.Warn("telemetry disabled", "err", err)
		return nil, telemetry.Session{}
	}
	db, err := telemetry.Open(filepath.Join(dataDir, "sessions.db"))
	if err != nil {
		logger.Warn("telemetry disabled", "err", err)
		return nil, telemetry.Session{}
	}
	sess, err := db.Begin(telemetry.Session{
		Adapter:  adapter,
		Preset:   preset,
		Strategy: cfg.Trajectory.Strategy.String(),
		Lines:    cfg.Simulation.Lines,
	})
	if err != nil {
		logger.Warn("telemetry disabled", "err", err)
		db.Close()
		return nil, telemetry.Session{}
	}
	return db, sess
}

func finishSession(db *telemetry.DB, s telemetry.Session, eng *engine.Engine, logger *slog.Logger) {
	stats := eng.Stats()
	s.Rendered = stats.Rendered()
	s.Skipped = stats.Skipped()
	s.MeanFPS = stats.FPS()
	s.Diverged = eng.Diverged()
	if err := db.Finish(s); err != nil {
		logger.Warn("finish session", "err", err)
		return
	}
	if n, err := db.Prune(keepSessions); err != nil {
		logger.Warn("prune sessions", "err", err)
	} else if n > 0 {
		logger.Debug("pruned sessions", "count", n)
	}
}

func headless(cmd *cobra.Command) (*engine.Engine, *slog.Logger, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return nil, nil, nil, err
	}
	eng, err := engine.New(cfg, engine.WithLogger(logger))
	if err != nil {
		closeLog()
		return nil, nil, nil, err
	}
	return eng, logger, closeLog, nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	eng, logger, closeLog, err := headless(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	start := time.Now()
	f := eng.Simulate(frames)

	out, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer out.Close()

	o := snapshot.DefaultOptions()
	o.Width, o.Height = width, height
	write := snapshot.WritePNG
	if strings.EqualFold(filepath.Ext(args[0]), ".svg") {
		write = snapshot.WriteSVG
	}
	if err := write(out, f, o); err != nil {
		return err
	}
	logger.Info("snapshot written", "path", args[0], "frames", frames, "took", time.Since(start))
	return nil
}

// windows copies the visible part of every line.
func windows(eng *engine.Engine) [][]dynamo.State3 {
	ts := eng.Trajectories()
	out := make([][]dynamo.State3, len(ts))
	for i, t := range ts {
		out[i] = append([]dynamo.State3(nil), t.Window()...)
	}
	return out
}

func runMetadata(eng *engine.Engine) storage.RunMetadata {
	cfg := eng.Config()
	return storage.RunMetadata{
		System:   cfg.Simulation.System,
		Preset:   preset,
		Strategy: cfg.Trajectory.Strategy.String(),
		Seed:     cfg.Simulation.Seed,
		StepSize: cfg.Simulation.StepSize,
		Frames:   frames,
		Params:   eng.Params(),
	}
}

func runSimulate(cmd *cobra.Command, args []string) error {
	eng, _, closeLog, err := headless(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	eng.Simulate(frames)
	meta, data := runMetadata(eng), windows(eng)

	if !save {
		meta.Timestamp = time.Now()
		return storage.ExportJSON(os.Stdout, meta, data)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(meta, data)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	if n := eng.Diverged(); n > 0 {
		fmt.Printf("diverged lines: %d\n", n)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYSTEM\tSTRATEGY\tWHEN\tFRAMES\tLINES\tPOINTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.System,
			run.Strategy,
			humanize.Time(run.Timestamp),
			run.Frames,
			run.Lines,
			humanize.Comma(int64(run.Points)),
		)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	data, err := st.LoadLines(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, data)
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	data, err := st.LoadLines(args[0])
	if err != nil {
		return err
	}
	if lineIndex < 0 || lineIndex >= len(data) || len(data[lineIndex]) == 0 {
		return fmt.Errorf("no data for line %d (run has %d lines)", lineIndex, len(data))
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("system: %s\n", meta.System)
	fmt.Printf("points: %d\n\n", len(data[lineIndex]))

	line := data[lineIndex]
	axes := []struct {
		name string
		get  func(dynamo.State3) float64
	}{
		{"x", func(s dynamo.State3) float64 { return s.X }},
		{"y", func(s dynamo.State3) float64 { return s.Y }},
		{"z", func(s dynamo.State3) float64 { return s.Z }},
	}
	for _, ax := range axes {
		series := make([]float64, len(line))
		for i, p := range line {
			series[i] = ax.get(p)
		}
		graph := asciigraph.Plot(series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("line %d: %s", lineIndex, ax.name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func listSessions(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	db, err := telemetry.Open(filepath.Join(dataDir, "sessions.db"))
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := db.Recent(limit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no sessions recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tADAPTER\tSTRATEGY\tLINES\tDURATION\tFRAMES\tSKIPPED\tFPS\tDIVERGED")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%.1f\t%d\n",
			humanize.Time(s.StartedAt),
			s.Adapter,
			s.Strategy,
			s.Lines,
			s.Duration().Round(time.Second),
			humanize.Comma(int64(s.Rendered)),
			humanize.Comma(int64(s.Skipped)),
			s.MeanFPS,
			s.Diverged,
		)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if _, err := os.Stat(args[0]); err == nil {
		return fmt.Errorf("%s already exists", args[0])
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
