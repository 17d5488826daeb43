package gui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/attractor/internal/engine"
	"github.com/san-kum/attractor/internal/interact"
	"github.com/san-kum/attractor/internal/palette"
)

// Theme Colors
var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const fontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"

type Options struct {
	Title         string
	Width, Height int32
	// Updates delivers interaction settings from a config watcher. They
	// are applied on the render thread.
	Updates <-chan interact.Settings
	Logger  *slog.Logger
}

type App struct {
	Eng    *engine.Engine
	Title  string
	Camera rl.Camera3D
	Font   rl.Font

	input  *Input
	sink   *lineSink
	frame  *engine.Frame
	start  time.Time
	shown  bool
	width  int32
	height int32
	log    *slog.Logger
}

// initWindow opens the window. The frame scheduler decides which frames
// advance the simulation, so raylib itself is not capped below the
// monitor rate.
func initWindow(o Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	rl.InitWindow(o.Width, o.Height, o.Title)
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(eng *engine.Engine, o Options) *App {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return &App{
		Eng:    eng,
		Title:  o.Title,
		Camera: newCamera(),
		Font:   loadFont(),
		input:  NewInput(eng),
		sink:   &lineSink{},
		start:  time.Now(),
		shown:  true,
		width:  o.Width,
		height: o.Height,
		log:    o.Logger,
	}
}

// newCamera sits at the origin looking down -Z; the pose transform moves
// the group in front of it.
func newCamera() rl.Camera3D {
	return rl.NewCamera3D(
		rl.NewVector3(0, 0, 0),
		rl.NewVector3(0, 0, -1),
		rl.NewVector3(0, 1, 0),
		75.0,
		rl.CameraPerspective,
	)
}

// Run opens a window and drives eng until the window is closed or ctx
// is cancelled.
func Run(ctx context.Context, eng *engine.Engine, o Options) error {
	if o.Width == 0 || o.Height == 0 {
		o.Width, o.Height = 1280, 720
	}
	if o.Title == "" {
		o.Title = "attractor"
	}
	initWindow(o)
	defer rl.CloseWindow()

	app := NewApp(eng, o)
	defer rl.UnloadFont(app.Font)
	return app.RunLoop(ctx, o.Updates)
}

func (a *App) now() time.Duration { return time.Since(a.start) }

func (a *App) RunLoop(ctx context.Context, updates <-chan interact.Settings) error {
	a.Eng.Start(a.now())
	for !rl.WindowShouldClose() {
		select {
		case <-ctx.Done():
			return nil
		case s := <-updates:
			if err := a.Eng.ApplyInteraction(s); err != nil {
				a.log.Warn("interaction settings rejected", "err", err)
			}
		default:
		}
		if rl.IsKeyPressed(rl.KeyQ) {
			return nil
		}
		a.Update()
		a.Draw()
	}
	return nil
}

// Update polls input and advances the engine when a frame is due.
func (a *App) Update() {
	now := a.now()
	a.setVisible(windowShown(rl.IsWindowMinimized(), rl.IsWindowHidden()), now)
	a.input.Feed(now, poll())

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		a.Eng.Input().Zoom(-zoomStep)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		a.Eng.Input().Zoom(zoomStep)
	}

	if f, ok := a.Eng.Tick(now); ok {
		a.frame = f
	}
}

// windowShown reports whether the animation should run. An unfocused
// window stays visible and keeps animating.
func windowShown(minimized, hidden bool) bool {
	return !minimized && !hidden
}

func (a *App) setVisible(v bool, now time.Duration) {
	if v == a.shown {
		return
	}
	a.shown = v
	a.Eng.SetVisible(v, now)
}

// Draw redraws the last frame every loop, which keeps the window live
// while the scheduler skips or is paused.
func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.frame != nil {
		rl.BeginMode3D(a.Camera)
		engine.Present(a.frame, a.sink)
		a.sink.done()
		rl.EndMode3D()
	}
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	theme := palette.GetTheme(a.Eng.Config().Color.Theme)
	a.drawText(a.Title, 30, 30, 24, toColor(theme.Start))

	status, col := "RUNNING", ColSelect
	if !a.shown {
		status, col = "PAUSED", ColTextDim
	}
	w := int(rl.GetScreenWidth())
	h := int(rl.GetScreenHeight())
	a.drawText(status, w-130, 30, 16, col)

	stats := a.Eng.Stats()
	a.drawText(fmt.Sprintf("%.0f FPS  %d lines", stats.FPS(), len(a.Eng.Trajectories())), 30, h-40, 14, ColText)
	if f := a.frame; f != nil {
		a.drawText(fmt.Sprintf("trail %.0f  zoom %.1f", f.MaxLength, f.Pose.Zoom), 30, h-62, 14, ColTextDim)
	}
	a.drawText("[DRAG] PAN  [WHEEL] TURN  [+/-] ZOOM  [Q] QUIT", w-440, h-40, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
