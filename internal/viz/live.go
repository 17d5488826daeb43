package viz

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/engine"
	"github.com/san-kum/attractor/internal/frame"
	"github.com/san-kum/attractor/internal/interact"
	"github.com/san-kum/attractor/internal/palette"
)

const (
	width  = 80
	height = 24

	// Refresh is how often the driver offers a frame. It runs faster
	// than the target rate so the scheduler decides which ticks to use.
	Refresh = time.Second / 120

	// approximate pixel size of a terminal cell, so pointer deltas feel
	// like they do with a real pointer
	cellW, cellH = 8, 16

	wheelStep  = 0.02
	pageStep   = 0.1
	zoomStep   = 5.0
	tuneFactor = 1.05
)

type (
	tickMsg     time.Time
	settingsMsg interact.Settings
)

func tick() tea.Cmd {
	return tea.Tick(Refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the Bubble Tea model for the live view.
type Model struct {
	eng    *engine.Engine
	title  string
	now    func() time.Duration
	canvas *Canvas
	sink   *canvasSink

	keys      keyMap
	help      help.Model
	frame     *engine.Frame
	scroll    float64
	showStats bool
	paramKeys []string
	selected  int

	width, height int
	err           error
}

type Option func(*Model)

// WithClock replaces the monotonic clock used for engine timestamps.
func WithClock(now func() time.Duration) Option {
	return func(m *Model) { m.now = now }
}

func NewModel(eng *engine.Engine, title string, opts ...Option) *Model {
	start := time.Now()
	m := &Model{
		eng:    eng,
		title:  title,
		now:    func() time.Duration { return time.Since(start) },
		keys:   defaultKeys(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	for _, opt := range opts {
		opt(m)
	}
	for k := range eng.Params() {
		m.paramKeys = append(m.paramKeys, k)
	}
	sort.Strings(m.paramKeys)

	m.canvas = NewCanvas(width, height)
	m.sink = &canvasSink{canvas: m.canvas}
	m.layout()
	return m
}

func (m *Model) Init() tea.Cmd {
	m.eng.Start(m.now())
	return tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if f, ok := m.eng.Tick(m.now()); ok {
			m.frame = f
			m.canvas.Clear()
			engine.Present(f, m.sink)
		}
		return m, tick()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = panelWidth
		m.layout()
	case settingsMsg:
		m.err = m.eng.ApplyInteraction(interact.Settings(msg))
	case tea.ResumeMsg:
		m.eng.SetVisible(true, m.now())
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) mouse(msg tea.MouseMsg) {
	in := m.eng.Input()
	x, y := float64(msg.X*cellW), float64(msg.Y*cellH)
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			in.PointerDown(x, y)
		case tea.MouseButtonWheelDown:
			m.scrollBy(wheelStep)
		case tea.MouseButtonWheelUp:
			m.scrollBy(-wheelStep)
		}
	case tea.MouseActionRelease:
		in.PointerUp()
	case tea.MouseActionMotion:
		in.PointerMove(m.now(), x, y)
	}
}

// scrollBy moves the virtual page position, one page being one turn.
func (m *Model) scrollBy(d float64) {
	m.scroll = math.Max(0, math.Min(1, m.scroll+d))
	m.eng.Input().Scroll(m.now(), m.scroll)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Suspend):
		// a suspended program is hidden; ResumeMsg restarts the clock
		m.eng.SetVisible(false, m.now())
		return tea.Suspend
	case key.Matches(msg, m.keys.ZoomIn):
		m.eng.Input().Zoom(-zoomStep)
	case key.Matches(msg, m.keys.ZoomOut):
		m.eng.Input().Zoom(zoomStep)
	case key.Matches(msg, m.keys.ScrollDn):
		m.scrollBy(pageStep)
	case key.Matches(msg, m.keys.ScrollUp):
		m.scrollBy(-pageStep)
	case key.Matches(msg, m.keys.NextParam):
		if len(m.paramKeys) > 0 {
			m.selected = (m.selected + 1) % len(m.paramKeys)
		}
	case key.Matches(msg, m.keys.ParamUp):
		m.tune(tuneFactor)
	case key.Matches(msg, m.keys.ParamDown):
		m.tune(1 / tuneFactor)
	case key.Matches(msg, m.keys.Stats):
		m.showStats = !m.showStats
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) tune(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	k := m.paramKeys[m.selected]
	m.err = m.eng.Tune(k, m.eng.Params()[k]*factor, m.now())
}

func (m *Model) layout() {
	cols := max(m.width-panelWidth-4, 10)
	rows := max(m.height-1, 4)
	m.canvas.Resize(cols, rows)
	w, h := m.canvas.Pixels()
	m.sink.proj = NewProjector(w, h)
}

// View renders the canvas and the side panel.
func (m *Model) View() string {
	var s strings.Builder
	cfg := m.eng.Config()
	theme := palette.GetTheme(cfg.Color.Theme)
	s.WriteString(GradientText(strings.ToUpper(m.title), theme.Start, theme.Particle) + "\n\n")

	if m.eng.State() == frame.Running {
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	stats := m.eng.Stats()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("FPS", fmt.Sprintf("%.1f", stats.FPS()))
	row("Frames", humanize.Comma(int64(stats.Rendered())))
	row("Skipped", humanize.Comma(int64(stats.Skipped())))
	row("Lines", fmt.Sprint(len(m.eng.Trajectories())))
	if f := m.frame; f != nil {
		row("Trail", fmt.Sprintf("%.0f", f.MaxLength))
		s.WriteString(ProgressBar(cfg.Schedule().Progress(f.Elapsed), panelWidth-8) + "\n")
		row("Zoom", fmt.Sprintf("%.1f", f.Pose.Zoom))
		row("Yaw", fmt.Sprintf("%.2f", f.Pose.Yaw))
	}
	if n := m.eng.Diverged(); n > 0 {
		row("Diverged", fmt.Sprint(n))
	}

	if m.showStats {
		if ms := stats.Millis(); len(ms) > 1 {
			chart := asciigraph.Plot(ms, asciigraph.Height(4), asciigraph.Width(panelWidth-10), asciigraph.Caption("frame ms"))
			s.WriteString(graphStyle.Render(chart) + "\n")
		}
	}

	s.WriteString("\nPARAMETERS\n")
	params := m.eng.Params()
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-6s %8.3f", k, params[k])
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + valueStyle.Render(line) + "\n")
		}
	}

	if m.err != nil {
		s.WriteString("\n" + statusPaused.Render(m.err.Error()) + "\n")
	}
	s.WriteString("\n" + m.help.View(m.keys))
	return lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.String(), panelStyle.Render(s.String()))
}

// Run starts the live view and blocks until the user quits or ctx is
// cancelled. Settings received on updates are applied between frames.
func Run(ctx context.Context, eng *engine.Engine, title string, updates <-chan interact.Settings) error {
	p := tea.NewProgram(NewModel(eng, title),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case s, ok := <-updates:
				if !ok {
					return
				}
				p.Send(settingsMsg(s))
			}
		}
	}()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// canvasSink draws engine buffers onto the canvas.
type canvasSink struct {
	canvas *Canvas
	proj   Projector
	mvp    mgl32.Mat4
}

func (s *canvasSink) SetTransform(p interact.Pose) { s.mvp = s.proj.Matrix(p) }

func (s *canvasSink) UpdateLine(_ int, pos, col []float32) {
	px, py, pok := 0, 0, false
	for k := 0; k+2 < len(pos); k += 3 {
		x, y, ok := s.proj.Project(s.mvp, pos[k], pos[k+1], pos[k+2])
		if ok && pok {
			s.canvas.DrawLine(px, py, x, y, rgb(col, k))
		}
		px, py, pok = x, y, ok
	}
}

func (s *canvasSink) UpdateParticles(_ int, pos, col []float32) {
	for k := 0; k+2 < len(pos); k += 3 {
		x, y, ok := s.proj.Project(s.mvp, pos[k], pos[k+1], pos[k+2])
		if !ok {
			continue
		}
		c := rgb(col, k)
		for dy := 0; dy <= 1; dy++ {
			for dx := 0; dx <= 1; dx++ {
				s.canvas.Set(x+dx, y+dy, c)
			}
		}
	}
}

func rgb(col []float32, k int) dynamo.RGB {
	if k+2 >= len(col) {
		return dynamo.RGB{R: 1, G: 1, B: 1}
	}
	return dynamo.RGB{R: float64(col[k]), G: float64(col[k+1]), B: float64(col[k+2])}
}
