package engine_test

import (
	"io"
	"log/slog"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/attractor/internal/config"
	"github.com/san-kum/attractor/internal/engine"
	"github.com/san-kum/attractor/internal/frame"
	"github.com/san-kum/attractor/internal/interact"
)

var _ = Describe("Engine", func() {
	var (
		cfg *config.Config
		eng *engine.Engine
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		cfg.Simulation.Lines = 6
		cfg.Simulation.Seed = 11
	})

	JustBeforeEach(func() {
		var err error
		eng, err = engine.New(cfg, engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts paused until Start is called", func() {
		Expect(eng.State()).To(Equal(frame.Paused))
		_, ok := eng.Tick(time.Second)
		Expect(ok).To(BeFalse())

		eng.Start(0)
		Expect(eng.State()).To(Equal(frame.Running))
	})

	It("builds one visual per line", func() {
		f := eng.Simulate(3)
		Expect(f.Lines).To(HaveLen(6))
		Expect(f.Particles).To(HaveLen(6))
		for _, l := range f.Lines {
			Expect(l.Positions).To(HaveLen(3 * l.Points()))
			Expect(l.Colors).To(HaveLen(len(l.Positions)))
		}
	})

	It("reuses the frame between ticks", func() {
		first := eng.Simulate(1)
		second := eng.Simulate(1)
		Expect(second).To(BeIdenticalTo(first))
		Expect(second.Index).To(BeEquivalentTo(2))
	})

	It("records frame statistics", func() {
		eng.Simulate(10)
		Expect(eng.Stats().Rendered()).To(BeEquivalentTo(10))
		Expect(eng.Stats().FPS()).To(BeNumerically("~", 60, 0.01))
	})

	Context("with the shift strategy", func() {
		BeforeEach(func() {
			cfg = config.GetPreset("classic")
			cfg.Simulation.Lines = 2
			cfg.Simulation.Seed = 5
		})

		It("never shows more points than the growth length allows", func() {
			for i := 0; i < 400; i++ {
				f := eng.Simulate(1)
				for _, l := range f.Lines {
					Expect(l.Points()).To(BeNumerically("<=", math.Floor(f.MaxLength)))
				}
			}
		})

		It("skips particles", func() {
			Expect(eng.Simulate(1).Particles).To(BeEmpty())
		})
	})

	Describe("input", func() {
		It("pans toward the drag and flags the frame", func() {
			eng.Start(0)
			in := eng.Input()
			in.PointerDown(0, 0)
			in.PointerMove(0, 50, 0)
			in.PointerUp()

			f, ok := eng.Tick(20 * time.Millisecond)
			Expect(ok).To(BeTrue())
			Expect(f.Dirty).To(BeTrue())
			Expect(in.Target().PanX).To(BeNumerically("~", cfg.Interaction.Pan.X+5, 1e-9))
			Expect(f.Pose.PanX).To(BeNumerically("<", 0))
		})

		It("eases the camera over several frames", func() {
			eng.Input().Zoom(100)
			var last float64
			for i := 0; i < 30; i++ {
				z := eng.Simulate(1).Pose.Zoom
				Expect(z).To(BeNumerically(">", last))
				Expect(z).To(BeNumerically("<", 150))
				last = z
			}
		})

		It("applies new interaction settings without a jump", func() {
			before := eng.Simulate(1).Pose

			s := interact.DefaultSettings()
			s.Smoothing.Mode = interact.ModeSpring
			Expect(eng.ApplyInteraction(s)).To(Succeed())
			Expect(eng.Input().Pose()).To(Equal(before))
			Expect(eng.Config().Interaction.Smoothing.Mode).To(Equal(interact.ModeSpring))

			s.Smoothing.Mode = "bogus"
			Expect(eng.ApplyInteraction(s)).NotTo(Succeed())
		})
	})

	Context("with an invalid configuration", func() {
		It("refuses to build", func() {
			bad := config.DefaultConfig()
			bad.Version = "3.1.0"
			_, err := engine.New(bad)
			Expect(err).To(MatchError(config.ErrUnsupportedVersion))
		})
	})
})
