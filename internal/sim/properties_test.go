package sim_test

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/powerpendulum/internal/config"
	"github.com/san-kum/powerpendulum/internal/panel"
	"github.com/san-kum/powerpendulum/internal/sim"
)

var (
	seed1 = mgl64.Vec3{-10, 0, 0}
	seed2 = mgl64.Vec3{-10, 0, -10}
)

func tickN(s *sim.Simulator, n int) {
	GinkgoHelper()
	for i := 0; i < n; i++ {
		Expect(s.Tick()).To(Succeed())
	}
}

var _ = Describe("Pendulum simulation", func() {
	var (
		cfg *config.Config
		s   *sim.Simulator
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		cfg.Seed = 2024
	})

	JustBeforeEach(func() {
		var err error
		s, err = sim.New(cfg, logr.Discard())
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("the first step", func() {
		It("leaves finite distinct positions and one trail point", func() {
			tickN(s, 1)
			b1, b2 := s.Bodies()
			Expect(b1.IsFinite()).To(BeTrue())
			Expect(b2.IsFinite()).To(BeTrue())
			Expect(b1.Position).NotTo(Equal(b2.Position))
			Expect(s.Frame().TrailLen).To(Equal(1))
		})
	})

	Describe("the trail", func() {
		BeforeEach(func() {
			cfg.Trail.Length = 40
		})

		It("never exceeds its maximum length", func() {
			for i := 0; i < 300; i++ {
				tickN(s, 1)
				Expect(s.Frame().TrailLen).To(BeNumerically("<=", 40))
			}
			Expect(s.Frame().TrailLen).To(Equal(40))
		})

		It("cycles hue through 0..359", func() {
			prev := s.Frame().Hue
			for i := 0; i < 720; i++ {
				tickN(s, 1)
				hue := s.Frame().Hue
				Expect(hue).To(BeNumerically(">=", 0))
				Expect(hue).To(BeNumerically("<=", 359))
				Expect(hue).To(Equal((prev + 1) % 360))
				prev = hue
			}
		})

		It("stays empty with a maximum length of zero", func() {
			Expect(s.Apply(panel.Change{Name: panel.TrailLength, Value: 0})).To(Succeed())
			for i := 0; i < 10; i++ {
				tickN(s, 1)
				Expect(s.Frame().TrailLen).To(BeZero())
				Expect(s.Scene().Trail.Vertices).To(BeEmpty())
			}
		})
	})

	Describe("the arms line", func() {
		It("ends exactly at the bodies every frame", func() {
			for i := 0; i < 120; i++ {
				tickN(s, 1)
				b1, b2 := s.Bodies()
				Expect(s.Scene().Arms.Vertices).To(Equal([]mgl64.Vec3{{}, b1.Position, b2.Position}))
			}
		})
	})

	Describe("mass edits", func() {
		DescribeTable("scale the mesh to half the mass",
			func(name string, mass float64) {
				Expect(s.Apply(panel.Change{Name: name, Value: mass})).To(Succeed())
				mesh := s.Scene().Pendulum1
				if name == panel.Pendulum2Mass {
					mesh = s.Scene().Pendulum2
				}
				Expect(mesh.Scale).To(Equal(mass / 2))
			},
			Entry("inner light", panel.Pendulum1Mass, 0.5),
			Entry("inner heavy", panel.Pendulum1Mass, 10.0),
			Entry("outer", panel.Pendulum2Mass, 3.0),
		)
	})

	Describe("stall reset", func() {
		Context("when both bodies are at rest after a step", func() {
			BeforeEach(func() {
				cfg.Gravity = 0
			})

			It("shows the seed positions in the same frame", func() {
				tickN(s, 1)
				f := s.Frame()
				Expect(f.Reset).To(BeTrue())
				Expect(f.Bodies[0].Position).To(Equal(seed1))
				Expect(f.Bodies[1].Position).To(Equal(seed2))
				Expect(s.Scene().Pendulum1.Position).To(Equal(seed1))
				Expect(s.Scene().Pendulum2.Position).To(Equal(seed2))
			})

			It("clears the trail", func() {
				tickN(s, 1)
				Expect(s.Frame().TrailLen).To(BeZero())
				Expect(s.Resets()).To(Equal(1))
			})
		})

		Context("with a generous stall threshold", func() {
			BeforeEach(func() {
				cfg.StallThreshold = 1e6
			})

			It("resets on every tick", func() {
				tickN(s, 5)
				Expect(s.Resets()).To(Equal(5))
				Expect(s.Frame().Bodies[1].Position).To(Equal(seed2))
			})
		})

		Context("while the pendulum swings", func() {
			It("does not reset", func() {
				tickN(s, 120)
				Expect(s.Resets()).To(BeZero())
			})
		})
	})
})
