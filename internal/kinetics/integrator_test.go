package kinetics_test

import (
	"bytes"
	"errors"
	"math"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"github.com/san-kum/chemsim/internal/dynamo"
	"github.com/san-kum/chemsim/internal/integrators"
	"github.com/san-kum/chemsim/internal/kinetics"
	"github.com/san-kum/chemsim/internal/reaction"
)

func decaySystem(k float64) *reaction.System {
	sys := reaction.NewSystem()
	Expect(sys.AddCompound("A", "Reactant A", 1.0)).To(Succeed())
	Expect(sys.AddCompound("B", "Product B", 0.0)).To(Succeed())
	Expect(sys.AddReaction([]string{"A"}, []float64{1}, []string{"B"}, []float64{1}, k)).To(Succeed())
	return sys
}

func bimolecularSystem() *reaction.System {
	sys := reaction.NewSystem()
	Expect(sys.AddCompound("A", "Reactant A", 1.0)).To(Succeed())
	Expect(sys.AddCompound("B", "Reactant B", 0.5)).To(Succeed())
	Expect(sys.AddCompound("C", "Product C", 0.0)).To(Succeed())
	Expect(sys.AddReaction([]string{"A", "B"}, []float64{1, 1}, []string{"C"}, []float64{1}, 0.1)).To(Succeed())
	return sys
}

var _ = Describe("Integrator", func() {
	var integ *kinetics.Integrator

	BeforeEach(func() {
		integ = kinetics.New()
	})

	Describe("parameter validation", func() {
		DescribeTable("rejects invalid parameters before stepping",
			func(totalTime float64, steps int) {
				tr, err := integ.Run(decaySystem(0.1), totalTime, steps)
				Expect(err).To(MatchError(kinetics.ErrInvalidSimulationParameters))
				Expect(tr).To(BeNil())

				var perr *kinetics.ParameterError
				Expect(errors.As(err, &perr)).To(BeTrue())
				Expect(perr.Steps).To(Equal(steps))
			},
			Entry("zero time", 0.0, 10),
			Entry("negative time", -1.0, 10),
			Entry("NaN time", math.NaN(), 10),
			Entry("infinite time", math.Inf(1), 10),
			Entry("zero steps", 1.0, 0),
			Entry("negative steps", 1.0, -5),
		)

		It("accepts a single step", func() {
			tr, err := integ.Run(decaySystem(0.1), 1.0, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.TimePoints).To(Equal([]float64{0, 1}))
		})
	})

	Describe("first-order decay A -> B with k = 0.1", func() {
		var tr *kinetics.Trajectory

		BeforeEach(func() {
			var err error
			tr, err = integ.Run(decaySystem(0.1), 10, 100)
			Expect(err).NotTo(HaveOccurred())
		})

		It("takes one Euler step of size 0.1 into row 1", func() {
			Expect(tr.Row(1)[0]).To(BeNumerically("~", 0.99, 1e-12))
			Expect(tr.Row(1)[1]).To(BeNumerically("~", 0.01, 1e-12))
		})

		It("ends close to exp(-1)", func() {
			// Euler gives (1 - 0.01)^100 = 0.36603, exact is 0.36788.
			Expect(tr.Final()[0]).To(BeNumerically("~", math.Exp(-1), 3e-3))
			Expect(tr.Final()[0]).To(BeNumerically("~", math.Pow(0.99, 100), 1e-12))
		})

		It("labels the columns", func() {
			Expect(tr.Formulas).To(Equal([]string{"A", "B"}))
			Expect(tr.Names).To(Equal([]string{"Reactant A", "Product B"}))
			Expect(tr.Dt()).To(BeNumerically("~", 0.1, 1e-15))
		})
	})

	Describe("shape", func() {
		It("has steps+1 rows of num_compounds columns and a uniform time axis", func() {
			sys := bimolecularSystem()
			steps := 250
			total := 7.5
			tr, err := integ.Run(sys, total, steps)
			Expect(err).NotTo(HaveOccurred())

			Expect(tr.TimePoints).To(HaveLen(steps + 1))
			Expect(tr.Concentrations).To(HaveLen(steps + 1))
			Expect(tr.Steps()).To(Equal(steps))
			for _, row := range tr.Concentrations {
				Expect(row).To(HaveLen(sys.NumCompounds()))
			}

			Expect(tr.TimePoints[0]).To(Equal(0.0))
			Expect(tr.TimePoints[steps]).To(Equal(total))
			dt := total / float64(steps)
			for i := 1; i <= steps; i++ {
				Expect(tr.TimePoints[i]).To(BeNumerically(">", tr.TimePoints[i-1]))
				Expect(tr.TimePoints[i] - tr.TimePoints[i-1]).To(BeNumerically("~", dt, 1e-12))
			}
		})
	})

	Describe("initial row", func() {
		It("equals the system's initial state exactly", func() {
			sys := bimolecularSystem()
			tr, err := integ.Run(sys, 5, 50)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Row(0)).To(Equal(sys.InitialState()))
		})

		It("is not shared with the system or later rows", func() {
			sys := decaySystem(1)
			tr, err := integ.Run(sys, 1, 4)
			Expect(err).NotTo(HaveOccurred())

			tr.Row(0)[0] = 99
			Expect(sys.InitialState()[0]).To(Equal(1.0))
			Expect(sys.Compound(0).Concentration).To(Equal(1.0))
			Expect(tr.Row(1)[0]).To(BeNumerically("~", 0.75, 1e-15))
		})
	})

	Describe("determinism", func() {
		It("produces identical trajectories for identical inputs", func() {
			sys := bimolecularSystem()
			Expect(sys.AddReaction([]string{"C"}, []float64{1}, []string{"A", "B"}, []float64{1, 1}, 0.05)).To(Succeed())

			a, err := integ.Run(sys, 20, 400)
			Expect(err).NotTo(HaveOccurred())
			b, err := kinetics.New().Run(sys, 20, 400)
			Expect(err).NotTo(HaveOccurred())

			Expect(b.TimePoints).To(Equal(a.TimePoints))
			Expect(b.Concentrations).To(Equal(a.Concentrations))
		})
	})

	Describe("mass conservation", func() {
		It("keeps A + C and B + C constant for A + B -> C", func() {
			tr, err := integ.Run(bimolecularSystem(), 100, 1000)
			Expect(err).NotTo(HaveOccurred())

			for i, row := range tr.Concentrations {
				Expect(row[0]+row[2]).To(BeNumerically("~", 1.0, 1e-12), "A+C at step %d", i)
				Expect(row[1]+row[2]).To(BeNumerically("~", 0.5, 1e-12), "B+C at step %d", i)
			}
		})

		It("keeps A + 2*A2 constant for 2A -> A2", func() {
			sys := reaction.NewSystem()
			Expect(sys.AddCompound("A", "", 1.0)).To(Succeed())
			Expect(sys.AddCompound("A2", "", 0.2)).To(Succeed())
			Expect(sys.AddReaction([]string{"A"}, []float64{2}, []string{"A2"}, []float64{1}, 0.5)).To(Succeed())

			tr, err := integ.Run(sys, 10, 500)
			Expect(err).NotTo(HaveOccurred())
			for _, row := range tr.Concentrations {
				Expect(row[0] + 2*row[1]).To(BeNumerically("~", 1.4, 1e-12))
			}
			Expect(tr.Final()[0]).To(BeNumerically("<", 1.0))
		})
	})

	Describe("convergence", func() {
		It("shrinks the error against exp(-kt) every time steps double", func() {
			k := 0.5
			prev := math.Inf(1)
			for _, steps := range []int{10, 20, 40, 80, 160} {
				tr, err := integ.Run(decaySystem(k), 4, steps)
				Expect(err).NotTo(HaveOccurred())

				maxErr := 0.0
				for i, t := range tr.TimePoints {
					maxErr = math.Max(maxErr, math.Abs(tr.Row(i)[0]-math.Exp(-k*t)))
				}
				Expect(maxErr).To(BeNumerically("<", prev))
				prev = maxErr
			}
		})
	})

	Describe("zero rate constant", func() {
		It("never changes any concentration", func() {
			sys := reaction.NewSystem()
			Expect(sys.AddCompound("A", "", 0.7)).To(Succeed())
			Expect(sys.AddCompound("B", "", 0.3)).To(Succeed())
			Expect(sys.AddReaction([]string{"A", "B"}, []float64{1, 2}, []string{"B"}, []float64{3}, 0)).To(Succeed())

			tr, err := integ.Run(sys, 50, 200)
			Expect(err).NotTo(HaveOccurred())
			for _, row := range tr.Concentrations {
				Expect(row).To(Equal(dynamo.State{0.7, 0.3}))
			}
		})
	})

	Describe("species on both sides", func() {
		It("leaves a pure catalyst unchanged", func() {
			sys := reaction.NewSystem()
			Expect(sys.AddCompound("S", "substrate", 1.0)).To(Succeed())
			Expect(sys.AddCompound("E", "enzyme", 0.1)).To(Succeed())
			Expect(sys.AddCompound("P", "product", 0.0)).To(Succeed())
			Expect(sys.AddReaction([]string{"S", "E"}, []float64{1, 1}, []string{"P", "E"}, []float64{1, 1}, 2)).To(Succeed())

			tr, err := integ.Run(sys, 5, 100)
			Expect(err).NotTo(HaveOccurred())
			for _, row := range tr.Concentrations {
				Expect(row[1]).To(Equal(0.1))
			}
			Expect(tr.Final()[2]).To(BeNumerically(">", 0))
		})

		It("grows the autocatalyst in A + B -> 2B", func() {
			sys := reaction.NewSystem()
			Expect(sys.AddCompound("A", "", 1.0)).To(Succeed())
			Expect(sys.AddCompound("B", "", 0.01)).To(Succeed())
			Expect(sys.AddReaction([]string{"A", "B"}, []float64{1, 1}, []string{"B"}, []float64{2}, 1)).To(Succeed())

			tr, err := integ.Run(sys, 10, 1000)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Row(1)[1]).To(BeNumerically(">", tr.Row(0)[1]))
			Expect(tr.Final()[0] + tr.Final()[1]).To(BeNumerically("~", 1.01, 1e-12))
			Expect(tr.Final()[1]).To(BeNumerically(">", 0.9))
		})
	})

	Describe("numerical fidelity", func() {
		It("returns negative concentrations instead of clamping", func() {
			tr, err := integ.Run(decaySystem(3), 1, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Final()[0]).To(BeNumerically("~", -2.0, 1e-15))
			Expect(tr.Final()[1]).To(BeNumerically("~", 3.0, 1e-15))
		})
	})

	Describe("alternate stepper", func() {
		It("runs RK4 through the same loop", func() {
			rk := kinetics.New(kinetics.WithStepper(func() dynamo.Integrator { return integrators.NewRK4() }))
			tr, err := rk.Run(decaySystem(0.1), 10, 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Final()[0]).To(BeNumerically("~", math.Exp(-1), 1e-9))
		})
	})

	Describe("trajectory accessors", func() {
		It("exposes series and columns by formula", func() {
			tr, err := integ.Run(decaySystem(0.1), 10, 100)
			Expect(err).NotTo(HaveOccurred())

			col, ok := tr.Column("B")
			Expect(ok).To(BeTrue())
			Expect(col).To(Equal(1))
			_, ok = tr.Column("Z")
			Expect(ok).To(BeFalse())

			series := tr.Series(col)
			Expect(series).To(HaveLen(101))
			Expect(series[1]).To(BeNumerically("~", 0.01, 1e-12))
			Expect(tr.Table()).To(HaveLen(101))
			Expect(tr.NumCompounds()).To(Equal(2))
		})
	})

	Describe("stepper contract", func() {
		It("aborts with a StepError when a stepper changes the state length", func() {
			bad := kinetics.New(kinetics.WithStepper(func() dynamo.Integrator { return truncating{} }))
			tr, err := bad.Run(decaySystem(0.1), 1, 10)
			Expect(tr).To(BeNil())
			Expect(errors.Is(err, dynamo.ErrDimensionMismatch)).To(BeTrue())

			var stepErr *dynamo.StepError
			Expect(errors.As(err, &stepErr)).To(BeTrue())
			Expect(stepErr.Step).To(Equal(1))
		})
	})

	Describe("concurrent use", func() {
		It("gives identical trajectories when one system is run from many goroutines", func() {
			sys := bimolecularSystem()
			want, err := integ.Run(sys, 20, 500)
			Expect(err).NotTo(HaveOccurred())

			const workers = 8
			results := make([]*kinetics.Trajectory, workers)
			errs := make([]error, workers)
			var wg sync.WaitGroup
			for w := 0; w < workers; w++ {
				wg.Add(1)
				go func(w int) {
					defer GinkgoRecover()
					defer wg.Done()
					runner := integ
					if w%2 == 1 {
						runner = kinetics.New(kinetics.WithStepper(func() dynamo.Integrator { return integrators.NewEuler() }))
					}
					results[w], errs[w] = runner.Run(sys, 20, 500)
				}(w)
			}
			wg.Wait()

			for w := 0; w < workers; w++ {
				Expect(errs[w]).NotTo(HaveOccurred())
				Expect(results[w].TimePoints).To(Equal(want.TimePoints))
				Expect(results[w].Concentrations).To(Equal(want.Concentrations))
			}
			Expect(sys.InitialState()).To(Equal(dynamo.State{1.0, 0.5, 0.0}))
		})
	})

	Describe("overflow", func() {
		It("keeps running and warns once when the state becomes non-finite", func() {
			sys := reaction.NewSystem()
			Expect(sys.AddCompound("A", "", 1e200)).To(Succeed())
			Expect(sys.AddCompound("A2", "", 0)).To(Succeed())
			Expect(sys.AddReaction([]string{"A"}, []float64{2}, []string{"A2"}, []float64{1}, 1)).To(Succeed())

			var buf bytes.Buffer
			logged := kinetics.New(kinetics.WithLogger(zerolog.New(&buf)))
			tr, err := logged.Run(sys, 3, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.TimePoints).To(HaveLen(4))
			Expect(tr.Row(1).IsValid()).To(BeFalse())

			Expect(bytes.Count(buf.Bytes(), []byte("state became non-finite"))).To(Equal(1))
			Expect(buf.String()).To(ContainSubstring(`"step":1`))
			Expect(buf.String()).To(ContainSubstring("invalid state"))
		})
	})
})

// truncating drops the last entry of every state it is given.
type truncating struct{}

func (truncating) Name() string { return "truncating" }
func (truncating) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	return x[:len(x)-1].Clone()
}
