package spectrum

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/numlab/internal/numeric"
)

func sampleTime(i, n int) float64 { return 2 * math.Pi * float64(i) / float64(n) }

func expectRoundTrip(s Spectrum, samples []numeric.Point) {
	for i, want := range samples {
		got := Reconstruct(s, len(s), sampleTime(i, len(samples)))
		Expect(got.X).To(BeNumerically("~", want.X, 1e-6), "x at sample %d", i)
		Expect(got.Y).To(BeNumerically("~", want.Y, 1e-6), "y at sample %d", i)
	}
}

var _ = Describe("Decompose", func() {
	for _, name := range ShapeNames() {
		shape, _ := LookupShape(name)

		Context("for the "+name+" preset", func() {
			var (
				samples []numeric.Point
				s       Spectrum
			)

			BeforeEach(func() {
				samples = shape.Sample(shape.DefaultPoints)
				var err error
				s, err = Decompose(samples)
				Expect(err).NotTo(HaveOccurred())
			})

			It("returns one coefficient per sample", func() {
				Expect(s).To(HaveLen(len(samples)))
			})

			It("reproduces every sample with all coefficients", func() {
				expectRoundTrip(s, samples)
			})

			It("keeps amplitudes non-negative and phases in (-π, π]", func() {
				for _, c := range s {
					Expect(c.Amplitude).To(BeNumerically(">=", 0))
					Expect(c.Phase).To(BeNumerically(">", -math.Pi))
					Expect(c.Phase).To(BeNumerically("<=", math.Pi))
				}
			})

			It("sorts by amplitude then frequency", func() {
				for i := 1; i < len(s); i++ {
					prev, cur := s[i-1], s[i]
					Expect(prev.Amplitude).To(BeNumerically(">=", cur.Amplitude))
					if prev.Amplitude == cur.Amplitude {
						Expect(prev.Freq).To(BeNumerically("<", cur.Freq))
					}
				}
			})

			It("matches the FFT bin magnitudes", func() {
				z := make([]complex128, len(samples))
				for i, p := range samples {
					z[i] = complex(p.X, p.Y)
				}
				bins := fft.FFT(z)
				n := float64(len(samples))
				for _, c := range s {
					Expect(c.Amplitude).To(BeNumerically("~", cmplx.Abs(bins[c.Freq])/n, 1e-9))
				}
			})
		})
	}

	It("finds a unit circle in a single frequency-1 term", func() {
		s, err := Decompose(circle(32))
		Expect(err).NotTo(HaveOccurred())
		Expect(s[0].Freq).To(Equal(1))
		Expect(s[0].Amplitude).To(BeNumerically("~", 1, 1e-12))
		Expect(s[0].Phase).To(BeNumerically("~", 0, 1e-12))
		Expect(s[1].Amplitude).To(BeNumerically("<", 1e-12))
	})

	It("puts a constant offset into frequency 0", func() {
		samples := make([]numeric.Point, 8)
		for i := range samples {
			samples[i] = numeric.Point{X: 3, Y: 4}
		}
		s, err := Decompose(samples)
		Expect(err).NotTo(HaveOccurred())
		Expect(s[0].Freq).To(Equal(0))
		Expect(s[0].Amplitude).To(BeNumerically("~", 5, 1e-12))
	})

	It("orders equal amplitudes by frequency and zeroes their phase", func() {
		s, err := Decompose(make([]numeric.Point, 6))
		Expect(err).NotTo(HaveOccurred())
		for i, c := range s {
			Expect(c.Freq).To(Equal(i))
			Expect(c.Amplitude).To(Equal(0.0))
			Expect(c.Phase).To(Equal(0.0))
		}
	})

	DescribeTable("rejects malformed input",
		func(samples []numeric.Point) {
			_, err := Decompose(samples)
			Expect(err).To(MatchError(numeric.ErrInvalidInput))
		},
		Entry("no samples", nil),
		Entry("one sample", []numeric.Point{{X: 1, Y: 1}}),
		Entry("NaN sample", []numeric.Point{{X: 0, Y: 0}, {X: math.NaN(), Y: 1}}),
		Entry("infinite sample", []numeric.Point{{X: 0, Y: math.Inf(-1)}, {X: 1, Y: 1}}),
	)
})

var _ = Describe("phase", func() {
	It("maps -π to π", func() {
		Expect(phase(-1, math.Copysign(0, -1), 1)).To(Equal(math.Pi))
	})

	It("is zero for a zero amplitude", func() {
		Expect(phase(0, 0, 0)).To(Equal(0.0))
	})
})

var _ = Describe("DecomposeCentered", func() {
	It("reproduces an odd-length curve with frequencies -K..K", func() {
		samples := star(101)
		s, err := DecomposeCentered(samples, 50)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(HaveLen(101))
		expectRoundTrip(s, samples)
	})

	It("contains negative frequencies", func() {
		s, err := DecomposeCentered(heart(64), 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(ContainElement(HaveField("Freq", -5)))
	})

	It("rejects a negative bound", func() {
		_, err := DecomposeCentered(circle(8), -1)
		Expect(err).To(MatchError(numeric.ErrInvalidInput))
	})
})

var _ = Describe("Reconstruct", func() {
	var s Spectrum

	BeforeEach(func() {
		var err error
		s, err = Decompose(heart(40))
		Expect(err).NotTo(HaveOccurred())
	})

	It("returns the origin for k <= 0", func() {
		Expect(Reconstruct(s, 0, 1.3)).To(Equal(numeric.Point{}))
		Expect(Reconstruct(s, -4, 1.3)).To(Equal(numeric.Point{}))
	})

	It("clamps k above the spectrum length", func() {
		Expect(Reconstruct(s, 1000, 0.7)).To(Equal(Reconstruct(s, len(s), 0.7)))
	})

	It("accumulates energy monotonically", func() {
		prev := 0.0
		for k := 0; k <= len(s); k++ {
			f := s.EnergyFraction(k)
			Expect(f).To(BeNumerically(">=", prev))
			prev = f
		}
		Expect(prev).To(BeNumerically("~", 1, 1e-12))
	})
})

var _ = Describe("Epicycles", func() {
	It("chains circles head to tail ending at the reconstruction", func() {
		s, err := Decompose(square(100))
		Expect(err).NotTo(HaveOccurred())

		chain := Epicycles(s, 12, 2.1)
		Expect(chain).To(HaveLen(12))
		Expect(chain[0].Center).To(Equal(numeric.Point{}))
		for i := 1; i < len(chain); i++ {
			Expect(chain[i].Center).To(Equal(chain[i-1].Tip))
			Expect(chain[i].Radius).To(Equal(s[i].Amplitude))
		}
		want := Reconstruct(s, 12, 2.1)
		Expect(chain[11].Tip.X).To(BeNumerically("~", want.X, 1e-12))
		Expect(chain[11].Tip.Y).To(BeNumerically("~", want.Y, 1e-12))
	})

	It("traces steps+1 points starting at t=0", func() {
		s, err := Decompose(triangle(30))
		Expect(err).NotTo(HaveOccurred())

		path := Trace(s, 5, 2, 20)
		Expect(path).To(HaveLen(21))
		Expect(path[0]).To(Equal(Reconstruct(s, 5, 0)))
		Expect(path[20]).To(Equal(Reconstruct(s, 5, 2)))
		Expect(Trace(s, 5, 2, 0)).To(BeNil())
	})
})

var _ = Describe("shapes", func() {
	It("samples each preset at its default resolution", func() {
		for _, name := range ShapeNames() {
			shape, ok := LookupShape(name)
			Expect(ok).To(BeTrue())
			pts := shape.Sample(shape.DefaultPoints)
			Expect(pts).To(HaveLen(shape.DefaultPoints), name)
			for _, p := range pts {
				Expect(p.IsValid()).To(BeTrue(), name)
			}
		}
	})

	It("keeps square samples on the outline", func() {
		for _, p := range square(100) {
			Expect(math.Max(math.Abs(p.X), math.Abs(p.Y))).To(BeNumerically("~", 1, 1e-12))
		}
	})

	It("does not know unnamed shapes", func() {
		_, ok := LookupShape("hexagon")
		Expect(ok).To(BeFalse())
	})
})
