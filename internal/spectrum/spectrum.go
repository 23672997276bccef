package spectrum

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-vecmath"

	"github.com/san-kum/numlab/internal/numeric"
)

// Coefficient is one rotating phasor amp·e^{i(freq·t + phase)}.
type Coefficient struct {
	Freq      int
	Amplitude float64
	Phase     float64
}

// At returns the phasor's tip at time t, relative to its center.
func (c Coefficient) At(t float64) numeric.Point {
	theta := float64(c.Freq)*t + c.Phase
	return numeric.Point{X: c.Amplitude * math.Cos(theta), Y: c.Amplitude * math.Sin(theta)}
}

// Spectrum is a coefficient list sorted by amplitude descending, ties broken
// by ascending frequency.
type Spectrum []Coefficient

// Truncate returns the first k coefficients, with k clamped to [0, len(s)].
func (s Spectrum) Truncate(k int) Spectrum {
	return s[:clamp(k, len(s))]
}

// EnergyFraction reports the share of Σ amplitude² carried by the first k
// coefficients. An all-zero spectrum reports 1.
func (s Spectrum) EnergyFraction(k int) float64 {
	k = clamp(k, len(s))
	var head, total float64
	for i, c := range s {
		e := c.Amplitude * c.Amplitude
		total += e
		if i < k {
			head += e
		}
	}
	if total == 0 {
		return 1
	}
	return head / total
}

// Decompose computes the DFT of samples for frequencies 0..N-1.
func Decompose(samples []numeric.Point) (Spectrum, error) {
	if err := validate("Decompose", samples); err != nil {
		return nil, err
	}
	freqs := make([]int, len(samples))
	for k := range freqs {
		freqs[k] = k
	}
	return transform(samples, freqs), nil
}

// DecomposeCentered computes the DFT for the symmetric frequencies
// -maxFreq..maxFreq. With N odd and maxFreq = (N-1)/2 it spans the same
// space as Decompose.
func DecomposeCentered(samples []numeric.Point, maxFreq int) (Spectrum, error) {
	if err := validate("DecomposeCentered", samples); err != nil {
		return nil, err
	}
	if maxFreq < 0 {
		return nil, numeric.Errorf("DecomposeCentered", numeric.InvalidInput, "maxFreq must be >= 0, got %d", maxFreq)
	}
	freqs := make([]int, 0, 2*maxFreq+1)
	for k := -maxFreq; k <= maxFreq; k++ {
		freqs = append(freqs, k)
	}
	return transform(samples, freqs), nil
}

// Reconstruct sums the first k coefficients at time t.
func Reconstruct(coeffs Spectrum, k int, t float64) numeric.Point {
	var p numeric.Point
	for _, c := range coeffs.Truncate(k) {
		p = p.Add(c.At(t))
	}
	return p
}

func validate(op string, samples []numeric.Point) error {
	if len(samples) < 2 {
		return numeric.Errorf(op, numeric.InvalidInput, "need at least 2 samples, got %d", len(samples))
	}
	for i, p := range samples {
		if !p.IsValid() {
			return numeric.Errorf(op, numeric.InvalidInput, "sample %d is not finite", i)
		}
	}
	return nil
}

func transform(samples []numeric.Point, freqs []int) Spectrum {
	n := len(samples)
	inv := 1 / float64(n)
	re := make([]float64, len(freqs))
	im := make([]float64, len(freqs))

	for j, k := range freqs {
		var sr, si float64
		for i, p := range samples {
			phi := 2 * math.Pi * float64(k) * float64(i) / float64(n)
			sin, cos := math.Sincos(phi)
			sr += p.X*cos + p.Y*sin
			si += -p.X*sin + p.Y*cos
		}
		re[j] = sr * inv
		im[j] = si * inv
	}

	amp := make([]float64, len(freqs))
	vecmath.Magnitude(amp, re, im)

	out := make(Spectrum, len(freqs))
	for j, k := range freqs {
		out[j] = Coefficient{Freq: k, Amplitude: amp[j], Phase: phase(re[j], im[j], amp[j])}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Amplitude != out[b].Amplitude {
			return out[a].Amplitude > out[b].Amplitude
		}
		return out[a].Freq < out[b].Freq
	})
	return out
}

// phase maps atan2 into (-π, π] and pins zero-amplitude terms to 0.
func phase(re, im, amp float64) float64 {
	if amp == 0 {
		return 0
	}
	p := math.Atan2(im, re)
	if p <= -math.Pi {
		p = math.Pi
	}
	return p
}

func clamp(k, n int) int {
	if k < 0 {
		return 0
	}
	if k > n {
		return n
	}
	return k
}
