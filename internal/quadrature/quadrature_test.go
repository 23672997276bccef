package quadrature

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/san-kum/numlab/internal/numeric"
)

func identity(x float64) float64 { return x }

func TestIntegrate_TrapezoidLinearIsExact(t *testing.T) {
	res, err := Integrate(identity, 0, 2, 4, Trapezoid)
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if res.Approx != 2.0 {
		t.Errorf("got %v, want 2.0", res.Approx)
	}
	if res.N != 4 || res.Rule != Trapezoid {
		t.Errorf("unexpected result header: %+v", res)
	}
}

func TestIntegrate_SimpsonBeatsMidpoint(t *testing.T) {
	simp, err := Integrate(math.Sin, 0, math.Pi, 8, Simpson)
	if err != nil {
		t.Fatal(err)
	}
	mid, err := Integrate(math.Sin, 0, math.Pi, 8, Midpoint)
	if err != nil {
		t.Fatal(err)
	}
	if simp.AbsError >= mid.AbsError {
		t.Errorf("simpson error %g should be below midpoint error %g", simp.AbsError, mid.AbsError)
	}
}

func TestIntegrate_SimpsonExactForCubics(t *testing.T) {
	cube := func(x float64) float64 { return x * x * x }
	got, n, err := Approximate(cube, 0, 1, 2, Simpson)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("n = %d, want 2", n)
	}
	if math.Abs(got-0.25) > 1e-15 {
		t.Errorf("got %.17f, want 0.25", got)
	}
}

func TestIntegrate_SimpsonRoundsOddUp(t *testing.T) {
	odd, err := Integrate(math.Exp, 0, 1, 5, Simpson)
	if err != nil {
		t.Fatal(err)
	}
	even, err := Integrate(math.Exp, 0, 1, 6, Simpson)
	if err != nil {
		t.Fatal(err)
	}
	if odd.N != 6 {
		t.Errorf("N = %d, want 6", odd.N)
	}
	if odd.Approx != even.Approx {
		t.Errorf("odd n gave %v, n+1 gave %v", odd.Approx, even.Approx)
	}
}

func TestIntegrate_Rectangles(t *testing.T) {
	sq := func(x float64) float64 { return x * x }
	tests := []struct {
		rule Rule
		want float64
	}{
		// [0,2] with n=2: nodes at 0,1 / 1,2 / 0.5,1.5.
		{Left, 1},
		{Right, 5},
		{Midpoint, 2.5},
		{Trapezoid, 3},
	}
	for _, tt := range tests {
		t.Run(tt.rule.String(), func(t *testing.T) {
			got, _, err := Approximate(sq, 0, 2, 2, tt.rule)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tt.want) > 1e-15 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntegrate_Errors(t *testing.T) {
	tests := []struct {
		name string
		f    Func
		a, b float64
		n    int
		rule Rule
	}{
		{"reversed bounds", math.Sin, 1, 0, 4, Trapezoid},
		{"empty interval", math.Sin, 1, 1, 4, Trapezoid},
		{"zero n", math.Sin, 0, 1, 0, Midpoint},
		{"negative n", math.Sin, 0, 1, -3, Simpson},
		{"nil func", nil, 0, 1, 4, Left},
		{"nan bound", math.Sin, math.NaN(), 1, 4, Left},
		{"inf bound", math.Sin, 0, math.Inf(1), 4, Right},
		{"unknown rule", math.Sin, 0, 1, 4, Rule(42)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Integrate(tt.f, tt.a, tt.b, tt.n, tt.rule)
			if !errors.Is(err, numeric.ErrInvalidInput) {
				t.Errorf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestConvergence_ErrorShrinks(t *testing.T) {
	for _, rule := range Rules() {
		t.Run(rule.String(), func(t *testing.T) {
			results, err := Convergence(math.Sin, 0, math.Pi, rule, nil)
			if err != nil {
				t.Fatal(err)
			}
			if len(results) != len(DefaultConvergenceSteps) {
				t.Fatalf("got %d results, want %d", len(results), len(DefaultConvergenceSteps))
			}
			for i := 1; i < len(results); i++ {
				if results[i].Reference != results[0].Reference {
					t.Fatal("reference should be shared across the sweep")
				}
				if results[i].AbsError > results[i-1].AbsError+1e-12 {
					t.Errorf("n=%d error %g exceeds n=%d error %g",
						results[i].N, results[i].AbsError, results[i-1].N, results[i-1].AbsError)
				}
			}
			if last := results[len(results)-1]; last.AbsError > 1e-3 {
				t.Errorf("error at n=%d still %g", last.N, last.AbsError)
			}
		})
	}
}

func TestConvergence_PropagatesBadStep(t *testing.T) {
	_, err := Convergence(math.Sin, 0, 1, Left, []int{4, 0})
	if !errors.Is(err, numeric.ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

func TestReference_MatchesGaussLegendre(t *testing.T) {
	for _, name := range IntegrandNames() {
		in, _ := LookupIntegrand(name)
		t.Run(name, func(t *testing.T) {
			want := quad.Fixed(in.F, in.A, in.B, 40, nil, 0)
			got := Reference(in.F, in.A, in.B)
			if math.Abs(got-want) > 1e-8 {
				t.Errorf("reference %.12f, gauss-legendre %.12f", got, want)
			}
		})
	}
}

func TestIntegrand_Exact(t *testing.T) {
	for _, name := range IntegrandNames() {
		in, _ := LookupIntegrand(name)
		exact, ok := in.Exact(in.A, in.B)
		if !ok {
			continue
		}
		t.Run(name, func(t *testing.T) {
			res, err := Integrate(in.F, in.A, in.B, 64, Simpson)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(res.Reference-exact) > 1e-8 {
				t.Errorf("reference %.12f, exact %.12f", res.Reference, exact)
			}
			if math.Abs(res.Approx-exact) > 1e-5 {
				t.Errorf("simpson %.12f, exact %.12f", res.Approx, exact)
			}
		})
	}
}

func TestIntegrand_GaussianHasNoClosedForm(t *testing.T) {
	in, ok := LookupIntegrand("gaussian")
	if !ok {
		t.Fatal("gaussian preset missing")
	}
	if _, ok := in.Exact(in.A, in.B); ok {
		t.Error("gaussian should not report a closed form")
	}
}

func TestPanels_AreaMatchesApproximation(t *testing.T) {
	in, _ := LookupIntegrand("wave")
	for _, rule := range Rules() {
		t.Run(rule.String(), func(t *testing.T) {
			panels, err := Panels(in.F, in.A, in.B, 7, rule)
			if err != nil {
				t.Fatal(err)
			}
			want, n, err := Approximate(in.F, in.A, in.B, 7, rule)
			if err != nil {
				t.Fatal(err)
			}
			expected := n
			if rule == Simpson {
				expected = n / 2
			}
			if len(panels) != expected {
				t.Fatalf("got %d panels, want %d", len(panels), expected)
			}
			sum := 0.0
			for _, p := range panels {
				sum += p.Area()
			}
			if math.Abs(sum-want) > 1e-12 {
				t.Errorf("panel area %.15f, approximation %.15f", sum, want)
			}
		})
	}
}

func TestPanel_HeightPassesThroughSamples(t *testing.T) {
	panels, err := Panels(math.Exp, 0, 1, 2, Simpson)
	if err != nil {
		t.Fatal(err)
	}
	p := panels[0]
	for _, c := range []struct{ x, y float64 }{{p.X0, p.Y0}, {(p.X0 + p.X1) / 2, p.YMid}, {p.X1, p.Y1}} {
		if got := p.Height(c.x); math.Abs(got-c.y) > 1e-12 {
			t.Errorf("Height(%g) = %g, want %g", c.x, got, c.y)
		}
	}
}

func TestParseRule(t *testing.T) {
	tests := map[string]Rule{
		"left":        Left,
		"Right":       Right,
		"midpoint":    Midpoint,
		"trapezoidal": Trapezoid,
		" simpson ":   Simpson,
	}
	for in, want := range tests {
		got, err := ParseRule(in)
		if err != nil {
			t.Errorf("ParseRule(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseRule(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseRule("romberg"); !errors.Is(err, numeric.ErrInvalidInput) {
		t.Errorf("unknown rule: got %v", err)
	}
}
