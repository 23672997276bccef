package spectrum

import (
	"math"
	"sort"

	"github.com/san-kum/numlab/internal/numeric"
)

// ShapeFunc samples a closed curve at n points.
type ShapeFunc func(n int) []numeric.Point

// Shape is a named preset curve.
type Shape struct {
	Name          string
	DefaultPoints int
	Sample        ShapeFunc
}

var shapes = map[string]Shape{
	"square":   {Name: "square", DefaultPoints: 100, Sample: square},
	"triangle": {Name: "triangle", DefaultPoints: 100, Sample: triangle},
	"heart":    {Name: "heart", DefaultPoints: 200, Sample: heart},
	"star":     {Name: "star", DefaultPoints: 100, Sample: star},
	"circle":   {Name: "circle", DefaultPoints: 64, Sample: circle},
}

// LookupShape returns the preset with the given name.
func LookupShape(name string) (Shape, bool) {
	s, ok := shapes[name]
	return s, ok
}

// ShapeNames lists preset names in sorted order.
func ShapeNames() []string {
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func square(n int) []numeric.Point {
	return polygon([]numeric.Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}, n)
}

func triangle(n int) []numeric.Point {
	h := math.Sqrt(3) / 2
	return polygon([]numeric.Point{{X: 0, Y: 1}, {X: -h, Y: -0.5}, {X: h, Y: -0.5}}, n)
}

func star(n int) []numeric.Point {
	verts := make([]numeric.Point, 10)
	for i := range verts {
		r := 1.0
		if i%2 == 1 {
			r = 0.4
		}
		a := float64(i)*math.Pi/5 - math.Pi/2
		verts[i] = numeric.Point{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	return polygon(verts, n)
}

func heart(n int) []numeric.Point {
	out := make([]numeric.Point, n)
	for i := range out {
		t := 2 * math.Pi * float64(i) / float64(n)
		s := math.Sin(t)
		out[i] = numeric.Point{
			X: 16 * s * s * s / 17,
			Y: (13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)) / 17,
		}
	}
	return out
}

func circle(n int) []numeric.Point {
	out := make([]numeric.Point, n)
	for i := range out {
		t := 2 * math.Pi * float64(i) / float64(n)
		out[i] = numeric.Point{X: math.Cos(t), Y: math.Sin(t)}
	}
	return out
}

// polygon walks the closed outline through verts at uniform arc length.
func polygon(verts []numeric.Point, n int) []numeric.Point {
	if n < 1 {
		return nil
	}
	m := len(verts)
	cum := make([]float64, m+1)
	for i := 0; i < m; i++ {
		cum[i+1] = cum[i] + verts[i].Dist(verts[(i+1)%m])
	}
	perimeter := cum[m]

	out := make([]numeric.Point, n)
	edge := 0
	for i := range out {
		s := perimeter * float64(i) / float64(n)
		for edge < m-1 && s >= cum[edge+1] {
			edge++
		}
		a, b := verts[edge], verts[(edge+1)%m]
		f := (s - cum[edge]) / (cum[edge+1] - cum[edge])
		out[i] = numeric.Point{X: a.X + f*(b.X-a.X), Y: a.Y + f*(b.Y-a.Y)}
	}
	return out
}
