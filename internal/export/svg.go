package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/quadrature"
	"github.com/san-kum/numlab/internal/spectrum"
	"github.com/san-kum/numlab/internal/viz"
)

const background = "#0a0a0a"

// Series is one named polyline of a chart.
type Series struct {
	Name   string
	Points []numeric.Point
	Color  string
	// Markers draws a dot at every point instead of joining them.
	Markers bool
}

// frame maps world coordinates onto an SVG viewport of the given size.
type frame struct {
	v             viz.Viewport
	width, height float64
}

func newFrame(v viz.Viewport, width, height int) frame {
	return frame{v: v, width: float64(width), height: float64(height)}
}

func (f frame) xy(p numeric.Point) (float64, float64) {
	x := (p.X - f.v.MinX) / (f.v.MaxX - f.v.MinX) * f.width
	y := f.height - (p.Y-f.v.MinY)/(f.v.MaxY-f.v.MinY)*f.height
	return x, y
}

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

func (f frame) path(sb *strings.Builder, pts []numeric.Point, stroke string, closed bool) {
	started := false
	for _, p := range pts {
		if !p.IsValid() {
			continue
		}
		x, y := f.xy(p)
		if !started {
			fmt.Fprintf(sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M%.1f,%.1f`, stroke, x, y)
			started = true
			continue
		}
		fmt.Fprintf(sb, " L%.1f,%.1f", x, y)
	}
	if !started {
		return
	}
	if closed {
		sb.WriteString(" Z")
	}
	sb.WriteString("\"/>\n")
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := int(float64(canvas.PixelWidth()) * scale)
	height := int(float64(canvas.PixelHeight()) * scale)

	var sb strings.Builder
	header(&sb, width, height)
	sb.WriteString("<g fill=\"#00ff00\">\n")

	dotRadius := scale * 0.4
	for y := 0; y < canvas.PixelHeight(); y++ {
		for x := 0; x < canvas.PixelWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// CurvesSVG draws every series on shared axes with a 10% margin.
// It returns "" when no series has a finite point.
func CurvesSVG(series []Series, width, height int) string {
	var all []numeric.Point
	for _, s := range series {
		for _, p := range s.Points {
			if p.IsValid() {
				all = append(all, p)
			}
		}
	}
	if len(all) == 0 {
		return ""
	}
	f := newFrame(viz.Fit(all, 0.1, false), width, height)

	var sb strings.Builder
	header(&sb, width, height)
	for _, s := range series {
		color := s.Color
		if color == "" {
			color = "#00ffff"
		}
		if s.Name != "" {
			fmt.Fprintf(&sb, "<g id=%q>\n", s.Name)
		} else {
			sb.WriteString("<g>\n")
		}
		if s.Markers {
			for _, p := range s.Points {
				if !p.IsValid() {
					continue
				}
				x, y := f.xy(p)
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"3\" fill=\"%s\"/>\n", x, y, color)
			}
		} else {
			f.path(&sb, s.Points, color, false)
		}
		sb.WriteString("</g>\n")
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// PanelsSVG draws the integrand curve over the quadrature panels that
// approximate it.
func PanelsSVG(curve []numeric.Point, panels []quadrature.Panel, width, height int) string {
	const samplesPerPanel = 16

	outlines := make([][]numeric.Point, len(panels))
	all := append([]numeric.Point(nil), curve...)
	for i, p := range panels {
		pts := []numeric.Point{{X: p.X0, Y: 0}}
		for j := 0; j <= samplesPerPanel; j++ {
			x := p.X0 + (p.X1-p.X0)*float64(j)/samplesPerPanel
			pts = append(pts, numeric.Point{X: x, Y: p.Height(x)})
		}
		pts = append(pts, numeric.Point{X: p.X1, Y: 0})
		outlines[i] = pts
		all = append(all, pts...)
	}
	if len(all) == 0 {
		return ""
	}
	f := newFrame(viz.Fit(all, 0.1, false), width, height)

	var sb strings.Builder
	header(&sb, width, height)
	sb.WriteString("<g fill=\"#00ff88\" fill-opacity=\"0.25\" stroke=\"#00ff88\">\n")
	for _, pts := range outlines {
		sb.WriteString("<polygon points=\"")
		for j, p := range pts {
			x, y := f.xy(p)
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		}
		sb.WriteString("\"/>\n")
	}
	sb.WriteString("</g>\n")
	f.path(&sb, curve, "#ff00ff", false)
	sb.WriteString("</svg>")
	return sb.String()
}

// EpicycleSVG draws the chain of the first k coefficients at time t over
// the full reconstructed period.
func EpicycleSVG(coeffs spectrum.Spectrum, k int, t float64, width, height int) string {
	if len(coeffs) == 0 {
		return ""
	}
	const traceSteps = 512
	trace := spectrum.Trace(coeffs, k, 2*math.Pi, traceSteps)
	chain := spectrum.Epicycles(coeffs, k, t)

	extent := append([]numeric.Point(nil), trace...)
	for _, c := range chain {
		extent = append(extent,
			numeric.Point{X: c.Center.X - c.Radius, Y: c.Center.Y - c.Radius},
			numeric.Point{X: c.Center.X + c.Radius, Y: c.Center.Y + c.Radius},
		)
	}
	f := newFrame(viz.Fit(extent, 0.05, true), width, height)
	scale := f.width / (f.v.MaxX - f.v.MinX)

	var sb strings.Builder
	header(&sb, width, height)
	sb.WriteString("<g fill=\"none\" stroke=\"#00ffff\" stroke-opacity=\"0.5\">\n")
	for _, c := range chain {
		if c.Freq == 0 {
			continue
		}
		cx, cy := f.xy(c.Center)
		tx, ty := f.xy(c.Tip)
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, c.Radius*scale)
		fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n", cx, cy, tx, ty)
	}
	sb.WriteString("</g>\n")
	f.path(&sb, trace, "#ff00ff", true)
	sb.WriteString("</svg>")
	return sb.String()
}

// WriteFile saves an SVG document.
func WriteFile(path, svg string) error {
	if svg == "" {
		return fmt.Errorf("nothing to export")
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}
