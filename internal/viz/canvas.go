package viz

import (
	"math"
	"strings"

	"github.com/san-kum/numlab/internal/numeric"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells. Each cell holds 2x4 sub-pixels, so the
// drawable area is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
	return c
}

// PixelWidth is the horizontal sub-pixel resolution.
func (c *Canvas) PixelWidth() int { return c.Width * 2 }

// PixelHeight is the vertical sub-pixel resolution.
func (c *Canvas) PixelHeight() int { return c.Height * 4 }

// Set lights the sub-pixel at (x, y). Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the sub-pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] &= ^rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < brailleBlank {
		c.Grid[row][col] = brailleBlank
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// Lit counts the lit sub-pixels.
func (c *Canvas) Lit() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			bits := int(r - brailleBlank)
			for bits != 0 {
				n += bits & 1
				bits >>= 1
			}
		}
	}
	return n
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps world coordinates onto the sub-pixels of a canvas. The
// y axis points up in world space and down on the canvas.
type Viewport struct {
	MinX, MaxX, MinY, MaxY float64
}

// Fit returns a viewport enclosing pts with a relative margin on every side.
// When square is set both axes share one scale so circles stay round.
func Fit(pts []numeric.Point, margin float64, square bool) Viewport {
	minX, maxX, minY, maxY := numeric.Bounds(pts)
	v := Viewport{minX, maxX, minY, maxY}
	if square {
		cx, cy := (minX+maxX)/2, (minY+maxY)/2
		half := math.Max(maxX-minX, maxY-minY) / 2
		v = Viewport{cx - half, cx + half, cy - half, cy + half}
	}
	return v.pad(margin)
}

func (v Viewport) pad(margin float64) Viewport {
	w, h := v.MaxX-v.MinX, v.MaxY-v.MinY
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	v.MinX -= w * margin
	v.MaxX += w * margin
	v.MinY -= h * margin
	v.MaxY += h * margin
	if v.MaxX == v.MinX {
		v.MinX, v.MaxX = v.MinX-0.5, v.MaxX+0.5
	}
	if v.MaxY == v.MinY {
		v.MinY, v.MaxY = v.MinY-0.5, v.MaxY+0.5
	}
	return v
}

// Project maps p onto the sub-pixel grid of c.
func (v Viewport) Project(c *Canvas, p numeric.Point) (int, int) {
	pw, ph := float64(c.PixelWidth()-1), float64(c.PixelHeight()-1)
	x := (p.X - v.MinX) / (v.MaxX - v.MinX) * pw
	y := (v.MaxY - p.Y) / (v.MaxY - v.MinY) * ph
	return int(math.Round(x)), int(math.Round(y))
}

// Plot lights one sub-pixel per point.
func (c *Canvas) Plot(v Viewport, pts []numeric.Point) {
	for _, p := range pts {
		if !p.IsValid() {
			continue
		}
		x, y := v.Project(c, p)
		c.Set(x, y)
	}
}

// Polyline joins consecutive points with lines. Non-finite points break
// the line.
func (c *Canvas) Polyline(v Viewport, pts []numeric.Point) {
	prevOK := false
	var px, py int
	for _, p := range pts {
		if !p.IsValid() {
			prevOK = false
			continue
		}
		x, y := v.Project(c, p)
		if prevOK {
			c.DrawLine(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py, prevOK = x, y, true
	}
}

// Circle draws the outline of a world-space circle as a closed polyline.
func (c *Canvas) Circle(v Viewport, center numeric.Point, radius float64) {
	if radius <= 0 {
		x, y := v.Project(c, center)
		c.Set(x, y)
		return
	}
	const segments = 48
	pts := make([]numeric.Point, segments+1)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / segments
		pts[i] = numeric.Point{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	}
	c.Polyline(v, pts)
}
