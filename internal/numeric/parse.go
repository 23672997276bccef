package numeric

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePoints reads "x:y,x:y,..." into points. Whitespace is ignored.
func ParsePoints(s string) ([]Point, error) {
	var pts []Point
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		xs, ys, ok := strings.Cut(field, ":")
		if !ok {
			return nil, Errorf("ParsePoints", InvalidInput, "point %q is not x:y", field)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return nil, Errorf("ParsePoints", InvalidInput, "bad x in %q", field)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return nil, Errorf("ParsePoints", InvalidInput, "bad y in %q", field)
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts, nil
}

// FormatPoints is the inverse of ParsePoints.
func FormatPoints(pts []Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%g:%g", p.X, p.Y)
	}
	return strings.Join(parts, ",")
}
