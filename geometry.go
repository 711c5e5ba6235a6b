package folio

import (
	"math"
)

// circleSegments is the number of segments in a full circle path.
const circleSegments = 64

// ArcPath returns the points of a circular arc of the given radius that
// starts at the top of the circle and sweeps clockwise (on a Y-down screen)
// through fraction×2π. fraction is clamped to [0, 1]; zero yields nil.
func ArcPath(radius, fraction float64) []Vec2 {
	fraction = Clamp(fraction, 0, 1)
	if fraction == 0 {
		return nil
	}
	segs := int(math.Ceil(fraction * circleSegments))
	sweep := fraction * 2 * math.Pi
	pts := make([]Vec2, segs+1)
	for i := 0; i <= segs; i++ {
		theta := sweep * float64(i) / float64(segs)
		sin, cos := math.Sincos(theta)
		pts[i] = Vec2{radius * sin, -radius * cos}
	}
	return pts
}

// CirclePath returns a closed circle outline (first point not repeated).
func CirclePath(radius float64) []Vec2 {
	pts := make([]Vec2, circleSegments)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / circleSegments
		sin, cos := math.Sincos(theta)
		pts[i] = Vec2{radius * sin, -radius * cos}
	}
	return pts
}

// NewCircle creates a closed circle path node. Filled circles are used as
// masks.
func NewCircle(name string, radius, lineWidth float64, filled bool) *Node {
	n := NewPath(name, CirclePath(radius), lineWidth)
	n.Closed = true
	n.Filled = filled
	return n
}
