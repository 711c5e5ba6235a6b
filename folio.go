package folio

import "fmt"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Gray returns an opaque gray with the given white level in [0, 1].
func Gray(white float64) Color {
	return Color{white, white, white, 1}
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. X/Y is the minimum corner; Y grows
// downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// CenteredRect returns a w×h rectangle centered on the origin.
func CenteredRect(w, h float64) Rect {
	return Rect{X: -w / 2, Y: -h / 2, Width: w, Height: h}
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeSprite                    // solid or textured rectangle centered on the node origin
	NodeTypeLabel                     // single line of text centered on the node origin
	NodeTypePath                      // stroked (or filled) polyline in local space
)

// Layer selects which camera sub-tree a node is attached to.
type Layer uint8

const (
	LayerScene Layer = iota // panned, zoomed and shaken with the camera
	LayerHUD                // fixed to the screen, drawn above the scene layer
)

// Direction selects the side a menu widget slides in from and its color
// scheme.
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
)

// Sign returns -1 for Left and +1 for Right. Panics for DirectionNone.
func (d Direction) Sign() float64 {
	switch d {
	case DirectionLeft:
		return -1
	case DirectionRight:
		return 1
	}
	panic(fmt.Sprintf("folio: direction %d has no sign", d))
}

// Opposite returns the mirrored direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionLeft:
		return DirectionRight
	case DirectionRight:
		return DirectionLeft
	}
	return DirectionNone
}

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	}
	return "none"
}
