package folio

import "math"

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// HitTest reports whether the local-space point p falls inside the node's
// hit region. HitShape wins when set; sprites fall back to their centered
// Width×Height rectangle; everything else is not hit-testable.
func (n *Node) HitTest(p Vec2) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(p.X, p.Y)
	}
	if n.Type == NodeTypeSprite && (n.Width > 0 || n.Height > 0) {
		return CenteredRect(n.Width, n.Height).Contains(p.X, p.Y)
	}
	return false
}

// --- Touch phases ---

// TouchPhase is one of the four phases the OS reports for a touch.
type TouchPhase uint8

const (
	TouchBegan TouchPhase = iota
	TouchMoved
	TouchEnded
	TouchCancelled
)

func (p TouchPhase) String() string {
	switch p {
	case TouchBegan:
		return "began"
	case TouchMoved:
		return "moved"
	case TouchEnded:
		return "ended"
	case TouchCancelled:
		return "cancelled"
	}
	return "unknown"
}

// TouchPoint is a single finger in scene space (origin at the screen center,
// Y down). ID stays stable from Began to Ended/Cancelled.
type TouchPoint struct {
	ID  int
	Pos Vec2
}

// GestureHandler receives drags and pinches that no node claimed.
type GestureHandler interface {
	Pan(translation Vec2)
	Pinch(ratio float64, began bool)
}

// --- Pinch state ---

type pinchState struct {
	active      bool
	id0, id1    int
	initialDist float64
}

// TouchRouter hit-tests touches against a node tree and delivers each
// touch's phases to the node it began on.
type TouchRouter struct {
	root *Node

	// Gestures receives unclaimed single-finger drags and two-finger
	// pinches. Nil drops them.
	Gestures GestureHandler

	captured map[int]*Node
	free     map[int]Vec2
	pinch    pinchState
	hitBuf   []*Node
}

// NewTouchRouter creates a router over the tree rooted at root.
func NewTouchRouter(root *Node) *TouchRouter {
	return &TouchRouter{
		root:     root,
		captured: make(map[int]*Node),
		free:     make(map[int]Vec2),
	}
}

// Captured returns the node that owns touch id, or nil.
func (r *TouchRouter) Captured(id int) *Node {
	return r.captured[id]
}

// Dispatch routes one phase for a set of touches. Began hit-tests and
// captures; the other phases go to the captured node in its local space.
func (r *TouchRouter) Dispatch(phase TouchPhase, touches []TouchPoint) {
	for _, t := range touches {
		switch phase {
		case TouchBegan:
			if hit := r.HitTest(t.Pos); hit != nil {
				r.captured[t.ID] = hit
				r.deliver(hit, phase, t.Pos)
				continue
			}
			r.free[t.ID] = t.Pos
		case TouchMoved:
			if n := r.captured[t.ID]; n != nil {
				r.deliver(n, phase, t.Pos)
				continue
			}
			if last, ok := r.free[t.ID]; ok {
				r.free[t.ID] = t.Pos
				if len(r.free) == 1 && r.Gestures != nil {
					r.Gestures.Pan(t.Pos.Sub(last))
				}
			}
		case TouchEnded, TouchCancelled:
			if n := r.captured[t.ID]; n != nil {
				delete(r.captured, t.ID)
				r.deliver(n, phase, t.Pos)
				continue
			}
			delete(r.free, t.ID)
		}
	}
	r.detectPinch()
}

// Reset cancels every captured touch.
func (r *TouchRouter) Reset() {
	for id, n := range r.captured {
		delete(r.captured, id)
		r.deliver(n, TouchCancelled, Vec2{})
	}
	clear(r.free)
	r.pinch = pinchState{}
}

func (r *TouchRouter) deliver(n *Node, phase TouchPhase, scenePos Vec2) {
	if n.disposed || n.OnTouch == nil {
		return
	}
	n.OnTouch(phase, n.WorldToLocal(r.toWorld(scenePos)))
}

// toWorld maps a scene-space point into the router root's parent space.
// The root is normally parentless, so this is the identity.
func (r *TouchRouter) toWorld(p Vec2) Vec2 {
	if r.root.Parent == nil {
		return p
	}
	return r.root.Parent.LocalToWorld(p)
}

// --- Hit testing ---

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending interactable nodes to buf. Invisible subtrees are skipped.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || n.disposed {
		return buf
	}
	if n.Interactable && n.OnTouch != nil {
		buf = append(buf, n)
	}
	for _, child := range n.SortedChildren() {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// HitTest finds the topmost interactable node at the scene-space point p.
// Returns nil if nothing is hit.
func (r *TouchRouter) HitTest(p Vec2) *Node {
	r.hitBuf = collectInteractable(r.root, r.hitBuf[:0])
	world := r.toWorld(p)

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(r.hitBuf) - 1; i >= 0; i-- {
		n := r.hitBuf[i]
		if n.HitTest(n.WorldToLocal(world)) {
			return n
		}
	}
	return nil
}

// NodeAt returns the topmost visible node of any kind whose bounds contain
// the scene-space point p, falling back to the router root.
func (r *TouchRouter) NodeAt(p Vec2) *Node {
	world := r.toWorld(p)
	if n := nodeAt(r.root, world); n != nil {
		return n
	}
	return r.root
}

func nodeAt(n *Node, world Vec2) *Node {
	if !n.Visible || n.disposed {
		return nil
	}
	children := n.SortedChildren()
	for i := len(children) - 1; i >= 0; i-- {
		if hit := nodeAt(children[i], world); hit != nil {
			return hit
		}
	}
	if n.HitTest(n.WorldToLocal(world)) {
		return n
	}
	return nil
}

// --- Pinch detection ---

func (r *TouchRouter) detectPinch() {
	if len(r.free) != 2 {
		r.pinch.active = false
		return
	}
	var ids [2]int
	var pts [2]Vec2
	i := 0
	for id, p := range r.free {
		ids[i], pts[i] = id, p
		i++
	}
	if ids[0] > ids[1] {
		ids[0], ids[1] = ids[1], ids[0]
		pts[0], pts[1] = pts[1], pts[0]
	}
	dist := math.Max(pts[0].Dist(pts[1]), 1e-6)

	if !r.pinch.active || r.pinch.id0 != ids[0] || r.pinch.id1 != ids[1] {
		r.pinch = pinchState{active: true, id0: ids[0], id1: ids[1], initialDist: dist}
		if r.Gestures != nil {
			r.Gestures.Pinch(1, true)
		}
		return
	}
	if r.Gestures != nil {
		r.Gestures.Pinch(dist/r.pinch.initialDist, false)
	}
}
