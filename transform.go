package folio

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the node's
// transform properties. Returns [a, b, c, d, tx, ty].
//
// Composition order: Scale -> Rotate -> Translate(X, Y)
func computeLocalTransform(n *Node) [6]float64 {
	sin, cos := math.Sincos(n.Rotation)
	sx := n.ScaleX
	sy := n.ScaleY
	return [6]float64{cos * sx, sin * sx, -sin * sy, cos * sy, n.X, n.Y}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// ComposeTransform returns parent·child. Renderers use it to accumulate
// transforms while walking the tree top-down.
func ComposeTransform(parent, child [6]float64) [6]float64 {
	return multiplyAffine(parent, child)
}

// InvertTransform returns the inverse of m, or the identity if m is singular.
func InvertTransform(m [6]float64) [6]float64 {
	return invertAffine(m)
}

// ApplyTransform maps p through m.
func ApplyTransform(m [6]float64, p Vec2) Vec2 {
	x, y := transformPoint(m, p.X, p.Y)
	return Vec2{x, y}
}

// LocalTransform returns the node's local affine matrix [a, b, c, d, tx, ty].
func (n *Node) LocalTransform() [6]float64 {
	return computeLocalTransform(n)
}

// WorldTransform returns the node's transform relative to the top of its
// tree, computed by walking the parent chain.
func (n *Node) WorldTransform() [6]float64 {
	return n.transformUntil(nil)
}

// transformUntil accumulates local transforms from n up to, but not
// including, the first ancestor for which stop returns true.
func (n *Node) transformUntil(stop func(*Node) bool) [6]float64 {
	m := identityTransform
	for p := n; p != nil; p = p.Parent {
		if stop != nil && stop(p) {
			break
		}
		m = multiplyAffine(computeLocalTransform(p), m)
	}
	return m
}

// WorldAlpha returns the product of the alpha values along the parent chain.
func (n *Node) WorldAlpha() float64 {
	a := 1.0
	for p := n; p != nil; p = p.Parent {
		a *= p.Alpha
	}
	return a
}

// ScenePosition returns the node's origin in camera-root space: ancestor
// transforms are accumulated up to the node named CameraRootName. A node not
// under a camera root yields its world position.
func (n *Node) ScenePosition() Vec2 {
	m := n.transformUntil(func(p *Node) bool { return p.Name == CameraRootName })
	return Vec2{m[4], m[5]}
}

// --- Transform property setters ---

// Position returns the node's local position.
func (n *Node) Position() Vec2 {
	return Vec2{n.X, n.Y}
}

// SetPosition sets the node's local X and Y.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// SetScale sets the node's ScaleX and ScaleY.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
}

// SetRotation sets the node's rotation in radians.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
}

// SetAlpha sets the node's alpha.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(p Vec2) Vec2 {
	x, y := transformPoint(invertAffine(n.WorldTransform()), p.X, p.Y)
	return Vec2{x, y}
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(p Vec2) Vec2 {
	x, y := transformPoint(n.WorldTransform(), p.X, p.Y)
	return Vec2{x, y}
}
