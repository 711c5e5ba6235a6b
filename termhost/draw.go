package termhost

import (
	"math"

	"github.com/phanxgames/folio"
)

// Glyphs used for strokes and textured sprites.
const (
	strokeRune  = '█'
	textureRune = '▒'
)

// clipFunc reports whether a scene point survives the active masks.
type clipFunc func(p folio.Vec2) bool

func noClip(folio.Vec2) bool { return true }

// drawTree rasterizes the visible tree under root into the canvas.
func (c *canvas) drawTree(root *folio.Node) {
	identity := [6]float64{1, 0, 0, 1, 0, 0}
	c.drawNode(root, identity, 1, noClip)
}

func (c *canvas) drawNode(n *folio.Node, parent [6]float64, parentAlpha float64, clip clipFunc) {
	if n == nil || !n.Visible || n.IsDisposed() {
		return
	}
	alpha := parentAlpha * n.Alpha
	if alpha <= 0 {
		return
	}
	m := folio.ComposeTransform(parent, n.LocalTransform())

	if mask := n.Mask(); mask != nil {
		inv := folio.InvertTransform(folio.ComposeTransform(m, mask.LocalTransform()))
		outer := clip
		clip = func(p folio.Vec2) bool {
			return outer(p) && shapeContains(mask, folio.ApplyTransform(inv, p))
		}
	}

	switch n.Type {
	case folio.NodeTypeSprite:
		c.drawSprite(n, m, alpha, clip)
	case folio.NodeTypePath:
		if n.Filled {
			c.drawFill(n, m, alpha, clip)
		} else {
			c.drawStroke(n, m, alpha, clip)
		}
	case folio.NodeTypeLabel:
		c.drawLabel(n, m, alpha, clip)
	}

	for _, child := range n.SortedChildren() {
		c.drawNode(child, m, alpha, clip)
	}
}

// shapeContains tests a local point against a mask node's outline: filled
// or closed paths as polygons, sprites as rectangles, anything else through
// its hit shape.
func shapeContains(n *folio.Node, local folio.Vec2) bool {
	switch {
	case n.Type == folio.NodeTypePath && (n.Filled || n.Closed):
		return folio.HitPolygon{Points: n.Path}.Contains(local.X, local.Y)
	case n.Type == folio.NodeTypeSprite:
		return folio.CenteredRect(n.Width, n.Height).Contains(local.X, local.Y)
	}
	return n.HitTest(local)
}

// scan visits every cell whose center lies inside the scene-space bounds
// of pts under m, passing the cell and its center in n's local space.
func (c *canvas) scan(m [6]float64, pts []folio.Vec2, clip clipFunc, visit func(col, row int, local folio.Vec2)) {
	if len(pts) == 0 {
		return
	}
	minC, minR := math.MaxInt, math.MaxInt
	maxC, maxR := math.MinInt, math.MinInt
	for _, p := range pts {
		col, row := c.vp.toCell(folio.ApplyTransform(m, p))
		minC, maxC = min(minC, col), max(maxC, col)
		minR, maxR = min(minR, row), max(maxR, row)
	}
	minC, minR = max(minC, 0), max(minR, 0)
	maxC, maxR = min(maxC, c.vp.cols-1), min(maxR, c.vp.rows-1)

	inv := folio.InvertTransform(m)
	for row := minR; row <= maxR; row++ {
		for col := minC; col <= maxC; col++ {
			p := c.vp.toScene(col, row)
			if !clip(p) {
				continue
			}
			visit(col, row, folio.ApplyTransform(inv, p))
		}
	}
}

func (c *canvas) drawSprite(n *folio.Node, m [6]float64, alpha float64, clip clipFunc) {
	r := folio.CenteredRect(n.Width, n.Height)
	corners := []folio.Vec2{{X: r.X, Y: r.Y}, {X: r.X + r.Width, Y: r.Y}, {X: r.X + r.Width, Y: r.Y + r.Height}, {X: r.X, Y: r.Y + r.Height}}
	textured := n.Texture != ""
	c.scan(m, corners, clip, func(col, row int, local folio.Vec2) {
		if !r.Contains(local.X, local.Y) {
			return
		}
		c.fill(col, row, n.Color, alpha)
		if textured {
			c.plot(col, row, textureRune, folio.Gray(0.3), alpha)
		}
	})
}

func (c *canvas) drawFill(n *folio.Node, m [6]float64, alpha float64, clip clipFunc) {
	if len(n.Path) < 3 {
		return
	}
	poly := folio.HitPolygon{Points: n.Path}
	c.scan(m, n.Path, clip, func(col, row int, local folio.Vec2) {
		if poly.Contains(local.X, local.Y) {
			c.fill(col, row, n.Color, alpha)
		}
	})
}

// drawStroke steps along each segment in cell space, one plot per cell.
func (c *canvas) drawStroke(n *folio.Node, m [6]float64, alpha float64, clip clipFunc) {
	pts := n.Path
	if n.Closed && len(pts) > 2 {
		pts = append(pts[:len(pts):len(pts)], pts[0])
	}
	for i := 1; i < len(pts); i++ {
		a := folio.ApplyTransform(m, pts[i-1])
		b := folio.ApplyTransform(m, pts[i])
		c0, r0 := c.vp.toCell(a)
		c1, r1 := c.vp.toCell(b)
		steps := max(abs(c1-c0), abs(r1-r0))
		for s := 0; s <= steps; s++ {
			t := 0.0
			if steps > 0 {
				t = float64(s) / float64(steps)
			}
			p := folio.LerpVec(a, b, t)
			if !clip(p) {
				continue
			}
			col, row := c.vp.toCell(p)
			c.plot(col, row, strokeRune, n.Color, alpha)
		}
	}
}

// drawLabel writes the text centered on the node origin. Labels do not
// scale with the node; the terminal has one font size.
func (c *canvas) drawLabel(n *folio.Node, m [6]float64, alpha float64, clip clipFunc) {
	origin := folio.ApplyTransform(m, folio.Vec2{})
	if !clip(origin) {
		return
	}
	runes := []rune(n.Text)
	col, row := c.vp.toCell(origin)
	col -= len(runes) / 2
	for i, r := range runes {
		c.plot(col+i, row, r, n.Color, alpha)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
