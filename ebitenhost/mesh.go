package ebitenhost

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/folio"
)

// affine is a 2D affine matrix: [a, b, c, d, tx, ty] with
// x' = a*x + c*y + tx, y' = b*x + d*y + ty.
type affine = [6]float64

func apply(m affine, x, y float64) (float32, float32) {
	return float32(m[0]*x + m[2]*y + m[4]), float32(m[1]*x + m[3]*y + m[5])
}

// premul returns c with alpha scaled by alpha, premultiplied, as vertex
// color components.
func premul(c folio.Color, alpha float64) (r, g, b, a float32) {
	a64 := c.A * alpha
	return float32(c.R * a64), float32(c.G * a64), float32(c.B * a64), float32(a64)
}

// colorOf converts c to an 8-bit straight-alpha color.
func colorOf(c folio.Color) color.NRGBA {
	to8 := func(v float64) uint8 { return uint8(max(0, min(1, v))*255 + 0.5) }
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

// quadVerts builds a w×h quad centered on the origin, mapped to the full
// srcW×srcH source image. Indices are appended to inds.
func quadVerts(m affine, w, h, srcW, srcH float64, c folio.Color, alpha float64, verts []ebiten.Vertex, inds []uint16) ([]ebiten.Vertex, []uint16) {
	r, g, b, a := premul(c, alpha)
	base := uint16(len(verts))
	corners := [4][4]float64{
		{-w / 2, -h / 2, 0, 0},
		{w / 2, -h / 2, srcW, 0},
		{w / 2, h / 2, srcW, srcH},
		{-w / 2, h / 2, 0, srcH},
	}
	for _, k := range corners {
		x, y := apply(m, k[0], k[1])
		verts = append(verts, ebiten.Vertex{
			DstX: x, DstY: y,
			SrcX: float32(k[2]), SrcY: float32(k[3]),
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
	inds = append(inds, base, base+1, base+2, base, base+2, base+3)
	return verts, inds
}

// fanVerts triangulates a convex polygon as a fan around its first point.
// Fewer than 3 points produce nothing. Source coordinates sample the center
// of a 1x1 white pixel.
func fanVerts(m affine, points []folio.Vec2, c folio.Color, alpha float64, verts []ebiten.Vertex, inds []uint16) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return verts, inds
	}
	r, g, b, a := premul(c, alpha)
	base := uint16(len(verts))
	for _, p := range points {
		x, y := apply(m, p.X, p.Y)
		verts = append(verts, ebiten.Vertex{
			DstX: x, DstY: y,
			SrcX: 0.5, SrcY: 0.5,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
	for i := 0; i < n-2; i++ {
		inds = append(inds, base, base+uint16(i+1), base+uint16(i+2))
	}
	return verts, inds
}

// ribbonVerts strokes a polyline with the given width: two vertices per
// point offset along the averaged segment normal, two triangles per segment.
// A closed path repeats its first point at the end.
func ribbonVerts(m affine, points []folio.Vec2, width float64, closed bool, c folio.Color, alpha float64, verts []ebiten.Vertex, inds []uint16) ([]ebiten.Vertex, []uint16) {
	if closed && len(points) > 2 {
		points = append(points[:len(points):len(points)], points[0])
	}
	n := len(points)
	if n < 2 || width <= 0 {
		return verts, inds
	}
	r, g, b, a := premul(c, alpha)
	halfW := width / 2
	base := uint16(len(verts))

	for i := 0; i < n; i++ {
		var nx, ny float64
		switch i {
		case 0:
			nx, ny = perpendicular(points[0], points[1])
		case n - 1:
			nx, ny = perpendicular(points[n-2], points[n-1])
		default:
			nx0, ny0 := perpendicular(points[i-1], points[i])
			nx1, ny1 := perpendicular(points[i], points[i+1])
			nx, ny = nx0+nx1, ny0+ny1
			if ln := math.Hypot(nx, ny); ln > 1e-10 {
				nx /= ln
				ny /= ln
			}
		}
		p := points[i]
		x0, y0 := apply(m, p.X+nx*halfW, p.Y+ny*halfW)
		x1, y1 := apply(m, p.X-nx*halfW, p.Y-ny*halfW)
		verts = append(verts,
			ebiten.Vertex{DstX: x0, DstY: y0, SrcX: 0.5, SrcY: 0.5, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
			ebiten.Vertex{DstX: x1, DstY: y1, SrcX: 0.5, SrcY: 0.5, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
		)
	}
	for i := 0; i < n-1; i++ {
		v := base + uint16(i*2)
		inds = append(inds, v, v+1, v+2, v+1, v+3, v+2)
	}
	return verts, inds
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b folio.Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}
