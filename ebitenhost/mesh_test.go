package ebitenhost

import (
	"testing"

	"github.com/phanxgames/folio"
)

var identity = affine{1, 0, 0, 1, 0, 0}

func TestQuadVerts(t *testing.T) {
	m := affine{1, 0, 0, 1, 100, 50}
	verts, inds := quadVerts(m, 20, 10, 64, 32, folio.Color{R: 1, G: 0.5, B: 0, A: 1}, 0.5, nil, nil)
	if len(verts) != 4 || len(inds) != 6 {
		t.Fatalf("got %d verts / %d indices", len(verts), len(inds))
	}
	if verts[0].DstX != 90 || verts[0].DstY != 45 || verts[2].DstX != 110 || verts[2].DstY != 55 {
		t.Errorf("corners = (%v,%v) (%v,%v)", verts[0].DstX, verts[0].DstY, verts[2].DstX, verts[2].DstY)
	}
	if verts[2].SrcX != 64 || verts[2].SrcY != 32 {
		t.Errorf("src corner = (%v,%v), want (64,32)", verts[2].SrcX, verts[2].SrcY)
	}
	if verts[0].ColorA != 0.5 || verts[0].ColorG != 0.25 {
		t.Errorf("color not premultiplied: %+v", verts[0])
	}
}

func TestQuadVertsAppendsIndices(t *testing.T) {
	verts, inds := quadVerts(identity, 1, 1, 1, 1, folio.ColorWhite, 1, nil, nil)
	verts, inds = quadVerts(identity, 1, 1, 1, 1, folio.ColorWhite, 1, verts, inds)
	if len(verts) != 8 || inds[6] != 4 {
		t.Errorf("second quad should index from 4, got %v", inds[6:])
	}
}

func TestFanVerts(t *testing.T) {
	square := []folio.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	verts, inds := fanVerts(identity, square, folio.ColorWhite, 1, nil, nil)
	if len(verts) != 4 || len(inds) != 6 {
		t.Fatalf("got %d verts / %d indices", len(verts), len(inds))
	}
	want := []uint16{0, 1, 2, 0, 2, 3}
	for i := range want {
		if inds[i] != want[i] {
			t.Fatalf("indices = %v, want %v", inds, want)
		}
	}
	if verts, _ := fanVerts(identity, square[:2], folio.ColorWhite, 1, nil, nil); len(verts) != 0 {
		t.Error("two points should not fill")
	}
}

func TestRibbonVerts(t *testing.T) {
	line := []folio.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}}
	verts, inds := ribbonVerts(identity, line, 4, false, folio.ColorWhite, 1, nil, nil)
	if len(verts) != 4 || len(inds) != 6 {
		t.Fatalf("got %d verts / %d indices", len(verts), len(inds))
	}
	// The normal of a +X segment is +Y.
	if verts[0].DstY != 2 || verts[1].DstY != -2 {
		t.Errorf("offsets = %v, %v; want 2, -2", verts[0].DstY, verts[1].DstY)
	}
	if verts[2].DstX != 10 {
		t.Errorf("end x = %v", verts[2].DstX)
	}
}

func TestRibbonVertsClosedAndDegenerate(t *testing.T) {
	tri := []folio.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	verts, inds := ribbonVerts(identity, tri, 1, true, folio.ColorWhite, 1, nil, nil)
	if len(verts) != 8 || len(inds) != 18 {
		t.Errorf("closed triangle: %d verts / %d indices, want 8 / 18", len(verts), len(inds))
	}
	if len(tri) != 3 {
		t.Error("closing the path modified the caller's slice")
	}
	if verts, _ := ribbonVerts(identity, tri[:1], 1, false, folio.ColorWhite, 1, nil, nil); len(verts) != 0 {
		t.Error("single point should draw nothing")
	}
	if verts, _ := ribbonVerts(identity, tri, 0, false, folio.ColorWhite, 1, nil, nil); len(verts) != 0 {
		t.Error("zero width should draw nothing")
	}
}

func TestPerpendicularDegenerate(t *testing.T) {
	nx, ny := perpendicular(folio.Vec2{X: 1, Y: 1}, folio.Vec2{X: 1, Y: 1})
	if nx != 0 || ny != -1 {
		t.Errorf("degenerate normal = (%v, %v), want (0, -1)", nx, ny)
	}
}

func TestColorOf(t *testing.T) {
	c := colorOf(folio.Color{R: 1, G: 0.5, B: -1, A: 2})
	if c.R != 255 || c.G != 128 || c.B != 0 || c.A != 255 {
		t.Errorf("colorOf = %+v", c)
	}
}

func TestTextureName(t *testing.T) {
	if got := textureName("jak.png"); got != "jak" {
		t.Errorf("textureName = %q, want jak", got)
	}
}
