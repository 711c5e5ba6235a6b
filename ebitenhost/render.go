package ebitenhost

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // register decoder for LoadTextures
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/phanxgames/folio"
	"golang.org/x/image/font/gofont/goregular"
)

// maskBlend keeps only the parts of the destination where the source
// (the mask) has alpha.
var maskBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorZero,
	BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
	BlendFactorDestinationRGB:   ebiten.BlendFactorSourceAlpha,
	BlendFactorDestinationAlpha: ebiten.BlendFactorSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// Renderer draws a folio node tree with ebiten. Sprites, paths and fills
// go through DrawTriangles; labels through text/v2; masked subtrees are
// composited on offscreen layers.
type Renderer struct {
	whitePixel *ebiten.Image
	textures   map[string]*ebiten.Image
	fontSource *text.GoTextFaceSource
	faces      map[float64]*text.GoTextFace

	verts []ebiten.Vertex
	inds  []uint16

	// layers[depth] holds the content and mask images for masks nested
	// depth levels deep.
	layers [][2]*ebiten.Image
}

// NewRenderer creates a renderer with the Go Regular font and no textures.
func NewRenderer() (*Renderer, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	return &Renderer{
		whitePixel: white,
		textures:   make(map[string]*ebiten.Image),
		fontSource: src,
		faces:      make(map[float64]*text.GoTextFace),
	}, nil
}

// SetTexture registers img under name. Sprites whose Texture matches are
// drawn with it.
func (r *Renderer) SetTexture(name string, img *ebiten.Image) {
	r.textures[name] = img
}

// Texture returns the image registered under name.
func (r *Renderer) Texture(name string) (*ebiten.Image, bool) {
	img, ok := r.textures[name]
	return img, ok
}

// LoadTextures registers every PNG in dir under its base name without the
// extension ("jak.png" → "jak").
func (r *Renderer) LoadTextures(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read assets %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		r.SetTexture(textureName(e.Name()), ebiten.NewImageFromImage(img))
	}
	return nil
}

func textureName(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file))
}

// Draw renders the tree under root into dst. Scene space has its origin at
// the center of a size-sized screen.
func (r *Renderer) Draw(dst *ebiten.Image, root *folio.Node, size folio.Vec2) {
	base := affine{1, 0, 0, 1, size.X / 2, size.Y / 2}
	r.drawNode(dst, root, base, 1, 0)
}

func (r *Renderer) drawNode(dst *ebiten.Image, n *folio.Node, parent affine, parentAlpha float64, depth int) {
	if n == nil || !n.Visible || n.IsDisposed() {
		return
	}
	alpha := parentAlpha * n.Alpha
	if alpha <= 0 {
		return
	}
	m := folio.ComposeTransform(parent, n.LocalTransform())

	if mask := n.Mask(); mask != nil {
		r.drawMasked(dst, n, mask, m, alpha, depth)
		return
	}
	r.drawSelf(dst, n, m, alpha)
	for _, c := range n.SortedChildren() {
		r.drawNode(dst, c, m, alpha, depth)
	}
}

// drawMasked renders n and its subtree to an offscreen layer, cuts it with
// the mask (whose transform is relative to n) and composites the result.
func (r *Renderer) drawMasked(dst *ebiten.Image, n, mask *folio.Node, m affine, alpha float64, depth int) {
	content, maskImg := r.layer(depth, dst.Bounds())
	content.Clear()
	r.drawSelf(content, n, m, alpha)
	for _, c := range n.SortedChildren() {
		r.drawNode(content, c, m, alpha, depth+1)
	}

	maskImg.Clear()
	r.drawNode(maskImg, mask, m, 1, depth+1)

	content.DrawImage(maskImg, &ebiten.DrawImageOptions{Blend: maskBlend})
	dst.DrawImage(content, nil)
}

// layer returns the offscreen pair for depth, reallocating when the
// destination size changed.
func (r *Renderer) layer(depth int, bounds image.Rectangle) (*ebiten.Image, *ebiten.Image) {
	for len(r.layers) <= depth {
		r.layers = append(r.layers, [2]*ebiten.Image{})
	}
	pair := &r.layers[depth]
	w, h := bounds.Dx(), bounds.Dy()
	for i := range pair {
		if pair[i] == nil || pair[i].Bounds().Dx() != w || pair[i].Bounds().Dy() != h {
			if pair[i] != nil {
				pair[i].Deallocate()
			}
			pair[i] = ebiten.NewImage(w, h)
		}
	}
	return pair[0], pair[1]
}

func (r *Renderer) drawSelf(dst *ebiten.Image, n *folio.Node, m affine, alpha float64) {
	switch n.Type {
	case folio.NodeTypeSprite:
		img, ok := r.textures[n.Texture]
		if n.Texture == "" || !ok {
			img = r.whitePixel
		}
		b := img.Bounds()
		r.verts, r.inds = quadVerts(m, n.Width, n.Height, float64(b.Dx()), float64(b.Dy()), n.Color, alpha, r.verts[:0], r.inds[:0])
		dst.DrawTriangles(r.verts, r.inds, img, nil)

	case folio.NodeTypePath:
		if n.Filled {
			r.verts, r.inds = fanVerts(m, n.Path, n.Color, alpha, r.verts[:0], r.inds[:0])
		} else {
			r.verts, r.inds = ribbonVerts(m, n.Path, n.LineWidth, n.Closed, n.Color, alpha, r.verts[:0], r.inds[:0])
		}
		if len(r.inds) > 0 {
			dst.DrawTriangles(r.verts, r.inds, r.whitePixel, nil)
		}

	case folio.NodeTypeLabel:
		if n.Text == "" {
			return
		}
		op := &text.DrawOptions{}
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		op.GeoM.SetElement(0, 0, m[0])
		op.GeoM.SetElement(1, 0, m[1])
		op.GeoM.SetElement(0, 1, m[2])
		op.GeoM.SetElement(1, 1, m[3])
		op.GeoM.SetElement(0, 2, m[4])
		op.GeoM.SetElement(1, 2, m[5])
		cr, cg, cb, ca := premul(n.Color, alpha)
		op.ColorScale.Scale(cr, cg, cb, ca)
		text.Draw(dst, n.Text, r.face(n.FontSize), op)
	}
}

// face returns a cached face of the given size.
func (r *Renderer) face(size float64) *text.GoTextFace {
	if size <= 0 {
		size = 16
	}
	f, ok := r.faces[size]
	if !ok {
		f = &text.GoTextFace{Source: r.fontSource, Size: size}
		r.faces[size] = f
	}
	return f
}
