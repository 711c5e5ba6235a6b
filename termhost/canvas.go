package termhost

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/folio"
)

// cellAspect is how much taller than wide a terminal cell is.
const cellAspect = 2

// viewport maps scene space (origin at the center, Y down) onto a
// cols×rows cell grid, preserving the scene's aspect ratio.
type viewport struct {
	cols, rows int
	scale      float64 // cells per point along X
}

func newViewport(cols, rows int, size folio.Vec2) viewport {
	s := 0.0
	if size.X > 0 && size.Y > 0 {
		s = min(float64(cols)/size.X, float64(rows)*cellAspect/size.Y)
	}
	return viewport{cols: cols, rows: rows, scale: s}
}

// toCell returns the cell containing scene point p.
func (v viewport) toCell(p folio.Vec2) (col, row int) {
	col = int(math.Floor(float64(v.cols)/2 + p.X*v.scale))
	row = int(math.Floor(float64(v.rows)/2 + p.Y*v.scale/cellAspect))
	return col, row
}

// toScene returns the scene point at the center of a cell.
func (v viewport) toScene(col, row int) folio.Vec2 {
	if v.scale == 0 {
		return folio.Vec2{}
	}
	return folio.Vec2{
		X: (float64(col) + 0.5 - float64(v.cols)/2) / v.scale,
		Y: (float64(row) + 0.5 - float64(v.rows)/2) * cellAspect / v.scale,
	}
}

type cell struct {
	ch     rune
	fg, bg folio.Color
}

// canvas is an off-screen cell buffer. Colors blend in straight alpha
// against what is already in the cell.
type canvas struct {
	vp    viewport
	cells []cell
}

func (c *canvas) resize(vp viewport) {
	c.vp = vp
	if n := vp.cols * vp.rows; cap(c.cells) < n {
		c.cells = make([]cell, n)
	} else {
		c.cells = c.cells[:n]
	}
}

func (c *canvas) clear(bg folio.Color) {
	for i := range c.cells {
		c.cells[i] = cell{ch: ' ', fg: bg, bg: bg}
	}
}

func (c *canvas) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= c.vp.cols || row >= c.vp.rows {
		return nil
	}
	return &c.cells[row*c.vp.cols+col]
}

// fill paints a cell's background, hiding any glyph underneath.
func (c *canvas) fill(col, row int, color folio.Color, alpha float64) {
	if p := c.at(col, row); p != nil {
		p.bg = blend(p.bg, color, alpha)
		p.fg = p.bg
		p.ch = ' '
	}
}

// plot draws a glyph over a cell's background.
func (c *canvas) plot(col, row int, ch rune, color folio.Color, alpha float64) {
	if p := c.at(col, row); p != nil {
		p.ch = ch
		p.fg = blend(p.bg, color, alpha)
	}
}

// flush copies the buffer to screen and shows it.
func (c *canvas) flush(screen tcell.Screen) {
	for row := 0; row < c.vp.rows; row++ {
		for col := 0; col < c.vp.cols; col++ {
			p := c.cells[row*c.vp.cols+col]
			style := tcell.StyleDefault.Background(tcellColor(p.bg)).Foreground(tcellColor(p.fg))
			screen.SetContent(col, row, p.ch, nil, style)
		}
	}
	screen.Show()
}

func blend(dst, src folio.Color, alpha float64) folio.Color {
	a := folio.Clamp(src.A*alpha, 0, 1)
	return folio.Color{
		R: dst.R + (src.R-dst.R)*a,
		G: dst.G + (src.G-dst.G)*a,
		B: dst.B + (src.B-dst.B)*a,
		A: 1,
	}
}

func tcellColor(c folio.Color) tcell.Color {
	to8 := func(v float64) int32 { return int32(folio.Clamp(v, 0, 1)*255 + 0.5) }
	return tcell.NewRGBColor(to8(c.R), to8(c.G), to8(c.B))
}
