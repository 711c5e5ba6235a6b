// Package ebitenhost runs a folio.Scene in an ebiten window (or on mobile
// through ebiten's mobile bindings): it feeds frames and touches to the
// scene, renders its node tree and plays its sounds.
package ebitenhost

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/folio"
)

// Game adapts a folio.Scene to ebiten.Game.
type Game struct {
	// ScreenshotDir receives PNGs for Scene.Screenshot requests.
	ScreenshotDir string
	// ShowFPS draws an FPS/TPS readout over the scene.
	ShowFPS bool

	// Script, when set, is the runner installed on the scene. With
	// ExitWhenDone the game terminates once it has finished and its last
	// screenshot has been written.
	Script       *folio.TestRunner
	ExitWhenDone bool

	scene    *folio.Scene
	renderer *Renderer
	input    input
	fps      fpsOverlay
	start    time.Time
	lastTick float64
	focused  bool
	finished bool
}

// NewGame creates a game drawing scene with r.
func NewGame(scene *folio.Scene, r *Renderer) *Game {
	return &Game{
		ScreenshotDir: "screenshots",
		scene:         scene,
		renderer:      r,
		focused:       true,
	}
}

// Scene returns the hosted scene.
func (g *Game) Scene() *folio.Scene { return g.scene }

// Update implements ebiten.Game. The first call attaches the scene.
func (g *Game) Update() error {
	if g.finished {
		return ebiten.Termination
	}
	if !g.scene.Attached() {
		g.start = time.Now()
		if g.Script != nil {
			g.scene.SetTestRunner(g.Script)
		}
		g.scene.OnAttach()
	}

	focused := ebiten.IsFocused()
	if g.focused && !focused {
		g.input.cancel(g.scene)
	}
	g.focused = focused
	if focused {
		g.input.deliver(g.scene, g.input.poll())
	}

	now := time.Since(g.start).Seconds()
	g.scene.OnFrame(now)
	if g.ShowFPS {
		g.fps.update(now - g.lastTick)
	}
	g.lastTick = now
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	bg := g.scene.Background()
	screen.Fill(colorOf(bg))
	g.renderer.Draw(screen, g.scene.Root(), g.scene.Size())
	if g.ShowFPS {
		g.fps.draw(screen)
	}

	writeScreenshots(screen, g.ScreenshotDir, g.scene.TakeScreenshotRequests())
	if g.ExitWhenDone && g.Script != nil && g.Script.Done() {
		g.finished = true
	}
}

// Layout implements ebiten.Game. The logical screen is the scene size.
func (g *Game) Layout(_, _ int) (int, int) {
	size := g.scene.Size()
	return int(size.X), int(size.Y)
}

// Run opens a window sized to the scene and runs g until it terminates.
func Run(g *Game, title string) error {
	size := g.scene.Size()
	ebiten.SetWindowSize(int(size.X), int(size.Y))
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	g.scene.OnDetach()
	return nil
}
