// Package termhost runs a folio.Scene in a terminal. The node tree is
// rasterized onto character cells with tcell, and the left mouse button
// stands in for a single touch.
package termhost

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/folio"
)

// Host drives a scene from a tcell screen.
type Host struct {
	// FrameInterval is the tick period of Run.
	FrameInterval time.Duration
	// ScreenshotDir receives text snapshots for Scene.Screenshot requests.
	ScreenshotDir string

	// Script, when set, is installed on the scene at start. With
	// ExitWhenDone, Run returns once it has finished.
	Script       *folio.TestRunner
	ExitWhenDone bool

	screen  tcell.Screen
	scene   *folio.Scene
	canvas  canvas
	debug   bool
	pressed bool
	last    folio.Vec2
}

// New creates a host for scene on an initialized screen.
func New(screen tcell.Screen, scene *folio.Scene) *Host {
	h := &Host{
		FrameInterval: 16 * time.Millisecond,
		ScreenshotDir: "screenshots",
		screen:        screen,
		scene:         scene,
		debug:         scene.Config().Debug,
	}
	h.resize()
	return h
}

// Run attaches the scene and processes frames and input until ctx is done,
// the user quits (Esc, Ctrl-C or q) or the script finishes.
func (h *Host) Run(ctx context.Context) error {
	h.screen.EnableMouse()
	defer h.screen.DisableMouse()

	if h.Script != nil {
		h.scene.SetTestRunner(h.Script)
	}
	h.scene.OnAttach()
	defer h.scene.OnDetach()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(h.FrameInterval)
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !h.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if !h.Frame(time.Since(start)) {
				return nil
			}
		}
	}
}

// Frame advances the scene to elapsed and redraws. It reports false once a
// script run with ExitWhenDone has finished.
func (h *Host) Frame(elapsed time.Duration) bool {
	h.scene.OnFrame(elapsed.Seconds())
	h.draw()
	for _, label := range h.scene.TakeScreenshotRequests() {
		if err := h.snapshot(label); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[folio] screenshot: %v\n", err)
		}
	}
	return !(h.ExitWhenDone && h.Script != nil && h.Script.Done())
}

// HandleEvent applies one tcell event. It reports false when the user asked
// to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'd':
			h.debug = !h.debug
			h.scene.SetDebugMode(h.debug)
		}

	case *tcell.EventResize:
		h.resize()
		h.screen.Sync()

	case *tcell.EventMouse:
		x, y := ev.Position()
		h.mouse(h.canvas.vp.toScene(x, y), ev.Buttons()&tcell.Button1 != 0)
	}
	return true
}

// mouse turns left-button state changes into touch phases for touch 0.
func (h *Host) mouse(p folio.Vec2, down bool) {
	touch := []folio.TouchPoint{{ID: 0, Pos: p}}
	switch {
	case down && !h.pressed:
		h.scene.OnTouchBegan(touch)
	case down && p != h.last:
		h.scene.OnTouchMoved(touch)
	case !down && h.pressed:
		h.scene.OnTouchEnded(touch)
	}
	h.pressed = down
	h.last = p
}

func (h *Host) resize() {
	cols, rows := h.screen.Size()
	h.canvas.resize(newViewport(cols, rows, h.scene.Size()))
}

func (h *Host) draw() {
	h.canvas.clear(h.scene.Background())
	h.canvas.drawTree(h.scene.Root())
	h.canvas.flush(h.screen)
}

// snapshot writes the current cell glyphs as text.
func (h *Host) snapshot(label string) error {
	if err := os.MkdirAll(h.ScreenshotDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", h.ScreenshotDir, err)
	}
	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(h.ScreenshotDir, fmt.Sprintf("%s_%s.txt", stamp, safeLabel(label)))
	if err := os.WriteFile(path, []byte(h.canvas.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// String returns the canvas glyphs, one line per row.
func (c *canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.vp.rows; row++ {
		for col := 0; col < c.vp.cols; col++ {
			b.WriteRune(c.cells[row*c.vp.cols+col].ch)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func safeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
