package termhost

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/folio"
)

type bellCount struct{ played []string }

func (b *bellCount) Play(name string) { b.played = append(b.played, name) }

func newTestHost(t *testing.T) (*Host, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 20)

	scene := folio.NewScene(folio.DefaultConfig())
	scene.SetSoundPlayer(&bellCount{})
	h := New(screen, scene)
	h.ScreenshotDir = t.TempDir()
	return h, screen
}

func TestMouseTapCountsOnPortrait(t *testing.T) {
	h, _ := newTestHost(t)
	h.scene.OnAttach()

	h.HandleEvent(tcell.NewEventMouse(20, 10, tcell.Button1, tcell.ModNone))
	if !h.pressed {
		t.Fatal("press not tracked")
	}
	h.HandleEvent(tcell.NewEventMouse(20, 10, tcell.ButtonNone, tcell.ModNone))
	if h.pressed {
		t.Error("release not tracked")
	}
	if got := h.scene.Portrait().Progress(); got != 0.125 {
		t.Errorf("progress = %v, want 0.125", got)
	}
}

func TestMouseDragOffCancelsTap(t *testing.T) {
	h, _ := newTestHost(t)
	h.scene.OnAttach()

	h.HandleEvent(tcell.NewEventMouse(20, 10, tcell.Button1, tcell.ModNone))
	h.HandleEvent(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone))
	h.HandleEvent(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))
	if got := h.scene.Portrait().Progress(); got != 0 {
		t.Errorf("progress = %v, want 0 after releasing outside", got)
	}
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		quit bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), true},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{"other", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHost(t)
			if got := h.HandleEvent(tt.ev); got == tt.quit {
				t.Errorf("HandleEvent = %v, want %v", got, !tt.quit)
			}
		})
	}
}

func TestDebugToggle(t *testing.T) {
	h, _ := newTestHost(t)
	h.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone))
	if !h.debug || !h.scene.Camera().DebugEnabled() {
		t.Error("debug not enabled")
	}
	h.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone))
	if h.debug || h.scene.Camera().DebugEnabled() {
		t.Error("debug not disabled")
	}
}

func TestResize(t *testing.T) {
	h, screen := newTestHost(t)
	screen.SetSize(80, 30)
	h.HandleEvent(tcell.NewEventResize(80, 30))
	if h.canvas.vp.cols != 80 || h.canvas.vp.rows != 30 || len(h.canvas.cells) != 80*30 {
		t.Errorf("viewport = %+v, cells = %d", h.canvas.vp, len(h.canvas.cells))
	}
}

func TestFrameDrawsPortrait(t *testing.T) {
	h, screen := newTestHost(t)
	h.scene.OnAttach()
	if !h.Frame(0) {
		t.Fatal("Frame reported stop without a script")
	}
	mainc, _, _, _ := screen.GetContent(20, 10)
	if mainc != textureRune {
		t.Errorf("center cell = %q, want portrait texture", mainc)
	}
}

func TestFrameWritesSnapshots(t *testing.T) {
	h, _ := newTestHost(t)
	h.scene.OnAttach()
	h.scene.Screenshot("locked view")
	h.Frame(0)

	matches, err := filepath.Glob(filepath.Join(h.ScreenshotDir, "*_locked_view.txt"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("snapshots = %v (%v)", matches, err)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 20 {
		t.Errorf("snapshot has %d lines, want 20", lines)
	}
}

func TestScriptExitWhenDone(t *testing.T) {
	h, _ := newTestHost(t)
	runner, err := folio.LoadTestScript([]byte(`{"steps": [{"action": "screenshot", "label": "only"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	h.Script = runner
	h.ExitWhenDone = true
	h.FrameInterval = time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if ctx.Err() != nil {
		t.Fatal("Run only returned on timeout")
	}
	if h.scene.Attached() {
		t.Error("scene still attached after Run")
	}
	matches, _ := filepath.Glob(filepath.Join(h.ScreenshotDir, "*_only.txt"))
	if len(matches) != 1 {
		t.Errorf("snapshots = %v", matches)
	}
}

func TestSafeLabel(t *testing.T) {
	tests := map[string]string{
		"menu":        "menu",
		" side/left ": "side_left",
		"":            "unlabeled",
	}
	for in, want := range tests {
		if got := safeLabel(in); got != want {
			t.Errorf("safeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBellPlayer(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	var p folio.SoundPlayer = BellPlayer{Screen: screen}
	p.Play("crunch.wav")
}
