package folio

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

// captureStderr runs fn with os.Stderr redirected and returns what it wrote.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	fn()
	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

// ---- Debug mode tests ------------------------------------------------------

func TestDebugMode_DisposedNodePanics(t *testing.T) {
	s := NewScene(DefaultConfig())
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	parent := NewContainer("parent")
	s.Root().AddChild(parent)

	child := NewSprite("child", "", 10, 10)
	child.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on AddChild with disposed node, got none")
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, "disposed") {
			t.Errorf("panic message should mention 'disposed', got: %s", msg)
		}
	}()

	parent.AddChild(child)
}

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	s := NewScene(DefaultConfig())
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	output := captureStderr(t, func() {
		current := s.Root()
		for i := 0; i < debugMaxTreeDepth+5; i++ {
			child := NewContainer(fmt.Sprintf("depth_%d", i))
			current.AddChild(child)
			current = child
		}
	})

	if !strings.Contains(output, "warning: tree depth") {
		t.Errorf("expected tree depth warning in stderr, got: %q", output)
	}
}

func TestDebugMode_LogsTransitions(t *testing.T) {
	s := NewScene(DefaultConfig())
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)
	s.OnAttach()

	output := captureStderr(t, func() {
		s.OnTouchBegan([]TouchPoint{{ID: 1, Pos: Vec2{}}})
		s.Portrait().SetProgress(1)
		stepScene(s, s.Config().Portrait.UnlockDelay+0.1)
	})

	for _, want := range []string{
		"[folio] touch in portrait",
		"portrait-unlocked",
		"state locked -> main-menu",
		"frames: ",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("debug output missing %q:\n%s", want, output)
		}
	}
}

func TestDebugMode_QuietWhenOff(t *testing.T) {
	s := NewScene(DefaultConfig())
	s.OnAttach()
	output := captureStderr(t, func() {
		s.OnTouchBegan([]TouchPoint{{ID: 1, Pos: Vec2{}}})
		stepScene(s, 1.5)
	})
	if output != "" {
		t.Errorf("unexpected output with debug off: %q", output)
	}
}

func TestDebugMode_PanMovesCamera(t *testing.T) {
	s := NewScene(DefaultConfig())
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	// A drag that starts off every button pans the camera.
	captureStderr(t, func() {
		s.OnTouchBegan([]TouchPoint{{ID: 1, Pos: Vec2{150, 300}}})
		s.OnTouchMoved([]TouchPoint{{ID: 1, Pos: Vec2{160, 300}}})
		s.OnTouchEnded([]TouchPoint{{ID: 1, Pos: Vec2{160, 300}}})
	})
	assertVec(t, "camera target", s.Camera().Position(), Vec2{-10, 0})
}
