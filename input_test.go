package folio

import (
	"testing"
)

// --- Hit shapes ---

func TestHitRect(t *testing.T) {
	r := HitRect{X: -5, Y: -5, Width: 10, Height: 10}
	tests := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{5, 5, true},
		{-5, -5, true},
		{5.1, 0, false},
		{0, -6, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHitCircle(t *testing.T) {
	c := HitCircle{CenterX: 10, Radius: 5}
	if !c.Contains(10, 0) || !c.Contains(15, 0) {
		t.Error("center and edge should hit")
	}
	if c.Contains(14, 4) {
		t.Error("corner outside radius should miss")
	}
}

func TestHitPolygon(t *testing.T) {
	tri := HitPolygon{Points: []Vec2{{0, 0}, {10, 0}, {0, 10}}}
	if !tri.Contains(2, 2) {
		t.Error("inside point missed")
	}
	if tri.Contains(8, 8) {
		t.Error("outside point hit")
	}
	if (HitPolygon{Points: []Vec2{{0, 0}, {1, 1}}}).Contains(0, 0) {
		t.Error("degenerate polygon should never hit")
	}
}

func TestNodeHitTestFallbacks(t *testing.T) {
	sprite := NewSprite("s", "", 20, 10)
	if !sprite.HitTest(Vec2{9, 4}) || sprite.HitTest(Vec2{11, 0}) {
		t.Error("sprite bounds hit test wrong")
	}
	if NewContainer("c").HitTest(Vec2{}) {
		t.Error("container without shape should not hit")
	}
	sprite.HitShape = HitCircle{Radius: 1}
	if sprite.HitTest(Vec2{9, 4}) {
		t.Error("HitShape should override sprite bounds")
	}
}

// --- Routing ---

type touchLog struct {
	phases []TouchPhase
	points []Vec2
}

func (l *touchLog) handler(phase TouchPhase, p Vec2) {
	l.phases = append(l.phases, phase)
	l.points = append(l.points, p)
}

func touchTarget(name string, x, y float64) (*Node, *touchLog) {
	n := NewContainer(name)
	n.SetPosition(x, y)
	n.HitShape = HitRect{X: -10, Y: -10, Width: 20, Height: 20}
	n.Interactable = true
	log := &touchLog{}
	n.OnTouch = log.handler
	return n, log
}

func TestRouterDeliversLocalPoints(t *testing.T) {
	root := NewContainer("root")
	btn, log := touchTarget("btn", 100, 50)
	root.AddChild(btn)
	r := NewTouchRouter(root)

	r.Dispatch(TouchBegan, []TouchPoint{{ID: 1, Pos: Vec2{103, 52}}})
	if r.Captured(1) != btn {
		t.Fatal("touch not captured")
	}
	r.Dispatch(TouchMoved, []TouchPoint{{ID: 1, Pos: Vec2{150, 50}}})
	r.Dispatch(TouchEnded, []TouchPoint{{ID: 1, Pos: Vec2{150, 50}}})

	want := []TouchPhase{TouchBegan, TouchMoved, TouchEnded}
	if len(log.phases) != len(want) {
		t.Fatalf("phases = %v, want %v", log.phases, want)
	}
	for i := range want {
		if log.phases[i] != want[i] {
			t.Errorf("phase[%d] = %s, want %s", i, log.phases[i], want[i])
		}
	}
	assertVec(t, "began local", log.points[0], Vec2{3, 2})
	assertVec(t, "moved local", log.points[1], Vec2{50, 0})
	if r.Captured(1) != nil {
		t.Error("capture not released on end")
	}
}

func TestRouterTopmostWins(t *testing.T) {
	root := NewContainer("root")
	below, belowLog := touchTarget("below", 0, 0)
	above, aboveLog := touchTarget("above", 5, 0)
	root.AddChildZ(above, 1)
	root.AddChildZ(below, 0)
	r := NewTouchRouter(root)

	r.Dispatch(TouchBegan, []TouchPoint{{ID: 1, Pos: Vec2{2, 0}}})
	if len(aboveLog.phases) != 1 || len(belowLog.phases) != 0 {
		t.Errorf("above=%d below=%d deliveries, want 1 and 0", len(aboveLog.phases), len(belowLog.phases))
	}
	if r.HitTest(Vec2{-9, 0}) != below {
		t.Error("uncovered point should hit the lower node")
	}
}

func TestRouterSkipsHiddenAndInert(t *testing.T) {
	root := NewContainer("root")
	hidden, _ := touchTarget("hidden", 0, 0)
	hidden.Visible = false
	inert, _ := touchTarget("inert", 0, 0)
	inert.Interactable = false
	root.AddChild(hidden)
	root.AddChild(inert)
	r := NewTouchRouter(root)
	if hit := r.HitTest(Vec2{}); hit != nil {
		t.Errorf("hit %s, want nil", hit.Name)
	}
}

func TestRouterMultiTouch(t *testing.T) {
	root := NewContainer("root")
	a, aLog := touchTarget("a", -50, 0)
	b, bLog := touchTarget("b", 50, 0)
	root.AddChild(a)
	root.AddChild(b)
	r := NewTouchRouter(root)

	r.Dispatch(TouchBegan, []TouchPoint{{ID: 1, Pos: Vec2{-50, 0}}, {ID: 2, Pos: Vec2{50, 0}}})
	r.Dispatch(TouchEnded, []TouchPoint{{ID: 2, Pos: Vec2{50, 0}}})

	if len(aLog.phases) != 1 || len(bLog.phases) != 2 {
		t.Errorf("a=%v b=%v", aLog.phases, bLog.phases)
	}
	if r.Captured(1) != a {
		t.Error("touch 1 should still be captured by a")
	}
}

func TestRouterResetCancels(t *testing.T) {
	root := NewContainer("root")
	btn, log := touchTarget("btn", 0, 0)
	root.AddChild(btn)
	r := NewTouchRouter(root)

	r.Dispatch(TouchBegan, []TouchPoint{{ID: 3, Pos: Vec2{}}})
	r.Reset()
	if got := log.phases[len(log.phases)-1]; got != TouchCancelled {
		t.Errorf("last phase = %s, want cancelled", got)
	}
	if r.Captured(3) != nil {
		t.Error("capture survived Reset")
	}
}

func TestRouterDisposedCaptureDropped(t *testing.T) {
	root := NewContainer("root")
	btn, log := touchTarget("btn", 0, 0)
	root.AddChild(btn)
	r := NewTouchRouter(root)

	r.Dispatch(TouchBegan, []TouchPoint{{ID: 1, Pos: Vec2{}}})
	btn.Dispose()
	r.Dispatch(TouchEnded, []TouchPoint{{ID: 1, Pos: Vec2{}}})
	if len(log.phases) != 1 {
		t.Errorf("disposed node received %v", log.phases)
	}
}

type gestureLog struct {
	pans    []Vec2
	ratios  []float64
	started int
}

func (g *gestureLog) Pan(tr Vec2) { g.pans = append(g.pans, tr) }

func (g *gestureLog) Pinch(ratio float64, began bool) {
	if began {
		g.started++
	}
	g.ratios = append(g.ratios, ratio)
}

func TestRouterPanOnFreeTouch(t *testing.T) {
	r := NewTouchRouter(NewContainer("root"))
	g := &gestureLog{}
	r.Gestures = g

	r.Dispatch(TouchBegan, []TouchPoint{{ID: 1, Pos: Vec2{0, 0}}})
	r.Dispatch(TouchMoved, []TouchPoint{{ID: 1, Pos: Vec2{5, -3}}})
	r.Dispatch(TouchMoved, []TouchPoint{{ID: 1, Pos: Vec2{6, -3}}})

	if len(g.pans) != 2 {
		t.Fatalf("pans = %v", g.pans)
	}
	assertVec(t, "pan[0]", g.pans[0], Vec2{5, -3})
	assertVec(t, "pan[1]", g.pans[1], Vec2{1, 0})
}

func TestRouterPinch(t *testing.T) {
	r := NewTouchRouter(NewContainer("root"))
	g := &gestureLog{}
	r.Gestures = g

	r.Dispatch(TouchBegan, []TouchPoint{{ID: 1, Pos: Vec2{-10, 0}}, {ID: 2, Pos: Vec2{10, 0}}})
	r.Dispatch(TouchMoved, []TouchPoint{{ID: 1, Pos: Vec2{-20, 0}}, {ID: 2, Pos: Vec2{20, 0}}})

	if g.started != 1 {
		t.Fatalf("pinch started %d times", g.started)
	}
	assertNear(t, "ratio", g.ratios[len(g.ratios)-1], 2)
	if len(g.pans) != 0 {
		t.Errorf("two-finger move panned: %v", g.pans)
	}
}

func TestNodeAtFallsBackToRoot(t *testing.T) {
	root := NewContainer("root")
	sprite := NewSprite("sprite", "", 10, 10)
	root.AddChild(sprite)
	r := NewTouchRouter(root)
	if r.NodeAt(Vec2{1, 1}) != sprite {
		t.Error("NodeAt missed sprite")
	}
	if r.NodeAt(Vec2{100, 100}) != root {
		t.Error("NodeAt should fall back to root")
	}
}
