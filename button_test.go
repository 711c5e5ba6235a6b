package folio

import (
	"testing"
)

// runFor advances sch over root in 1/60 s steps for total seconds plus one
// extra step, so every timeline of that length has finished.
func runFor(sch *Scheduler, root *Node, total float64) {
	const step = 1.0 / 60
	for elapsed := 0.0; elapsed <= total+step; elapsed += step {
		sch.Advance(root, step)
	}
}

type eventLog struct {
	events []ButtonEvent
}

func (l *eventLog) sink() EventSink {
	return EventFunc(func(e ButtonEvent) { l.events = append(l.events, e) })
}

// --- Plain button state machine ---

func TestPlainButtonStateMachine(t *testing.T) {
	inside := Vec2{1, 1}
	outside := Vec2{50, 0}

	tests := []struct {
		name      string
		phases    []TouchPhase
		points    []Vec2
		completes int
		selected  bool
	}{
		{"tap", []TouchPhase{TouchBegan, TouchEnded}, []Vec2{inside, inside}, 1, false},
		{"held", []TouchPhase{TouchBegan}, []Vec2{inside}, 0, true},
		{"drag out", []TouchPhase{TouchBegan, TouchMoved}, []Vec2{inside, outside}, 0, false},
		{"drag out and back", []TouchPhase{TouchBegan, TouchMoved, TouchMoved}, []Vec2{inside, outside, inside}, 0, true},
		{"release outside", []TouchPhase{TouchBegan, TouchMoved, TouchEnded}, []Vec2{inside, outside, outside}, 0, false},
		{"cancel", []TouchPhase{TouchBegan, TouchCancelled}, []Vec2{inside, inside}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completes := 0
			b := NewPlainButton("b", HitRect{X: -10, Y: -10, Width: 20, Height: 20})
			b.OnComplete = func() { completes++ }
			for i, ph := range tt.phases {
				b.Touch(ph, tt.points[i])
			}
			if completes != tt.completes {
				t.Errorf("completions = %d, want %d", completes, tt.completes)
			}
			if b.Selected() != tt.selected {
				t.Errorf("Selected = %v, want %v", b.Selected(), tt.selected)
			}
		})
	}
}

func TestDeactivatedButtonIgnoresTouches(t *testing.T) {
	completes := 0
	b := NewPlainButton("b", HitCircle{Radius: 10})
	b.OnComplete = func() { completes++ }
	b.Deactivate()
	b.Touch(TouchBegan, Vec2{})
	b.Touch(TouchEnded, Vec2{})
	if completes != 0 || b.Selected() {
		t.Error("deactivated button responded")
	}
	b.Activate()
	b.Touch(TouchBegan, Vec2{})
	b.Touch(TouchEnded, Vec2{})
	if completes != 1 {
		t.Errorf("completions = %d after Activate, want 1", completes)
	}
}

func TestButtonThroughRouter(t *testing.T) {
	root := NewContainer("root")
	b := NewPlainButton("b", HitRect{X: -10, Y: -10, Width: 20, Height: 20})
	b.Node().SetPosition(100, 0)
	completes := 0
	b.OnComplete = func() { completes++ }
	root.AddChild(b.Node())
	r := NewTouchRouter(root)

	r.Dispatch(TouchBegan, []TouchPoint{{ID: 1, Pos: Vec2{95, 5}}})
	r.Dispatch(TouchEnded, []TouchPoint{{ID: 1, Pos: Vec2{95, 5}}})
	if completes != 1 {
		t.Errorf("completions = %d, want 1", completes)
	}
}

var _ Button = (*PlainButton)(nil)
var _ Button = (*BackButton)(nil)
var _ Button = (*MenuOptionButton)(nil)
var _ Button = (*PortraitButton)(nil)

// --- Back button ---

func newTestBackButton() (*BackButton, *Scheduler, *Node) {
	root := NewContainer("root")
	b := NewBackButton(375, DefaultConfig().Back)
	root.AddChild(b.Node())
	return b, &Scheduler{}, root
}

func TestBackButtonDirectionBeforePresentPanics(t *testing.T) {
	b, _, _ := newTestBackButton()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic reading direction before Present")
		}
	}()
	_ = b.Direction()
}

func TestBackButtonPresentDismiss(t *testing.T) {
	tests := []struct {
		dir       Direction
		offScreen float64
		onScreen  float64
	}{
		{DirectionLeft, 217.5, 187.5},
		{DirectionRight, -217.5, -187.5},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			b, sch, root := newTestBackButton()
			cfg := DefaultConfig().Back

			b.Present(tt.dir)
			if !b.Presented() || b.Direction() != tt.dir {
				t.Fatal("Present did not record state")
			}
			assertVec(t, "anchored", b.Node().Position(), Vec2{tt.offScreen, cfg.Y})

			runFor(sch, root, cfg.PresentDelay/2)
			assertNear(t, "x during delay", b.Node().X, tt.offScreen)

			runFor(sch, root, cfg.PresentDelay+cfg.SlideDuration)
			assertNear(t, "x presented", b.Node().X, tt.onScreen)

			b.Dismiss()
			if b.Presented() {
				t.Error("still presented after Dismiss")
			}
			runFor(sch, root, cfg.SlideDuration)
			assertNear(t, "x dismissed", b.Node().X, tt.offScreen)
		})
	}
}

func TestBackButtonIdempotent(t *testing.T) {
	b, sch, root := newTestBackButton()
	cfg := DefaultConfig().Back

	b.Dismiss() // not presented: no-op
	if b.Node().HasActions() {
		t.Fatal("Dismiss before Present scheduled a slide")
	}

	b.Present(DirectionLeft)
	runFor(sch, root, cfg.PresentDelay+cfg.SlideDuration)
	b.Present(DirectionRight) // already presented: no-op
	if b.Direction() != DirectionLeft || b.Node().HasActions() {
		t.Error("second Present changed state")
	}

	b.Dismiss()
	runFor(sch, root, cfg.SlideDuration)
	b.Dismiss()
	if b.Node().HasActions() {
		t.Error("second Dismiss scheduled a slide")
	}

	// Round trip returns to the same resting points.
	b.Present(DirectionLeft)
	runFor(sch, root, cfg.PresentDelay+cfg.SlideDuration)
	assertNear(t, "x", b.Node().X, 187.5)
}

func TestBackButtonDismissDuringPresentReplacesSlide(t *testing.T) {
	b, sch, root := newTestBackButton()
	cfg := DefaultConfig().Back

	b.Present(DirectionLeft)
	runFor(sch, root, 0.5)
	b.Dismiss()
	runFor(sch, root, cfg.PresentDelay+cfg.SlideDuration)
	assertNear(t, "x", b.Node().X, 217.5)
}

func TestBackButtonEmits(t *testing.T) {
	b, _, _ := newTestBackButton()
	log := &eventLog{}
	b.Events = log.sink()
	b.Present(DirectionRight)

	b.Touch(TouchBegan, Vec2{})
	b.Touch(TouchEnded, Vec2{})

	if len(log.events) != 1 {
		t.Fatalf("events = %v", log.events)
	}
	if e := log.events[0]; e.Kind != EventBackPressed || e.Direction != DirectionRight {
		t.Errorf("event = %+v", e)
	}
}

// --- Menu option button ---

func newTestMenuButton(dir Direction) (*MenuOptionButton, *Scheduler, *Node, *eventLog) {
	root := NewContainer("root")
	b := NewMenuOptionButton(dir, "PROJECTS", 375, 667, DefaultConfig().Menu)
	b.SetButtonPosition(Vec2{dir.Sign() * 375, -250})
	log := &eventLog{}
	b.Events = log.sink()
	root.AddChild(b.Node())
	return b, &Scheduler{}, root, log
}

func TestMenuButtonLayout(t *testing.T) {
	left, _, _, _ := newTestMenuButton(DirectionLeft)
	right, _, _, _ := newTestMenuButton(DirectionRight)

	assertNear(t, "left anchor", left.Anchor(), -375)
	assertNear(t, "right anchor", right.Anchor(), 375)
	assertNear(t, "left label x", left.Label().X, 50)
	assertNear(t, "right label x", right.Label().X, -50)
	assertNear(t, "panel y", left.Panel().Y, 250)

	if left.Panel().Color != Gray(0.85) || left.Label().Color != Gray(0.15) {
		t.Error("left row should use the light scheme")
	}
	if right.Panel().Color != Gray(0.15) || right.Label().Color != Gray(0.85) {
		t.Error("right row should use the dark scheme")
	}
}

func TestMenuButtonPresentAndSelect(t *testing.T) {
	b, sch, root, log := newTestMenuButton(DirectionLeft)
	cfg := DefaultConfig().Menu

	b.Present(cfg.Stagger)
	runFor(sch, root, cfg.Stagger+cfg.PresentDuration)
	assertNear(t, "presented x", b.Node().X, -60)

	b.Touch(TouchBegan, Vec2{})
	b.Touch(TouchEnded, Vec2{})
	if !b.WasSelected() {
		t.Fatal("tap did not select")
	}
	if len(log.events) != 1 || log.events[0].Kind != EventMenuSelected || log.events[0].Name != "PROJECTS" {
		t.Fatalf("events = %+v", log.events)
	}

	b.Select()
	runFor(sch, root, cfg.SelectDelay+cfg.SelectDuration)
	assertNear(t, "selected x", b.Node().X, 375)
	// The panel now covers the screen.
	assertVec(t, "panel world", b.Panel().LocalToWorld(Vec2{}), Vec2{0, 0})

	b.Reset()
	if b.WasSelected() {
		t.Error("Reset kept selection")
	}
	runFor(sch, root, cfg.ResetDuration)
	assertNear(t, "reset x", b.Node().X, -60)
}

func TestMenuButtonDismissSkipsSelected(t *testing.T) {
	b, sch, root, _ := newTestMenuButton(DirectionRight)
	cfg := DefaultConfig().Menu
	b.Present(0)
	runFor(sch, root, cfg.PresentDuration)
	b.CompletionAction()

	b.Dismiss(0)
	if !b.Activated() || b.Node().HasActions() {
		t.Error("Dismiss touched a selected row")
	}
	assertNear(t, "x", b.Node().X, 60)
}

func TestMenuButtonDismiss(t *testing.T) {
	b, sch, root, log := newTestMenuButton(DirectionRight)
	cfg := DefaultConfig().Menu
	b.Present(0)
	runFor(sch, root, cfg.PresentDuration)

	b.Dismiss(0.3)
	if b.Activated() {
		t.Error("dismissed row still active")
	}
	runFor(sch, root, 0.3+cfg.DismissDuration)
	assertNear(t, "x", b.Node().X, 375)

	b.Touch(TouchBegan, Vec2{})
	b.Touch(TouchEnded, Vec2{})
	b.CompletionAction()
	if len(log.events) != 0 || b.WasSelected() {
		t.Error("inactive row reported a selection")
	}
}

func TestMenuButtonWithoutSinkIgnoresCompletion(t *testing.T) {
	b := NewMenuOptionButton(DirectionLeft, "ABOUT ME", 375, 667, DefaultConfig().Menu)
	b.CompletionAction()
	if b.WasSelected() {
		t.Error("row without sink became selected")
	}
}
