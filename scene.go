package folio

import (
	"github.com/yohamta/donburi"
)

// MenuState is the phase of the menu flow.
type MenuState uint8

const (
	StateLocked   MenuState = iota // portrait visible, menu hidden
	StateMainMenu                  // the four menu rows are on screen
	StateSideMenu                  // one row selected, back button visible
)

func (s MenuState) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateMainMenu:
		return "main-menu"
	case StateSideMenu:
		return "side-menu"
	}
	return "unknown"
}

// Scene is the root object a host drives: it owns the node tree, the camera,
// the widgets and the menu state machine.
//
// A host calls OnAttach when the view appears, OnFrame once per rendered
// frame with a monotonic timestamp in seconds, the OnTouch* methods as the
// OS reports touches (in scene space: origin at the screen center, Y down),
// and OnDetach when the view goes away.
type Scene struct {
	cfg Config

	root      *Node
	camera    *Camera
	scheduler Scheduler
	router    *TouchRouter
	clock     FrameClock

	world donburi.World
	sink  EventSink

	state    MenuState
	settling bool
	attached bool
	debug    bool

	portrait *PortraitButton
	hint     *Node
	back     *BackButton
	menu     []*MenuOptionButton

	statsTimer *Timer
	frames     int

	// Scripted input (inject.go, testrunner.go)
	injectQueue     []injectedTouch
	testRunner      *TestRunner
	screenshotQueue []string
}

// NewScene builds the locked scene described by cfg: portrait and hint on
// the camera layer, back button parked on the HUD.
func NewScene(cfg Config) *Scene {
	s := &Scene{
		cfg:        cfg,
		root:       NewContainer("scene"),
		camera:     NewCamera(cfg.Camera.Smoothing),
		world:      donburi.NewWorld(),
		statsTimer: NewTimer(1),
	}
	s.sink = NewEventSink(s.world)
	ButtonEventType.Subscribe(s.world, s.onButtonEvent)

	s.root.AddChild(s.camera.Node())
	s.router = NewTouchRouter(s.root)
	s.router.Gestures = s.camera

	s.back = NewBackButton(cfg.Width, cfg.Back)
	s.back.Events = s.sink

	s.portrait = NewPortraitButton(cfg.Portrait)
	s.portrait.Events = s.sink
	s.portrait.Shaker = s.camera

	s.hint = NewLabel("hint", cfg.Hint.Text, cfg.Hint.FontSize)
	s.hint.Y = cfg.Hint.Y

	s.camera.AddChild(s.portrait.Node(), 0, LayerScene)
	s.camera.AddChild(s.hint, -100, LayerScene)
	s.camera.AddChild(s.back.Node(), 10, LayerHUD)

	s.SetDebugMode(cfg.Debug)
	return s
}

// --- Host contract ---

// OnAttach starts the scene. The next OnFrame yields a zero delta.
func (s *Scene) OnAttach() {
	s.attached = true
	s.clock.Reset()
	s.debugf("attached (%gx%g)", s.cfg.Width, s.cfg.Height)
}

// OnDetach stops the scene and cancels touches in flight.
func (s *Scene) OnDetach() {
	s.attached = false
	s.router.Reset()
	s.processEvents()
	s.debugf("detached")
}

// Attached reports whether the scene is between OnAttach and OnDetach.
func (s *Scene) Attached() bool { return s.attached }

// OnFrame advances the scene to timestamp ts (seconds). Ignored while
// detached.
func (s *Scene) OnFrame(ts float64) {
	if !s.attached {
		return
	}
	s.Update(s.clock.Tick(ts))
}

// Update advances the scene by dt seconds: scripted input, entity update,
// camera, actions, then queued widget events.
func (s *Scene) Update(dt float64) {
	if s.testRunner != nil {
		s.testRunner.step(s, dt)
	}
	s.processInjectedInput()

	if s.portrait != nil {
		s.portrait.Update(dt)
	}
	s.camera.Update(dt)
	s.scheduler.Advance(s.root, dt)
	s.processEvents()

	s.frames++
	if s.debug && s.statsTimer.Update(dt) {
		nodes, actions := countTree(s.root)
		s.debugLogStats(frameStats{frames: s.frames, nodes: nodes, actions: actions, state: s.state})
		s.frames = 0
	}
}

// OnTouchBegan delivers new touches.
func (s *Scene) OnTouchBegan(touches []TouchPoint) {
	if s.debug && len(touches) > 0 {
		s.debugf("touch in %s", s.router.NodeAt(touches[0].Pos).Name)
	}
	s.dispatch(TouchBegan, touches)
}

// OnTouchMoved delivers moved touches.
func (s *Scene) OnTouchMoved(touches []TouchPoint) { s.dispatch(TouchMoved, touches) }

// OnTouchEnded delivers lifted touches.
func (s *Scene) OnTouchEnded(touches []TouchPoint) { s.dispatch(TouchEnded, touches) }

// OnTouchCancelled delivers touches the OS took away.
func (s *Scene) OnTouchCancelled(touches []TouchPoint) { s.dispatch(TouchCancelled, touches) }

func (s *Scene) dispatch(phase TouchPhase, touches []TouchPoint) {
	if len(touches) == 0 {
		return
	}
	s.router.Dispatch(phase, touches)
	s.processEvents()
}

// --- Accessors ---

// Root returns the top of the node tree.
func (s *Scene) Root() *Node { return s.root }

// Camera returns the camera controller.
func (s *Scene) Camera() *Camera { return s.camera }

// Config returns the configuration the scene was built with.
func (s *Scene) Config() Config { return s.cfg }

// Size returns the scene size in points.
func (s *Scene) Size() Vec2 { return Vec2{s.cfg.Width, s.cfg.Height} }

// Background returns the clear color.
func (s *Scene) Background() Color { return Gray(s.cfg.Background) }

// State returns the menu phase.
func (s *Scene) State() MenuState { return s.state }

// Portrait returns the portrait button, or nil once it has been unlocked
// and removed.
func (s *Scene) Portrait() *PortraitButton { return s.portrait }

// BackButton returns the back button.
func (s *Scene) BackButton() *BackButton { return s.back }

// MenuButtons returns the menu rows in creation order (empty while locked).
func (s *Scene) MenuButtons() []*MenuOptionButton { return s.menu }

// World returns the Donburi world widget events are published on.
func (s *Scene) World() donburi.World { return s.world }

// SetSoundPlayer routes PlaySound actions to p.
func (s *Scene) SetSoundPlayer(p SoundPlayer) { s.scheduler.Sounds = p }

// ScreenToScene converts a top-left-origin screen point to scene space.
func (s *Scene) ScreenToScene(x, y float64) Vec2 {
	return Vec2{x - s.cfg.Width/2, y - s.cfg.Height/2}
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, touches and once-per-second stats are logged to stderr, and
// unclaimed drags and pinches pan and zoom the camera.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	if enabled {
		s.camera.EnableDebug()
	} else {
		s.camera.DisableDebug()
	}
}

// --- Menu choreography ---

func (s *Scene) processEvents() {
	ButtonEventType.ProcessEvents(s.world)
}

func (s *Scene) onButtonEvent(_ donburi.World, e ButtonEvent) {
	s.debugf("%s %s (%s) in %s", e.Kind, e.Name, e.Direction, s.state)
	if s.settling {
		return
	}
	switch e.Kind {
	case EventPortraitUnlocked:
		if s.state == StateLocked {
			s.dismissUnlockButton()
		}
	case EventMenuSelected:
		if s.state == StateMainMenu {
			s.selectMenuRow(e.Name)
		}
	case EventBackPressed:
		if s.state == StateSideMenu {
			s.dismissSideMenu()
		}
	}
}

func (s *Scene) setState(st MenuState) {
	if s.state != st {
		s.debugf("state %s -> %s", s.state, st)
	}
	s.state = st
}

// dismissUnlockButton removes the portrait and hint and brings in the menu.
func (s *Scene) dismissUnlockButton() {
	s.camera.RemoveChildren(LayerScene, s.hint, s.portrait.Node())
	s.hint.Dispose()
	s.portrait.Node().Dispose()
	s.hint = nil
	s.portrait = nil

	s.setUpMenuButtons()
	s.presentMainMenu()
}

// setUpMenuButtons stacks the four rows top to bottom, alternating Left and
// Right, each parked at its off-screen anchor.
func (s *Scene) setUpMenuButtons() {
	w, h := s.cfg.Width, s.cfg.Height
	rowHeight := h / 4
	yOffset := rowHeight + rowHeight/2

	for i, name := range s.cfg.Menu.Labels {
		dir := DirectionLeft
		if i%2 == 1 {
			dir = DirectionRight
		}
		b := NewMenuOptionButton(dir, name, w, h, s.cfg.Menu)
		b.SetButtonPosition(Vec2{dir.Sign() * w, rowHeight*float64(i) - yOffset})
		b.Events = s.sink
		s.camera.AddChild(b.Node(), 0, LayerHUD)
		s.menu = append(s.menu, b)
	}
}

// presentMainMenu brings every row back with no selection.
func (s *Scene) presentMainMenu() {
	s.settling = false
	var delay float64
	for _, b := range s.menu {
		b.clearSelection()
		b.Present(delay)
		delay += s.cfg.Menu.Stagger
	}
	s.setState(StateMainMenu)
}

// selectMenuRow accepts name as the one selected row. Other rows that
// completed in the same batch of touches lose their selection before the
// menu is dismissed.
func (s *Scene) selectMenuRow(name string) {
	var chosen *MenuOptionButton
	for _, b := range s.menu {
		if b.Name() == name && chosen == nil {
			chosen = b
			continue
		}
		b.clearSelection()
	}
	if chosen == nil {
		return
	}
	s.dismissMainMenu()
	s.presentSideMenu(chosen)
}

func (s *Scene) dismissMainMenu() {
	var delay float64
	for _, b := range s.menu {
		b.Dismiss(delay)
		delay += s.cfg.Menu.Stagger
	}
}

func (s *Scene) presentSideMenu(chosen *MenuOptionButton) {
	chosen.Deactivate()
	chosen.Select()
	s.back.Present(chosen.Direction())
	s.setState(StateSideMenu)
}

// dismissSideMenu hides the back button, returns the selected row and, once
// the settle delay has passed, re-presents the main menu. Rows stay inactive
// until then.
func (s *Scene) dismissSideMenu() {
	s.back.Dismiss()
	for _, b := range s.menu {
		if b.WasSelected() {
			b.Reset()
		}
		b.Deactivate()
	}
	s.settling = true
	s.root.Run(Sequence(Wait(s.cfg.Menu.SettleDelay), Callback(s.presentMainMenu)))
}
