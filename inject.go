package folio

// injectTouchID is the touch ID used for synthetic touches. Real hosts use
// non-negative IDs.
const injectTouchID = -1

// injectedTouch represents a single queued synthetic touch phase.
// Screen coordinates are used (matching what an automation script sees in
// screenshots) and converted to scene space when consumed.
type injectedTouch struct {
	phase            TouchPhase
	screenX, screenY float64
}

// InjectPress queues a touch-began at the given screen coordinates. The
// event is consumed on the next Update.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, injectedTouch{phase: TouchBegan, screenX: x, screenY: y})
}

// InjectMove queues a touch-moved at the given screen coordinates. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, injectedTouch{phase: TouchMoved, screenX: x, screenY: y})
}

// InjectRelease queues a touch-ended at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, injectedTouch{phase: TouchEnded, screenX: x, screenY: y})
}

// InjectTap is a convenience that queues a press followed by a release at
// the same screen coordinates. Consumes two frames.
func (s *Scene) InjectTap(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(Lerp(fromX, toX, t), Lerp(fromY, toY, t))
	}
	s.InjectRelease(toX, toY)
}

// processInjectedInput pops one event from the inject queue, converts
// screen→scene and dispatches it like a real touch. Returns true if an
// event was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	touch := []TouchPoint{{ID: injectTouchID, Pos: s.ScreenToScene(evt.screenX, evt.screenY)}}
	switch evt.phase {
	case TouchBegan:
		s.OnTouchBegan(touch)
	default:
		s.dispatch(evt.phase, touch)
	}
	return true
}
