package folio

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Seconds float64 `json:"seconds,omitempty"`
	Count   int     `json:"count,omitempty"`
}

// script is the top-level JSON structure for an input script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// TestRunner sequences injected touches, waits and screenshots across
// frames for automated runs. Attach to a Scene via SetTestRunner.
//
// Supported actions: "tap" (repeated Count times), "press", "move",
// "release", "drag", "wait" (Frames or Seconds) and "screenshot". All
// coordinates are screen coordinates.
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	waitTime  float64
	done      bool
}

// LoadTestScript parses a JSON input script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "tap", "press", "move", "release", "drag", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: sc.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called at the start of every Update.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame of dt seconds.
func (r *TestRunner) step(s *Scene, dt float64) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.waitTime > 0 {
		r.waitTime -= dt
		if r.waitTime > 0 {
			return
		}
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "tap":
		for i := 0; i < max(st.Count, 1); i++ {
			s.InjectTap(st.X, st.Y)
		}
	case "press":
		s.InjectPress(st.X, st.Y)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
		r.waitTime = st.Seconds
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.waitTime <= 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

// Screenshot queues a labeled screenshot request. Hosts that can capture
// frames drain the queue with TakeScreenshotRequests after drawing.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// TakeScreenshotRequests returns and clears the queued screenshot labels.
func (s *Scene) TakeScreenshotRequests() []string {
	if len(s.screenshotQueue) == 0 {
		return nil
	}
	out := s.screenshotQueue
	s.screenshotQueue = nil
	return out
}
