package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/folio"
)

// maxPointers is the mouse (slot 0) plus nine touch slots.
const maxPointers = 10

// mouseSource is the source id of the left mouse button.
const mouseSource = -1

// pointerSample is one pressed pointer as seen this frame, in screen
// coordinates. source is the ebiten touch ID, or mouseSource.
type pointerSample struct {
	slot   int
	source int
	x, y   float64
}

// touchTracker turns per-frame pointer snapshots into began / moved / ended
// touch batches.
type touchTracker struct {
	down   [maxPointers]bool
	source [maxPointers]int
	last   [maxPointers]folio.Vec2
}

// diff compares the pressed pointers in samples with the previous frame.
// Positions go through toScene. Moved only reports pointers whose position
// changed. A slot taken over by a different source in one frame ends the old
// touch and begins a new one; deliver sends ended before began.
func (t *touchTracker) diff(samples []pointerSample, toScene func(x, y float64) folio.Vec2) (began, moved, ended []folio.TouchPoint) {
	var seen [maxPointers]bool
	for _, s := range samples {
		if s.slot < 0 || s.slot >= maxPointers {
			continue
		}
		seen[s.slot] = true
		p := folio.TouchPoint{ID: s.slot, Pos: toScene(s.x, s.y)}
		switch {
		case !t.down[s.slot]:
			began = append(began, p)
		case t.source[s.slot] != s.source:
			ended = append(ended, folio.TouchPoint{ID: s.slot, Pos: t.last[s.slot]})
			began = append(began, p)
		case p.Pos != t.last[s.slot]:
			moved = append(moved, p)
		}
		t.down[s.slot] = true
		t.source[s.slot] = s.source
		t.last[s.slot] = p.Pos
	}
	for i := range t.down {
		if t.down[i] && !seen[i] {
			ended = append(ended, folio.TouchPoint{ID: i, Pos: t.last[i]})
			t.down[i] = false
		}
	}
	return began, moved, ended
}

// pressed returns the ids of pointers currently held down.
func (t *touchTracker) pressed() []folio.TouchPoint {
	var out []folio.TouchPoint
	for i := range t.down {
		if t.down[i] {
			out = append(out, folio.TouchPoint{ID: i, Pos: t.last[i]})
		}
	}
	return out
}

// touchSlots maps ebiten touch IDs to pointer slots 1-9.
type touchSlots struct {
	used [maxPointers]bool
	ids  [maxPointers]ebiten.TouchID
}

// slot returns the existing slot for tid or allocates one. Returns -1 when
// all slots are taken.
func (s *touchSlots) slot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.used[i] && s.ids[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.used[i] {
			s.used[i] = true
			s.ids[i] = tid
			return i
		}
	}
	return -1
}

// release frees every slot not listed in active.
func (s *touchSlots) release(active []ebiten.TouchID) {
	for i := 1; i < maxPointers; i++ {
		if !s.used[i] {
			continue
		}
		found := false
		for _, tid := range active {
			if s.ids[i] == tid {
				found = true
				break
			}
		}
		if !found {
			s.used[i] = false
			s.ids[i] = 0
		}
	}
}

// input samples the mouse and touch screen each frame.
type input struct {
	tracker  touchTracker
	slots    touchSlots
	touchIDs []ebiten.TouchID
	samples  []pointerSample
}

// poll reads ebiten's pointer state. The left mouse button is slot 0.
func (in *input) poll() []pointerSample {
	in.samples = in.samples[:0]
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		in.samples = append(in.samples, pointerSample{slot: 0, source: mouseSource, x: float64(mx), y: float64(my)})
	}

	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	in.slots.release(in.touchIDs)
	for _, tid := range in.touchIDs {
		slot := in.slots.slot(tid)
		if slot < 0 {
			continue
		}
		tx, ty := ebiten.TouchPosition(tid)
		in.samples = append(in.samples, pointerSample{slot: slot, source: int(tid), x: float64(tx), y: float64(ty)})
	}
	return in.samples
}

// deliver forwards one frame of pointer changes to the scene. Ends go
// first so a reused slot is released before its new touch begins.
func (in *input) deliver(scene *folio.Scene, samples []pointerSample) {
	began, moved, ended := in.tracker.diff(samples, scene.ScreenToScene)
	scene.OnTouchEnded(ended)
	scene.OnTouchBegan(began)
	scene.OnTouchMoved(moved)
}

// cancel reports every held pointer as cancelled and forgets them.
func (in *input) cancel(scene *folio.Scene) {
	held := in.tracker.pressed()
	in.tracker = touchTracker{}
	in.slots = touchSlots{}
	scene.OnTouchCancelled(held)
}
