package folio

// Button is the contract shared by every touchable widget.
type Button interface {
	Node() *Node
	Activated() bool
	Selected() bool
	Activate()
	Deactivate()
	// HitTest reports whether the local-space point is inside the button.
	HitTest(p Vec2) bool
	// Touch feeds one touch phase with a local-space point.
	Touch(phase TouchPhase, p Vec2)
	CompletionAction()
}

// buttonCore is the press/release state machine embedded by every variant.
// A deactivated button ignores every phase and never completes.
type buttonCore struct {
	node      *Node
	activated bool
	selected  bool
	complete  func()
}

// init wires node's touch handler to the state machine. complete is the
// variant's CompletionAction.
func (b *buttonCore) init(node *Node, complete func()) {
	b.node = node
	b.activated = true
	b.complete = complete
	node.Interactable = true
	node.OnTouch = b.Touch
}

// Node returns the button's root node.
func (b *buttonCore) Node() *Node { return b.node }

// Activated reports whether the button responds to touches.
func (b *buttonCore) Activated() bool { return b.activated }

// Selected reports whether a touch is currently held on the button.
func (b *buttonCore) Selected() bool { return b.selected }

// Activate makes the button respond to touches.
func (b *buttonCore) Activate() { b.activated = true }

// Deactivate makes the button ignore touches.
func (b *buttonCore) Deactivate() { b.activated = false }

// HitTest reports whether the local-space point p is inside the button.
func (b *buttonCore) HitTest(p Vec2) bool { return b.node.HitTest(p) }

// Touch runs the state machine for one phase.
func (b *buttonCore) Touch(phase TouchPhase, p Vec2) {
	if !b.activated {
		return
	}
	switch phase {
	case TouchBegan:
		b.selected = true
	case TouchMoved:
		b.selected = b.HitTest(p)
	case TouchEnded:
		if b.HitTest(p) && b.complete != nil {
			b.complete()
		}
		b.selected = false
	case TouchCancelled:
		b.selected = false
	}
}

// PlainButton invokes OnComplete when tapped.
type PlainButton struct {
	buttonCore
	OnComplete func()
}

// NewPlainButton creates a button node named name whose hit area is shape.
func NewPlainButton(name string, shape HitShape) *PlainButton {
	b := &PlainButton{}
	n := NewContainer(name)
	n.HitShape = shape
	b.init(n, b.CompletionAction)
	return b
}

// CompletionAction calls OnComplete if set.
func (b *PlainButton) CompletionAction() {
	if b.OnComplete != nil {
		b.OnComplete()
	}
}
