package folio

// slideTag names the timeline that moves a widget between its on- and
// off-screen positions. Starting a new slide replaces the running one.
const slideTag = "slide"

// BackButton slides in at the screen edge matching the selected menu side
// and reports EventBackPressed when tapped.
type BackButton struct {
	buttonCore

	// Events receives EventBackPressed. Nil drops it.
	Events EventSink

	sprite      *Node
	screenWidth float64
	cfg         BackConfig
	presented   bool
	direction   Direction
}

// NewBackButton creates a hidden back button for a screen screenWidth wide.
func NewBackButton(screenWidth float64, cfg BackConfig) *BackButton {
	b := &BackButton{screenWidth: screenWidth, cfg: cfg}
	n := NewContainer("back")
	n.SetPosition(9999, 9999)
	n.HitShape = HitRect{X: -cfg.Width / 2, Y: -cfg.Height / 2, Width: cfg.Width, Height: cfg.Height}
	b.sprite = NewSprite("back_sprite", cfg.Texture, cfg.Width, cfg.Height)
	n.AddChild(b.sprite)
	b.init(n, b.CompletionAction)
	return b
}

// Presented reports whether the button is on screen or sliding in.
func (b *BackButton) Presented() bool { return b.presented }

// Direction returns the side of the last Present. Panics before the first
// Present.
func (b *BackButton) Direction() Direction {
	if b.direction == DirectionNone {
		panic("folio: back button direction read before Present")
	}
	return b.direction
}

// offScreenX is the resting x just past the edge for dir.
func (b *BackButton) offScreenX(dir Direction) float64 {
	edge := b.screenWidth/2 + b.sprite.Width/2
	if dir == DirectionRight {
		return -edge
	}
	return edge
}

// Present anchors the button just off the edge for dir and slides it in
// after the configured delay. No-op while presented.
func (b *BackButton) Present(dir Direction) {
	if b.presented {
		return
	}
	b.presented = true
	b.direction = dir

	target := b.screenWidth / 2
	if dir == DirectionRight {
		target = -target
	}
	b.node.SetPosition(b.offScreenX(dir), b.cfg.Y)
	b.node.RunTagged(Sequence(
		Wait(b.cfg.PresentDelay),
		MoveToX(target, b.cfg.SlideDuration).WithEase(EaseOut),
	), slideTag)
}

// Dismiss slides the button back off screen. No-op while not presented.
func (b *BackButton) Dismiss() {
	if !b.presented {
		return
	}
	b.presented = false
	b.node.RunTagged(MoveToX(b.offScreenX(b.direction), b.cfg.SlideDuration).WithEase(EaseIn), slideTag)
}

// CompletionAction reports EventBackPressed.
func (b *BackButton) CompletionAction() {
	if b.Events != nil {
		b.Events.Emit(ButtonEvent{Kind: EventBackPressed, Direction: b.direction, Name: b.node.Name})
	}
}
