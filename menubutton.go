package folio

// MenuOptionButton is a full-width menu row that rests off screen on its
// side, slides in on Present, and carries a full-screen panel that slides
// over the screen when the row is selected.
//
// Left rows use the light scheme and rest at -width; Right rows use the dark
// scheme and rest at +width.
type MenuOptionButton struct {
	buttonCore

	// Events receives EventMenuSelected. Nil disables selection.
	Events EventSink

	direction   Direction
	anchor      float64
	name        string
	wasSelected bool
	cfg         MenuConfig

	background *Node
	label      *Node
	panel      *Node
	contents   *Node
}

// NewMenuOptionButton creates a row for a sceneWidth×sceneHeight scene.
func NewMenuOptionButton(dir Direction, name string, sceneWidth, sceneHeight float64, cfg MenuConfig) *MenuOptionButton {
	b := &MenuOptionButton{
		direction: dir,
		anchor:    dir.Sign() * sceneWidth,
		name:      name,
		cfg:       cfg,
	}
	rowHeight := sceneHeight / 4

	n := NewContainer(name)
	n.HitShape = HitRect{X: -sceneWidth / 2, Y: -rowHeight / 2, Width: sceneWidth, Height: rowHeight}

	light, dark := Gray(0.85), Gray(0.15)
	bg, fg := light, dark
	if dir == DirectionRight {
		bg, fg = dark, light
	}

	b.panel = NewRect(name+"_panel", sceneWidth, sceneHeight, bg)
	b.panel.X = b.anchor
	b.contents = NewSprite(name+"_contents", name, sceneWidth, sceneHeight)
	b.panel.AddChild(b.contents)

	b.background = NewRect(name+"_background", sceneWidth, rowHeight, bg)

	b.label = NewLabel(name+"_label", name, cfg.FontSize)
	b.label.Color = fg
	b.label.X = -dir.Sign() * cfg.LabelInset

	n.AddChild(b.panel)
	n.AddChild(b.background)
	n.AddChildZ(b.label, 1)

	b.init(n, b.CompletionAction)
	return b
}

// Name returns the display name.
func (b *MenuOptionButton) Name() string { return b.name }

// Direction returns the side the row slides in from.
func (b *MenuOptionButton) Direction() Direction { return b.direction }

// Anchor returns the off-screen resting x.
func (b *MenuOptionButton) Anchor() float64 { return b.anchor }

// WasSelected reports whether the row was chosen and not yet Reset.
func (b *MenuOptionButton) WasSelected() bool { return b.wasSelected }

// Panel returns the full-screen node revealed on selection.
func (b *MenuOptionButton) Panel() *Node { return b.panel }

// Label returns the text node.
func (b *MenuOptionButton) Label() *Node { return b.label }

// onScreenX is where the row rests while presented.
func (b *MenuOptionButton) onScreenX() float64 {
	return b.direction.Sign() * b.cfg.OnScreenOffset
}

// SetButtonPosition places the row and keeps its panel vertically centered
// on the screen.
func (b *MenuOptionButton) SetButtonPosition(p Vec2) {
	b.node.SetPosition(p.X, p.Y)
	b.panel.Y = -p.Y
}

// Present activates the row and slides it on screen after delay seconds.
func (b *MenuOptionButton) Present(delay float64) {
	b.activated = true
	b.node.RunTagged(Sequence(
		Wait(delay),
		MoveToX(b.onScreenX(), b.cfg.PresentDuration).WithEase(EaseOut),
	), slideTag)
}

// Dismiss deactivates the row and slides it to its anchor after delay
// seconds. A selected row is left where it is.
func (b *MenuOptionButton) Dismiss(delay float64) {
	if b.wasSelected {
		return
	}
	b.activated = false
	b.node.RunTagged(Sequence(
		Wait(delay),
		MoveToX(b.anchor, b.cfg.DismissDuration).WithEase(EaseOut),
	), slideTag)
}

// Select slides the row past center to the opposite anchor, which brings
// its panel over the screen.
func (b *MenuOptionButton) Select() {
	b.node.RunTagged(Sequence(
		Wait(b.cfg.SelectDelay),
		MoveToX(-b.anchor, b.cfg.SelectDuration).WithEase(EaseOut),
	), slideTag)
}

// Reset clears the selection and slides the row back to its on-screen
// offset.
func (b *MenuOptionButton) Reset() {
	b.wasSelected = false
	b.node.RunTagged(MoveToX(b.onScreenX(), b.cfg.ResetDuration).WithEase(EaseOut), slideTag)
}

// clearSelection drops the selected mark without moving the row.
func (b *MenuOptionButton) clearSelection() { b.wasSelected = false }

// CompletionAction marks the row selected and reports EventMenuSelected.
func (b *MenuOptionButton) CompletionAction() {
	if !b.activated || b.Events == nil {
		return
	}
	b.wasSelected = true
	b.Events.Emit(ButtonEvent{Kind: EventMenuSelected, Direction: b.direction, Name: b.name})
}
