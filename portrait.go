package folio

// Shaker is the slice of the camera the portrait needs.
type Shaker interface {
	Shake(intensity, duration float64)
}

const pulseTag = "pulse"

// PortraitButton is a circular portrait with a progress ring. Each tap adds
// progress, which drains back toward zero while idle. Reaching full progress
// latches the button unlocked, explodes the visuals and reports
// EventPortraitUnlocked.
type PortraitButton struct {
	buttonCore

	// Events receives EventPortraitUnlocked. Nil drops it.
	Events EventSink
	// Shaker is shaken on every counted tap. Nil skips the shake.
	Shaker Shaker

	cfg            PortraitConfig
	radius         float64
	progressRadius float64
	progress       float64
	unlocked       bool

	crop     *Node
	mask     *Node
	content  *Node
	portrait *Node
	ring     *Node
	meterBG  *Node
	meter    *Node
}

// NewPortraitButton builds the portrait and starts its pulse.
func NewPortraitButton(cfg PortraitConfig) *PortraitButton {
	b := &PortraitButton{
		cfg:            cfg,
		radius:         cfg.Radius,
		progressRadius: cfg.Radius * cfg.RingPadding,
	}
	n := NewContainer("portrait")
	n.HitShape = HitCircle{Radius: b.progressRadius}

	b.mask = NewCircle("portrait_mask", b.radius, 0, true)
	b.content = NewContainer("portrait_content")
	b.portrait = NewSprite("portrait_image", cfg.Texture, b.radius*2, b.radius*2)
	b.content.AddChild(b.portrait)
	b.crop = NewContainer("portrait_crop")
	b.crop.AddChild(b.content)
	b.crop.SetMask(b.mask)

	b.ring = NewContainer("portrait_progress")
	b.meterBG = NewCircle("portrait_meter_bg", b.progressRadius, cfg.RingWidth, false)
	b.meterBG.Color = Gray(0.15)
	b.meter = NewPath("portrait_meter", nil, cfg.MeterWidth)
	b.meter.Color = Gray(0.85)
	b.ring.AddChildZ(b.meterBG, -1)
	b.ring.AddChild(b.meter)

	n.AddChild(b.crop)
	n.AddChild(b.ring)

	b.mask.RunTagged(b.pulseAction(), pulseTag)
	b.ring.RunTagged(Sequence(Wait(cfg.RingPulseLag), b.pulseAction()), pulseTag)

	b.init(n, b.CompletionAction)
	return b
}

func (b *PortraitButton) pulseAction() Action {
	return RepeatForever(Sequence(
		ScaleTo(b.cfg.PulseScale, b.cfg.PulseDuration),
		ScaleTo(1, b.cfg.PulseDuration),
	)).WithEase(EaseInOut)
}

func (b *PortraitButton) explodeAction() Action {
	return Group(
		ScaleTo(b.cfg.ExplodeScale, b.cfg.ExplodeDuration).WithEase(EaseOut),
		FadeTo(0, b.cfg.ExplodeDuration),
		PlaySound(b.cfg.ExplodeSound),
	)
}

// Progress returns the unlock progress in [0, 1].
func (b *PortraitButton) Progress() float64 { return b.progress }

// Unlocked reports whether the unlock latch has fired.
func (b *PortraitButton) Unlocked() bool { return b.unlocked }

// Radius returns the portrait radius.
func (b *PortraitButton) Radius() float64 { return b.radius }

// Meter returns the progress arc node.
func (b *PortraitButton) Meter() *Node { return b.meter }

// SetProgress clamps p to [0, 1], latches the button unlocked once it
// reaches 1, and redraws the progress arc.
func (b *PortraitButton) SetProgress(p float64) {
	b.progress = Clamp(p, 0, 1)
	if b.progress >= 1 && !b.unlocked {
		b.unlocked = true
		b.unlock()
	}
	b.meter.Path = ArcPath(b.progressRadius, b.progress)
}

// Update drains progress by dt/DrainTime while locked.
func (b *PortraitButton) Update(dt float64) {
	if b.unlocked {
		return
	}
	b.SetProgress(b.progress - dt/b.cfg.DrainTime)
}

// CompletionAction counts a tap while locked: progress, sound and shake.
func (b *PortraitButton) CompletionAction() {
	if b.unlocked {
		return
	}
	b.SetProgress(b.progress + b.cfg.Increment)
	b.node.Run(PlaySound(b.cfg.TapSound))
	if b.Shaker != nil {
		b.Shaker.Shake(b.cfg.ShakeIntensity, b.cfg.ShakeDuration)
	}
}

// unlock runs the explode choreography and reports the unlock once it has
// played out.
func (b *PortraitButton) unlock() {
	b.ring.RunTagged(Sequence(
		Wait(b.cfg.RingExplodeDelay),
		Callback(func() { b.ring.StopAction(pulseTag) }),
		b.explodeAction(),
	), "explode")
	b.crop.RunTagged(Sequence(Wait(b.cfg.PortraitExplodeDelay), b.explodeAction()), "explode")
	b.node.Run(Sequence(Wait(b.cfg.UnlockDelay), Callback(func() {
		if b.Events != nil {
			b.Events.Emit(ButtonEvent{Kind: EventPortraitUnlocked, Name: b.node.Name})
		}
	})))
}
