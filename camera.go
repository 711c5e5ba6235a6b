package folio

import "math"

// Camera node names. The scene-layer root carries CameraRootName.
const (
	CameraNodeName = "CamCon"
	ZoomNodeName   = "Zoom_Node"
	HUDNodeName    = "HUD_Node"
	hudZIndex      = 1000
)

// Camera owns two sub-trees: a scene layer (zoom node → root node) that
// follows the smoothed target, zoom and shake, and a HUD layer fixed to the
// screen and drawn above it.
//
// Positions are in scene space: origin at the screen center, Y down. The
// camera "looks at" its target, so the root node is placed at -target.
type Camera struct {
	// Smoothing is the per-tick interpolation weight toward the target:
	// 0 freezes the camera, 1 snaps to the target every tick.
	Smoothing float64

	node *Node
	zoom *Node
	root *Node
	hud  *Node

	target Vec2
	last   Vec2
	scale  float64

	shakeIntensity float64
	shakeDuration  float64
	shakeRemaining float64
	shaking        bool
	offset         Vec2

	rng RandomSource

	debug      bool
	pinchStart float64
}

// NewCamera creates a camera with the given smoothing factor and the
// process-wide random source.
func NewCamera(smoothing float64) *Camera {
	c := &Camera{
		Smoothing: smoothing,
		node:      NewContainer(CameraNodeName),
		zoom:      NewContainer(ZoomNodeName),
		root:      NewContainer(CameraRootName),
		hud:       NewContainer(HUDNodeName),
		scale:     1,
		rng:       DefaultRNG(),
	}
	c.node.AddChildZ(c.hud, hudZIndex)
	c.node.AddChildZ(c.zoom, 0)
	c.zoom.AddChild(c.root)
	return c
}

// SetRandomSource replaces the source used for shake jitter.
func (c *Camera) SetRandomSource(r RandomSource) {
	if r == nil {
		r = DefaultRNG()
	}
	c.rng = r
}

// Node returns the camera's top node. Attach it to the scene root.
func (c *Camera) Node() *Node { return c.node }

// Root returns the scene-layer root that scene content is attached to.
func (c *Camera) Root() *Node { return c.root }

// HUD returns the screen-fixed layer.
func (c *Camera) HUD() *Node { return c.hud }

// Zoom returns the node carrying the rendered scale and rotation.
func (c *Camera) Zoom() *Node { return c.zoom }

// Update advances smoothing, shake and zoom by dt seconds.
func (c *Camera) Update(dt float64) {
	rendered := LerpVec(c.last, c.target.Neg(), c.Smoothing)
	c.last = rendered

	c.offset = Vec2{}
	if c.shaking {
		c.shakeRemaining -= dt
		if c.shakeRemaining <= 0 {
			c.shaking = false
			c.shakeRemaining = 0
			c.shakeDuration = 0
			c.shakeIntensity = 0
		} else {
			angle := c.rng.Float64() * 2 * math.Pi
			magnitude := c.rng.Float64() * c.shakeIntensity * (c.shakeRemaining / c.shakeDuration)
			c.offset = Polar(magnitude, angle)
		}
	}
	c.root.SetPosition(rendered.X+c.offset.X, rendered.Y+c.offset.Y)

	s := Lerp(c.zoom.ScaleX, c.scale, c.Smoothing)
	c.zoom.SetScale(s, s)
}

// Shake starts or blends a screen shake. A stronger request overwrites the
// intensity, a weaker one adds half of itself; duration blends the same way.
// Non-positive intensities are ignored.
func (c *Camera) Shake(intensity, duration float64) {
	if intensity <= 0 {
		return
	}
	c.shaking = true
	if intensity > c.shakeIntensity {
		c.shakeIntensity = intensity
	} else if c.shakeIntensity > 0 {
		c.shakeIntensity += intensity / 2
	}
	if duration > c.shakeRemaining {
		c.shakeDuration = duration
		c.shakeRemaining = duration
	} else if c.shakeRemaining > 0 {
		c.shakeDuration += duration / 2
		c.shakeRemaining += duration / 2
	}
}

// Shaking reports whether a shake is in progress.
func (c *Camera) Shaking() bool { return c.shaking }

// ShakeState returns the current intensity, total duration and remaining
// time of the shake.
func (c *Camera) ShakeState() (intensity, duration, remaining float64) {
	return c.shakeIntensity, c.shakeDuration, c.shakeRemaining
}

// Offset returns the shake offset applied on the last Update.
func (c *Camera) Offset() Vec2 { return c.offset }

// RenderedPosition returns the smoothed root position from the last Update,
// without shake.
func (c *Camera) RenderedPosition() Vec2 { return c.last }

// Position returns the camera target.
func (c *Camera) Position() Vec2 { return c.target }

// SetPosition sets the target the camera eases toward.
func (c *Camera) SetPosition(target Vec2) {
	c.target = target
}

// SetStartingPosition sets the target and jumps there without smoothing.
func (c *Camera) SetStartingPosition(p Vec2) {
	c.SetPosition(p)
	c.last = p.Neg()
	c.root.SetPosition(c.last.X, c.last.Y)
}

// SetScale sets the target zoom the camera eases toward.
func (c *Camera) SetScale(s float64) { c.scale = s }

// Scale returns the target zoom.
func (c *Camera) Scale() float64 { return c.scale }

// RenderedScale returns the zoom currently applied to the scene layer.
func (c *Camera) RenderedScale() float64 { return c.zoom.ScaleX }

// SetRotation rotates the scene layer immediately.
func (c *Camera) SetRotation(r float64) { c.zoom.SetRotation(r) }

// AddChild attaches node to the given layer with z as its ZIndex.
func (c *Camera) AddChild(node *Node, z int, layer Layer) {
	c.layer(layer).AddChildZ(node, z)
}

// RemoveChildren detaches the listed nodes from the given layer. Nodes
// attached elsewhere are ignored.
func (c *Camera) RemoveChildren(layer Layer, nodes ...*Node) {
	c.layer(layer).RemoveChildren(nodes...)
}

func (c *Camera) layer(l Layer) *Node {
	if l == LayerHUD {
		return c.hud
	}
	return c.root
}

// SceneToCameraSpace converts a scene-space point into the scene layer's
// root space (before zoom).
func (c *Camera) SceneToCameraSpace(p Vec2) Vec2 {
	return p.Sub(c.root.Position())
}

// --- Debug gestures ---

// EnableDebug lets Pan and Pinch move and zoom the camera.
func (c *Camera) EnableDebug() { c.debug = true }

// DisableDebug turns Pan and Pinch back into no-ops.
func (c *Camera) DisableDebug() { c.debug = false }

// DebugEnabled reports whether debug gestures are active.
func (c *Camera) DebugEnabled() bool { return c.debug }

// Pan drags the camera by a screen-space translation.
func (c *Camera) Pan(translation Vec2) {
	if !c.debug {
		return
	}
	c.target = c.target.Sub(translation)
}

// Pinch sets the zoom relative to the zoom at the start of the gesture.
// began marks the first sample of a new gesture.
func (c *Camera) Pinch(ratio float64, began bool) {
	if !c.debug {
		return
	}
	if began {
		c.pinchStart = c.scale
	}
	c.SetScale(c.pinchStart * ratio)
}
