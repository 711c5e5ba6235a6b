package folio

import "github.com/tanema/gween/ease"

// Easing remaps a linear progress fraction before it is applied to a
// property.
type Easing uint8

const (
	EaseLinear Easing = iota
	EaseIn
	EaseOut
	EaseInOut
)

// TweenFunc returns the gween easing function backing e.
func (e Easing) TweenFunc() ease.TweenFunc {
	switch e {
	case EaseIn:
		return ease.InQuad
	case EaseOut:
		return ease.OutQuad
	case EaseInOut:
		return ease.InOutQuad
	default:
		return ease.Linear
	}
}

// Apply maps t in [0, 1] through the easing curve. t is clamped first; the
// endpoints map exactly to 0 and 1.
func (e Easing) Apply(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return float64(e.TweenFunc()(float32(t), 0, 1, 1))
}

func (e Easing) String() string {
	switch e {
	case EaseIn:
		return "ease-in"
	case EaseOut:
		return "ease-out"
	case EaseInOut:
		return "ease-in-out"
	default:
		return "linear"
	}
}
