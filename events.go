package folio

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ButtonEventKind identifies what a widget is reporting.
type ButtonEventKind uint8

const (
	EventMenuSelected     ButtonEventKind = iota // a menu option button completed
	EventBackPressed                             // the back button completed
	EventPortraitUnlocked                        // the portrait finished its unlock sequence
)

func (k ButtonEventKind) String() string {
	switch k {
	case EventMenuSelected:
		return "menu-selected"
	case EventBackPressed:
		return "back-pressed"
	case EventPortraitUnlocked:
		return "portrait-unlocked"
	}
	return "unknown"
}

// ButtonEvent is what widgets emit toward the scene.
type ButtonEvent struct {
	Kind      ButtonEventKind
	Direction Direction
	Name      string
}

// ButtonEventType is the Donburi event type carrying widget events.
// Subscribe to it to observe the menu flow.
var ButtonEventType = events.NewEventType[ButtonEvent]()

// EventSink receives widget events. Widgets with a nil sink drop them.
type EventSink interface {
	Emit(e ButtonEvent)
}

// worldSink queues events on a Donburi world; they are delivered on the
// next ProcessEvents call.
type worldSink struct {
	world donburi.World
}

// NewEventSink returns a sink that publishes to world.
func NewEventSink(world donburi.World) EventSink {
	return &worldSink{world: world}
}

func (s *worldSink) Emit(e ButtonEvent) {
	ButtonEventType.Publish(s.world, e)
}

// EventFunc adapts a function to EventSink.
type EventFunc func(ButtonEvent)

// Emit calls f(e).
func (f EventFunc) Emit(e ButtonEvent) { f(e) }
