package folio

import "github.com/tanema/gween"

// ActionKind tags the variant stored in an Action.
type ActionKind uint8

const (
	ActionMoveTo ActionKind = iota
	ActionMoveToX
	ActionMoveToY
	ActionScaleTo
	ActionFadeTo
	ActionWait
	ActionPlaySound
	ActionCallback
	ActionSequence
	ActionGroup
	ActionRepeatForever
)

// Action is a declarative, timed mutation of a node. Build actions with the
// constructors below; the zero value is an empty Wait.
//
// Actions are values: builders copy their children, so an Action can be run
// on several nodes and a running timeline never observes later edits.
type Action struct {
	Kind     ActionKind
	Duration float64
	Easing   Easing

	// Target is the destination for MoveTo and ScaleTo.
	Target Vec2
	// Value is the destination for MoveToX, MoveToY and FadeTo.
	Value float64
	// Sound is the asset name for PlaySound.
	Sound string
	// Fn runs for Callback.
	Fn func()

	Children []Action
}

// MoveTo moves the node to (x, y) over duration seconds.
func MoveTo(x, y, duration float64) Action {
	return Action{Kind: ActionMoveTo, Target: Vec2{x, y}, Duration: duration}
}

// MoveToX moves the node horizontally to x over duration seconds.
func MoveToX(x, duration float64) Action {
	return Action{Kind: ActionMoveToX, Value: x, Duration: duration}
}

// MoveToY moves the node vertically to y over duration seconds.
func MoveToY(y, duration float64) Action {
	return Action{Kind: ActionMoveToY, Value: y, Duration: duration}
}

// ScaleTo scales the node uniformly to s over duration seconds.
func ScaleTo(s, duration float64) Action {
	return Action{Kind: ActionScaleTo, Target: Vec2{s, s}, Duration: duration}
}

// FadeTo fades the node's alpha to a over duration seconds.
func FadeTo(a, duration float64) Action {
	return Action{Kind: ActionFadeTo, Value: a, Duration: duration}
}

// Wait occupies duration seconds without touching the node.
func Wait(duration float64) Action {
	return Action{Kind: ActionWait, Duration: duration}
}

// PlaySound asks the scheduler's SoundPlayer to play the named asset.
func PlaySound(name string) Action {
	return Action{Kind: ActionPlaySound, Sound: name}
}

// Callback runs fn when its turn arrives. It takes no time.
func Callback(fn func()) Action {
	return Action{Kind: ActionCallback, Fn: fn}
}

// Sequence runs actions one after another.
func Sequence(actions ...Action) Action {
	return Action{Kind: ActionSequence, Children: cloneActions(actions)}
}

// Group runs actions concurrently; it completes when the longest completes.
func Group(actions ...Action) Action {
	return Action{Kind: ActionGroup, Children: cloneActions(actions)}
}

// RepeatForever restarts a every time it completes until stopped.
func RepeatForever(a Action) Action {
	return Action{Kind: ActionRepeatForever, Children: cloneActions([]Action{a})}
}

// WithEase returns a copy of a using easing e. For composites the easing is
// pushed down to every primitive child.
func (a Action) WithEase(e Easing) Action {
	a.Easing = e
	if len(a.Children) > 0 {
		children := make([]Action, len(a.Children))
		for i, c := range a.Children {
			children[i] = c.WithEase(e)
		}
		a.Children = children
	}
	return a
}

// TotalDuration returns the time the action takes to complete, or -1 for
// RepeatForever.
func (a Action) TotalDuration() float64 {
	switch a.Kind {
	case ActionSequence:
		var sum float64
		for _, c := range a.Children {
			d := c.TotalDuration()
			if d < 0 {
				return -1
			}
			sum += d
		}
		return sum
	case ActionGroup:
		var longest float64
		for _, c := range a.Children {
			d := c.TotalDuration()
			if d < 0 {
				return -1
			}
			longest = max(longest, d)
		}
		return longest
	case ActionRepeatForever:
		return -1
	case ActionPlaySound, ActionCallback:
		return 0
	default:
		return a.Duration
	}
}

func cloneActions(src []Action) []Action {
	out := make([]Action, len(src))
	copy(out, src)
	return out
}

// --- Runtime state ---

// actionState is the running instance of one Action node.
type actionState struct {
	act     *Action
	started bool
	elapsed float64

	// Primitives: one tween per animated field, created on first advance
	// from the field's value at that instant.
	tweens [2]*gween.Tween
	fields [2]*float64
	ends   [2]float64
	count  int

	// Sequence / RepeatForever: the running child.
	cur   *actionState
	index int

	// Group: one state per child; nil once finished.
	group []*actionState
}

func newActionState(a *Action) *actionState {
	return &actionState{act: a}
}

// advance moves the state forward by dt seconds and returns the time left
// over after completion together with whether the action completed.
// Composites stop early once tl is cancelled or n is disposed.
func (st *actionState) advance(n *Node, sch *Scheduler, tl *timeline, dt float64) (float64, bool) {
	a := st.act
	switch a.Kind {
	case ActionCallback:
		if a.Fn != nil {
			a.Fn()
		}
		return dt, true

	case ActionPlaySound:
		if sch != nil && sch.Sounds != nil && a.Sound != "" {
			sch.Sounds.Play(a.Sound)
		}
		return dt, true

	case ActionSequence:
		for st.index < len(a.Children) {
			if st.cur == nil {
				st.cur = newActionState(&a.Children[st.index])
			}
			left, done := st.cur.advance(n, sch, tl, dt)
			if !done {
				return 0, false
			}
			dt = left
			st.index++
			st.cur = nil
			if tl.stopped(n) {
				return 0, true
			}
		}
		return dt, true

	case ActionGroup:
		if !st.started {
			st.started = true
			st.group = make([]*actionState, len(a.Children))
			for i := range a.Children {
				st.group[i] = newActionState(&a.Children[i])
			}
		}
		running := false
		minLeft := dt
		for i, c := range st.group {
			if c == nil {
				continue
			}
			left, done := c.advance(n, sch, tl, dt)
			if tl.stopped(n) {
				return 0, true
			}
			if !done {
				running = true
				continue
			}
			st.group[i] = nil
			minLeft = min(minLeft, left)
		}
		if running {
			return 0, false
		}
		return minLeft, true

	case ActionRepeatForever:
		if len(a.Children) == 0 {
			return 0, false
		}
		for {
			if st.cur == nil {
				st.cur = newActionState(&a.Children[0])
			}
			in := dt
			left, done := st.cur.advance(n, sch, tl, dt)
			if !done {
				return 0, false
			}
			st.cur = nil
			// A body that consumed no time would spin; it runs once per tick.
			if left >= in || left <= 0 || tl.stopped(n) {
				return 0, false
			}
			dt = left
		}

	default:
		return st.advancePrimitive(n, dt)
	}
}

func (st *actionState) advancePrimitive(n *Node, dt float64) (float64, bool) {
	a := st.act
	if !st.started {
		st.started = true
		st.bind(n)
	}
	st.elapsed += dt
	if st.elapsed >= a.Duration {
		// Write the exact targets; the tweens work in float32.
		for i := 0; i < st.count; i++ {
			*st.fields[i] = st.ends[i]
		}
		return st.elapsed - a.Duration, true
	}
	for i := 0; i < st.count; i++ {
		v, _ := st.tweens[i].Update(float32(dt))
		*st.fields[i] = float64(v)
	}
	return 0, false
}

// bind creates the tweens for the node fields the primitive animates.
func (st *actionState) bind(n *Node) {
	a := st.act
	switch a.Kind {
	case ActionMoveTo:
		st.track(&n.X, a.Target.X)
		st.track(&n.Y, a.Target.Y)
	case ActionMoveToX:
		st.track(&n.X, a.Value)
	case ActionMoveToY:
		st.track(&n.Y, a.Value)
	case ActionScaleTo:
		st.track(&n.ScaleX, a.Target.X)
		st.track(&n.ScaleY, a.Target.Y)
	case ActionFadeTo:
		st.track(&n.Alpha, a.Value)
	}
}

func (st *actionState) track(field *float64, to float64) {
	a := st.act
	st.tweens[st.count] = gween.New(float32(*field), float32(to), float32(a.Duration), a.Easing.TweenFunc())
	st.fields[st.count] = field
	st.ends[st.count] = to
	st.count++
}

// --- Per-node timelines ---

// timeline is one Run call on a node.
type timeline struct {
	tag       string
	state     *actionState
	cancelled bool
	done      bool
	// armed is set by the first Scheduler.Advance that sees the timeline;
	// timelines created during an advance start on the next one.
	armed bool
}

func (tl *timeline) stopped(n *Node) bool {
	return tl.cancelled || n.disposed
}

// Run schedules a on the node. The action starts on the next scheduler
// advance.
func (n *Node) Run(a Action) {
	n.RunTagged(a, "")
}

// RunTagged schedules a under tag. Any running timeline with the same
// non-empty tag is cancelled immediately.
func (n *Node) RunTagged(a Action, tag string) {
	if n.disposed {
		return
	}
	if tag != "" {
		n.StopAction(tag)
	}
	n.actions = append(n.actions, &timeline{tag: tag, state: newActionState(&a)})
}

// StopAction cancels every timeline started with tag.
func (n *Node) StopAction(tag string) {
	for _, tl := range n.actions {
		if tl.tag == tag {
			tl.cancelled = true
		}
	}
	if !n.advancing {
		n.actions = removeTimelines(n.actions)
	}
}

// StopActions cancels every timeline on the node.
func (n *Node) StopActions() {
	for _, tl := range n.actions {
		tl.cancelled = true
	}
	if !n.advancing {
		n.actions = removeTimelines(n.actions)
	}
}

// dropActions cancels every timeline in n's subtree, masks included.
func (n *Node) dropActions() {
	n.StopActions()
	if n.mask != nil {
		n.mask.dropActions()
	}
	for _, c := range n.children {
		c.dropActions()
	}
}

// HasActions reports whether any timeline is running or pending.
func (n *Node) HasActions() bool {
	for _, tl := range n.actions {
		if !tl.cancelled && !tl.done {
			return true
		}
	}
	return false
}

// HasAction reports whether a timeline with tag is running or pending.
func (n *Node) HasAction(tag string) bool {
	for _, tl := range n.actions {
		if tl.tag == tag && !tl.cancelled && !tl.done {
			return true
		}
	}
	return false
}

// advanceActions advances every timeline on n by dt.
func (n *Node) advanceActions(sch *Scheduler, dt float64) {
	n.advancing = true
	// Timelines appended by callbacks land past len(list) and are not
	// visited until the next tick.
	list := n.actions
	for _, tl := range list {
		if n.disposed {
			break
		}
		if tl.cancelled || tl.done || !tl.armed {
			continue
		}
		if _, done := tl.state.advance(n, sch, tl, dt); done {
			tl.done = true
		}
	}
	n.advancing = false
	if n.disposed {
		return
	}
	n.actions = removeTimelines(n.actions)
}

// removeTimelines drops cancelled and finished timelines in place.
func removeTimelines(list []*timeline) []*timeline {
	out := list[:0]
	for _, tl := range list {
		if !tl.cancelled && !tl.done {
			out = append(out, tl)
		}
	}
	for i := len(out); i < len(list); i++ {
		list[i] = nil
	}
	return out
}

// --- Scheduler ---

// SoundPlayer plays a named sound asset. Implementations must not block.
type SoundPlayer interface {
	Play(name string)
}

// Scheduler advances action timelines across a node tree once per tick.
type Scheduler struct {
	// Sounds receives PlaySound actions. Nil skips them.
	Sounds SoundPlayer

	buf []schedEntry
}

type schedEntry struct {
	node   *Node
	anchor *Node // the tree node a mask belongs to
}

// Advance advances every timeline on every node attached under root
// (including mask nodes) by dt seconds. Timelines started during the advance
// begin on the next one. Removing a node from its parent drops its
// timelines, so nodes detached by a callback are not advanced further.
func (s *Scheduler) Advance(root *Node, dt float64) {
	if root == nil || root.disposed {
		return
	}
	s.buf = collectActionNodes(root, root, s.buf[:0])
	for _, e := range s.buf {
		for _, tl := range e.node.actions {
			tl.armed = true
		}
	}
	for _, e := range s.buf {
		if e.node.disposed || e.anchor.disposed || !e.anchor.isAttachedTo(root) {
			continue
		}
		e.node.advanceActions(s, dt)
	}
	clear(s.buf)
}

func collectActionNodes(n, anchor *Node, buf []schedEntry) []schedEntry {
	if len(n.actions) > 0 {
		buf = append(buf, schedEntry{node: n, anchor: anchor})
	}
	if n.mask != nil {
		buf = collectActionNodes(n.mask, n, buf)
	}
	for _, c := range n.children {
		a := c
		if anchor != n {
			// Inside a mask subtree the anchor stays the masked node.
			a = anchor
		}
		buf = collectActionNodes(c, a, buf)
	}
	return buf
}
