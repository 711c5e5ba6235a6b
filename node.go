package folio

// HitShape is used for custom hit testing regions in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// CameraRootName is the name of the camera's scene-layer root. ScenePosition
// accumulates transforms up to (not including) the first ancestor with this
// name.
const CameraRootName = "Root_Node"

// nodeIDCounter is a plain counter (no atomic: folio is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. A single flat struct is used for all node
// types; Type selects which of the visual fields the renderer reads.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Interactable bool

	// Ordering
	ZIndex int

	// Metadata
	UserData any

	// Sprite fields (NodeTypeSprite). An empty Texture draws a solid rect.
	Texture       string
	Width, Height float64
	Color         Color

	// Label fields (NodeTypeLabel). Color is shared with sprites.
	Text     string
	FontSize float64

	// Path fields (NodeTypePath). Filled paths are drawn as a convex fan.
	Path      []Vec2
	LineWidth float64
	Closed    bool
	Filled    bool

	// Hit testing
	HitShape HitShape

	// OnTouch receives touch phases routed to this node. The point is in
	// the node's local space.
	OnTouch func(phase TouchPhase, local Vec2)

	mask *Node

	// Action timelines (action.go)
	actions   []*timeline
	advancing bool

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.childrenSorted = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a w×h sprite centered on the node origin. texture names
// an image asset; leave it empty for a solid rectangle tinted by Color.
func NewSprite(name, texture string, w, h float64) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Texture: texture, Width: w, Height: h}
	nodeDefaults(n)
	return n
}

// NewRect creates a solid-color sprite.
func NewRect(name string, w, h float64, c Color) *Node {
	n := NewSprite(name, "", w, h)
	n.Color = c
	return n
}

// NewLabel creates a text node centered on its origin.
func NewLabel(name, text string, fontSize float64) *Node {
	n := &Node{Name: name, Type: NodeTypeLabel, Text: text, FontSize: fontSize}
	nodeDefaults(n)
	return n
}

// NewPath creates a stroked polyline node.
func NewPath(name string, points []Vec2, lineWidth float64) *Node {
	n := &Node{Name: name, Type: NodeTypePath, Path: points, LineWidth: lineWidth}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("folio: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("folio: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
		child.Parent.childrenSorted = false
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// AddChildZ sets child's ZIndex and appends it to this node's children.
func (n *Node) AddChildZ(child *Node, z int) {
	n.AddChild(child)
	child.ZIndex = z
}

// RemoveChild detaches child from this node. In-flight actions on the
// child's subtree are dropped. Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
	}
	if child.Parent != n {
		panic("folio: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	child.dropActions()
}

// RemoveChildren detaches each listed node that is a child of n. Nodes with
// a different parent are ignored. Removed nodes are NOT disposed.
func (n *Node) RemoveChildren(nodes ...*Node) {
	for _, c := range nodes {
		if c != nil && c.Parent == n {
			n.RemoveChild(c)
		}
	}
}

// RemoveAllChildren detaches all children from this node and drops their
// actions. Children are NOT disposed.
func (n *Node) RemoveAllChildren() {
	for _, child := range n.children {
		child.Parent = nil
		child.dropActions()
	}
	n.children = n.children[:0]
	n.childrenSorted = true
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list in insertion order. The returned slice
// MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// FindChild returns the first direct child with the given name, or nil.
func (n *Node) FindChild(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// SortedChildren returns the children in draw order: ascending ZIndex,
// insertion order among equal ZIndex values. The returned slice MUST NOT be
// mutated by the caller.
func (n *Node) SortedChildren() []*Node {
	if n.childrenSorted && n.sortedChildren != nil && len(n.sortedChildren) == len(n.children) {
		return n.sortedChildren
	}
	n.rebuildSortedChildren()
	return n.sortedChildren
}

// rebuildSortedChildren uses insertion sort: stable, allocation-free, and
// O(n) for the common already-sorted case.
func (n *Node) rebuildSortedChildren() {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed, drops
// every pending action, and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	if n.mask != nil {
		n.mask.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.OnTouch = nil
	n.UserData = nil
	n.mask = nil
	n.actions = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// isAttachedTo reports whether root is n or one of its ancestors.
func (n *Node) isAttachedTo(root *Node) bool {
	return isAncestor(root, n)
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
