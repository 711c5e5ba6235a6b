package folio

// SetMask sets a mask node for this node. The mask node's shape determines
// which parts of this node's subtree are visible. The mask node is NOT part
// of the scene tree; its transforms are relative to the masked node. Actions
// running on the mask are advanced along with the masked node.
func (n *Node) SetMask(maskNode *Node) {
	n.mask = maskNode
}

// ClearMask removes the mask from this node.
func (n *Node) ClearMask() {
	n.mask = nil
}

// Mask returns the current mask node, or nil if no mask is set.
func (n *Node) Mask() *Node {
	return n.mask
}
