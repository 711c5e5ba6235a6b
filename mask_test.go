package folio

import "testing"

func TestSetMask(t *testing.T) {
	n := NewContainer("n")
	m := NewCircle("m", 4, 0, true)
	n.SetMask(m)
	if n.Mask() != m {
		t.Error("Mask() did not return the mask")
	}
	if m.Parent != nil {
		t.Error("mask should stay outside the tree")
	}
	n.ClearMask()
	if n.Mask() != nil {
		t.Error("ClearMask left a mask")
	}
}

func TestCountTreeIncludesMasks(t *testing.T) {
	root := NewContainer("root")
	child := NewContainer("child")
	root.AddChild(child)
	mask := NewCircle("mask", 4, 0, true)
	child.SetMask(mask)
	mask.Run(Wait(1))
	child.Run(Wait(1))

	nodes, actions := countTree(root)
	if nodes != 3 || actions != 2 {
		t.Errorf("countTree = (%d, %d), want (3, 2)", nodes, actions)
	}
}
