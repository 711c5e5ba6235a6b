package folio

import (
	"fmt"
	"os"
)

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// frameStats is what the once-per-second debug line reports.
type frameStats struct {
	frames  int
	nodes   int
	actions int
	state   MenuState
}

// debugf prints a "[folio]"-prefixed line to stderr when debug mode is on.
func (s *Scene) debugf(format string, args ...any) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[folio] "+format+"\n", args...)
}

// debugLogStats prints frame and tree stats to stderr.
func (s *Scene) debugLogStats(stats frameStats) {
	s.debugf("frames: %d | nodes: %d | timelines: %d | state: %s",
		stats.frames, stats.nodes, stats.actions, stats.state)
}

// countTree counts nodes and running timelines under n.
func countTree(n *Node) (nodes, actions int) {
	nodes = 1
	actions = len(n.actions)
	if n.mask != nil {
		mn, ma := countTree(n.mask)
		nodes += mn
		actions += ma
	}
	for _, c := range n.children {
		cn, ca := countTree(c)
		nodes += cn
		actions += ca
	}
	return nodes, actions
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("folio debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[folio] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}
