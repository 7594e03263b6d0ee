package domtree

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cs-au-dk/incdom/utils"
)

// sortedChildren returns the tree children of n in numeric-aware name order.
func (t *DomTree[N]) sortedChildren(n N) []N {
	cs := append([]N{}, t.children.Get(n)...)
	sort.Slice(cs, func(i, j int) bool {
		return utils.CompareNumeric(t.name(cs[i]), t.name(cs[j])) < 0
	})
	return cs
}

// Print writes an indented dump of the dominator tree with deterministic
// sibling order.
func (t *DomTree[N]) Print(w io.Writer) {
	var rec func(n N, depth int)
	rec = func(n N, depth int) {
		fmt.Fprintf(w, "%s%s %s\n",
			strings.Repeat("  ", depth),
			utils.LevelString(fmt.Sprintf("[%d]", t.GetLevel(n))),
			utils.BlockString(t.name(n)))
		for _, c := range t.sortedChildren(n) {
			rec(c, depth+1)
		}
	}
	rec(t.root, 0)
}

func (t *DomTree[N]) String() string {
	var sb strings.Builder
	t.Print(&sb)
	return sb.String()
}

// sortedNodes returns all reachable nodes in numeric-aware name order.
func (t *DomTree[N]) sortedNodes() []N {
	nodes := t.idoms.Keys()
	sort.Slice(nodes, func(i, j int) bool {
		return utils.CompareNumeric(t.name(nodes[i]), t.name(nodes[j])) < 0
	})
	return nodes
}

// DumpIDoms writes the immediate dominator of every reachable node.
func (t *DomTree[N]) DumpIDoms(w io.Writer) {
	for _, n := range t.sortedNodes() {
		fmt.Fprintf(w, "%s -> %s\n", t.name(n), t.name(t.GetIDom(n)))
	}
}

// DumpLevels writes the tree level of every reachable node.
func (t *DomTree[N]) DumpLevels(w io.Writer) {
	for _, n := range t.sortedNodes() {
		fmt.Fprintf(w, "%s: %d\n", t.name(n), t.GetLevel(n))
	}
}

// DumpRDoms writes the relative dominator recorded by the last Semi-NCA pass
// that touched each node. Diagnostic only.
func (t *DomTree[N]) DumpRDoms(w io.Writer) {
	for _, n := range t.sortedNodes() {
		if rdom, ok := t.rdoms.GetOk(n); ok {
			fmt.Fprintf(w, "%s ~> %s\n", t.name(n), t.name(rdom))
		}
	}
}
