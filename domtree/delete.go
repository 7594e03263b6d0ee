package domtree

import (
	"github.com/cs-au-dk/incdom/utils"
	"github.com/cs-au-dk/incdom/utils/worklist"
)

// DeleteArc updates the tree after the CFG arc from -> to has been removed.
// The arc must already be gone from the underlying CFG.
func (t *DomTree[N]) DeleteArc(from, to N) {
	t.inOutValid = false

	// Deletions touching unreachable nodes leave the tree untouched.
	if !t.Contains(from) || !t.Contains(to) {
		return
	}

	// Removing a back arc into a dominator changes nothing.
	if t.eq(t.FindNCA(from, to), to) {
		return
	}

	if !t.eq(t.GetIDom(to), from) || t.hasProperSupport(to) {
		t.deleteReachable(from, to)
	} else {
		t.deleteUnreachable(to)
	}
}

// hasProperSupport checks whether some predecessor outside to's dominator
// subtree keeps it reachable.
func (t *DomTree[N]) hasProperSupport(to N) bool {
	for _, pred := range t.predecessors(to) {
		if !t.Contains(pred) {
			continue
		}
		if !t.eq(t.FindNCA(to, pred), to) {
			return true
		}
	}
	return false
}

// deleteReachable rebuilds the subtree that the deletion may have deepened.
// The rebuild is rooted at the nearest common ancestor of the arc source and
// the target's old dominator and constrained to nodes below its level.
func (t *DomTree[N]) deleteReachable(from, to N) {
	subRoot := t.FindNCA(from, t.GetIDom(to))
	minLevel := t.GetLevel(subRoot)

	utils.VerbosePrint("delete %s -> %s rebuilds below %s\n",
		t.name(from), t.name(to), t.name(subRoot))

	dfs := t.runDFS(subRoot, func(_, v N) bool {
		return t.Contains(v) && t.GetLevel(v) > minLevel
	})
	t.semiNCA(dfs, nil)
}

// deleteUnreachable erases to and its entire dominator subtree from the
// tree: with the last arc into the subtree gone, every path to its nodes
// passed through to.
func (t *DomTree[N]) deleteUnreachable(to N) {
	utils.VerbosePrint("delete makes %s unreachable\n", t.name(to))

	subRoot := t.GetIDom(to)
	t.removeChild(subRoot, to)
	erased := []N{}

	worklist.Start(to, func(n N, add func(N)) {
		for _, c := range t.children.Get(n) {
			add(c)
		}
		erased = append(erased, n)
		t.idoms.Remove(n)
		t.levels.Remove(n)
		t.rdoms.Remove(n)
		t.preorderParents.Remove(n)
		t.children.Remove(n)
	})

	// Nodes entered from the erased subtree may deepen: rebuild below their shallowest old dominator.
	for _, n := range erased {
		for _, s := range t.g.Edges(n) {
			if t.Contains(s) && !t.eq(t.FindNCA(s, subRoot), s) {
				subRoot = t.FindNCA(subRoot, t.GetIDom(s))
			}
		}
	}
	t.semiNCA(t.runDFS(subRoot, func(_, v N) bool { return t.Contains(v) && t.GetLevel(v) > t.GetLevel(subRoot) }), nil)
}
