package domtree

// sncaInfo is per-node Semi-NCA state in preorder-number space. The parent
// field doubles as the ancestor pointer and is clobbered by path compression.
type sncaInfo struct {
	parent int
	semi   int
	label  int
}

// semiNCA computes immediate dominators for every node covered by the given
// DFS with the Georgiadis-Tarjan Semi-NCA algorithm, and refreshes levels,
// child lists, relative dominators and preorder parents. When attachTo is
// non-nil the DFS root is attached below it as a freshly discovered node;
// otherwise the DFS root keeps its current immediate dominator.
func (t *DomTree[N]) semiNCA(dfs *dfsResult[N], attachTo *N) {
	n := dfs.nextNum
	subRoot := dfs.numToNode[0]

	if attachTo != nil {
		t.setIDom(subRoot, *attachTo)
		t.levels.Set(subRoot, t.GetLevel(*attachTo)+1)
	} else if t.eq(subRoot, t.root) {
		t.idoms.Set(t.root, t.root)
		t.levels.Set(t.root, 0)
	}

	if n <= 1 {
		return
	}

	info := make([]sncaInfo, n)
	origParent := make([]int, n)
	for i := 1; i < n; i++ {
		node := dfs.numToNode[i]
		pnum, ok := dfs.numOf(dfs.infoOf(node).parent)
		if !ok {
			// The spanning tree parent is always part of the traversal.
			panic("semiNCA: preorder parent outside the DFS")
		}
		info[i] = sncaInfo{parent: pnum, semi: i, label: i}
		origParent[i] = pnum
	}

	// eval returns the label of minimum semidominator along the ancestor
	// path of v among nodes already linked, compressing the path on the way.
	var stack []int
	eval := func(v, lastLinked int) int {
		if info[v].parent < lastLinked {
			return info[v].label
		}

		stack = stack[:0]
		w := v
		for {
			stack = append(stack, w)
			w = info[w].parent
			if info[w].parent < lastLinked {
				break
			}
		}

		pParent := info[w].parent
		pLabel := info[w].label
		result := pLabel
		for i := len(stack) - 1; i >= 0; i-- {
			x := stack[i]
			info[x].parent = pParent
			if info[pLabel].semi < info[info[x].label].semi {
				info[x].label = pLabel
			}
			pLabel = info[x].label
			result = pLabel
		}
		return result
	}

	// Compute semidominators in decreasing preorder.
	for i := n - 1; i >= 1; i-- {
		node := dfs.numToNode[i]
		info[i].semi = info[i].parent
		for _, pred := range dfs.infoOf(node).preds {
			pn, ok := dfs.numOf(pred)
			if !ok {
				// Predecessors outside the traversal were refused by the
				// descend predicate and cannot influence this subtree.
				continue
			}
			if semiU := info[eval(pn, i+1)].semi; semiU < info[i].semi {
				info[i].semi = semiU
			}
		}
	}

	// Relink in increasing preorder: the immediate dominator is the NCA of
	// the semidominator and the spanning tree parent.
	idomN := make([]int, n)
	for i := 1; i < n; i++ {
		cand := origParent[i]
		for cand > info[i].semi {
			cand = idomN[cand]
		}
		idomN[i] = cand
	}

	for i := 1; i < n; i++ {
		node := dfs.numToNode[i]
		idom := dfs.numToNode[idomN[i]]
		t.setIDom(node, idom)
		t.levels.Set(node, t.GetLevel(idom)+1)
		t.rdoms.Set(node, dfs.numToNode[info[i].semi])
		t.preorderParents.Set(node, dfs.infoOf(node).parent)
	}
}
