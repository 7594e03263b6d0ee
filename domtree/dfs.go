package domtree

import (
	"fmt"
	"io"

	"github.com/cs-au-dk/incdom/utils/graph"
	"github.com/cs-au-dk/incdom/utils/hmap"
)

// dfsInfo carries per-node bookkeeping produced by runDFS. Nodes that were
// only observed as arc targets, without being descended into, keep num == -1.
type dfsInfo[N any] struct {
	num       int
	parent    N
	hasParent bool
	preds     []N
}

type dfsResult[N any] struct {
	nextNum   int
	numToNode []N
	info      *hmap.Map[N, *dfsInfo[N]]
}

func (r *dfsResult[N]) infoOf(n N) *dfsInfo[N] {
	if i, ok := r.info.GetOk(n); ok {
		return i
	}
	i := &dfsInfo[N]{num: -1}
	r.info.Set(n, i)
	return i
}

// numOf returns the preorder number of n, or false when n lies outside the
// traversal.
func (r *dfsResult[N]) numOf(n N) (int, bool) {
	i, ok := r.info.GetOk(n)
	if !ok || i.num < 0 {
		return 0, false
	}
	return i.num, true
}

// runDFS performs an iterative preorder walk from start. Descent into a
// successor happens only when it is unvisited and the descend predicate
// allows the edge; a nil predicate means unconditional descent. Predecessor
// lists record every scanned arc, including arcs into already-visited
// targets, except self-loops. Each node is visited at most once.
func (t *DomTree[N]) runDFS(start N, descend func(from, to N) bool) *dfsResult[N] {
	res := &dfsResult[N]{info: graph.NewMap[*dfsInfo[N]](t.g)}
	visited := graph.NewSet(t.g)

	res.infoOf(start)
	stack := []N{start}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited.Has(node) {
			continue
		}

		info := res.infoOf(node)
		info.num = res.nextNum
		res.numToNode = append(res.numToNode, node)
		res.nextNum++
		visited.Add(node)

		// Successors are scanned in reverse so that pop order matches
		// successor order.
		succs := t.g.Edges(node)
		for i := len(succs) - 1; i >= 0; i-- {
			succ := succs[i]
			succInfo := res.infoOf(succ)
			if !t.eq(succ, node) {
				succInfo.preds = append(succInfo.preds, node)
			}
			if !visited.Has(succ) && (descend == nil || descend(node, succ)) {
				stack = append(stack, succ)
				succInfo.parent = node
				succInfo.hasParent = true
			}
		}
	}

	return res
}

// dumpNumbering writes the preorder numbering for debugging.
func (r *dfsResult[N]) dumpNumbering(w io.Writer, name func(N) string) {
	fmt.Fprintf(w, "dfs numbering (%d nodes):\n", r.nextNum)
	for num, node := range r.numToNode {
		fmt.Fprintf(w, "  %3d: %s\n", num, name(node))
	}
}
