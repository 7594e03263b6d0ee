package domtree

import (
	"log"

	"github.com/cs-au-dk/incdom/utils/graph"
	"github.com/cs-au-dk/incdom/utils/hmap"
	"github.com/cs-au-dk/incdom/utils/slices"
)

// interval holds DFS entry/exit numbers over the dominator tree, enabling
// constant time ancestry tests.
type interval struct {
	in, out int
}

// DomTree maintains the immediate dominator relation for the subgraph
// reachable from a fixed root, under single-arc insertions and deletions.
// The CFG itself is owned by the caller; the tree holds only node handles
// and re-enumerates successors through the graph adapter on demand.
//
// A DomTree is not safe for concurrent use. Dominates is logically read-only
// but may refresh an internal cache, so it requires exclusive access too.
type DomTree[N any] struct {
	g    graph.Graph[N]
	root N

	// idoms maps every reachable node to its immediate dominator. The root
	// maps to itself.
	idoms *hmap.Map[N, N]
	// rdoms is the relative (semi)dominator recorded by the last Semi-NCA
	// pass that touched the node. Diagnostic only.
	rdoms  *hmap.Map[N, N]
	levels *hmap.Map[N, int]
	// preorderParents is the parent in the last DFS spanning tree covering
	// the node.
	preorderParents *hmap.Map[N, N]
	children        *hmap.Map[N, []N]

	inOut      *hmap.Map[N, interval]
	inOutValid bool
}

// New computes the dominator tree of the subgraph reachable from root.
func New[N any](g graph.Graph[N], root N) *DomTree[N] {
	t := &DomTree[N]{
		g:               g,
		root:            root,
		idoms:           graph.NewMap[N](g),
		rdoms:           graph.NewMap[N](g),
		levels:          graph.NewMap[int](g),
		preorderParents: graph.NewMap[N](g),
		children:        graph.NewMap[[]N](g),
		inOut:           graph.NewMap[interval](g),
	}

	t.idoms.Set(root, root)
	t.levels.Set(root, 0)

	dfs := t.runDFS(root, nil)
	t.semiNCA(dfs, nil)
	return t
}

func (t *DomTree[N]) eq(a, b N) bool {
	return t.g.Hasher().Equal(a, b)
}

func (t *DomTree[N]) name(n N) string {
	return t.g.Name(n)
}

// Root returns the entry node the tree was built from.
func (t *DomTree[N]) Root() N {
	return t.root
}

// Contains checks whether the node is reachable from the root.
func (t *DomTree[N]) Contains(n N) bool {
	return t.idoms.Has(n)
}

// GetIDom returns the immediate dominator of n. The root is its own
// immediate dominator.
func (t *DomTree[N]) GetIDom(n N) N {
	idom, ok := t.idoms.GetOk(n)
	if !ok {
		log.Fatalf("getIDom: node %s is not in the dominator tree", t.name(n))
	}
	return idom
}

// GetLevel returns the depth of n in the dominator tree. The root has
// level 0.
func (t *DomTree[N]) GetLevel(n N) int {
	level, ok := t.levels.GetOk(n)
	if !ok {
		log.Fatalf("getLevel: node %s is not in the dominator tree", t.name(n))
	}
	return level
}

// FindNCA returns the nearest common ancestor of two reachable nodes in the
// dominator tree.
func (t *DomTree[N]) FindNCA(first, second N) N {
	a, b := first, second
	la, lb := t.GetLevel(a), t.GetLevel(b)
	for la > lb {
		a = t.GetIDom(a)
		la--
	}
	for lb > la {
		b = t.GetIDom(b)
		lb--
	}
	for !t.eq(a, b) {
		a = t.GetIDom(a)
		b = t.GetIDom(b)
	}
	return a
}

// Dominates checks whether a dominates b. Every node dominates itself and
// the root dominates every reachable node. Unreachable nodes neither
// dominate nor are dominated.
func (t *DomTree[N]) Dominates(a, b N) bool {
	if !t.Contains(a) || !t.Contains(b) {
		return false
	}
	if !t.inOutValid {
		t.recomputeInOutNums()
	}
	ia, ib := t.inOut.Get(a), t.inOut.Get(b)
	return ia.in <= ib.in && ib.out <= ia.out
}

// recomputeInOutNums assigns monotonically increasing DFS entry/exit numbers
// over the dominator tree.
func (t *DomTree[N]) recomputeInOutNums() {
	t.inOut = graph.NewMap[interval](t.g)

	num := 0
	var rec func(n N)
	rec = func(n N) {
		num++
		iv := interval{in: num}
		for _, c := range t.children.Get(n) {
			rec(c)
		}
		num++
		iv.out = num
		t.inOut.Set(n, iv)
	}
	rec(t.root)

	t.inOutValid = true
}

func (t *DomTree[N]) hasChild(n, child N) bool {
	_, found := slices.Find(t.children.Get(n), func(c N) bool {
		return t.eq(c, child)
	})
	return found
}

func (t *DomTree[N]) addChild(n, child N) {
	if t.hasChild(n, child) {
		log.Fatalf("addChild: %s is already a child of %s", t.name(child), t.name(n))
	}
	t.children.Set(n, append(t.children.Get(n), child))
}

func (t *DomTree[N]) removeChild(n, child N) {
	cs := t.children.Get(n)
	if i := slices.Index(cs, func(c N) bool { return t.eq(c, child) }); i >= 0 {
		t.children.Set(n, append(cs[:i:i], cs[i+1:]...))
	}
}

// setIDom updates the immediate dominator of n along with the affected child
// lists and invalidates the in/out interval cache.
func (t *DomTree[N]) setIDom(n, newIDom N) {
	t.inOutValid = false

	if old, ok := t.idoms.GetOk(n); ok {
		if t.eq(old, newIDom) {
			return
		}
		if !t.eq(old, n) {
			t.removeChild(old, n)
		}
	}

	t.idoms.Set(n, newIDom)
	if !t.eq(n, newIDom) {
		t.addChild(newIDom, n)
	}
}

// predecessors enumerates CFG predecessors of n, falling back to a scan over
// the reachable subgraph when the adapter provides no predecessor iterator.
func (t *DomTree[N]) predecessors(n N) []N {
	if t.g.HasPredecessors() {
		return t.g.Predecessors(n)
	}

	preds := []N{}
	t.idoms.ForEach(func(m N, _ N) {
		for _, succ := range t.g.Edges(m) {
			if t.eq(succ, n) {
				preds = append(preds, m)
				break
			}
		}
	})
	return preds
}
