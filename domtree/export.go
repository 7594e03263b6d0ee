package domtree

import (
	"fmt"

	"github.com/cs-au-dk/incdom/utils/dot"

	"github.com/benbjohnson/immutable"
)

// Flatten writes the immediate dominator relation node-by-node into a
// persistent map, the foreign representation handed to downstream tooling.
func (t *DomTree[N]) Flatten() *immutable.Map[N, N] {
	b := immutable.NewMapBuilder[N, N](t.g.Hasher())
	t.idoms.ForEach(func(n, idom N) {
		b.Set(n, idom)
	})
	return b.Map()
}

// ToDotGraph builds a dot representation of the dominator tree, with nodes
// labelled by their level.
func (t *DomTree[N]) ToDotGraph() *dot.DotGraph {
	G := &dot.DotGraph{
		Name:    "DomTree",
		Title:   "dominator tree of " + t.name(t.root),
		Options: map[string]string{"rankdir": "TB"},
	}

	nodes := map[string]*dot.DotNode{}
	var rec func(n N)
	rec = func(n N) {
		dn := &dot.DotNode{
			ID:    t.name(n),
			Attrs: dot.DotAttrs{"label": fmt.Sprintf("%s [%d]", t.name(n), t.GetLevel(n))},
		}
		nodes[t.name(n)] = dn
		G.Nodes = append(G.Nodes, dn)
		for _, c := range t.sortedChildren(n) {
			rec(c)
			G.Edges = append(G.Edges, &dot.DotEdge{
				From:  dn,
				To:    nodes[t.name(c)],
				Attrs: dot.DotAttrs{},
			})
		}
	}
	rec(t.root)

	return G
}
