package cfg

import (
	"github.com/cs-au-dk/incdom/utils/dot"
)

// ToDotGraph builds a dot representation of the subgraph reachable from entry.
func ToDotGraph(entry *Block) *dot.DotGraph {
	blocks := reachableBlocks(entry)

	nodes := map[*Block]*dot.DotNode{}
	G := &dot.DotGraph{
		Name:    "CFG",
		Title:   "cfg of " + entry.name,
		Options: map[string]string{"rankdir": "TB"},
	}

	for _, b := range blocks {
		n := &dot.DotNode{ID: b.name, Attrs: dot.DotAttrs{}}
		if b == entry {
			n.Attrs["fillcolor"] = "lightblue"
		}
		nodes[b] = n
		G.Nodes = append(G.Nodes, n)
	}

	for _, b := range blocks {
		for _, s := range b.Successors() {
			G.Edges = append(G.Edges, &dot.DotEdge{
				From:  nodes[b],
				To:    nodes[s],
				Attrs: dot.DotAttrs{},
			})
		}
	}

	return G
}
