package ssadom

import (
	"fmt"

	"github.com/cs-au-dk/incdom/domtree"
	"github.com/cs-au-dk/incdom/utils"
	"github.com/cs-au-dk/incdom/utils/graph"

	"golang.org/x/tools/go/ssa"
)

// Graph adapts the basic blocks of SSA function bodies to the generic graph
// interface.
func Graph() graph.Graph[*ssa.BasicBlock] {
	return graph.Of[*ssa.BasicBlock](
		utils.PointerHasher[*ssa.BasicBlock]{},
		func(b *ssa.BasicBlock) string {
			return fmt.Sprintf("%s.%d", b.Parent().Name(), b.Index)
		},
		func(b *ssa.BasicBlock) []*ssa.BasicBlock { return b.Succs },
	).WithPredecessors(
		func(b *ssa.BasicBlock) []*ssa.BasicBlock { return b.Preds },
	)
}

// New computes the dominator tree of an SSA function body.
func New(fn *ssa.Function) *domtree.DomTree[*ssa.BasicBlock] {
	if len(fn.Blocks) == 0 {
		panic(fmt.Sprintf("ssadom: %s has no body", fn.Name()))
	}
	return domtree.New(Graph(), fn.Blocks[0])
}
