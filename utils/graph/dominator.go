package graph

import (
	"fmt"

	"github.com/cs-au-dk/incdom/utils/hmap"
)

// Source: https://www.cs.rice.edu/~keith/EMBED/dom.pdf

// Dominators computes immediate dominators for all nodes reachable from root
// with the iterative Cooper-Harvey-Kennedy algorithm. The root maps to itself.
// Also returns a closure computing the nearest common dominator of a list of
// reachable nodes.
func (G Graph[T]) Dominators(root T) (*hmap.Map[T, T], func(...T) T) {
	postorderTime := NewMap[int](G)
	pred := NewMap[[]T](G)

	// Compute DFS post-order ordering
	time := 0
	order := []T{}

	var dfs func(T)
	dfs = func(node T) {
		if _, seen := postorderTime.GetOk(node); seen {
			return
		}

		postorderTime.Set(node, -1)

		for _, e := range G.Edges(node) {
			preds, _ := pred.GetOk(e)
			pred.Set(e, append(preds, node))

			dfs(e)
		}

		postorderTime.Set(node, time)
		order = append(order, node)
		time++
	}

	dfs(root)

	// Initialize doms to "Undefined"
	doms := make([]int, time)
	for i := 0; i < time; i++ {
		doms[i] = -1
	}
	doms[time-1] = time - 1

	intersect := func(a, b int) int {
		for a != b {
			if a < b {
				a = doms[a]
			} else {
				b = doms[b]
			}
		}
		return a
	}

	for {
		changed := false

		// Process nodes in reverse post-order (except for root)
		for i := time - 2; i >= 0; i-- {
			node := order[i]

			new_idom := -1
			preds, _ := pred.GetOk(node)

			for _, predecessor := range preds {
				j, _ := postorderTime.GetOk(predecessor)

				if j >= 0 && doms[j] != -1 {
					if new_idom == -1 {
						new_idom = j
					} else {
						new_idom = intersect(j, new_idom)
					}
				}
			}

			if new_idom != doms[i] {
				doms[i] = new_idom
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	idoms := NewMap[T](G)
	for i := 0; i < time; i++ {
		idoms.Set(order[i], order[doms[i]])
	}

	nca := func(nodes ...T) T {
		if len(nodes) == 0 {
			panic("Empty list of nodes for dominator computation")
		}

		dom := -1
		for _, node := range nodes {
			i, found := postorderTime.GetOk(node)
			if !found {
				panic(fmt.Errorf("%v was not reachable when computing the dominator tree", G.Name(node)))
			}

			if dom == -1 {
				dom = i
			} else {
				dom = intersect(i, dom)
			}
		}

		return order[dom]
	}

	return idoms, nca
}
