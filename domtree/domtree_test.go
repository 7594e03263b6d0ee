package domtree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/cs-au-dk/incdom/utils/graph"
)

type intHasher struct{}

func (intHasher) Hash(n int) uint32   { return uint32(n) * 2654435761 }
func (intHasher) Equal(a, b int) bool { return a == b }

// intGraph is a tiny mutable CFG over integer nodes for testing.
type intGraph struct {
	edges map[int][]int
}

func mkGraph(arcs ...[2]int) *intGraph {
	g := &intGraph{edges: map[int][]int{}}
	for _, a := range arcs {
		g.insert(a[0], a[1])
	}
	return g
}

func (g *intGraph) graph() graph.Graph[int] {
	return graph.Of[int](
		intHasher{},
		func(n int) string { return fmt.Sprintf("n_%d", n) },
		func(n int) []int { return g.edges[n] },
	)
}

func (g *intGraph) insert(x, y int) {
	g.edges[x] = append(g.edges[x], y)
}

func (g *intGraph) remove(x, y int) {
	es := g.edges[x]
	for i, e := range es {
		if e == y {
			g.edges[x] = append(es[:i:i], es[i+1:]...)
			return
		}
	}
}

func expectIDoms(t *testing.T, dt *DomTree[int], expected map[int]int) {
	t.Helper()
	for n, idom := range expected {
		if !dt.Contains(n) {
			t.Errorf("expected %d in the tree", n)
			continue
		}
		if got := dt.GetIDom(n); got != idom {
			t.Errorf("idom(%d) = %d, expected %d", n, got, idom)
		}
	}
	if dt.idoms.Len() != len(expected) {
		t.Errorf("tree covers %d nodes, expected %d", dt.idoms.Len(), len(expected))
	}
}

func expectLevels(t *testing.T, dt *DomTree[int], expected map[int]int) {
	t.Helper()
	for n, level := range expected {
		if got := dt.GetLevel(n); got != level {
			t.Errorf("level(%d) = %d, expected %d", n, got, level)
		}
	}
}

func expectVerified(t *testing.T, dt *DomTree[int]) {
	t.Helper()
	if !dt.Verify(VerifyFull) {
		t.Error("full verification failed")
	}
}

func snapshot(dt *DomTree[int]) map[int]int {
	res := map[int]int{}
	dt.idoms.ForEach(func(n, idom int) {
		res[n] = idom
	})
	return res
}

func expectSnapshot(t *testing.T, dt *DomTree[int], expected map[int]int) {
	t.Helper()
	got := snapshot(dt)
	if len(got) != len(expected) {
		t.Errorf("tree covers %d nodes, expected %d", len(got), len(expected))
	}
	for n, idom := range expected {
		if got[n] != idom {
			t.Errorf("idom(%d) = %d, expected %d", n, got[n], idom)
		}
	}
}

func TestLinearChain(t *testing.T) {
	g := mkGraph([2]int{1, 2}, [2]int{2, 3}, [2]int{3, 4})
	dt := New(g.graph(), 1)

	expectIDoms(t, dt, map[int]int{1: 1, 2: 1, 3: 2, 4: 3})
	expectLevels(t, dt, map[int]int{1: 0, 2: 1, 3: 2, 4: 3})
	expectVerified(t, dt)
}

func TestDiamond(t *testing.T) {
	g := mkGraph([2]int{1, 2}, [2]int{1, 3}, [2]int{2, 4}, [2]int{3, 4})
	dt := New(g.graph(), 1)

	expectIDoms(t, dt, map[int]int{1: 1, 2: 1, 3: 1, 4: 1})
	expectVerified(t, dt)
}

func TestDiamondBackArc(t *testing.T) {
	g := mkGraph([2]int{1, 2}, [2]int{1, 3}, [2]int{2, 4}, [2]int{3, 4})
	dt := New(g.graph(), 1)
	before := snapshot(dt)

	g.insert(4, 3)
	dt.InsertArc(4, 3)

	expectSnapshot(t, dt, before)
	expectVerified(t, dt)
}

func TestDiamondDeleteBranch(t *testing.T) {
	g := mkGraph([2]int{1, 2}, [2]int{1, 3}, [2]int{2, 4}, [2]int{3, 4})
	dt := New(g.graph(), 1)

	g.remove(1, 2)
	dt.DeleteArc(1, 2)

	if dt.Contains(2) {
		t.Error("2 should be unreachable after deleting 1 -> 2")
	}
	expectIDoms(t, dt, map[int]int{1: 1, 3: 1, 4: 3})
	if dt.Dominates(2, 4) {
		t.Error("an unreachable node must not dominate anything")
	}
	expectVerified(t, dt)
}

func TestLoopWithHeader(t *testing.T) {
	g := mkGraph([2]int{1, 2}, [2]int{2, 3}, [2]int{3, 2}, [2]int{3, 4})
	dt := New(g.graph(), 1)

	expectIDoms(t, dt, map[int]int{1: 1, 2: 1, 3: 2, 4: 3})
	expectVerified(t, dt)

	g.insert(1, 4)
	dt.InsertArc(1, 4)

	expectIDoms(t, dt, map[int]int{1: 1, 2: 1, 3: 2, 4: 1})
	expectLevels(t, dt, map[int]int{4: 1})
	expectVerified(t, dt)
}

func TestUnreachableGrowth(t *testing.T) {
	g := mkGraph([2]int{1, 2})
	dt := New(g.graph(), 1)
	before := snapshot(dt)

	// 3 and 4 are unknown to the tree; the arc lands in an unreachable
	// region and changes nothing.
	g.insert(3, 4)
	dt.InsertArc(3, 4)
	expectSnapshot(t, dt, before)
	expectVerified(t, dt)

	g.insert(2, 3)
	dt.InsertArc(2, 3)
	expectIDoms(t, dt, map[int]int{1: 1, 2: 1, 3: 2, 4: 3})
	expectVerified(t, dt)
}

func TestUnreachableRegionWithCrossingArcs(t *testing.T) {
	// The region {3, 4} crosses back into the reachable node 5, so its
	// attachment must replay the crossing arc 4 -> 5 and lift idom(5) from 2
	// to 1.
	g := mkGraph([2]int{1, 2}, [2]int{2, 5}, [2]int{3, 4}, [2]int{4, 5})
	dt := New(g.graph(), 1)

	g.insert(1, 3)
	dt.InsertArc(1, 3)

	expectIDoms(t, dt, map[int]int{1: 1, 2: 1, 3: 1, 4: 3, 5: 1})
	expectVerified(t, dt)
}

func TestInsertIdempotence(t *testing.T) {
	g := mkGraph([2]int{1, 2}, [2]int{1, 3}, [2]int{2, 4}, [2]int{3, 4})
	dt := New(g.graph(), 1)
	before := snapshot(dt)

	g.insert(2, 4)
	dt.InsertArc(2, 4)

	expectSnapshot(t, dt, before)
	expectVerified(t, dt)
}

func TestDeleteAbsentArc(t *testing.T) {
	g := mkGraph([2]int{1, 2}, [2]int{1, 3}, [2]int{2, 4}, [2]int{3, 4})
	dt := New(g.graph(), 1)
	before := snapshot(dt)

	dt.DeleteArc(1, 4)

	expectSnapshot(t, dt, before)
	expectVerified(t, dt)
}

func TestInsertDeleteInverse(t *testing.T) {
	g := mkGraph([2]int{1, 2}, [2]int{2, 3}, [2]int{3, 2}, [2]int{3, 4})
	dt := New(g.graph(), 1)
	before := snapshot(dt)

	g.insert(1, 4)
	dt.InsertArc(1, 4)
	g.remove(1, 4)
	dt.DeleteArc(1, 4)

	expectSnapshot(t, dt, before)
	expectVerified(t, dt)
}

func TestDeleteInsertInverse(t *testing.T) {
	g := mkGraph([2]int{1, 2}, [2]int{1, 3}, [2]int{2, 4}, [2]int{3, 4})
	dt := New(g.graph(), 1)
	before := snapshot(dt)

	g.remove(3, 4)
	dt.DeleteArc(3, 4)
	g.insert(3, 4)
	dt.InsertArc(3, 4)

	expectSnapshot(t, dt, before)
	expectVerified(t, dt)
}

func TestDominatesQueries(t *testing.T) {
	g := mkGraph([2]int{1, 2}, [2]int{2, 3}, [2]int{3, 2}, [2]int{3, 4})
	dt := New(g.graph(), 1)

	for _, n := range []int{1, 2, 3, 4} {
		if !dt.Dominates(1, n) {
			t.Errorf("the root should dominate %d", n)
		}
		if !dt.Dominates(n, n) {
			t.Errorf("%d should dominate itself", n)
		}
	}
	if !dt.Dominates(2, 4) || dt.Dominates(4, 2) {
		t.Error("2 should strictly dominate 4")
	}

	// Dominance and NCA agree.
	for _, a := range []int{1, 2, 3, 4} {
		for _, b := range []int{1, 2, 3, 4} {
			if dt.Dominates(a, b) != (dt.FindNCA(a, b) == a) {
				t.Errorf("dominates(%d, %d) disagrees with findNCA", a, b)
			}
		}
	}
}

func TestRandomizedUpdates(t *testing.T) {
	const nodes = 7
	const steps = 120

	rng := rand.New(rand.NewSource(0x5eed))
	g := mkGraph([2]int{1, 2}, [2]int{2, 3}, [2]int{1, 4})
	arcs := map[[2]int]int{{1, 2}: 1, {2, 3}: 1, {1, 4}: 1}
	dt := New(g.graph(), 1)

	for step := 0; step < steps; step++ {
		x, y := rng.Intn(nodes)+1, rng.Intn(nodes)+1
		arc := [2]int{x, y}

		if arcs[arc] > 0 && rng.Intn(2) == 0 {
			arcs[arc]--
			g.remove(x, y)
			dt.DeleteArc(x, y)
		} else {
			arcs[arc]++
			g.insert(x, y)
			dt.InsertArc(x, y)
		}

		if !dt.Verify(VerifyNormal) {
			t.Fatalf("verification failed at step %d (%d -> %d)", step, x, y)
		}
	}

	expectVerified(t, dt)
}
