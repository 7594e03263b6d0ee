package domtree

import (
	"os"
	"sort"

	"github.com/cs-au-dk/incdom/utils"
	"github.com/cs-au-dk/incdom/utils/graph"
	"github.com/cs-au-dk/incdom/utils/hmap"
	"github.com/cs-au-dk/incdom/utils/pq"
)

type arc[N any] struct {
	from, to N
}

// InsertArc updates the tree after the CFG arc from -> to has been added.
// The arc must already be present in the underlying CFG.
func (t *DomTree[N]) InsertArc(from, to N) {
	t.inOutValid = false

	switch {
	case !t.Contains(from):
		// The arc starts in an unreachable region, so no reachability or
		// dominance changes. The CFG remembers the arc for later.
	case !t.Contains(to):
		t.insertUnreachable(from, to)
	default:
		t.insertReachable(from, to)
	}
}

// insertUnreachable attaches the region that the new arc makes reachable
// below from. Arcs crossing from the discovered region back into previously
// reachable nodes are replayed as ordinary reachable insertions afterwards,
// which may lift dominators further.
func (t *DomTree[N]) insertUnreachable(from, to N) {
	utils.VerbosePrint("insert %s -> %s reaches a previously unreachable region\n",
		t.name(from), t.name(to))

	connecting := []arc[N]{}
	dfs := t.runDFS(to, func(u, v N) bool {
		if t.Contains(v) {
			connecting = append(connecting, arc[N]{u, v})
			return false
		}
		return true
	})
	if utils.Opts().Verbose() {
		dfs.dumpNumbering(os.Stdout, t.name)
	}

	t.semiNCA(dfs, &from)

	for _, a := range connecting {
		t.insertReachable(a.from, a.to)
	}
}

type bucketElem[N any] struct {
	level int
	node  N
}

// insertionInfo is the working state of a reachable insertion: a bucket of
// candidates ordered by decreasing tree level, the set of nodes whose
// immediate dominator drops to the NCA, and the visited subtree nodes whose
// levels must be recomputed.
type insertionInfo[N any] struct {
	bucket                  pq.PriorityQueue[bucketElem[N]]
	affected                *hmap.Set[N]
	visited                 *hmap.Set[N]
	affectedQueue           []N
	visitedNotAffectedQueue []N
}

func (t *DomTree[N]) newInsertionInfo() *insertionInfo[N] {
	return &insertionInfo[N]{
		bucket: pq.Empty(func(a, b bucketElem[N]) bool {
			return a.level > b.level
		}),
		affected: graph.NewSet(t.g),
		visited:  graph.NewSet(t.g),
	}
}

// insertReachable handles an arc between two already reachable nodes with a
// bounded search seeded at the arc target, processing candidates deepest
// first.
func (t *DomTree[N]) insertReachable(from, to N) {
	nca := t.FindNCA(from, to)
	// A back arc into a dominator changes nothing.
	if t.eq(nca, to) {
		return
	}

	ii := t.newInsertionInfo()
	ii.bucket.Add(bucketElem[N]{t.GetLevel(to), to})

	for !ii.bucket.IsEmpty() {
		current := ii.bucket.GetNext().node
		if ii.affected.Has(current) {
			continue
		}
		ii.affected.Add(current)
		ii.affectedQueue = append(ii.affectedQueue, current)

		t.visitInsertion(current, t.GetLevel(current), nca, ii)
	}

	t.updateInsertion(nca, ii)
	t.updateLevels(ii)
}

// visitInsertion scans the subtree below an affected node, queueing
// shallower candidates whose dominator may drop to the NCA and remembering
// subtree nodes whose levels change without their dominator changing. The
// scan is local to the affected node: a node skipped as a subtree member of
// one affected node may still become a candidate through another.
func (t *DomTree[N]) visitInsertion(n N, rootLevel int, nca N, ii *insertionInfo[N]) {
	ncaLevel := t.GetLevel(nca)
	scanned := graph.NewSet(t.g)

	var walk func(cur N)
	walk = func(cur N) {
		for _, succ := range t.g.Edges(cur) {
			if scanned.Has(succ) {
				continue
			}
			scanned.Add(succ)

			succLevel := t.GetLevel(succ)
			if succLevel > rootLevel {
				if !ii.visited.Has(succ) {
					ii.visited.Add(succ)
					ii.visitedNotAffectedQueue = append(ii.visitedNotAffectedQueue, succ)
				}
				walk(succ)
			} else if succLevel > ncaLevel+1 && !ii.affected.Has(succ) {
				ii.bucket.Add(bucketElem[N]{succLevel, succ})
			}
		}
	}
	walk(n)
}

// updateInsertion reattaches every affected node directly below the NCA.
func (t *DomTree[N]) updateInsertion(nca N, ii *insertionInfo[N]) {
	for _, n := range ii.affectedQueue {
		t.setIDom(n, nca)
	}
}

// updateLevels restores the level invariant, processing parents before
// children.
func (t *DomTree[N]) updateLevels(ii *insertionInfo[N]) {
	type nodeLevel struct {
		node  N
		level int
	}

	notAffected := make([]nodeLevel, len(ii.visitedNotAffectedQueue))
	for i, n := range ii.visitedNotAffectedQueue {
		notAffected[i] = nodeLevel{n, t.GetLevel(n)}
	}

	for _, n := range ii.affectedQueue {
		t.levels.Set(n, t.GetLevel(t.GetIDom(n))+1)
	}

	sort.SliceStable(notAffected, func(i, j int) bool {
		return notAffected[i].level < notAffected[j].level
	})
	for _, nl := range notAffected {
		t.levels.Set(nl.node, t.GetLevel(t.GetIDom(nl.node))+1)
	}
}
