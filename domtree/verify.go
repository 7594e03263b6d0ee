package domtree

import (
	"fmt"
	"log"

	"github.com/fatih/color"
)

// Verification selects which checks Verify runs. Levels compose as a
// bitmask.
type Verification uint

const (
	VerifyNone    Verification = 0
	VerifyBasic   Verification = 1
	VerifyCFG     Verification = 2
	VerifySibling Verification = 4
	VerifyOracle  Verification = 8

	VerifyNormal = VerifyBasic | VerifyCFG | VerifyOracle
	VerifyFull   = VerifyBasic | VerifyCFG | VerifySibling | VerifyOracle
)

// ncaSampleLimit bounds the quadratic NCA consistency check.
const ncaSampleLimit = 64

// Verify runs the checks selected by the bitmask and reports whether all of
// them hold. Failures are logged; the tree is left intact so callers can
// inspect it.
func (t *DomTree[N]) Verify(level Verification) bool {
	correct := true

	if level&VerifyBasic != 0 {
		correct = t.verifyLevels() && correct
		correct = t.verifyNCA() && correct
	}
	if level&VerifyCFG != 0 {
		correct = t.verifyReachability() && correct
		correct = t.verifyParentProperty() && correct
	}
	if level&VerifySibling != 0 {
		correct = t.verifySiblingProperty() && correct
	}
	if level&VerifyOracle != 0 {
		correct = t.verifyWithOracle() && correct
	}

	return correct
}

func (t *DomTree[N]) failVerification(format string, args ...interface{}) bool {
	log.Println(color.RedString("verification failed:"), fmt.Sprintf(format, args...))
	return false
}

// verifyLevels checks that every node sits exactly one level below its
// immediate dominator.
func (t *DomTree[N]) verifyLevels() bool {
	ok := true
	t.idoms.ForEach(func(n, idom N) {
		if t.eq(n, t.root) {
			if t.GetLevel(n) != 0 {
				ok = t.failVerification("root %s has level %d", t.name(n), t.GetLevel(n))
			}
			return
		}
		idomLevel, found := t.levels.GetOk(idom)
		if !found {
			ok = t.failVerification("%s has an idom %s without a level", t.name(n), t.name(idom))
			return
		}
		if t.GetLevel(n) != idomLevel+1 {
			ok = t.failVerification("%s has level %d, but its idom %s has level %d",
				t.name(n), t.GetLevel(n), t.name(idom), idomLevel)
		}
	})
	return ok
}

// verifyReachability checks that the tree covers exactly the nodes reachable
// from the root in the current CFG.
func (t *DomTree[N]) verifyReachability() bool {
	ok := true
	reachable := t.g.Reachable(t.root, nil)

	reachable.ForEach(func(n N) {
		if !t.Contains(n) {
			ok = t.failVerification("%s is reachable but not in the tree", t.name(n))
		}
	})
	t.idoms.ForEach(func(n, _ N) {
		if !reachable.Has(n) {
			ok = t.failVerification("%s is in the tree but unreachable", t.name(n))
		}
	})

	return ok
}

// verifyParentProperty checks that removing a node's immediate dominator
// from the CFG makes the node unreachable.
func (t *DomTree[N]) verifyParentProperty() bool {
	ok := true
	t.idoms.ForEach(func(n, idom N) {
		if t.eq(n, t.root) || t.eq(idom, t.root) {
			return
		}
		visited := t.g.Reachable(t.root, func(_, to N) bool {
			return !t.eq(to, idom)
		})
		if visited.Has(n) {
			ok = t.failVerification("%s is reachable without passing through its idom %s",
				t.name(n), t.name(idom))
		}
	})
	return ok
}

// verifySiblingProperty checks that no node dominates its siblings: removing
// one sibling must leave the others reachable.
func (t *DomTree[N]) verifySiblingProperty() bool {
	ok := true
	t.children.ForEach(func(_ N, siblings []N) {
		for _, a := range siblings {
			visited := t.g.Reachable(t.root, func(_, to N) bool {
				return !t.eq(to, a)
			})
			for _, b := range siblings {
				if t.eq(a, b) {
					continue
				}
				if !visited.Has(b) {
					ok = t.failVerification("sibling %s dominates %s", t.name(a), t.name(b))
				}
			}
		}
	})
	return ok
}

// verifyNCA checks, for a sample of node pairs, that FindNCA returns a
// common ancestor of both nodes and that none of its tree children is one.
func (t *DomTree[N]) verifyNCA() bool {
	nodes := t.idoms.Keys()
	// Keep the quadratic pair enumeration bounded on large graphs.
	if len(nodes) > ncaSampleLimit {
		step := len(nodes)/ncaSampleLimit + 1
		sample := []N{}
		for i := 0; i < len(nodes); i += step {
			sample = append(sample, nodes[i])
		}
		nodes = sample
	}

	ok := true
	for _, a := range nodes {
		for _, b := range nodes {
			nca := t.FindNCA(a, b)
			if !t.Dominates(nca, a) || !t.Dominates(nca, b) {
				ok = t.failVerification("nca %s of (%s, %s) is not a common ancestor",
					t.name(nca), t.name(a), t.name(b))
				continue
			}
			for _, c := range t.children.Get(nca) {
				if t.Dominates(c, a) && t.Dominates(c, b) {
					ok = t.failVerification("nca %s of (%s, %s) is not the nearest: %s is deeper",
						t.name(nca), t.name(a), t.name(b), t.name(c))
				}
			}
		}
	}
	return ok
}

// verifyWithOracle recomputes dominators from scratch, both with a fresh
// Semi-NCA pass and with the independent iterative algorithm, and compares
// element-wise.
func (t *DomTree[N]) verifyWithOracle() bool {
	ok := true

	fresh := New(t.g, t.root)
	if fresh.idoms.Len() != t.idoms.Len() {
		ok = t.failVerification("tree has %d nodes, from-scratch recomputation has %d",
			t.idoms.Len(), fresh.idoms.Len())
	}
	t.idoms.ForEach(func(n, idom N) {
		expected, found := fresh.idoms.GetOk(n)
		if !found {
			ok = t.failVerification("%s is absent from the from-scratch recomputation", t.name(n))
		} else if !t.eq(idom, expected) {
			ok = t.failVerification("%s has idom %s, from-scratch recomputation says %s",
				t.name(n), t.name(idom), t.name(expected))
		}
	})

	oracle, _ := t.g.Dominators(t.root)
	if oracle.Len() != t.idoms.Len() {
		ok = t.failVerification("tree has %d nodes, the iterative oracle has %d",
			t.idoms.Len(), oracle.Len())
	}
	t.idoms.ForEach(func(n, idom N) {
		expected, found := oracle.GetOk(n)
		if !found {
			ok = t.failVerification("%s is absent from the iterative oracle", t.name(n))
		} else if !t.eq(idom, expected) {
			ok = t.failVerification("%s has idom %s, the iterative oracle says %s",
				t.name(n), t.name(idom), t.name(expected))
		}
	})

	return ok
}
