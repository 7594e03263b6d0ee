package cfg

import (
	"testing"
)

func names(blocks []*Block) []string {
	res := make([]string, len(blocks))
	for i, b := range blocks {
		res[i] = b.Name()
	}
	return res
}

func expectSuccessors(t *testing.T, b *Block, expected ...string) {
	t.Helper()
	got := names(b.Successors())
	if len(got) != len(expected) {
		t.Fatalf("successors of %s = %v, expected %v", b.Name(), got, expected)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Fatalf("successors of %s = %v, expected %v", b.Name(), got, expected)
		}
	}
}

func TestConnectOrder(t *testing.T) {
	a, b, c, d := NewBlock("a"), NewBlock("b"), NewBlock("c"), NewBlock("d")

	Connect(a, b)
	Connect(a, c)
	Connect(a, d)

	// The first arc is the default destination; later arcs become cases in
	// insertion order.
	expectSuccessors(t, a, "b", "c", "d")

	if !a.HasArc(b) || !a.HasArc(c) || !a.HasArc(d) {
		t.Error("expected all arcs present")
	}
	if b.HasArc(a) {
		t.Error("arcs are directed")
	}
}

func TestDisconnectCase(t *testing.T) {
	a, b, c := NewBlock("a"), NewBlock("b"), NewBlock("c")
	Connect(a, b)
	Connect(a, c)

	Disconnect(a, c)
	expectSuccessors(t, a, "b")
	if a.HasArc(c) {
		t.Error("arc a -> c should be gone")
	}
}

func TestDisconnectDefaultPromotesFirstCase(t *testing.T) {
	a, b, c := NewBlock("a"), NewBlock("b"), NewBlock("c")
	Connect(a, b)
	Connect(a, c)

	Disconnect(a, b)
	expectSuccessors(t, a, "c")
}

func TestDisconnectLastArcDropsTerminator(t *testing.T) {
	a, b := NewBlock("a"), NewBlock("b")
	Connect(a, b)

	Disconnect(a, b)
	expectSuccessors(t, a)
	if len(b.Predecessors()) != 0 {
		t.Error("b should have no predecessors left")
	}
}

func TestDisconnectAbsentArc(t *testing.T) {
	a, b, c := NewBlock("a"), NewBlock("b"), NewBlock("c")
	Connect(a, b)

	Disconnect(a, c)
	expectSuccessors(t, a, "b")
}

func TestParallelArcs(t *testing.T) {
	a, b := NewBlock("a"), NewBlock("b")
	Connect(a, b)
	Connect(a, b)

	expectSuccessors(t, a, "b", "b")

	Disconnect(a, b)
	expectSuccessors(t, a, "b")
	if !a.HasArc(b) {
		t.Error("one parallel arc should remain")
	}

	Disconnect(a, b)
	if a.HasArc(b) {
		t.Error("all arcs should be gone")
	}
}

func TestPrintFrom(t *testing.T) {
	a, b, c := NewBlock("n_1"), NewBlock("n_2"), NewBlock("n_3")
	Connect(a, b)
	Connect(a, c)

	expected := "cfg of n_1 {\n" +
		"  n_1 -> n_2, n_3\n" +
		"  n_2\n" +
		"  n_3\n" +
		"}"
	if got := PrintFrom(a); got != expected {
		t.Errorf("PrintFrom produced:\n%s\nexpected:\n%s", got, expected)
	}
}

func TestPredecessorsOrdered(t *testing.T) {
	target := NewBlock("n_4")
	for _, name := range []string{"n_10", "n_2", "n_9"} {
		Connect(NewBlock(name), target)
	}

	got := names(target.Predecessors())
	expected := []string{"n_2", "n_9", "n_10"}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("predecessors = %v, expected %v", got, expected)
		}
	}
}
