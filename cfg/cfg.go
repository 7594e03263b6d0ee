package cfg

import (
	"sort"

	"github.com/cs-au-dk/incdom/utils"
	"github.com/cs-au-dk/incdom/utils/graph"
	"github.com/cs-au-dk/incdom/utils/slices"

	"github.com/benbjohnson/immutable"
)

// Block is a basic block in the control-flow graph. Its terminator is
// modelled after a switch instruction: a default destination plus an ordered
// list of case destinations. Arcs are added as cases in insertion order, so
// successor enumeration is deterministic.
type Block struct {
	name  string
	term  *terminator
	preds map[*Block]int
}

type terminator struct {
	defaultDest *Block
	cases       []*Block
}

func NewBlock(name string) *Block {
	return &Block{
		name:  name,
		preds: make(map[*Block]int),
	}
}

func (b *Block) Name() string {
	return b.name
}

func (b *Block) String() string {
	return b.name
}

// Successors returns the ordered successor list: the default destination
// first, followed by the cases in insertion order. Destinations may repeat
// when parallel arcs exist.
func (b *Block) Successors() []*Block {
	if b.term == nil {
		return nil
	}
	succs := make([]*Block, 0, len(b.term.cases)+1)
	succs = append(succs, b.term.defaultDest)
	succs = append(succs, b.term.cases...)
	return succs
}

// Predecessors returns the distinct predecessor blocks, ordered by name for
// determinism.
func (b *Block) Predecessors() []*Block {
	res := make([]*Block, 0, len(b.preds))
	for p := range b.preds {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool {
		return utils.CompareNumeric(res[i].name, res[j].name) < 0
	})
	return res
}

// HasArc reports whether at least one from -> to arc exists.
func (b *Block) HasArc(to *Block) bool {
	return to.preds[b] > 0
}

// Connect realizes the arc from -> to. The first arc out of a block becomes
// the default destination of its terminator; later arcs are appended as cases.
func Connect(from, to *Block) {
	if from.term == nil {
		from.term = &terminator{defaultDest: to}
	} else {
		from.term.cases = append(from.term.cases, to)
	}
	to.preds[from]++
}

// Disconnect removes one from -> to arc, if present. When the default
// destination matches, the first case is promoted to default; when the last
// arc of a block is removed, the terminator disappears entirely.
func Disconnect(from, to *Block) {
	t := from.term
	if t == nil {
		return
	}

	removed := false
	switch {
	case len(t.cases) == 0:
		if t.defaultDest == to {
			from.term = nil
			removed = true
		}
	case t.defaultDest == to:
		t.defaultDest = t.cases[0]
		t.cases = t.cases[1:]
		removed = true
	default:
		if i := slices.Index(t.cases, func(c *Block) bool { return c == to }); i >= 0 {
			t.cases = append(t.cases[:i], t.cases[i+1:]...)
			removed = true
		}
	}

	if removed {
		if to.preds[from]--; to.preds[from] == 0 {
			delete(to.preds, from)
		}
	}
}

// Hash computes a name-based hash; block identity remains pointer equality.
func (b *Block) Hash() uint32 {
	hs := make([]uint32, len(b.name))
	for i := 0; i < len(b.name); i++ {
		hs[i] = uint32(b.name[i])
	}
	return utils.HashCombine(hs...)
}

func (b *Block) Equal(other *Block) bool {
	return b == other
}

// Hasher returns the node hasher for blocks.
func Hasher() immutable.Hasher[*Block] {
	return utils.HashableHasher[*Block]()
}

// Graph adapts blocks to the generic graph interface.
func Graph() graph.Graph[*Block] {
	return graph.Of[*Block](Hasher(), (*Block).Name, (*Block).Successors).
		WithPredecessors((*Block).Predecessors)
}
