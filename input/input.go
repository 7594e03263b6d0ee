package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cs-au-dk/incdom/cfg"

	uf "github.com/spakin/disjoint"
)

// Errors reported for malformed graph descriptions.
var (
	ErrParse         = errors.New("parse error")
	ErrUnknownAction = errors.New("unknown action")
	ErrDoubleInit    = errors.New("double init")
)

// Op is a deferred update action.
type Op int

const (
	Insert Op = iota
	Delete
)

func (op Op) String() string {
	if op == Insert {
		return "insert"
	}
	return "delete"
}

type Arc struct {
	X, Y int
}

type Update struct {
	Action Op
	Arc    Arc
}

// InputGraph is a parsed graph description: N nodes numbered 1..N, a set of
// initial arcs, an entry node, and a list of deferred updates to replay.
type InputGraph struct {
	NodesNum int
	Entry    int
	Arcs     []Arc
	Updates  []Update

	blocks    []*cfg.Block
	updateIdx int
}

// Load reads a graph description from a file.
func Load(path string) (*InputGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a line-oriented graph description:
//
//	p N M E D    problem header: N nodes, M initial arcs, entry E
//	a X Y        initial arc X -> Y
//	e            end of the initial graph
//	i X Y        deferred update: insert arc X -> Y
//	d X Y        deferred update: delete arc X -> Y
//
// A blank line terminates the description.
func Parse(r io.Reader) (*InputGraph, error) {
	g := &InputGraph{}
	sc := bufio.NewScanner(r)

	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			break
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "p":
			if g.NodesNum != 0 {
				return nil, fmt.Errorf("%w: second problem header %q", ErrDoubleInit, line)
			}
			nums, err := atois(line, fields[1:], 4)
			if err != nil {
				return nil, err
			}
			g.NodesNum = nums[0]
			g.Entry = nums[2]
			g.Arcs = make([]Arc, 0, nums[1])
			if g.NodesNum <= 0 || g.Entry < 1 || g.Entry > g.NodesNum {
				return nil, fmt.Errorf("%w: bad problem header %q", ErrParse, line)
			}

		case "a":
			arc, err := g.parseArc(line, fields[1:])
			if err != nil {
				return nil, err
			}
			g.Arcs = append(g.Arcs, arc)

		case "e":
			// End of the initial graph.

		case "i", "d":
			arc, err := g.parseArc(line, fields[1:])
			if err != nil {
				return nil, err
			}
			action := Insert
			if fields[0] == "d" {
				action = Delete
			}
			g.Updates = append(g.Updates, Update{action, arc})

		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownAction, fields[0])
		}
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}
	if g.NodesNum == 0 {
		return nil, fmt.Errorf("%w: missing problem header", ErrParse)
	}
	return g, nil
}

func (g *InputGraph) parseArc(line string, fields []string) (Arc, error) {
	if g.NodesNum == 0 {
		return Arc{}, fmt.Errorf("%w: arc before problem header %q", ErrParse, line)
	}
	nums, err := atois(line, fields, 2)
	if err != nil {
		return Arc{}, err
	}
	arc := Arc{nums[0], nums[1]}
	if arc.X < 1 || arc.X > g.NodesNum || arc.Y < 1 || arc.Y > g.NodesNum {
		return Arc{}, fmt.Errorf("%w: arc out of range %q", ErrParse, line)
	}
	return arc, nil
}

func atois(line string, fields []string, expected int) ([]int, error) {
	if len(fields) != expected {
		return nil, fmt.Errorf("%w: %q", ErrParse, line)
	}
	nums := make([]int, expected)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrParse, line)
		}
		nums[i] = n
	}
	return nums, nil
}

// ToCFG materializes blocks for nodes 1..N and connects the initial arcs,
// returning the entry block. The entry is named entry_n_E, every other node
// n_K.
func (g *InputGraph) ToCFG() *cfg.Block {
	g.blocks = make([]*cfg.Block, g.NodesNum+1)
	for i := 1; i <= g.NodesNum; i++ {
		name := fmt.Sprintf("n_%d", i)
		if i == g.Entry {
			name = fmt.Sprintf("entry_n_%d", i)
		}
		g.blocks[i] = cfg.NewBlock(name)
	}

	for _, a := range g.Arcs {
		cfg.Connect(g.blocks[a.X], g.blocks[a.Y])
	}

	return g.blocks[g.Entry]
}

// Block returns the block materialized for node number i.
func (g *InputGraph) Block(i int) *cfg.Block {
	return g.blocks[i]
}

// CFGUpdate is a deferred update realized against the CFG.
type CFGUpdate struct {
	Action   Op
	From, To *cfg.Block
}

// ApplyUpdate applies the next deferred update to the CFG and reports it, so
// the caller can mirror it into the dominator tree. Returns false when all
// updates have been replayed.
func (g *InputGraph) ApplyUpdate() (CFGUpdate, bool) {
	if g.updateIdx == len(g.Updates) {
		return CFGUpdate{}, false
	}

	next := g.Updates[g.updateIdx]
	g.updateIdx++

	from, to := g.blocks[next.Arc.X], g.blocks[next.Arc.Y]
	if next.Action == Insert {
		cfg.Connect(from, to)
	} else {
		cfg.Disconnect(from, to)
	}

	return CFGUpdate{next.Action, from, to}, true
}

// Components counts the weakly connected components of the initial graph,
// reported as a diagnostic before construction.
func (g *InputGraph) Components() int {
	elements := make([]*uf.Element, g.NodesNum+1)
	for i := 1; i <= g.NodesNum; i++ {
		elements[i] = uf.NewElement()
	}
	for _, a := range g.Arcs {
		uf.Union(elements[a.X], elements[a.Y])
	}

	roots := map[*uf.Element]struct{}{}
	for i := 1; i <= g.NodesNum; i++ {
		roots[elements[i].Find()] = struct{}{}
	}
	return len(roots)
}
