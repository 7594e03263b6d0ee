package cfg

import (
	"sort"
	"strings"

	"github.com/cs-au-dk/incdom/utils"
	i "github.com/cs-au-dk/incdom/utils/indenter"
)

// reachableBlocks collects the blocks reachable from entry, ordered by name.
func reachableBlocks(entry *Block) []*Block {
	blocks := []*Block{}
	Graph().Reachable(entry, nil).ForEach(func(b *Block) {
		blocks = append(blocks, b)
	})
	sort.Slice(blocks, func(x, y int) bool {
		return utils.CompareNumeric(blocks[x].name, blocks[y].name) < 0
	})
	return blocks
}

// PrintFrom produces a textual dump of all blocks reachable from entry and
// their successor lists.
func PrintFrom(entry *Block) string {
	blocks := reachableBlocks(entry)

	thunks := make([]func() string, 0, len(blocks))
	for _, b := range blocks {
		b := b
		thunks = append(thunks, func() string {
			succs := []string{}
			for _, s := range b.Successors() {
				succs = append(succs, utils.BlockString(s.name))
			}
			if len(succs) == 0 {
				return utils.BlockString(b.name)
			}
			return utils.BlockString(b.name) + " -> " + strings.Join(succs, ", ")
		})
	}

	return i.Indenter().Start("cfg of " + utils.BlockString(entry.name) + " {").
		NestThunked(thunks...).
		End("}")
}
