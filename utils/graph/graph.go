package graph

/*
	This package exposes utilities for working with graph structures.

	The caller provides a function describing the edge relation, a hasher for
	the node type, and a naming function used for diagnostics. Edges are
	re-enumerated on every call, since the underlying graph may mutate between
	queries.
*/

import (
	"github.com/cs-au-dk/incdom/utils/hmap"

	"github.com/benbjohnson/immutable"
)

type edgesOf[T any] func(node T) []T

type Graph[T any] struct {
	hasher  immutable.Hasher[T]
	nameOf  func(T) string
	edgesOf edgesOf[T]
	predsOf edgesOf[T]
}

func Of[T any](hasher immutable.Hasher[T], nameOf func(T) string, edgesOf edgesOf[T]) Graph[T] {
	return Graph[T]{
		hasher:  hasher,
		nameOf:  nameOf,
		edgesOf: edgesOf,
	}
}

// WithPredecessors equips the graph with a predecessor enumeration function.
// Algorithms fall back to successor scans when it is absent.
func (G Graph[T]) WithPredecessors(predsOf func(T) []T) Graph[T] {
	G.predsOf = predsOf
	return G
}

func (G Graph[T]) Edges(node T) []T {
	return G.edgesOf(node)
}

func (G Graph[T]) Name(node T) string {
	if G.nameOf == nil {
		return ""
	}
	return G.nameOf(node)
}

func (G Graph[T]) Hasher() immutable.Hasher[T] {
	return G.hasher
}

func (G Graph[T]) HasPredecessors() bool {
	return G.predsOf != nil
}

func (G Graph[T]) Predecessors(node T) []T {
	return G.predsOf(node)
}

// NewMap creates a mutable map keyed by the graph's node type.
func NewMap[V, T any](G Graph[T]) *hmap.Map[T, V] {
	return hmap.NewMap[V](G.hasher)
}

// NewSet creates a mutable set of the graph's node type.
func NewSet[T any](G Graph[T]) *hmap.Set[T] {
	return hmap.NewSet(G.hasher)
}

// Reachable computes the set of nodes reachable from the given node. The
// descend predicate can prune the traversal; edges for which it returns false
// are not followed.
func (G Graph[T]) Reachable(from T, descend func(from, to T) bool) *hmap.Set[T] {
	visited := NewSet(G)

	var visit func(T)
	visit = func(node T) {
		if visited.Has(node) {
			return
		}
		visited.Add(node)

		for _, succ := range G.Edges(node) {
			if descend == nil || descend(node, succ) {
				visit(succ)
			}
		}
	}

	visit(from)
	return visited
}
