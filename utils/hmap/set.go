package hmap

import "github.com/benbjohnson/immutable"

// Set is a mutable hash set on top of Map.
type Set[K any] struct {
	mp *Map[K, struct{}]
}

func NewSet[K any](hasher immutable.Hasher[K]) *Set[K] {
	return &Set[K]{mp: NewMap[struct{}](hasher)}
}

func (s *Set[K]) Add(key K) {
	s.mp.Set(key, struct{}{})
}

func (s *Set[K]) Has(key K) bool {
	return s.mp.Has(key)
}

func (s *Set[K]) Remove(key K) {
	s.mp.Remove(key)
}

func (s *Set[K]) ForEach(do func(key K)) {
	s.mp.ForEach(func(key K, _ struct{}) {
		do(key)
	})
}

func (s *Set[K]) Len() int {
	return s.mp.Len()
}
