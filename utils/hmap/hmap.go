package hmap

import "github.com/benbjohnson/immutable"

// A simple implementation of a mutable hash map.
// Useful when we cannot use Go's maps directly, because the key type is not
// comparable, and we want to avoid the overhead of immutable maps.

// Uses linked lists to resolve hash collisions.

type node[K, V any] struct {
	key   K
	value V
	next  *node[K, V]
}

type Map[K, V any] struct {
	hasher immutable.Hasher[K]
	mp     map[uint32]*node[K, V]
	size   int
}

// Order of V and K are swapped since K can be inferred by the argument.
func NewMap[V, K any](hasher immutable.Hasher[K]) *Map[K, V] {
	return &Map[K, V]{
		hasher: hasher,
		mp:     make(map[uint32]*node[K, V]),
	}
}

func (m *Map[K, V]) Set(key K, value V) {
	h := m.hasher.Hash(key)
	if snode, found := m.mp[h]; !found {
		m.mp[h] = &node[K, V]{key, value, nil}
		m.size++
	} else {
		for {
			if m.hasher.Equal(key, snode.key) {
				snode.value = value
				return
			}

			if next := snode.next; next == nil {
				// Hash collision :(
				snode.next = &node[K, V]{key, value, nil}
				m.size++
				return
			} else {
				snode = next
			}
		}
	}
}

func (m *Map[K, V]) GetOk(key K) (res V, ok bool) {
	for node := m.mp[m.hasher.Hash(key)]; node != nil; node = node.next {
		if m.hasher.Equal(key, node.key) {
			return node.value, true
		}
	}

	return
}

func (m *Map[K, V]) Get(key K) V {
	v, _ := m.GetOk(key)
	return v
}

func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.GetOk(key)
	return ok
}

// Remove deletes the mapping for the given key, if present.
func (m *Map[K, V]) Remove(key K) {
	h := m.hasher.Hash(key)
	snode := m.mp[h]
	if snode == nil {
		return
	}

	if m.hasher.Equal(key, snode.key) {
		if snode.next == nil {
			delete(m.mp, h)
		} else {
			m.mp[h] = snode.next
		}
		m.size--
		return
	}

	for ; snode.next != nil; snode = snode.next {
		if m.hasher.Equal(key, snode.next.key) {
			snode.next = snode.next.next
			m.size--
			return
		}
	}
}

// ForEach visits all key-value pairs in unspecified order.
func (m *Map[K, V]) ForEach(do func(key K, value V)) {
	for _, snode := range m.mp {
		for ; snode != nil; snode = snode.next {
			do(snode.key, snode.value)
		}
	}
}

func (m *Map[K, V]) Len() int {
	return m.size
}

// Keys collects all keys in unspecified order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.size)
	m.ForEach(func(key K, _ V) {
		keys = append(keys, key)
	})
	return keys
}
