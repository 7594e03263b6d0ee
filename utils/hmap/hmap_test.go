package hmap

import (
	"testing"
)

// badHasher sends every key to the same bucket to exercise collision chains.
type badHasher struct{}

func (badHasher) Hash(int) uint32     { return 0 }
func (badHasher) Equal(a, b int) bool { return a == b }

func TestMapBasic(t *testing.T) {
	m := NewMap[string](badHasher{})

	if m.Has(1) || m.Len() != 0 {
		t.Error("fresh map should be empty")
	}

	m.Set(1, "a")
	m.Set(2, "b")
	m.Set(1, "c")

	if m.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", m.Len())
	}
	if v := m.Get(1); v != "c" {
		t.Errorf("Get(1) = %q, expected c", v)
	}
	if _, ok := m.GetOk(3); ok {
		t.Error("expected miss for 3")
	}
}

func TestMapRemove(t *testing.T) {
	m := NewMap[string](badHasher{})
	for i := 0; i < 5; i++ {
		m.Set(i, "v")
	}

	m.Remove(2)
	m.Remove(0)
	m.Remove(4)
	m.Remove(17)

	if m.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", m.Len())
	}
	for _, present := range []int{1, 3} {
		if !m.Has(present) {
			t.Errorf("%d should survive removal of other keys", present)
		}
	}
	for _, absent := range []int{0, 2, 4} {
		if m.Has(absent) {
			t.Errorf("%d should be removed", absent)
		}
	}
}

func TestMapForEach(t *testing.T) {
	m := NewMap[int](badHasher{})
	for i := 0; i < 4; i++ {
		m.Set(i, i*i)
	}

	seen := map[int]int{}
	m.ForEach(func(k, v int) {
		seen[k] = v
	})

	if len(seen) != 4 {
		t.Errorf("visited %d entries, expected 4", len(seen))
	}
	for k, v := range seen {
		if v != k*k {
			t.Errorf("entry %d = %d, expected %d", k, v, k*k)
		}
	}
}

func TestSet(t *testing.T) {
	s := NewSet[int](badHasher{})
	s.Add(1)
	s.Add(2)
	s.Add(1)

	if s.Len() != 2 || !s.Has(1) || !s.Has(2) || s.Has(3) {
		t.Error("unexpected set contents")
	}

	s.Remove(1)
	if s.Has(1) || s.Len() != 1 {
		t.Error("1 should be removed")
	}
}
