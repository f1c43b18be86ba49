package multimap

import (
	"sync"

	set3 "github.com/TomTonic/Set3"
	"github.com/TomTonic/art"
)

// artMultiMap is the default implementation, storing each key's value set
// under that key in an art.Tree guarded by a RWMutex. The locking
// discipline and clone-on-read/clone-on-write behavior match a plain
// slice-backed multimap; only the storage underneath the lock differs.
type artMultiMap[T comparable] struct {
	mu   sync.RWMutex
	tree *art.Tree[*set3.Set3[T]]
}

func newARTBased[T comparable]() *artMultiMap[T] {
	return &artMultiMap[T]{
		tree: art.New[*set3.Set3[T]](),
	}
}

func (m *artMultiMap[T]) PutValue(key Key, v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.tree.Get(key); ok {
		existing.Add(v)
		return
	}
	values := set3.Empty[T]()
	values.Add(v)
	m.tree.Insert(key.Clone(), values)
}

func (m *artMultiMap[T]) RemoveValue(key Key, v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.tree.Get(key); ok {
		existing.Remove(v)
	}
}

func (m *artMultiMap[T]) ContainsKey(key Key) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.tree.Get(key)
	return ok
}

func (m *artMultiMap[T]) RemoveKey(key Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tree.Remove(key)
}

func (m *artMultiMap[T]) GetValuesFor(key Key) *set3.Set3[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if existing, ok := m.tree.Get(key); ok {
		return existing.Clone()
	}
	return set3.EmptyWithCapacity[T](0)
}

func (m *artMultiMap[T]) GetAllValues() *set3.Set3[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := set3.Empty[T]()
	it := m.tree.Iter()
	for it.Next() {
		result.AddAll(it.Value())
	}
	return result
}

func (m *artMultiMap[T]) GetValuesBetweenInclusive(from, to Key) *set3.Set3[T] {
	return m.union(from, to, true, true)
}

func (m *artMultiMap[T]) GetValuesBetweenExclusive(from, to Key) *set3.Set3[T] {
	return m.union(from, to, false, false)
}

func (m *artMultiMap[T]) GetValuesFromInclusive(from Key) *set3.Set3[T] {
	return m.union(from, nil, true, false)
}

func (m *artMultiMap[T]) GetValuesToInclusive(to Key) *set3.Set3[T] {
	return m.union(nil, to, false, true)
}

func (m *artMultiMap[T]) GetValuesFromExclusive(from Key) *set3.Set3[T] {
	return m.union(from, nil, false, false)
}

func (m *artMultiMap[T]) GetValuesToExclusive(to Key) *set3.Set3[T] {
	return m.union(nil, to, false, false)
}

func (m *artMultiMap[T]) union(from, to Key, loInclusive, hiInclusive bool) *set3.Set3[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := set3.Empty[T]()
	it := m.tree.Range(from, to, loInclusive, hiInclusive)
	for it.Next() {
		result.AddAll(it.Value())
	}
	return result
}

func (m *artMultiMap[T]) Size() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return uint64(m.tree.Len())
}

func (m *artMultiMap[T]) Keys() []Key {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]Key, 0, m.tree.Len())
	it := m.tree.Iter()
	for it.Next() {
		result = append(result, it.Key().Clone())
	}
	return result
}

func (m *artMultiMap[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tree = art.New[*set3.Set3[T]]()
}
