package art

// KV is a single key/value pair yielded by iteration.
type KV[V any] struct {
	Key   Key
	Value V
}

// Iterator walks a materialized, ascending-order sequence of KV pairs.
// The tree is walked once, up front, into a sorted slice; Next/Key/Value
// then serve from that slice. This trades a lazy stack-of-child-iterators
// traversal for a simpler, still strictly-ordered implementation -- see
// DESIGN.md for the rationale. LongestPrefixMatch is the one traversal
// that still walks the live tree directly, since it needs no full
// ordering, just a single root-to-leaf descent.
type Iterator[V any] struct {
	items []KV[V]
	pos   int
}

func newIterator[V any](items []KV[V]) *Iterator[V] {
	return &Iterator[V]{items: items, pos: -1}
}

// Next advances to the next pair, returning false when exhausted.
func (it *Iterator[V]) Next() bool {
	it.pos++
	return it.pos < len(it.items)
}

// Key returns the current pair's key. Valid only after a true-returning Next.
func (it *Iterator[V]) Key() Key { return it.items[it.pos].Key }

// Value returns the current pair's value. Valid only after a true-returning Next.
func (it *Iterator[V]) Value() V { return it.items[it.pos].Value }

// Len returns the total number of pairs this iterator will yield.
func (it *Iterator[V]) Len() int { return len(it.items) }

// Iter returns an Iterator over all (key, value) pairs in ascending key
// order, with no duplicates.
func (t *Tree[V]) Iter() *Iterator[V] {
	return newIterator(t.collect())
}

// ValuesIter returns an Iterator for reading values in ascending key order.
// It is the same Iterator that Iter returns, so Key() stays available too.
func (t *Tree[V]) ValuesIter() *Iterator[V] { return t.Iter() }

// collect performs an ordered depth-first traversal: a growing key buffer
// accumulates prefixes along the path, and any node carrying a value
// emits (full_key, value).
func (t *Tree[V]) collect() []KV[V] {
	out := make([]KV[V], 0, t.size)
	if t.root != nil {
		collectInto(t.root, nil, &out)
	}
	return out
}

func collectInto[V any](n *node[V], keyBuf []byte, out *[]KV[V]) {
	buf := make([]byte, 0, len(keyBuf)+n.prefix.Len())
	buf = append(buf, keyBuf...)
	buf = append(buf, n.prefix.Bytes()...)

	if n.hasValue {
		*out = append(*out, KV[V]{Key: Key(buf), Value: n.value})
	}
	if n.m != nil {
		n.m.iterate(func(_ byte, child *node[V]) {
			collectInto(child, buf, out)
		})
	}
}
