package art

import (
	"sort"
	"sync/atomic"
)

// VersionedTree is the persistent counterpart of Tree: Snapshot returns an
// independent handle to the tree's current state in O(1), and any number
// of snapshots may be mutated afterward without affecting one another.
// Structural sharing between snapshots is tracked with an explicit
// per-node reference count, since Go has no built-in way to ask a pointer
// "am I the only owner of this?" the way some languages' smart pointers do.
//
// The versioned variant uses one flat sorted child list per node rather
// than the mutable Tree's adaptive N4/N16/N48/N256 tiers. Combining
// per-kind growth/shrink conversions with refcounted copy-on-write would
// mean writing a clone path for four node representations instead of one;
// a single representation keeps the sharing logic -- the reason this type
// exists -- in one place. See DESIGN.md.
type VersionedTree[V any] struct {
	root    *versionedNode[V]
	size    int
	version uint64
}

type versionedChild[V any] struct {
	b     byte
	child *versionedNode[V]
}

// versionedNode may be pointed to by more than one VersionedTree's root,
// or by more than one parent's child slot, at the same time. refcount
// counts those pointers. A node with refcount == 1 is exclusively owned
// by its one caller and may be mutated directly; refcount > 1 means it is
// shared and must be cloned before any mutation.
type versionedNode[V any] struct {
	refcount int32
	prefix   Partial
	hasValue bool
	value    V
	children []versionedChild[V]
}

func newVersionedLeaf[V any](prefix Partial, value V) *versionedNode[V] {
	return &versionedNode[V]{refcount: 1, prefix: prefix, hasValue: true, value: value}
}

func (n *versionedNode[V]) isLeaf() bool { return len(n.children) == 0 }

func (n *versionedNode[V]) findChild(b byte) int {
	for i := range n.children {
		if n.children[i].b == b {
			return i
		}
	}
	return -1
}

// cloneForWrite returns a node safe to mutate: n itself if n has no other
// owner, otherwise a fresh copy with refcount 1. Cloning decrements n's
// own refcount, since the caller is about to stop pointing at n in favor
// of the copy, and increments every child's refcount, since the copy now
// shares them with n.
func (n *versionedNode[V]) cloneForWrite() *versionedNode[V] {
	if atomic.LoadInt32(&n.refcount) == 1 {
		return n
	}
	atomic.AddInt32(&n.refcount, -1)
	childrenCopy := make([]versionedChild[V], len(n.children))
	copy(childrenCopy, n.children)
	for i := range childrenCopy {
		atomic.AddInt32(&childrenCopy[i].child.refcount, 1)
	}
	return &versionedNode[V]{
		refcount: 1,
		prefix:   n.prefix,
		hasValue: n.hasValue,
		value:    n.value,
		children: childrenCopy,
	}
}

// NewVersioned returns an empty VersionedTree.
func NewVersioned[V any]() *VersionedTree[V] { return &VersionedTree[V]{} }

func (t *VersionedTree[V]) IsEmpty() bool   { return t.root == nil }
func (t *VersionedTree[V]) Len() int        { return t.size }
func (t *VersionedTree[V]) Version() uint64 { return t.version }

// RefCount reports the current root's reference count (1 if this tree is
// the sole owner of its state). Exposed for tests and diagnostics.
func (t *VersionedTree[V]) RefCount() int32 {
	if t.root == nil {
		return 0
	}
	return atomic.LoadInt32(&t.root.refcount)
}

// Snapshot returns an independent VersionedTree sharing all of t's current
// state. The operation is O(1): it only bumps the root's reference count.
// Either tree may be mutated afterward; mutation clones whatever part of
// the shared structure it touches; the rest stays shared.
func (t *VersionedTree[V]) Snapshot() *VersionedTree[V] {
	if t.root != nil {
		atomic.AddInt32(&t.root.refcount, 1)
	}
	return &VersionedTree[V]{root: t.root, size: t.size, version: t.version}
}

func (t *VersionedTree[V]) Get(k Key) (V, bool) {
	depth := 0
	n := t.root
	for n != nil {
		m := commonPrefixLen(n.prefix, k, depth)
		if m != n.prefix.Len() {
			return zeroOf[V](), false
		}
		if n.prefix.Len() == k.LengthFromDepth(depth) {
			if n.hasValue {
				return n.value, true
			}
			return zeroOf[V](), false
		}
		if n.isLeaf() {
			return zeroOf[V](), false
		}
		b := k.ByteAt(depth + n.prefix.Len())
		depth += n.prefix.Len()
		idx := n.findChild(b)
		if idx < 0 {
			return zeroOf[V](), false
		}
		n = n.children[idx].child
	}
	return zeroOf[V](), false
}

// Insert stores value v under key k in this snapshot only. Every node on
// the path from the root to the insertion point is made exclusive first
// (cloned if shared), so other snapshots sharing the pre-insert structure
// are left untouched.
//
// The old value is read out of the node before it is overwritten, and a
// clone made by cloneForWrite carries a copy of that value, so the previous
// value at k is always returned correctly on replace, whether or not the
// node was shared beforehand -- see
// DESIGN.md for the design question this setup resolves.
func (t *VersionedTree[V]) Insert(k Key, v V) (V, bool) {
	if t.root == nil {
		t.root = newVersionedLeaf[V](newPartial(k.Bytes()), v)
		t.size++
		t.version++
		return zeroOf[V](), false
	}
	newRoot, old, replaced := versionedInsertRecurse(t.root, k, v, 0)
	t.root = newRoot
	if !replaced {
		t.size++
	}
	t.version++
	return old, replaced
}

func versionedInsertRecurse[V any](n *versionedNode[V], key Key, value V, depth int) (*versionedNode[V], V, bool) {
	n = n.cloneForWrite()
	lcp := commonPrefixLen(n.prefix, key, depth)

	if lcp < n.prefix.Len() {
		return versionedSplitNode(n, key, value, depth, lcp), zeroOf[V](), false
	}

	if n.prefix.Len() == key.LengthFromDepth(depth) {
		old := n.value
		existed := n.hasValue
		n.hasValue = true
		n.value = value
		return n, old, existed
	}

	newDepth := depth + n.prefix.Len()
	b := key.ByteAt(newDepth)
	idx := n.findChild(b)
	if idx < 0 {
		leaf := newVersionedLeaf[V](newPartial(key.Bytes()[newDepth:]), value)
		n.children = append(n.children, versionedChild[V]{b: b, child: leaf})
		sort.Slice(n.children, func(i, j int) bool { return n.children[i].b < n.children[j].b })
		return n, zeroOf[V](), false
	}
	newChild, old, replaced := versionedInsertRecurse(n.children[idx].child, key, value, newDepth)
	n.children[idx].child = newChild
	return n, old, replaced
}

func versionedSplitNode[V any](n *versionedNode[V], key Key, value V, depth, lcp int) *versionedNode[V] {
	newInnerPrefix := n.prefix.Before(lcp)
	oldDiscriminator := n.prefix.ByteAt(lcp)
	n.prefix = n.prefix.After(lcp)

	mid := &versionedNode[V]{refcount: 1, prefix: newInnerPrefix}
	mid.children = append(mid.children, versionedChild[V]{b: oldDiscriminator, child: n})

	if depth+lcp == key.Len() {
		mid.hasValue = true
		mid.value = value
		return mid
	}

	newLeafBytes := key.Bytes()[depth+lcp:]
	leaf := newVersionedLeaf[V](newPartial(newLeafBytes), value)
	mid.children = append(mid.children, versionedChild[V]{b: newLeafBytes[0], child: leaf})
	sort.Slice(mid.children, func(i, j int) bool { return mid.children[i].b < mid.children[j].b })
	return mid
}

// Remove deletes key k from this snapshot only, cloning shared nodes on
// the path exactly as Insert does.
func (t *VersionedTree[V]) Remove(k Key) (V, bool) {
	if t.root == nil {
		return zeroOf[V](), false
	}
	newRoot, val, removed := versionedRemoveRecurse(t.root, k, 0)
	t.root = newRoot
	if removed {
		t.size--
		t.version++
	}
	return val, removed
}

func versionedRemoveRecurse[V any](n *versionedNode[V], key Key, depth int) (*versionedNode[V], V, bool) {
	lcp := commonPrefixLen(n.prefix, key, depth)
	if lcp != n.prefix.Len() {
		return n, zeroOf[V](), false
	}

	if n.prefix.Len() == key.LengthFromDepth(depth) {
		if !n.hasValue {
			return n, zeroOf[V](), false
		}
		n = n.cloneForWrite()
		val := n.value
		n.hasValue = false
		n.value = zeroOf[V]()
		return versionedCollapseAfterValueClear(n), val, true
	}

	if n.isLeaf() {
		return n, zeroOf[V](), false
	}

	newDepth := depth + n.prefix.Len()
	b := key.ByteAt(newDepth)
	idx := n.findChild(b)
	if idx < 0 {
		return n, zeroOf[V](), false
	}

	// Clone before recursing, not after: cloneForWrite bumps every child's
	// refcount when n itself turns out to be shared, which is what lets
	// the recursive call below correctly detect that the child it is
	// about to mutate is (or isn't) exclusively owned. Cloning only on
	// the way back up would mutate a child reachable from another
	// snapshot through the still-shared original n.
	n = n.cloneForWrite()
	idx = n.findChild(b)
	newChild, val, removed := versionedRemoveRecurse(n.children[idx].child, key, newDepth)
	if !removed {
		// Keep any clone made below even though nothing was removed: the
		// original it replaced has already given up this pointer's share of
		// its refcount.
		n.children[idx].child = newChild
		return n, val, false
	}
	if newChild == nil {
		n.children = append(n.children[:idx], n.children[idx+1:]...)
	} else {
		n.children[idx].child = newChild
	}

	return versionedCollapseAfterChildChange(n), val, true
}

func versionedCollapseAfterValueClear[V any](n *versionedNode[V]) *versionedNode[V] {
	if len(n.children) == 0 {
		return nil
	}
	return versionedCollapseIfNeeded(n)
}

func versionedCollapseAfterChildChange[V any](n *versionedNode[V]) *versionedNode[V] {
	if len(n.children) == 0 {
		if n.hasValue {
			return n
		}
		return nil
	}
	return versionedCollapseIfNeeded(n)
}

func versionedCollapseIfNeeded[V any](n *versionedNode[V]) *versionedNode[V] {
	if !n.hasValue && len(n.children) == 1 {
		survivor := n.children[0].child.cloneForWrite()
		survivor.prefix = n.prefix.ExtendWith(survivor.prefix)
		return survivor
	}
	return n
}

// Iter returns an Iterator over all (key, value) pairs in ascending key
// order, materialized the same way Tree.Iter is.
func (t *VersionedTree[V]) Iter() *Iterator[V] {
	out := make([]KV[V], 0, t.size)
	if t.root != nil {
		versionedCollectInto(t.root, nil, &out)
	}
	return newIterator(out)
}

func versionedCollectInto[V any](n *versionedNode[V], keyBuf []byte, out *[]KV[V]) {
	buf := make([]byte, 0, len(keyBuf)+n.prefix.Len())
	buf = append(buf, keyBuf...)
	buf = append(buf, n.prefix.Bytes()...)

	if n.hasValue {
		*out = append(*out, KV[V]{Key: Key(buf), Value: n.value})
	}
	for _, c := range n.children {
		versionedCollectInto(c.child, buf, out)
	}
}
