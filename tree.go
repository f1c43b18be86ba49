package art

// Tree is the mutable, single-owner Adaptive Radix Tree: an optional root
// node plus a maintained size. Zero value is an empty, ready-to-use tree.
type Tree[V any] struct {
	root *node[V]
	size int
}

// New returns an empty Tree.
func New[V any]() *Tree[V] { return &Tree[V]{} }

// IsEmpty reports whether the tree holds no keys.
func (t *Tree[V]) IsEmpty() bool { return t.root == nil }

// Len returns the number of keys currently stored.
func (t *Tree[V]) Len() int { return t.size }

func zeroOf[V any]() V {
	var z V
	return z
}

// Get walks the tree from the root, descending one discriminator byte at a
// time until the key is exhausted or a mismatch is found.
func (t *Tree[V]) Get(k Key) (V, bool) {
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
		n = n.seekChild(b)
	}
	return zeroOf[V](), false
}

// GetMut walks the tree exactly as Get does, but returns a pointer into the
// stored value so callers can mutate it in place without a Remove+Insert
// round trip. Returns nil, false if k is absent. Plain Tree only: the
// versioned tree's nodes may be shared with other snapshots, so handing out
// a mutable pointer into one would break snapshot isolation -- any mutation
// there must go through Insert so cloneForWrite can run first.
func (t *Tree[V]) GetMut(k Key) (*V, bool) {
	depth := 0
	n := t.root
	for n != nil {
		m := commonPrefixLen(n.prefix, k, depth)
		if m != n.prefix.Len() {
			return nil, false
		}
		if n.prefix.Len() == k.LengthFromDepth(depth) {
			if n.hasValue {
				return &n.value, true
			}
			return nil, false
		}
		if n.isLeaf() {
			return nil, false
		}
		b := k.ByteAt(depth + n.prefix.Len())
		depth += n.prefix.Len()
		n = n.seekChild(b)
	}
	return nil, false
}

// Insert stores value v under key k, returning the previous value (if any)
// and whether the key already existed. Implements the three-way
// terminates-here / diverges-partway / continues-past-prefix split
// described on insertRecurse, generalized to allow a node to hold both a
// value and children (see node.go).
func (t *Tree[V]) Insert(k Key, v V) (V, bool) {
	if t.root == nil {
		t.root = newLeaf[V](newPartial(k.Bytes()), v)
		t.size++
		return zeroOf[V](), false
	}
	newRoot, old, replaced := insertRecurse(t.root, k, v, 0)
	t.root = newRoot
	if !replaced {
		t.size++
	}
	return old, replaced
}

// insertRecurse handles three cases: (A) the key's path ends exactly at n,
// (B) n's prefix and the key diverge partway through n's prefix, and
// (C) n's prefix is fully consumed and the key continues past it. Depth
// advances by exactly node.prefix.Len() at each step (never +1): by
// construction every non-root node's prefix begins with the very
// discriminator byte its parent used to reach it, so the next
// common-prefix comparison naturally re-consumes that byte. See splitNode
// for where that invariant is established.
func insertRecurse[V any](n *node[V], key Key, value V, depth int) (*node[V], V, bool) {
	lcp := commonPrefixLen(n.prefix, key, depth)

	if lcp < n.prefix.Len() {
		return splitNode(n, key, value, depth, lcp), zeroOf[V](), false
	}

	if n.prefix.Len() == key.LengthFromDepth(depth) {
		// Case A: the key's path ends exactly at n.
		old := n.value
		existed := n.hasValue
		n.hasValue = true
		n.value = value
		return n, old, existed
	}

	// Case C: n's prefix is fully consumed and the key continues past it.
	newDepth := depth + n.prefix.Len()
	b := key.ByteAt(newDepth)
	var child *node[V]
	if n.m != nil {
		child = n.m.seekChild(b)
	}
	if child == nil {
		leaf := newLeaf[V](newPartial(key.Bytes()[newDepth:]), value)
		n.addChildGrowing(b, leaf)
		return n, zeroOf[V](), false
	}
	newChild, old, replaced := insertRecurse(child, key, value, newDepth)
	n.m.updateChild(b, newChild)
	return n, old, replaced
}

// splitNode implements Case B: node's prefix and the key diverge at lcp
// bytes in. A new inner node is created holding the shared prefix; the
// existing node is shortened and re-added alongside the new key, which
// either becomes a plain leaf child (if bytes remain) or the new node's
// own value (if the key ends exactly at the split point).
func splitNode[V any](n *node[V], key Key, value V, depth, lcp int) *node[V] {
	newInnerPrefix := n.prefix.Before(lcp)
	oldDiscriminator := n.prefix.ByteAt(lcp)
	n.prefix = n.prefix.After(lcp)

	mid := newInner[V](newInnerPrefix, newNode4[V]())
	mid.m.addChild(oldDiscriminator, n)

	if depth+lcp == key.Len() {
		mid.hasValue = true
		mid.value = value
		return mid
	}

	newLeafBytes := key.Bytes()[depth+lcp:]
	newLeafDiscriminator := newLeafBytes[0]
	leaf := newLeaf[V](newPartial(newLeafBytes), value)
	mid.m.addChild(newLeafDiscriminator, leaf)
	return mid
}

// Remove deletes key k, returning the removed value (if any) and whether
// it was present. Clears the terminal node's value and then collapses any
// resulting empty or single-child inner nodes back up the path.
func (t *Tree[V]) Remove(k Key) (V, bool) {
	if t.root == nil {
		return zeroOf[V](), false
	}
	newRoot, val, removed := removeRecurse(t.root, k, 0)
	if removed {
		t.root = newRoot
		t.size--
	}
	return val, removed
}

// removeRecurse returns the replacement for n (nil if n itself was
// detached), the removed value, and whether removal occurred.
func removeRecurse[V any](n *node[V], key Key, depth int) (*node[V], V, bool) {
	lcp := commonPrefixLen(n.prefix, key, depth)
	if lcp != n.prefix.Len() {
		return n, zeroOf[V](), false
	}

	if n.prefix.Len() == key.LengthFromDepth(depth) {
		if !n.hasValue {
			return n, zeroOf[V](), false
		}
		val := n.value
		n.hasValue = false
		n.value = zeroOf[V]()
		return collapseAfterValueClear(n), val, true
	}

	if n.isLeaf() {
		return n, zeroOf[V](), false
	}

	newDepth := depth + n.prefix.Len()
	b := key.ByteAt(newDepth)
	child := n.m.seekChild(b)
	if child == nil {
		return n, zeroOf[V](), false
	}

	newChild, val, removed := removeRecurse(child, key, newDepth)
	if !removed {
		return n, val, false
	}

	if newChild == nil {
		n.m.deleteChild(b)
	} else {
		n.m.updateChild(b, newChild)
	}

	return collapseAfterChildChange(n), val, true
}

// collapseAfterValueClear handles a node that just lost its own value:
// if it has no children either, it must be fully detached; if it has
// exactly one child, that child absorbs it (invariant 2 is scoped to
// value-less nodes); otherwise it survives as a pure inner node.
func collapseAfterValueClear[V any](n *node[V]) *node[V] {
	if n.m == nil {
		return nil
	}
	return collapseIfNeeded(n)
}

// collapseAfterChildChange re-checks n's shape after one of its children
// was deleted or replaced.
func collapseAfterChildChange[V any](n *node[V]) *node[V] {
	if n.m.numChildren() == 0 {
		if n.hasValue {
			n.m = nil
			return n
		}
		return nil
	}
	return collapseIfNeeded(n)
}

// collapseIfNeeded applies the invariant that an inner node with no value
// of its own always has >=2 children, and otherwise re-checks the
// N16/N48/N256 shrink thresholds.
func collapseIfNeeded[V any](n *node[V]) *node[V] {
	if !n.hasValue && n.m.numChildren() == 1 {
		var survivor *node[V]
		n.m.iterate(func(_ byte, c *node[V]) { survivor = c })
		survivor.prefix = n.prefix.ExtendWith(survivor.prefix)
		return survivor
	}
	if newM, shrunk := shrinkIfBelowThreshold(n.m); shrunk {
		n.m = newM
	}
	return n
}
