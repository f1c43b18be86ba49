package art

import "sort"

// PrefixIter returns an Iterator over every (key, value) pair whose key's
// byte serialization starts with p, in ascending order. Because the
// materialized item slice is lexicographically sorted, all
// keys sharing prefix p form one contiguous run; its start is located with
// a binary search and its end by scanning while the prefix still matches.
func (t *Tree[V]) PrefixIter(p []byte) *Iterator[V] {
	items := t.collect()
	start := sort.Search(len(items), func(i int) bool {
		return !hasByteSlicePrefixLess(items[i].Key, p)
	})
	end := start
	for end < len(items) && bytesHasPrefix(items[end].Key, p) {
		end++
	}
	return newIterator(items[start:end])
}

// hasByteSlicePrefixLess reports whether k sorts strictly before every key
// with prefix p, i.e. whether k < p when compared over min(len(k), len(p))
// bytes, or k is a strict prefix of p itself.
func hasByteSlicePrefixLess(k Key, p []byte) bool {
	n := len(k)
	if len(p) < n {
		n = len(p)
	}
	for i := 0; i < n; i++ {
		if k[i] < p[i] {
			return true
		}
		if k[i] > p[i] {
			return false
		}
	}
	return len(k) < len(p)
}

func bytesHasPrefix(k Key, p []byte) bool {
	if len(k) < len(p) {
		return false
	}
	for i := range p {
		if k[i] != p[i] {
			return false
		}
	}
	return true
}

// LongestPrefixMatch walks the tree as Get does, remembering the deepest
// node with a value whose key is a byte-prefix of q. Returns the matching
// key, its value, and true if any prefix matched.
func (t *Tree[V]) LongestPrefixMatch(q []byte) (Key, V, bool) {
	qk := Key(q)
	depth := 0
	n := t.root

	var bestKey []byte
	var bestVal V
	found := false
	keyBuf := make([]byte, 0, len(q))

	for n != nil {
		m := commonPrefixLen(n.prefix, qk, depth)
		if m != n.prefix.Len() {
			break
		}
		keyBuf = append(keyBuf, n.prefix.Bytes()...)

		if n.hasValue {
			bestKey = append([]byte(nil), keyBuf...)
			bestVal = n.value
			found = true
		}

		if n.prefix.Len() == qk.LengthFromDepth(depth) {
			break
		}
		if n.isLeaf() {
			break
		}
		b := qk.ByteAt(depth + n.prefix.Len())
		depth += n.prefix.Len()
		n = n.seekChild(b)
	}

	if !found {
		return nil, zeroOf[V](), false
	}
	return Key(bestKey), bestVal, true
}
