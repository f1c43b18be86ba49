package art

import "sort"

// Range returns an Iterator over all (key, value) pairs k such that k is
// within [lo, hi] according to loInclusive/hiInclusive. A nil lo means
// unbounded below; a nil hi means unbounded above. The item slice is
// lexicographically sorted, so both bounds reduce to one sort.Search each:
// seek to the least key satisfying the lower bound, then to the first key
// past the upper bound.
func (t *Tree[V]) Range(lo, hi Key, loInclusive, hiInclusive bool) *Iterator[V] {
	items := t.collect()

	start := 0
	if lo != nil {
		start = sort.Search(len(items), func(i int) bool {
			if loInclusive {
				return !items[i].Key.LessThan(lo)
			}
			return lo.LessThan(items[i].Key)
		})
	}

	end := len(items)
	if hi != nil {
		end = sort.Search(len(items), func(i int) bool {
			if hiInclusive {
				return hi.LessThan(items[i].Key)
			}
			return !items[i].Key.LessThan(hi)
		})
	}

	if start > end {
		start = end
	}
	return newIterator(items[start:end])
}
