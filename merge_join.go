package art

// JoinResult is one row of a merge-join-with-values result: a key common
// to every input tree, paired with that key's value from each tree in
// input order.
type JoinResult[V any] struct {
	Key    Key
	Values []V
}

// MergeJoinKeys streams the ascending, duplicate-free intersection of the
// key sets of trees. If any input is empty the result is empty.
// Materialized here over collected item slices rather than true streaming
// tree iterators -- see DESIGN.md for that simplification's rationale; the
// intersection, ordering, and empty-propagation properties hold regardless
// of whether the fronts being advanced are backed by a live tree walk or a
// sorted slice.
func MergeJoinKeys[V any](trees []*Tree[V]) []Key {
	joined := mergeJoinFronts(trees)
	out := make([]Key, len(joined))
	for i, row := range joined {
		out[i] = row.Key
	}
	return out
}

// MergeJoinWithValues is MergeJoinKeys plus, for every common key, the
// value from each tree in input order.
func MergeJoinWithValues[V any](trees []*Tree[V]) []JoinResult[V] {
	return mergeJoinFronts(trees)
}

func mergeJoinFronts[V any](trees []*Tree[V]) []JoinResult[V] {
	if len(trees) == 0 {
		return nil
	}
	fronts := make([][]KV[V], len(trees))
	idx := make([]int, len(trees))
	for i, t := range trees {
		if t.IsEmpty() {
			return nil
		}
		fronts[i] = t.collect()
	}

	var out []JoinResult[V]
	for {
		var maxKey Key
		exhausted := false
		for i := range fronts {
			if idx[i] >= len(fronts[i]) {
				exhausted = true
				break
			}
			k := fronts[i][idx[i]].Key
			if maxKey == nil || maxKey.LessThan(k) {
				maxKey = k
			}
		}
		if exhausted {
			break
		}

		allEqual := true
		for i := range fronts {
			for idx[i] < len(fronts[i]) && fronts[i][idx[i]].Key.LessThan(maxKey) {
				idx[i]++
			}
			if idx[i] >= len(fronts[i]) {
				exhausted = true
				break
			}
			if !fronts[i][idx[i]].Key.Equal(maxKey) {
				allEqual = false
			}
		}
		if exhausted {
			break
		}

		if allEqual {
			values := make([]V, len(fronts))
			for i := range fronts {
				values[i] = fronts[i][idx[i]].Value
				idx[i]++
			}
			out = append(out, JoinResult[V]{Key: maxKey, Values: values})
		}
	}
	return out
}

// MergeJoin2 is the fixed-arity 2-way join, letting call sites avoid
// building a []*Tree[V] for the common pairwise-intersection case; it
// delegates to the same core loop as MergeJoinKeys (see DESIGN.md for why
// a distinct hand-unrolled loop isn't worth the duplication in Go).
func MergeJoin2[V any](a, b *Tree[V]) []JoinResult[V] { return mergeJoinFronts([]*Tree[V]{a, b}) }

// MergeJoin3 is the fixed-arity 3-way join.
func MergeJoin3[V any](a, b, c *Tree[V]) []JoinResult[V] {
	return mergeJoinFronts([]*Tree[V]{a, b, c})
}

// MergeJoin4 is the fixed-arity 4-way join.
func MergeJoin4[V any](a, b, c, d *Tree[V]) []JoinResult[V] {
	return mergeJoinFronts([]*Tree[V]{a, b, c, d})
}

// IntersectWith calls fn once for every key common to t and other, in
// ascending order, passing the colliding values from both sides.
func (t *Tree[V]) IntersectWith(other *Tree[V], fn func(k Key, lv, rv V)) {
	for _, row := range MergeJoin2(t, other) {
		fn(row.Key, row.Values[0], row.Values[1])
	}
}

// IntersectCount returns the number of keys common to t and other.
func (t *Tree[V]) IntersectCount(other *Tree[V]) int {
	return len(mergeJoinFronts([]*Tree[V]{t, other}))
}
