package art

import "testing"

func buildIntTree(values ...int) *Tree[int] {
	tr := New[int]()
	for _, v := range values {
		tr.Insert(FromInt(v), v)
	}
	return tr
}

func TestMergeJoin2Intersection(t *testing.T) {
	a := buildIntTree(1, 2, 3, 4, 5)
	b := buildIntTree(3, 4, 5, 6, 7)

	rows := MergeJoin2(a, b)
	var got []int
	for _, r := range rows {
		got = append(got, r.Values[0])
		if r.Values[0] != r.Values[1] {
			t.Fatalf("expected both sides to carry the same underlying int value")
		}
	}
	want := []int{3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestMergeJoinEmptyInputPropagates(t *testing.T) {
	a := buildIntTree(1, 2, 3)
	b := New[int]()
	if rows := MergeJoin2(a, b); rows != nil {
		t.Fatalf("expected nil result when one side is empty, got %v", rows)
	}
}

func TestMergeJoin3And4Way(t *testing.T) {
	a := buildIntTree(1, 2, 3, 4)
	b := buildIntTree(2, 3, 4, 5)
	c := buildIntTree(3, 4, 5, 6)
	d := buildIntTree(3, 4, 7, 8)

	rows3 := MergeJoin3(a, b, c)
	if len(rows3) != 2 || rows3[0].Values[0] != 3 || rows3[1].Values[0] != 4 {
		t.Fatalf("MergeJoin3 = %v, want keys {3,4}", rows3)
	}

	rows4 := MergeJoin4(a, b, c, d)
	if len(rows4) != 2 || rows4[0].Values[0] != 3 || rows4[1].Values[0] != 4 {
		t.Fatalf("MergeJoin4 = %v, want keys {3,4}", rows4)
	}
}

func TestIntersectWithAndCount(t *testing.T) {
	a := buildIntTree(1, 2, 3)
	b := buildIntTree(2, 3, 4)

	if got := a.IntersectCount(b); got != 2 {
		t.Fatalf("IntersectCount() = %d, want 2", got)
	}

	var seen []int
	a.IntersectWith(b, func(k Key, lv, rv int) {
		seen = append(seen, lv)
		if lv != rv {
			t.Fatalf("mismatched values for shared key: %d vs %d", lv, rv)
		}
	})
	if len(seen) != 2 {
		t.Fatalf("IntersectWith invoked %d times, want 2", len(seen))
	}
}

func TestMergeJoinKeysSingleTreeIsIdentity(t *testing.T) {
	a := buildIntTree(5, 1, 3)
	keys := MergeJoinKeys([]*Tree[int]{a})
	if len(keys) != 3 {
		t.Fatalf("MergeJoinKeys with one tree should return all its keys, got %v", keys)
	}
	for i := 0; i+1 < len(keys); i++ {
		if !keys[i].LessThan(keys[i+1]) {
			t.Fatalf("MergeJoinKeys result not sorted: %v", keys)
		}
	}
}
