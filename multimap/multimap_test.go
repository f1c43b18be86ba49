package multimap

import (
	"testing"

	set3 "github.com/TomTonic/Set3"
	"github.com/TomTonic/art"
)

func TestPutSizeAndContains(t *testing.T) {
	mm := New[int]()
	if mm.Size() != 0 {
		t.Fatalf("new map should be empty")
	}

	mm.PutValue(art.FromString("k1"), 1)
	if mm.Size() != 1 {
		t.Fatalf("expected size 1, got %d", mm.Size())
	}
	if !mm.ContainsKey(art.FromString("k1")) {
		t.Fatalf("expected ContainsKey(k1) true")
	}

	mm.PutValue(art.FromString("k1"), 2)
	if mm.Size() != 1 {
		t.Fatalf("expected size still 1 after adding second value to same key, got %d", mm.Size())
	}

	mm.PutValue(art.FromString("k2"), 3)
	if mm.Size() != 2 {
		t.Fatalf("expected size 2 after adding k2, got %d", mm.Size())
	}
}

func TestKeysAndRemoveKey(t *testing.T) {
	mm := New[string]()
	mm.PutValue(art.FromString("a"), "v1")
	mm.PutValue(art.FromString("b"), "v2")

	keys := mm.Keys()
	if uint64(len(keys)) != mm.Size() {
		t.Fatalf("Keys length %d does not match Size %d", len(keys), mm.Size())
	}

	mm.RemoveKey(art.FromString("a"))
	if mm.ContainsKey(art.FromString("a")) {
		t.Fatalf("expected a to be removed")
	}
	if mm.Size() != 1 {
		t.Fatalf("expected size 1 after removing a, got %d", mm.Size())
	}
}

func TestClear(t *testing.T) {
	mm := New[int]()
	mm.PutValue(art.FromString("x"), 1)
	mm.PutValue(art.FromString("y"), 2)
	if mm.Size() == 0 {
		t.Fatalf("expected non-empty before Clear")
	}
	mm.Clear()
	if mm.Size() != 0 {
		t.Fatalf("expected size 0 after Clear, got %d", mm.Size())
	}
	if len(mm.Keys()) != 0 {
		t.Fatalf("expected no keys after Clear")
	}
}

func TestRangeQueryDoesNotPanic(t *testing.T) {
	mm := New[int]()
	mm.PutValue(art.FromString("a"), 1)
	mm.PutValue(art.FromString("b"), 2)
	mm.PutValue(art.FromString("c"), 3)

	if mm.GetValuesBetweenInclusive(art.FromString("a"), art.FromString("b")) == nil {
		t.Fatalf("GetValuesBetweenInclusive returned nil")
	}
	if mm.GetValuesBetweenExclusive(art.FromString("a"), art.FromString("c")) == nil {
		t.Fatalf("GetValuesBetweenExclusive returned nil")
	}
	if mm.GetValuesFromInclusive(art.FromString("b")) == nil {
		t.Fatalf("GetValuesFromInclusive returned nil")
	}
	if mm.GetValuesToExclusive(art.FromString("b")) == nil {
		t.Fatalf("GetValuesToExclusive returned nil")
	}
}

func TestRangeQueriesReturnExpectedSets(t *testing.T) {
	mm := New[int]()
	mm.PutValue(art.FromString("a"), 1)
	mm.PutValue(art.FromString("b"), 2)
	mm.PutValue(art.FromString("c"), 3)
	mm.PutValue(art.FromString("d"), 4)

	res := mm.GetValuesBetweenInclusive(art.FromString("a"), art.FromString("c"))
	want := set3.From(1, 2, 3)
	if !res.Equals(want) {
		t.Fatalf("BetweenInclusive(a,c) returned unexpected set")
	}

	res = mm.GetValuesBetweenExclusive(art.FromString("a"), art.FromString("c"))
	want = set3.From(2)
	if !res.Equals(want) {
		t.Fatalf("BetweenExclusive(a,c) returned unexpected set")
	}

	res = mm.GetValuesFromInclusive(art.FromString("b"))
	want = set3.From(2, 3, 4)
	if !res.Equals(want) {
		t.Fatalf("FromInclusive(b) returned unexpected set")
	}

	res = mm.GetValuesToInclusive(art.FromString("c"))
	want = set3.From(1, 2, 3)
	if !res.Equals(want) {
		t.Fatalf("ToInclusive(c) returned unexpected set")
	}

	res = mm.GetValuesFromExclusive(art.FromString("b"))
	want = set3.From(3, 4)
	if !res.Equals(want) {
		t.Fatalf("FromExclusive(b) returned unexpected set")
	}

	res = mm.GetValuesToExclusive(art.FromString("c"))
	want = set3.From(1, 2)
	if !res.Equals(want) {
		t.Fatalf("ToExclusive(c) returned unexpected set")
	}
}

func TestRangeWithNonexistentBoundaries(t *testing.T) {
	mm := New[int]()
	mm.PutValue(art.FromString("b"), 2)
	mm.PutValue(art.FromString("d"), 4)
	mm.PutValue(art.FromString("f"), 6)

	res := mm.GetValuesBetweenInclusive(art.FromString("c"), art.FromString("e"))
	want := set3.From(4)
	if !res.Equals(want) {
		t.Fatalf("BetweenInclusive(c,e) = unexpected set")
	}

	res = mm.GetValuesBetweenExclusive(art.FromString("c"), art.FromString("f"))
	want = set3.From(4)
	if !res.Equals(want) {
		t.Fatalf("BetweenExclusive(c,f) = unexpected set")
	}

	res = mm.GetValuesFromInclusive(art.FromString("a"))
	want = set3.From(2, 4, 6)
	if !res.Equals(want) {
		t.Fatalf("FromInclusive(a) = unexpected set")
	}

	res = mm.GetValuesToInclusive(art.FromString("e"))
	want = set3.From(2, 4)
	if !res.Equals(want) {
		t.Fatalf("ToInclusive(e) = unexpected set")
	}

	res = mm.GetValuesToInclusive(art.FromString("a"))
	want = set3.Empty[int]()
	if !res.Equals(want) {
		t.Fatalf("ToInclusive(a) expected empty set")
	}

	res = mm.GetValuesFromInclusive(art.FromString("z"))
	want = set3.Empty[int]()
	if !res.Equals(want) {
		t.Fatalf("FromInclusive(z) expected empty set")
	}
}

func TestRemoveValueAndValuesForClone(t *testing.T) {
	mm := New[int]()
	k := art.FromString("key")
	mm.PutValue(k, 1)
	mm.PutValue(k, 2)

	mm.RemoveValue(k, 1)
	res := mm.GetValuesFor(k)
	want := set3.From(2)
	if !res.Equals(want) {
		t.Fatalf("after RemoveValue expected {2}, got unexpected set")
	}

	res.Add(999)
	res2 := mm.GetValuesFor(k)
	if res2.Equals(set3.From(2, 999)) {
		t.Fatalf("modifying returned set should not affect stored set")
	}

	mm.RemoveValue(k, 42)
	if !mm.GetValuesFor(k).Equals(want) {
		t.Fatalf("RemoveValue non-existent mutated set")
	}
}

func TestGetAllValuesAggregates(t *testing.T) {
	mm := New[int]()
	mm.PutValue(art.FromString("a"), 1)
	mm.PutValue(art.FromString("b"), 2)
	mm.PutValue(art.FromString("a"), 3)

	all := mm.GetAllValues()
	want := set3.From(1, 2, 3)
	if !all.Equals(want) {
		t.Fatalf("GetAllValues expected {1,2,3}, got unexpected set")
	}
}

func TestPutClonesKey(t *testing.T) {
	mm := New[int]()
	k := Key([]byte{0x61})
	mm.PutValue(k, 7)
	k[0] = 0x62
	keys := mm.Keys()
	if len(keys) != 1 {
		t.Fatalf("expected one key")
	}
	if keys[0].Bytes()[0] != 0x61 {
		t.Fatalf("stored key was mutated when original key changed")
	}
}

func TestConcurrentPuts(t *testing.T) {
	mm := New[int]()
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(i int) {
			for j := 0; j < 100; j++ {
				mm.PutValue(art.FromString("k"), i*100+j)
			}
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	if mm.Size() == 0 {
		t.Fatalf("expected non-empty after concurrent puts")
	}
}

func TestRangeQueriesWithNegativeInts(t *testing.T) {
	mm := New[int]()
	mm.PutValue(art.FromInt64(-3), -3)
	mm.PutValue(art.FromInt64(-1), -1)
	mm.PutValue(art.FromInt64(0), 0)
	mm.PutValue(art.FromInt64(2), 2)

	res := mm.GetValuesBetweenInclusive(art.FromInt64(-2), art.FromInt64(1))
	want := set3.From(-1, 0)
	if !res.Equals(want) {
		t.Fatalf("BetweenInclusive(-2,1) expected %v got %v", want, res)
	}

	res = mm.GetValuesToInclusive(art.FromInt64(0))
	want = set3.From(-3, -1, 0)
	if !res.Equals(want) {
		t.Fatalf("ToInclusive(0) expected %v got %v", want, res)
	}

	res = mm.GetValuesFromExclusive(art.FromInt64(0))
	want = set3.From(2)
	if !res.Equals(want) {
		t.Fatalf("FromExclusive(0) expected %v got %v", want, res)
	}

	res = mm.GetValuesFromInclusive(art.FromInt64(-4))
	want = set3.From(-3, -1, 0, 2)
	if !res.Equals(want) {
		t.Fatalf("FromInclusive(-4) expected %v got %v", want, res)
	}
}
