package art

import "testing"

func TestFromBytesCopiesAndHandlesNil(t *testing.T) {
	src := []byte{1, 2, 3}
	k := FromBytes(src)
	src[0] = 0xFF
	if k[0] != 1 {
		t.Fatalf("FromBytes did not copy: got %v", k)
	}

	nilKey := FromBytes(nil)
	if nilKey == nil || len(nilKey) != 0 {
		t.Fatalf("FromBytes(nil) = %v, want non-nil empty key", nilKey)
	}
}

func TestFromStringSentinelOrdering(t *testing.T) {
	ab := FromString("ab")
	abc := FromString("abc")
	if !ab.LessThan(abc) {
		t.Fatalf("expected %v < %v", ab, abc)
	}
	if ab.Equal(abc) {
		t.Fatalf("sentineled strings must not collide: %v vs %v", ab, abc)
	}
	if len(ab) != 3 || ab[2] != stringSentinel {
		t.Fatalf("expected trailing sentinel byte, got %v", ab)
	}
}

func TestFromStringNormalizesToNFC(t *testing.T) {
	// "e" + combining acute accent (NFD) should normalize the same as the
	// precomposed "é" (NFC), so both encode to the same Key.
	nfd := "é"
	nfc := "é"
	if !FromString(nfd).Equal(FromString(nfc)) {
		t.Fatalf("expected NFD and NFC forms to normalize to the same key")
	}
}

func TestIntegerKeysPreserveNumericOrder(t *testing.T) {
	values := []int64{-1000, -1, 0, 1, 1000, 1 << 40}
	for i := 0; i < len(values)-1; i++ {
		lo := FromInt64(values[i])
		hi := FromInt64(values[i+1])
		if !lo.LessThan(hi) {
			t.Fatalf("FromInt64(%d) should sort before FromInt64(%d)", values[i], values[i+1])
		}
	}
}

func TestIntegerWidthsAgree(t *testing.T) {
	if !FromInt32(42).Equal(FromInt64(42)) {
		t.Fatalf("FromInt32 and FromInt64 should agree for the same value")
	}
	if !FromUint8(7).Equal(FromUint64(7)) {
		t.Fatalf("FromUint8 and FromUint64 should agree for the same value")
	}
	if !FromInt64(0).Equal(FromUint64(0)) {
		t.Fatalf("FromInt64(0) should equal FromUint64(0) under the shared offset")
	}
}

func TestKeyLenAndByteAt(t *testing.T) {
	k := FromBytes([]byte{10, 20, 30})
	if k.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", k.Len())
	}
	if k.ByteAt(1) != 20 {
		t.Fatalf("ByteAt(1) = %d, want 20", k.ByteAt(1))
	}
	if got := k.LengthFromDepth(2); got != 1 {
		t.Fatalf("LengthFromDepth(2) = %d, want 1", got)
	}
	if got := k.LengthFromDepth(10); got != 0 {
		t.Fatalf("LengthFromDepth(10) = %d, want 0", got)
	}
}

func TestKeyCloneIndependence(t *testing.T) {
	k := FromBytes([]byte{1, 2, 3})
	c := k.Clone()
	c[0] = 99
	if k[0] == 99 {
		t.Fatalf("Clone() shares storage with the original")
	}
}
