package art

// maxInlinePrefix is the capacity of the fixed-size inline Partial: large
// enough for the overwhelming majority of real-world edge labels while
// keeping the surrounding inlinePartial struct (data + length) compact.
const maxInlinePrefix = 16

// Partial is an owning, sliceable edge label carried by every tree node.
// Two concrete shapes satisfy this contract: inlinePartial (fixed-capacity,
// array-backed, no allocation) and slicePartial (heap-backed, unbounded).
// Insert always produces a slicePartial; inlinePartial exists for callers
// who construct trees directly over known-short edge labels and want to
// avoid the allocation (see newInlinePartial).
type Partial interface {
	// Len returns the number of bytes in the partial.
	Len() int
	// ByteAt returns the byte at position i.
	ByteAt(i int) byte
	// Before returns the first n bytes.
	Before(n int) Partial
	// From returns n bytes starting at offset o.
	From(o, n int) Partial
	// After returns the bytes from offset s to the end.
	After(s int) Partial
	// ExtendWith returns a new Partial equal to this partial's bytes
	// followed by other's bytes.
	ExtendWith(other Partial) Partial
	// PrefixLenAgainstKeyFromDepth returns the length of the common prefix
	// between this partial and k's bytes starting at depth d.
	PrefixLenAgainstKeyFromDepth(k Key, d int) int
	// PrefixLenAgainstSlice returns the length of the common prefix between
	// this partial and s.
	PrefixLenAgainstSlice(s []byte) int
	// Bytes returns the partial's contents as a plain byte slice (for
	// key-buffer concatenation during iteration).
	Bytes() []byte
}

// slicePartial is the heap-backed, unbounded Partial implementation.
type slicePartial struct {
	data []byte
}

func newSlicePartial(b []byte) slicePartial {
	cp := make([]byte, len(b))
	copy(cp, b)
	return slicePartial{data: cp}
}

func (p slicePartial) Len() int         { return len(p.data) }
func (p slicePartial) ByteAt(i int) byte { return p.data[i] }
func (p slicePartial) Bytes() []byte    { return p.data }

func (p slicePartial) Before(n int) Partial {
	return newSlicePartial(p.data[:n])
}

func (p slicePartial) From(o, n int) Partial {
	return newSlicePartial(p.data[o : o+n])
}

func (p slicePartial) After(s int) Partial {
	return newSlicePartial(p.data[s:])
}

func (p slicePartial) ExtendWith(other Partial) Partial {
	out := make([]byte, 0, p.Len()+other.Len())
	out = append(out, p.data...)
	out = append(out, other.Bytes()...)
	return slicePartial{data: out}
}

func (p slicePartial) PrefixLenAgainstKeyFromDepth(k Key, d int) int {
	n := 0
	max := p.Len()
	for n < max && d+n < k.Len() && p.data[n] == k.ByteAt(d+n) {
		n++
	}
	return n
}

func (p slicePartial) PrefixLenAgainstSlice(s []byte) int {
	n := 0
	max := p.Len()
	for n < max && n < len(s) && p.data[n] == s[n] {
		n++
	}
	return n
}

// inlinePartial is the fixed-capacity, array-backed Partial implementation.
// Constructing one from bytes longer than maxInlinePrefix is a precondition
// violation (the implementer's discretion per the error-handling design);
// this package panics.
type inlinePartial struct {
	data   [maxInlinePrefix]byte
	length uint8
}

func newInlinePartial(b []byte) inlinePartial {
	if len(b) > maxInlinePrefix {
		panic("art: inline partial capacity exceeded")
	}
	var ip inlinePartial
	copy(ip.data[:], b)
	ip.length = uint8(len(b))
	return ip
}

// NewInlinePartial constructs an allocation-free Partial from b. Panics if
// len(b) exceeds the inline capacity; callers with unbounded edge labels
// should rely on the tree's own default (slice-backed) Partial instead.
func NewInlinePartial(b []byte) Partial { return newInlinePartial(b) }

func (p inlinePartial) Len() int          { return int(p.length) }
func (p inlinePartial) ByteAt(i int) byte { return p.data[i] }
func (p inlinePartial) Bytes() []byte     { return append([]byte(nil), p.data[:p.length]...) }

func (p inlinePartial) Before(n int) Partial {
	return newInlinePartialOrSlice(p.data[:n])
}

func (p inlinePartial) From(o, n int) Partial {
	return newInlinePartialOrSlice(p.data[o : o+n])
}

func (p inlinePartial) After(s int) Partial {
	return newInlinePartialOrSlice(p.data[s:p.length])
}

func (p inlinePartial) ExtendWith(other Partial) Partial {
	total := p.Len() + other.Len()
	if total <= maxInlinePrefix {
		out := make([]byte, 0, total)
		out = append(out, p.data[:p.length]...)
		out = append(out, other.Bytes()...)
		return newInlinePartial(out)
	}
	out := make([]byte, 0, total)
	out = append(out, p.data[:p.length]...)
	out = append(out, other.Bytes()...)
	return slicePartial{data: out}
}

func (p inlinePartial) PrefixLenAgainstKeyFromDepth(k Key, d int) int {
	n := 0
	max := p.Len()
	for n < max && d+n < k.Len() && p.data[n] == k.ByteAt(d+n) {
		n++
	}
	return n
}

func (p inlinePartial) PrefixLenAgainstSlice(s []byte) int {
	n := 0
	max := p.Len()
	for n < max && n < len(s) && p.data[n] == s[n] {
		n++
	}
	return n
}

// newInlinePartialOrSlice picks the inline representation when it fits,
// falling back to a slice partial otherwise. Used by slicing operations
// that must not panic on an oversized result (After/Before/From never grow
// past the source's own length, so this only matters for symmetry and is
// always the inline path in practice).
func newInlinePartialOrSlice(b []byte) Partial {
	if len(b) <= maxInlinePrefix {
		return newInlinePartial(b)
	}
	return newSlicePartial(b)
}

// newPartial is the default Partial constructor used by the tree itself:
// slice-backed, unbounded. The inline variant is available to callers via
// NewInlinePartial for latency-sensitive, known-short-prefix use.
func newPartial(b []byte) Partial {
	return newSlicePartial(b)
}

// commonPrefixLen returns the length of the common prefix between node
// prefix p and key k, starting at depth d.
func commonPrefixLen(p Partial, k Key, d int) int {
	return p.PrefixLenAgainstKeyFromDepth(k, d)
}
