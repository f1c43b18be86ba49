// Package multimap provides a simple, thread-safe multi-map keyed by
// art.Key objects. The default implementation stores its keys in an
// art.Tree rather than a linear-scanned slice, so ContainsKey and RemoveKey
// walk the tree along the key's bytes instead of scanning every entry.
// Range/bound queries still visit every entry: art.Tree.Range collects the
// whole tree into a sorted slice before applying the bounds.
//
// Concurrency: all exported methods are safe for concurrent use by
// multiple goroutines.
package multimap

import (
	set3 "github.com/TomTonic/Set3"
	"github.com/TomTonic/art"
)

// Key re-exports art.Key so callers of this package need not import art
// directly for the common case of building and comparing keys.
type Key = art.Key

// MultiMap defines the behavior of a multi-map from Keys to a set of
// values. Implementations must clone Keys on insertion and return cloned
// value sets so callers cannot mutate internal state.
type MultiMap[T comparable] interface {
	PutValue(key Key, v T)
	RemoveValue(key Key, v T)
	ContainsKey(key Key) bool
	RemoveKey(key Key)
	GetValuesFor(key Key) *set3.Set3[T]
	GetAllValues() *set3.Set3[T]
	GetValuesBetweenInclusive(from, to Key) *set3.Set3[T]
	GetValuesBetweenExclusive(from, to Key) *set3.Set3[T]
	GetValuesFromInclusive(from Key) *set3.Set3[T]
	GetValuesToInclusive(to Key) *set3.Set3[T]
	GetValuesFromExclusive(from Key) *set3.Set3[T]
	GetValuesToExclusive(to Key) *set3.Set3[T]
	Size() uint64
	Keys() []Key
	Clear()
}

// New returns a new MultiMap using the default art.Tree-backed implementation.
func New[T comparable]() MultiMap[T] { return newARTBased[T]() }

// NewARTBased explicitly constructs a MultiMap backed by an art.Tree.
func NewARTBased[T comparable]() MultiMap[T] { return newARTBased[T]() }
