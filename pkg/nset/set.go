// Package nset implements finite sets whose elements are integers or further
// sets, nested to any depth.
//
// A Set keeps its elements in insertion order for display, but equality,
// membership and the algebra operations treat it as an unordered collection
// of structurally unique elements. Sets are parsed from and formatted to the
// brace grammar:
//
//	{1, 2, {1, 2}, {}}
//
// A Set is not safe for concurrent mutation. Callers sharing a set between
// goroutines must serialise access themselves.
package nset

import (
	"iter"
	"slices"

	"nestedset/pkg/structs"
)

// Set is an insertion-ordered collection of structurally unique elements.
// The zero value is an empty set ready to use.
type Set struct {
	elements []Element
	size     int
	// ints indexes integer members so they are looked up without a scan.
	ints structs.Set[int64]
}

// New returns a set holding the given integers, duplicates collapsed.
func New(values ...int64) *Set {
	s := &Set{}
	for _, v := range values {
		s.Add(Int(v))
	}
	return s
}

// Of returns a set holding the given elements, duplicates collapsed.
func Of(elements ...Element) *Set {
	s := &Set{}
	for _, e := range elements {
		s.Add(e)
	}
	return s
}

// Add inserts e unless a structurally equal element is already present.
// It reports whether the set changed.
func (s *Set) Add(e Element) bool {
	if s.Contains(e) {
		return false
	}
	s.push(e)
	return true
}

func (s *Set) AddInt(v int64) bool { return s.Add(Int(v)) }

func (s *Set) AddSet(nested *Set) bool { return s.Add(Nested(nested)) }

// push appends e without the uniqueness check. Callers guarantee e is new.
func (s *Set) push(e Element) {
	if e.kind == KindInteger {
		if s.ints == nil {
			s.ints = structs.NewSet[int64]()
		}
		s.ints.Add(e.value)
	}
	s.elements = append(s.elements, e)
	s.size++
}

// Remove deletes the first element structurally equal to e and reports
// whether anything was removed.
func (s *Set) Remove(e Element) bool {
	if e.kind == KindInteger && !s.ints.Contains(e.value) {
		return false
	}
	idx := slices.IndexFunc(s.elements, e.Equal)
	if idx < 0 {
		return false
	}
	s.elements = slices.Delete(s.elements, idx, idx+1)
	s.size--
	if e.kind == KindInteger {
		s.ints.Remove(e.value)
	}
	return true
}

// Contains reports whether an element structurally equal to e is present.
func (s *Set) Contains(e Element) bool {
	if e.kind == KindInteger {
		return s.ints.Contains(e.value)
	}
	for _, el := range s.elements {
		if el.kind == KindSet && el.set.Equal(e.set) {
			return true
		}
	}
	return false
}

func (s *Set) ContainsInt(v int64) bool { return s.Contains(Int(v)) }

func (s *Set) ContainsSet(nested *Set) bool { return s.Contains(Nested(nested)) }

func (s *Set) IsEmpty() bool { return s.size == 0 }

func (s *Set) Size() int {
	if s == nil {
		return 0
	}
	return s.size
}

// Elements returns a copy of the elements in insertion order. Nested handles
// are shared with s.
func (s *Set) Elements() []Element {
	return slices.Clone(s.elements)
}

// All iterates over the elements in insertion order.
func (s *Set) All() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for _, e := range s.elements {
			if !yield(e) {
				return
			}
		}
	}
}

// Clone returns a new set with the same elements. Nested sets are shared,
// only the top level is copied.
func (s *Set) Clone() *Set {
	clone := &Set{
		elements: slices.Clone(s.elements),
		size:     s.size,
	}
	if s.ints != nil {
		clone.ints = s.ints.Clone()
	}
	return clone
}

// Equal reports structural equality. Sizes must match and every element of s
// must have an equal counterpart in other; since elements are unique this is
// enough for equality in both directions.
func (s *Set) Equal(other *Set) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return s.Size() == 0 && other.Size() == 0
	}
	if s.size != other.size {
		return false
	}
	for _, e := range s.elements {
		if !other.Contains(e) {
			return false
		}
	}
	return true
}

// IsSubsetOf reports whether every element of s is in other.
func (s *Set) IsSubsetOf(other *Set) bool {
	if s.size > other.size {
		return false
	}
	for _, e := range s.elements {
		if !other.Contains(e) {
			return false
		}
	}
	return true
}

// assign replaces the contents of s with those of other.
func (s *Set) assign(other *Set) {
	s.elements = other.elements
	s.size = other.size
	s.ints = other.ints
}
