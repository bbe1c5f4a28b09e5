package nset

// Powerset returns the set of all subsets of s, each held as a nested set.
//
// Subsets are built by doubling: starting from {{}}, every element of s in
// turn is added to a clone of each subset built so far. The result therefore
// lists subsets in binary counting order. Its size is 2^n for n elements, so
// callers working with untrusted input should bound n first, see PowersetSize.
//
// The elements of s are unique, so every subset built this way is distinct
// and e is never already in the subset it extends. Both are appended without
// the uniqueness check, which keeps the cost linear in the output size.
func (s *Set) Powerset() *Set {
	subsets := make([]*Set, 1, powersetCap(s.size))
	subsets[0] = &Set{}
	for _, e := range s.elements {
		n := len(subsets)
		for i := 0; i < n; i++ {
			subset := subsets[i].Clone()
			subset.push(e)
			subsets = append(subsets, subset)
		}
	}

	result := &Set{elements: make([]Element, 0, len(subsets))}
	for _, subset := range subsets {
		result.push(Nested(subset))
	}
	return result
}

// PowersetSize returns 2^n, the cardinality of the powerset of an n-element
// set. ok is false when the value does not fit in a uint64.
func PowersetSize(n int) (size uint64, ok bool) {
	if n < 0 || n >= 64 {
		return 0, false
	}
	return uint64(1) << n, true
}

func powersetCap(n int) int {
	const maxPrealloc = 1 << 16
	size, ok := PowersetSize(n)
	if !ok || size > maxPrealloc {
		return maxPrealloc
	}
	return int(size)
}
