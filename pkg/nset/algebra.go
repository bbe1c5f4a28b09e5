package nset

// Union returns a new set with the elements of s followed by those elements
// of other that s lacks, in other's order.
func (s *Set) Union(other *Set) *Set {
	result := s.Clone()
	for _, e := range other.elements {
		result.Add(e)
	}
	return result
}

// UnionWith adds every element of other to s (s += other).
func (s *Set) UnionWith(other *Set) *Set {
	for _, e := range other.elements {
		s.Add(e)
	}
	return s
}

// Intersection returns the elements of other that s contains, in other's order.
func (s *Set) Intersection(other *Set) *Set {
	result := &Set{}
	for _, e := range other.elements {
		if s.Contains(e) {
			result.push(e)
		}
	}
	return result
}

// IntersectWith keeps in s only the elements other contains (s *= other).
func (s *Set) IntersectWith(other *Set) *Set {
	s.assign(s.Intersection(other))
	return s
}

// Difference returns a new set with the elements of s that other does not
// contain, in s's order.
func (s *Set) Difference(other *Set) *Set {
	result := &Set{}
	for _, e := range s.elements {
		if !other.Contains(e) {
			result.push(e)
		}
	}
	return result
}

// DifferenceWith removes from s every element other contains (s -= other).
func (s *Set) DifferenceWith(other *Set) *Set {
	s.assign(s.Difference(other))
	return s
}

// SymmetricDifference returns the elements found in exactly one of s and other.
func (s *Set) SymmetricDifference(other *Set) *Set {
	result := s.Difference(other)
	for _, e := range other.elements {
		if !s.Contains(e) {
			result.push(e)
		}
	}
	return result
}
