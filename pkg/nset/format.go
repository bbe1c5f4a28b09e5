package nset

import "strconv"

// String renders s in the brace grammar, elements in insertion order
// separated by ", ". Parsing the result yields a set equal to s.
func (s *Set) String() string {
	return string(s.appendTo(nil))
}

// AppendText appends the brace-grammar form of s to b.
func (s *Set) AppendText(b []byte) ([]byte, error) {
	return s.appendTo(b), nil
}

func (s *Set) MarshalText() ([]byte, error) {
	return s.appendTo(nil), nil
}

// UnmarshalText replaces the contents of s with the set parsed from text.
// On error s is left unchanged.
func (s *Set) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	s.assign(parsed)
	return nil
}

func (s *Set) appendTo(b []byte) []byte {
	b = append(b, '{')
	for i, e := range s.elements {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = e.appendTo(b)
	}
	return append(b, '}')
}

func (e Element) appendTo(b []byte) []byte {
	if e.kind == KindInteger {
		return strconv.AppendInt(b, e.value, 10)
	}
	return e.set.appendTo(b)
}
