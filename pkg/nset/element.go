package nset

// Kind tells which variant an Element holds.
type Kind uint8

const (
	KindInteger Kind = iota
	KindSet
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindSet:
		return "set"
	default:
		return "unknown"
	}
}

// Element is a value stored in a Set: either a signed integer or a handle to
// a nested Set. The zero Element is the integer 0.
//
// Nested handles are shared, not copied. Two elements compare equal by
// content, never by handle identity.
type Element struct {
	kind  Kind
	value int64
	set   *Set
}

// Int wraps an integer.
func Int(v int64) Element {
	return Element{kind: KindInteger, value: v}
}

// Nested wraps a set handle. A nil handle stands for the empty set.
func Nested(s *Set) Element {
	if s == nil {
		s = New()
	}
	return Element{kind: KindSet, set: s}
}

func (e Element) Kind() Kind { return e.kind }

func (e Element) IsInteger() bool { return e.kind == KindInteger }

func (e Element) IsSet() bool { return e.kind == KindSet }

// Integer returns the integer value and true, or 0 and false for a nested set.
func (e Element) Integer() (int64, bool) {
	if e.kind != KindInteger {
		return 0, false
	}
	return e.value, true
}

// Set returns the nested set handle and true, or nil and false for an integer.
func (e Element) Set() (*Set, bool) {
	if e.kind != KindSet {
		return nil, false
	}
	return e.set, true
}

// Equal reports structural equality: two integers with the same value, or two
// nested sets with equal contents.
func (e Element) Equal(other Element) bool {
	if e.kind != other.kind {
		return false
	}
	if e.kind == KindInteger {
		return e.value == other.value
	}
	return e.set.Equal(other.set)
}

func (e Element) String() string {
	return string(e.appendTo(nil))
}
