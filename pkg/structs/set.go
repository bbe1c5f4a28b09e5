package structs

import (
	"iter"
	"slices"

	"golang.org/x/exp/constraints"
)

type empty = struct{}

// Set — хешируемое множество значений типа T.
// Используется как индекс для быстрых проверок принадлежности.
type Set[T comparable] map[T]empty

// NewSet создаёт множество из переданных значений
func NewSet[T comparable](values ...T) Set[T] {
	res := make(Set[T], len(values))
	for _, v := range values {
		res[v] = empty{}
	}
	return res
}

// Add добавляет элемент и сообщает, был ли он новым
func (s Set[T]) Add(value T) bool {
	if _, exists := s[value]; exists {
		return false
	}
	s[value] = empty{}
	return true
}

// Remove удаляет элемент и сообщает, был ли он в множестве
func (s Set[T]) Remove(value T) bool {
	if _, exists := s[value]; !exists {
		return false
	}
	delete(s, value)
	return true
}

func (s Set[T]) Contains(value T) bool {
	_, exists := s[value]
	return exists
}

func (s Set[T]) Size() int {
	return len(s)
}

func (s Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range s {
			if !yield(v) {
				return
			}
		}
	}
}

// Clone создаёт независимую копию
func (s Set[T]) Clone() Set[T] {
	clone := make(Set[T], len(s))
	for v := range s {
		clone[v] = empty{}
	}
	return clone
}

// Sorted возвращает элементы множества по возрастанию
func Sorted[T constraints.Ordered](s Set[T]) []T {
	values := make([]T, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}
