package compositor

import (
	"iter"

	"golang.org/x/exp/slices"
)

// Stack is an ordered list of items from front to back. Newly pushed
// items go to the front. The zero value is an empty, ready to use
// Stack.
type Stack[T comparable] struct {
	// Stored back to front so that pushing is an append.
	items []T
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Push adds v to the front of the stack.
func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
}

// Remove removes v from the stack, returning false if it wasn't
// there.
func (s *Stack[T]) Remove(v T) bool {
	i := slices.Index(s.items, v)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

// Raise moves v to the front of the stack if it is in it.
func (s *Stack[T]) Raise(v T) {
	if s.Remove(v) {
		s.Push(v)
	}
}

func (s *Stack[T]) Contains(v T) bool {
	return slices.Contains(s.items, v)
}

// Front returns the frontmost item.
func (s *Stack[T]) Front() (v T, ok bool) {
	if len(s.items) == 0 {
		return v, false
	}
	return s.items[len(s.items)-1], true
}

// All yields the items from front to back.
func (s *Stack[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := len(s.items) - 1; i >= 0; i-- {
			if !yield(s.items[i]) {
				return
			}
		}
	}
}

// Backward yields the items from back to front, which is the order in
// which they need to be drawn.
func (s *Stack[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s.items {
			if !yield(v) {
				return
			}
		}
	}
}

func (s *Stack[T]) clear() []T {
	items := s.items
	s.items = nil
	return items
}

// snapshot returns a copy of the items from back to front.
func (s *Stack[T]) snapshot() []T {
	return slices.Clone(s.items)
}
