// Package stack provides a fixed capacity LIFO container.
package stack

import (
	"errors"

	"golang.org/x/exp/constraints"
)

var (
	// ErrOverflow is returned when pushing onto a full stack.
	ErrOverflow = errors.New("stack overflow")
	// ErrUnderflow is returned when popping or peeking an empty stack.
	ErrUnderflow = errors.New("stack underflow")
)

// Bounded is a LIFO with a hard capacity limit. It never grows.
type Bounded[T constraints.Unsigned] struct {
	data []T
	size int
}

// New returns an empty stack that holds at most capacity entries.
func New[T constraints.Unsigned](capacity int) *Bounded[T] {
	return &Bounded[T]{
		data: make([]T, capacity),
	}
}

// Push adds a value on top of the stack.
func (s *Bounded[T]) Push(value T) error {
	if s.size == len(s.data) {
		return ErrOverflow
	}
	s.data[s.size] = value
	s.size++
	return nil
}

// Pop removes and returns the top value.
func (s *Bounded[T]) Pop() (T, error) {
	if s.size == 0 {
		var zero T
		return zero, ErrUnderflow
	}
	s.size--
	value := s.data[s.size]
	s.data[s.size] = 0
	return value, nil
}

// Peek returns the top value without removing it.
func (s *Bounded[T]) Peek() (T, error) {
	if s.size == 0 {
		var zero T
		return zero, ErrUnderflow
	}
	return s.data[s.size-1], nil
}

// Len returns the number of stored entries.
func (s *Bounded[T]) Len() int {
	return s.size
}

// Cap returns the maximum number of entries.
func (s *Bounded[T]) Cap() int {
	return len(s.data)
}

// Clear removes all entries.
func (s *Bounded[T]) Clear() {
	clear(s.data)
	s.size = 0
}

// Values returns a copy of the entries, bottom first.
func (s *Bounded[T]) Values() []T {
	values := make([]T, s.size)
	copy(values, s.data[:s.size])
	return values
}
