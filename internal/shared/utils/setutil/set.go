// Package setutil provides a small generic set used for role and status collections.
package setutil

// Set is a set of comparable values.
type Set[T comparable] struct {
	items map[T]struct{}
}

// New creates a set holding values.
func New[T comparable](values ...T) *Set[T] {
	s := &Set[T]{items: make(map[T]struct{}, len(values))}
	s.AddAll(values)
	return s
}

// Add adds v to the set.
func (s *Set[T]) Add(v T) {
	s.items[v] = struct{}{}
}

// AddAll adds all values to the set.
func (s *Set[T]) AddAll(values []T) {
	for _, v := range values {
		s.items[v] = struct{}{}
	}
}

// Remove deletes v from the set.
func (s *Set[T]) Remove(v T) {
	delete(s.items, v)
}

// Has returns true if v exists in the set.
func (s *Set[T]) Has(v T) bool {
	_, ok := s.items[v]
	return ok
}

// Difference returns the values of s that are not in other.
func (s *Set[T]) Difference(other *Set[T]) *Set[T] {
	out := New[T]()
	for v := range s.items {
		if !other.Has(v) {
			out.Add(v)
		}
	}
	return out
}

// ToSlice returns all values as a slice.
// The order is not guaranteed.
func (s *Set[T]) ToSlice() []T {
	result := make([]T, 0, len(s.items))
	for v := range s.items {
		result = append(result, v)
	}
	return result
}

// Len returns the number of elements in the set.
func (s *Set[T]) Len() int {
	return len(s.items)
}
