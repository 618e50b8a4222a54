package dhmap

// Set is the key-only counterpart of Map: same probing, growth and
// deletion-repair behavior, no stored values.
// Like Map, a Set is not safe for concurrent use.
type Set[K comparable] struct {
	table[K, struct{}]
}

// Returns a new set. A capacity below 1 falls back to DefaultCapacity.
func NewSet[K comparable](capacity int, opts ...Option[K, struct{}]) *Set[K] {
	var s Set[K]
	s.init(capacity, opts...)

	return &s
}

// Puts a key in the set.
func (s *Set[K]) Put(key K) error {
	return s.set(key, struct{}{})
}

// Checks whether a key is in the set.
func (s *Set[K]) Has(key K) bool {
	_, ok := s.get(key)

	return ok
}

// Deletes a key from the set.
// Reports whether the key was there; removing an absent key is a no-op.
func (s *Set[K]) Delete(key K) bool {
	return s.delete(key)
}
