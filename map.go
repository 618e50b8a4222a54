package dhmap

// Map is an associative container built on open addressing with double
// hashing. Deletions repair the probe run that follows the cleared slot
// instead of leaving tombstones, so lookups terminate at the first empty
// slot and stay cheap regardless of churn.
// A Map is not safe for concurrent use; growth and repair mutate many
// slots at once, so callers who share one have to serialize every
// operation, reads included.
type Map[K comparable, V any] struct {
	table[K, V]
}

// Returns a new map. A capacity below 1 falls back to DefaultCapacity.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) *Map[K, V] {
	var m Map[K, V]
	m.init(capacity, opts...)

	return &m
}

// Stores a value under the key, overwriting any previous value.
// Under GrowAt75 the table may double first; under RefuseAt50 it never
// grows and Set fails with ErrOverHalfFull instead.
func (m *Map[K, V]) Set(key K, value V) error {
	return m.set(key, value)
}

// Fetches the value stored under the key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	return m.get(key)
}

// Deletes a key from the map.
// Reports whether the key was there; removing an absent key is a no-op.
func (m *Map[K, V]) Delete(key K) bool {
	return m.delete(key)
}
