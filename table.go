package dhmap

import "hash/maphash"

// DefaultCapacity is used by New when the requested capacity is below 1.
const DefaultCapacity = 10

// GrowthPolicy decides what Set does once the table gets crowded.
// Exactly one policy is active per table; they are never combined.
type GrowthPolicy uint8

const (
	// GrowAt75 doubles the table before any insert that would push the
	// load factor above 0.75. Inserts never fail for lack of space.
	GrowAt75 GrowthPolicy = iota

	// RefuseAt50 keeps the initial capacity forever and fails inserts
	// with ErrOverHalfFull once half of the slots are occupied.
	RefuseAt50
)

type slot[K comparable, V any] struct {
	key      K
	value    V
	occupied bool
}

type table[K comparable, V any] struct {
	slots []slot[K, V]

	capacity uint64
	size     uint64
	growths  int

	hashFunc HashFunc[K]
	policy   GrowthPolicy
	onGrow   func(oldCapacity, newCapacity int)

	emptyV V
}

type Option[K comparable, V any] func(t *table[K, V])

// Override default hash function.
func WithHashFunc[K comparable, V any](f HashFunc[K]) Option[K, V] {
	return func(t *table[K, V]) {
		t.hashFunc = f
	}
}

// Select the growth policy. The default is GrowAt75.
func WithGrowthPolicy[K comparable, V any](p GrowthPolicy) Option[K, V] {
	return func(t *table[K, V]) {
		t.policy = p
	}
}

// Observe growth. The hook runs inside Set right before the rehash,
// so it has to be cheap.
func WithGrowHook[K comparable, V any](hook func(oldCapacity, newCapacity int)) Option[K, V] {
	return func(t *table[K, V]) {
		t.onGrow = hook
	}
}

func (t *table[K, V]) init(capacity int, opts ...Option[K, V]) {
	if capacity < 1 {
		capacity = DefaultCapacity
	}

	t.slots = make([]slot[K, V], capacity)
	t.capacity = uint64(capacity)

	for _, opt := range opts {
		opt(t)
	}

	if t.hashFunc == nil {
		t.hashFunc = MakeDefaultHashFunc[K](maphash.MakeSeed())
	}
}

// Len returns the number of entries.
func (t *table[K, V]) Len() int {
	return int(t.size)
}

// Capacity returns the number of slots, occupied or not.
func (t *table[K, V]) Capacity() int {
	return int(t.capacity)
}

func (t *table[K, V]) get(key K) (V, bool) {
	home, step := hashPair(t.hashFunc(key), t.capacity)

	for i := uint64(0); i < t.capacity; i++ {
		s := &t.slots[probeAt(home, step, i, t.capacity)]

		// Termination: deletion repair guarantees no reachable key
		// lives past the first empty slot of its sequence.
		if !s.occupied {
			return t.emptyV, false
		}

		if s.key == key {
			return s.value, true
		}
	}

	return t.emptyV, false
}

func (t *table[K, V]) set(key K, value V) error {
	// 1. Policy check, before any probing. Never mid-probe.
	switch t.policy {
	case GrowAt75:
		if 4*(t.size+1) > 3*t.capacity {
			t.grow()
		}
	case RefuseAt50:
		if 2*t.size >= t.capacity {
			return ErrOverHalfFull
		}
	}

	home, step := hashPair(t.hashFunc(key), t.capacity)

	// 2. Bounded walk: place at the first empty slot, or update in
	// place on a key match.
	for i := uint64(0); i < t.capacity; i++ {
		s := &t.slots[probeAt(home, step, i, t.capacity)]

		if !s.occupied {
			s.key = key
			s.value = value
			s.occupied = true
			t.size++

			return nil
		}

		if s.key == key {
			s.value = value

			return nil
		}
	}

	return ErrTableFull
}

func (t *table[K, V]) delete(key K) bool {
	home, step := hashPair(t.hashFunc(key), t.capacity)

	for i := uint64(0); i < t.capacity; i++ {
		idx := probeAt(home, step, i, t.capacity)
		s := &t.slots[idx]

		// Absent key. Not an error.
		if !s.occupied {
			return false
		}

		if s.key != key {
			continue
		}

		// Clearing drops the key and value for the GC as well.
		t.slots[idx] = slot[K, V]{}
		t.size--
		t.repair(idx)

		return true
	}

	return false
}

// repair reinserts the contiguous occupied run following a cleared slot.
// Lookups stop at the first empty slot, so every key that probed through
// idx on its way in has to be placed again or it goes unreachable.
func (t *table[K, V]) repair(idx uint64) {
	// Both policies keep at least one slot empty, the walk terminates.
	for j := (idx + 1) % t.capacity; t.slots[j].occupied; j = (j + 1) % t.capacity {
		key, value := t.slots[j].key, t.slots[j].value

		t.slots[j] = slot[K, V]{}
		t.size--

		// Runs with the decremented size, so it can neither grow nor
		// be refused; the key goes back to its own cleared slot at
		// worst. A failure here is a corrupted table.
		if err := t.set(key, value); err != nil {
			panic("dhmap: lost a key during deletion repair: " + err.Error())
		}
	}
}

// grow doubles the table and pushes every entry through the regular
// insert path, in storage order. Old indices mean nothing under the new
// capacity since both probe values depend on it.
func (t *table[K, V]) grow() {
	var (
		oldSlots    = t.slots
		oldCapacity = int(t.capacity)
	)

	if t.onGrow != nil {
		t.onGrow(oldCapacity, oldCapacity*2)
	}

	t.slots = make([]slot[K, V], oldCapacity*2)
	t.capacity *= 2
	t.size = 0
	t.growths++

	// Doubling from a 0.75 trigger lands below 0.5 load, so the rehash
	// cannot trigger another grow.
	for i := range oldSlots {
		if !oldSlots[i].occupied {
			continue
		}

		if err := t.set(oldSlots[i].key, oldSlots[i].value); err != nil {
			panic("dhmap: lost a key during rehash: " + err.Error())
		}
	}
}

// Reset empties the table in place. Capacity stays as is, including any
// earlier doubling.
func (t *table[K, V]) Reset() {
	clear(t.slots)
	t.size = 0
}
