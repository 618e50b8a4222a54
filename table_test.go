package dhmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTable[K comparable, V any](capacity int, opts ...Option[K, V]) *table[K, V] {
	var tt table[K, V]
	tt.init(capacity, opts...)

	return &tt
}

// identityHash keeps slot layouts predictable: key k goes home to
// k mod capacity.
func identityHash(k int) uint64 {
	return uint64(k)
}

func TestTable_init(t *testing.T) {
	var tt table[uint64, struct{}]

	tt.init(10)

	require.Len(t, tt.slots, 10)
	require.Equal(t, uint64(10), tt.capacity)
	require.Equal(t, GrowAt75, tt.policy)
	require.NotNil(t, tt.hashFunc)
}

func TestTable_init_DefaultCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -100} {
		tt := newTable[uint64, struct{}](capacity)

		require.Len(t, tt.slots, DefaultCapacity)
	}
}

func TestTable_set(t *testing.T) {
	tt := newTable[string, string](16)

	require.NoError(t, tt.set("foo", "bar"))
	require.Equal(t, 1, tt.Len())

	v, ok := tt.get("foo")
	require.True(t, ok)
	require.Equal(t, "bar", v)

	// Update in place, no second slot.
	require.NoError(t, tt.set("foo", "bar2"))
	require.Equal(t, 1, tt.Len())

	v, ok = tt.get("foo")
	require.True(t, ok)
	require.Equal(t, "bar2", v)
}

func TestTable_set_GrowAt75(t *testing.T) {
	tt := newTable[int, int](4)

	// 4*(size+1) > 3*capacity first trips on the fourth insert.
	for i := range 3 {
		require.NoError(t, tt.set(i, i*10))
		require.Equal(t, 4, tt.Capacity())
	}

	require.NoError(t, tt.set(3, 30))
	require.Equal(t, 8, tt.Capacity())

	require.NoError(t, tt.set(4, 40))
	require.Equal(t, 8, tt.Capacity())

	require.Equal(t, 5, tt.Len())
	require.Equal(t, 1, tt.growths)

	for i := range 5 {
		v, ok := tt.get(i)
		require.True(t, ok, "key %d lost across growth", i)
		require.Equal(t, i*10, v)
	}
}

func TestTable_set_RefuseAt50(t *testing.T) {
	tt := newTable(10, WithHashFunc[int, int](identityHash), WithGrowthPolicy[int, int](RefuseAt50))

	// Keys 0..4 land in distinct home slots, no probing involved.
	for i := range 5 {
		require.NoError(t, tt.set(i, i))
	}

	err := tt.set(5, 5)
	assert.ErrorIs(t, err, ErrOverHalfFull)

	// Refusal happens before probing, updates included.
	err = tt.set(0, 100)
	assert.ErrorIs(t, err, ErrOverHalfFull)

	require.Equal(t, 5, tt.Len())
	require.Equal(t, 10, tt.Capacity())
	require.Equal(t, 0, tt.growths)

	// Deleting frees room again.
	require.True(t, tt.delete(4))
	require.NoError(t, tt.set(5, 5))
}

func TestTable_set_TableFull(t *testing.T) {
	// Capacity 6 admits step 3, whose probe cycle visits only
	// {home, home+3}. Occupy both and the walk exhausts without ever
	// seeing an empty slot, even though the table is two thirds empty.
	const capacity = 6

	badKey := -1
	for k := 4; k < 100000; k++ {
		if home, step := hashPair(uint64(k), capacity); home == 0 && step == 3 {
			badKey = k
			break
		}
	}
	require.NotEqual(t, -1, badKey, "no key with a degenerate cycle in range")

	tt := newTable(capacity, WithHashFunc[int, int](identityHash))

	require.NoError(t, tt.set(0, 0)) // Slot 0
	require.NoError(t, tt.set(3, 3)) // Slot 3

	err := tt.set(badKey, 42)
	assert.ErrorIs(t, err, ErrTableFull)
	require.Equal(t, 2, tt.Len())
}

func TestTable_delete(t *testing.T) {
	tt := newTable[string, int](16)

	require.NoError(t, tt.set("foo", 1))

	require.True(t, tt.delete("foo"))
	require.Equal(t, 0, tt.Len())

	_, ok := tt.get("foo")
	require.False(t, ok)

	// Absent key is a no-op, not an error.
	require.False(t, tt.delete("foo"))
	require.False(t, tt.delete("never-inserted"))
	require.Equal(t, 0, tt.Len())
}

func TestTable_delete_BridgeRepair(t *testing.T) {
	// A constant hash sends every key home to slot 0 with step 1, so
	// the keys chain linearly: A at 0, B at 1, C at 2.
	collisionHash := func(k string) uint64 {
		return 0
	}

	tt := newTable(16, WithHashFunc[string, string](collisionHash))

	require.NoError(t, tt.set("A", "foo")) // Slot 0
	require.NoError(t, tt.set("B", "bar")) // Slot 1 (via probe)
	require.NoError(t, tt.set("C", "lol")) // Slot 2 (via probe)

	// Delete the "bridge" element
	require.True(t, tt.delete("B"))

	// Without repair, C would sit past an empty slot on its own probe
	// sequence and lookups would stop short of it.
	v, ok := tt.get("C")
	require.True(t, ok, "Probe chain broken: could not find 'C' after deleting 'B'")
	require.Equal(t, "lol", v)

	v, ok = tt.get("A")
	require.True(t, ok)
	require.Equal(t, "foo", v)

	_, ok = tt.get("B")
	require.False(t, ok)
	require.Equal(t, 2, tt.Len())
}

func TestTable_delete_RepairWraps(t *testing.T) {
	// Build a bridge across the end of the slot array: A occupies the
	// last slot, B lands on slot 0 after probing through it. The repair
	// walk has to wrap to find B.
	const capacity = 16

	findKey := func(home uint64, taken []int) int {
		for k := 0; k < 1000000; k++ {
			h, step := hashPair(uint64(k), capacity)
			if h != home || step != 1 {
				continue
			}

			fresh := true
			for _, used := range taken {
				if k == used {
					fresh = false
					break
				}
			}
			if fresh {
				return k
			}
		}

		return -1
	}

	keyA := findKey(capacity-1, nil)
	require.NotEqual(t, -1, keyA)
	keyB := findKey(capacity-1, []int{keyA})
	require.NotEqual(t, -1, keyB)

	tt := newTable(capacity, WithHashFunc[int, int](identityHash))

	require.NoError(t, tt.set(keyA, 1)) // Slot 15
	require.NoError(t, tt.set(keyB, 2)) // Slot 0, bridged through 15

	require.True(t, tt.delete(keyA))

	v, ok := tt.get(keyB)
	require.True(t, ok, "lost the wrapped key after deleting its bridge")
	require.Equal(t, 2, v)
	require.Equal(t, 1, tt.Len())
}

func TestTable_grow_PreservesEntries(t *testing.T) {
	const numKeys = 1000

	tt := newTable[int, int](16)

	for i := range numKeys {
		require.NoError(t, tt.set(i, i*3))
	}

	require.Equal(t, numKeys, tt.Len())
	require.Greater(t, tt.Capacity(), 16)
	require.Greater(t, tt.growths, 0)

	for i := range numKeys {
		v, ok := tt.get(i)
		require.True(t, ok, "key %d lost across growth", i)
		require.Equal(t, i*3, v)
	}
}

func TestTable_Reset(t *testing.T) {
	tt := newTable[int, int](16)

	for i := range 10 {
		require.NoError(t, tt.set(i, i))
	}

	capacity := tt.Capacity()
	tt.Reset()

	require.Equal(t, 0, tt.Len())
	require.Equal(t, capacity, tt.Capacity())

	for i := range 10 {
		_, ok := tt.get(i)
		require.False(t, ok)
	}

	// The table is usable after a reset.
	require.NoError(t, tt.set(1, 100))
	v, ok := tt.get(1)
	require.True(t, ok)
	require.Equal(t, 100, v)
}
