package dhmap

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

type HashFunc[K comparable] func(K) uint64

// Returns a hash function for any comparable key type, seeded so that
// slot layouts differ between processes.
func MakeDefaultHashFunc[K comparable](seed maphash.Seed) HashFunc[K] {
	return func(k K) uint64 {
		return maphash.Comparable(seed, k)
	}
}

// Sum64String hashes string keys with xxHash. Unlike the default it is
// unseeded, so slot layouts are reproducible across runs.
var Sum64String HashFunc[string] = xxhash.Sum64String
