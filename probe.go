package dhmap

// mix64 is the SplitMix64 finalizer. Deriving the step from a remix of
// the key hash keeps it independent from the home slot, so two keys
// sharing a home slot still walk different sequences.
func mix64(h uint64) uint64 {
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33

	return h
}

// hashPair derives the double-hashing pair for one key hash: the home
// slot in [0, capacity) and a non-zero step. All arithmetic is unsigned,
// there is no negative intermediate to normalize.
func hashPair(h, capacity uint64) (home, step uint64) {
	home = h % capacity

	step = 1
	if capacity > 1 {
		step = 1 + mix64(h)%(capacity-1)
	}

	// An odd step visits every slot when capacity is a power of two.
	// For other capacities the cycle may be shorter; the bounded probe
	// walk owns termination either way.
	step |= 1

	return home, step
}

// probeAt returns the i-th slot of the sequence for a hash pair.
// Results stay in [0, capacity) for every i in [0, capacity).
func probeAt(home, step, i, capacity uint64) uint64 {
	return (home + i*step) % capacity
}
