package dhmap

import "unsafe"

// Estimates capacity (number of slots) from the given memory size in bytes.
// Useful for sizing a RefuseAt50 table against a fixed memory budget.
func CapacityFromSize[K comparable, V any](size uintptr) int {
	return int(size / unsafe.Sizeof(slot[K, V]{}))
}
