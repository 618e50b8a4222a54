package dhmap

// Stats is a point-in-time snapshot of table occupancy.
type Stats struct {
	Capacity   int
	Size       int
	LoadFactor float64
	Growths    int
}

func (t *table[K, V]) Stats() Stats {
	return Stats{
		Capacity:   int(t.capacity),
		Size:       int(t.size),
		LoadFactor: float64(t.size) / float64(t.capacity),
		Growths:    t.growths,
	}
}
