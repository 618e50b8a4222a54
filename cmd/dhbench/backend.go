package main

import (
	"encoding/binary"
	"fmt"

	"github.com/alphadose/haxmap"
	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/swiss"
	orderedmap "github.com/elliotchance/orderedmap/v2"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/zhangjyr/hashmap"
	"go.uber.org/zap"

	"github.com/oddbitlab/dhmap"
)

// Backends in reporting order: the double-hashing table first, then the
// built-in map it is usually measured against, then the third-party
// tables.
var backendNames = []string{"dhmap", "std", "swiss", "haxmap", "cmap", "cornelk", "orderedmap"}

// kvStore is the slice of behavior the workload needs from a backend.
// Load and Delete report misses through their second result; only
// Store can fail, and only for backends with a bounded capacity.
type kvStore interface {
	Store(key, value int64) error
	Load(key int64) (int64, bool)
	Delete(key int64) bool
	Len() int
}

// statsProvider is implemented by backends that expose occupancy
// beyond a bare entry count.
type statsProvider interface {
	TableStats() dhmap.Stats
}

func newBackend(cfg *Config, name string, sugar *zap.SugaredLogger) (kvStore, error) {
	switch name {
	case "dhmap":
		return newDhmapStore(cfg, sugar)
	case "std":
		return &stdStore{m: make(map[int64]int64, cfg.capacity)}, nil
	case "swiss":
		return &swissStore{m: swiss.New[int64, int64](cfg.capacity)}, nil
	case "haxmap":
		return &haxStore{m: haxmap.New[int64, int64](uintptr(cfg.capacity))}, nil
	case "cmap":
		return &cmapStore{m: cmap.NewWithCustomShardingFunction[int64, int64](shardInt64)}, nil
	case "cornelk":
		return &cornelkStore{m: hashmap.New(uintptr(cfg.capacity))}, nil
	case "orderedmap":
		return &orderedStore{m: orderedmap.NewOrderedMap[int64, int64]()}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

type dhmapStore struct {
	m *dhmap.Map[int64, int64]
}

func newDhmapStore(cfg *Config, sugar *zap.SugaredLogger) (*dhmapStore, error) {
	opts := []dhmap.Option[int64, int64]{
		dhmap.WithGrowHook[int64, int64](func(oldCapacity, newCapacity int) {
			sugar.Infof("resizing table from %d to %d", oldCapacity, newCapacity)
		}),
	}

	switch cfg.policy {
	case "grow":
		opts = append(opts, dhmap.WithGrowthPolicy[int64, int64](dhmap.GrowAt75))
	case "refuse":
		opts = append(opts, dhmap.WithGrowthPolicy[int64, int64](dhmap.RefuseAt50))
	default:
		return nil, fmt.Errorf("unknown growth policy %q", cfg.policy)
	}

	return &dhmapStore{m: dhmap.New(cfg.capacity, opts...)}, nil
}

func (s *dhmapStore) Store(key, value int64) error { return s.m.Set(key, value) }
func (s *dhmapStore) Load(key int64) (int64, bool) { return s.m.Get(key) }
func (s *dhmapStore) Delete(key int64) bool        { return s.m.Delete(key) }
func (s *dhmapStore) Len() int                     { return s.m.Len() }
func (s *dhmapStore) TableStats() dhmap.Stats      { return s.m.Stats() }

type stdStore struct {
	m map[int64]int64
}

func (s *stdStore) Store(key, value int64) error {
	s.m[key] = value
	return nil
}

func (s *stdStore) Load(key int64) (int64, bool) {
	v, ok := s.m[key]
	return v, ok
}

func (s *stdStore) Delete(key int64) bool {
	if _, ok := s.m[key]; !ok {
		return false
	}
	delete(s.m, key)
	return true
}

func (s *stdStore) Len() int { return len(s.m) }

type swissStore struct {
	m *swiss.Map[int64, int64]
}

func (s *swissStore) Store(key, value int64) error {
	s.m.Put(key, value)
	return nil
}

func (s *swissStore) Load(key int64) (int64, bool) { return s.m.Get(key) }

func (s *swissStore) Delete(key int64) bool {
	if _, ok := s.m.Get(key); !ok {
		return false
	}
	s.m.Delete(key)
	return true
}

func (s *swissStore) Len() int { return s.m.Len() }

type haxStore struct {
	m *haxmap.Map[int64, int64]
}

func (s *haxStore) Store(key, value int64) error {
	s.m.Set(key, value)
	return nil
}

func (s *haxStore) Load(key int64) (int64, bool) { return s.m.Get(key) }

func (s *haxStore) Delete(key int64) bool {
	if _, ok := s.m.Get(key); !ok {
		return false
	}
	s.m.Del(key)
	return true
}

func (s *haxStore) Len() int { return int(s.m.Len()) }

type cmapStore struct {
	m cmap.ConcurrentMap[int64, int64]
}

// shardInt64 spreads int64 keys across cmap shards.
func shardInt64(key int64) uint32 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(key))

	return uint32(xxhash.Sum64(buf[:]))
}

func (s *cmapStore) Store(key, value int64) error {
	s.m.Set(key, value)
	return nil
}

func (s *cmapStore) Load(key int64) (int64, bool) { return s.m.Get(key) }

func (s *cmapStore) Delete(key int64) bool {
	if !s.m.Has(key) {
		return false
	}
	s.m.Remove(key)
	return true
}

func (s *cmapStore) Len() int { return s.m.Count() }

type cornelkStore struct {
	m *hashmap.HashMap
}

func (s *cornelkStore) Store(key, value int64) error {
	s.m.Set(key, value)
	return nil
}

func (s *cornelkStore) Load(key int64) (int64, bool) {
	v, ok := s.m.Get(key)
	if !ok {
		return 0, false
	}

	return v.(int64), true
}

func (s *cornelkStore) Delete(key int64) bool {
	if _, ok := s.m.Get(key); !ok {
		return false
	}
	s.m.Del(key)
	return true
}

func (s *cornelkStore) Len() int { return s.m.Len() }

type orderedStore struct {
	m *orderedmap.OrderedMap[int64, int64]
}

func (s *orderedStore) Store(key, value int64) error {
	s.m.Set(key, value)
	return nil
}

func (s *orderedStore) Load(key int64) (int64, bool) { return s.m.Get(key) }

func (s *orderedStore) Delete(key int64) bool { return s.m.Delete(key) }

func (s *orderedStore) Len() int { return s.m.Len() }
