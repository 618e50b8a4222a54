package main

import (
	"math/rand"
	"time"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Latencies are clamped into [1ns, 10s] so RecordValue cannot fail.
const maxLatency = int64(10 * time.Second)

type phaseResult struct {
	name      string
	ops       int
	successes int
	duration  time.Duration
	latencies *hdrhistogram.Histogram
}

func newPhaseResult(name string, ops int) *phaseResult {
	return &phaseResult{
		name:      name,
		ops:       ops,
		latencies: hdrhistogram.New(1, maxLatency, 3),
	}
}

// runWorkload drives one benchmark pass over a backend: n random
// inserts, then n random retrieves, then n random removes, with keys
// drawn uniformly from [1, keyspace]. Retrieve and remove misses are
// routine and only lower the success counter. An insert failure aborts
// the insert phase; the remaining phases still run so the table's
// final state gets reported.
func runWorkload(cfg *Config, store kvStore, n int, rng *rand.Rand, sugar *zap.SugaredLogger) []*phaseResult {
	insert := newPhaseResult("insert", n)
	start := time.Now()
	for i := 0; i < n; i++ {
		key := 1 + rng.Int63n(cfg.keyspace)
		value := 1 + rng.Int63n(cfg.keyspace)

		opStart := time.Now()
		err := store.Store(key, value)
		insert.record(opStart)

		if err != nil {
			sugar.Errorf("%v", errors.Wrapf(err, "inserting key %d", key))
			break
		}
		insert.successes++
	}
	insert.duration = time.Since(start)

	retrieve := newPhaseResult("retrieve", n)
	start = time.Now()
	for i := 0; i < n; i++ {
		key := 1 + rng.Int63n(cfg.keyspace)

		opStart := time.Now()
		_, ok := store.Load(key)
		retrieve.record(opStart)

		if ok {
			retrieve.successes++
		}
	}
	retrieve.duration = time.Since(start)

	remove := newPhaseResult("remove", n)
	start = time.Now()
	for i := 0; i < n; i++ {
		key := 1 + rng.Int63n(cfg.keyspace)

		opStart := time.Now()
		ok := store.Delete(key)
		remove.record(opStart)

		// Successes are deletions, not completed calls, so the column
		// counts hits the same way the retrieve column does.
		if ok {
			remove.successes++
		}
	}
	remove.duration = time.Since(start)

	return []*phaseResult{insert, retrieve, remove}
}

func (r *phaseResult) record(opStart time.Time) {
	ns := time.Since(opStart).Nanoseconds()
	if ns < 1 {
		ns = 1
	}
	if ns > maxLatency {
		ns = maxLatency
	}
	_ = r.latencies.RecordValue(ns)
}
