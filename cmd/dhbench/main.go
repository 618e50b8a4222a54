package main

import (
	"flag"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/oddbitlab/dhmap"
)

var (
	ops      = flag.Int("ops", 10000, "Operations per phase (insert, retrieve, remove)")
	runs     = flag.Int("runs", 3, "Benchmark runs per backend")
	capacity = flag.Int("capacity", dhmap.DefaultCapacity, "Initial table capacity")
	keyspace = flag.Int64("keyspace", 1000000, "Keys are drawn uniformly from [1, keyspace]")
	seed     = flag.Int64("seed", 0, "Seed for the key stream; 0 picks one from the clock")
	backends = flag.String("backends", strings.Join(backendNames, ","), "Comma-separated list of backends to run")
	policy   = flag.String("policy", "grow", "dhmap growth policy: grow (double at 75%) or refuse (fail at 50%)")
	warmup   = flag.Bool("warmup", true, "Run an untimed warmup pass per backend")
)

type Config struct {
	ops      int
	runs     int
	capacity int
	keyspace int64
	seed     int64
	policy   string
	warmup   bool
}

func main() {
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg := &Config{
		ops:      *ops,
		runs:     *runs,
		capacity: *capacity,
		keyspace: *keyspace,
		seed:     *seed,
		policy:   *policy,
		warmup:   *warmup,
	}

	if cfg.ops < 1 {
		sugar.Fatalf("ops must be positive, got %d", cfg.ops)
	}
	if cfg.keyspace < 1 {
		sugar.Fatalf("keyspace must be positive, got %d", cfg.keyspace)
	}
	if cfg.seed == 0 {
		cfg.seed = time.Now().UnixNano()
	}

	printBanner(cfg)

	for _, name := range strings.Split(*backends, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		if err := runBackend(cfg, name, sugar); err != nil {
			sugar.Errorf("backend %s: %v", name, err)
		}
	}
}

func runBackend(cfg *Config, name string, sugar *zap.SugaredLogger) error {
	printBackendHeader(name)

	if warmupOps := cfg.ops / 10; cfg.warmup && warmupOps > 0 {
		store, err := newBackend(cfg, name, sugar)
		if err != nil {
			return err
		}

		rng := rand.New(rand.NewSource(cfg.seed))
		runWorkload(cfg, store, warmupOps, rng, sugar)
		fmt.Printf("Warmed up with %d operations per phase\n", warmupOps)
	}

	// Every run starts from a fresh table but a deterministic key
	// stream, so runs are comparable across backends.
	for run := 1; run <= cfg.runs; run++ {
		store, err := newBackend(cfg, name, sugar)
		if err != nil {
			return err
		}

		rng := rand.New(rand.NewSource(cfg.seed + int64(run)))

		fmt.Printf("\nRun %d/%d:\n", run, cfg.runs)
		results := runWorkload(cfg, store, cfg.ops, rng, sugar)
		printRun(results)
		printFinalState(store)
	}

	return nil
}
