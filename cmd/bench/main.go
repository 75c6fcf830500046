package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mirkobrombin/go-evict/v1/cache"
)

var (
	concurrency = flag.Int("c", 8, "Concurrency, one cache per worker unless -shared is set")
	requests    = flag.Int("n", 1000000, "Requests")
	maxItems    = flag.Int("max", 1024, "Maximum number of items per cache")
	keySpace    = flag.Int("keys", 4096, "Number of distinct keys")
	readRatio   = flag.Float64("r", 0.8, "Fraction of operations that are reads")
	shared      = flag.Bool("shared", false, "Share one synchronized cache across workers")
	target      = flag.String("target", "all", "Target: fifo, lifo, lru, mru or all")
)

type store interface {
	Put(key string, item []byte)
	Get(key string) ([]byte, bool)
	Metrics() cache.Stats
}

func main() {
	flag.Parse()

	payload := []byte("x")
	keys := make([]string, *keySpace)
	for i := range keys {
		keys[i] = "bench:" + strconv.Itoa(i)
	}

	targets := strings.Split(*target, ",")
	if *target == "all" {
		targets = []string{"fifo", "lifo", "lru", "mru"}
	}

	fmt.Printf("| %-8s | %-10s | %-12s | %-12s | %-10s |\n", "Policy", "Ops/sec", "Avg Latency", "P99 Latency", "Hit ratio")
	fmt.Println("|:---|:---|:---|:---|:---|")

	for _, t := range targets {
		p, err := cache.ParsePolicy(t)
		if err != nil {
			log.Printf("Unknown target: %s", t)
			continue
		}
		runBenchmark(p, keys, payload)
	}
}

func newStore(p cache.Policy) store {
	c := cache.MustNew[string, []byte](p, cache.WithMaxItems[string, []byte](*maxItems))
	if *shared {
		return cache.NewSynced(c)
	}
	return c
}

func runBenchmark(p cache.Policy, keys []string, payload []byte) {
	stores := make([]store, *concurrency)
	var sharedStore store
	if *shared {
		sharedStore = newStore(p)
	}
	for i := range stores {
		if sharedStore != nil {
			stores[i] = sharedStore
		} else {
			stores[i] = newStore(p)
		}
	}

	var wg sync.WaitGroup
	chunk := *requests / *concurrency
	latencies := make([]int64, chunk**concurrency)

	start := time.Now()
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(idx) + 1))
			s := stores[idx]
			offset := idx * chunk
			for j := 0; j < chunk; j++ {
				key := keys[rng.Intn(len(keys))]
				reqStart := time.Now()
				if rng.Float64() < *readRatio {
					s.Get(key)
				} else {
					s.Put(key, payload)
				}
				latencies[offset+j] = time.Since(reqStart).Nanoseconds()
			}
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(start)

	ops := len(latencies)
	if ops == 0 {
		fmt.Printf("| %-8s | %-10s | %-12s | %-12s | %-10s |\n", p, "ERROR", "-", "-", "-")
		return
	}

	var hits, reads uint64
	seen := make(map[store]bool)
	for _, s := range stores {
		if seen[s] {
			continue
		}
		seen[s] = true
		m := s.Metrics()
		hits += m.Hits
		reads += m.Hits + m.Misses
	}
	ratio := "-"
	if reads > 0 {
		ratio = fmt.Sprintf("%.3f", float64(hits)/float64(reads))
	}

	throughput := float64(ops) / elapsed.Seconds()
	avgLat := float64(elapsed.Nanoseconds()) / float64(ops)

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	p99Idx := int(float64(len(latencies)) * 0.99)
	if p99Idx >= len(latencies) {
		p99Idx = len(latencies) - 1
	}

	fmt.Printf("| %-8s | %-10.0f | %-12.0f | %-12d | %-10s |\n", p, throughput, avgLat, latencies[p99Idx], ratio)
}
