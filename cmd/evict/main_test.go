package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("EVICT_POLICY", "lru")
	t.Setenv("EVICT_MAX_ITEMS", "7")
	cfg, err := loadConfig([]string{"-policy", "mru"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Policy != "mru" || cfg.MaxItems != 7 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Policy != "all" || cfg.MaxItems != 4 || cfg.Trace {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if s, _ := cfg.script(); s != defaultScript {
		t.Fatalf("expected default script")
	}
}

func TestScriptFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.txt")
	if err := os.WriteFile(path, []byte("put A 1\nget A\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := config{File: path, Script: "ignored"}
	s, err := cfg.script()
	if err != nil || s != "put A 1\nget A\n" {
		t.Fatalf("unexpected script %q (%v)", s, err)
	}
	cfg.File = filepath.Join(t.TempDir(), "missing")
	if _, err := cfg.script(); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestRunAllPolicies(t *testing.T) {
	var out bytes.Buffer
	cfg := config{Policy: "all", MaxItems: 4}
	if err := run(context.Background(), cfg, prometheus.NewRegistry(), nil, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	order := []string{"== BASIC", "== FIFO", "== LIFO", "== LRU", "== MRU"}
	last := -1
	for _, h := range order {
		i := strings.Index(got, h)
		if i <= last {
			t.Fatalf("expected %q after previous section in:\n%s", h, got)
		}
		last = i
	}
	lru := got[strings.Index(got, "== LRU"):strings.Index(got, "== MRU")]
	if !strings.Contains(lru, "DISCARD: B\n") {
		t.Fatalf("expected LRU to discard B:\n%s", lru)
	}
}

func TestRunSinglePolicy(t *testing.T) {
	var out bytes.Buffer
	cfg := config{Policy: "FIFO", MaxItems: 2, Script: "put A 1; put B 2; put C 3"}
	if err := run(context.Background(), cfg, prometheus.NewRegistry(), nil, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if strings.Count(got, "== ") != 1 || !strings.Contains(got, "DISCARD: A\nPUT C 3\n") {
		t.Fatalf("unexpected output:\n%s", got)
	}
	if !strings.Contains(got, "-- hits=0 misses=0 evictions=1 size=2") {
		t.Fatalf("missing stats line:\n%s", got)
	}
}

func TestRunErrors(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := run(context.Background(), config{Policy: "lfu", MaxItems: 4}, reg, nil, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected unknown policy error")
	}
	if err := run(context.Background(), config{Policy: "lru", MaxItems: 4, Script: "pop A"}, reg, nil, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected script error")
	}
	if err := run(context.Background(), config{Policy: "lru", MaxItems: -1}, reg, nil, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected capacity error")
	}
}
